package users_services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	users_dto "agencyops/internal/features/users/dto"
	users_enums "agencyops/internal/features/users/enums"
	users_interfaces "agencyops/internal/features/users/interfaces"
	users_models "agencyops/internal/features/users/models"
	errors_utils "agencyops/internal/util/errors"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// UserService resolves callers from identity provider tokens and owns the
// client directory used by project creation and assignment.
type UserService struct {
	userRepository users_interfaces.UserRepository
	jwtSecret      string
	validate       *validator.Validate
	logger         *slog.Logger
}

func NewUserService(
	userRepository users_interfaces.UserRepository,
	jwtSecret string,
	logger *slog.Logger,
) *UserService {
	return &UserService{
		userRepository: userRepository,
		jwtSecret:      jwtSecret,
		validate:       validator.New(),
		logger:         logger,
	}
}

func (s *UserService) GetUserFromToken(token string) (*users_models.User, error) {
	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	if !ok || !parsedToken.Valid {
		return nil, errors.New("invalid token")
	}

	userIDStr, ok := claims["sub"].(string)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, errors.New("invalid token claims")
	}

	roleStr, _ := claims["role"].(string)
	role := users_enums.UserRole(roleStr)
	if !role.IsValid() {
		return nil, errors.New("invalid token claims: unknown role")
	}

	email, _ := claims["email"].(string)

	return &users_models.User{
		ID:     userID,
		Email:  email,
		Role:   role,
		Status: users_enums.UserStatusActive,
	}, nil
}

// GenerateAccessToken signs a token the same way the identity provider does.
// Only tests and local tooling need it.
func (s *UserService) GenerateAccessToken(user *users_models.User) (*users_dto.AccessTokenResponseDTO, error) {
	expiration := time.Now().UTC().Add(24 * time.Hour)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"role":  string(user.Role),
		"exp":   expiration.Unix(),
		"iat":   time.Now().UTC().Unix(),
	})

	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &users_dto.AccessTokenResponseDTO{
		UserID: user.ID,
		Email:  user.Email,
		Token:  tokenString,
	}, nil
}

func (s *UserService) GetUserByID(userID uuid.UUID) (*users_models.User, error) {
	return s.userRepository.GetUserByID(userID)
}

// ProvisionClient creates an INVITED client account, or returns the existing
// client registered with the same email.
func (s *UserService) ProvisionClient(request *users_dto.ProvisionClientRequestDTO) (*users_models.User, error) {
	fullName := strings.TrimSpace(request.FullName)
	email := strings.ToLower(strings.TrimSpace(request.Email))

	if fullName == "" {
		return nil, errors_utils.NewValidationError(
			errors_utils.CodeRequired, "newClient.fullName", "client name is required",
		)
	}

	if err := s.validate.Var(email, "required,email"); err != nil {
		return nil, errors_utils.NewValidationError(
			errors_utils.CodeInvalidEmail, "newClient.email", "client email is invalid",
		)
	}

	existingUser, err := s.userRepository.GetUserByEmail(email)
	if err != nil {
		return nil, errors_utils.NewDependencyError("check existing client", err)
	}

	if existingUser != nil {
		if !existingUser.IsClient() {
			return nil, errors_utils.NewValidationError(
				errors_utils.CodeInvalidValue, "newClient.email", "email belongs to a staff account",
			)
		}

		return existingUser, nil
	}

	client := &users_models.User{
		ID:        uuid.New(),
		Email:     email,
		FullName:  fullName,
		Company:   strings.TrimSpace(request.Company),
		Phone:     strings.TrimSpace(request.Phone),
		Role:      users_enums.UserRoleClient,
		Status:    users_enums.UserStatusInvited,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.userRepository.CreateUser(client); err != nil {
		return nil, errors_utils.NewDependencyError("create client", err)
	}

	s.logger.Info("client provisioned", "clientId", client.ID, "email", client.Email)

	return client, nil
}

// EnsureClient stores the caller resolved from a token as an ACTIVE client
// unless the account already exists. Identity provider sign-ups only reach
// this service through their tokens.
func (s *UserService) EnsureClient(caller *users_models.User) (*users_models.User, error) {
	existingUser, err := s.userRepository.GetUserByID(caller.ID)
	if err != nil {
		return nil, errors_utils.NewDependencyError("look up client", err)
	}

	if existingUser != nil {
		return existingUser, nil
	}

	email := strings.ToLower(strings.TrimSpace(caller.Email))
	if err := s.validate.Var(email, "required,email"); err != nil {
		return nil, errors_utils.NewValidationError(
			errors_utils.CodeInvalidEmail, "email", "token does not carry a valid email",
		)
	}

	client := &users_models.User{
		ID:        caller.ID,
		Email:     email,
		FullName:  email,
		Role:      users_enums.UserRoleClient,
		Status:    users_enums.UserStatusActive,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.userRepository.CreateUserIfAbsent(client); err != nil {
		return nil, errors_utils.NewDependencyError("register client", err)
	}

	stored, err := s.userRepository.GetUserByID(caller.ID)
	if err != nil {
		return nil, errors_utils.NewDependencyError("look up client", err)
	}

	if stored == nil {
		return nil, errors_utils.NewConflictError("email " + email + " is already registered to another account")
	}

	s.logger.Info("client registered from token", "clientId", stored.ID, "email", stored.Email)

	return stored, nil
}

func (s *UserService) GetCurrentUserProfile(user *users_models.User) *users_dto.UserProfileResponseDTO {
	return &users_dto.UserProfileResponseDTO{
		ID:      user.ID,
		Email:   user.Email,
		Role:    user.Role,
		IsStaff: user.IsStaff(),
	}
}
