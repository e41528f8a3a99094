package projects_controllers

import (
	"errors"
	"net/http"

	projects_services "agencyops/internal/features/projects/services"
	users_models "agencyops/internal/features/users/models"
	errors_utils "agencyops/internal/util/errors"
	"agencyops/internal/util/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// respondWithError maps the service error kinds to HTTP statuses.
func respondWithError(ctx *gin.Context, err error) {
	var (
		validationErr *errors_utils.ValidationError
		notFoundErr   *errors_utils.NotFoundError
		conflictErr   *errors_utils.ConflictError
		dependencyErr *errors_utils.DependencyError
	)

	switch {
	case errors.As(err, &validationErr):
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": validationErr.Message,
			"code":  validationErr.Code,
			"field": validationErr.Field,
		})
	case errors.As(err, &notFoundErr):
		ctx.JSON(http.StatusNotFound, gin.H{"error": notFoundErr.Error()})
	case errors.As(err, &conflictErr):
		ctx.JSON(http.StatusConflict, gin.H{"error": conflictErr.Message})
	case errors.As(err, &dependencyErr):
		logger.GetLogger().Error("dependency failure", "path", ctx.FullPath(), "error", err)
		ctx.JSON(http.StatusBadGateway, gin.H{"error": "Upstream dependency failed"})
	default:
		logger.GetLogger().Error("unexpected error", "path", ctx.FullPath(), "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func parseIDParam(ctx *gin.Context, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param(name))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + label + " ID"})
		return uuid.Nil, false
	}

	return id, true
}

// authorizeProjectRead resolves the caller and the project id, and checks the
// caller may see the project. It writes the response itself on failure.
func authorizeProjectRead(
	ctx *gin.Context,
	projectService *projects_services.ProjectService,
) (*users_models.User, uuid.UUID, bool) {
	user, ok := getUser(ctx)
	if !ok {
		return nil, uuid.Nil, false
	}

	projectID, ok := parseIDParam(ctx, "id", "project")
	if !ok {
		return nil, uuid.Nil, false
	}

	canAccess, err := projectService.CanUserAccessProject(projectID, user)
	if err != nil {
		respondWithError(ctx, err)
		return nil, uuid.Nil, false
	}

	if !canAccess {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions to view project"})
		return nil, uuid.Nil, false
	}

	return user, projectID, true
}
