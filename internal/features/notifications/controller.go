package notifications

import (
	"net/http"

	users_middleware "agencyops/internal/features/users/middleware"
	time_parser "agencyops/internal/util/time"

	"github.com/gin-gonic/gin"
)

type NotificationController struct {
	notificationService *NotificationService
}

func NewNotificationController(notificationService *NotificationService) *NotificationController {
	return &NotificationController{notificationService: notificationService}
}

func (c *NotificationController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/notifications", c.GetMyNotifications)
}

// GetMyNotifications
// @Summary Get caller notifications
// @Description Retrieve notifications addressed to the authenticated user, newest first
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Limit number of results" default(100)
// @Param offset query int false "Offset for pagination" default(0)
// @Param beforeDate query string false "Only notifications created before this date (RFC3339, date or unix time)"
// @Success 200 {object} GetNotificationsResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /notifications [get]
func (c *NotificationController) GetMyNotifications(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	request := &GetNotificationsRequest{}
	if err := ctx.ShouldBindQuery(request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	beforeDate, err := time_parser.ParseOptionalTimestamp(ctx.Query("beforeDate"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid beforeDate"})
		return
	}
	request.BeforeDate = beforeDate

	response, err := c.notificationService.GetUserNotifications(user.ID, request)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve notifications"})
		return
	}

	ctx.JSON(http.StatusOK, response)
}
