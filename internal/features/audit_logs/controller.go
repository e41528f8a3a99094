package audit_logs

import (
	"errors"
	"net/http"

	projects_models "agencyops/internal/features/projects/models"
	users_middleware "agencyops/internal/features/users/middleware"
	errors_utils "agencyops/internal/util/errors"
	"agencyops/internal/util/logger"
	time_parser "agencyops/internal/util/time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProjectLookup interface {
	GetProjectByID(projectID uuid.UUID) (*projects_models.Project, error)
}

type AuditLogController struct {
	auditLogService *AuditLogService
	projectLookup   ProjectLookup
}

func NewAuditLogController(auditLogService *AuditLogService, projectLookup ProjectLookup) *AuditLogController {
	return &AuditLogController{
		auditLogService: auditLogService,
		projectLookup:   projectLookup,
	}
}

func (c *AuditLogController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/projects/:id/audit-logs", users_middleware.RequireStaff(), c.GetProjectAuditLogs)
}

// GetProjectAuditLogs
// @Summary Get project activity
// @Description Lifecycle events recorded for a project, newest first. Staff only
// @Tags audit-logs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param limit query int false "Limit number of results" default(100)
// @Param offset query int false "Offset for pagination" default(0)
// @Param beforeDate query string false "Only entries created before this date (RFC3339, date or unix time)"
// @Success 200 {object} GetAuditLogsResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /projects/{id}/audit-logs [get]
func (c *AuditLogController) GetProjectAuditLogs(ctx *gin.Context) {
	projectID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID"})
		return
	}

	request := &GetAuditLogsRequest{}
	if err := ctx.ShouldBindQuery(request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	request.BeforeDate, err = time_parser.ParseOptionalTimestamp(ctx.Query("beforeDate"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid beforeDate"})
		return
	}

	if _, err := c.projectLookup.GetProjectByID(projectID); err != nil {
		respondWithError(ctx, err)
		return
	}

	response, err := c.auditLogService.GetProjectAuditLogs(projectID, request)
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

func respondWithError(ctx *gin.Context, err error) {
	var notFoundErr *errors_utils.NotFoundError
	if errors.As(err, &notFoundErr) {
		ctx.JSON(http.StatusNotFound, gin.H{"error": notFoundErr.Error()})
		return
	}

	logger.GetLogger().Error("failed to retrieve audit logs", "path", ctx.FullPath(), "error", err)
	ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve audit logs"})
}
