package projects_controllers

import (
	"net/http"

	projects_dto "agencyops/internal/features/projects/dto"
	projects_services "agencyops/internal/features/projects/services"
	users_middleware "agencyops/internal/features/users/middleware"
	users_models "agencyops/internal/features/users/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ShareLimiter throttles progress shares per project.
type ShareLimiter interface {
	Allow(projectID uuid.UUID) bool
}

type ProjectController struct {
	projectService *projects_services.ProjectService
	shareLimiter   ShareLimiter
}

func NewProjectController(
	projectService *projects_services.ProjectService,
	shareLimiter ShareLimiter,
) *ProjectController {
	return &ProjectController{
		projectService: projectService,
		shareLimiter:   shareLimiter,
	}
}

func (c *ProjectController) RegisterRoutes(router *gin.RouterGroup) {
	projectRoutes := router.Group("/projects")
	staffOnly := users_middleware.RequireStaff()

	projectRoutes.POST("", c.CreateProject)
	projectRoutes.GET("", c.GetProjects)
	projectRoutes.GET("/:id", c.GetProject)
	projectRoutes.PUT("/:id", staffOnly, c.UpdateProjectDetails)
	projectRoutes.PUT("/:id/status", staffOnly, c.ChangeStatus)
	projectRoutes.PUT("/:id/priority", staffOnly, c.ChangePriority)
	projectRoutes.PUT("/:id/client", staffOnly, c.AssignClient)
	projectRoutes.GET("/:id/progress", c.GetProgressSummary)
	projectRoutes.POST("/:id/progress/share", staffOnly, c.ShareProgressSummary)
}

// CreateProject
// @Summary Create a new project
// @Description Staff may select or provision a client, a client creates a project for themselves
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body projects_dto.CreateProjectRequestDTO true "Project creation data"
// @Success 201 {object} projects_models.Project
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /projects [post]
func (c *ProjectController) CreateProject(ctx *gin.Context) {
	user, ok := getUser(ctx)
	if !ok {
		return
	}

	var request projects_dto.CreateProjectRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	project, err := c.projectService.CreateProject(&request, user)
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, project)
}

// GetProjects
// @Summary List projects
// @Description Staff see every project, clients see the projects assigned to them
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Success 200 {object} projects_dto.ListProjectsResponseDTO
// @Failure 401 {object} map[string]string
// @Router /projects [get]
func (c *ProjectController) GetProjects(ctx *gin.Context) {
	user, ok := getUser(ctx)
	if !ok {
		return
	}

	response, err := c.projectService.ListProjects(user)
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// GetProject
// @Summary Get project details
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Success 200 {object} projects_models.Project
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /projects/{id} [get]
func (c *ProjectController) GetProject(ctx *gin.Context) {
	_, projectID, ok := authorizeProjectRead(ctx, c.projectService)
	if !ok {
		return
	}

	project, err := c.projectService.GetProjectByID(projectID)
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, project)
}

// UpdateProjectDetails
// @Summary Update project details
// @Description Partial update of title, description, requirements, budget and deadline
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param request body projects_dto.UpdateProjectDetailsRequestDTO true "Fields to change"
// @Success 200 {object} projects_models.Project
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /projects/{id} [put]
func (c *ProjectController) UpdateProjectDetails(ctx *gin.Context) {
	projectID, ok := parseIDParam(ctx, "id", "project")
	if !ok {
		return
	}

	var request projects_dto.UpdateProjectDetailsRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	project, err := c.projectService.UpdateDetails(projectID, &request)
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, project)
}

// ChangeStatus
// @Summary Change project status
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param request body projects_dto.ChangeStatusRequestDTO true "New status"
// @Success 200 {object} projects_models.Project
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /projects/{id}/status [put]
func (c *ProjectController) ChangeStatus(ctx *gin.Context) {
	projectID, ok := parseIDParam(ctx, "id", "project")
	if !ok {
		return
	}

	var request projects_dto.ChangeStatusRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	project, err := c.projectService.ChangeStatus(projectID, request.Status)
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, project)
}

// ChangePriority
// @Summary Change project priority
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param request body projects_dto.ChangePriorityRequestDTO true "New priority"
// @Success 200 {object} projects_models.Project
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /projects/{id}/priority [put]
func (c *ProjectController) ChangePriority(ctx *gin.Context) {
	projectID, ok := parseIDParam(ctx, "id", "project")
	if !ok {
		return
	}

	var request projects_dto.ChangePriorityRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	project, err := c.projectService.ChangePriority(projectID, request.Priority)
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, project)
}

// AssignClient
// @Summary Assign or replace the project client
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param request body projects_dto.AssignClientRequestDTO true "Client to assign"
// @Success 200 {object} projects_models.Project
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /projects/{id}/client [put]
func (c *ProjectController) AssignClient(ctx *gin.Context) {
	projectID, ok := parseIDParam(ctx, "id", "project")
	if !ok {
		return
	}

	var request projects_dto.AssignClientRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	project, err := c.projectService.AssignClient(projectID, request.ClientID)
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, project)
}

// GetProgressSummary
// @Summary Get project progress summary
// @Description Recomputes progress from milestones, nobody is notified
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Success 200 {object} projects_dto.ProgressSummaryDTO
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /projects/{id}/progress [get]
func (c *ProjectController) GetProgressSummary(ctx *gin.Context) {
	_, projectID, ok := authorizeProjectRead(ctx, c.projectService)
	if !ok {
		return
	}

	summary, err := c.projectService.GetProgressSummary(projectID)
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, summary)
}

// ShareProgressSummary
// @Summary Send the progress summary to the client
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Success 200 {object} projects_dto.ProgressSummaryDTO
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 429 {object} map[string]string
// @Router /projects/{id}/progress/share [post]
func (c *ProjectController) ShareProgressSummary(ctx *gin.Context) {
	projectID, ok := parseIDParam(ctx, "id", "project")
	if !ok {
		return
	}

	if _, err := c.projectService.GetProjectByID(projectID); err != nil {
		respondWithError(ctx, err)
		return
	}

	if !c.shareLimiter.Allow(projectID) {
		ctx.JSON(http.StatusTooManyRequests, gin.H{"error": "Progress of this project was shared too recently, try again later"})
		return
	}

	summary, err := c.projectService.ShareProgressSummary(projectID)
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, summary)
}

func getUser(ctx *gin.Context) (*users_models.User, bool) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return nil, false
	}

	return user, true
}
