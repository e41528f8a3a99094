package projects_controllers

import (
	"net/http"

	projects_dto "agencyops/internal/features/projects/dto"
	projects_services "agencyops/internal/features/projects/services"
	users_middleware "agencyops/internal/features/users/middleware"

	"github.com/gin-gonic/gin"
)

type MilestoneController struct {
	milestoneService *projects_services.MilestoneService
	projectService   *projects_services.ProjectService
}

func NewMilestoneController(
	milestoneService *projects_services.MilestoneService,
	projectService *projects_services.ProjectService,
) *MilestoneController {
	return &MilestoneController{
		milestoneService: milestoneService,
		projectService:   projectService,
	}
}

func (c *MilestoneController) RegisterRoutes(router *gin.RouterGroup) {
	staffOnly := users_middleware.RequireStaff()

	router.GET("/projects/:id/milestones", c.GetMilestones)
	router.POST("/projects/:id/milestones", staffOnly, c.AddMilestone)
	router.PUT("/milestones/:id/status", staffOnly, c.UpdateMilestoneStatus)
}

// GetMilestones
// @Summary List project milestones
// @Tags milestones
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Success 200 {object} projects_dto.ListMilestonesResponseDTO
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /projects/{id}/milestones [get]
func (c *MilestoneController) GetMilestones(ctx *gin.Context) {
	_, projectID, ok := authorizeProjectRead(ctx, c.projectService)
	if !ok {
		return
	}

	response, err := c.milestoneService.GetMilestones(projectID)
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// AddMilestone
// @Summary Add a milestone after the existing ones
// @Tags milestones
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param request body projects_dto.AddMilestoneRequestDTO true "Milestone data"
// @Success 201 {object} projects_models.Milestone
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /projects/{id}/milestones [post]
func (c *MilestoneController) AddMilestone(ctx *gin.Context) {
	projectID, ok := parseIDParam(ctx, "id", "project")
	if !ok {
		return
	}

	var request projects_dto.AddMilestoneRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	milestone, err := c.milestoneService.AddMilestone(projectID, &request)
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, milestone)
}

// UpdateMilestoneStatus
// @Summary Change milestone status
// @Description Returns the milestone and the recomputed project progress
// @Tags milestones
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Milestone ID"
// @Param request body projects_dto.ChangeMilestoneStatusRequestDTO true "New status"
// @Success 200 {object} projects_dto.MilestoneStatusResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /milestones/{id}/status [put]
func (c *MilestoneController) UpdateMilestoneStatus(ctx *gin.Context) {
	milestoneID, ok := parseIDParam(ctx, "id", "milestone")
	if !ok {
		return
	}

	var request projects_dto.ChangeMilestoneStatusRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	response, err := c.milestoneService.UpdateMilestoneStatus(milestoneID, request.Status)
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}
