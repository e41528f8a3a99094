package projects_controllers

import (
	"net/http"

	projects_dto "agencyops/internal/features/projects/dto"
	projects_services "agencyops/internal/features/projects/services"
	users_middleware "agencyops/internal/features/users/middleware"

	"github.com/gin-gonic/gin"
)

type TeamController struct {
	teamService *projects_services.TeamService
}

func NewTeamController(teamService *projects_services.TeamService) *TeamController {
	return &TeamController{teamService: teamService}
}

func (c *TeamController) RegisterRoutes(router *gin.RouterGroup) {
	teamRoutes := router.Group("/projects/:id/team")
	teamRoutes.Use(users_middleware.RequireStaff())

	teamRoutes.GET("", c.GetTeam)
	teamRoutes.POST("", c.AssignMember)
	teamRoutes.DELETE("/:memberId", c.RemoveMember)
}

// GetTeam
// @Summary List project team
// @Tags team
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Success 200 {object} projects_dto.ListTeamResponseDTO
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /projects/{id}/team [get]
func (c *TeamController) GetTeam(ctx *gin.Context) {
	projectID, ok := parseIDParam(ctx, "id", "project")
	if !ok {
		return
	}

	response, err := c.teamService.GetTeam(projectID)
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// AssignMember
// @Summary Assign a staff member to the project
// @Tags team
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param request body projects_dto.AssignMemberRequestDTO true "Member to assign"
// @Success 201 {object} projects_models.TeamMember
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /projects/{id}/team [post]
func (c *TeamController) AssignMember(ctx *gin.Context) {
	projectID, ok := parseIDParam(ctx, "id", "project")
	if !ok {
		return
	}

	var request projects_dto.AssignMemberRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	member, err := c.teamService.AssignMember(projectID, request.MemberID)
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, member)
}

// RemoveMember
// @Summary Remove a member from the project team
// @Description Removing a member who is not on the team succeeds
// @Tags team
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param memberId path string true "Member ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /projects/{id}/team/{memberId} [delete]
func (c *TeamController) RemoveMember(ctx *gin.Context) {
	projectID, ok := parseIDParam(ctx, "id", "project")
	if !ok {
		return
	}

	memberID, ok := parseIDParam(ctx, "memberId", "member")
	if !ok {
		return
	}

	if err := c.teamService.RemoveMember(projectID, memberID); err != nil {
		respondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Member removed successfully"})
}
