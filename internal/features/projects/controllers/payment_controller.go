package projects_controllers

import (
	"net/http"

	projects_dto "agencyops/internal/features/projects/dto"
	projects_services "agencyops/internal/features/projects/services"
	users_middleware "agencyops/internal/features/users/middleware"

	"github.com/gin-gonic/gin"
)

type PaymentController struct {
	paymentService *projects_services.PaymentService
	projectService *projects_services.ProjectService
}

func NewPaymentController(
	paymentService *projects_services.PaymentService,
	projectService *projects_services.ProjectService,
) *PaymentController {
	return &PaymentController{
		paymentService: paymentService,
		projectService: projectService,
	}
}

func (c *PaymentController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/projects/:id/payment", c.GetPayment)
	router.PUT("/projects/:id/payment", users_middleware.RequireStaff(), c.UpdatePayment)
	router.GET("/projects/:id/payment/invoice", c.GetInvoice)
}

// GetPayment
// @Summary Get project payment
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Success 200 {object} projects_dto.PaymentResponseDTO
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /projects/{id}/payment [get]
func (c *PaymentController) GetPayment(ctx *gin.Context) {
	_, projectID, ok := authorizeProjectRead(ctx, c.projectService)
	if !ok {
		return
	}

	payment, err := c.paymentService.GetPayment(projectID)
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, payment)
}

// UpdatePayment
// @Summary Update project payment
// @Description Provided fields replace the stored ones, amounts are not reconciled
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param request body projects_dto.UpdatePaymentRequestDTO true "Fields to change"
// @Success 200 {object} projects_dto.PaymentResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /projects/{id}/payment [put]
func (c *PaymentController) UpdatePayment(ctx *gin.Context) {
	projectID, ok := parseIDParam(ctx, "id", "project")
	if !ok {
		return
	}

	var request projects_dto.UpdatePaymentRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	payment, err := c.paymentService.UpdatePayment(projectID, &request)
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, payment)
}

// GetInvoice
// @Summary Get invoice snapshot
// @Description Data needed to render an invoice for the project payment
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Success 200 {object} projects_dto.InvoiceDocument
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /projects/{id}/payment/invoice [get]
func (c *PaymentController) GetInvoice(ctx *gin.Context) {
	_, projectID, ok := authorizeProjectRead(ctx, c.projectService)
	if !ok {
		return
	}

	invoice, err := c.paymentService.GenerateInvoiceSnapshot(projectID)
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, invoice)
}

