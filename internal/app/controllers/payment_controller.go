package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/schoolhub/backend/internal/app/models/dto"
	"github.com/schoolhub/backend/internal/app/services"
	"github.com/schoolhub/backend/internal/middleware"
	"github.com/schoolhub/backend/internal/pkg/helpers"
)

// PaymentController handles payment endpoints
type PaymentController struct {
	paymentService *services.PaymentService
}

// NewPaymentController creates a new PaymentController
func NewPaymentController(paymentService *services.PaymentService) *PaymentController {
	return &PaymentController{paymentService: paymentService}
}

// CreatePayment records a payment against a fee and appends the
// corresponding installment on the fee record.
// @Summary Record a payment
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreatePaymentRequest true "Payment information"
// @Success 201 {object} dto.APIResponse{data=models.Payment}
// @Failure 400 {object} dto.APIResponse "Invalid request data"
// @Failure 404 {object} dto.APIResponse "Fee not found"
// @Router /payments [post]
func (c *PaymentController) CreatePayment(ctx *gin.Context) {
	var req dto.CreatePaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(middleware.HandleValidationError(err)))
		return
	}

	payment, err := c.paymentService.Create(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(payment))
}

// GetPaymentByID retrieves a payment by id
// @Summary Get payment by ID
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Payment ID"
// @Success 200 {object} dto.APIResponse{data=models.Payment}
// @Failure 404 {object} dto.APIResponse "Payment not found"
// @Router /payments/{id} [get]
func (c *PaymentController) GetPaymentByID(ctx *gin.Context) {
	payment, err := c.paymentService.GetByID(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(payment))
}

// GetAllPayments lists payments scoped by campus, or by fee when feeId is given
// @Summary List payments
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param campusId query string false "Campus ID"
// @Param feeId query string false "Fee ID"
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse}
// @Router /payments [get]
func (c *PaymentController) GetAllPayments(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	if feeID := ctx.Query("feeId"); feeID != "" {
		payments, err := c.paymentService.GetAllByFeeID(ctx, feeID, offset, limit)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, dto.NewSuccessResponse(payments))
		return
	}

	campusID, ok := requireQuery(ctx, "campusId")
	if !ok {
		return
	}
	payments, total, err := c.paymentService.GetAllByCampusID(ctx, campusID, offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.PaginatedResponse{
		Items:      payments,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}))
}

// UpdatePayment applies a partial update (status/reference)
// @Summary Update a payment
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Payment ID"
// @Param request body dto.UpdatePaymentRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse
// @Router /payments/{id} [patch]
func (c *PaymentController) UpdatePayment(ctx *gin.Context) {
	var req dto.UpdatePaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(middleware.HandleValidationError(err)))
		return
	}

	if err := c.paymentService.UpdateByID(ctx, ctx.Param("id"), &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Payment updated successfully"))
}

// DeletePayment soft-deletes a payment record
// @Summary Delete a payment
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Payment ID"
// @Success 200 {object} dto.APIResponse
// @Router /payments/{id} [delete]
func (c *PaymentController) DeletePayment(ctx *gin.Context) {
	if err := c.paymentService.DeleteByID(ctx, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Payment deleted successfully"))
}
