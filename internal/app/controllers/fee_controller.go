package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/schoolhub/backend/internal/app/models/dto"
	"github.com/schoolhub/backend/internal/app/services"
	"github.com/schoolhub/backend/internal/middleware"
	"github.com/schoolhub/backend/internal/pkg/helpers"
)

// FeeController handles student fee endpoints
type FeeController struct {
	feeService *services.FeeService
}

// NewFeeController creates a new FeeController
func NewFeeController(feeService *services.FeeService) *FeeController {
	return &FeeController{feeService: feeService}
}

// CreateFee bills a fee to a student
// @Summary Create a fee
// @Tags fees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateFeeRequest true "Fee information"
// @Success 201 {object} dto.APIResponse{data=models.Fee}
// @Failure 400 {object} dto.APIResponse "Invalid request data"
// @Router /fees [post]
func (c *FeeController) CreateFee(ctx *gin.Context) {
	var req dto.CreateFeeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(middleware.HandleValidationError(err)))
		return
	}

	fee, err := c.feeService.Create(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(fee))
}

// GetFeeByID retrieves a fee by id
// @Summary Get fee by ID
// @Tags fees
// @Produce json
// @Security BearerAuth
// @Param id path string true "Fee ID"
// @Success 200 {object} dto.APIResponse{data=models.Fee}
// @Failure 404 {object} dto.APIResponse "Fee not found"
// @Router /fees/{id} [get]
func (c *FeeController) GetFeeByID(ctx *gin.Context) {
	fee, err := c.feeService.GetByID(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(fee))
}

// GetAllFees lists fees scoped by campus, or by student when studentId is given
// @Summary List fees
// @Tags fees
// @Produce json
// @Security BearerAuth
// @Param campusId query string false "Campus ID"
// @Param studentId query string false "Student ID"
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse}
// @Router /fees [get]
func (c *FeeController) GetAllFees(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	if studentID := ctx.Query("studentId"); studentID != "" {
		fees, err := c.feeService.GetAllByStudentID(ctx, studentID, offset, limit)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, dto.NewSuccessResponse(fees))
		return
	}

	campusID, ok := requireQuery(ctx, "campusId")
	if !ok {
		return
	}
	fees, total, err := c.feeService.GetAllByCampusID(ctx, campusID, offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.PaginatedResponse{
		Items:      fees,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}))
}

// UpdateFee applies a partial update. The patch is taken verbatim;
// dueAmount stays whatever the caller last set it to.
// @Summary Update a fee
// @Tags fees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Fee ID"
// @Param request body dto.UpdateFeeRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse "Fee record not updated"
// @Router /fees/{id} [patch]
func (c *FeeController) UpdateFee(ctx *gin.Context) {
	var req dto.UpdateFeeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(middleware.HandleValidationError(err)))
		return
	}

	if err := c.feeService.UpdateByID(ctx, ctx.Param("id"), &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Fee updated successfully"))
}

// DeleteFee soft-deletes a fee
// @Summary Delete a fee
// @Tags fees
// @Produce json
// @Security BearerAuth
// @Param id path string true "Fee ID"
// @Success 200 {object} dto.APIResponse
// @Router /fees/{id} [delete]
func (c *FeeController) DeleteFee(ctx *gin.Context) {
	if err := c.feeService.DeleteByID(ctx, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Fee deleted successfully"))
}
