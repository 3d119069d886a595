package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/schoolhub/backend/internal/app/models/dto"
	"github.com/schoolhub/backend/internal/app/services"
	"github.com/schoolhub/backend/internal/middleware"
	"github.com/schoolhub/backend/internal/pkg/helpers"
)

// LeavePolicyController handles leave policy endpoints
type LeavePolicyController struct {
	policyService *services.LeavePolicyService
}

// NewLeavePolicyController creates a new LeavePolicyController
func NewLeavePolicyController(policyService *services.LeavePolicyService) *LeavePolicyController {
	return &LeavePolicyController{policyService: policyService}
}

// CreateLeavePolicy handles leave policy creation
// @Summary Create a leave policy
// @Tags leave-policies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateLeavePolicyRequest true "Policy information"
// @Success 201 {object} dto.APIResponse{data=models.LeavePolicy}
// @Router /leave-policies [post]
func (c *LeavePolicyController) CreateLeavePolicy(ctx *gin.Context) {
	var req dto.CreateLeavePolicyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(middleware.HandleValidationError(err)))
		return
	}

	policy, err := c.policyService.Create(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(policy))
}

// GetLeavePolicyByID retrieves a leave policy by id
// @Summary Get leave policy by ID
// @Tags leave-policies
// @Produce json
// @Security BearerAuth
// @Param id path string true "Policy ID"
// @Success 200 {object} dto.APIResponse{data=models.LeavePolicy}
// @Failure 404 {object} dto.APIResponse "Leave policy not found"
// @Router /leave-policies/{id} [get]
func (c *LeavePolicyController) GetLeavePolicyByID(ctx *gin.Context) {
	policy, err := c.policyService.GetByID(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(policy))
}

// GetAllLeavePolicies lists a campus's leave policies
// @Summary List leave policies for a campus
// @Tags leave-policies
// @Produce json
// @Security BearerAuth
// @Param campusId query string true "Campus ID"
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse}
// @Router /leave-policies [get]
func (c *LeavePolicyController) GetAllLeavePolicies(ctx *gin.Context) {
	campusID, ok := requireQuery(ctx, "campusId")
	if !ok {
		return
	}
	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	policies, total, err := c.policyService.GetAllByCampusID(ctx, campusID, offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.PaginatedResponse{
		Items:      policies,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}))
}

// UpdateLeavePolicy applies a partial update
// @Summary Update a leave policy
// @Tags leave-policies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Policy ID"
// @Param request body dto.UpdateLeavePolicyRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse
// @Router /leave-policies/{id} [patch]
func (c *LeavePolicyController) UpdateLeavePolicy(ctx *gin.Context) {
	var req dto.UpdateLeavePolicyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(middleware.HandleValidationError(err)))
		return
	}

	if err := c.policyService.UpdateByID(ctx, ctx.Param("id"), &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Leave policy updated successfully"))
}

// DeleteLeavePolicy soft-deletes a leave policy
// @Summary Delete a leave policy
// @Tags leave-policies
// @Produce json
// @Security BearerAuth
// @Param id path string true "Policy ID"
// @Success 200 {object} dto.APIResponse
// @Router /leave-policies/{id} [delete]
func (c *LeavePolicyController) DeleteLeavePolicy(ctx *gin.Context) {
	if err := c.policyService.DeleteByID(ctx, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Leave policy deleted successfully"))
}
