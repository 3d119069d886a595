package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/schoolhub/backend/internal/app/models/dto"
	"github.com/schoolhub/backend/internal/app/services"
	"github.com/schoolhub/backend/internal/middleware"
	"github.com/schoolhub/backend/internal/pkg/helpers"
)

// FeeTemplateController handles fee template endpoints
type FeeTemplateController struct {
	templateService *services.FeeTemplateService
}

// NewFeeTemplateController creates a new FeeTemplateController
func NewFeeTemplateController(templateService *services.FeeTemplateService) *FeeTemplateController {
	return &FeeTemplateController{templateService: templateService}
}

// CreateFeeTemplate handles fee template creation
// @Summary Create a fee template
// @Tags fee-templates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateFeeTemplateRequest true "Fee template information"
// @Success 201 {object} dto.APIResponse{data=models.FeeTemplate}
// @Failure 400 {object} dto.APIResponse "Invalid request data"
// @Router /fee-templates [post]
func (c *FeeTemplateController) CreateFeeTemplate(ctx *gin.Context) {
	var req dto.CreateFeeTemplateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(middleware.HandleValidationError(err)))
		return
	}

	tpl, err := c.templateService.Create(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(tpl))
}

// GetFeeTemplateByID retrieves a fee template by id
// @Summary Get fee template by ID
// @Tags fee-templates
// @Produce json
// @Security BearerAuth
// @Param id path string true "Fee template ID"
// @Success 200 {object} dto.APIResponse{data=models.FeeTemplate}
// @Failure 404 {object} dto.APIResponse "Fee template not found"
// @Router /fee-templates/{id} [get]
func (c *FeeTemplateController) GetFeeTemplateByID(ctx *gin.Context) {
	tpl, err := c.templateService.GetByID(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(tpl))
}

// GetAllFeeTemplates lists a campus's fee templates
// @Summary List fee templates for a campus
// @Tags fee-templates
// @Produce json
// @Security BearerAuth
// @Param campusId query string true "Campus ID"
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse}
// @Router /fee-templates [get]
func (c *FeeTemplateController) GetAllFeeTemplates(ctx *gin.Context) {
	campusID, ok := requireQuery(ctx, "campusId")
	if !ok {
		return
	}
	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	templates, total, err := c.templateService.GetAllByCampusID(ctx, campusID, offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.PaginatedResponse{
		Items:      templates,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}))
}

// UpdateFeeTemplate applies a partial update
// @Summary Update a fee template
// @Tags fee-templates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Fee template ID"
// @Param request body dto.UpdateFeeTemplateRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse "Fee template not updated"
// @Router /fee-templates/{id} [patch]
func (c *FeeTemplateController) UpdateFeeTemplate(ctx *gin.Context) {
	var req dto.UpdateFeeTemplateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(middleware.HandleValidationError(err)))
		return
	}

	if err := c.templateService.UpdateByID(ctx, ctx.Param("id"), &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Fee template updated successfully"))
}

// DeleteFeeTemplate soft-deletes a fee template
// @Summary Delete a fee template
// @Tags fee-templates
// @Produce json
// @Security BearerAuth
// @Param id path string true "Fee template ID"
// @Success 200 {object} dto.APIResponse
// @Router /fee-templates/{id} [delete]
func (c *FeeTemplateController) DeleteFeeTemplate(ctx *gin.Context) {
	if err := c.templateService.DeleteByID(ctx, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Fee template deleted successfully"))
}
