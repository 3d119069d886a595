package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/schoolhub/backend/internal/app/models/dto"
	"github.com/schoolhub/backend/internal/app/services"
	"github.com/schoolhub/backend/internal/middleware"
	"github.com/schoolhub/backend/internal/pkg/helpers"
)

// CampusController handles campus endpoints
type CampusController struct {
	campusService *services.CampusService
}

// NewCampusController creates a new CampusController
func NewCampusController(campusService *services.CampusService) *CampusController {
	return &CampusController{campusService: campusService}
}

// CreateCampus handles campus creation
// @Summary Create a new campus
// @Description Creates a campus with the provided information
// @Tags campuses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCampusRequest true "Campus information"
// @Success 201 {object} dto.APIResponse{data=models.Campus} "Campus created"
// @Failure 400 {object} dto.APIResponse "Invalid request data"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /campuses [post]
func (c *CampusController) CreateCampus(ctx *gin.Context) {
	var req dto.CreateCampusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(middleware.HandleValidationError(err)))
		return
	}

	campus, err := c.campusService.Create(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(campus))
}

// GetCampusByID retrieves a campus by id
// @Summary Get campus by ID
// @Tags campuses
// @Produce json
// @Security BearerAuth
// @Param id path string true "Campus ID"
// @Success 200 {object} dto.APIResponse{data=models.Campus}
// @Failure 404 {object} dto.APIResponse "Campus not found"
// @Router /campuses/{id} [get]
func (c *CampusController) GetCampusByID(ctx *gin.Context) {
	campus, err := c.campusService.GetByID(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(campus))
}

// GetAllCampuses lists campuses with pagination
// @Summary List campuses
// @Tags campuses
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse}
// @Router /campuses [get]
func (c *CampusController) GetAllCampuses(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	campuses, total, err := c.campusService.GetAll(ctx, offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.PaginatedResponse{
		Items:      campuses,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}))
}

// UpdateCampus applies a partial update
// @Summary Update a campus
// @Tags campuses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Campus ID"
// @Param request body dto.UpdateCampusRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse "Campus not updated"
// @Router /campuses/{id} [patch]
func (c *CampusController) UpdateCampus(ctx *gin.Context) {
	var req dto.UpdateCampusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(middleware.HandleValidationError(err)))
		return
	}

	if err := c.campusService.UpdateByID(ctx, ctx.Param("id"), &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Campus updated successfully"))
}

// DeleteCampus soft-deletes a campus
// @Summary Delete a campus
// @Tags campuses
// @Produce json
// @Security BearerAuth
// @Param id path string true "Campus ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse "Campus not found"
// @Router /campuses/{id} [delete]
func (c *CampusController) DeleteCampus(ctx *gin.Context) {
	if err := c.campusService.DeleteByID(ctx, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Campus deleted successfully"))
}
