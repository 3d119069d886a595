package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/schoolhub/backend/internal/app/models/dto"
	"github.com/schoolhub/backend/internal/app/services"
	"github.com/schoolhub/backend/internal/middleware"
	"github.com/schoolhub/backend/internal/pkg/helpers"
)

// ParentFeedControlController handles the parent feed-access endpoints.
// The parent identity always comes from the authenticated token.
type ParentFeedControlController struct {
	controlService *services.ParentFeedControlService
}

// NewParentFeedControlController creates a new ParentFeedControlController
func NewParentFeedControlController(controlService *services.ParentFeedControlService) *ParentFeedControlController {
	return &ParentFeedControlController{controlService: controlService}
}

// ToggleFeedAccess switches feed access for one of the caller's students.
// Route-guarded to the Parent role.
// @Summary Toggle feed access for a student
// @Tags feed-controls
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ToggleFeedAccessRequest true "Toggle payload"
// @Success 200 {object} dto.APIResponse{data=models.ParentFeedControl}
// @Failure 400 {object} dto.APIResponse "Missing or invalid toggle value"
// @Failure 403 {object} dto.APIResponse "Caller is not a parent"
// @Router /feed-controls/toggle [put]
func (c *ParentFeedControlController) ToggleFeedAccess(ctx *gin.Context) {
	var req dto.ToggleFeedAccessRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(middleware.HandleValidationError(err)))
		return
	}

	parentID := ctx.GetString(middleware.ContextUserID)
	control, err := c.controlService.ToggleFeedAccess(ctx, parentID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(control))
}

// GetFeedStatus reports the caller's effective feed access for a student.
// Access defaults to enabled when no control record exists.
// @Summary Get feed access status
// @Tags feed-controls
// @Produce json
// @Security BearerAuth
// @Param studentId query string true "Student ID"
// @Success 200 {object} dto.APIResponse{data=dto.FeedStatusResponse}
// @Router /feed-controls/status [get]
func (c *ParentFeedControlController) GetFeedStatus(ctx *gin.Context) {
	studentID, ok := requireQuery(ctx, "studentId")
	if !ok {
		return
	}

	parentID := ctx.GetString(middleware.ContextUserID)
	status, err := c.controlService.GetFeedStatus(ctx, parentID, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(status))
}

// GetAllFeedControls lists a campus's feed controls
// @Summary List feed controls for a campus
// @Tags feed-controls
// @Produce json
// @Security BearerAuth
// @Param campusId query string true "Campus ID"
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse}
// @Router /feed-controls [get]
func (c *ParentFeedControlController) GetAllFeedControls(ctx *gin.Context) {
	campusID, ok := requireQuery(ctx, "campusId")
	if !ok {
		return
	}
	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	controls, total, err := c.controlService.GetAllByCampusID(ctx, campusID, offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.PaginatedResponse{
		Items:      controls,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}))
}
