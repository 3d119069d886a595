package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/schoolhub/backend/internal/app/models/dto"
	"github.com/schoolhub/backend/internal/app/services"
	"github.com/schoolhub/backend/internal/middleware"
	"github.com/schoolhub/backend/internal/pkg/helpers"
)

// ChatPreferenceController handles chat preference endpoints
type ChatPreferenceController struct {
	preferenceService *services.ChatPreferenceService
}

// NewChatPreferenceController creates a new ChatPreferenceController
func NewChatPreferenceController(preferenceService *services.ChatPreferenceService) *ChatPreferenceController {
	return &ChatPreferenceController{preferenceService: preferenceService}
}

// UpsertChatPreference creates or replaces a user's chat settings
// @Summary Upsert chat preferences
// @Tags chat-preferences
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpsertChatPreferenceRequest true "Preference payload"
// @Success 200 {object} dto.APIResponse{data=models.ChatPreference}
// @Router /chat-preferences [put]
func (c *ChatPreferenceController) UpsertChatPreference(ctx *gin.Context) {
	var req dto.UpsertChatPreferenceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(middleware.HandleValidationError(err)))
		return
	}

	pref, err := c.preferenceService.Upsert(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(pref))
}

// GetChatPreferenceByUserID retrieves a user's chat settings
// @Summary Get chat preferences for a user
// @Tags chat-preferences
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Success 200 {object} dto.APIResponse{data=models.ChatPreference}
// @Failure 404 {object} dto.APIResponse "Chat preference not found"
// @Router /chat-preferences/{userId} [get]
func (c *ChatPreferenceController) GetChatPreferenceByUserID(ctx *gin.Context) {
	pref, err := c.preferenceService.GetByUserID(ctx, ctx.Param("userId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(pref))
}

// GetAllChatPreferences lists a campus's chat preferences
// @Summary List chat preferences for a campus
// @Tags chat-preferences
// @Produce json
// @Security BearerAuth
// @Param campusId query string true "Campus ID"
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=[]models.ChatPreference}
// @Router /chat-preferences [get]
func (c *ChatPreferenceController) GetAllChatPreferences(ctx *gin.Context) {
	campusID, ok := requireQuery(ctx, "campusId")
	if !ok {
		return
	}
	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	prefs, err := c.preferenceService.GetAllByCampusID(ctx, campusID, offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(prefs))
}

// DeleteChatPreference soft-deletes a user's chat settings
// @Summary Delete chat preferences for a user
// @Tags chat-preferences
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Success 200 {object} dto.APIResponse
// @Router /chat-preferences/{userId} [delete]
func (c *ChatPreferenceController) DeleteChatPreference(ctx *gin.Context) {
	if err := c.preferenceService.DeleteByUserID(ctx, ctx.Param("userId")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Chat preference deleted successfully"))
}
