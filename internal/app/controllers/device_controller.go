package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/schoolhub/backend/internal/app/models/dto"
	"github.com/schoolhub/backend/internal/app/services"
	"github.com/schoolhub/backend/internal/middleware"
	"github.com/schoolhub/backend/internal/pkg/helpers"
)

// DeviceController handles device registration endpoints
type DeviceController struct {
	deviceService *services.DeviceService
}

// NewDeviceController creates a new DeviceController
func NewDeviceController(deviceService *services.DeviceService) *DeviceController {
	return &DeviceController{deviceService: deviceService}
}

// RegisterDevice registers or refreshes a device by its token
// @Summary Register a device
// @Description Registers a push endpoint; repeat registrations with the same token refresh the record
// @Tags devices
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.RegisterDeviceRequest true "Device information"
// @Success 201 {object} dto.APIResponse{data=models.Device}
// @Failure 400 {object} dto.APIResponse "Invalid request data"
// @Router /devices [post]
func (c *DeviceController) RegisterDevice(ctx *gin.Context) {
	var req dto.RegisterDeviceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(middleware.HandleValidationError(err)))
		return
	}

	device, err := c.deviceService.Register(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(device))
}

// GetDeviceByID retrieves a device by id
// @Summary Get device by ID
// @Tags devices
// @Produce json
// @Security BearerAuth
// @Param id path string true "Device ID"
// @Success 200 {object} dto.APIResponse{data=models.Device}
// @Failure 404 {object} dto.APIResponse "Device not found"
// @Router /devices/{id} [get]
func (c *DeviceController) GetDeviceByID(ctx *gin.Context) {
	device, err := c.deviceService.GetByID(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(device))
}

// GetAllDevices lists devices scoped by campus, or by user when userId is given
// @Summary List devices
// @Tags devices
// @Produce json
// @Security BearerAuth
// @Param campusId query string false "Campus ID"
// @Param userId query string false "User ID"
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse}
// @Router /devices [get]
func (c *DeviceController) GetAllDevices(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	if userID := ctx.Query("userId"); userID != "" {
		devices, err := c.deviceService.GetAllByUserID(ctx, userID, offset, limit)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, dto.NewSuccessResponse(devices))
		return
	}

	campusID, ok := requireQuery(ctx, "campusId")
	if !ok {
		return
	}
	devices, total, err := c.deviceService.GetAllByCampusID(ctx, campusID, offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.PaginatedResponse{
		Items:      devices,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}))
}

// DeleteDevice soft-deletes a device
// @Summary Delete a device
// @Tags devices
// @Produce json
// @Security BearerAuth
// @Param id path string true "Device ID"
// @Success 200 {object} dto.APIResponse
// @Router /devices/{id} [delete]
func (c *DeviceController) DeleteDevice(ctx *gin.Context) {
	if err := c.deviceService.DeleteByID(ctx, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Device deleted successfully"))
}
