package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/schoolhub/backend/internal/app/models/dto"
	"github.com/schoolhub/backend/internal/app/services"
	"github.com/schoolhub/backend/internal/middleware"
	"github.com/schoolhub/backend/internal/pkg/helpers"
)

// AppBuildController handles APK build endpoints
type AppBuildController struct {
	buildService *services.AppBuildService
}

// NewAppBuildController creates a new AppBuildController
func NewAppBuildController(buildService *services.AppBuildService) *AppBuildController {
	return &AppBuildController{buildService: buildService}
}

// UploadAppBuild receives a multipart APK upload and its metadata
// @Summary Upload an app build
// @Tags app-builds
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param campusId formData string true "Campus ID"
// @Param version formData string true "Version string"
// @Param buildNumber formData int true "Build number"
// @Param releaseNotes formData string false "Release notes"
// @Param file formData file true "APK file"
// @Success 201 {object} dto.APIResponse{data=models.AppBuild}
// @Failure 400 {object} dto.APIResponse "Missing file or invalid form"
// @Router /app-builds [post]
func (c *AppBuildController) UploadAppBuild(ctx *gin.Context) {
	var form dto.UploadAppBuildForm
	if err := ctx.ShouldBind(&form); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(middleware.HandleValidationError(err)))
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeBadRequest, "Build file is required").WithField("file")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	build, err := c.buildService.Upload(ctx, &form, fileHeader)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(build))
}

// GetAppBuildByID retrieves a build's metadata
// @Summary Get app build by ID
// @Tags app-builds
// @Produce json
// @Security BearerAuth
// @Param id path string true "Build ID"
// @Success 200 {object} dto.APIResponse{data=models.AppBuild}
// @Failure 404 {object} dto.APIResponse "App build not found"
// @Router /app-builds/{id} [get]
func (c *AppBuildController) GetAppBuildByID(ctx *gin.Context) {
	build, err := c.buildService.GetByID(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(build))
}

// GetLatestAppBuild returns the newest build for a campus by build number
// @Summary Get the latest app build
// @Tags app-builds
// @Produce json
// @Security BearerAuth
// @Param campusId query string true "Campus ID"
// @Success 200 {object} dto.APIResponse{data=models.AppBuild}
// @Failure 404 {object} dto.APIResponse "No builds for campus"
// @Router /app-builds/latest [get]
func (c *AppBuildController) GetLatestAppBuild(ctx *gin.Context) {
	campusID, ok := requireQuery(ctx, "campusId")
	if !ok {
		return
	}

	build, err := c.buildService.GetLatestByCampusID(ctx, campusID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(build))
}

// DownloadAppBuild streams the APK binary
// @Summary Download an app build
// @Tags app-builds
// @Produce application/octet-stream
// @Security BearerAuth
// @Param id path string true "Build ID"
// @Success 200 {file} binary "APK content"
// @Failure 404 {object} dto.APIResponse "App build not found"
// @Router /app-builds/{id}/download [get]
func (c *AppBuildController) DownloadAppBuild(ctx *gin.Context) {
	path, fileName, err := c.buildService.DownloadPath(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.FileAttachment(path, fileName)
}

// GetAllAppBuilds lists a campus's builds
// @Summary List app builds for a campus
// @Tags app-builds
// @Produce json
// @Security BearerAuth
// @Param campusId query string true "Campus ID"
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse}
// @Router /app-builds [get]
func (c *AppBuildController) GetAllAppBuilds(ctx *gin.Context) {
	campusID, ok := requireQuery(ctx, "campusId")
	if !ok {
		return
	}
	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	builds, total, err := c.buildService.GetAllByCampusID(ctx, campusID, offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.PaginatedResponse{
		Items:      builds,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}))
}

// DeleteAppBuild soft-deletes a build and removes its file
// @Summary Delete an app build
// @Tags app-builds
// @Produce json
// @Security BearerAuth
// @Param id path string true "Build ID"
// @Success 200 {object} dto.APIResponse
// @Router /app-builds/{id} [delete]
func (c *AppBuildController) DeleteAppBuild(ctx *gin.Context) {
	if err := c.buildService.DeleteByID(ctx, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("App build deleted successfully"))
}
