package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/schoolhub/backend/internal/app/models/dto"
	"github.com/schoolhub/backend/internal/app/services"
	"github.com/schoolhub/backend/internal/middleware"
	"github.com/schoolhub/backend/internal/pkg/helpers"
)

// SyllabusController handles syllabus endpoints
type SyllabusController struct {
	syllabusService *services.SyllabusService
}

// NewSyllabusController creates a new SyllabusController
func NewSyllabusController(syllabusService *services.SyllabusService) *SyllabusController {
	return &SyllabusController{syllabusService: syllabusService}
}

// CreateSyllabus handles syllabus creation
// @Summary Create a syllabus
// @Tags syllabi
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateSyllabusRequest true "Syllabus information"
// @Success 201 {object} dto.APIResponse{data=models.Syllabus}
// @Router /syllabi [post]
func (c *SyllabusController) CreateSyllabus(ctx *gin.Context) {
	var req dto.CreateSyllabusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(middleware.HandleValidationError(err)))
		return
	}

	syllabus, err := c.syllabusService.Create(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(syllabus))
}

// GetSyllabusByID retrieves a syllabus by id
// @Summary Get syllabus by ID
// @Tags syllabi
// @Produce json
// @Security BearerAuth
// @Param id path string true "Syllabus ID"
// @Success 200 {object} dto.APIResponse{data=models.Syllabus}
// @Failure 404 {object} dto.APIResponse "Syllabus not found"
// @Router /syllabi/{id} [get]
func (c *SyllabusController) GetSyllabusByID(ctx *gin.Context) {
	syllabus, err := c.syllabusService.GetByID(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(syllabus))
}

// GetAllSyllabi lists syllabi scoped by campus, or by class when classId is given
// @Summary List syllabi
// @Tags syllabi
// @Produce json
// @Security BearerAuth
// @Param campusId query string false "Campus ID"
// @Param classId query string false "Class ID"
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse}
// @Router /syllabi [get]
func (c *SyllabusController) GetAllSyllabi(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	if classID := ctx.Query("classId"); classID != "" {
		syllabi, err := c.syllabusService.GetAllByClassID(ctx, classID, offset, limit)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, dto.NewSuccessResponse(syllabi))
		return
	}

	campusID, ok := requireQuery(ctx, "campusId")
	if !ok {
		return
	}
	syllabi, total, err := c.syllabusService.GetAllByCampusID(ctx, campusID, offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.PaginatedResponse{
		Items:      syllabi,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}))
}

// UpdateSyllabus applies a partial update
// @Summary Update a syllabus
// @Tags syllabi
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Syllabus ID"
// @Param request body dto.UpdateSyllabusRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse
// @Router /syllabi/{id} [patch]
func (c *SyllabusController) UpdateSyllabus(ctx *gin.Context) {
	var req dto.UpdateSyllabusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(middleware.HandleValidationError(err)))
		return
	}

	if err := c.syllabusService.UpdateByID(ctx, ctx.Param("id"), &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Syllabus updated successfully"))
}

// DeleteSyllabus soft-deletes a syllabus
// @Summary Delete a syllabus
// @Tags syllabi
// @Produce json
// @Security BearerAuth
// @Param id path string true "Syllabus ID"
// @Success 200 {object} dto.APIResponse
// @Router /syllabi/{id} [delete]
func (c *SyllabusController) DeleteSyllabus(ctx *gin.Context) {
	if err := c.syllabusService.DeleteByID(ctx, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Syllabus deleted successfully"))
}
