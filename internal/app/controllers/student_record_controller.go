package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/schoolhub/backend/internal/app/models/dto"
	"github.com/schoolhub/backend/internal/app/services"
	"github.com/schoolhub/backend/internal/middleware"
	"github.com/schoolhub/backend/internal/pkg/helpers"
)

// StudentRecordController handles student record endpoints
type StudentRecordController struct {
	recordService *services.StudentRecordService
}

// NewStudentRecordController creates a new StudentRecordController
func NewStudentRecordController(recordService *services.StudentRecordService) *StudentRecordController {
	return &StudentRecordController{recordService: recordService}
}

// CreateStudentRecord adds an entry to a student's file
// @Summary Create a student record
// @Tags student-records
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateStudentRecordRequest true "Record information"
// @Success 201 {object} dto.APIResponse{data=models.StudentRecord}
// @Router /student-records [post]
func (c *StudentRecordController) CreateStudentRecord(ctx *gin.Context) {
	var req dto.CreateStudentRecordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(middleware.HandleValidationError(err)))
		return
	}

	record, err := c.recordService.Create(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(record))
}

// GetStudentRecordByID retrieves a student record by id
// @Summary Get student record by ID
// @Tags student-records
// @Produce json
// @Security BearerAuth
// @Param id path string true "Record ID"
// @Success 200 {object} dto.APIResponse{data=models.StudentRecord}
// @Failure 404 {object} dto.APIResponse "Student record not found"
// @Router /student-records/{id} [get]
func (c *StudentRecordController) GetStudentRecordByID(ctx *gin.Context) {
	record, err := c.recordService.GetByID(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(record))
}

// GetAllStudentRecords lists records scoped by campus, or by student when studentId is given
// @Summary List student records
// @Tags student-records
// @Produce json
// @Security BearerAuth
// @Param campusId query string false "Campus ID"
// @Param studentId query string false "Student ID"
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse}
// @Router /student-records [get]
func (c *StudentRecordController) GetAllStudentRecords(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	if studentID := ctx.Query("studentId"); studentID != "" {
		records, err := c.recordService.GetAllByStudentID(ctx, studentID, offset, limit)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, dto.NewSuccessResponse(records))
		return
	}

	campusID, ok := requireQuery(ctx, "campusId")
	if !ok {
		return
	}
	records, total, err := c.recordService.GetAllByCampusID(ctx, campusID, offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.PaginatedResponse{
		Items:      records,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}))
}

// UpdateStudentRecord applies a partial update
// @Summary Update a student record
// @Tags student-records
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Record ID"
// @Param request body dto.UpdateStudentRecordRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse "Student record not updated"
// @Router /student-records/{id} [patch]
func (c *StudentRecordController) UpdateStudentRecord(ctx *gin.Context) {
	var req dto.UpdateStudentRecordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(middleware.HandleValidationError(err)))
		return
	}

	if err := c.recordService.UpdateByID(ctx, ctx.Param("id"), &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Student record updated successfully"))
}

// DeleteStudentRecord soft-deletes a student record
// @Summary Delete a student record
// @Tags student-records
// @Produce json
// @Security BearerAuth
// @Param id path string true "Record ID"
// @Success 200 {object} dto.APIResponse
// @Router /student-records/{id} [delete]
func (c *StudentRecordController) DeleteStudentRecord(ctx *gin.Context) {
	if err := c.recordService.DeleteByID(ctx, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Student record deleted successfully"))
}
