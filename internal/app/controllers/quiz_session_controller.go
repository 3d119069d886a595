package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/schoolhub/backend/internal/app/models/dto"
	"github.com/schoolhub/backend/internal/app/services"
	"github.com/schoolhub/backend/internal/middleware"
	"github.com/schoolhub/backend/internal/pkg/helpers"
)

// QuizSessionController handles quiz session lifecycle endpoints
type QuizSessionController struct {
	sessionService *services.QuizSessionService
}

// NewQuizSessionController creates a new QuizSessionController
func NewQuizSessionController(sessionService *services.QuizSessionService) *QuizSessionController {
	return &QuizSessionController{sessionService: sessionService}
}

// CreateQuizSession opens a session in the not_started state
// @Summary Create a quiz session
// @Tags quiz-sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateQuizSessionRequest true "Session information"
// @Success 201 {object} dto.APIResponse{data=models.QuizSession}
// @Router /quiz-sessions [post]
func (c *QuizSessionController) CreateQuizSession(ctx *gin.Context) {
	var req dto.CreateQuizSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(middleware.HandleValidationError(err)))
		return
	}

	session, err := c.sessionService.Create(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(session))
}

// GetQuizSessionByID retrieves a session; overdue in-progress sessions are
// reported as expired.
// @Summary Get quiz session by ID
// @Tags quiz-sessions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 200 {object} dto.APIResponse{data=models.QuizSession}
// @Failure 404 {object} dto.APIResponse "Quiz session not found"
// @Router /quiz-sessions/{id} [get]
func (c *QuizSessionController) GetQuizSessionByID(ctx *gin.Context) {
	session, err := c.sessionService.GetByID(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(session))
}

// StartQuizSession moves a session to in_progress and stamps its deadline
// @Summary Start a quiz session
// @Tags quiz-sessions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 200 {object} dto.APIResponse{data=models.QuizSession}
// @Failure 409 {object} dto.APIResponse "Session is not in the not_started state"
// @Router /quiz-sessions/{id}/start [post]
func (c *QuizSessionController) StartQuizSession(ctx *gin.Context) {
	session, err := c.sessionService.Start(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(session))
}

// SubmitQuizSession completes an in-progress session
// @Summary Submit a quiz session
// @Tags quiz-sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param request body dto.SubmitQuizSessionRequest true "Score and answers"
// @Success 200 {object} dto.APIResponse{data=models.QuizSession}
// @Failure 409 {object} dto.APIResponse "Session is not in progress or has expired"
// @Router /quiz-sessions/{id}/submit [post]
func (c *QuizSessionController) SubmitQuizSession(ctx *gin.Context) {
	var req dto.SubmitQuizSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(middleware.HandleValidationError(err)))
		return
	}

	session, err := c.sessionService.Submit(ctx, ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(session))
}

// AbandonQuizSession gives up an unfinished session
// @Summary Abandon a quiz session
// @Tags quiz-sessions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 200 {object} dto.APIResponse{data=models.QuizSession}
// @Failure 409 {object} dto.APIResponse "Session already finished"
// @Router /quiz-sessions/{id}/abandon [post]
func (c *QuizSessionController) AbandonQuizSession(ctx *gin.Context) {
	session, err := c.sessionService.Abandon(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(session))
}

// GetAllQuizSessions lists sessions scoped by campus, or by student when studentId is given
// @Summary List quiz sessions
// @Tags quiz-sessions
// @Produce json
// @Security BearerAuth
// @Param campusId query string false "Campus ID"
// @Param studentId query string false "Student ID"
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse}
// @Router /quiz-sessions [get]
func (c *QuizSessionController) GetAllQuizSessions(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	if studentID := ctx.Query("studentId"); studentID != "" {
		sessions, err := c.sessionService.GetAllByStudentID(ctx, studentID, offset, limit)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, dto.NewSuccessResponse(sessions))
		return
	}

	campusID, ok := requireQuery(ctx, "campusId")
	if !ok {
		return
	}
	sessions, total, err := c.sessionService.GetAllByCampusID(ctx, campusID, offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.PaginatedResponse{
		Items:      sessions,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}))
}

// DeleteQuizSession soft-deletes a session
// @Summary Delete a quiz session
// @Tags quiz-sessions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 200 {object} dto.APIResponse
// @Router /quiz-sessions/{id} [delete]
func (c *QuizSessionController) DeleteQuizSession(ctx *gin.Context) {
	if err := c.sessionService.DeleteByID(ctx, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Quiz session deleted successfully"))
}
