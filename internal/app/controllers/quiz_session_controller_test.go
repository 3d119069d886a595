package controllers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolhub/backend/internal/app/models"
	"github.com/schoolhub/backend/internal/app/models/dto"
	"github.com/schoolhub/backend/internal/app/repositories"
	"github.com/schoolhub/backend/internal/app/services"
)

type memQuizSessionRepo struct {
	sessions map[string]*models.QuizSession
}

func newMemQuizSessionRepo() *memQuizSessionRepo {
	return &memQuizSessionRepo{sessions: map[string]*models.QuizSession{}}
}

func (r *memQuizSessionRepo) Create(_ context.Context, s *models.QuizSession) error {
	r.sessions[s.ID] = s
	return nil
}

func (r *memQuizSessionRepo) GetByID(_ context.Context, id string) (*models.QuizSession, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *s
	return &copied, nil
}

func (r *memQuizSessionRepo) GetAllByCampusID(_ context.Context, campusID string, _ uint64, _ int) ([]*models.QuizSession, error) {
	var out []*models.QuizSession
	for _, s := range r.sessions {
		if s.CampusID == campusID && !s.IsDeleted {
			copied := *s
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *memQuizSessionRepo) GetAllByStudentID(_ context.Context, studentID string, _ uint64, _ int) ([]*models.QuizSession, error) {
	var out []*models.QuizSession
	for _, s := range r.sessions {
		if s.StudentID == studentID && !s.IsDeleted {
			copied := *s
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *memQuizSessionRepo) CountByCampusID(_ context.Context, campusID string) (int64, error) {
	var n int64
	for _, s := range r.sessions {
		if s.CampusID == campusID && !s.IsDeleted {
			n++
		}
	}
	return n, nil
}

func (r *memQuizSessionRepo) UpdateByID(_ context.Context, id string, patch map[string]interface{}) error {
	s, ok := r.sessions[id]
	if !ok {
		return repositories.ErrNotFound
	}
	if v, ok := patch["status"]; ok {
		s.Status = v.(models.QuizSessionStatus)
	}
	if v, ok := patch["started_at"]; ok {
		t := v.(time.Time)
		s.StartedAt = &t
	}
	if v, ok := patch["expires_at"]; ok {
		t := v.(time.Time)
		s.ExpiresAt = &t
	}
	if v, ok := patch["score"]; ok {
		s.Score = v.(float64)
	}
	if v, ok := patch["is_deleted"]; ok {
		s.IsDeleted = v.(bool)
	}
	return nil
}

func newQuizSessionTestRouter(repo *memQuizSessionRepo) *gin.Engine {
	controller := NewQuizSessionController(services.NewQuizSessionService(repo))

	router := gin.New()
	router.POST("/quiz-sessions", controller.CreateQuizSession)
	router.GET("/quiz-sessions/:id", controller.GetQuizSessionByID)
	router.POST("/quiz-sessions/:id/start", controller.StartQuizSession)
	router.POST("/quiz-sessions/:id/submit", controller.SubmitQuizSession)
	router.POST("/quiz-sessions/:id/abandon", controller.AbandonQuizSession)
	return router
}

func TestQuizSessionLifecycleOverHTTP(t *testing.T) {
	repo := newMemQuizSessionRepo()
	router := newQuizSessionTestRouter(repo)

	rec, envelope := doJSON(t, router, http.MethodPost, "/quiz-sessions", map[string]interface{}{
		"campusId":         "campus-1",
		"quizId":           "quiz-1",
		"studentId":        "student-1",
		"timeLimitMinutes": 30,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	id := envelope.Data.(map[string]interface{})["id"].(string)

	rec, envelope = doJSON(t, router, http.MethodPost, "/quiz-sessions/"+id+"/start", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data := envelope.Data.(map[string]interface{})
	assert.Equal(t, "in_progress", data["status"])
	assert.NotEmpty(t, data["expiresAt"])

	rec, envelope = doJSON(t, router, http.MethodPost, "/quiz-sessions/"+id+"/submit", map[string]interface{}{
		"score":   92.5,
		"answers": map[string]string{"q1": "b"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	data = envelope.Data.(map[string]interface{})
	assert.Equal(t, "completed", data["status"])
	assert.Equal(t, 92.5, data["score"])
}

func TestQuizSessionInvalidTransitionConflicts(t *testing.T) {
	repo := newMemQuizSessionRepo()
	router := newQuizSessionTestRouter(repo)

	rec, envelope := doJSON(t, router, http.MethodPost, "/quiz-sessions", map[string]interface{}{
		"campusId":         "campus-1",
		"quizId":           "quiz-1",
		"studentId":        "student-1",
		"timeLimitMinutes": 30,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	id := envelope.Data.(map[string]interface{})["id"].(string)

	// Submitting a session that was never started maps to a conflict.
	rec, envelope = doJSON(t, router, http.MethodPost, "/quiz-sessions/"+id+"/submit", map[string]interface{}{
		"score": 10,
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, dto.ErrorCodeConflict, envelope.Error.Code)

	rec, _ = doJSON(t, router, http.MethodPost, "/quiz-sessions/"+id+"/abandon", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = doJSON(t, router, http.MethodPost, "/quiz-sessions/"+id+"/start", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestQuizSessionNotFoundOverHTTP(t *testing.T) {
	router := newQuizSessionTestRouter(newMemQuizSessionRepo())

	rec, envelope := doJSON(t, router, http.MethodGet, "/quiz-sessions/missing", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, dto.ErrorCodeResourceNotFound, envelope.Error.Code)
}
