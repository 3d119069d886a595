package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolhub/backend/internal/app/models"
	"github.com/schoolhub/backend/internal/app/models/dto"
	"github.com/schoolhub/backend/internal/app/repositories"
	"github.com/schoolhub/backend/internal/pkg/apperrors"
)

type fakeQuizSessionRepo struct {
	sessions  map[string]*models.QuizSession
	updates   []map[string]interface{}
	updateErr error
}

func newFakeQuizSessionRepo() *fakeQuizSessionRepo {
	return &fakeQuizSessionRepo{sessions: map[string]*models.QuizSession{}}
}

func (r *fakeQuizSessionRepo) Create(_ context.Context, s *models.QuizSession) error {
	r.sessions[s.ID] = s
	return nil
}

func (r *fakeQuizSessionRepo) GetByID(_ context.Context, id string) (*models.QuizSession, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *s
	return &copied, nil
}

func (r *fakeQuizSessionRepo) GetAllByCampusID(_ context.Context, campusID string, _ uint64, _ int) ([]*models.QuizSession, error) {
	var out []*models.QuizSession
	for _, s := range r.sessions {
		if s.CampusID == campusID && !s.IsDeleted {
			copied := *s
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeQuizSessionRepo) GetAllByStudentID(_ context.Context, studentID string, _ uint64, _ int) ([]*models.QuizSession, error) {
	var out []*models.QuizSession
	for _, s := range r.sessions {
		if s.StudentID == studentID && !s.IsDeleted {
			copied := *s
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeQuizSessionRepo) CountByCampusID(_ context.Context, campusID string) (int64, error) {
	var n int64
	for _, s := range r.sessions {
		if s.CampusID == campusID && !s.IsDeleted {
			n++
		}
	}
	return n, nil
}

func (r *fakeQuizSessionRepo) UpdateByID(_ context.Context, id string, patch map[string]interface{}) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	s, ok := r.sessions[id]
	if !ok {
		return repositories.ErrNotFound
	}
	r.updates = append(r.updates, patch)
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
	if v, ok := patch["answers"]; ok {
		s.Answers = v.(models.Metadata)
	}
	if v, ok := patch["is_deleted"]; ok {
		s.IsDeleted = v.(bool)
	}
	if v, ok := patch["updated_at"]; ok {
		s.UpdatedAt = v.(time.Time)
	}
	return nil
}

func newTestQuizSessionService(repo *fakeQuizSessionRepo, now time.Time) *QuizSessionService {
	svc := NewQuizSessionService(repo)
	svc.now = func() time.Time { return now }
	return svc
}

func TestQuizSessionServiceCreate(t *testing.T) {
	repo := newFakeQuizSessionRepo()
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc := newTestQuizSessionService(repo, now)

	session, err := svc.Create(context.Background(), &dto.CreateQuizSessionRequest{
		CampusID:         "campus-1",
		QuizID:           "quiz-1",
		StudentID:        "student-1",
		TimeLimitMinutes: 30,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, session.ID)
	assert.Equal(t, models.QuizSessionNotStarted, session.Status)
	assert.Nil(t, session.StartedAt)
	assert.Nil(t, session.ExpiresAt)
	assert.NotNil(t, session.Answers)
	assert.Equal(t, now, session.CreatedAt)
}

func TestQuizSessionServiceStart(t *testing.T) {
	repo := newFakeQuizSessionRepo()
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc := newTestQuizSessionService(repo, now)

	created, err := svc.Create(context.Background(), &dto.CreateQuizSessionRequest{
		CampusID:         "campus-1",
		QuizID:           "quiz-1",
		StudentID:        "student-1",
		TimeLimitMinutes: 45,
	})
	require.NoError(t, err)

	started, err := svc.Start(context.Background(), created.ID)
	require.NoError(t, err)

	assert.Equal(t, models.QuizSessionInProgress, started.Status)
	require.NotNil(t, started.StartedAt)
	require.NotNil(t, started.ExpiresAt)
	assert.Equal(t, now, *started.StartedAt)
	assert.Equal(t, now.Add(45*time.Minute), *started.ExpiresAt)

	// Starting twice is rejected.
	_, err = svc.Start(context.Background(), created.ID)
	assert.ErrorIs(t, err, apperrors.ErrInvalidSessionTransition)
}

func TestQuizSessionServiceSubmit(t *testing.T) {
	repo := newFakeQuizSessionRepo()
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc := newTestQuizSessionService(repo, now)

	created, err := svc.Create(context.Background(), &dto.CreateQuizSessionRequest{
		CampusID:         "campus-1",
		QuizID:           "quiz-1",
		StudentID:        "student-1",
		TimeLimitMinutes: 30,
	})
	require.NoError(t, err)

	// Submitting before starting must fail.
	_, err = svc.Submit(context.Background(), created.ID, &dto.SubmitQuizSessionRequest{Score: 50})
	assert.ErrorIs(t, err, apperrors.ErrInvalidSessionTransition)

	_, err = svc.Start(context.Background(), created.ID)
	require.NoError(t, err)

	submitted, err := svc.Submit(context.Background(), created.ID, &dto.SubmitQuizSessionRequest{
		Score:   87.5,
		Answers: models.Metadata{"q1": "a"},
	})
	require.NoError(t, err)
	assert.Equal(t, models.QuizSessionCompleted, submitted.Status)
	assert.Equal(t, 87.5, submitted.Score)

	// A completed session cannot be abandoned.
	_, err = svc.Abandon(context.Background(), created.ID)
	assert.ErrorIs(t, err, apperrors.ErrInvalidSessionTransition)
}

func TestQuizSessionServiceAbandon(t *testing.T) {
	repo := newFakeQuizSessionRepo()
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc := newTestQuizSessionService(repo, now)

	created, err := svc.Create(context.Background(), &dto.CreateQuizSessionRequest{
		CampusID:         "campus-1",
		QuizID:           "quiz-1",
		StudentID:        "student-1",
		TimeLimitMinutes: 30,
	})
	require.NoError(t, err)

	abandoned, err := svc.Abandon(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.QuizSessionAbandoned, abandoned.Status)
}

func TestQuizSessionServiceLazyExpiry(t *testing.T) {
	repo := newFakeQuizSessionRepo()
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc := newTestQuizSessionService(repo, start)

	created, err := svc.Create(context.Background(), &dto.CreateQuizSessionRequest{
		CampusID:         "campus-1",
		QuizID:           "quiz-1",
		StudentID:        "student-1",
		TimeLimitMinutes: 30,
	})
	require.NoError(t, err)

	_, err = svc.Start(context.Background(), created.ID)
	require.NoError(t, err)

	// One second past the deadline the session reads as expired.
	svc.now = func() time.Time { return start.Add(30*time.Minute + time.Second) }

	session, err := svc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.QuizSessionExpired, session.Status)

	// The expiry was persisted, so a submit is rejected afterwards.
	assert.Equal(t, models.QuizSessionExpired, repo.sessions[created.ID].Status)
	_, err = svc.Submit(context.Background(), created.ID, &dto.SubmitQuizSessionRequest{Score: 10})
	assert.ErrorIs(t, err, apperrors.ErrInvalidSessionTransition)
}

func TestQuizSessionServiceExpiryReadSurvivesWriteFailure(t *testing.T) {
	repo := newFakeQuizSessionRepo()
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc := newTestQuizSessionService(repo, start)

	created, err := svc.Create(context.Background(), &dto.CreateQuizSessionRequest{
		CampusID:         "campus-1",
		QuizID:           "quiz-1",
		StudentID:        "student-1",
		TimeLimitMinutes: 10,
	})
	require.NoError(t, err)
	_, err = svc.Start(context.Background(), created.ID)
	require.NoError(t, err)

	svc.now = func() time.Time { return start.Add(time.Hour) }
	repo.updateErr = assert.AnError

	session, err := svc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.QuizSessionExpired, session.Status)
}

func TestQuizSessionServiceGetByIDNotFound(t *testing.T) {
	repo := newFakeQuizSessionRepo()
	svc := newTestQuizSessionService(repo, time.Now())

	_, err := svc.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, apperrors.ErrQuizSessionNotFound)
}

func TestQuizSessionServiceSoftDelete(t *testing.T) {
	repo := newFakeQuizSessionRepo()
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc := newTestQuizSessionService(repo, now)

	created, err := svc.Create(context.Background(), &dto.CreateQuizSessionRequest{
		CampusID:         "campus-1",
		QuizID:           "quiz-1",
		StudentID:        "student-1",
		TimeLimitMinutes: 30,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteByID(context.Background(), created.ID))

	_, err = svc.GetByID(context.Background(), created.ID)
	assert.ErrorIs(t, err, apperrors.ErrQuizSessionNotFound)
}
