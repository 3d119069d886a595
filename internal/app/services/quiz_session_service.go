package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/schoolhub/backend/internal/app/models"
	"github.com/schoolhub/backend/internal/app/models/dto"
	"github.com/schoolhub/backend/internal/app/repositories"
	"github.com/schoolhub/backend/internal/pkg/apperrors"
	"github.com/schoolhub/backend/internal/pkg/logger"
)

type quizSessionRepository interface {
	Create(ctx context.Context, s *models.QuizSession) error
	GetByID(ctx context.Context, id string) (*models.QuizSession, error)
	GetAllByCampusID(ctx context.Context, campusID string, offset uint64, limit int) ([]*models.QuizSession, error)
	GetAllByStudentID(ctx context.Context, studentID string, offset uint64, limit int) ([]*models.QuizSession, error)
	CountByCampusID(ctx context.Context, campusID string) (int64, error)
	UpdateByID(ctx context.Context, id string, patch map[string]interface{}) error
}

// QuizSessionService manages the quiz attempt lifecycle:
// not_started -> in_progress -> completed | expired | abandoned.
// Expiry is evaluated when a session is read; there is no background sweep.
type QuizSessionService struct {
	sessionRepo quizSessionRepository
	// now is swappable so expiry can be tested against fixed clocks.
	now func() time.Time
}

// NewQuizSessionService creates a new quiz session service instance
func NewQuizSessionService(sessionRepo quizSessionRepository) *QuizSessionService {
	return &QuizSessionService{sessionRepo: sessionRepo, now: time.Now}
}

// Create opens a session in the not_started state.
func (s *QuizSessionService) Create(ctx context.Context, req *dto.CreateQuizSessionRequest) (*models.QuizSession, error) {
	now := s.now()
	session := &models.QuizSession{
		ID:               uuid.New().String(),
		CampusID:         req.CampusID,
		QuizID:           req.QuizID,
		StudentID:        req.StudentID,
		Status:           models.QuizSessionNotStarted,
		TimeLimitMinutes: req.TimeLimitMinutes,
		Answers:          models.Metadata{},
		Metadata:         req.Metadata,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// GetByID returns a session with expiry applied lazily: an in-progress
// session past its deadline is reported (and persisted) as expired.
func (s *QuizSessionService) GetByID(ctx context.Context, id string) (*models.QuizSession, error) {
	session, err := s.sessionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrQuizSessionNotFound
		}
		return nil, err
	}
	if session.IsDeleted {
		return nil, apperrors.ErrQuizSessionNotFound
	}

	s.applyLazyExpiry(ctx, session)
	return session, nil
}

// Start moves a not_started session to in_progress and stamps its deadline.
func (s *QuizSessionService) Start(ctx context.Context, id string) (*models.QuizSession, error) {
	session, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.Status != models.QuizSessionNotStarted {
		return nil, fmt.Errorf("%w: cannot start a session in state %q", apperrors.ErrInvalidSessionTransition, session.Status)
	}

	now := s.now()
	expiresAt := now.Add(time.Duration(session.TimeLimitMinutes) * time.Minute)
	patch := map[string]interface{}{
		"status":     models.QuizSessionInProgress,
		"started_at": now,
		"expires_at": expiresAt,
		"updated_at": now,
	}
	if err := s.sessionRepo.UpdateByID(ctx, id, patch); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrQuizSessionNotUpdated
		}
		return nil, err
	}

	session.Status = models.QuizSessionInProgress
	session.StartedAt = &now
	session.ExpiresAt = &expiresAt
	session.UpdatedAt = now
	return session, nil
}

// Submit completes an in-progress session with the student's score and
// answers. A session past its deadline cannot be submitted.
func (s *QuizSessionService) Submit(ctx context.Context, id string, req *dto.SubmitQuizSessionRequest) (*models.QuizSession, error) {
	session, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.Status != models.QuizSessionInProgress {
		return nil, fmt.Errorf("%w: cannot submit a session in state %q", apperrors.ErrInvalidSessionTransition, session.Status)
	}

	now := s.now()
	patch := map[string]interface{}{
		"status":     models.QuizSessionCompleted,
		"score":      req.Score,
		"answers":    req.Answers,
		"updated_at": now,
	}
	if err := s.sessionRepo.UpdateByID(ctx, id, patch); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrQuizSessionNotUpdated
		}
		return nil, err
	}

	session.Status = models.QuizSessionCompleted
	session.Score = req.Score
	session.Answers = req.Answers
	session.UpdatedAt = now
	return session, nil
}

// Abandon gives up a session that has not finished yet.
func (s *QuizSessionService) Abandon(ctx context.Context, id string) (*models.QuizSession, error) {
	session, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.Status != models.QuizSessionNotStarted && session.Status != models.QuizSessionInProgress {
		return nil, fmt.Errorf("%w: cannot abandon a session in state %q", apperrors.ErrInvalidSessionTransition, session.Status)
	}

	now := s.now()
	patch := map[string]interface{}{
		"status":     models.QuizSessionAbandoned,
		"updated_at": now,
	}
	if err := s.sessionRepo.UpdateByID(ctx, id, patch); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrQuizSessionNotUpdated
		}
		return nil, err
	}

	session.Status = models.QuizSessionAbandoned
	session.UpdatedAt = now
	return session, nil
}

// GetAllByCampusID lists a campus's sessions with expiry applied lazily.
func (s *QuizSessionService) GetAllByCampusID(ctx context.Context, campusID string, offset uint64, limit int) ([]*models.QuizSession, int64, error) {
	sessions, err := s.sessionRepo.GetAllByCampusID(ctx, campusID, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.sessionRepo.CountByCampusID(ctx, campusID)
	if err != nil {
		return nil, 0, err
	}
	for _, session := range sessions {
		s.applyLazyExpiry(ctx, session)
	}
	return sessions, total, nil
}

// GetAllByStudentID lists one student's sessions with expiry applied lazily.
func (s *QuizSessionService) GetAllByStudentID(ctx context.Context, studentID string, offset uint64, limit int) ([]*models.QuizSession, error) {
	sessions, err := s.sessionRepo.GetAllByStudentID(ctx, studentID, offset, limit)
	if err != nil {
		return nil, err
	}
	for _, session := range sessions {
		s.applyLazyExpiry(ctx, session)
	}
	return sessions, nil
}

// DeleteByID soft-deletes a session.
func (s *QuizSessionService) DeleteByID(ctx context.Context, id string) error {
	patch := map[string]interface{}{
		"is_deleted": true,
		"updated_at": s.now(),
	}
	if err := s.sessionRepo.UpdateByID(ctx, id, patch); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.ErrQuizSessionNotFound
		}
		return err
	}
	return nil
}

// applyLazyExpiry flips an overdue in-progress session to expired in memory
// and persists the transition best-effort; a write failure only logs.
func (s *QuizSessionService) applyLazyExpiry(ctx context.Context, session *models.QuizSession) {
	now := s.now()
	if !session.IsExpired(now) {
		return
	}

	session.Status = models.QuizSessionExpired
	patch := map[string]interface{}{
		"status":     models.QuizSessionExpired,
		"updated_at": now,
	}
	if err := s.sessionRepo.UpdateByID(ctx, session.ID, patch); err != nil {
		logger.Warn().Err(err).Str("quizSessionID", session.ID).Msg("Failed to persist lazy expiry")
	}
}
