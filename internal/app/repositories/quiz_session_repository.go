package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/schoolhub/backend/internal/app/models"
	"github.com/schoolhub/backend/internal/pkg/logger"
)

const quizSessionTable = "quiz_sessions"

var quizSessionColumns = []string{
	"id", "campus_id", "quiz_id", "student_id", "status", "time_limit_minutes",
	"started_at", "expires_at", "score", "answers", "is_deleted", "meta_data",
	"created_at", "updated_at",
}

// QuizSessionRepository handles quiz session database operations
type QuizSessionRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewQuizSessionRepository creates a new QuizSessionRepository
func NewQuizSessionRepository(db *pgxpool.Pool) *QuizSessionRepository {
	return &QuizSessionRepository{db: db, sb: statementBuilder()}
}

func scanQuizSession(row pgx.Row) (*models.QuizSession, error) {
	s := &models.QuizSession{}
	err := row.Scan(
		&s.ID, &s.CampusID, &s.QuizID, &s.StudentID, &s.Status, &s.TimeLimitMinutes,
		&s.StartedAt, &s.ExpiresAt, &s.Score, &s.Answers, &s.IsDeleted, &s.Metadata,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Create inserts a new quiz session
func (r *QuizSessionRepository) Create(ctx context.Context, s *models.QuizSession) error {
	sql, args, err := r.sb.Insert(quizSessionTable).
		Columns(quizSessionColumns...).
		Values(s.ID, s.CampusID, s.QuizID, s.StudentID, s.Status, s.TimeLimitMinutes,
			s.StartedAt, s.ExpiresAt, s.Score, s.Answers, s.IsDeleted, s.Metadata,
			s.CreatedAt, s.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create quiz session query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Msg("Error executing create quiz session query")
		return fmt.Errorf("error creating quiz session: %w", err)
	}
	return nil
}

// GetByID retrieves a quiz session by id
func (r *QuizSessionRepository) GetByID(ctx context.Context, id string) (*models.QuizSession, error) {
	sql, args, err := r.sb.Select(quizSessionColumns...).
		From(quizSessionTable).
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get quiz session query: %w", err)
	}

	session, err := scanQuizSession(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Str("quizSessionID", id).Msg("Error scanning quiz session row")
		return nil, fmt.Errorf("error getting quiz session by id: %w", err)
	}
	return session, nil
}

func (r *QuizSessionRepository) list(ctx context.Context, pred squirrel.Eq, offset uint64, limit int) ([]*models.QuizSession, error) {
	sql, args, err := r.sb.Select(quizSessionColumns...).
		From(quizSessionTable).
		Where(pred).
		OrderBy("updated_at DESC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list quiz sessions query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying quiz sessions: %w", err)
	}
	defer rows.Close()

	sessions := []*models.QuizSession{}
	for rows.Next() {
		session, err := scanQuizSession(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning quiz session row: %w", err)
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating quiz session rows: %w", err)
	}
	return sessions, nil
}

// GetAllByCampusID lists non-deleted quiz sessions for a campus
func (r *QuizSessionRepository) GetAllByCampusID(ctx context.Context, campusID string, offset uint64, limit int) ([]*models.QuizSession, error) {
	return r.list(ctx, squirrel.Eq{"campus_id": campusID, "is_deleted": false}, offset, limit)
}

// GetAllByStudentID lists non-deleted quiz sessions for a student
func (r *QuizSessionRepository) GetAllByStudentID(ctx context.Context, studentID string, offset uint64, limit int) ([]*models.QuizSession, error) {
	return r.list(ctx, squirrel.Eq{"student_id": studentID, "is_deleted": false}, offset, limit)
}

// CountByCampusID counts non-deleted quiz sessions for a campus
func (r *QuizSessionRepository) CountByCampusID(ctx context.Context, campusID string) (int64, error) {
	return countRows(ctx, r.db, quizSessionTable, squirrel.Eq{"campus_id": campusID, "is_deleted": false})
}

// UpdateByID applies a column patch; returns ErrNotFound when no row matched
func (r *QuizSessionRepository) UpdateByID(ctx context.Context, id string, patch map[string]interface{}) error {
	sql, args, err := r.sb.Update(quizSessionTable).
		SetMap(patch).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update quiz session query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("quizSessionID", id).Msg("Error executing update quiz session query")
		return fmt.Errorf("error updating quiz session: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
