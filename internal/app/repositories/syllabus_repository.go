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

const syllabusTable = "syllabi"

var syllabusColumns = []string{
	"id", "campus_id", "class_id", "subject", "title", "description", "units",
	"attachment_url", "is_deleted", "meta_data", "created_at", "updated_at",
}

// SyllabusRepository handles syllabus database operations
type SyllabusRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewSyllabusRepository creates a new SyllabusRepository
func NewSyllabusRepository(db *pgxpool.Pool) *SyllabusRepository {
	return &SyllabusRepository{db: db, sb: statementBuilder()}
}

func scanSyllabus(row pgx.Row) (*models.Syllabus, error) {
	s := &models.Syllabus{}
	err := row.Scan(
		&s.ID, &s.CampusID, &s.ClassID, &s.Subject, &s.Title, &s.Description,
		&s.Units, &s.AttachmentURL, &s.IsDeleted, &s.Metadata, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Create inserts a new syllabus
func (r *SyllabusRepository) Create(ctx context.Context, s *models.Syllabus) error {
	sql, args, err := r.sb.Insert(syllabusTable).
		Columns(syllabusColumns...).
		Values(s.ID, s.CampusID, s.ClassID, s.Subject, s.Title, s.Description,
			s.Units, s.AttachmentURL, s.IsDeleted, s.Metadata, s.CreatedAt, s.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create syllabus query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Msg("Error executing create syllabus query")
		return fmt.Errorf("error creating syllabus: %w", err)
	}
	return nil
}

// GetByID retrieves a syllabus by id
func (r *SyllabusRepository) GetByID(ctx context.Context, id string) (*models.Syllabus, error) {
	sql, args, err := r.sb.Select(syllabusColumns...).
		From(syllabusTable).
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get syllabus query: %w", err)
	}

	syllabus, err := scanSyllabus(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Str("syllabusID", id).Msg("Error scanning syllabus row")
		return nil, fmt.Errorf("error getting syllabus by id: %w", err)
	}
	return syllabus, nil
}

func (r *SyllabusRepository) list(ctx context.Context, pred squirrel.Eq, offset uint64, limit int) ([]*models.Syllabus, error) {
	sql, args, err := r.sb.Select(syllabusColumns...).
		From(syllabusTable).
		Where(pred).
		OrderBy("updated_at DESC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list syllabi query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying syllabi: %w", err)
	}
	defer rows.Close()

	syllabi := []*models.Syllabus{}
	for rows.Next() {
		syllabus, err := scanSyllabus(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning syllabus row: %w", err)
		}
		syllabi = append(syllabi, syllabus)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating syllabus rows: %w", err)
	}
	return syllabi, nil
}

// GetAllByCampusID lists non-deleted syllabi for a campus
func (r *SyllabusRepository) GetAllByCampusID(ctx context.Context, campusID string, offset uint64, limit int) ([]*models.Syllabus, error) {
	return r.list(ctx, squirrel.Eq{"campus_id": campusID, "is_deleted": false}, offset, limit)
}

// GetAllByClassID lists non-deleted syllabi for a class
func (r *SyllabusRepository) GetAllByClassID(ctx context.Context, classID string, offset uint64, limit int) ([]*models.Syllabus, error) {
	return r.list(ctx, squirrel.Eq{"class_id": classID, "is_deleted": false}, offset, limit)
}

// CountByCampusID counts non-deleted syllabi for a campus
func (r *SyllabusRepository) CountByCampusID(ctx context.Context, campusID string) (int64, error) {
	return countRows(ctx, r.db, syllabusTable, squirrel.Eq{"campus_id": campusID, "is_deleted": false})
}

// UpdateByID applies a column patch; returns ErrNotFound when no row matched
func (r *SyllabusRepository) UpdateByID(ctx context.Context, id string, patch map[string]interface{}) error {
	sql, args, err := r.sb.Update(syllabusTable).
		SetMap(patch).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update syllabus query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("syllabusID", id).Msg("Error executing update syllabus query")
		return fmt.Errorf("error updating syllabus: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
