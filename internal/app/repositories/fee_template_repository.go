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

const feeTemplateTable = "fee_templates"

var feeTemplateColumns = []string{
	"id", "campus_id", "name", "class_id", "amount", "due_date",
	"applicable_student_ids", "description", "is_deleted", "meta_data",
	"created_at", "updated_at",
}

// FeeTemplateRepository handles fee template database operations
type FeeTemplateRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewFeeTemplateRepository creates a new FeeTemplateRepository
func NewFeeTemplateRepository(db *pgxpool.Pool) *FeeTemplateRepository {
	return &FeeTemplateRepository{db: db, sb: statementBuilder()}
}

func scanFeeTemplate(row pgx.Row) (*models.FeeTemplate, error) {
	t := &models.FeeTemplate{}
	err := row.Scan(
		&t.ID, &t.CampusID, &t.Name, &t.ClassID, &t.Amount, &t.DueDate,
		&t.ApplicableStudentIDs, &t.Description, &t.IsDeleted, &t.Metadata,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Create inserts a new fee template
func (r *FeeTemplateRepository) Create(ctx context.Context, t *models.FeeTemplate) error {
	sql, args, err := r.sb.Insert(feeTemplateTable).
		Columns(feeTemplateColumns...).
		Values(t.ID, t.CampusID, t.Name, t.ClassID, t.Amount, t.DueDate,
			t.ApplicableStudentIDs, t.Description, t.IsDeleted, t.Metadata,
			t.CreatedAt, t.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create fee template query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Msg("Error executing create fee template query")
		return fmt.Errorf("error creating fee template: %w", err)
	}
	return nil
}

// GetByID retrieves a fee template by id
func (r *FeeTemplateRepository) GetByID(ctx context.Context, id string) (*models.FeeTemplate, error) {
	sql, args, err := r.sb.Select(feeTemplateColumns...).
		From(feeTemplateTable).
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get fee template query: %w", err)
	}

	tmpl, err := scanFeeTemplate(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Str("feeTemplateID", id).Msg("Error scanning fee template row")
		return nil, fmt.Errorf("error getting fee template by id: %w", err)
	}
	return tmpl, nil
}

// GetAllByCampusID lists non-deleted templates for a campus
func (r *FeeTemplateRepository) GetAllByCampusID(ctx context.Context, campusID string, offset uint64, limit int) ([]*models.FeeTemplate, error) {
	sql, args, err := r.sb.Select(feeTemplateColumns...).
		From(feeTemplateTable).
		Where(squirrel.Eq{"campus_id": campusID, "is_deleted": false}).
		OrderBy("updated_at DESC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list fee templates query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying fee templates: %w", err)
	}
	defer rows.Close()

	templates := []*models.FeeTemplate{}
	for rows.Next() {
		tmpl, err := scanFeeTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning fee template row: %w", err)
		}
		templates = append(templates, tmpl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fee template rows: %w", err)
	}
	return templates, nil
}

// CountByCampusID counts non-deleted templates for a campus
func (r *FeeTemplateRepository) CountByCampusID(ctx context.Context, campusID string) (int64, error) {
	return countRows(ctx, r.db, feeTemplateTable, squirrel.Eq{"campus_id": campusID, "is_deleted": false})
}

// UpdateByID applies a column patch; returns ErrNotFound when no row matched
func (r *FeeTemplateRepository) UpdateByID(ctx context.Context, id string, patch map[string]interface{}) error {
	sql, args, err := r.sb.Update(feeTemplateTable).
		SetMap(patch).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update fee template query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("feeTemplateID", id).Msg("Error executing update fee template query")
		return fmt.Errorf("error updating fee template: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
