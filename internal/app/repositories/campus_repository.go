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

const campusTable = "campuses"

var campusColumns = []string{
	"id", "name", "address", "domain", "contact_email", "contact_phone",
	"is_active", "is_deleted", "meta_data", "created_at", "updated_at",
}

// CampusRepository handles campus database operations
type CampusRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCampusRepository creates a new CampusRepository
func NewCampusRepository(db *pgxpool.Pool) *CampusRepository {
	return &CampusRepository{db: db, sb: statementBuilder()}
}

func scanCampus(row pgx.Row) (*models.Campus, error) {
	c := &models.Campus{}
	err := row.Scan(
		&c.ID, &c.Name, &c.Address, &c.Domain, &c.ContactEmail, &c.ContactPhone,
		&c.IsActive, &c.IsDeleted, &c.Metadata, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Create inserts a new campus
func (r *CampusRepository) Create(ctx context.Context, c *models.Campus) error {
	sql, args, err := r.sb.Insert(campusTable).
		Columns(campusColumns...).
		Values(c.ID, c.Name, c.Address, c.Domain, c.ContactEmail, c.ContactPhone,
			c.IsActive, c.IsDeleted, c.Metadata, c.CreatedAt, c.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create campus query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Msg("Error executing create campus query")
		return fmt.Errorf("error creating campus: %w", err)
	}
	return nil
}

// GetByID retrieves a campus by id
func (r *CampusRepository) GetByID(ctx context.Context, id string) (*models.Campus, error) {
	sql, args, err := r.sb.Select(campusColumns...).
		From(campusTable).
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get campus query: %w", err)
	}

	campus, err := scanCampus(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Str("campusID", id).Msg("Error scanning campus row")
		return nil, fmt.Errorf("error getting campus by id: %w", err)
	}
	return campus, nil
}

// GetAll lists non-deleted campuses, most recently updated first
func (r *CampusRepository) GetAll(ctx context.Context, offset uint64, limit int) ([]*models.Campus, error) {
	sql, args, err := r.sb.Select(campusColumns...).
		From(campusTable).
		Where(squirrel.Eq{"is_deleted": false}).
		OrderBy("updated_at DESC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list campuses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list campuses query")
		return nil, fmt.Errorf("error querying campuses: %w", err)
	}
	defer rows.Close()

	campuses := []*models.Campus{}
	for rows.Next() {
		campus, err := scanCampus(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning campus row: %w", err)
		}
		campuses = append(campuses, campus)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating campus rows: %w", err)
	}
	return campuses, nil
}

// Count counts non-deleted campuses
func (r *CampusRepository) Count(ctx context.Context) (int64, error) {
	return countRows(ctx, r.db, campusTable, squirrel.Eq{"is_deleted": false})
}

// UpdateByID applies a column patch; returns ErrNotFound when no row matched
func (r *CampusRepository) UpdateByID(ctx context.Context, id string, patch map[string]interface{}) error {
	sql, args, err := r.sb.Update(campusTable).
		SetMap(patch).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update campus query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("campusID", id).Msg("Error executing update campus query")
		return fmt.Errorf("error updating campus: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
