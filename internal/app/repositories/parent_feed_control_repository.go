package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/schoolhub/backend/internal/app/models"
	"github.com/schoolhub/backend/internal/pkg/logger"
)

const feedControlTable = "parent_feed_controls"

var feedControlColumns = []string{
	"id", "campus_id", "parent_id", "student_id", "feed_access_enabled",
	"is_deleted", "meta_data", "created_at", "updated_at",
}

// ParentFeedControlRepository handles parent feed control database operations
type ParentFeedControlRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewParentFeedControlRepository creates a new ParentFeedControlRepository
func NewParentFeedControlRepository(db *pgxpool.Pool) *ParentFeedControlRepository {
	return &ParentFeedControlRepository{db: db, sb: statementBuilder()}
}

func scanFeedControl(row pgx.Row) (*models.ParentFeedControl, error) {
	c := &models.ParentFeedControl{}
	err := row.Scan(
		&c.ID, &c.CampusID, &c.ParentID, &c.StudentID, &c.FeedAccessEnabled,
		&c.IsDeleted, &c.Metadata, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Upsert inserts a feed control row or, when a row already exists for the
// (parent, student) pair, replaces its switch and metadata.
func (r *ParentFeedControlRepository) Upsert(ctx context.Context, c *models.ParentFeedControl) error {
	sql, args, err := r.sb.Insert(feedControlTable).
		Columns(feedControlColumns...).
		Values(c.ID, c.CampusID, c.ParentID, c.StudentID, c.FeedAccessEnabled,
			c.IsDeleted, c.Metadata, c.CreatedAt, c.UpdatedAt).
		Suffix(`ON CONFLICT (parent_id, student_id) DO UPDATE SET
			feed_access_enabled = EXCLUDED.feed_access_enabled,
			meta_data = EXCLUDED.meta_data,
			is_deleted = FALSE,
			updated_at = EXCLUDED.updated_at
			RETURNING ` + strings.Join(feedControlColumns, ", ")).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build upsert feed control query: %w", err)
	}

	// An existing pair keeps its id and created_at; scan the stored row back.
	stored, err := scanFeedControl(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		logger.Error().Err(err).Msg("Error executing upsert feed control query")
		return fmt.Errorf("error upserting feed control: %w", err)
	}
	*c = *stored
	return nil
}

// GetByID retrieves a feed control by id
func (r *ParentFeedControlRepository) GetByID(ctx context.Context, id string) (*models.ParentFeedControl, error) {
	sql, args, err := r.sb.Select(feedControlColumns...).
		From(feedControlTable).
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get feed control query: %w", err)
	}

	control, err := scanFeedControl(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Str("feedControlID", id).Msg("Error scanning feed control row")
		return nil, fmt.Errorf("error getting feed control by id: %w", err)
	}
	return control, nil
}

// GetByParentAndStudent retrieves the control row for a (parent, student)
// pair; ErrNotFound means no control exists and default access applies.
func (r *ParentFeedControlRepository) GetByParentAndStudent(ctx context.Context, parentID, studentID string) (*models.ParentFeedControl, error) {
	sql, args, err := r.sb.Select(feedControlColumns...).
		From(feedControlTable).
		Where(squirrel.Eq{"parent_id": parentID, "student_id": studentID, "is_deleted": false}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get feed control query: %w", err)
	}

	control, err := scanFeedControl(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error getting feed control by pair: %w", err)
	}
	return control, nil
}

// GetAllByCampusID lists non-deleted feed controls for a campus
func (r *ParentFeedControlRepository) GetAllByCampusID(ctx context.Context, campusID string, offset uint64, limit int) ([]*models.ParentFeedControl, error) {
	sql, args, err := r.sb.Select(feedControlColumns...).
		From(feedControlTable).
		Where(squirrel.Eq{"campus_id": campusID, "is_deleted": false}).
		OrderBy("updated_at DESC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list feed controls query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying feed controls: %w", err)
	}
	defer rows.Close()

	controls := []*models.ParentFeedControl{}
	for rows.Next() {
		control, err := scanFeedControl(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning feed control row: %w", err)
		}
		controls = append(controls, control)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating feed control rows: %w", err)
	}
	return controls, nil
}

// CountByCampusID counts non-deleted feed controls for a campus
func (r *ParentFeedControlRepository) CountByCampusID(ctx context.Context, campusID string) (int64, error) {
	return countRows(ctx, r.db, feedControlTable, squirrel.Eq{"campus_id": campusID, "is_deleted": false})
}

// UpdateByID applies a column patch; returns ErrNotFound when no row matched
func (r *ParentFeedControlRepository) UpdateByID(ctx context.Context, id string, patch map[string]interface{}) error {
	sql, args, err := r.sb.Update(feedControlTable).
		SetMap(patch).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update feed control query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("feedControlID", id).Msg("Error executing update feed control query")
		return fmt.Errorf("error updating feed control: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
