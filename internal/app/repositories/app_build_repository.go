package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/schoolhub/backend/internal/app/models"
	"github.com/schoolhub/backend/internal/pkg/dberrors"
	"github.com/schoolhub/backend/internal/pkg/logger"
)

const appBuildTable = "app_builds"

var appBuildColumns = []string{
	"id", "campus_id", "version", "build_number", "file_name", "file_size",
	"checksum", "storage_path", "release_notes", "is_deleted", "meta_data",
	"created_at", "updated_at",
}

// AppBuildRepository handles APK build database operations
type AppBuildRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewAppBuildRepository creates a new AppBuildRepository
func NewAppBuildRepository(db *pgxpool.Pool) *AppBuildRepository {
	return &AppBuildRepository{db: db, sb: statementBuilder()}
}

func scanAppBuild(row pgx.Row) (*models.AppBuild, error) {
	b := &models.AppBuild{}
	err := row.Scan(
		&b.ID, &b.CampusID, &b.Version, &b.BuildNumber, &b.FileName, &b.FileSize,
		&b.Checksum, &b.StoragePath, &b.ReleaseNotes, &b.IsDeleted, &b.Metadata,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Create inserts a new app build record
func (r *AppBuildRepository) Create(ctx context.Context, b *models.AppBuild) error {
	sql, args, err := r.sb.Insert(appBuildTable).
		Columns(appBuildColumns...).
		Values(b.ID, b.CampusID, b.Version, b.BuildNumber, b.FileName, b.FileSize,
			b.Checksum, b.StoragePath, b.ReleaseNotes, b.IsDeleted, b.Metadata,
			b.CreatedAt, b.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create app build query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "uq_app_builds_campus_build") {
			return ErrDuplicate
		}
		logger.Error().Err(err).Msg("Error executing create app build query")
		return fmt.Errorf("error creating app build: %w", err)
	}
	return nil
}

// GetByID retrieves an app build by id
func (r *AppBuildRepository) GetByID(ctx context.Context, id string) (*models.AppBuild, error) {
	sql, args, err := r.sb.Select(appBuildColumns...).
		From(appBuildTable).
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get app build query: %w", err)
	}

	build, err := scanAppBuild(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Str("appBuildID", id).Msg("Error scanning app build row")
		return nil, fmt.Errorf("error getting app build by id: %w", err)
	}
	return build, nil
}

// GetLatestByCampusID returns the most recent non-deleted build for a campus
func (r *AppBuildRepository) GetLatestByCampusID(ctx context.Context, campusID string) (*models.AppBuild, error) {
	sql, args, err := r.sb.Select(appBuildColumns...).
		From(appBuildTable).
		Where(squirrel.Eq{"campus_id": campusID, "is_deleted": false}).
		OrderBy("build_number DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build latest app build query: %w", err)
	}

	build, err := scanAppBuild(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Str("campusID", campusID).Msg("Error scanning latest app build row")
		return nil, fmt.Errorf("error getting latest app build: %w", err)
	}
	return build, nil
}

// GetAllByCampusID lists non-deleted app builds for a campus
func (r *AppBuildRepository) GetAllByCampusID(ctx context.Context, campusID string, offset uint64, limit int) ([]*models.AppBuild, error) {
	sql, args, err := r.sb.Select(appBuildColumns...).
		From(appBuildTable).
		Where(squirrel.Eq{"campus_id": campusID, "is_deleted": false}).
		OrderBy("updated_at DESC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list app builds query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying app builds: %w", err)
	}
	defer rows.Close()

	builds := []*models.AppBuild{}
	for rows.Next() {
		build, err := scanAppBuild(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning app build row: %w", err)
		}
		builds = append(builds, build)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating app build rows: %w", err)
	}
	return builds, nil
}

// CountByCampusID counts non-deleted app builds for a campus
func (r *AppBuildRepository) CountByCampusID(ctx context.Context, campusID string) (int64, error) {
	return countRows(ctx, r.db, appBuildTable, squirrel.Eq{"campus_id": campusID, "is_deleted": false})
}

// UpdateByID applies a column patch; returns ErrNotFound when no row matched
func (r *AppBuildRepository) UpdateByID(ctx context.Context, id string, patch map[string]interface{}) error {
	sql, args, err := r.sb.Update(appBuildTable).
		SetMap(patch).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update app build query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("appBuildID", id).Msg("Error executing update app build query")
		return fmt.Errorf("error updating app build: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
