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

const deviceTable = "devices"

var deviceColumns = []string{
	"id", "campus_id", "user_id", "device_token", "platform", "app_version",
	"last_seen_at", "is_active", "is_deleted", "meta_data",
	"created_at", "updated_at",
}

// DeviceRepository handles device database operations
type DeviceRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewDeviceRepository creates a new DeviceRepository
func NewDeviceRepository(db *pgxpool.Pool) *DeviceRepository {
	return &DeviceRepository{db: db, sb: statementBuilder()}
}

func scanDevice(row pgx.Row) (*models.Device, error) {
	d := &models.Device{}
	err := row.Scan(
		&d.ID, &d.CampusID, &d.UserID, &d.DeviceToken, &d.Platform, &d.AppVersion,
		&d.LastSeenAt, &d.IsActive, &d.IsDeleted, &d.Metadata,
		&d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// Upsert registers a device, refreshing the row when the token is already known.
func (r *DeviceRepository) Upsert(ctx context.Context, d *models.Device) error {
	sql, args, err := r.sb.Insert(deviceTable).
		Columns(deviceColumns...).
		Values(d.ID, d.CampusID, d.UserID, d.DeviceToken, d.Platform, d.AppVersion,
			d.LastSeenAt, d.IsActive, d.IsDeleted, d.Metadata,
			d.CreatedAt, d.UpdatedAt).
		Suffix(`ON CONFLICT (device_token) DO UPDATE SET
			user_id = EXCLUDED.user_id,
			campus_id = EXCLUDED.campus_id,
			platform = EXCLUDED.platform,
			app_version = EXCLUDED.app_version,
			last_seen_at = EXCLUDED.last_seen_at,
			meta_data = EXCLUDED.meta_data,
			is_active = TRUE,
			is_deleted = FALSE,
			updated_at = EXCLUDED.updated_at
			RETURNING ` + strings.Join(deviceColumns, ", ")).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build upsert device query: %w", err)
	}

	// On the conflict branch the stored row keeps its id and created_at, so
	// scan the row back instead of trusting the one we sent.
	stored, err := scanDevice(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		logger.Error().Err(err).Msg("Error executing upsert device query")
		return fmt.Errorf("error upserting device: %w", err)
	}
	*d = *stored
	return nil
}

// GetByID retrieves a device by id
func (r *DeviceRepository) GetByID(ctx context.Context, id string) (*models.Device, error) {
	sql, args, err := r.sb.Select(deviceColumns...).
		From(deviceTable).
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get device query: %w", err)
	}

	device, err := scanDevice(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Str("deviceID", id).Msg("Error scanning device row")
		return nil, fmt.Errorf("error getting device by id: %w", err)
	}
	return device, nil
}

func (r *DeviceRepository) list(ctx context.Context, pred squirrel.Eq, offset uint64, limit int) ([]*models.Device, error) {
	sql, args, err := r.sb.Select(deviceColumns...).
		From(deviceTable).
		Where(pred).
		OrderBy("updated_at DESC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list devices query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying devices: %w", err)
	}
	defer rows.Close()

	devices := []*models.Device{}
	for rows.Next() {
		device, err := scanDevice(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning device row: %w", err)
		}
		devices = append(devices, device)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating device rows: %w", err)
	}
	return devices, nil
}

// GetAllByCampusID lists non-deleted devices for a campus
func (r *DeviceRepository) GetAllByCampusID(ctx context.Context, campusID string, offset uint64, limit int) ([]*models.Device, error) {
	return r.list(ctx, squirrel.Eq{"campus_id": campusID, "is_deleted": false}, offset, limit)
}

// GetAllByUserID lists non-deleted devices registered by a user
func (r *DeviceRepository) GetAllByUserID(ctx context.Context, userID string, offset uint64, limit int) ([]*models.Device, error) {
	return r.list(ctx, squirrel.Eq{"user_id": userID, "is_deleted": false}, offset, limit)
}

// CountByCampusID counts non-deleted devices for a campus
func (r *DeviceRepository) CountByCampusID(ctx context.Context, campusID string) (int64, error) {
	return countRows(ctx, r.db, deviceTable, squirrel.Eq{"campus_id": campusID, "is_deleted": false})
}

// UpdateByID applies a column patch; returns ErrNotFound when no row matched
func (r *DeviceRepository) UpdateByID(ctx context.Context, id string, patch map[string]interface{}) error {
	sql, args, err := r.sb.Update(deviceTable).
		SetMap(patch).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update device query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("deviceID", id).Msg("Error executing update device query")
		return fmt.Errorf("error updating device: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
