package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/schoolhub/backend/internal/app/models"
	"github.com/schoolhub/backend/internal/app/models/dto"
	"github.com/schoolhub/backend/internal/app/repositories"
	"github.com/schoolhub/backend/internal/pkg/apperrors"
)

type deviceRepository interface {
	Upsert(ctx context.Context, d *models.Device) error
	GetByID(ctx context.Context, id string) (*models.Device, error)
	GetAllByCampusID(ctx context.Context, campusID string, offset uint64, limit int) ([]*models.Device, error)
	GetAllByUserID(ctx context.Context, userID string, offset uint64, limit int) ([]*models.Device, error)
	CountByCampusID(ctx context.Context, campusID string) (int64, error)
	UpdateByID(ctx context.Context, id string, patch map[string]interface{}) error
}

// DeviceService manages registered notification endpoints. Registration is
// an upsert keyed by device token, so repeat registrations refresh the row.
type DeviceService struct {
	deviceRepo deviceRepository
}

// NewDeviceService creates a new device service instance
func NewDeviceService(deviceRepo deviceRepository) *DeviceService {
	return &DeviceService{deviceRepo: deviceRepo}
}

// Register upserts a device by its token and marks it seen now.
func (s *DeviceService) Register(ctx context.Context, req *dto.RegisterDeviceRequest) (*models.Device, error) {
	now := time.Now()
	device := &models.Device{
		ID:          uuid.New().String(),
		CampusID:    req.CampusID,
		UserID:      req.UserID,
		DeviceToken: req.DeviceToken,
		Platform:    models.DevicePlatform(req.Platform),
		AppVersion:  req.AppVersion,
		LastSeenAt:  now,
		IsActive:    true,
		Metadata:    req.Metadata,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.deviceRepo.Upsert(ctx, device); err != nil {
		return nil, err
	}
	return device, nil
}

// GetByID returns a device; soft-deleted rows count as not found.
func (s *DeviceService) GetByID(ctx context.Context, id string) (*models.Device, error) {
	device, err := s.deviceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrDeviceNotFound
		}
		return nil, err
	}
	if device.IsDeleted {
		return nil, apperrors.ErrDeviceNotFound
	}
	return device, nil
}

// GetAllByCampusID lists a campus's devices with the total count.
func (s *DeviceService) GetAllByCampusID(ctx context.Context, campusID string, offset uint64, limit int) ([]*models.Device, int64, error) {
	devices, err := s.deviceRepo.GetAllByCampusID(ctx, campusID, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.deviceRepo.CountByCampusID(ctx, campusID)
	if err != nil {
		return nil, 0, err
	}
	return devices, total, nil
}

// GetAllByUserID lists one user's registered devices.
func (s *DeviceService) GetAllByUserID(ctx context.Context, userID string, offset uint64, limit int) ([]*models.Device, error) {
	return s.deviceRepo.GetAllByUserID(ctx, userID, offset, limit)
}

// DeleteByID soft-deletes a device and deactivates it.
func (s *DeviceService) DeleteByID(ctx context.Context, id string) error {
	patch := map[string]interface{}{
		"is_deleted": true,
		"is_active":  false,
		"updated_at": time.Now(),
	}
	if err := s.deviceRepo.UpdateByID(ctx, id, patch); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.ErrDeviceNotFound
		}
		return err
	}
	return nil
}
