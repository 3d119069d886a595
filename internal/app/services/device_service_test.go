package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolhub/backend/internal/app/models"
	"github.com/schoolhub/backend/internal/app/models/dto"
	"github.com/schoolhub/backend/internal/app/repositories"
	"github.com/schoolhub/backend/internal/pkg/apperrors"
)

type fakeDeviceRepo struct {
	devices map[string]*models.Device // keyed by device token
}

func newFakeDeviceRepo() *fakeDeviceRepo {
	return &fakeDeviceRepo{devices: map[string]*models.Device{}}
}

func (r *fakeDeviceRepo) Upsert(_ context.Context, d *models.Device) error {
	if existing, ok := r.devices[d.DeviceToken]; ok {
		d.ID = existing.ID
		d.CreatedAt = existing.CreatedAt
	}
	r.devices[d.DeviceToken] = d
	return nil
}

func (r *fakeDeviceRepo) GetByID(_ context.Context, id string) (*models.Device, error) {
	for _, d := range r.devices {
		if d.ID == id {
			copied := *d
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeDeviceRepo) GetAllByCampusID(_ context.Context, campusID string, _ uint64, _ int) ([]*models.Device, error) {
	var out []*models.Device
	for _, d := range r.devices {
		if d.CampusID == campusID && !d.IsDeleted {
			copied := *d
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeDeviceRepo) GetAllByUserID(_ context.Context, userID string, _ uint64, _ int) ([]*models.Device, error) {
	var out []*models.Device
	for _, d := range r.devices {
		if d.UserID == userID && !d.IsDeleted {
			copied := *d
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeDeviceRepo) CountByCampusID(_ context.Context, campusID string) (int64, error) {
	var n int64
	for _, d := range r.devices {
		if d.CampusID == campusID && !d.IsDeleted {
			n++
		}
	}
	return n, nil
}

func (r *fakeDeviceRepo) UpdateByID(_ context.Context, id string, patch map[string]interface{}) error {
	for _, d := range r.devices {
		if d.ID != id {
			continue
		}
		if v, ok := patch["is_deleted"]; ok {
			d.IsDeleted = v.(bool)
		}
		if v, ok := patch["is_active"]; ok {
			d.IsActive = v.(bool)
		}
		return nil
	}
	return repositories.ErrNotFound
}

func TestDeviceServiceRegister(t *testing.T) {
	repo := newFakeDeviceRepo()
	svc := NewDeviceService(repo)

	device, err := svc.Register(context.Background(), &dto.RegisterDeviceRequest{
		CampusID:    "campus-1",
		UserID:      "user-1",
		DeviceToken: "tok-1",
		Platform:    "android",
		AppVersion:  "2.4.0",
	})
	require.NoError(t, err)

	assert.True(t, device.IsActive)
	assert.False(t, device.LastSeenAt.IsZero())
	assert.Equal(t, models.DevicePlatform("android"), device.Platform)
}

func TestDeviceServiceRegisterSameTokenUpserts(t *testing.T) {
	repo := newFakeDeviceRepo()
	svc := NewDeviceService(repo)

	first, err := svc.Register(context.Background(), &dto.RegisterDeviceRequest{
		CampusID:    "campus-1",
		UserID:      "user-1",
		DeviceToken: "tok-1",
		Platform:    "android",
		AppVersion:  "2.3.0",
	})
	require.NoError(t, err)

	second, err := svc.Register(context.Background(), &dto.RegisterDeviceRequest{
		CampusID:    "campus-1",
		UserID:      "user-1",
		DeviceToken: "tok-1",
		Platform:    "android",
		AppVersion:  "2.4.0",
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.CreatedAt, second.CreatedAt)
	assert.Equal(t, "2.4.0", second.AppVersion)
	assert.Len(t, repo.devices, 1)

	// The id handed back on re-registration must resolve.
	got, err := svc.GetByID(context.Background(), second.ID)
	require.NoError(t, err)
	assert.Equal(t, "2.4.0", got.AppVersion)
}

func TestDeviceServiceDeleteDeactivates(t *testing.T) {
	repo := newFakeDeviceRepo()
	svc := NewDeviceService(repo)

	device, err := svc.Register(context.Background(), &dto.RegisterDeviceRequest{
		CampusID:    "campus-1",
		UserID:      "user-1",
		DeviceToken: "tok-1",
		Platform:    "ios",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteByID(context.Background(), device.ID))

	stored := repo.devices["tok-1"]
	assert.True(t, stored.IsDeleted)
	assert.False(t, stored.IsActive)

	_, err = svc.GetByID(context.Background(), device.ID)
	assert.ErrorIs(t, err, apperrors.ErrDeviceNotFound)
}
