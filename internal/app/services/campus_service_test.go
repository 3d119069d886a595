package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolhub/backend/internal/app/models"
	"github.com/schoolhub/backend/internal/app/models/dto"
	"github.com/schoolhub/backend/internal/app/repositories"
	"github.com/schoolhub/backend/internal/pkg/apperrors"
)

type fakeCampusRepo struct {
	campuses map[string]*models.Campus
}

func newFakeCampusRepo() *fakeCampusRepo {
	return &fakeCampusRepo{campuses: map[string]*models.Campus{}}
}

func (r *fakeCampusRepo) Create(_ context.Context, c *models.Campus) error {
	r.campuses[c.ID] = c
	return nil
}

func (r *fakeCampusRepo) GetByID(_ context.Context, id string) (*models.Campus, error) {
	c, ok := r.campuses[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func (r *fakeCampusRepo) GetAll(_ context.Context, _ uint64, _ int) ([]*models.Campus, error) {
	var out []*models.Campus
	for _, c := range r.campuses {
		if !c.IsDeleted {
			copied := *c
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeCampusRepo) Count(_ context.Context) (int64, error) {
	var n int64
	for _, c := range r.campuses {
		if !c.IsDeleted {
			n++
		}
	}
	return n, nil
}

func (r *fakeCampusRepo) UpdateByID(_ context.Context, id string, patch map[string]interface{}) error {
	c, ok := r.campuses[id]
	if !ok {
		return repositories.ErrNotFound
	}
	if v, ok := patch["name"]; ok {
		c.Name = v.(string)
	}
	if v, ok := patch["is_active"]; ok {
		c.IsActive = v.(bool)
	}
	if v, ok := patch["is_deleted"]; ok {
		c.IsDeleted = v.(bool)
	}
	if v, ok := patch["updated_at"]; ok {
		c.UpdatedAt = v.(time.Time)
	}
	return nil
}

func TestCampusServiceCreate(t *testing.T) {
	repo := newFakeCampusRepo()
	svc := NewCampusService(repo)

	campus, err := svc.Create(context.Background(), &dto.CreateCampusRequest{
		Name:    "North Campus",
		Address: "1 School Lane",
		Domain:  "north.schoolhub.app",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, campus.ID)
	assert.True(t, campus.IsActive)
	assert.False(t, campus.IsDeleted)
	assert.False(t, campus.CreatedAt.IsZero())
}

func TestCampusServiceUpdateRestampsUpdatedAt(t *testing.T) {
	repo := newFakeCampusRepo()
	svc := NewCampusService(repo)

	campus, err := svc.Create(context.Background(), &dto.CreateCampusRequest{
		Name:    "North Campus",
		Address: "1 School Lane",
		Domain:  "north.schoolhub.app",
	})
	require.NoError(t, err)
	before := repo.campuses[campus.ID].UpdatedAt

	name := "North Campus Annex"
	err = svc.UpdateByID(context.Background(), campus.ID, &dto.UpdateCampusRequest{Name: &name})
	require.NoError(t, err)

	updated := repo.campuses[campus.ID]
	assert.Equal(t, "North Campus Annex", updated.Name)
	assert.False(t, updated.UpdatedAt.Before(before))
}

func TestCampusServiceUpdateNotFound(t *testing.T) {
	svc := NewCampusService(newFakeCampusRepo())

	name := "x"
	err := svc.UpdateByID(context.Background(), "missing", &dto.UpdateCampusRequest{Name: &name})
	assert.ErrorIs(t, err, apperrors.ErrCampusNotUpdated)
}

func TestCampusServiceDeleteDeactivates(t *testing.T) {
	repo := newFakeCampusRepo()
	svc := NewCampusService(repo)

	campus, err := svc.Create(context.Background(), &dto.CreateCampusRequest{
		Name:    "North Campus",
		Address: "1 School Lane",
		Domain:  "north.schoolhub.app",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteByID(context.Background(), campus.ID))

	stored := repo.campuses[campus.ID]
	assert.True(t, stored.IsDeleted)
	assert.False(t, stored.IsActive)

	_, err = svc.GetByID(context.Background(), campus.ID)
	assert.ErrorIs(t, err, apperrors.ErrCampusNotFound)

	// Deleted campuses drop out of listings.
	campuses, total, err := svc.GetAll(context.Background(), 0, 10)
	require.NoError(t, err)
	assert.Empty(t, campuses)
	assert.Zero(t, total)
}
