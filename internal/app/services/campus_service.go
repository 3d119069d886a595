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

// campusRepository is the persistence surface the campus service needs.
type campusRepository interface {
	Create(ctx context.Context, c *models.Campus) error
	GetByID(ctx context.Context, id string) (*models.Campus, error)
	GetAll(ctx context.Context, offset uint64, limit int) ([]*models.Campus, error)
	Count(ctx context.Context) (int64, error)
	UpdateByID(ctx context.Context, id string, patch map[string]interface{}) error
}

// CampusService handles campus operations
type CampusService struct {
	campusRepo campusRepository
}

// NewCampusService creates a new campus service instance
func NewCampusService(campusRepo campusRepository) *CampusService {
	return &CampusService{campusRepo: campusRepo}
}

// Create registers a new campus with generated id and timestamps.
func (s *CampusService) Create(ctx context.Context, req *dto.CreateCampusRequest) (*models.Campus, error) {
	now := time.Now()
	campus := &models.Campus{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Address:      req.Address,
		Domain:       req.Domain,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		IsActive:     true,
		Metadata:     req.Metadata,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.campusRepo.Create(ctx, campus); err != nil {
		return nil, err
	}
	return campus, nil
}

// GetByID returns a campus; soft-deleted rows count as not found.
func (s *CampusService) GetByID(ctx context.Context, id string) (*models.Campus, error) {
	campus, err := s.campusRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrCampusNotFound
		}
		return nil, err
	}
	if campus.IsDeleted {
		return nil, apperrors.ErrCampusNotFound
	}
	return campus, nil
}

// GetAll lists campuses with the total count for pagination.
func (s *CampusService) GetAll(ctx context.Context, offset uint64, limit int) ([]*models.Campus, int64, error) {
	campuses, err := s.campusRepo.GetAll(ctx, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.campusRepo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return campuses, total, nil
}

// UpdateByID applies a partial update and re-stamps updated_at.
func (s *CampusService) UpdateByID(ctx context.Context, id string, req *dto.UpdateCampusRequest) error {
	patch := req.ToPatch()
	patch["updated_at"] = time.Now()

	if err := s.campusRepo.UpdateByID(ctx, id, patch); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.ErrCampusNotUpdated
		}
		return err
	}
	return nil
}

// DeleteByID soft-deletes a campus.
func (s *CampusService) DeleteByID(ctx context.Context, id string) error {
	patch := map[string]interface{}{
		"is_deleted": true,
		"is_active":  false,
		"updated_at": time.Now(),
	}
	if err := s.campusRepo.UpdateByID(ctx, id, patch); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.ErrCampusNotFound
		}
		return err
	}
	return nil
}
