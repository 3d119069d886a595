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

type feeTemplateRepository interface {
	Create(ctx context.Context, t *models.FeeTemplate) error
	GetByID(ctx context.Context, id string) (*models.FeeTemplate, error)
	GetAllByCampusID(ctx context.Context, campusID string, offset uint64, limit int) ([]*models.FeeTemplate, error)
	CountByCampusID(ctx context.Context, campusID string) (int64, error)
	UpdateByID(ctx context.Context, id string, patch map[string]interface{}) error
}

// FeeTemplateService handles fee template operations
type FeeTemplateService struct {
	templateRepo feeTemplateRepository
}

// NewFeeTemplateService creates a new fee template service instance
func NewFeeTemplateService(templateRepo feeTemplateRepository) *FeeTemplateService {
	return &FeeTemplateService{templateRepo: templateRepo}
}

// Create registers a fee template for a class or a set of students.
func (s *FeeTemplateService) Create(ctx context.Context, req *dto.CreateFeeTemplateRequest) (*models.FeeTemplate, error) {
	now := time.Now()
	tpl := &models.FeeTemplate{
		ID:                   uuid.New().String(),
		CampusID:             req.CampusID,
		Name:                 req.Name,
		ClassID:              req.ClassID,
		Amount:               req.Amount,
		DueDate:              req.DueDate,
		ApplicableStudentIDs: req.ApplicableStudentIDs,
		Description:          req.Description,
		Metadata:             req.Metadata,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if tpl.ApplicableStudentIDs == nil {
		tpl.ApplicableStudentIDs = []string{}
	}

	if err := s.templateRepo.Create(ctx, tpl); err != nil {
		return nil, err
	}
	return tpl, nil
}

// GetByID returns a fee template; soft-deleted rows count as not found.
func (s *FeeTemplateService) GetByID(ctx context.Context, id string) (*models.FeeTemplate, error) {
	tpl, err := s.templateRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrFeeTemplateNotFound
		}
		return nil, err
	}
	if tpl.IsDeleted {
		return nil, apperrors.ErrFeeTemplateNotFound
	}
	return tpl, nil
}

// GetAllByCampusID lists a campus's fee templates with the total count.
func (s *FeeTemplateService) GetAllByCampusID(ctx context.Context, campusID string, offset uint64, limit int) ([]*models.FeeTemplate, int64, error) {
	templates, err := s.templateRepo.GetAllByCampusID(ctx, campusID, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.templateRepo.CountByCampusID(ctx, campusID)
	if err != nil {
		return nil, 0, err
	}
	return templates, total, nil
}

// UpdateByID applies a partial update and re-stamps updated_at.
func (s *FeeTemplateService) UpdateByID(ctx context.Context, id string, req *dto.UpdateFeeTemplateRequest) error {
	patch := req.ToPatch()
	patch["updated_at"] = time.Now()

	if err := s.templateRepo.UpdateByID(ctx, id, patch); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.ErrFeeTemplateNotUpdated
		}
		return err
	}
	return nil
}

// DeleteByID soft-deletes a fee template.
func (s *FeeTemplateService) DeleteByID(ctx context.Context, id string) error {
	patch := map[string]interface{}{
		"is_deleted": true,
		"updated_at": time.Now(),
	}
	if err := s.templateRepo.UpdateByID(ctx, id, patch); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.ErrFeeTemplateNotFound
		}
		return err
	}
	return nil
}
