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

type feeRepository interface {
	Create(ctx context.Context, f *models.Fee) error
	GetByID(ctx context.Context, id string) (*models.Fee, error)
	GetAllByCampusID(ctx context.Context, campusID string, offset uint64, limit int) ([]*models.Fee, error)
	GetAllByStudentID(ctx context.Context, studentID string, offset uint64, limit int) ([]*models.Fee, error)
	CountByCampusID(ctx context.Context, campusID string) (int64, error)
	UpdateByID(ctx context.Context, id string, patch map[string]interface{}) error
}

// FeeService handles student fee operations. Updates apply the caller's
// patch verbatim: due_amount is never derived from the other amounts here.
type FeeService struct {
	feeRepo feeRepository
}

// NewFeeService creates a new fee service instance
func NewFeeService(feeRepo feeRepository) *FeeService {
	return &FeeService{feeRepo: feeRepo}
}

// Create bills a fee to a student in the pending state.
func (s *FeeService) Create(ctx context.Context, req *dto.CreateFeeRequest) (*models.Fee, error) {
	now := time.Now()
	fee := &models.Fee{
		ID:               uuid.New().String(),
		CampusID:         req.CampusID,
		StudentID:        req.StudentID,
		FeeTemplateID:    req.FeeTemplateID,
		TotalAmount:      req.TotalAmount,
		DueAmount:        req.DueAmount,
		Status:           models.FeeStatusPending,
		InstallmentsPaid: []models.Installment{},
		Metadata:         req.Metadata,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.feeRepo.Create(ctx, fee); err != nil {
		return nil, err
	}
	return fee, nil
}

// GetByID returns a fee; soft-deleted rows count as not found.
func (s *FeeService) GetByID(ctx context.Context, id string) (*models.Fee, error) {
	fee, err := s.feeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrFeeNotFound
		}
		return nil, err
	}
	if fee.IsDeleted {
		return nil, apperrors.ErrFeeNotFound
	}
	return fee, nil
}

// GetAllByCampusID lists a campus's fees with the total count.
func (s *FeeService) GetAllByCampusID(ctx context.Context, campusID string, offset uint64, limit int) ([]*models.Fee, int64, error) {
	fees, err := s.feeRepo.GetAllByCampusID(ctx, campusID, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.feeRepo.CountByCampusID(ctx, campusID)
	if err != nil {
		return nil, 0, err
	}
	return fees, total, nil
}

// GetAllByStudentID lists a student's fees.
func (s *FeeService) GetAllByStudentID(ctx context.Context, studentID string, offset uint64, limit int) ([]*models.Fee, error) {
	return s.feeRepo.GetAllByStudentID(ctx, studentID, offset, limit)
}

// UpdateByID applies a partial update and re-stamps updated_at.
func (s *FeeService) UpdateByID(ctx context.Context, id string, req *dto.UpdateFeeRequest) error {
	patch := req.ToPatch()
	patch["updated_at"] = time.Now()

	if err := s.feeRepo.UpdateByID(ctx, id, patch); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.ErrFeeNotUpdated
		}
		return err
	}
	return nil
}

// DeleteByID soft-deletes a fee.
func (s *FeeService) DeleteByID(ctx context.Context, id string) error {
	patch := map[string]interface{}{
		"is_deleted": true,
		"updated_at": time.Now(),
	}
	if err := s.feeRepo.UpdateByID(ctx, id, patch); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.ErrFeeNotFound
		}
		return err
	}
	return nil
}
