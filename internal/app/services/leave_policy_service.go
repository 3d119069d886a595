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

type leavePolicyRepository interface {
	Create(ctx context.Context, p *models.LeavePolicy) error
	GetByID(ctx context.Context, id string) (*models.LeavePolicy, error)
	GetAllByCampusID(ctx context.Context, campusID string, offset uint64, limit int) ([]*models.LeavePolicy, error)
	CountByCampusID(ctx context.Context, campusID string) (int64, error)
	UpdateByID(ctx context.Context, id string, patch map[string]interface{}) error
}

// LeavePolicyService handles leave policy operations
type LeavePolicyService struct {
	policyRepo leavePolicyRepository
}

// NewLeavePolicyService creates a new leave policy service instance
func NewLeavePolicyService(policyRepo leavePolicyRepository) *LeavePolicyService {
	return &LeavePolicyService{policyRepo: policyRepo}
}

// Create registers a leave policy, active by default.
func (s *LeavePolicyService) Create(ctx context.Context, req *dto.CreateLeavePolicyRequest) (*models.LeavePolicy, error) {
	now := time.Now()
	policy := &models.LeavePolicy{
		ID:              uuid.New().String(),
		CampusID:        req.CampusID,
		Name:            req.Name,
		LeaveType:       req.LeaveType,
		DaysAllowed:     req.DaysAllowed,
		CarryForward:    req.CarryForward,
		ApplicableRoles: req.ApplicableRoles,
		IsActive:        true,
		Metadata:        req.Metadata,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if policy.ApplicableRoles == nil {
		policy.ApplicableRoles = []string{}
	}

	if err := s.policyRepo.Create(ctx, policy); err != nil {
		return nil, err
	}
	return policy, nil
}

// GetByID returns a leave policy; soft-deleted rows count as not found.
func (s *LeavePolicyService) GetByID(ctx context.Context, id string) (*models.LeavePolicy, error) {
	policy, err := s.policyRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrLeavePolicyNotFound
		}
		return nil, err
	}
	if policy.IsDeleted {
		return nil, apperrors.ErrLeavePolicyNotFound
	}
	return policy, nil
}

// GetAllByCampusID lists a campus's leave policies with the total count.
func (s *LeavePolicyService) GetAllByCampusID(ctx context.Context, campusID string, offset uint64, limit int) ([]*models.LeavePolicy, int64, error) {
	policies, err := s.policyRepo.GetAllByCampusID(ctx, campusID, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.policyRepo.CountByCampusID(ctx, campusID)
	if err != nil {
		return nil, 0, err
	}
	return policies, total, nil
}

// UpdateByID applies a partial update and re-stamps updated_at.
func (s *LeavePolicyService) UpdateByID(ctx context.Context, id string, req *dto.UpdateLeavePolicyRequest) error {
	patch := req.ToPatch()
	patch["updated_at"] = time.Now()

	if err := s.policyRepo.UpdateByID(ctx, id, patch); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.ErrLeavePolicyNotUpdated
		}
		return err
	}
	return nil
}

// DeleteByID soft-deletes a leave policy and deactivates it.
func (s *LeavePolicyService) DeleteByID(ctx context.Context, id string) error {
	patch := map[string]interface{}{
		"is_deleted": true,
		"is_active":  false,
		"updated_at": time.Now(),
	}
	if err := s.policyRepo.UpdateByID(ctx, id, patch); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.ErrLeavePolicyNotFound
		}
		return err
	}
	return nil
}
