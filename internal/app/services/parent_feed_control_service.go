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

type parentFeedControlRepository interface {
	Upsert(ctx context.Context, c *models.ParentFeedControl) error
	GetByParentAndStudent(ctx context.Context, parentID, studentID string) (*models.ParentFeedControl, error)
	GetAllByCampusID(ctx context.Context, campusID string, offset uint64, limit int) ([]*models.ParentFeedControl, error)
	CountByCampusID(ctx context.Context, campusID string) (int64, error)
}

// ParentFeedControlService manages the feed-access switch for
// (parent, student) pairs. Absence of a row means access is enabled.
type ParentFeedControlService struct {
	controlRepo parentFeedControlRepository
}

// NewParentFeedControlService creates a new parent feed control service instance
func NewParentFeedControlService(controlRepo parentFeedControlRepository) *ParentFeedControlService {
	return &ParentFeedControlService{controlRepo: controlRepo}
}

// ToggleFeedAccess upserts the control row for the calling parent and the
// given student. The role guard sits in the route middleware; parentID comes
// from the authenticated token, never the body.
func (s *ParentFeedControlService) ToggleFeedAccess(ctx context.Context, parentID string, req *dto.ToggleFeedAccessRequest) (*models.ParentFeedControl, error) {
	if req.FeedAccessEnabled == nil {
		return nil, apperrors.NewBadRequestError("feedAccessEnabled is required")
	}

	now := time.Now()
	control := &models.ParentFeedControl{
		ID:                uuid.New().String(),
		CampusID:          req.CampusID,
		ParentID:          parentID,
		StudentID:         req.StudentID,
		FeedAccessEnabled: *req.FeedAccessEnabled,
		Metadata:          req.Metadata,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.controlRepo.Upsert(ctx, control); err != nil {
		return nil, err
	}
	return control, nil
}

// GetFeedStatus reports the effective feed access for a pair. No row (or a
// soft-deleted one) means access is enabled.
func (s *ParentFeedControlService) GetFeedStatus(ctx context.Context, parentID, studentID string) (*dto.FeedStatusResponse, error) {
	status := &dto.FeedStatusResponse{
		ParentID:      parentID,
		StudentID:     studentID,
		CurrentAccess: true,
	}

	control, err := s.controlRepo.GetByParentAndStudent(ctx, parentID, studentID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return status, nil
		}
		return nil, err
	}
	if !control.IsDeleted {
		status.CurrentAccess = control.FeedAccessEnabled
	}
	return status, nil
}

// GetAllByCampusID lists a campus's feed controls with the total count.
func (s *ParentFeedControlService) GetAllByCampusID(ctx context.Context, campusID string, offset uint64, limit int) ([]*models.ParentFeedControl, int64, error) {
	controls, err := s.controlRepo.GetAllByCampusID(ctx, campusID, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.controlRepo.CountByCampusID(ctx, campusID)
	if err != nil {
		return nil, 0, err
	}
	return controls, total, nil
}
