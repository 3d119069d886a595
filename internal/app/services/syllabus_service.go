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

type syllabusRepository interface {
	Create(ctx context.Context, s *models.Syllabus) error
	GetByID(ctx context.Context, id string) (*models.Syllabus, error)
	GetAllByCampusID(ctx context.Context, campusID string, offset uint64, limit int) ([]*models.Syllabus, error)
	GetAllByClassID(ctx context.Context, classID string, offset uint64, limit int) ([]*models.Syllabus, error)
	CountByCampusID(ctx context.Context, campusID string) (int64, error)
	UpdateByID(ctx context.Context, id string, patch map[string]interface{}) error
}

// SyllabusService handles syllabus operations
type SyllabusService struct {
	syllabusRepo syllabusRepository
}

// NewSyllabusService creates a new syllabus service instance
func NewSyllabusService(syllabusRepo syllabusRepository) *SyllabusService {
	return &SyllabusService{syllabusRepo: syllabusRepo}
}

// Create registers a syllabus for a class subject.
func (s *SyllabusService) Create(ctx context.Context, req *dto.CreateSyllabusRequest) (*models.Syllabus, error) {
	now := time.Now()
	syllabus := &models.Syllabus{
		ID:            uuid.New().String(),
		CampusID:      req.CampusID,
		ClassID:       req.ClassID,
		Subject:       req.Subject,
		Title:         req.Title,
		Description:   req.Description,
		Units:         req.Units,
		AttachmentURL: req.AttachmentURL,
		Metadata:      req.Metadata,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if syllabus.Units == nil {
		syllabus.Units = []string{}
	}

	if err := s.syllabusRepo.Create(ctx, syllabus); err != nil {
		return nil, err
	}
	return syllabus, nil
}

// GetByID returns a syllabus; soft-deleted rows count as not found.
func (s *SyllabusService) GetByID(ctx context.Context, id string) (*models.Syllabus, error) {
	syllabus, err := s.syllabusRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrSyllabusNotFound
		}
		return nil, err
	}
	if syllabus.IsDeleted {
		return nil, apperrors.ErrSyllabusNotFound
	}
	return syllabus, nil
}

// GetAllByCampusID lists a campus's syllabi with the total count.
func (s *SyllabusService) GetAllByCampusID(ctx context.Context, campusID string, offset uint64, limit int) ([]*models.Syllabus, int64, error) {
	syllabi, err := s.syllabusRepo.GetAllByCampusID(ctx, campusID, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.syllabusRepo.CountByCampusID(ctx, campusID)
	if err != nil {
		return nil, 0, err
	}
	return syllabi, total, nil
}

// GetAllByClassID lists the syllabi of one class.
func (s *SyllabusService) GetAllByClassID(ctx context.Context, classID string, offset uint64, limit int) ([]*models.Syllabus, error) {
	return s.syllabusRepo.GetAllByClassID(ctx, classID, offset, limit)
}

// UpdateByID applies a partial update and re-stamps updated_at.
func (s *SyllabusService) UpdateByID(ctx context.Context, id string, req *dto.UpdateSyllabusRequest) error {
	patch := req.ToPatch()
	patch["updated_at"] = time.Now()

	if err := s.syllabusRepo.UpdateByID(ctx, id, patch); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.ErrSyllabusNotUpdated
		}
		return err
	}
	return nil
}

// DeleteByID soft-deletes a syllabus.
func (s *SyllabusService) DeleteByID(ctx context.Context, id string) error {
	patch := map[string]interface{}{
		"is_deleted": true,
		"updated_at": time.Now(),
	}
	if err := s.syllabusRepo.UpdateByID(ctx, id, patch); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.ErrSyllabusNotFound
		}
		return err
	}
	return nil
}
