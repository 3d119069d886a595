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

type studentRecordRepository interface {
	Create(ctx context.Context, rec *models.StudentRecord) error
	GetByID(ctx context.Context, id string) (*models.StudentRecord, error)
	GetAllByCampusID(ctx context.Context, campusID string, offset uint64, limit int) ([]*models.StudentRecord, error)
	GetAllByStudentID(ctx context.Context, studentID string, offset uint64, limit int) ([]*models.StudentRecord, error)
	CountByCampusID(ctx context.Context, campusID string) (int64, error)
	UpdateByID(ctx context.Context, id string, patch map[string]interface{}) error
}

// StudentRecordService handles dated student file entries.
type StudentRecordService struct {
	recordRepo studentRecordRepository
}

// NewStudentRecordService creates a new student record service instance
func NewStudentRecordService(recordRepo studentRecordRepository) *StudentRecordService {
	return &StudentRecordService{recordRepo: recordRepo}
}

// Create adds an entry to a student's file.
func (s *StudentRecordService) Create(ctx context.Context, req *dto.CreateStudentRecordRequest) (*models.StudentRecord, error) {
	now := time.Now()
	record := &models.StudentRecord{
		ID:            uuid.New().String(),
		CampusID:      req.CampusID,
		StudentID:     req.StudentID,
		RecordType:    req.RecordType,
		Title:         req.Title,
		Description:   req.Description,
		AcademicYear:  req.AcademicYear,
		AttachmentURL: req.AttachmentURL,
		Metadata:      req.Metadata,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.recordRepo.Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// GetByID returns a student record; soft-deleted rows count as not found.
func (s *StudentRecordService) GetByID(ctx context.Context, id string) (*models.StudentRecord, error) {
	record, err := s.recordRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrStudentRecordNotFound
		}
		return nil, err
	}
	if record.IsDeleted {
		return nil, apperrors.ErrStudentRecordNotFound
	}
	return record, nil
}

// GetAllByCampusID lists a campus's student records with the total count.
func (s *StudentRecordService) GetAllByCampusID(ctx context.Context, campusID string, offset uint64, limit int) ([]*models.StudentRecord, int64, error) {
	records, err := s.recordRepo.GetAllByCampusID(ctx, campusID, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.recordRepo.CountByCampusID(ctx, campusID)
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// GetAllByStudentID lists one student's records.
func (s *StudentRecordService) GetAllByStudentID(ctx context.Context, studentID string, offset uint64, limit int) ([]*models.StudentRecord, error) {
	return s.recordRepo.GetAllByStudentID(ctx, studentID, offset, limit)
}

// UpdateByID applies a partial update and re-stamps updated_at.
func (s *StudentRecordService) UpdateByID(ctx context.Context, id string, req *dto.UpdateStudentRecordRequest) error {
	patch := req.ToPatch()
	patch["updated_at"] = time.Now()

	if err := s.recordRepo.UpdateByID(ctx, id, patch); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.ErrStudentRecordNotUpdated
		}
		return err
	}
	return nil
}

// DeleteByID soft-deletes a student record.
func (s *StudentRecordService) DeleteByID(ctx context.Context, id string) error {
	patch := map[string]interface{}{
		"is_deleted": true,
		"updated_at": time.Now(),
	}
	if err := s.recordRepo.UpdateByID(ctx, id, patch); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.ErrStudentRecordNotFound
		}
		return err
	}
	return nil
}
