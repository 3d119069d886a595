package services

import (
	"context"
	"errors"
	"mime/multipart"
	"time"

	"github.com/google/uuid"

	"github.com/schoolhub/backend/internal/app/models"
	"github.com/schoolhub/backend/internal/app/models/dto"
	"github.com/schoolhub/backend/internal/app/repositories"
	"github.com/schoolhub/backend/internal/pkg/apperrors"
	"github.com/schoolhub/backend/internal/pkg/filestorage"
	"github.com/schoolhub/backend/internal/pkg/logger"
)

// buildsSubDir is where APK binaries live inside the storage root.
const buildsSubDir = "builds"

type appBuildRepository interface {
	Create(ctx context.Context, b *models.AppBuild) error
	GetByID(ctx context.Context, id string) (*models.AppBuild, error)
	GetLatestByCampusID(ctx context.Context, campusID string) (*models.AppBuild, error)
	GetAllByCampusID(ctx context.Context, campusID string, offset uint64, limit int) ([]*models.AppBuild, error)
	CountByCampusID(ctx context.Context, campusID string) (int64, error)
	UpdateByID(ctx context.Context, id string, patch map[string]interface{}) error
}

// AppBuildService manages uploaded application packages: the binary goes to
// file storage, the metadata row to the database.
type AppBuildService struct {
	buildRepo appBuildRepository
	storage   filestorage.Storage
}

// NewAppBuildService creates a new app build service instance
func NewAppBuildService(buildRepo appBuildRepository, storage filestorage.Storage) *AppBuildService {
	return &AppBuildService{buildRepo: buildRepo, storage: storage}
}

// Upload stores the APK binary and records its metadata.
func (s *AppBuildService) Upload(ctx context.Context, form *dto.UploadAppBuildForm, fileHeader *multipart.FileHeader) (*models.AppBuild, error) {
	stored, err := s.storage.Save(fileHeader, buildsSubDir)
	if err != nil {
		return nil, apperrors.NewBadRequestError("failed to store uploaded build: " + err.Error())
	}

	now := time.Now()
	build := &models.AppBuild{
		ID:           uuid.New().String(),
		CampusID:     form.CampusID,
		Version:      form.Version,
		BuildNumber:  form.BuildNumber,
		FileName:     stored.Name,
		FileSize:     stored.Size,
		Checksum:     stored.Checksum,
		StoragePath:  stored.Path,
		ReleaseNotes: form.ReleaseNotes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.buildRepo.Create(ctx, build); err != nil {
		// metadata write failed: do not leave the binary orphaned
		if cleanupErr := s.storage.Delete(stored.Path); cleanupErr != nil {
			logger.Warn().Err(cleanupErr).Str("path", stored.Path).Msg("Failed to remove orphaned build file")
		}
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, apperrors.NewConflictError("a build with this build number already exists for the campus")
		}
		return nil, err
	}
	return build, nil
}

// GetByID returns a build's metadata; soft-deleted rows count as not found.
func (s *AppBuildService) GetByID(ctx context.Context, id string) (*models.AppBuild, error) {
	build, err := s.buildRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrAppBuildNotFound
		}
		return nil, err
	}
	if build.IsDeleted {
		return nil, apperrors.ErrAppBuildNotFound
	}
	return build, nil
}

// GetLatestByCampusID returns the newest build by build number.
func (s *AppBuildService) GetLatestByCampusID(ctx context.Context, campusID string) (*models.AppBuild, error) {
	build, err := s.buildRepo.GetLatestByCampusID(ctx, campusID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrAppBuildNotFound
		}
		return nil, err
	}
	return build, nil
}

// DownloadPath resolves a build to the absolute file path and the original
// file name, for streaming by the controller.
func (s *AppBuildService) DownloadPath(ctx context.Context, id string) (path string, fileName string, err error) {
	build, err := s.GetByID(ctx, id)
	if err != nil {
		return "", "", err
	}
	return s.storage.FullPath(build.StoragePath), build.FileName, nil
}

// GetAllByCampusID lists a campus's builds with the total count.
func (s *AppBuildService) GetAllByCampusID(ctx context.Context, campusID string, offset uint64, limit int) ([]*models.AppBuild, int64, error) {
	builds, err := s.buildRepo.GetAllByCampusID(ctx, campusID, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.buildRepo.CountByCampusID(ctx, campusID)
	if err != nil {
		return nil, 0, err
	}
	return builds, total, nil
}

// DeleteByID soft-deletes a build and removes its binary from storage.
func (s *AppBuildService) DeleteByID(ctx context.Context, id string) error {
	build, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	patch := map[string]interface{}{
		"is_deleted": true,
		"updated_at": time.Now(),
	}
	if err := s.buildRepo.UpdateByID(ctx, id, patch); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.ErrAppBuildNotFound
		}
		return err
	}

	if err := s.storage.Delete(build.StoragePath); err != nil {
		logger.Warn().Err(err).Str("appBuildID", id).Msg("Failed to delete build file from storage")
	}
	return nil
}
