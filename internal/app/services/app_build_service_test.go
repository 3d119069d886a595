package services

import (
	"context"
	"mime/multipart"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolhub/backend/internal/app/models"
	"github.com/schoolhub/backend/internal/app/models/dto"
	"github.com/schoolhub/backend/internal/app/repositories"
	"github.com/schoolhub/backend/internal/pkg/apperrors"
	"github.com/schoolhub/backend/internal/pkg/filestorage"
)

type fakeAppBuildRepo struct {
	builds    map[string]*models.AppBuild
	createErr error
}

func newFakeAppBuildRepo() *fakeAppBuildRepo {
	return &fakeAppBuildRepo{builds: map[string]*models.AppBuild{}}
}

func (r *fakeAppBuildRepo) Create(_ context.Context, b *models.AppBuild) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.builds[b.ID] = b
	return nil
}

func (r *fakeAppBuildRepo) GetByID(_ context.Context, id string) (*models.AppBuild, error) {
	b, ok := r.builds[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *fakeAppBuildRepo) GetLatestByCampusID(_ context.Context, campusID string) (*models.AppBuild, error) {
	var latest *models.AppBuild
	for _, b := range r.builds {
		if b.CampusID != campusID || b.IsDeleted {
			continue
		}
		if latest == nil || b.BuildNumber > latest.BuildNumber {
			latest = b
		}
	}
	if latest == nil {
		return nil, repositories.ErrNotFound
	}
	copied := *latest
	return &copied, nil
}

func (r *fakeAppBuildRepo) GetAllByCampusID(_ context.Context, campusID string, _ uint64, _ int) ([]*models.AppBuild, error) {
	var out []*models.AppBuild
	for _, b := range r.builds {
		if b.CampusID == campusID && !b.IsDeleted {
			copied := *b
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeAppBuildRepo) CountByCampusID(_ context.Context, campusID string) (int64, error) {
	var n int64
	for _, b := range r.builds {
		if b.CampusID == campusID && !b.IsDeleted {
			n++
		}
	}
	return n, nil
}

func (r *fakeAppBuildRepo) UpdateByID(_ context.Context, id string, patch map[string]interface{}) error {
	b, ok := r.builds[id]
	if !ok {
		return repositories.ErrNotFound
	}
	if v, ok := patch["is_deleted"]; ok {
		b.IsDeleted = v.(bool)
	}
	return nil
}

type fakeStorage struct {
	saved   map[string]bool
	deleted []string
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{saved: map[string]bool{}}
}

func (s *fakeStorage) Save(fileHeader *multipart.FileHeader, subDir string) (*filestorage.StoredFile, error) {
	path := filepath.ToSlash(filepath.Join(subDir, "stored-"+fileHeader.Filename))
	s.saved[path] = true
	return &filestorage.StoredFile{
		Path:     path,
		Name:     fileHeader.Filename,
		Size:     fileHeader.Size,
		Checksum: "abc123",
	}, nil
}

func (s *fakeStorage) FullPath(storedPath string) string {
	return "/data/uploads/" + storedPath
}

func (s *fakeStorage) Delete(storedPath string) error {
	s.deleted = append(s.deleted, storedPath)
	delete(s.saved, storedPath)
	return nil
}

func apkFileHeader(name string, size int64) *multipart.FileHeader {
	return &multipart.FileHeader{Filename: name, Size: size}
}

func TestAppBuildServiceUpload(t *testing.T) {
	repo := newFakeAppBuildRepo()
	storage := newFakeStorage()
	svc := NewAppBuildService(repo, storage)

	build, err := svc.Upload(context.Background(), &dto.UploadAppBuildForm{
		CampusID:     "campus-1",
		Version:      "2.4.0",
		BuildNumber:  240,
		ReleaseNotes: "bug fixes",
	}, apkFileHeader("app-release.apk", 1024))
	require.NoError(t, err)

	assert.Equal(t, "app-release.apk", build.FileName)
	assert.Equal(t, int64(1024), build.FileSize)
	assert.Equal(t, "abc123", build.Checksum)
	assert.True(t, storage.saved[build.StoragePath])
	assert.Contains(t, repo.builds, build.ID)
}

func TestAppBuildServiceUploadCleansUpOnCreateFailure(t *testing.T) {
	repo := newFakeAppBuildRepo()
	repo.createErr = assert.AnError
	storage := newFakeStorage()
	svc := NewAppBuildService(repo, storage)

	_, err := svc.Upload(context.Background(), &dto.UploadAppBuildForm{
		CampusID:    "campus-1",
		Version:     "2.4.0",
		BuildNumber: 240,
	}, apkFileHeader("app-release.apk", 1024))
	require.Error(t, err)

	// The orphaned binary must be removed.
	assert.Empty(t, storage.saved)
	require.Len(t, storage.deleted, 1)
}

func TestAppBuildServiceUploadDuplicateBuildNumber(t *testing.T) {
	repo := newFakeAppBuildRepo()
	repo.createErr = repositories.ErrDuplicate
	storage := newFakeStorage()
	svc := NewAppBuildService(repo, storage)

	_, err := svc.Upload(context.Background(), &dto.UploadAppBuildForm{
		CampusID:    "campus-1",
		Version:     "2.4.0",
		BuildNumber: 240,
	}, apkFileHeader("app-release.apk", 1024))
	require.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Empty(t, storage.saved)
}

func TestAppBuildServiceGetLatest(t *testing.T) {
	repo := newFakeAppBuildRepo()
	storage := newFakeStorage()
	svc := NewAppBuildService(repo, storage)

	for _, n := range []int{10, 30, 20} {
		_, err := svc.Upload(context.Background(), &dto.UploadAppBuildForm{
			CampusID:    "campus-1",
			Version:     "1.0",
			BuildNumber: n,
		}, apkFileHeader("app.apk", 1))
		require.NoError(t, err)
	}

	latest, err := svc.GetLatestByCampusID(context.Background(), "campus-1")
	require.NoError(t, err)
	assert.Equal(t, 30, latest.BuildNumber)
}

func TestAppBuildServiceGetLatestNoBuilds(t *testing.T) {
	svc := NewAppBuildService(newFakeAppBuildRepo(), newFakeStorage())

	_, err := svc.GetLatestByCampusID(context.Background(), "campus-1")
	assert.ErrorIs(t, err, apperrors.ErrAppBuildNotFound)
}

func TestAppBuildServiceDownloadPath(t *testing.T) {
	repo := newFakeAppBuildRepo()
	storage := newFakeStorage()
	svc := NewAppBuildService(repo, storage)

	build, err := svc.Upload(context.Background(), &dto.UploadAppBuildForm{
		CampusID:    "campus-1",
		Version:     "1.0",
		BuildNumber: 1,
	}, apkFileHeader("app.apk", 1))
	require.NoError(t, err)

	path, name, err := svc.DownloadPath(context.Background(), build.ID)
	require.NoError(t, err)
	assert.Equal(t, "/data/uploads/"+build.StoragePath, path)
	assert.Equal(t, "app.apk", name)
}

func TestAppBuildServiceDeleteRemovesBinary(t *testing.T) {
	repo := newFakeAppBuildRepo()
	storage := newFakeStorage()
	svc := NewAppBuildService(repo, storage)

	build, err := svc.Upload(context.Background(), &dto.UploadAppBuildForm{
		CampusID:    "campus-1",
		Version:     "1.0",
		BuildNumber: 1,
	}, apkFileHeader("app.apk", 1))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteByID(context.Background(), build.ID))

	assert.True(t, repo.builds[build.ID].IsDeleted)
	assert.Contains(t, storage.deleted, build.StoragePath)

	_, err = svc.GetByID(context.Background(), build.ID)
	assert.ErrorIs(t, err, apperrors.ErrAppBuildNotFound)
}
