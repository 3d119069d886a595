package filestorage

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/schoolhub/backend/internal/pkg/logger"
)

// StoredFile describes a file persisted by a Storage implementation.
type StoredFile struct {
	// Path is the storage-relative path used to retrieve the file later.
	Path     string
	Name     string
	Size     int64
	Checksum string
}

// Storage is the interface consumed by services that persist uploads.
type Storage interface {
	Save(fileHeader *multipart.FileHeader, subDir string) (*StoredFile, error)
	FullPath(storedPath string) string
	Delete(storedPath string) error
}

// LocalStorage saves files under a base directory on the local filesystem.
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates a LocalStorage rooted at basePath, creating the
// directory when missing.
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	return &LocalStorage{basePath: basePath}, nil
}

// Save stores an uploaded file under subDir with a collision-free name and
// returns the stored metadata including a sha256 checksum.
func (ls *LocalStorage) Save(fileHeader *multipart.FileHeader, subDir string) (*StoredFile, error) {
	if fileHeader == nil {
		return nil, fmt.Errorf("no file provided")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dirPath := ls.basePath
	relDir := ""
	if subDir != "" {
		dirPath = filepath.Join(ls.basePath, subDir)
		relDir = subDir
		if err := os.MkdirAll(dirPath, os.ModePerm); err != nil {
			return nil, fmt.Errorf("failed to create subdirectory: %w", err)
		}
	}

	ext := filepath.Ext(fileHeader.Filename)
	uniqueName := uuid.New().String() + ext
	dstPath := filepath.Join(dirPath, uniqueName)

	dst, err := os.Create(dstPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	hasher := sha256.New()
	size, err := io.Copy(io.MultiWriter(dst, hasher), src)
	if err != nil {
		_ = os.Remove(dstPath)
		return nil, fmt.Errorf("failed to save file content: %w", err)
	}

	stored := &StoredFile{
		Path:     filepath.ToSlash(filepath.Join(relDir, uniqueName)),
		Name:     fileHeader.Filename,
		Size:     size,
		Checksum: hex.EncodeToString(hasher.Sum(nil)),
	}

	logger.Info().
		Str("filename", fileHeader.Filename).
		Str("saved_as", stored.Path).
		Int64("size", size).
		Msg("File saved")
	return stored, nil
}

// FullPath returns the absolute filesystem path for a stored path.
func (ls *LocalStorage) FullPath(storedPath string) string {
	if storedPath == "" {
		return ""
	}
	return filepath.Join(ls.basePath, filepath.FromSlash(storedPath))
}

// Delete removes a stored file. Deleting a missing file is not an error.
func (ls *LocalStorage) Delete(storedPath string) error {
	if storedPath == "" {
		return nil
	}

	physicalPath := ls.FullPath(storedPath)
	if _, err := os.Stat(physicalPath); os.IsNotExist(err) {
		logger.Warn().Str("path", physicalPath).Msg("File to delete does not exist")
		return nil
	}

	if err := os.Remove(physicalPath); err != nil {
		logger.Error().Err(err).Str("path", physicalPath).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
