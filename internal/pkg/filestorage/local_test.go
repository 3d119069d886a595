package filestorage

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uploadFileHeader(t *testing.T, fileName string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", fileName)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["file"][0]
}

func TestLocalStorageSave(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	content := []byte("apk bytes")
	stored, err := storage.Save(uploadFileHeader(t, "app-release.apk", content), "builds")
	require.NoError(t, err)

	assert.Equal(t, "app-release.apk", stored.Name)
	assert.Equal(t, int64(len(content)), stored.Size)
	assert.Equal(t, filepath.Ext(stored.Path), ".apk")

	sum := sha256.Sum256(content)
	assert.Equal(t, hex.EncodeToString(sum[:]), stored.Checksum)

	// Stored path resolves to a readable file with the original content.
	data, err := os.ReadFile(storage.FullPath(stored.Path))
	require.NoError(t, err)
	assert.Equal(t, content, data)
}

func TestLocalStorageSaveUniqueNames(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	first, err := storage.Save(uploadFileHeader(t, "app.apk", []byte("v1")), "builds")
	require.NoError(t, err)
	second, err := storage.Save(uploadFileHeader(t, "app.apk", []byte("v2")), "builds")
	require.NoError(t, err)

	assert.NotEqual(t, first.Path, second.Path)
}

func TestLocalStorageSaveNilHeader(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = storage.Save(nil, "builds")
	assert.Error(t, err)
}

func TestLocalStorageDelete(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	stored, err := storage.Save(uploadFileHeader(t, "app.apk", []byte("x")), "builds")
	require.NoError(t, err)

	require.NoError(t, storage.Delete(stored.Path))
	_, statErr := os.Stat(storage.FullPath(stored.Path))
	assert.True(t, os.IsNotExist(statErr))

	// Deleting an already-missing file is not an error.
	assert.NoError(t, storage.Delete(stored.Path))
	assert.NoError(t, storage.Delete(""))
}

func TestLocalStorageFullPathEmpty(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, storage.FullPath(""))
}
