package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolhub/backend/internal/app/models"
	"github.com/schoolhub/backend/internal/app/models/dto"
	"github.com/schoolhub/backend/internal/app/repositories"
	"github.com/schoolhub/backend/internal/app/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type memCampusRepo struct {
	campuses map[string]*models.Campus
}

func newMemCampusRepo() *memCampusRepo {
	return &memCampusRepo{campuses: map[string]*models.Campus{}}
}

func (r *memCampusRepo) Create(_ context.Context, c *models.Campus) error {
	r.campuses[c.ID] = c
	return nil
}

func (r *memCampusRepo) GetByID(_ context.Context, id string) (*models.Campus, error) {
	c, ok := r.campuses[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func (r *memCampusRepo) GetAll(_ context.Context, _ uint64, _ int) ([]*models.Campus, error) {
	var out []*models.Campus
	for _, c := range r.campuses {
		if !c.IsDeleted {
			copied := *c
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *memCampusRepo) Count(_ context.Context) (int64, error) {
	var n int64
	for _, c := range r.campuses {
		if !c.IsDeleted {
			n++
		}
	}
	return n, nil
}

func (r *memCampusRepo) UpdateByID(_ context.Context, id string, patch map[string]interface{}) error {
	c, ok := r.campuses[id]
	if !ok {
		return repositories.ErrNotFound
	}
	if v, ok := patch["name"]; ok {
		c.Name = v.(string)
	}
	if v, ok := patch["is_deleted"]; ok {
		c.IsDeleted = v.(bool)
	}
	if v, ok := patch["is_active"]; ok {
		c.IsActive = v.(bool)
	}
	return nil
}

func newCampusTestRouter(repo *memCampusRepo) *gin.Engine {
	controller := NewCampusController(services.NewCampusService(repo))

	router := gin.New()
	router.POST("/campuses", controller.CreateCampus)
	router.GET("/campuses", controller.GetAllCampuses)
	router.GET("/campuses/:id", controller.GetCampusByID)
	router.PATCH("/campuses/:id", controller.UpdateCampus)
	router.DELETE("/campuses/:id", controller.DeleteCampus)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, dto.APIResponse) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var envelope dto.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return rec, envelope
}

func TestCreateCampus(t *testing.T) {
	router := newCampusTestRouter(newMemCampusRepo())

	rec, envelope := doJSON(t, router, http.MethodPost, "/campuses", map[string]string{
		"name":    "North Campus",
		"address": "1 School Lane",
		"domain":  "north.schoolhub.app",
	})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, envelope.Success)
	require.NotNil(t, envelope.Data)
	data := envelope.Data.(map[string]interface{})
	assert.NotEmpty(t, data["id"])
	assert.Equal(t, "North Campus", data["name"])
	assert.False(t, envelope.Timestamp.IsZero())
}

func TestCreateCampusValidation(t *testing.T) {
	router := newCampusTestRouter(newMemCampusRepo())

	// name, address and domain are all required.
	rec, envelope := doJSON(t, router, http.MethodPost, "/campuses", map[string]string{
		"name": "North Campus",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, envelope.Success)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, dto.ErrorCodeValidationFailed, envelope.Error.Code)
}

func TestGetCampusByIDNotFound(t *testing.T) {
	router := newCampusTestRouter(newMemCampusRepo())

	rec, envelope := doJSON(t, router, http.MethodGet, "/campuses/missing", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, dto.ErrorCodeResourceNotFound, envelope.Error.Code)
	assert.Equal(t, "campus not found", envelope.Error.Message)
}

func TestCampusLifecycleOverHTTP(t *testing.T) {
	repo := newMemCampusRepo()
	router := newCampusTestRouter(repo)

	rec, envelope := doJSON(t, router, http.MethodPost, "/campuses", map[string]string{
		"name":    "North Campus",
		"address": "1 School Lane",
		"domain":  "north.schoolhub.app",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	id := envelope.Data.(map[string]interface{})["id"].(string)

	rec, envelope = doJSON(t, router, http.MethodPatch, "/campuses/"+id, map[string]string{
		"name": "North Campus Annex",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Campus updated successfully", envelope.Message)
	assert.Equal(t, "North Campus Annex", repo.campuses[id].Name)

	rec, _ = doJSON(t, router, http.MethodDelete, "/campuses/"+id, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = doJSON(t, router, http.MethodGet, "/campuses/"+id, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetAllCampusesPagination(t *testing.T) {
	repo := newMemCampusRepo()
	router := newCampusTestRouter(repo)

	for _, name := range []string{"A", "B", "C"} {
		rec, _ := doJSON(t, router, http.MethodPost, "/campuses", map[string]string{
			"name":    name,
			"address": "addr",
			"domain":  name + ".schoolhub.app",
		})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec, envelope := doJSON(t, router, http.MethodGet, "/campuses?page=1&size=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	data := envelope.Data.(map[string]interface{})
	pagination := data["pagination"].(map[string]interface{})
	assert.Equal(t, float64(3), pagination["totalItems"])
	assert.Equal(t, float64(2), pagination["totalPages"])
	assert.Equal(t, float64(1), pagination["currentPage"])
}
