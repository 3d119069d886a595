package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolhub/backend/internal/app/models"
	"github.com/schoolhub/backend/internal/app/models/dto"
	"github.com/schoolhub/backend/internal/app/repositories"
	"github.com/schoolhub/backend/internal/app/services"
	"github.com/schoolhub/backend/internal/middleware"
	"github.com/schoolhub/backend/internal/pkg/auth"
)

type memFeedControlRepo struct {
	controls map[string]*models.ParentFeedControl
}

func newMemFeedControlRepo() *memFeedControlRepo {
	return &memFeedControlRepo{controls: map[string]*models.ParentFeedControl{}}
}

func (r *memFeedControlRepo) Upsert(_ context.Context, c *models.ParentFeedControl) error {
	key := c.ParentID + "/" + c.StudentID
	if existing, ok := r.controls[key]; ok {
		existing.FeedAccessEnabled = c.FeedAccessEnabled
		*c = *existing
		return nil
	}
	r.controls[key] = c
	return nil
}

func (r *memFeedControlRepo) GetByParentAndStudent(_ context.Context, parentID, studentID string) (*models.ParentFeedControl, error) {
	c, ok := r.controls[parentID+"/"+studentID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func (r *memFeedControlRepo) GetAllByCampusID(_ context.Context, campusID string, _ uint64, _ int) ([]*models.ParentFeedControl, error) {
	var out []*models.ParentFeedControl
	for _, c := range r.controls {
		if c.CampusID == campusID && !c.IsDeleted {
			copied := *c
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *memFeedControlRepo) CountByCampusID(_ context.Context, campusID string) (int64, error) {
	var n int64
	for _, c := range r.controls {
		if c.CampusID == campusID && !c.IsDeleted {
			n++
		}
	}
	return n, nil
}

func newFeedControlTestRouter(repo *memFeedControlRepo) (*gin.Engine, *auth.JWTService) {
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "test",
	})
	authMiddleware := middleware.NewAuthMiddleware(jwtService)
	controller := NewParentFeedControlController(services.NewParentFeedControlService(repo))

	router := gin.New()
	group := router.Group("/feed-controls")
	group.Use(authMiddleware.JWTAuth())
	group.PUT("/toggle", authMiddleware.RoleRequired(models.RoleParent), controller.ToggleFeedAccess)
	group.GET("/status", controller.GetFeedStatus)
	return router, jwtService
}

func doAuthedJSON(t *testing.T, router *gin.Engine, token, method, path string, body interface{}) (*httptest.ResponseRecorder, dto.APIResponse) {
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
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var envelope dto.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return rec, envelope
}

func TestToggleFeedAccessAsParent(t *testing.T) {
	repo := newMemFeedControlRepo()
	router, jwtService := newFeedControlTestRouter(repo)

	token, err := jwtService.GenerateToken("parent-1", "campus-1", models.RoleParent)
	require.NoError(t, err)

	rec, envelope := doAuthedJSON(t, router, token, http.MethodPut, "/feed-controls/toggle", map[string]interface{}{
		"campusId":          "campus-1",
		"studentId":         "student-1",
		"feedAccessEnabled": false,
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, envelope.Success)

	// The parent id is taken from the token, not the request body.
	control := repo.controls["parent-1/student-1"]
	require.NotNil(t, control)
	assert.False(t, control.FeedAccessEnabled)
}

func TestToggleFeedAccessRejectsNonParent(t *testing.T) {
	router, jwtService := newFeedControlTestRouter(newMemFeedControlRepo())

	token, err := jwtService.GenerateToken("teacher-1", "campus-1", models.RoleTeacher)
	require.NoError(t, err)

	rec, envelope := doAuthedJSON(t, router, token, http.MethodPut, "/feed-controls/toggle", map[string]interface{}{
		"campusId":          "campus-1",
		"studentId":         "student-1",
		"feedAccessEnabled": false,
	})

	assert.Equal(t, http.StatusForbidden, rec.Code)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, dto.ErrorCodeForbidden, envelope.Error.Code)
}

func TestToggleFeedAccessRequiresToken(t *testing.T) {
	router, _ := newFeedControlTestRouter(newMemFeedControlRepo())

	rec, envelope := doAuthedJSON(t, router, "", http.MethodPut, "/feed-controls/toggle", map[string]interface{}{
		"campusId":          "campus-1",
		"studentId":         "student-1",
		"feedAccessEnabled": false,
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, dto.ErrorCodeUnauthorized, envelope.Error.Code)
}

func TestGetFeedStatusDefaultsToEnabled(t *testing.T) {
	router, jwtService := newFeedControlTestRouter(newMemFeedControlRepo())

	token, err := jwtService.GenerateToken("parent-1", "campus-1", models.RoleParent)
	require.NoError(t, err)

	rec, envelope := doAuthedJSON(t, router, token, http.MethodGet, "/feed-controls/status?studentId=student-1", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	data := envelope.Data.(map[string]interface{})
	assert.Equal(t, true, data["currentAccess"])
	assert.Equal(t, "parent-1", data["parentId"])
}

func TestGetFeedStatusRequiresStudentID(t *testing.T) {
	router, jwtService := newFeedControlTestRouter(newMemFeedControlRepo())

	token, err := jwtService.GenerateToken("parent-1", "campus-1", models.RoleParent)
	require.NoError(t, err)

	rec, envelope := doAuthedJSON(t, router, token, http.MethodGet, "/feed-controls/status", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, dto.ErrorCodeBadRequest, envelope.Error.Code)
	assert.Equal(t, "studentId", envelope.Error.Field)
}
