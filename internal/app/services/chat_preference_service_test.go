package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolhub/backend/internal/app/models"
	"github.com/schoolhub/backend/internal/app/models/dto"
	"github.com/schoolhub/backend/internal/app/repositories"
	"github.com/schoolhub/backend/internal/pkg/apperrors"
)

type fakeChatPreferenceRepo struct {
	prefs map[string]*models.ChatPreference // keyed by user id
}

func newFakeChatPreferenceRepo() *fakeChatPreferenceRepo {
	return &fakeChatPreferenceRepo{prefs: map[string]*models.ChatPreference{}}
}

func (r *fakeChatPreferenceRepo) Upsert(_ context.Context, p *models.ChatPreference) error {
	if existing, ok := r.prefs[p.UserID]; ok {
		p.ID = existing.ID
		p.CreatedAt = existing.CreatedAt
	}
	r.prefs[p.UserID] = p
	return nil
}

func (r *fakeChatPreferenceRepo) GetByUserID(_ context.Context, userID string) (*models.ChatPreference, error) {
	p, ok := r.prefs[userID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *fakeChatPreferenceRepo) GetAllByCampusID(_ context.Context, campusID string, _ uint64, _ int) ([]*models.ChatPreference, error) {
	var out []*models.ChatPreference
	for _, p := range r.prefs {
		if p.CampusID == campusID && !p.IsDeleted {
			copied := *p
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeChatPreferenceRepo) UpdateByID(_ context.Context, id string, patch map[string]interface{}) error {
	for _, p := range r.prefs {
		if p.ID != id {
			continue
		}
		if v, ok := patch["is_deleted"]; ok {
			p.IsDeleted = v.(bool)
		}
		return nil
	}
	return repositories.ErrNotFound
}

func TestChatPreferenceUpsertDefaults(t *testing.T) {
	svc := NewChatPreferenceService(newFakeChatPreferenceRepo())

	pref, err := svc.Upsert(context.Background(), &dto.UpsertChatPreferenceRequest{
		CampusID: "campus-1",
		UserID:   "user-1",
	})
	require.NoError(t, err)

	// Omitted showReadReceipts means receipts stay visible.
	assert.True(t, pref.ShowReadReceipts)
	assert.False(t, pref.MuteAll)
	assert.NotNil(t, pref.MutedConversationIDs)
	assert.Empty(t, pref.MutedConversationIDs)
}

func TestChatPreferenceUpsertReplacesExisting(t *testing.T) {
	repo := newFakeChatPreferenceRepo()
	svc := NewChatPreferenceService(repo)

	first, err := svc.Upsert(context.Background(), &dto.UpsertChatPreferenceRequest{
		CampusID: "campus-1",
		UserID:   "user-1",
		MuteAll:  true,
	})
	require.NoError(t, err)

	hidden := false
	updated, err := svc.Upsert(context.Background(), &dto.UpsertChatPreferenceRequest{
		CampusID:             "campus-1",
		UserID:               "user-1",
		MutedConversationIDs: []string{"conv-9"},
		ShowReadReceipts:     &hidden,
	})
	require.NoError(t, err)

	assert.False(t, updated.ShowReadReceipts)
	assert.False(t, updated.MuteAll)
	assert.Equal(t, []string{"conv-9"}, updated.MutedConversationIDs)
	assert.Len(t, repo.prefs, 1)

	// Replacing settings keeps the stored row's identity.
	assert.Equal(t, first.ID, updated.ID)
	assert.Equal(t, first.CreatedAt, updated.CreatedAt)

	got, err := svc.GetByUserID(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
}

func TestChatPreferenceGetByUserIDNotFound(t *testing.T) {
	svc := NewChatPreferenceService(newFakeChatPreferenceRepo())

	_, err := svc.GetByUserID(context.Background(), "user-1")
	assert.ErrorIs(t, err, apperrors.ErrChatPreferenceNotFound)
}

func TestChatPreferenceDeleteByUserID(t *testing.T) {
	repo := newFakeChatPreferenceRepo()
	svc := NewChatPreferenceService(repo)

	_, err := svc.Upsert(context.Background(), &dto.UpsertChatPreferenceRequest{
		CampusID: "campus-1",
		UserID:   "user-1",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteByUserID(context.Background(), "user-1"))

	_, err = svc.GetByUserID(context.Background(), "user-1")
	assert.ErrorIs(t, err, apperrors.ErrChatPreferenceNotFound)

	// Deleting twice reports not found.
	err = svc.DeleteByUserID(context.Background(), "user-1")
	assert.ErrorIs(t, err, apperrors.ErrChatPreferenceNotFound)
}
