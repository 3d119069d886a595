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

type chatPreferenceRepository interface {
	Upsert(ctx context.Context, p *models.ChatPreference) error
	GetByUserID(ctx context.Context, userID string) (*models.ChatPreference, error)
	GetAllByCampusID(ctx context.Context, campusID string, offset uint64, limit int) ([]*models.ChatPreference, error)
	UpdateByID(ctx context.Context, id string, patch map[string]interface{}) error
}

// ChatPreferenceService manages per-user chat settings, one row per user.
type ChatPreferenceService struct {
	preferenceRepo chatPreferenceRepository
}

// NewChatPreferenceService creates a new chat preference service instance
func NewChatPreferenceService(preferenceRepo chatPreferenceRepository) *ChatPreferenceService {
	return &ChatPreferenceService{preferenceRepo: preferenceRepo}
}

// Upsert creates or replaces a user's chat settings. Read receipts default
// to shown when the request leaves the field out.
func (s *ChatPreferenceService) Upsert(ctx context.Context, req *dto.UpsertChatPreferenceRequest) (*models.ChatPreference, error) {
	showReadReceipts := true
	if req.ShowReadReceipts != nil {
		showReadReceipts = *req.ShowReadReceipts
	}

	now := time.Now()
	pref := &models.ChatPreference{
		ID:                   uuid.New().String(),
		CampusID:             req.CampusID,
		UserID:               req.UserID,
		MuteAll:              req.MuteAll,
		MutedConversationIDs: req.MutedConversationIDs,
		NotificationSound:    req.NotificationSound,
		ShowReadReceipts:     showReadReceipts,
		Metadata:             req.Metadata,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if pref.MutedConversationIDs == nil {
		pref.MutedConversationIDs = []string{}
	}

	if err := s.preferenceRepo.Upsert(ctx, pref); err != nil {
		return nil, err
	}
	return pref, nil
}

// GetByUserID returns a user's chat settings; soft-deleted rows count as not found.
func (s *ChatPreferenceService) GetByUserID(ctx context.Context, userID string) (*models.ChatPreference, error) {
	pref, err := s.preferenceRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrChatPreferenceNotFound
		}
		return nil, err
	}
	if pref.IsDeleted {
		return nil, apperrors.ErrChatPreferenceNotFound
	}
	return pref, nil
}

// GetAllByCampusID lists a campus's chat preferences.
func (s *ChatPreferenceService) GetAllByCampusID(ctx context.Context, campusID string, offset uint64, limit int) ([]*models.ChatPreference, error) {
	return s.preferenceRepo.GetAllByCampusID(ctx, campusID, offset, limit)
}

// DeleteByUserID soft-deletes a user's chat settings.
func (s *ChatPreferenceService) DeleteByUserID(ctx context.Context, userID string) error {
	pref, err := s.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}

	patch := map[string]interface{}{
		"is_deleted": true,
		"updated_at": time.Now(),
	}
	if err := s.preferenceRepo.UpdateByID(ctx, pref.ID, patch); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.ErrChatPreferenceNotFound
		}
		return err
	}
	return nil
}
