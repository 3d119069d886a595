package dto

import "github.com/schoolhub/backend/internal/app/models"

// UpsertChatPreferenceRequest creates or replaces a user's chat settings.
type UpsertChatPreferenceRequest struct {
	CampusID             string          `json:"campusId" binding:"required"`
	UserID               string          `json:"userId" binding:"required"`
	MuteAll              bool            `json:"muteAll"`
	MutedConversationIDs []string        `json:"mutedConversationIds"`
	NotificationSound    string          `json:"notificationSound"`
	ShowReadReceipts     *bool           `json:"showReadReceipts"`
	Metadata             models.Metadata `json:"metaData"`
}
