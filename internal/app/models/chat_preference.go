package models

import "time"

// ChatPreference stores a user's chat settings. One row per user,
// maintained by upsert.
type ChatPreference struct {
	ID                    string    `db:"id" json:"id"`
	CampusID              string    `db:"campus_id" json:"campusId"`
	UserID                string    `db:"user_id" json:"userId"`
	MuteAll               bool      `db:"mute_all" json:"muteAll"`
	MutedConversationIDs  []string  `db:"muted_conversation_ids" json:"mutedConversationIds"`
	NotificationSound     string    `db:"notification_sound" json:"notificationSound"`
	ShowReadReceipts      bool      `db:"show_read_receipts" json:"showReadReceipts"`
	IsDeleted             bool      `db:"is_deleted" json:"isDeleted"`
	Metadata              Metadata  `db:"meta_data" json:"metaData,omitempty"`
	CreatedAt             time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt             time.Time `db:"updated_at" json:"updatedAt"`
}
