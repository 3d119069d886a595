package models

import "time"

// DevicePlatform enumerates supported client platforms.
type DevicePlatform string

const (
	PlatformAndroid DevicePlatform = "android"
	PlatformIOS     DevicePlatform = "ios"
	PlatformWeb     DevicePlatform = "web"
)

// Device is a registered push/notification endpoint. Registration upserts
// by device token, so re-registering the same device refreshes the row.
type Device struct {
	ID          string         `db:"id" json:"id"`
	CampusID    string         `db:"campus_id" json:"campusId"`
	UserID      string         `db:"user_id" json:"userId"`
	DeviceToken string         `db:"device_token" json:"deviceToken"`
	Platform    DevicePlatform `db:"platform" json:"platform"`
	AppVersion  string         `db:"app_version" json:"appVersion"`
	LastSeenAt  time.Time      `db:"last_seen_at" json:"lastSeenAt"`
	IsActive    bool           `db:"is_active" json:"isActive"`
	IsDeleted   bool           `db:"is_deleted" json:"isDeleted"`
	Metadata    Metadata       `db:"meta_data" json:"metaData,omitempty"`
	CreatedAt   time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time      `db:"updated_at" json:"updatedAt"`
}
