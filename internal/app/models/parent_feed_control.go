package models

import "time"

// ParentFeedControl holds the feed-access switch for one (parent, student)
// pair. At most one row exists per pair; writes go through an upsert.
// When no row exists, feed access defaults to enabled.
type ParentFeedControl struct {
	ID                string    `db:"id" json:"id"`
	CampusID          string    `db:"campus_id" json:"campusId"`
	ParentID          string    `db:"parent_id" json:"parentId"`
	StudentID         string    `db:"student_id" json:"studentId"`
	FeedAccessEnabled bool      `db:"feed_access_enabled" json:"feedAccessEnabled"`
	IsDeleted         bool      `db:"is_deleted" json:"isDeleted"`
	Metadata          Metadata  `db:"meta_data" json:"metaData,omitempty"`
	CreatedAt         time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt         time.Time `db:"updated_at" json:"updatedAt"`
}
