package models

import "time"

// Syllabus describes the curriculum of a subject for a class.
type Syllabus struct {
	ID            string    `db:"id" json:"id"`
	CampusID      string    `db:"campus_id" json:"campusId"`
	ClassID       string    `db:"class_id" json:"classId"`
	Subject       string    `db:"subject" json:"subject"`
	Title         string    `db:"title" json:"title"`
	Description   string    `db:"description" json:"description"`
	Units         []string  `db:"units" json:"units"`
	AttachmentURL string    `db:"attachment_url" json:"attachmentUrl"`
	IsDeleted     bool      `db:"is_deleted" json:"isDeleted"`
	Metadata      Metadata  `db:"meta_data" json:"metaData,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time `db:"updated_at" json:"updatedAt"`
}
