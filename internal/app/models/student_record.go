package models

import "time"

// StudentRecord is a dated entry in a student's file: achievements,
// disciplinary notes, medical remarks and similar.
type StudentRecord struct {
	ID            string    `db:"id" json:"id"`
	CampusID      string    `db:"campus_id" json:"campusId"`
	StudentID     string    `db:"student_id" json:"studentId"`
	RecordType    string    `db:"record_type" json:"recordType"`
	Title         string    `db:"title" json:"title"`
	Description   string    `db:"description" json:"description"`
	AcademicYear  string    `db:"academic_year" json:"academicYear"`
	AttachmentURL string    `db:"attachment_url" json:"attachmentUrl"`
	IsDeleted     bool      `db:"is_deleted" json:"isDeleted"`
	Metadata      Metadata  `db:"meta_data" json:"metaData,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time `db:"updated_at" json:"updatedAt"`
}
