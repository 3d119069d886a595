package dto

import "github.com/schoolhub/backend/internal/app/models"

// CreateStudentRecordRequest represents student record creation data
type CreateStudentRecordRequest struct {
	CampusID      string          `json:"campusId" binding:"required"`
	StudentID     string          `json:"studentId" binding:"required"`
	RecordType    string          `json:"recordType" binding:"required"`
	Title         string          `json:"title" binding:"required"`
	Description   string          `json:"description"`
	AcademicYear  string          `json:"academicYear"`
	AttachmentURL string          `json:"attachmentUrl"`
	Metadata      models.Metadata `json:"metaData"`
}

// UpdateStudentRecordRequest represents a partial student record update
type UpdateStudentRecordRequest struct {
	RecordType    *string         `json:"recordType"`
	Title         *string         `json:"title"`
	Description   *string         `json:"description"`
	AcademicYear  *string         `json:"academicYear"`
	AttachmentURL *string         `json:"attachmentUrl"`
	Metadata      models.Metadata `json:"metaData"`
}

// ToPatch converts the request into a column patch map.
func (r *UpdateStudentRecordRequest) ToPatch() map[string]interface{} {
	patch := map[string]interface{}{}
	if r.RecordType != nil {
		patch["record_type"] = *r.RecordType
	}
	if r.Title != nil {
		patch["title"] = *r.Title
	}
	if r.Description != nil {
		patch["description"] = *r.Description
	}
	if r.AcademicYear != nil {
		patch["academic_year"] = *r.AcademicYear
	}
	if r.AttachmentURL != nil {
		patch["attachment_url"] = *r.AttachmentURL
	}
	if r.Metadata != nil {
		patch["meta_data"] = r.Metadata
	}
	return patch
}
