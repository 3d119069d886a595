package dto

import "github.com/schoolhub/backend/internal/app/models"

// CreateSyllabusRequest represents syllabus creation data
type CreateSyllabusRequest struct {
	CampusID      string          `json:"campusId" binding:"required"`
	ClassID       string          `json:"classId" binding:"required"`
	Subject       string          `json:"subject" binding:"required"`
	Title         string          `json:"title" binding:"required"`
	Description   string          `json:"description"`
	Units         []string        `json:"units"`
	AttachmentURL string          `json:"attachmentUrl"`
	Metadata      models.Metadata `json:"metaData"`
}

// UpdateSyllabusRequest represents a partial syllabus update
type UpdateSyllabusRequest struct {
	Subject       *string         `json:"subject"`
	Title         *string         `json:"title"`
	Description   *string         `json:"description"`
	Units         []string        `json:"units"`
	AttachmentURL *string         `json:"attachmentUrl"`
	Metadata      models.Metadata `json:"metaData"`
}

// ToPatch converts the request into a column patch map.
func (r *UpdateSyllabusRequest) ToPatch() map[string]interface{} {
	patch := map[string]interface{}{}
	if r.Subject != nil {
		patch["subject"] = *r.Subject
	}
	if r.Title != nil {
		patch["title"] = *r.Title
	}
	if r.Description != nil {
		patch["description"] = *r.Description
	}
	if r.Units != nil {
		patch["units"] = r.Units
	}
	if r.AttachmentURL != nil {
		patch["attachment_url"] = *r.AttachmentURL
	}
	if r.Metadata != nil {
		patch["meta_data"] = r.Metadata
	}
	return patch
}
