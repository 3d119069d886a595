package dto

import "github.com/schoolhub/backend/internal/app/models"

// CreateCampusRequest represents campus creation data
type CreateCampusRequest struct {
	Name         string          `json:"name" binding:"required"`
	Address      string          `json:"address" binding:"required"`
	Domain       string          `json:"domain" binding:"required"`
	ContactEmail string          `json:"contactEmail" binding:"omitempty,email"`
	ContactPhone string          `json:"contactPhone"`
	Metadata     models.Metadata `json:"metaData"`
}

// UpdateCampusRequest represents a partial campus update; nil fields are
// left untouched.
type UpdateCampusRequest struct {
	Name         *string         `json:"name"`
	Address      *string         `json:"address"`
	Domain       *string         `json:"domain"`
	ContactEmail *string         `json:"contactEmail" binding:"omitempty,email"`
	ContactPhone *string         `json:"contactPhone"`
	IsActive     *bool           `json:"isActive"`
	Metadata     models.Metadata `json:"metaData"`
}

// ToPatch converts the request into a column patch map.
func (r *UpdateCampusRequest) ToPatch() map[string]interface{} {
	patch := map[string]interface{}{}
	if r.Name != nil {
		patch["name"] = *r.Name
	}
	if r.Address != nil {
		patch["address"] = *r.Address
	}
	if r.Domain != nil {
		patch["domain"] = *r.Domain
	}
	if r.ContactEmail != nil {
		patch["contact_email"] = *r.ContactEmail
	}
	if r.ContactPhone != nil {
		patch["contact_phone"] = *r.ContactPhone
	}
	if r.IsActive != nil {
		patch["is_active"] = *r.IsActive
	}
	if r.Metadata != nil {
		patch["meta_data"] = r.Metadata
	}
	return patch
}
