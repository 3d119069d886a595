package dto

import "github.com/schoolhub/backend/internal/app/models"

// CreateLeavePolicyRequest represents leave policy creation data
type CreateLeavePolicyRequest struct {
	CampusID        string          `json:"campusId" binding:"required"`
	Name            string          `json:"name" binding:"required"`
	LeaveType       string          `json:"leaveType" binding:"required"`
	DaysAllowed     int             `json:"daysAllowed" binding:"required,gt=0"`
	CarryForward    bool            `json:"carryForward"`
	ApplicableRoles []string        `json:"applicableRoles"`
	Metadata        models.Metadata `json:"metaData"`
}

// UpdateLeavePolicyRequest represents a partial leave policy update
type UpdateLeavePolicyRequest struct {
	Name            *string         `json:"name"`
	LeaveType       *string         `json:"leaveType"`
	DaysAllowed     *int            `json:"daysAllowed" binding:"omitempty,gt=0"`
	CarryForward    *bool           `json:"carryForward"`
	ApplicableRoles []string        `json:"applicableRoles"`
	IsActive        *bool           `json:"isActive"`
	Metadata        models.Metadata `json:"metaData"`
}

// ToPatch converts the request into a column patch map.
func (r *UpdateLeavePolicyRequest) ToPatch() map[string]interface{} {
	patch := map[string]interface{}{}
	if r.Name != nil {
		patch["name"] = *r.Name
	}
	if r.LeaveType != nil {
		patch["leave_type"] = *r.LeaveType
	}
	if r.DaysAllowed != nil {
		patch["days_allowed"] = *r.DaysAllowed
	}
	if r.CarryForward != nil {
		patch["carry_forward"] = *r.CarryForward
	}
	if r.ApplicableRoles != nil {
		patch["applicable_roles"] = r.ApplicableRoles
	}
	if r.IsActive != nil {
		patch["is_active"] = *r.IsActive
	}
	if r.Metadata != nil {
		patch["meta_data"] = r.Metadata
	}
	return patch
}
