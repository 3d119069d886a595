package models

import "time"

// LeavePolicy defines how many days of a given leave type a role may take.
type LeavePolicy struct {
	ID              string    `db:"id" json:"id"`
	CampusID        string    `db:"campus_id" json:"campusId"`
	Name            string    `db:"name" json:"name"`
	LeaveType       string    `db:"leave_type" json:"leaveType"`
	DaysAllowed     int       `db:"days_allowed" json:"daysAllowed"`
	CarryForward    bool      `db:"carry_forward" json:"carryForward"`
	ApplicableRoles []string  `db:"applicable_roles" json:"applicableRoles"`
	IsActive        bool      `db:"is_active" json:"isActive"`
	IsDeleted       bool      `db:"is_deleted" json:"isDeleted"`
	Metadata        Metadata  `db:"meta_data" json:"metaData,omitempty"`
	CreatedAt       time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time `db:"updated_at" json:"updatedAt"`
}
