package dto

import "github.com/schoolhub/backend/internal/app/models"

// ToggleFeedAccessRequest carries the feed switch for one student. The
// boolean is a pointer so a missing value fails binding instead of
// silently defaulting to false.
type ToggleFeedAccessRequest struct {
	CampusID          string          `json:"campusId" binding:"required"`
	StudentID         string          `json:"studentId" binding:"required"`
	FeedAccessEnabled *bool           `json:"feedAccessEnabled" binding:"required"`
	Metadata          models.Metadata `json:"metaData"`
}

// FeedStatusResponse reports the effective feed access for a
// (parent, student) pair. CurrentAccess is true when no control row exists.
type FeedStatusResponse struct {
	ParentID      string `json:"parentId"`
	StudentID     string `json:"studentId"`
	CurrentAccess bool   `json:"currentAccess"`
}
