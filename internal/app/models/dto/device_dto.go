package dto

import "github.com/schoolhub/backend/internal/app/models"

// RegisterDeviceRequest registers (or refreshes) a device by its token.
type RegisterDeviceRequest struct {
	CampusID    string          `json:"campusId" binding:"required"`
	UserID      string          `json:"userId" binding:"required"`
	DeviceToken string          `json:"deviceToken" binding:"required"`
	Platform    string          `json:"platform" binding:"required,oneof=android ios web"`
	AppVersion  string          `json:"appVersion"`
	Metadata    models.Metadata `json:"metaData"`
}
