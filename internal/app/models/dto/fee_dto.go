package dto

import (
	"time"

	"github.com/schoolhub/backend/internal/app/models"
)

// CreateFeeTemplateRequest represents fee template creation data
type CreateFeeTemplateRequest struct {
	CampusID             string          `json:"campusId" binding:"required"`
	Name                 string          `json:"name" binding:"required"`
	ClassID              string          `json:"classId" binding:"required"`
	Amount               float64         `json:"amount" binding:"required,gt=0"`
	DueDate              time.Time       `json:"dueDate" binding:"required"`
	ApplicableStudentIDs []string        `json:"applicableStudentIds"`
	Description          string          `json:"description"`
	Metadata             models.Metadata `json:"metaData"`
}

// UpdateFeeTemplateRequest represents a partial fee template update
type UpdateFeeTemplateRequest struct {
	Name                 *string         `json:"name"`
	ClassID              *string         `json:"classId"`
	Amount               *float64        `json:"amount" binding:"omitempty,gt=0"`
	DueDate              *time.Time      `json:"dueDate"`
	ApplicableStudentIDs []string        `json:"applicableStudentIds"`
	Description          *string         `json:"description"`
	Metadata             models.Metadata `json:"metaData"`
}

// ToPatch converts the request into a column patch map.
func (r *UpdateFeeTemplateRequest) ToPatch() map[string]interface{} {
	patch := map[string]interface{}{}
	if r.Name != nil {
		patch["name"] = *r.Name
	}
	if r.ClassID != nil {
		patch["class_id"] = *r.ClassID
	}
	if r.Amount != nil {
		patch["amount"] = *r.Amount
	}
	if r.DueDate != nil {
		patch["due_date"] = *r.DueDate
	}
	if r.ApplicableStudentIDs != nil {
		patch["applicable_student_ids"] = r.ApplicableStudentIDs
	}
	if r.Description != nil {
		patch["description"] = *r.Description
	}
	if r.Metadata != nil {
		patch["meta_data"] = r.Metadata
	}
	return patch
}

// CreateFeeRequest represents fee creation data
type CreateFeeRequest struct {
	CampusID      string          `json:"campusId" binding:"required"`
	StudentID     string          `json:"studentId" binding:"required"`
	FeeTemplateID string          `json:"feeTemplateId"`
	TotalAmount   float64         `json:"totalAmount" binding:"required,gt=0"`
	DueAmount     float64         `json:"dueAmount" binding:"gte=0"`
	Metadata      models.Metadata `json:"metaData"`
}

// UpdateFeeRequest represents a partial fee update. The service applies the
// patch verbatim: changing paidAmount does not recompute dueAmount.
type UpdateFeeRequest struct {
	TotalAmount *float64          `json:"totalAmount" binding:"omitempty,gt=0"`
	PaidAmount  *float64          `json:"paidAmount" binding:"omitempty,gte=0"`
	DueAmount   *float64          `json:"dueAmount" binding:"omitempty,gte=0"`
	Status      *models.FeeStatus `json:"status" binding:"omitempty,oneof=pending partial paid overdue"`
	Metadata    models.Metadata   `json:"metaData"`
}

// ToPatch converts the request into a column patch map.
func (r *UpdateFeeRequest) ToPatch() map[string]interface{} {
	patch := map[string]interface{}{}
	if r.TotalAmount != nil {
		patch["total_amount"] = *r.TotalAmount
	}
	if r.PaidAmount != nil {
		patch["paid_amount"] = *r.PaidAmount
	}
	if r.DueAmount != nil {
		patch["due_amount"] = *r.DueAmount
	}
	if r.Status != nil {
		patch["status"] = *r.Status
	}
	if r.Metadata != nil {
		patch["meta_data"] = r.Metadata
	}
	return patch
}

// CreatePaymentRequest represents payment recording data
type CreatePaymentRequest struct {
	CampusID  string          `json:"campusId" binding:"required"`
	FeeID     string          `json:"feeId" binding:"required"`
	StudentID string          `json:"studentId" binding:"required"`
	Amount    float64         `json:"amount" binding:"required,gt=0"`
	Method    string          `json:"method" binding:"required"`
	Reference string          `json:"reference"`
	Metadata  models.Metadata `json:"metaData"`
}

// UpdatePaymentRequest represents a partial payment update
type UpdatePaymentRequest struct {
	Status    *models.PaymentStatus `json:"status" binding:"omitempty,oneof=initiated successful failed refunded"`
	Reference *string               `json:"reference"`
	Metadata  models.Metadata       `json:"metaData"`
}

// ToPatch converts the request into a column patch map.
func (r *UpdatePaymentRequest) ToPatch() map[string]interface{} {
	patch := map[string]interface{}{}
	if r.Status != nil {
		patch["status"] = *r.Status
	}
	if r.Reference != nil {
		patch["reference"] = *r.Reference
	}
	if r.Metadata != nil {
		patch["meta_data"] = r.Metadata
	}
	return patch
}
