package models

import "time"

// PaymentStatus enumerates payment outcomes.
type PaymentStatus string

const (
	PaymentStatusInitiated  PaymentStatus = "initiated"
	PaymentStatusSuccessful PaymentStatus = "successful"
	PaymentStatusFailed     PaymentStatus = "failed"
	PaymentStatusRefunded   PaymentStatus = "refunded"
)

// Payment records a single payment against a fee. Gateway integration is an
// external collaborator; only the resulting record lives here.
type Payment struct {
	ID        string        `db:"id" json:"id"`
	CampusID  string        `db:"campus_id" json:"campusId"`
	FeeID     string        `db:"fee_id" json:"feeId"`
	StudentID string        `db:"student_id" json:"studentId"`
	Amount    float64       `db:"amount" json:"amount"`
	Method    string        `db:"method" json:"method"`
	Reference string        `db:"reference" json:"reference"`
	Status    PaymentStatus `db:"status" json:"status"`
	PaidAt    time.Time     `db:"paid_at" json:"paidAt"`
	IsDeleted bool          `db:"is_deleted" json:"isDeleted"`
	Metadata  Metadata      `db:"meta_data" json:"metaData,omitempty"`
	CreatedAt time.Time     `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time     `db:"updated_at" json:"updatedAt"`
}
