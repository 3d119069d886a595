package models

import "time"

// FeeStatus enumerates the lifecycle of a student fee.
type FeeStatus string

const (
	FeeStatusPending FeeStatus = "pending"
	FeeStatusPartial FeeStatus = "partial"
	FeeStatusPaid    FeeStatus = "paid"
	FeeStatusOverdue FeeStatus = "overdue"
)

// Installment is one paid installment recorded against a fee. The list is
// append-only; entries are never edited after the fact.
type Installment struct {
	Amount float64   `json:"amount"`
	PaidAt time.Time `json:"paidAt"`
	Method string    `json:"method"`
	Status string    `json:"status"`
}

// Fee is a student's billed fee. DueAmount is never derived from
// TotalAmount/PaidAmount by the service; callers patch it explicitly.
type Fee struct {
	ID               string        `db:"id" json:"id"`
	CampusID         string        `db:"campus_id" json:"campusId"`
	StudentID        string        `db:"student_id" json:"studentId"`
	FeeTemplateID    string        `db:"fee_template_id" json:"feeTemplateId"`
	TotalAmount      float64       `db:"total_amount" json:"totalAmount"`
	PaidAmount       float64       `db:"paid_amount" json:"paidAmount"`
	DueAmount        float64       `db:"due_amount" json:"dueAmount"`
	Status           FeeStatus     `db:"status" json:"status"`
	InstallmentsPaid []Installment `db:"installments_paid" json:"installmentsPaid"`
	IsDeleted        bool          `db:"is_deleted" json:"isDeleted"`
	Metadata         Metadata      `db:"meta_data" json:"metaData,omitempty"`
	CreatedAt        time.Time     `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time     `db:"updated_at" json:"updatedAt"`
}
