package models

import "time"

// FeeTemplate defines a fee applicable to a class or a selected set of
// students. Class and student references are plain ids; consistency is the
// caller's responsibility.
type FeeTemplate struct {
	ID                   string    `db:"id" json:"id"`
	CampusID             string    `db:"campus_id" json:"campusId"`
	Name                 string    `db:"name" json:"name"`
	ClassID              string    `db:"class_id" json:"classId"`
	Amount               float64   `db:"amount" json:"amount"`
	DueDate              time.Time `db:"due_date" json:"dueDate"`
	ApplicableStudentIDs []string  `db:"applicable_student_ids" json:"applicableStudentIds"`
	Description          string    `db:"description" json:"description"`
	IsDeleted            bool      `db:"is_deleted" json:"isDeleted"`
	Metadata             Metadata  `db:"meta_data" json:"metaData,omitempty"`
	CreatedAt            time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt            time.Time `db:"updated_at" json:"updatedAt"`
}
