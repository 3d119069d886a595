package models

import "time"

// Campus is the tenant-scoping entity; most other records carry its id.
type Campus struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Address      string    `db:"address" json:"address"`
	Domain       string    `db:"domain" json:"domain"`
	ContactEmail string    `db:"contact_email" json:"contactEmail"`
	ContactPhone string    `db:"contact_phone" json:"contactPhone"`
	IsActive     bool      `db:"is_active" json:"isActive"`
	IsDeleted    bool      `db:"is_deleted" json:"isDeleted"`
	Metadata     Metadata  `db:"meta_data" json:"metaData,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}
