package models

import "time"

// AppBuild is an uploaded application package (APK) distributed to campus
// devices. The binary itself lives in file storage; this row holds metadata.
type AppBuild struct {
	ID           string    `db:"id" json:"id"`
	CampusID     string    `db:"campus_id" json:"campusId"`
	Version      string    `db:"version" json:"version"`
	BuildNumber  int       `db:"build_number" json:"buildNumber"`
	FileName     string    `db:"file_name" json:"fileName"`
	FileSize     int64     `db:"file_size" json:"fileSize"`
	Checksum     string    `db:"checksum" json:"checksum"`
	StoragePath  string    `db:"storage_path" json:"-"`
	ReleaseNotes string    `db:"release_notes" json:"releaseNotes"`
	IsDeleted    bool      `db:"is_deleted" json:"isDeleted"`
	Metadata     Metadata  `db:"meta_data" json:"metaData,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}
