package dto

// UploadAppBuildForm is the multipart form accompanying an APK upload.
type UploadAppBuildForm struct {
	CampusID     string `form:"campusId" binding:"required"`
	Version      string `form:"version" binding:"required"`
	BuildNumber  int    `form:"buildNumber" binding:"required,gt=0"`
	ReleaseNotes string `form:"releaseNotes"`
}
