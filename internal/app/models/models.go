package models

// Metadata is the open-ended key/value attachment carried by most entities,
// persisted as JSONB. Keys are caller-defined.
type Metadata map[string]interface{}

// Role names carried in JWT claims.
const (
	RoleTeacher = "Teacher"
	RoleParent  = "Parent"
)
