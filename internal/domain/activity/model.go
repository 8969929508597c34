package activity

import "time"

// Type is the kind of change an entry records.
type Type string

const (
	TypeProjectCreated Type = "project_created"
	TypeProjectDeleted Type = "project_deleted"
)

// Valid reports whether t is a known activity type.
func (t Type) Valid() bool {
	return t == TypeProjectCreated || t == TypeProjectDeleted
}

// Entry is one change in a tenant's activity log.
type Entry struct {
	ID        int64     `json:"id"`
	TenantID  string    `json:"tenant_id"`
	ProjectID string    `json:"project_id"`
	Type      Type      `json:"type"`
	Summary   string    `json:"summary"`
	CreatedAt time.Time `json:"created_at"`
}
