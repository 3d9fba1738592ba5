package activity

import "time"

// Type represents the kind of activity event
type Type string

const (
	TypeProjectCreated Type = "project_created"
	TypeProjectUpdated Type = "project_updated"
	TypeSaveRejected   Type = "save_rejected"
	TypeSaveFailed     Type = "save_failed"
)

// Entry represents an event in the activity log
type Entry struct {
	ID        int64     `json:"id"`
	ProjectID string    `json:"project_id,omitempty"`
	Type      Type      `json:"type"`
	Summary   string    `json:"summary"`
	Revision  int64     `json:"revision"`
	CreatedAt time.Time `json:"created_at"`
}
