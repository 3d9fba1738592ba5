package activity

// ListOptions provides filtering options for listing activity.
type ListOptions struct {
	ProjectID string
	Types     []Type
	Limit     int
}
