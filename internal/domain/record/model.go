package record

// ContentStatus represents the production state of a project's content
type ContentStatus string

const (
	StatusNotStarted ContentStatus = "Not Started"
	StatusInProgress ContentStatus = "In Progress"
	StatusCompleted  ContentStatus = "Completed"
)

// Statuses lists every valid content status in workflow order.
var Statuses = []ContentStatus{StatusNotStarted, StatusInProgress, StatusCompleted}

// Valid reports whether s is one of the known statuses.
func (s ContentStatus) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// DateLayout is the ISO 8601 calendar date layout used for assigned dates.
const DateLayout = "2006-01-02"

// Fields holds every mutable attribute of a project record.
// Updates replace these by name; the project ID is never part of it.
type Fields struct {
	ProjectName         string        `json:"project_name" yaml:"project_name"`
	BU                  string        `json:"bu" yaml:"bu"`
	ProjectType         string        `json:"project_type" yaml:"project_type"`
	ClassificationMedia string        `json:"classification_media" yaml:"classification_media"`
	AssignedDate        string        `json:"assigned_date" yaml:"assigned_date"`
	Designer            string        `json:"designer" yaml:"designer"`
	QCReviewer          string        `json:"qc_reviewer" yaml:"qc_reviewer"`
	ContentStatus       ContentStatus `json:"content_status" yaml:"content_status"`
	GDRework            float64       `json:"gd_rework" yaml:"gd_rework"`
	POCRework           float64       `json:"poc_rework" yaml:"poc_rework"`
	Comments            string        `json:"comments" yaml:"comments"`
}

// Record is a single project row in the store
type Record struct {
	ProjectID string `json:"project_id" yaml:"project_id"`
	Fields    `yaml:",inline"`
}
