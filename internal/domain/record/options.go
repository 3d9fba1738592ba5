package record

// Candidates are the fixed option lists offered by the edit form.
// An empty list means any non-empty value is accepted.
type Candidates struct {
	BusinessUnits       []string `json:"business_units" yaml:"business_units"`
	ProjectTypes        []string `json:"project_types" yaml:"project_types"`
	ClassificationMedia []string `json:"classification_media" yaml:"classification_media"`
}

// DefaultCandidates returns the option lists shipped with the dashboard.
func DefaultCandidates() Candidates {
	return Candidates{
		BusinessUnits:       []string{"Oncology", "Cardiology", "Immunology"},
		ProjectTypes:        []string{"Campaign", "Visual Aid", "Emailer", "Banner"},
		ClassificationMedia: []string{"Digital", "Print", "Video"},
	}
}

func allowed(set []string, value string) bool {
	if len(set) == 0 {
		return true
	}
	for _, v := range set {
		if v == value {
			return true
		}
	}
	return false
}
