package record

import "time"

// FormState is the editable projection bound to the project form.
// Nil pointers are unset dropdowns or number inputs.
type FormState struct {
	ProjectID           string         `json:"project_id"`
	ProjectName         string         `json:"project_name"`
	BU                  *string        `json:"bu"`
	ProjectType         *string        `json:"project_type"`
	ClassificationMedia *string        `json:"classification_media"`
	AssignedDate        string         `json:"assigned_date"`
	Designer            string         `json:"designer"`
	QCReviewer          string         `json:"qc_reviewer"`
	GDRework            *float64       `json:"gd_rework"`
	POCRework           *float64       `json:"poc_rework"`
	ContentStatus       *ContentStatus `json:"content_status"`
	Comments            string         `json:"comments"`
}

// Today formats t as an assigned-date value.
func Today(t time.Time) string {
	return t.Format(DateLayout)
}

// DefaultForm returns the empty form used for new projects.
func DefaultForm(today string) FormState {
	return FormState{AssignedDate: today}
}

// FormFromRecord copies every field of rec into a form.
func FormFromRecord(rec Record) FormState {
	form := FormState{
		ProjectID:           rec.ProjectID,
		ProjectName:         rec.ProjectName,
		BU:                  optionalString(rec.BU),
		ProjectType:         optionalString(rec.ProjectType),
		ClassificationMedia: optionalString(rec.ClassificationMedia),
		AssignedDate:        rec.AssignedDate,
		Designer:            rec.Designer,
		QCReviewer:          rec.QCReviewer,
		GDRework:            floatPtr(rec.GDRework),
		POCRework:           floatPtr(rec.POCRework),
		Comments:            rec.Comments,
	}
	if rec.ContentStatus != "" {
		status := rec.ContentStatus
		form.ContentStatus = &status
	}
	return form
}

// Normalize resolves unset form values to their stored defaults.
func (f FormState) Normalize(today string) Fields {
	fields := Fields{
		ProjectName:         f.ProjectName,
		BU:                  stringValue(f.BU),
		ProjectType:         stringValue(f.ProjectType),
		ClassificationMedia: stringValue(f.ClassificationMedia),
		AssignedDate:        f.AssignedDate,
		Designer:            f.Designer,
		QCReviewer:          f.QCReviewer,
		Comments:            f.Comments,
	}
	if fields.AssignedDate == "" {
		fields.AssignedDate = today
	}
	if f.GDRework != nil {
		fields.GDRework = *f.GDRework
	}
	if f.POCRework != nil {
		fields.POCRework = *f.POCRework
	}
	if f.ContentStatus != nil {
		fields.ContentStatus = *f.ContentStatus
	}
	return fields
}

func optionalString(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

func stringValue(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func floatPtr(v float64) *float64 {
	return &v
}
