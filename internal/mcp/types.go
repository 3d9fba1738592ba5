package mcp

import (
	"time"

	"github.com/rpggio/reworkdesk/internal/dashboard"
	"github.com/rpggio/reworkdesk/internal/domain/activity"
	"github.com/rpggio/reworkdesk/internal/domain/filter"
	"github.com/rpggio/reworkdesk/internal/domain/record"
	"github.com/rpggio/reworkdesk/internal/domain/summary"
	"github.com/rpggio/reworkdesk/internal/domain/upsert"
	"github.com/samber/lo"
)

// Project is the flat wire form of a record.
type Project struct {
	ProjectID           string  `json:"project_id"`
	ProjectName         string  `json:"project_name"`
	BU                  string  `json:"bu"`
	ProjectType         string  `json:"project_type"`
	ClassificationMedia string  `json:"classification_media"`
	AssignedDate        string  `json:"assigned_date"`
	Designer            string  `json:"designer"`
	QCReviewer          string  `json:"qc_reviewer"`
	ContentStatus       string  `json:"content_status"`
	GDRework            float64 `json:"gd_rework"`
	POCRework           float64 `json:"poc_rework"`
	Comments            string  `json:"comments"`
}

// Form is the wire form of the edit form. Omitted values are unset.
type Form struct {
	ProjectID           string   `json:"project_id,omitempty" jsonschema:"existing project id; empty creates a new project"`
	ProjectName         string   `json:"project_name,omitempty" jsonschema:"project name (required)"`
	BU                  *string  `json:"bu,omitempty" jsonschema:"business unit (required)"`
	ProjectType         *string  `json:"project_type,omitempty" jsonschema:"project type (required)"`
	ClassificationMedia *string  `json:"classification_media,omitempty" jsonschema:"classification media"`
	AssignedDate        string   `json:"assigned_date,omitempty" jsonschema:"assigned date YYYY-MM-DD; defaults to today"`
	Designer            string   `json:"designer,omitempty" jsonschema:"designer"`
	QCReviewer          string   `json:"qc_reviewer,omitempty" jsonschema:"QC reviewer"`
	ContentStatus       *string  `json:"content_status,omitempty" jsonschema:"Not Started, In Progress or Completed"`
	GDRework            *float64 `json:"gd_rework,omitempty" jsonschema:"GD rework percentage; defaults to 0"`
	POCRework           *float64 `json:"poc_rework,omitempty" jsonschema:"POC rework percentage; defaults to 0"`
	Comments            string   `json:"comments,omitempty" jsonschema:"comments"`
}

type Criteria struct {
	BU          string `json:"bu,omitempty" jsonschema:"exact business unit"`
	Status      string `json:"status,omitempty" jsonschema:"exact content status"`
	ProjectType string `json:"project_type,omitempty" jsonschema:"exact project type"`
	Search      string `json:"search,omitempty" jsonschema:"case-insensitive literal substring of the project name"`
}

type ReworkMeans struct {
	GDRework  float64 `json:"gd_rework"`
	POCRework float64 `json:"poc_rework"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type BURework struct {
	BU        string  `json:"bu"`
	GDRework  float64 `json:"gd_rework"`
	POCRework float64 `json:"poc_rework"`
}

type Summary struct {
	Total              int                    `json:"total"`
	Completed          int                    `json:"completed"`
	InProgress         int                    `json:"in_progress"`
	CompletionRate     float64                `json:"completion_rate"`
	AvgGDRework        float64                `json:"avg_gd_rework"`
	StatusDistribution map[string]int         `json:"status_distribution"`
	ReworkByBU         map[string]ReworkMeans `json:"rework_by_bu"`
	StatusSeries       []StatusCount          `json:"status_series"`
	ReworkSeries       []BURework             `json:"rework_series"`
}

type ListProjectsResult struct {
	Projects []Project `json:"projects"`
	Criteria Criteria  `json:"criteria"`
	Revision int64     `json:"revision"`
}

type GetSummaryParams struct{}

type SummaryResult struct {
	Summary  Summary `json:"summary"`
	Revision int64   `json:"revision"`
}

type SelectProjectParams struct {
	Index *int `json:"index,omitempty" jsonschema:"row index in the current visible list; omit to clear the selection"`
}

type SelectProjectResult struct {
	Selected *int `json:"selected,omitempty"`
	Form     Form `json:"form"`
}

type SaveProjectParams struct {
	Form Form `json:"form" jsonschema:"form state to save"`
}

type SaveProjectResult struct {
	Outcome   string `json:"outcome"`
	Message   string `json:"message"`
	ProjectID string `json:"project_id,omitempty"`
	Phase     string `json:"phase"`
	Revision  int64  `json:"revision"`
}

type GetProjectParams struct {
	ProjectID string `json:"project_id" jsonschema:"project id"`
}

type GetProjectResult struct {
	Project Project `json:"project"`
}

type GetFilterOptionsParams struct{}

type FilterOptionsResult struct {
	BusinessUnits        []string `json:"business_units"`
	ProjectTypes         []string `json:"project_types"`
	ClassificationMedia  []string `json:"classification_media"`
	Statuses             []string `json:"statuses"`
	PresentBusinessUnits []string `json:"present_business_units"`
	PresentStatuses      []string `json:"present_statuses"`
	PresentProjectTypes  []string `json:"present_project_types"`
}

type GetDashboardParams struct{}

type DashboardResult struct {
	Revision int64     `json:"revision"`
	Criteria Criteria  `json:"criteria"`
	Visible  []Project `json:"visible"`
	Metrics  Summary   `json:"metrics"`
	Selected *int      `json:"selected,omitempty"`
	Form     Form      `json:"form"`
}

type GetRecentActivityParams struct {
	ProjectID string `json:"project_id,omitempty" jsonschema:"only entries for this project"`
	Limit     int    `json:"limit,omitempty" jsonschema:"maximum entries; defaults to 50"`
}

type ActivityEntry struct {
	ID        int64  `json:"id"`
	ProjectID string `json:"project_id,omitempty"`
	Type      string `json:"type"`
	Summary   string `json:"summary"`
	Revision  int64  `json:"revision"`
	CreatedAt string `json:"created_at"`
}

type RecentActivityResult struct {
	Entries []ActivityEntry `json:"entries"`
}

func toProject(rec record.Record) Project {
	return Project{
		ProjectID:           rec.ProjectID,
		ProjectName:         rec.ProjectName,
		BU:                  rec.BU,
		ProjectType:         rec.ProjectType,
		ClassificationMedia: rec.ClassificationMedia,
		AssignedDate:        rec.AssignedDate,
		Designer:            rec.Designer,
		QCReviewer:          rec.QCReviewer,
		ContentStatus:       string(rec.ContentStatus),
		GDRework:            rec.GDRework,
		POCRework:           rec.POCRework,
		Comments:            rec.Comments,
	}
}

func toProjects(records []record.Record) []Project {
	return lo.Map(records, func(rec record.Record, _ int) Project {
		return toProject(rec)
	})
}

func toForm(state record.FormState) Form {
	form := Form{
		ProjectID:           state.ProjectID,
		ProjectName:         state.ProjectName,
		BU:                  state.BU,
		ProjectType:         state.ProjectType,
		ClassificationMedia: state.ClassificationMedia,
		AssignedDate:        state.AssignedDate,
		Designer:            state.Designer,
		QCReviewer:          state.QCReviewer,
		GDRework:            state.GDRework,
		POCRework:           state.POCRework,
		Comments:            state.Comments,
	}
	if state.ContentStatus != nil {
		status := string(*state.ContentStatus)
		form.ContentStatus = &status
	}
	return form
}

func (f Form) state() record.FormState {
	state := record.FormState{
		ProjectID:           f.ProjectID,
		ProjectName:         f.ProjectName,
		BU:                  f.BU,
		ProjectType:         f.ProjectType,
		ClassificationMedia: f.ClassificationMedia,
		AssignedDate:        f.AssignedDate,
		Designer:            f.Designer,
		QCReviewer:          f.QCReviewer,
		GDRework:            f.GDRework,
		POCRework:           f.POCRework,
		Comments:            f.Comments,
	}
	if f.ContentStatus != nil {
		status := record.ContentStatus(*f.ContentStatus)
		state.ContentStatus = &status
	}
	return state
}

func toCriteria(c filter.Criteria) Criteria {
	return Criteria{BU: c.BU, Status: string(c.Status), ProjectType: c.ProjectType, Search: c.Search}
}

func (c Criteria) criteria() filter.Criteria {
	return filter.Criteria{BU: c.BU, Status: record.ContentStatus(c.Status), ProjectType: c.ProjectType, Search: c.Search}
}

func toSummary(m summary.Metrics) Summary {
	return Summary{
		Total:              m.Total,
		Completed:          m.Completed,
		InProgress:         m.InProgress,
		CompletionRate:     m.CompletionRate,
		AvgGDRework:        m.AvgGDRework,
		StatusDistribution: lo.MapKeys(m.StatusDistribution, func(_ int, status record.ContentStatus) string { return string(status) }),
		ReworkByBU: lo.MapValues(m.ReworkByBU, func(means summary.ReworkMeans, _ string) ReworkMeans {
			return ReworkMeans{GDRework: means.GD, POCRework: means.POC}
		}),
		StatusSeries: lo.Map(m.StatusSeries, func(sc summary.StatusCount, _ int) StatusCount {
			return StatusCount{Status: string(sc.Status), Count: sc.Count}
		}),
		ReworkSeries: lo.Map(m.ReworkSeries, func(br summary.BURework, _ int) BURework {
			return BURework{BU: br.BU, GDRework: br.GD, POCRework: br.POC}
		}),
	}
}

func toSaveResult(res upsert.Result) SaveProjectResult {
	out := SaveProjectResult{
		Outcome:  string(res.Outcome),
		Message:  res.Message,
		Phase:    string(res.Phase),
		Revision: res.Revision,
	}
	if res.Record != nil {
		out.ProjectID = res.Record.ProjectID
	}
	return out
}

func toDashboard(snap dashboard.Snapshot) DashboardResult {
	return DashboardResult{
		Revision: snap.Revision,
		Criteria: toCriteria(snap.Criteria),
		Visible:  toProjects(snap.Visible),
		Metrics:  toSummary(snap.Metrics),
		Selected: snap.Selection,
		Form:     toForm(snap.Form),
	}
}

func toActivityEntries(entries []activity.Entry) []ActivityEntry {
	return lo.Map(entries, func(e activity.Entry, _ int) ActivityEntry {
		return ActivityEntry{
			ID:        e.ID,
			ProjectID: e.ProjectID,
			Type:      string(e.Type),
			Summary:   e.Summary,
			Revision:  e.Revision,
			CreatedAt: e.CreatedAt.UTC().Format(time.RFC3339),
		}
	})
}

func statusStrings(statuses []record.ContentStatus) []string {
	return lo.Map(statuses, func(s record.ContentStatus, _ int) string { return string(s) })
}
