package filter_test

import (
	"testing"

	"github.com/rpggio/reworkdesk/internal/domain/filter"
	"github.com/rpggio/reworkdesk/internal/domain/record"
	"github.com/stretchr/testify/require"
)

func fixture() []record.Record {
	return []record.Record{
		{ProjectID: "PRJ-001", Fields: record.Fields{ProjectName: "Oncology Campaign", BU: "Oncology", ProjectType: "Campaign", ContentStatus: record.StatusInProgress, GDRework: 10}},
		{ProjectID: "PRJ-002", Fields: record.Fields{ProjectName: "Cardio Visual Aid", BU: "Cardiology", ProjectType: "Visual Aid", ContentStatus: record.StatusCompleted, GDRework: 2}},
		{ProjectID: "PRJ-003", Fields: record.Fields{ProjectName: "Onco (v2) Emailer*", BU: "Oncology", ProjectType: "Emailer", ContentStatus: record.StatusNotStarted}},
		{ProjectID: "PRJ-004", Fields: record.Fields{ProjectName: "Immuno Banner", BU: "Immunology", ProjectType: "Banner"}},
	}
}

func ids(records []record.Record) []string {
	out := make([]string, 0, len(records))
	for _, rec := range records {
		out = append(out, rec.ProjectID)
	}
	return out
}

func TestApply_Identity(t *testing.T) {
	records := fixture()
	out := filter.Apply(records, filter.Criteria{})
	require.Equal(t, records, out)

	out[0].ProjectName = "changed"
	require.Equal(t, "Oncology Campaign", records[0].ProjectName)
}

func TestApply_EmptyInput(t *testing.T) {
	out := filter.Apply(nil, filter.Criteria{BU: "Oncology"})
	require.NotNil(t, out)
	require.Empty(t, out)

	out = filter.Apply([]record.Record{}, filter.Criteria{})
	require.NotNil(t, out)
	require.Empty(t, out)
}

func TestApply_Criteria(t *testing.T) {
	tests := []struct {
		name     string
		criteria filter.Criteria
		want     []string
	}{
		{"bu", filter.Criteria{BU: "Oncology"}, []string{"PRJ-001", "PRJ-003"}},
		{"status", filter.Criteria{Status: record.StatusCompleted}, []string{"PRJ-002"}},
		{"type", filter.Criteria{ProjectType: "Banner"}, []string{"PRJ-004"}},
		{"search case insensitive", filter.Criteria{Search: "ONCO"}, []string{"PRJ-001", "PRJ-003"}},
		{"and composition", filter.Criteria{BU: "Oncology", Status: record.StatusInProgress}, []string{"PRJ-001"}},
		{"no match", filter.Criteria{BU: "Oncology", ProjectType: "Banner"}, []string{}},
		{"regex characters are literal", filter.Criteria{Search: "(v2) emailer*"}, []string{"PRJ-003"}},
		{"dot is not a wildcard", filter.Criteria{Search: "o.c"}, []string{}},
		{"unclosed bracket", filter.Criteria{Search: "["}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ids(filter.Apply(fixture(), tt.criteria)))
		})
	}
}

func TestApply_SoundAndComplete(t *testing.T) {
	records := fixture()
	bus := []string{"", "Oncology", "Cardiology", "Neurology"}
	statuses := []record.ContentStatus{"", record.StatusNotStarted, record.StatusInProgress, record.StatusCompleted}
	searches := []string{"", "a", "campaign", "*"}

	for _, bu := range bus {
		for _, status := range statuses {
			for _, search := range searches {
				criteria := filter.Criteria{BU: bu, Status: status, Search: search}
				out := filter.Apply(records, criteria)

				var want []string
				for _, rec := range records {
					if criteria.Matches(rec) {
						want = append(want, rec.ProjectID)
					}
				}
				if want == nil {
					want = []string{}
				}
				require.Equal(t, want, ids(out), "criteria %+v", criteria)
			}
		}
	}
}

func TestOptionsFrom(t *testing.T) {
	opts := filter.OptionsFrom(fixture())
	require.Equal(t, []string{"Oncology", "Cardiology", "Immunology"}, opts.BusinessUnits)
	require.Equal(t, []record.ContentStatus{record.StatusInProgress, record.StatusCompleted, record.StatusNotStarted}, opts.Statuses)
	require.Equal(t, []string{"Campaign", "Visual Aid", "Emailer", "Banner"}, opts.ProjectTypes)

	empty := filter.OptionsFrom(nil)
	require.Empty(t, empty.BusinessUnits)
}
