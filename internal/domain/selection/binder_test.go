package selection_test

import (
	"testing"

	"github.com/rpggio/reworkdesk/internal/domain/record"
	"github.com/rpggio/reworkdesk/internal/domain/selection"
	"github.com/stretchr/testify/require"
)

const today = "2026-03-04"

func visible() []record.Record {
	return []record.Record{
		{ProjectID: "PRJ-001", Fields: record.Fields{
			ProjectName: "Oncology Campaign", BU: "Oncology", ProjectType: "Campaign",
			ClassificationMedia: "Digital", AssignedDate: "2025-01-10", Designer: "Alice",
			QCReviewer: "Bob", ContentStatus: record.StatusInProgress, GDRework: 10, POCRework: 5,
			Comments: "Initial draft completed",
		}},
		{ProjectID: "PRJ-002", Fields: record.Fields{
			ProjectName: "Cardio Visual Aid", BU: "Cardiology", ProjectType: "Visual Aid",
			ClassificationMedia: "Print", AssignedDate: "2025-01-15", Designer: "Charlie",
			QCReviewer: "David", ContentStatus: record.StatusCompleted, GDRework: 2, POCRework: 1,
			Comments: "Finalized",
		}},
	}
}

func intPtr(v int) *int { return &v }

func TestBind_SelectsRow(t *testing.T) {
	rows := visible()
	form := selection.Bind(rows, intPtr(0), today)

	require.Equal(t, "PRJ-001", form.ProjectID)
	require.Equal(t, rows[0].Fields, form.Normalize(today))

	form = selection.Bind(rows, intPtr(1), today)
	require.Equal(t, "PRJ-002", form.ProjectID)
	require.Equal(t, "Print", *form.ClassificationMedia)
}

func TestBind_NoSelectionResets(t *testing.T) {
	form := selection.Bind(visible(), nil, today)

	require.Empty(t, form.ProjectID)
	require.Empty(t, form.ProjectName)
	require.Nil(t, form.BU)
	require.Nil(t, form.ProjectType)
	require.Nil(t, form.ClassificationMedia)
	require.Equal(t, today, form.AssignedDate)
	require.Empty(t, form.Designer)
	require.Empty(t, form.QCReviewer)
	require.Nil(t, form.GDRework)
	require.Nil(t, form.POCRework)
	require.Nil(t, form.ContentStatus)
	require.Empty(t, form.Comments)
}

func TestBind_StaleIndexIsNoSelection(t *testing.T) {
	rows := visible()
	for _, idx := range []int{-1, 2, 99} {
		require.Equal(t, record.DefaultForm(today), selection.Bind(rows, intPtr(idx), today))
	}

	// The list shrank under a prior selection.
	require.Equal(t, record.DefaultForm(today), selection.Bind(rows[:1], intPtr(1), today))
	require.Equal(t, record.DefaultForm(today), selection.Bind(nil, intPtr(0), today))
}
