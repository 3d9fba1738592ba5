package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/rpggio/reworkdesk/internal/domain/filter"
	"github.com/rpggio/reworkdesk/internal/domain/record"
	"github.com/rpggio/reworkdesk/internal/domain/upsert"
	"github.com/rpggio/reworkdesk/internal/memory"
	"github.com/stretchr/testify/require"
)

func seed() []record.Record {
	return []record.Record{
		{ProjectID: "PRJ-001", Fields: record.Fields{
			ProjectName: "Oncology Campaign", BU: "Oncology", ProjectType: "Campaign",
			AssignedDate: "2025-01-10", ContentStatus: record.StatusInProgress, GDRework: 10, POCRework: 5,
		}},
		{ProjectID: "PRJ-002", Fields: record.Fields{
			ProjectName: "Cardio Visual Aid", BU: "Cardiology", ProjectType: "Visual Aid",
			AssignedDate: "2025-01-15", ContentStatus: record.StatusCompleted, GDRework: 2, POCRework: 1,
		}},
	}
}

func newTestEngine(t *testing.T) (*Engine, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	for _, rec := range seed() {
		_, err := store.Insert(context.Background(), rec)
		require.NoError(t, err)
	}
	saver := upsert.NewService(store, nil, record.DefaultCandidates(), nil)
	e := NewEngine(store, saver, nil)
	e.now = func() time.Time { return time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC) }
	return e, store
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func TestEngine_FilterThenAggregate(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	rows, rev, err := e.ListVisible(ctx, filter.Criteria{BU: "Oncology"})
	require.NoError(t, err)
	require.Equal(t, int64(2), rev)
	require.Len(t, rows, 1)
	require.Equal(t, "PRJ-001", rows[0].ProjectID)

	m, err := e.Metrics(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, m.Total)
	require.Equal(t, 0, m.Completed)
	require.Equal(t, 1, m.InProgress)
	require.Equal(t, 0.0, m.CompletionRate)
	require.Equal(t, 10.0, m.AvgGDRework)
}

func TestEngine_MemoizesOnUnchangedInputs(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := e.Snapshot(ctx)
		require.NoError(t, err)
	}
	require.Equal(t, 1, e.recomputes[viewVisible])
	require.Equal(t, 1, e.recomputes[viewMetrics])
	require.Equal(t, 1, e.recomputes[viewForm])

	// Equal criteria are not a change.
	require.NoError(t, e.SetCriteria(ctx, filter.Criteria{}))
	_, err := e.Snapshot(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, e.recomputes[viewVisible])

	// A selection change re-binds the form only.
	_, err = e.Select(ctx, intPtr(0))
	require.NoError(t, err)
	_, err = e.Metrics(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, e.recomputes[viewVisible])
	require.Equal(t, 1, e.recomputes[viewMetrics])
	require.Equal(t, 2, e.recomputes[viewForm])

	// A criteria change reruns every downstream derivation.
	require.NoError(t, e.SetCriteria(ctx, filter.Criteria{Search: "cardio"}))
	_, err = e.Snapshot(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, e.recomputes[viewVisible])
	require.Equal(t, 2, e.recomputes[viewMetrics])
	require.Equal(t, 3, e.recomputes[viewForm])
}

func TestEngine_SelectionBindsAndResets(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	form, err := e.Select(ctx, intPtr(0))
	require.NoError(t, err)
	require.Equal(t, "PRJ-001", form.ProjectID)
	require.Equal(t, seed()[0].Fields, form.Normalize("unused"))

	form, err = e.Select(ctx, nil)
	require.NoError(t, err)
	require.Equal(t, record.DefaultForm("2026-03-04"), form)
	require.Nil(t, e.Selection())
}

func TestEngine_StaleSelectionAfterFilter(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	_, err := e.Select(ctx, intPtr(1))
	require.NoError(t, err)

	_, _, err = e.ListVisible(ctx, filter.Criteria{BU: "Oncology"})
	require.NoError(t, err)

	form, err := e.Form(ctx)
	require.NoError(t, err)
	require.Equal(t, record.DefaultForm("2026-03-04"), form)
	require.Equal(t, 1, *e.Selection())
}

func TestEngine_SaveRecomputesAfterMutation(t *testing.T) {
	e, store := newTestEngine(t)
	ctx := context.Background()

	var events []Event
	unsubscribe := e.Subscribe(func(ev Event) {
		// Observers may read back into the engine.
		rows, rev, err := e.Visible(ctx)
		require.NoError(t, err)
		require.Equal(t, ev.Revision, rev)
		require.Len(t, rows, 3)
		events = append(events, ev)
	})

	before, err := e.Metrics(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, before.Total)

	res, err := e.Save(ctx, record.FormState{
		ProjectName: "Immuno Banner",
		BU:          strPtr("Immunology"),
		ProjectType: strPtr("Banner"),
	})
	require.NoError(t, err)
	require.Equal(t, upsert.OutcomeCreated, res.Outcome)
	require.Equal(t, "2026-03-04", res.Record.AssignedDate)

	require.Len(t, events, 1)
	require.Equal(t, SignalStore, events[0].Signal)
	require.Equal(t, int64(3), events[0].Revision)

	after, err := e.Metrics(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, after.Total)

	rows, _, err := e.Visible(ctx)
	require.NoError(t, err)
	ids := []string{rows[0].ProjectID, rows[1].ProjectID, rows[2].ProjectID}
	require.Equal(t, []string{"PRJ-001", "PRJ-002", res.Record.ProjectID}, ids)

	unsubscribe()
	rev, err := store.Revision(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(3), rev)
}

func TestEngine_RejectedSaveDoesNotNotify(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	notified := false
	e.Subscribe(func(Event) { notified = true })

	res, err := e.Save(ctx, record.FormState{ProjectName: ""})
	require.ErrorIs(t, err, record.ErrInvalidInput)
	require.Equal(t, upsert.OutcomeRejected, res.Outcome)
	require.False(t, notified)

	m, err := e.Metrics(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, m.Total)
}

func TestEngine_MetricsAreCopies(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	m, err := e.Metrics(ctx)
	require.NoError(t, err)
	m.StatusDistribution[record.StatusCompleted] = 99

	again, err := e.Metrics(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, again.StatusDistribution[record.StatusCompleted])
}

func TestEngine_FilterOptions(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	opts, err := e.FilterOptions(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"Oncology", "Cardiology"}, opts.BusinessUnits)

	_, err = e.FilterOptions(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, e.recomputes[viewOptions])
}
