// Package dashboard keeps the visible rows, metrics and form state
// consistent with the store and the user's filter and selection.
//
// Derivations are pulled and memoized on the stamps of their inputs:
//
//	store revision + criteria version -> visible rows
//	visible rows                      -> metrics
//	visible rows + selection + today  -> form state
//	store revision                    -> filter options
package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/rpggio/reworkdesk/internal/domain/filter"
	"github.com/rpggio/reworkdesk/internal/domain/record"
	"github.com/rpggio/reworkdesk/internal/domain/selection"
	"github.com/rpggio/reworkdesk/internal/domain/summary"
	"github.com/rpggio/reworkdesk/internal/domain/upsert"
	"github.com/rpggio/reworkdesk/internal/repository"
	"github.com/rpggio/reworkdesk/internal/telemetry"
)

type visibleKey struct {
	revision int64
	criteria uint64
}

type formKey struct {
	visible   uint64
	selection uint64
	today     string
}

// Engine owns the dashboard's dependency graph.
type Engine struct {
	store  repository.Store
	saver  *upsert.Service
	logger *slog.Logger
	now    func() time.Time

	mu               sync.Mutex
	criteria         filter.Criteria
	criteriaVersion  uint64
	selected         *int
	selectionVersion uint64

	visibleOK    bool
	visibleAt    visibleKey
	visibleStamp uint64
	visible      []record.Record

	metricsOK bool
	metricsAt uint64
	metrics   summary.Metrics

	formOK bool
	formAt formKey
	form   record.FormState

	optionsOK bool
	optionsAt int64
	options   filter.Options

	recomputes map[string]int

	observers  map[int]Observer
	nextHandle int
}

// NewEngine creates an engine over store. Saves go through saver.
func NewEngine(store repository.Store, saver *upsert.Service, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Engine{
		store:      store,
		saver:      saver,
		logger:     logger,
		now:        time.Now,
		recomputes: map[string]int{},
		observers:  map[int]Observer{},
	}
}

// Subscribe registers an observer and returns a function removing it.
func (e *Engine) Subscribe(fn Observer) func() {
	e.mu.Lock()
	defer e.mu.Unlock()
	handle := e.nextHandle
	e.nextHandle++
	e.observers[handle] = fn
	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		delete(e.observers, handle)
	}
}

// Criteria returns the active filter criteria.
func (e *Engine) Criteria() filter.Criteria {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.criteria
}

// SetCriteria replaces the active filter criteria. Setting equal
// criteria does not invalidate anything.
func (e *Engine) SetCriteria(ctx context.Context, criteria filter.Criteria) error {
	e.mu.Lock()
	if criteria == e.criteria {
		e.mu.Unlock()
		return nil
	}
	e.criteria = criteria
	e.criteriaVersion++
	version := e.criteriaVersion
	revision, err := e.store.Revision(ctx)
	observers := e.snapshotObservers()
	e.mu.Unlock()

	if err != nil {
		return fmt.Errorf("reading store revision: %w", err)
	}
	e.logger.Debug("filter criteria changed", "criteria", criteria, "version", version)
	notify(observers, Event{Signal: SignalCriteria, Revision: revision, Version: version})
	return nil
}

// ListVisible applies criteria and returns the visible rows with the
// store revision they were derived from.
func (e *Engine) ListVisible(ctx context.Context, criteria filter.Criteria) ([]record.Record, int64, error) {
	if err := e.SetCriteria(ctx, criteria); err != nil {
		return nil, 0, err
	}
	return e.Visible(ctx)
}

// Visible returns the rows matching the active criteria.
func (e *Engine) Visible(ctx context.Context) ([]record.Record, int64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	rows, key, err := e.visibleLocked(ctx)
	if err != nil {
		return nil, 0, err
	}
	return slices.Clone(rows), key.revision, nil
}

// Metrics returns the summary metrics over the visible rows.
func (e *Engine) Metrics(ctx context.Context) (summary.Metrics, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	m, err := e.metricsLocked(ctx)
	if err != nil {
		return summary.Metrics{}, err
	}
	return cloneMetrics(m), nil
}

// Select sets the selected visible row index; nil clears the selection.
// It returns the form state bound to the new selection.
func (e *Engine) Select(ctx context.Context, index *int) (record.FormState, error) {
	e.mu.Lock()
	if index != nil {
		idx := *index
		index = &idx
	}
	e.selected = index
	e.selectionVersion++
	version := e.selectionVersion
	form, err := e.formLocked(ctx)
	revision := e.visibleAt.revision
	observers := e.snapshotObservers()
	e.mu.Unlock()

	if err != nil {
		return record.FormState{}, err
	}
	notify(observers, Event{Signal: SignalSelection, Revision: revision, Version: version})
	return form, nil
}

// Selection returns the selected index, or nil.
func (e *Engine) Selection() *int {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.selected == nil {
		return nil
	}
	idx := *e.selected
	return &idx
}

// Form returns the form state bound to the current selection.
func (e *Engine) Form(ctx context.Context) (record.FormState, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.formLocked(ctx)
}

// FilterOptions returns the distinct filter values present in the store.
func (e *Engine) FilterOptions(ctx context.Context) (filter.Options, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	revision, err := e.store.Revision(ctx)
	if err != nil {
		return filter.Options{}, fmt.Errorf("reading store revision: %w", err)
	}
	if !e.optionsOK || e.optionsAt != revision {
		all, err := e.store.List(ctx)
		if err != nil {
			return filter.Options{}, fmt.Errorf("listing projects: %w", err)
		}
		e.options = filter.OptionsFrom(all)
		e.optionsAt = revision
		e.optionsOK = true
		e.recompute(viewOptions)
	}
	return filter.Options{
		BusinessUnits: slices.Clone(e.options.BusinessUnits),
		Statuses:      slices.Clone(e.options.Statuses),
		ProjectTypes:  slices.Clone(e.options.ProjectTypes),
	}, nil
}

// Save applies form through the upsert controller. The store mutation
// completes before any derivation can observe the new revision.
func (e *Engine) Save(ctx context.Context, form record.FormState) (upsert.Result, error) {
	e.mu.Lock()
	res, err := e.saver.Save(ctx, form)
	var observers []Observer
	if res.OK() {
		observers = e.snapshotObservers()
	}
	e.mu.Unlock()

	if res.OK() {
		notify(observers, Event{Signal: SignalStore, Revision: res.Revision, Version: uint64(res.Revision)})
	}
	return res, err
}

// Snapshot is every derived view at one instant.
type Snapshot struct {
	Revision  int64            `json:"revision"`
	Criteria  filter.Criteria  `json:"criteria"`
	Visible   []record.Record  `json:"visible"`
	Metrics   summary.Metrics  `json:"metrics"`
	Selection *int             `json:"selection,omitempty"`
	Form      record.FormState `json:"form"`
}

// Snapshot returns a consistent view of the dashboard.
func (e *Engine) Snapshot(ctx context.Context) (Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	rows, key, err := e.visibleLocked(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	m, err := e.metricsLocked(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	form, err := e.formLocked(ctx)
	if err != nil {
		return Snapshot{}, err
	}

	snap := Snapshot{
		Revision: key.revision,
		Criteria: e.criteria,
		Visible:  slices.Clone(rows),
		Metrics:  cloneMetrics(m),
		Form:     form,
	}
	if e.selected != nil {
		idx := *e.selected
		snap.Selection = &idx
	}
	return snap, nil
}

func (e *Engine) visibleLocked(ctx context.Context) ([]record.Record, visibleKey, error) {
	revision, err := e.store.Revision(ctx)
	if err != nil {
		return nil, visibleKey{}, fmt.Errorf("reading store revision: %w", err)
	}
	key := visibleKey{revision: revision, criteria: e.criteriaVersion}
	if e.visibleOK && e.visibleAt == key {
		return e.visible, key, nil
	}

	all, err := e.store.List(ctx)
	if err != nil {
		return nil, visibleKey{}, fmt.Errorf("listing projects: %w", err)
	}
	e.visible = filter.Apply(all, e.criteria)
	e.visibleAt = key
	e.visibleOK = true
	e.visibleStamp++
	e.recompute(viewVisible)
	telemetry.SetStoreRevision(revision)
	return e.visible, key, nil
}

func (e *Engine) metricsLocked(ctx context.Context) (summary.Metrics, error) {
	rows, _, err := e.visibleLocked(ctx)
	if err != nil {
		return summary.Metrics{}, err
	}
	if !e.metricsOK || e.metricsAt != e.visibleStamp {
		e.metrics = summary.Aggregate(rows)
		e.metricsAt = e.visibleStamp
		e.metricsOK = true
		e.recompute(viewMetrics)
	}
	return e.metrics, nil
}

func (e *Engine) formLocked(ctx context.Context) (record.FormState, error) {
	rows, _, err := e.visibleLocked(ctx)
	if err != nil {
		return record.FormState{}, err
	}
	key := formKey{visible: e.visibleStamp, selection: e.selectionVersion, today: record.Today(e.now())}
	if !e.formOK || e.formAt != key {
		e.form = selection.Bind(rows, e.selected, key.today)
		e.formAt = key
		e.formOK = true
		e.recompute(viewForm)
	}
	return e.form, nil
}

func (e *Engine) recompute(view string) {
	e.recomputes[view]++
	telemetry.RecordRecompute(view)
}

func (e *Engine) snapshotObservers() []Observer {
	out := make([]Observer, 0, len(e.observers))
	handles := slices.Sorted(maps.Keys(e.observers))
	for _, h := range handles {
		out = append(out, e.observers[h])
	}
	return out
}

func notify(observers []Observer, ev Event) {
	for _, fn := range observers {
		fn(ev)
	}
}

func cloneMetrics(m summary.Metrics) summary.Metrics {
	m.StatusDistribution = maps.Clone(m.StatusDistribution)
	m.ReworkByBU = maps.Clone(m.ReworkByBU)
	m.StatusSeries = slices.Clone(m.StatusSeries)
	m.ReworkSeries = slices.Clone(m.ReworkSeries)
	return m
}
