// Package upsert validates form state and applies create-or-update saves.
package upsert

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rpggio/reworkdesk/internal/domain/activity"
	"github.com/rpggio/reworkdesk/internal/domain/record"
	"github.com/rpggio/reworkdesk/internal/repository"
	"github.com/rpggio/reworkdesk/internal/telemetry"
)

// Service handles save business logic against the store.
type Service struct {
	store      repository.Store
	activities *activity.Service
	candidates record.Candidates
	logger     *slog.Logger
	now        func() time.Time
}

// NewService creates a new upsert service. activities and logger may be nil.
func NewService(
	store repository.Store,
	activities *activity.Service,
	candidates record.Candidates,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		store:      store,
		activities: activities,
		candidates: candidates,
		logger:     logger,
		now:        time.Now,
	}
}

// Candidates returns the option lists saves are validated against.
func (s *Service) Candidates() record.Candidates {
	return s.candidates
}

// saveRun tracks the phase of one Save call.
type saveRun struct {
	phase Phase
}

func (r *saveRun) advance(to Phase) {
	if err := ValidatePhaseTransition(r.phase, to); err != nil {
		panic(fmt.Sprintf("upsert: %s -> %s: %v", r.phase, to, err))
	}
	r.phase = to
}

// Save validates the form and inserts or updates the record it describes.
// The returned Result is always populated. A non-nil error accompanies
// rejected and failed outcomes; the store is unmodified in both cases.
func (s *Service) Save(ctx context.Context, form record.FormState) (Result, error) {
	start := time.Now()
	run := &saveRun{phase: PhaseIdle}
	run.advance(PhaseValidating)

	fields := form.Normalize(record.Today(s.now()))
	if err := record.ValidateFields(fields, s.candidates); err != nil {
		run.advance(PhaseRejected)
		s.logger.Debug("save rejected", "project_id", form.ProjectID, "error", err)
		res := Result{
			Outcome: OutcomeRejected,
			Message: fmt.Sprintf("Save rejected: %v", err),
			Phase:   run.phase,
		}
		s.finish(ctx, res, form.ProjectID, activity.TypeSaveRejected, start)
		return res, err
	}

	var (
		saved   *record.Record
		outcome Outcome
		err     error
	)
	if form.ProjectID == "" {
		run.advance(PhaseInserting)
		outcome = OutcomeCreated
		saved, err = s.insert(ctx, fields)
	} else {
		run.advance(PhaseUpdating)
		outcome = OutcomeUpdated
		saved, err = s.store.Update(ctx, form.ProjectID, fields)
	}

	if err != nil {
		run.advance(PhaseFailed)
		res := Result{
			Outcome: OutcomeFailed,
			Message: s.failureMessage(form.ProjectID, err),
			Phase:   run.phase,
		}
		s.finish(ctx, res, form.ProjectID, activity.TypeSaveFailed, start)
		return res, err
	}

	run.advance(PhaseDone)
	revision, revErr := s.store.Revision(ctx)
	if revErr != nil {
		s.logger.Warn("reading store revision", "error", revErr)
	}

	res := Result{
		Outcome:  outcome,
		Record:   saved,
		Phase:    run.phase,
		Revision: revision,
	}
	entryType := activity.TypeProjectUpdated
	if outcome == OutcomeCreated {
		res.Message = fmt.Sprintf("Project %s created", saved.ProjectID)
		entryType = activity.TypeProjectCreated
	} else {
		res.Message = fmt.Sprintf("Project %s updated", saved.ProjectID)
	}
	s.logger.Info("project saved", "project_id", saved.ProjectID, "outcome", outcome, "revision", revision)
	s.finish(ctx, res, saved.ProjectID, entryType, start)
	return res, nil
}

func (s *Service) insert(ctx context.Context, fields record.Fields) (*record.Record, error) {
	id, err := s.store.GenerateID(ctx)
	if err != nil {
		return nil, fmt.Errorf("generating project id: %w", err)
	}
	saved, err := s.store.Insert(ctx, record.Record{ProjectID: id, Fields: fields})
	if errors.Is(err, repository.ErrDuplicateID) {
		return nil, fmt.Errorf("%w: %s: %w", ErrIDCollision, id, err)
	}
	return saved, err
}

func (s *Service) failureMessage(id string, err error) string {
	switch {
	case errors.Is(err, ErrIDCollision):
		s.logger.Error("save aborted", "error", err)
		return fmt.Sprintf("Save aborted: %v", err)
	case errors.Is(err, repository.ErrNotFound):
		s.logger.Warn("save target missing", "project_id", id)
		return fmt.Sprintf("Save failed for %s: %v", id, err)
	default:
		s.logger.Error("save failed", "project_id", id, "error", err)
		if id == "" {
			return fmt.Sprintf("Save failed: %v", err)
		}
		return fmt.Sprintf("Save failed for %s: %v", id, err)
	}
}

func (s *Service) finish(ctx context.Context, res Result, projectID string, entryType activity.Type, start time.Time) {
	telemetry.RecordSave(string(res.Outcome), time.Since(start))
	if s.activities == nil {
		return
	}
	err := s.activities.LogActivity(ctx, &activity.Entry{
		ProjectID: projectID,
		Type:      entryType,
		Summary:   res.Message,
		Revision:  res.Revision,
		CreatedAt: s.now(),
	})
	if err != nil {
		s.logger.Warn("logging save activity", "error", err)
	}
}
