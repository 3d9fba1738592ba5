package upsert

import "github.com/rpggio/reworkdesk/internal/domain/record"

// Phase is a step of a single save invocation.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseValidating Phase = "validating"
	PhaseRejected   Phase = "rejected"
	PhaseInserting  Phase = "inserting"
	PhaseUpdating   Phase = "updating"
	PhaseDone       Phase = "done"
	PhaseFailed     Phase = "failed"
)

// Outcome summarizes how a save ended.
type Outcome string

const (
	OutcomeCreated  Outcome = "created"
	OutcomeUpdated  Outcome = "updated"
	OutcomeRejected Outcome = "rejected"
	OutcomeFailed   Outcome = "failed"
)

// Result is the user-facing report of a save.
type Result struct {
	Outcome  Outcome        `json:"outcome"`
	Message  string         `json:"message"`
	Record   *record.Record `json:"record,omitempty"`
	Phase    Phase          `json:"phase"`
	Revision int64          `json:"revision"`
}

// OK reports whether the store was mutated.
func (r Result) OK() bool {
	return r.Outcome == OutcomeCreated || r.Outcome == OutcomeUpdated
}
