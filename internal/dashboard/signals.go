package dashboard

// Signal names an upstream input of the dependency graph.
type Signal string

const (
	SignalStore     Signal = "store"
	SignalCriteria  Signal = "criteria"
	SignalSelection Signal = "selection"
)

// Event is delivered to observers after a signal changes.
type Event struct {
	Signal   Signal `json:"signal"`
	Revision int64  `json:"revision"`
	Version  uint64 `json:"version"`
}

// Observer receives change events. It runs after the engine lock is
// released and may call back into the engine.
type Observer func(Event)

// derivation names used for recompute accounting.
const (
	viewVisible = "visible"
	viewMetrics = "metrics"
	viewForm    = "form"
	viewOptions = "filter_options"
)
