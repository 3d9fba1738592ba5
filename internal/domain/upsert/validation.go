package upsert

// ValidatePhaseTransition validates a phase change within one save.
func ValidatePhaseTransition(from, to Phase) error {
	valid := false
	switch from {
	case PhaseIdle:
		valid = to == PhaseValidating
	case PhaseValidating:
		switch to {
		case PhaseRejected, PhaseInserting, PhaseUpdating:
			valid = true
		}
	case PhaseInserting, PhaseUpdating:
		valid = to == PhaseDone || to == PhaseFailed
	case PhaseRejected, PhaseDone, PhaseFailed:
		valid = to == PhaseIdle
	}

	if !valid {
		return ErrInvalidTransition
	}
	return nil
}

// Terminal reports whether a save has finished in p.
func (p Phase) Terminal() bool {
	return p == PhaseRejected || p == PhaseDone || p == PhaseFailed
}
