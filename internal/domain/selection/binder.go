// Package selection resolves a selected visible row into form state.
package selection

import "github.com/rpggio/reworkdesk/internal/domain/record"

// Resolve returns the row at index, or false when index is nil or
// outside the current visible list.
func Resolve(visible []record.Record, index *int) (record.Record, bool) {
	if index == nil || *index < 0 || *index >= len(visible) {
		return record.Record{}, false
	}
	return visible[*index], true
}

// Bind projects the selected row into form state. A stale or missing
// selection yields the defaults for a new project dated today.
func Bind(visible []record.Record, index *int, today string) record.FormState {
	rec, ok := Resolve(visible, index)
	if !ok {
		return record.DefaultForm(today)
	}
	return record.FormFromRecord(rec)
}
