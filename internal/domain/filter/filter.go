package filter

import (
	"strings"

	"github.com/rpggio/reworkdesk/internal/domain/record"
	"github.com/samber/lo"
)

// Criteria narrows which records are visible. Empty fields are unset.
type Criteria struct {
	BU          string               `json:"bu,omitempty"`
	Status      record.ContentStatus `json:"status,omitempty"`
	ProjectType string               `json:"project_type,omitempty"`
	Search      string               `json:"search,omitempty"`
}

// IsZero reports whether no criterion is active.
func (c Criteria) IsZero() bool {
	return c == Criteria{}
}

// Matches reports whether rec satisfies every active criterion.
func (c Criteria) Matches(rec record.Record) bool {
	if c.BU != "" && rec.BU != c.BU {
		return false
	}
	if c.Status != "" && rec.ContentStatus != c.Status {
		return false
	}
	if c.ProjectType != "" && rec.ProjectType != c.ProjectType {
		return false
	}
	if c.Search != "" && !strings.Contains(strings.ToLower(rec.ProjectName), strings.ToLower(c.Search)) {
		return false
	}
	return true
}

// Apply returns the records matching criteria, in input order.
// The result never aliases the input slice.
func Apply(records []record.Record, criteria Criteria) []record.Record {
	if criteria.IsZero() {
		out := make([]record.Record, len(records))
		copy(out, records)
		return out
	}
	return lo.Filter(records, func(rec record.Record, _ int) bool {
		return criteria.Matches(rec)
	})
}

// Options are the distinct filter values present in a record set.
type Options struct {
	BusinessUnits []string               `json:"business_units"`
	Statuses      []record.ContentStatus `json:"statuses"`
	ProjectTypes  []string               `json:"project_types"`
}

// OptionsFrom collects distinct non-empty values in first-appearance order.
func OptionsFrom(records []record.Record) Options {
	bus := lo.Uniq(lo.FilterMap(records, func(rec record.Record, _ int) (string, bool) {
		return rec.BU, rec.BU != ""
	}))
	statuses := lo.Uniq(lo.FilterMap(records, func(rec record.Record, _ int) (record.ContentStatus, bool) {
		return rec.ContentStatus, rec.ContentStatus != ""
	}))
	types := lo.Uniq(lo.FilterMap(records, func(rec record.Record, _ int) (string, bool) {
		return rec.ProjectType, rec.ProjectType != ""
	}))
	return Options{BusinessUnits: bus, Statuses: statuses, ProjectTypes: types}
}
