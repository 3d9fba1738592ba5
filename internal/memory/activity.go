package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/rpggio/reworkdesk/internal/domain/activity"
	"github.com/rpggio/reworkdesk/internal/repository"
)

var _ repository.ActivityRepository = (*ActivityRepository)(nil)

// DefaultActivityCapacity bounds how many entries the log retains.
const DefaultActivityCapacity = 1000

// ActivityRepository keeps the most recent activity entries in memory.
type ActivityRepository struct {
	mu       sync.Mutex
	entries  []activity.Entry
	nextID   int64
	capacity int
}

// NewActivityRepository creates a log retaining at most capacity entries.
func NewActivityRepository(capacity int) *ActivityRepository {
	if capacity <= 0 {
		capacity = DefaultActivityCapacity
	}
	return &ActivityRepository{capacity: capacity}
}

// Log appends an entry, evicting the oldest when full.
func (r *ActivityRepository) Log(_ context.Context, entry *activity.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	entry.ID = r.nextID
	r.entries = append(r.entries, *entry)
	if over := len(r.entries) - r.capacity; over > 0 {
		r.entries = slices.Delete(r.entries, 0, over)
	}
	return nil
}

// List returns matching entries newest first.
func (r *ActivityRepository) List(_ context.Context, opts activity.ListOptions) ([]activity.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []activity.Entry{}
	for i := len(r.entries) - 1; i >= 0; i-- {
		e := r.entries[i]
		if opts.ProjectID != "" && e.ProjectID != opts.ProjectID {
			continue
		}
		if len(opts.Types) > 0 && !slices.Contains(opts.Types, e.Type) {
			continue
		}
		out = append(out, e)
		if opts.Limit > 0 && len(out) == opts.Limit {
			break
		}
	}
	return out, nil
}
