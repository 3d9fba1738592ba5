// Package memory provides the volatile, process-lifetime implementation of
// the project store and activity log.
package memory

import (
	"context"
	"sync"

	"github.com/rpggio/reworkdesk/internal/domain/record"
	"github.com/rpggio/reworkdesk/internal/repository"
)

var _ repository.Store = (*Store)(nil)

// Store keeps project records in insertion order behind a single lock.
// Reads return copies; callers never alias stored rows.
type Store struct {
	mu       sync.RWMutex
	records  []record.Record
	index    map[string]int
	revision int64
}

// NewStore creates an empty store at revision 0.
func NewStore() *Store {
	return &Store{index: make(map[string]int)}
}

// List returns every record in insertion order.
func (s *Store) List(_ context.Context) ([]record.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]record.Record, len(s.records))
	copy(out, s.records)
	return out, nil
}

// Get returns the record with the given ID.
func (s *Store) Get(_ context.Context, id string) (*record.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.index[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	rec := s.records[i]
	return &rec, nil
}

// Insert appends rec. The ID must be set and unused.
func (s *Store) Insert(_ context.Context, rec record.Record) (*record.Record, error) {
	if rec.ProjectID == "" {
		return nil, repository.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.index[rec.ProjectID]; exists {
		return nil, repository.ErrDuplicateID
	}
	s.index[rec.ProjectID] = len(s.records)
	s.records = append(s.records, rec)
	s.revision++
	return &rec, nil
}

// Update replaces every mutable field of the record with the given ID.
func (s *Store) Update(_ context.Context, id string, fields record.Fields) (*record.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	s.records[i].Fields = fields
	s.revision++
	rec := s.records[i]
	return &rec, nil
}

// GenerateID returns an ID not used by any stored record.
func (s *Store) GenerateID(_ context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return repository.GenerateUnusedID(func(id string) (bool, error) {
		_, taken := s.index[id]
		return taken, nil
	})
}

// Revision returns the number of successful mutations so far.
func (s *Store) Revision(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision, nil
}
