package mocks

import (
	"context"

	"github.com/rpggio/reworkdesk/internal/domain/activity"
	"github.com/rpggio/reworkdesk/internal/domain/record"
	"github.com/stretchr/testify/mock"
)

// Store is a mock for repository.Store.
type Store struct {
	mock.Mock
}

func (m *Store) List(ctx context.Context) ([]record.Record, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]record.Record); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Store) Get(ctx context.Context, id string) (*record.Record, error) {
	args := m.Called(ctx, id)
	if rec, ok := args.Get(0).(*record.Record); ok {
		return rec, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Store) Insert(ctx context.Context, rec record.Record) (*record.Record, error) {
	args := m.Called(ctx, rec)
	if out, ok := args.Get(0).(*record.Record); ok {
		return out, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Store) Update(ctx context.Context, id string, fields record.Fields) (*record.Record, error) {
	args := m.Called(ctx, id, fields)
	if out, ok := args.Get(0).(*record.Record); ok {
		return out, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Store) GenerateID(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *Store) Revision(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// ActivityRepository is a mock for repository.ActivityRepository.
type ActivityRepository struct {
	mock.Mock
}

func (m *ActivityRepository) Log(ctx context.Context, entry *activity.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *ActivityRepository) List(ctx context.Context, opts activity.ListOptions) ([]activity.Entry, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]activity.Entry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}
