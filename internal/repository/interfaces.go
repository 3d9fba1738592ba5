package repository

import (
	"context"

	"github.com/rpggio/reworkdesk/internal/domain/activity"
	"github.com/rpggio/reworkdesk/internal/domain/record"
)

// Store is the authoritative collection of project records.
// Every successful Insert or Update bumps Revision by exactly one.
type Store interface {
	List(ctx context.Context) ([]record.Record, error)
	Get(ctx context.Context, id string) (*record.Record, error)
	Insert(ctx context.Context, rec record.Record) (*record.Record, error)
	Update(ctx context.Context, id string, fields record.Fields) (*record.Record, error)
	GenerateID(ctx context.Context) (string, error)
	Revision(ctx context.Context) (int64, error)
}

// ActivityRepository manages activity log persistence
type ActivityRepository interface {
	Log(ctx context.Context, entry *activity.Entry) error
	List(ctx context.Context, opts activity.ListOptions) ([]activity.Entry, error)
}

// MaxIDAttempts bounds how many candidate IDs GenerateID tries.
const MaxIDAttempts = 32

// GenerateUnusedID draws IDs from record.NewID until exists reports false.
func GenerateUnusedID(exists func(id string) (bool, error)) (string, error) {
	for i := 0; i < MaxIDAttempts; i++ {
		id := record.NewID()
		taken, err := exists(id)
		if err != nil {
			return "", err
		}
		if !taken {
			return id, nil
		}
	}
	return "", ErrIDSpaceExhausted
}
