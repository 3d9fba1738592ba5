package mcp

import (
	"errors"
	"fmt"
	"testing"

	"github.com/rpggio/reworkdesk/internal/domain/record"
	"github.com/rpggio/reworkdesk/internal/domain/upsert"
	"github.com/rpggio/reworkdesk/internal/repository"
	"github.com/stretchr/testify/require"
)

func TestMapError(t *testing.T) {
	require.Nil(t, MapError(nil))
	require.Nil(t, MapError(errors.New("boom")))

	require.Equal(t, "PROJECT_NOT_FOUND", MapError(fmt.Errorf("get: %w", repository.ErrNotFound)).Code)
	require.Equal(t, "ID_COLLISION", MapError(fmt.Errorf("%w: %w", upsert.ErrIDCollision, repository.ErrDuplicateID)).Code)
	require.Equal(t, "INVALID_INPUT", MapError(&record.ValidationError{Missing: []string{"bu"}}).Code)

	err := toolError(repository.ErrNotFound)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	require.Contains(t, apiErr.Error(), "list_projects")
}

func TestFormRoundTrip(t *testing.T) {
	status := record.StatusCompleted
	gd := 2.5
	bu := "Oncology"
	state := record.FormState{ProjectID: "PRJ-001", BU: &bu, GDRework: &gd, ContentStatus: &status}

	require.Equal(t, state, toForm(state).state())
	require.Equal(t, record.FormState{}, Form{}.state())
}
