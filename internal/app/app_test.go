package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rpggio/reworkdesk/internal/config"
	"github.com/rpggio/reworkdesk/internal/domain/activity"
	"github.com/rpggio/reworkdesk/internal/domain/filter"
	"github.com/rpggio/reworkdesk/internal/domain/record"
	"github.com/stretchr/testify/require"
)

func TestNew_Backends(t *testing.T) {
	for _, backend := range []string{config.BackendMemory, config.BackendSQLite} {
		t.Run(backend, func(t *testing.T) {
			ctx := context.Background()
			cfg := config.Default()
			cfg.Store.Backend = backend

			a, err := New(ctx, cfg, nil)
			require.NoError(t, err)
			t.Cleanup(func() { _ = a.Close() })

			rows, rev, err := a.Engine.ListVisible(ctx, filter.Criteria{})
			require.NoError(t, err)
			require.Equal(t, int64(2), rev)
			require.Len(t, rows, 2)
			require.Equal(t, "PRJ-001", rows[0].ProjectID)

			bu := "Immunology"
			projectType := "Banner"
			res, err := a.Engine.Save(ctx, record.FormState{ProjectName: "Immuno Banner", BU: &bu, ProjectType: &projectType})
			require.NoError(t, err)
			require.True(t, res.OK())

			entries, err := a.Activity.GetRecentActivity(ctx, activityFor(res.Record.ProjectID))
			require.NoError(t, err)
			require.Len(t, entries, 1)
		})
	}
}

func TestNew_SeedDisabled(t *testing.T) {
	cfg := config.Default()
	cfg.Seed.Enabled = false

	a, err := New(context.Background(), cfg, nil)
	require.NoError(t, err)

	rows, err := a.Store.List(context.Background())
	require.NoError(t, err)
	require.Empty(t, rows)
}

func TestNew_MissingSeedFile(t *testing.T) {
	cfg := config.Default()
	cfg.Seed.Path = "/nonexistent/seed.yaml"

	_, err := New(context.Background(), cfg, nil)
	require.Error(t, err)
}

func TestHandler_Health(t *testing.T) {
	a, err := New(context.Background(), config.Default(), nil)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "reworkdesk_")
}

func activityFor(projectID string) activity.ListOptions {
	return activity.ListOptions{ProjectID: projectID}
}
