// Package app assembles the store, domain services, dashboard engine and
// MCP server from configuration.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/reworkdesk/internal/config"
	"github.com/rpggio/reworkdesk/internal/dashboard"
	"github.com/rpggio/reworkdesk/internal/domain/activity"
	"github.com/rpggio/reworkdesk/internal/domain/record"
	"github.com/rpggio/reworkdesk/internal/domain/upsert"
	"github.com/rpggio/reworkdesk/internal/mcp"
	"github.com/rpggio/reworkdesk/internal/memory"
	"github.com/rpggio/reworkdesk/internal/repository"
	"github.com/rpggio/reworkdesk/internal/seed"
	"github.com/rpggio/reworkdesk/internal/sqlite"
	"github.com/rpggio/reworkdesk/internal/telemetry"
	"github.com/rpggio/reworkdesk/internal/transport"
)

// App holds the wired components of a running dashboard.
type App struct {
	Store     repository.Store
	Activity  *activity.Service
	Saver     *upsert.Service
	Engine    *dashboard.Engine
	MCPServer *sdkmcp.Server

	logger  *slog.Logger
	closers []io.Closer
}

// New builds an App from cfg and seeds the store when enabled.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	a := &App{logger: logger}

	var activityRepo repository.ActivityRepository
	switch cfg.Store.Backend {
	case config.BackendSQLite:
		db, err := sqlite.New(cfg.Store.DSN)
		if err != nil {
			return nil, fmt.Errorf("opening database: %w", err)
		}
		a.closers = append(a.closers, db)
		if err := db.RunMigrations(); err != nil {
			a.Close()
			return nil, fmt.Errorf("running migrations: %w", err)
		}
		a.Store = sqlite.NewProjectStore(db)
		activityRepo = sqlite.NewActivityRepository(db)
	default:
		a.Store = memory.NewStore()
		activityRepo = memory.NewActivityRepository(memory.DefaultActivityCapacity)
	}

	a.Activity = activity.NewService(activityRepo, logger)
	a.Saver = upsert.NewService(a.Store, a.Activity, cfg.Candidates, logger)
	a.Engine = dashboard.NewEngine(a.Store, a.Saver, logger)
	a.Engine.Subscribe(func(ev dashboard.Event) {
		logger.Debug("dashboard signal", "signal", ev.Signal, "revision", ev.Revision, "version", ev.Version)
	})

	if cfg.Seed.Enabled {
		if err := a.seed(ctx, cfg.Seed.Path); err != nil {
			a.Close()
			return nil, err
		}
	}

	a.MCPServer = mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Dashboard:  a.Engine,
			Projects:   a.Store,
			Activity:   a.Activity,
			Candidates: cfg.Candidates,
		},
		Logger: logger,
	})

	return a, nil
}

func (a *App) seed(ctx context.Context, path string) error {
	var (
		records []record.Record
		err     error
	)
	if path != "" {
		records, err = seed.LoadFile(path)
	} else {
		records, err = seed.Default()
	}
	if err != nil {
		return fmt.Errorf("loading seed projects: %w", err)
	}
	if _, err := seed.Apply(ctx, a.Store, records, a.logger); err != nil {
		return fmt.Errorf("seeding projects: %w", err)
	}
	return nil
}

// Handler returns the HTTP router serving MCP, health and metrics.
func (a *App) Handler() http.Handler {
	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(*http.Request) *sdkmcp.Server { return a.MCPServer },
		&sdkmcp.StreamableHTTPOptions{
			SessionTimeout: 30 * time.Minute,
		},
	)
	return transport.NewServer(transport.Options{
		MCP:     mcpHandler,
		Metrics: telemetry.Handler(),
		Health: func(ctx context.Context) error {
			_, err := a.Store.Revision(ctx)
			return err
		},
		Logger: a.logger,
	})
}

// Close releases the backing store.
func (a *App) Close() error {
	var first error
	for _, c := range a.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}
