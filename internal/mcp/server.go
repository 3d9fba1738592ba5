package mcp

import (
	"context"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/reworkdesk/internal/dashboard"
	"github.com/rpggio/reworkdesk/internal/domain/activity"
	"github.com/rpggio/reworkdesk/internal/domain/filter"
	"github.com/rpggio/reworkdesk/internal/domain/record"
	"github.com/rpggio/reworkdesk/internal/domain/summary"
	"github.com/rpggio/reworkdesk/internal/domain/upsert"
)

// Dashboard defines the dashboard operations needed by MCP.
type Dashboard interface {
	ListVisible(ctx context.Context, criteria filter.Criteria) ([]record.Record, int64, error)
	Metrics(ctx context.Context) (summary.Metrics, error)
	Select(ctx context.Context, index *int) (record.FormState, error)
	Selection() *int
	Save(ctx context.Context, form record.FormState) (upsert.Result, error)
	Snapshot(ctx context.Context) (dashboard.Snapshot, error)
	FilterOptions(ctx context.Context) (filter.Options, error)
}

// ProjectReader reads single projects from the store.
type ProjectReader interface {
	Get(ctx context.Context, id string) (*record.Record, error)
}

// ActivityService defines activity operations needed by MCP.
type ActivityService interface {
	GetRecentActivity(ctx context.Context, opts activity.ListOptions) ([]activity.Entry, error)
}

// Services contains all domain services needed by MCP.
type Services struct {
	Dashboard  Dashboard
	Projects   ProjectReader
	Activity   ActivityService
	Candidates record.Candidates
}

// Config contains server configuration.
type Config struct {
	Services Services
	Version  string
	Logger   *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	version := cfg.Version
	if version == "" {
		version = "0.1.0"
	}
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "reworkdesk",
		Version: version,
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerDocResources(server)

	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, cfg.Services, cfg.Logger)

	return server
}
