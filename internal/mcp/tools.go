package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/reworkdesk/internal/domain/activity"
	"github.com/rpggio/reworkdesk/internal/domain/record"
)

func registerTools(server *sdkmcp.Server, svc Services, logger *slog.Logger) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_projects",
		Description: "Set the active filter and list the visible projects in store order. Omitted criteria are unset.",
	}, listProjectsHandler(svc.Dashboard))

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_summary",
		Description: "Summary metrics and chart series over the currently visible projects",
	}, getSummaryHandler(svc.Dashboard))

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "select_project",
		Description: "Select a visible row by index and return the bound form. Omit index, or pass a stale one, to reset the form.",
	}, selectProjectHandler(svc.Dashboard))

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "save_project",
		Description: "Create (empty project_id) or update a project from form state. Rejections and failures are reported in outcome and message.",
	}, saveProjectHandler(svc.Dashboard, logger))

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_project",
		Description: "Get a single project by id",
	}, getProjectHandler(svc.Projects))

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_filter_options",
		Description: "Candidate values for the form dropdowns and the distinct filter values present in the store",
	}, getFilterOptionsHandler(svc.Dashboard, svc.Candidates))

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_dashboard",
		Description: "The whole dashboard at one revision: criteria, visible rows, metrics, selection and form",
	}, getDashboardHandler(svc.Dashboard))

	if svc.Activity != nil {
		sdkmcp.AddTool(server, &sdkmcp.Tool{
			Name:        "get_recent_activity",
			Description: "Recent save activity, newest first",
		}, getRecentActivityHandler(svc.Activity))
	}
}

func listProjectsHandler(d Dashboard) sdkmcp.ToolHandlerFor[Criteria, ListProjectsResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, input Criteria) (*sdkmcp.CallToolResult, ListProjectsResult, error) {
		rows, revision, err := d.ListVisible(ctx, input.criteria())
		if err != nil {
			return nil, ListProjectsResult{}, fmt.Errorf("list projects: %w", err)
		}
		return nil, ListProjectsResult{
			Projects: toProjects(rows),
			Criteria: input,
			Revision: revision,
		}, nil
	}
}

func getSummaryHandler(d Dashboard) sdkmcp.ToolHandlerFor[GetSummaryParams, SummaryResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ GetSummaryParams) (*sdkmcp.CallToolResult, SummaryResult, error) {
		snap, err := d.Snapshot(ctx)
		if err != nil {
			return nil, SummaryResult{}, fmt.Errorf("get summary: %w", err)
		}
		return nil, SummaryResult{Summary: toSummary(snap.Metrics), Revision: snap.Revision}, nil
	}
}

func selectProjectHandler(d Dashboard) sdkmcp.ToolHandlerFor[SelectProjectParams, SelectProjectResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, input SelectProjectParams) (*sdkmcp.CallToolResult, SelectProjectResult, error) {
		form, err := d.Select(ctx, input.Index)
		if err != nil {
			return nil, SelectProjectResult{}, fmt.Errorf("select project: %w", err)
		}
		return nil, SelectProjectResult{Selected: d.Selection(), Form: toForm(form)}, nil
	}
}

func saveProjectHandler(d Dashboard, logger *slog.Logger) sdkmcp.ToolHandlerFor[SaveProjectParams, SaveProjectResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, input SaveProjectParams) (*sdkmcp.CallToolResult, SaveProjectResult, error) {
		res, err := d.Save(ctx, input.Form.state())
		if res.Outcome == "" {
			return nil, SaveProjectResult{}, toolError(err)
		}
		if err != nil {
			logger.Debug("save_project", "outcome", res.Outcome, "error", err)
		}
		return nil, toSaveResult(res), nil
	}
}

func getProjectHandler(projects ProjectReader) sdkmcp.ToolHandlerFor[GetProjectParams, GetProjectResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, input GetProjectParams) (*sdkmcp.CallToolResult, GetProjectResult, error) {
		if input.ProjectID == "" {
			return nil, GetProjectResult{}, toolError(record.ErrInvalidInput)
		}
		rec, err := projects.Get(ctx, input.ProjectID)
		if err != nil {
			return nil, GetProjectResult{}, toolError(err)
		}
		return nil, GetProjectResult{Project: toProject(*rec)}, nil
	}
}

func getFilterOptionsHandler(d Dashboard, candidates record.Candidates) sdkmcp.ToolHandlerFor[GetFilterOptionsParams, FilterOptionsResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ GetFilterOptionsParams) (*sdkmcp.CallToolResult, FilterOptionsResult, error) {
		present, err := d.FilterOptions(ctx)
		if err != nil {
			return nil, FilterOptionsResult{}, fmt.Errorf("get filter options: %w", err)
		}
		return nil, FilterOptionsResult{
			BusinessUnits:        nonNil(candidates.BusinessUnits),
			ProjectTypes:         nonNil(candidates.ProjectTypes),
			ClassificationMedia:  nonNil(candidates.ClassificationMedia),
			Statuses:             statusStrings(record.Statuses),
			PresentBusinessUnits: nonNil(present.BusinessUnits),
			PresentStatuses:      statusStrings(present.Statuses),
			PresentProjectTypes:  nonNil(present.ProjectTypes),
		}, nil
	}
}

func getDashboardHandler(d Dashboard) sdkmcp.ToolHandlerFor[GetDashboardParams, DashboardResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ GetDashboardParams) (*sdkmcp.CallToolResult, DashboardResult, error) {
		snap, err := d.Snapshot(ctx)
		if err != nil {
			return nil, DashboardResult{}, fmt.Errorf("get dashboard: %w", err)
		}
		return nil, toDashboard(snap), nil
	}
}

func getRecentActivityHandler(svc ActivityService) sdkmcp.ToolHandlerFor[GetRecentActivityParams, RecentActivityResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, input GetRecentActivityParams) (*sdkmcp.CallToolResult, RecentActivityResult, error) {
		if input.Limit < 0 {
			return nil, RecentActivityResult{}, toolError(fmt.Errorf("%w: negative limit", activity.ErrInvalidInput))
		}
		entries, err := svc.GetRecentActivity(ctx, activity.ListOptions{
			ProjectID: input.ProjectID,
			Limit:     input.Limit,
		})
		if err != nil {
			return nil, RecentActivityResult{}, toolError(err)
		}
		return nil, RecentActivityResult{Entries: toActivityEntries(entries)}, nil
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return slices.Clone(values)
}
