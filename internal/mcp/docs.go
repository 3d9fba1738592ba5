package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `reworkdesk manages project records and their rework metrics as a reactive dashboard.

Core concepts:
- Project: one record (project_id, name, business unit, type, media, assigned date, designer, QC reviewer, content status, GD/POC rework %, comments).
- Revision: a counter bumped by every successful save. Every derived view reports the revision it was computed from.
- Visible rows: the projects matching the active filter, in store order.
- Form: the edit form, bound to the selected visible row or to empty defaults for a new project.

Default workflow:
1) get_dashboard for the whole picture, or get_filter_options for valid values.
2) list_projects with optional bu / status / project_type / search to narrow the visible rows. get_summary reports metrics over them.
3) select_project with a row index to load its form; omit the index to start a new project.
4) save_project with the edited form. An empty project_id creates, otherwise the project is updated by id.
   - outcome "rejected": required fields are missing or invalid; nothing changed.
   - outcome "failed": the store refused the save (for example an unknown project_id); nothing changed.
5) get_recent_activity to review save history.

Docs:
- reworkdesk://docs/index
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "reworkdesk://docs/index",
		Name:        "docs_index",
		Title:       "reworkdesk docs index",
		Description: "Field reference, save rules and metric definitions.",
		Content: `# reworkdesk: Agent Docs

## Fields

| Field | Required | Notes |
|---|---|---|
| project_id | generated | Never edited. Empty on the form means "create". |
| project_name | yes | |
| bu | yes | Business unit from the configured candidates. |
| project_type | yes | From the configured candidates. |
| classification_media | no | From the configured candidates. |
| assigned_date | no | YYYY-MM-DD, defaults to today. |
| designer, qc_reviewer | no | Free text. |
| content_status | no | Not Started, In Progress or Completed. |
| gd_rework, poc_rework | no | Non-negative percentages, default 0. |
| comments | no | Free text. |

## Filtering

Filters compose with AND. bu, status and project_type match exactly. search is a
case-insensitive literal substring of project_name; characters like ` + "`*`" + ` or ` + "`(`" + ` have no
special meaning.

## Selection

select_project takes an index into the current visible rows. When the filter
shrinks the list under a selection, the stale index binds the empty form rather
than failing.

## Metrics

- total, completed, in_progress: counts over the visible rows.
- completion_rate: completed / total, 0 when there are no rows.
- avg_gd_rework: mean GD rework rounded to one decimal.
- status_distribution: count per status present.
- rework_by_bu: mean GD and POC rework per business unit present.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		doc := doc

		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
