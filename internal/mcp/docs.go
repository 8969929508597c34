package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `portfolio tracks projects (name, owner, status, budget, spent, created date) and derives a dashboard from them.

Tools:
- list_projects: the raw collection.
- get_dashboard: query + status filter, then sort, then KPIs/charts over every match and one page of rows.
- create_project / delete_project: mutate the collection; call get_dashboard again afterwards.

Read portfolio://docs/dashboard for the exact filter, sort and paging rules.
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
		URI:         "portfolio://docs/dashboard",
		Name:        "docs_dashboard",
		Title:       "Dashboard rules",
		Description: "How get_dashboard filters, sorts, aggregates and pages projects.",
		Content: `# Dashboard rules

## State

| field  | values                                             | default   |
|--------|----------------------------------------------------|-----------|
| query  | any text                                           | empty     |
| status | ALL, ACTIVE, PAUSED, DONE                          | ALL       |
| sort   | createdAt, name, owner, budget, spent, status      | createdAt |
| dir    | asc, desc                                          | desc      |
| page   | 1-based                                            | 1         |

Changing query, status or sort returns to page 1.

## Filter

The query is trimmed and lower-cased. A project matches when the query is a
substring of its name, owner, id, status, budget, spent and createdAt joined
by single spaces. Numbers appear in shortest form (100, 12.5); amounts of
1e21 and above or below 1e-6 use exponent form (1e+21, 1e-7).

## Sort

budget and spent compare numerically, createdAt compares as text, name, owner
and status use locale-aware collation. Empty values sort first ascending and
last descending. Ties keep store order.

## KPIs and charts

Computed over every match, never just the current page.
burnRate is round(spent / budget * 100), or 0 when the budget total is 0.
statusBreakdown always lists ACTIVE, PAUSED, DONE. topBudgets holds at most
six projects with the largest budgets.

## Paging

totalPages is at least 1; a page past the end is clamped to the last page.

## Creating projects

create_project takes the record's own field names: name, owner, status,
budget, spent, createdAt. status defaults to ACTIVE and createdAt (YYYY-MM-DD)
to today.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
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
