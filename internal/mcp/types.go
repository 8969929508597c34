package mcp

import (
	"github.com/rpggio/portfolio/internal/dashboard"
	"github.com/rpggio/portfolio/internal/domain/project"
)

// ListProjectsInput takes no arguments.
type ListProjectsInput struct{}

// ListProjectsResult is every project of the tenant in store order.
type ListProjectsResult struct {
	Projects []project.Project `json:"projects" jsonschema:"all projects in store order"`
}

// CreateProjectInput is a new project without its ID.
type CreateProjectInput struct {
	Name      string  `json:"name" jsonschema:"project name"`
	Owner     string  `json:"owner" jsonschema:"responsible owner"`
	Status    string  `json:"status,omitempty" jsonschema:"ACTIVE, PAUSED or DONE (default ACTIVE)"`
	Budget    float64 `json:"budget" jsonschema:"non-negative budget"`
	Spent     float64 `json:"spent,omitempty" jsonschema:"non-negative amount spent"`
	CreatedAt string  `json:"createdAt,omitempty" jsonschema:"creation date as YYYY-MM-DD (default today)"`
}

// CreateProjectResult is the stored project.
type CreateProjectResult struct {
	Project project.Project `json:"project" jsonschema:"the created project with its assigned id"`
}

// DeleteProjectInput names the project to delete.
type DeleteProjectInput struct {
	ID string `json:"id" jsonschema:"project id"`
}

// DeleteProjectResult confirms a deletion.
type DeleteProjectResult struct {
	ID      string `json:"id" jsonschema:"deleted project id"`
	Deleted bool   `json:"deleted" jsonschema:"whether the project was removed"`
}

// GetDashboardInput is the dashboard state. Empty fields take their defaults.
type GetDashboardInput struct {
	Query  string `json:"query,omitempty" jsonschema:"case-insensitive search text"`
	Status string `json:"status,omitempty" jsonschema:"ALL, ACTIVE, PAUSED or DONE"`
	Sort   string `json:"sort,omitempty" jsonschema:"createdAt, name, owner, budget, spent or status"`
	Dir    string `json:"dir,omitempty" jsonschema:"asc or desc"`
	Page   int    `json:"page,omitempty" jsonschema:"1-based page index, clamped to the last page"`
}

// GetDashboardResult is the derived dashboard view.
type GetDashboardResult struct {
	View dashboard.View `json:"view" jsonschema:"KPIs, charts and the requested page"`
}
