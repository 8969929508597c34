package mcp

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/portfolio/internal/dashboard"
	"github.com/rpggio/portfolio/internal/domain/project"
)

// ServiceFactory builds the dashboard service for a tenant.
type ServiceFactory func(tenantID string) *dashboard.Service

func registerTools(server *sdkmcp.Server, services ServiceFactory) {
	sdkmcp.AddTool(server, ListProjectsTool(), ListProjectsHandler(services))
	sdkmcp.AddTool(server, CreateProjectTool(), CreateProjectHandler(services))
	sdkmcp.AddTool(server, DeleteProjectTool(), DeleteProjectHandler(services))
	sdkmcp.AddTool(server, GetDashboardTool(), GetDashboardHandler(services))
}

func ListProjectsTool() *sdkmcp.Tool {
	return &sdkmcp.Tool{
		Name:        "list_projects",
		Description: "List all projects for the current tenant",
	}
}

func CreateProjectTool() *sdkmcp.Tool {
	return &sdkmcp.Tool{
		Name:        "create_project",
		Description: "Create a project; the store assigns its id",
	}
}

func DeleteProjectTool() *sdkmcp.Tool {
	return &sdkmcp.Tool{
		Name:        "delete_project",
		Description: "Delete a project by id",
	}
}

func GetDashboardTool() *sdkmcp.Tool {
	return &sdkmcp.Tool{
		Name:        "get_dashboard",
		Description: "Filter, sort and page the projects and return KPIs and chart data for the matching set",
	}
}

// serviceFor resolves the tenant placed on ctx by the auth middleware.
func serviceFor(ctx context.Context, services ServiceFactory) (*dashboard.Service, error) {
	tenantID := getTenantID(ctx)
	if tenantID == "" {
		return nil, fmt.Errorf("unauthorized: missing tenant")
	}
	return services(tenantID), nil
}

func ListProjectsHandler(services ServiceFactory) sdkmcp.ToolHandlerFor[ListProjectsInput, ListProjectsResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ ListProjectsInput) (*sdkmcp.CallToolResult, ListProjectsResult, error) {
		svc, err := serviceFor(ctx, services)
		if err != nil {
			return nil, ListProjectsResult{}, err
		}
		projects, err := svc.List(ctx)
		if err != nil {
			return nil, ListProjectsResult{}, mapError(err)
		}
		if projects == nil {
			projects = []project.Project{}
		}
		return nil, ListProjectsResult{Projects: projects}, nil
	}
}

func CreateProjectHandler(services ServiceFactory) sdkmcp.ToolHandlerFor[CreateProjectInput, CreateProjectResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, input CreateProjectInput) (*sdkmcp.CallToolResult, CreateProjectResult, error) {
		svc, err := serviceFor(ctx, services)
		if err != nil {
			return nil, CreateProjectResult{}, err
		}
		proj, err := svc.Create(ctx, project.CreateRequest{
			Name:      input.Name,
			Owner:     input.Owner,
			Status:    project.Status(input.Status),
			Budget:    input.Budget,
			Spent:     input.Spent,
			CreatedAt: input.CreatedAt,
		})
		if err != nil {
			return nil, CreateProjectResult{}, mapError(err)
		}
		return nil, CreateProjectResult{Project: *proj}, nil
	}
}

func DeleteProjectHandler(services ServiceFactory) sdkmcp.ToolHandlerFor[DeleteProjectInput, DeleteProjectResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, input DeleteProjectInput) (*sdkmcp.CallToolResult, DeleteProjectResult, error) {
		svc, err := serviceFor(ctx, services)
		if err != nil {
			return nil, DeleteProjectResult{}, err
		}
		if input.ID == "" {
			return nil, DeleteProjectResult{}, mapError(fmt.Errorf("%w: id is required", project.ErrInvalidInput))
		}
		if err := svc.Delete(ctx, input.ID); err != nil {
			return nil, DeleteProjectResult{}, mapError(err)
		}
		return nil, DeleteProjectResult{ID: input.ID, Deleted: true}, nil
	}
}

func GetDashboardHandler(services ServiceFactory) sdkmcp.ToolHandlerFor[GetDashboardInput, GetDashboardResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, input GetDashboardInput) (*sdkmcp.CallToolResult, GetDashboardResult, error) {
		svc, err := serviceFor(ctx, services)
		if err != nil {
			return nil, GetDashboardResult{}, err
		}
		state, err := dashboard.ParseState(input.values())
		if err != nil {
			return nil, GetDashboardResult{}, mapError(err)
		}
		return nil, GetDashboardResult{View: svc.View(ctx, state)}, nil
	}
}

func (in GetDashboardInput) values() url.Values {
	values := url.Values{}
	values.Set("q", in.Query)
	values.Set("status", in.Status)
	values.Set("sort", in.Sort)
	values.Set("dir", in.Dir)
	if in.Page != 0 {
		values.Set("page", strconv.Itoa(in.Page))
	}
	return values
}
