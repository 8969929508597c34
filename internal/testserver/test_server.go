package testserver

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/portfolio/internal/dashboard"
	"github.com/rpggio/portfolio/internal/domain/activity"
	"github.com/rpggio/portfolio/internal/domain/project"
	"github.com/rpggio/portfolio/internal/mcp"
	"github.com/rpggio/portfolio/internal/sqlite"
	"github.com/rpggio/portfolio/internal/transport"
	"github.com/stretchr/testify/require"
)

// PageSize is the dashboard page size used by test servers.
const PageSize = 5

// TestServer is a full HTTP stack over an in-memory SQLite database with
// bearer auth enabled.
type TestServer struct {
	Server   *httptest.Server
	DB       *sqlite.DB
	Projects *project.Service
	Activity *activity.Service
	Keys     *sqlite.APIKeyRepository
	Token    string
	TenantID string
}

func New(t *testing.T, token, tenantID string) *TestServer {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	validator := project.Validator{}
	activitySvc := activity.NewService(sqlite.NewActivityRepository(db), nil)
	projectSvc := project.NewService(sqlite.NewProjectRepository(db), validator, nil).WithActivity(activitySvc)
	keys := sqlite.NewAPIKeyRepository(db)

	stores := func(tenantID string) dashboard.Store { return projectSvc.ForTenant(tenantID) }
	mcpServer := mcp.NewServer(mcp.Config{
		Services: func(tenantID string) *dashboard.Service {
			return dashboard.NewService(stores(tenantID), validator, PageSize, nil)
		},
		Resolver:      keys,
		AuthEnabled:   true,
		TransportMode: "http",
	})
	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(*http.Request) *sdkmcp.Server { return mcpServer },
		nil,
	)

	server := httptest.NewServer(transport.NewServer(transport.Options{
		Stores:    stores,
		Validator: validator,
		PageSize:  PageSize,
		Auth:      transport.AuthMiddleware(keys),
		Activity:  activitySvc,
		MCP:       mcpHandler,
	}))

	ts := &TestServer{
		Server:   server,
		DB:       db,
		Projects: projectSvc,
		Activity: activitySvc,
		Keys:     keys,
		Token:    token,
		TenantID: tenantID,
	}

	require.NoError(t, ts.AddAPIKey(token, tenantID))

	t.Cleanup(func() {
		server.Close()
		_ = db.Close()
	})

	return ts
}

func (ts *TestServer) AddAPIKey(token, tenantID string) error {
	return ts.Keys.Add(context.Background(), token, tenantID, "test")
}

// Seed stores projects directly for the server's tenant.
func (ts *TestServer) Seed(t *testing.T, reqs ...project.CreateRequest) []project.Project {
	t.Helper()
	out := make([]project.Project, 0, len(reqs))
	for _, req := range reqs {
		proj, err := ts.Projects.Create(context.Background(), ts.TenantID, req)
		require.NoError(t, err)
		out = append(out, *proj)
	}
	return out
}
