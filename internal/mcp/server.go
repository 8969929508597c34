package mcp

import (
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	serverName    = "portfolio"
	serverVersion = "0.1.0"
)

// Config contains server configuration.
type Config struct {
	Services      ServiceFactory
	Resolver      TenantResolver
	AuthEnabled   bool
	DefaultTenant string
	TransportMode string // "stdio" or "http"
	Logger        *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    serverName,
		Version: serverVersion,
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerDocResources(server)

	defaultTenant := cfg.DefaultTenant
	if defaultTenant == "" {
		defaultTenant = "default"
	}

	// Stdio is local only and never authenticates.
	tenancy := noAuthMiddleware(defaultTenant)
	if cfg.TransportMode != "stdio" && cfg.AuthEnabled {
		tenancy = authMiddleware(cfg.Resolver)
	}
	// The first middleware is outermost, so traffic logs see the tenant.
	server.AddReceivingMiddleware(tenancy, trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, cfg.Services)

	return server
}
