package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/portfolio/internal/config"
	"github.com/rpggio/portfolio/internal/dashboard"
	"github.com/rpggio/portfolio/internal/domain/activity"
	"github.com/rpggio/portfolio/internal/domain/project"
	"github.com/rpggio/portfolio/internal/mcp"
	"github.com/rpggio/portfolio/internal/recordstore"
	"github.com/rpggio/portfolio/internal/sqlite"
	"github.com/rpggio/portfolio/internal/transport"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	// Use stderr for logs in stdio mode to keep stdout clean for JSON-RPC.
	logWriter := io.Writer(os.Stdout)
	if cfg.Transport.Mode == "stdio" {
		logWriter = os.Stderr
	}
	if cfg.Log.Path != "" {
		fileWriter, err := newLogFileWriter(cfg.Log.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log file error: %v\n", err)
		} else {
			defer fileWriter.Close()
			logWriter = fileWriter
		}
	}
	logger := slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	if err := ensureDBDir(cfg.DB.Path); err != nil {
		logger.Error("failed to prepare database path", "error", err)
		os.Exit(1)
	}

	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	validator := project.Validator{ClampSpent: cfg.Validation.ClampSpent}
	activitySvc := activity.NewService(sqlite.NewActivityRepository(db), logger)
	stores := newStoreProvider(cfg, db, validator, activitySvc, logger)
	keys := sqlite.NewAPIKeyRepository(db)

	mcpServer := mcp.NewServer(mcp.Config{
		Services: func(tenantID string) *dashboard.Service {
			return dashboard.NewService(stores(tenantID), validator, cfg.Dashboard.PageSize, logger)
		},
		Resolver:      keys,
		AuthEnabled:   cfg.Auth.Enabled,
		DefaultTenant: cfg.Auth.DefaultTenant,
		TransportMode: cfg.Transport.Mode,
		Logger:        logger,
	})

	if cfg.Transport.Mode == "stdio" {
		runStdioMode(logger, mcpServer)
		return
	}

	auth := transport.StaticTenant(cfg.Auth.DefaultTenant)
	if cfg.Auth.Enabled {
		auth = transport.AuthMiddleware(keys)
	}
	router := transport.NewServer(transport.Options{
		Stores:    stores,
		Validator: validator,
		PageSize:  cfg.Dashboard.PageSize,
		Auth:      auth,
		Activity:  activitySvc,
		MCP: sdkmcp.NewStreamableHTTPHandler(
			func(*http.Request) *sdkmcp.Server { return mcpServer },
			&sdkmcp.StreamableHTTPOptions{
				Stateless:      false,
				SessionTimeout: 30 * time.Minute,
			},
		),
		Metrics: transport.NewMetrics(),
		Logger:  logger,
	})
	runHTTPMode(logger, router, cfg.Server.Host, cfg.Server.Port)
}

// newStoreProvider selects the record store: a remote REST store when
// source.url is set, otherwise the local SQLite database. The remote store
// has no notion of tenants and serves every tenant the same collection.
// Mutations are only recorded in the activity log for the local store.
func newStoreProvider(cfg config.Config, db *sqlite.DB, validator project.Validator, log *activity.Service, logger *slog.Logger) transport.StoreProvider {
	if cfg.Source.URL != "" {
		logger.Info("using remote record store", "url", cfg.Source.URL)
		client := recordstore.New(cfg.Source.URL, recordstore.Options{
			Token:   cfg.Source.Token,
			Timeout: cfg.Source.Timeout,
		})
		return func(string) dashboard.Store { return client }
	}

	projectSvc := project.NewService(sqlite.NewProjectRepository(db), validator, logger).WithActivity(log)
	return func(tenantID string) dashboard.Store { return projectSvc.ForTenant(tenantID) }
}

func runStdioMode(logger *slog.Logger, mcpServer *sdkmcp.Server) {
	logger.Info("starting stdio transport", "auth", "disabled")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Run blocks until stdin closes or context is canceled
	if err := mcpServer.Run(ctx, &sdkmcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("stdio server error", "error", err)
		os.Exit(1)
	}
}

func runHTTPMode(logger *slog.Logger, handler http.Handler, host string, port int) {
	addr := fmt.Sprintf("%s:%d", host, port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
		}
	}()

	waitForShutdown(logger, httpServer)
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func waitForShutdown(logger *slog.Logger, server *http.Server) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
