package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rpggio/portfolio/internal/dashboard"
	"github.com/rpggio/portfolio/internal/domain/activity"
	"github.com/rpggio/portfolio/internal/domain/project"
)

// ActivityReader serves the tenant's mutation log.
type ActivityReader interface {
	GetRecentActivity(ctx context.Context, tenantID string, opts activity.ListOptions) ([]activity.Entry, error)
}

// StoreProvider returns the record store serving a tenant.
type StoreProvider func(tenantID string) dashboard.Store

// Options configures the HTTP server.
type Options struct {
	Stores    StoreProvider
	Validator project.Validator
	PageSize  int
	// Auth resolves the request tenant. Nil means every request is rejected
	// as unauthenticated, so callers pass StaticTenant when auth is off.
	Auth func(http.Handler) http.Handler
	// MCP, when set, is mounted at /mcp. It authenticates on its own.
	MCP http.Handler
	// Activity, when set, enables GET /activity.
	Activity ActivityReader
	Metrics  *Metrics
	Logger   *slog.Logger
}

// Server wires HTTP handlers.
type Server struct {
	opts Options
}

// NewServer creates an HTTP server router with middleware.
func NewServer(opts Options) *chi.Mux {
	if opts.Metrics == nil {
		opts.Metrics = NewMetrics()
	}
	srv := &Server{opts: opts}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(opts.Metrics.Middleware)

	r.Get("/health", srv.handleHealth)
	r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	if opts.MCP != nil {
		r.Handle("/mcp", opts.MCP)
	}

	r.Group(func(r chi.Router) {
		r.Use(srv.requireTenant)
		r.Get("/projects", srv.handleListProjects)
		r.Post("/projects", srv.handleCreateProject)
		r.Get("/projects/{id}", srv.handleGetProject)
		r.Delete("/projects/{id}", srv.handleDeleteProject)
		r.Get("/dashboard", srv.handleDashboard)
		if opts.Activity != nil {
			r.Get("/activity", srv.handleActivity)
		}
	})

	return r
}

func (s *Server) requireTenant(next http.Handler) http.Handler {
	check := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if tenantID, ok := TenantFromContext(r.Context()); !ok || tenantID == "" {
			writeError(w, http.StatusUnauthorized, "missing tenant", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
	if s.opts.Auth == nil {
		return check
	}
	return s.opts.Auth(check)
}

func (s *Server) service(r *http.Request) *dashboard.Service {
	tenantID, _ := TenantFromContext(r.Context())
	return dashboard.NewService(s.opts.Stores(tenantID), s.opts.Validator, s.opts.PageSize, s.opts.Logger)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.service(r).List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if projects == nil {
		projects = []project.Project{}
	}
	writeJSON(w, http.StatusOK, projects)
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var req project.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	proj, err := s.service(r).Create(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, proj)
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	proj, err := s.service(r).Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, proj)
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := s.service(r).Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	state, err := dashboard.ParseState(r.URL.Query())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	view := s.service(r).View(r.Context(), state)
	s.opts.Metrics.ObserveView(view)
	if links := pageLinks(r.URL.Path, view); len(links) > 0 {
		w.Header().Set("Link", strings.Join(links, ", "))
	}
	writeJSON(w, http.StatusOK, view)
}

// pageLinks builds RFC 8288 prev/next links for the view's neighbours.
func pageLinks(path string, view dashboard.View) []string {
	var links []string
	if view.Page.Index > 1 {
		prev := view.State.WithPage(view.Page.Index - 1)
		links = append(links, fmt.Sprintf(`<%s?%s>; rel="prev"`, path, prev.Values().Encode()))
	}
	if view.Page.Index < view.Page.TotalPages {
		next := view.State.WithPage(view.Page.Index + 1)
		links = append(links, fmt.Sprintf(`<%s?%s>; rel="next"`, path, next.Values().Encode()))
	}
	return links
}

func (s *Server) handleActivity(w http.ResponseWriter, r *http.Request) {
	opts, err := parseActivityOptions(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	tenantID, _ := TenantFromContext(r.Context())
	entries, err := s.opts.Activity.GetRecentActivity(r.Context(), tenantID, opts)
	if err != nil {
		if s.opts.Logger != nil {
			s.opts.Logger.Error("listing activity failed", "tenant_id", tenantID, "error", err)
		}
		writeError(w, http.StatusInternalServerError, "internal error", nil)
		return
	}
	if entries == nil {
		entries = []activity.Entry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func parseActivityOptions(r *http.Request) (activity.ListOptions, error) {
	q := r.URL.Query()
	opts := activity.ListOptions{ProjectID: q.Get("project_id")}
	for name, dst := range map[string]*int{"limit": &opts.Limit, "offset": &opts.Offset} {
		raw := q.Get(name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return opts, fmt.Errorf("invalid %s: %q", name, raw)
		}
		*dst = n
	}
	if raw := q.Get("type"); raw != "" {
		typ := activity.Type(raw)
		if !typ.Valid() {
			return opts, fmt.Errorf("invalid type: %q", raw)
		}
		opts.Type = &typ
	}
	return opts, nil
}
