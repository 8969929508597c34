package project

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/google/uuid"
	"github.com/rpggio/portfolio/internal/domain/activity"
	"github.com/rpggio/portfolio/internal/repository"
)

// ActivityLogger records project mutations.
type ActivityLogger interface {
	LogActivity(ctx context.Context, tenantID string, entry *activity.Entry) error
}

// Service handles project operations.
type Service struct {
	repo      Repository
	validator Validator
	activity  ActivityLogger
	logger    *slog.Logger
}

// NewService creates a new project service.
func NewService(repo Repository, validator Validator, logger *slog.Logger) *Service {
	return &Service{repo: repo, validator: validator, logger: logger}
}

// WithActivity returns a copy of the service that records creates and
// deletes in log.
func (s *Service) WithActivity(log ActivityLogger) *Service {
	next := *s
	next.activity = log
	return &next
}

// record logs a mutation. Failures are logged and never fail the mutation.
func (s *Service) record(ctx context.Context, tenantID string, entry *activity.Entry) {
	if s.activity == nil {
		return
	}
	if err := s.activity.LogActivity(ctx, tenantID, entry); err != nil && s.logger != nil {
		s.logger.Warn("failed to record activity", "tenant_id", tenantID, "project_id", entry.ProjectID, "error", err)
	}
}

// Create validates req and stores a new project under a fresh ID.
func (s *Service) Create(ctx context.Context, tenantID string, req CreateRequest) (*Project, error) {
	req, err := s.validator.Normalize(req)
	if err != nil {
		return nil, err
	}

	proj := &Project{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Owner:     req.Owner,
		Status:    req.Status,
		Budget:    req.Budget,
		Spent:     req.Spent,
		CreatedAt: req.CreatedAt,
	}

	if err := s.repo.Create(ctx, tenantID, proj); err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("project created", "tenant_id", tenantID, "project_id", proj.ID)
	}
	s.record(ctx, tenantID, &activity.Entry{
		ProjectID: proj.ID,
		Type:      activity.TypeProjectCreated,
		Summary:   fmt.Sprintf("created %q (%s, budget %s)", proj.Name, proj.Status, strconv.FormatFloat(proj.Budget, 'f', -1, 64)),
	})
	return proj, nil
}

// Get fetches a project by ID.
func (s *Service) Get(ctx context.Context, tenantID, id string) (*Project, error) {
	proj, err := s.repo.Get(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("getting project: %w", err)
	}
	return proj, nil
}

// List returns every project of the tenant in store order.
func (s *Service) List(ctx context.Context, tenantID string) ([]Project, error) {
	projects, err := s.repo.List(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	return projects, nil
}

// Delete removes a project.
func (s *Service) Delete(ctx context.Context, tenantID, id string) error {
	if err := s.repo.Delete(ctx, tenantID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("deleting project: %w", err)
	}
	if s.logger != nil {
		s.logger.Info("project deleted", "tenant_id", tenantID, "project_id", id)
	}
	s.record(ctx, tenantID, &activity.Entry{
		ProjectID: id,
		Type:      activity.TypeProjectDeleted,
		Summary:   "deleted project " + id,
	})
	return nil
}

// TenantStore is a Service bound to one tenant. It satisfies the
// list/create/delete record store contract used by the dashboard.
type TenantStore struct {
	svc      *Service
	tenantID string
}

// ForTenant binds the service to tenantID.
func (s *Service) ForTenant(tenantID string) *TenantStore {
	return &TenantStore{svc: s, tenantID: tenantID}
}

// List returns the tenant's projects.
func (t *TenantStore) List(ctx context.Context) ([]Project, error) {
	return t.svc.List(ctx, t.tenantID)
}

// Create stores a new project for the tenant.
func (t *TenantStore) Create(ctx context.Context, req CreateRequest) (*Project, error) {
	return t.svc.Create(ctx, t.tenantID, req)
}

// Delete removes one of the tenant's projects.
func (t *TenantStore) Delete(ctx context.Context, id string) error {
	return t.svc.Delete(ctx, t.tenantID, id)
}

// Get fetches one of the tenant's projects.
func (t *TenantStore) Get(ctx context.Context, id string) (*Project, error) {
	return t.svc.Get(ctx, t.tenantID, id)
}
