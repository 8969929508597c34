package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rpggio/portfolio/internal/domain/project"
)

// Service is the presentation boundary: it turns a state into a view over a
// fresh snapshot and forwards validated mutations to the store.
type Service struct {
	store     Store
	validator project.Validator
	pageSize  int
	logger    *slog.Logger
}

// NewService creates a dashboard service over store.
func NewService(store Store, validator project.Validator, pageSize int, logger *slog.Logger) *Service {
	return &Service{store: store, validator: validator, pageSize: max(pageSize, 1), logger: logger}
}

// PageSize is the configured number of rows per page.
func (s *Service) PageSize() int {
	return s.pageSize
}

// View loads the latest snapshot and derives the view for state. A source
// failure does not fail the call; it is reported in View.Error.
func (s *Service) View(ctx context.Context, state State) View {
	snap := Load(ctx, s.store)
	if snap.Err != nil && s.logger != nil {
		s.logger.Warn("dashboard source failed", "error", snap.Err)
	}
	return ComputeSnapshot(snap, state, s.pageSize)
}

// List returns the full collection in store order.
func (s *Service) List(ctx context.Context) ([]project.Project, error) {
	records, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	return records, nil
}

// Create validates req and forwards it to the store. Validation failures are
// returned as *project.ValidationError without contacting the store.
func (s *Service) Create(ctx context.Context, req project.CreateRequest) (*project.Project, error) {
	req, err := s.validator.Normalize(req)
	if err != nil {
		return nil, err
	}
	proj, err := s.store.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: create: %w", ErrMutationFailed, err)
	}
	return proj, nil
}

// Get returns the project with the given id. Stores without a direct lookup
// are searched through a full listing.
func (s *Service) Get(ctx context.Context, id string) (*project.Project, error) {
	if getter, ok := s.store.(Getter); ok {
		proj, err := getter.Get(ctx, id)
		if err != nil && !errors.Is(err, project.ErrProjectNotFound) {
			return nil, fmt.Errorf("%w: get %s: %w", ErrSourceUnavailable, id, err)
		}
		return proj, err
	}
	records, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].ID == id {
			proj := records[i]
			return &proj, nil
		}
	}
	return nil, project.ErrProjectNotFound
}

// Delete removes the project with the given id.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("%w: delete %s: %w", ErrMutationFailed, id, err)
	}
	return nil
}
