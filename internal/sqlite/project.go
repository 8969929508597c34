package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rpggio/portfolio/internal/domain/project"
	"github.com/rpggio/portfolio/internal/repository"
)

// ProjectRepository implements project.Repository for SQLite
type ProjectRepository struct {
	db *DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create inserts a new project
func (r *ProjectRepository) Create(ctx context.Context, tenantID string, proj *project.Project) error {
	query := `
		INSERT INTO projects (id, tenant_id, name, owner, status, budget, spent, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		proj.ID,
		tenantID,
		proj.Name,
		proj.Owner,
		string(proj.Status),
		proj.Budget,
		proj.Spent,
		proj.CreatedAt,
	)

	switch {
	case isUniqueViolation(err):
		return repository.ErrConflict
	case isCheckViolation(err):
		return fmt.Errorf("%w: %v", repository.ErrInvalidInput, err)
	case err != nil:
		return fmt.Errorf("failed to create project: %w", err)
	}

	return nil
}

// Get retrieves a project by ID
func (r *ProjectRepository) Get(ctx context.Context, tenantID, id string) (*project.Project, error) {
	query := `
		SELECT id, name, owner, status, budget, spent, created_at
		FROM projects
		WHERE id = ? AND tenant_id = ?
	`

	proj, err := scanProject(r.db.QueryRowContext(ctx, query, id, tenantID))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	return &proj, nil
}

// List returns all projects for a tenant in insertion order
func (r *ProjectRepository) List(ctx context.Context, tenantID string) ([]project.Project, error) {
	query := `
		SELECT id, name, owner, status, budget, spent, created_at
		FROM projects
		WHERE tenant_id = ?
		ORDER BY seq ASC
	`

	rows, err := r.db.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	projects := []project.Project{}
	for rows.Next() {
		proj, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, proj)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project rows: %w", err)
	}

	return projects, nil
}

// Delete removes a project
func (r *ProjectRepository) Delete(ctx context.Context, tenantID, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ? AND tenant_id = ?`, id, tenantID)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (project.Project, error) {
	var proj project.Project
	var status string
	err := row.Scan(
		&proj.ID,
		&proj.Name,
		&proj.Owner,
		&status,
		&proj.Budget,
		&proj.Spent,
		&proj.CreatedAt,
	)
	proj.Status = project.Status(status)
	return proj, err
}
