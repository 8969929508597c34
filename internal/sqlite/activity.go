package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/rpggio/portfolio/internal/domain/activity"
)

// ActivityRepository implements activity.Repository for SQLite
type ActivityRepository struct {
	db *DB
}

// NewActivityRepository creates a new ActivityRepository
func NewActivityRepository(db *DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// Log appends an entry and fills in its ID.
func (r *ActivityRepository) Log(ctx context.Context, tenantID string, entry *activity.Entry) error {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO activity_log (tenant_id, project_id, activity_type, summary, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, tenantID, entry.ProjectID, string(entry.Type), entry.Summary, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to log activity: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read activity id: %w", err)
	}
	entry.ID = id
	entry.TenantID = tenantID
	return nil
}

// List returns entries newest first.
func (r *ActivityRepository) List(ctx context.Context, tenantID string, opts activity.ListOptions) ([]activity.Entry, error) {
	where := []string{"tenant_id = ?"}
	args := []any{tenantID}
	if opts.ProjectID != "" {
		where = append(where, "project_id = ?")
		args = append(args, opts.ProjectID)
	}
	if opts.Type != nil {
		where = append(where, "activity_type = ?")
		args = append(args, string(*opts.Type))
	}
	query := `
		SELECT id, tenant_id, project_id, activity_type, summary, created_at
		FROM activity_log
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY id DESC`
	if opts.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, opts.Limit, opts.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}
	defer rows.Close()

	entries := []activity.Entry{}
	for rows.Next() {
		var e activity.Entry
		var typ string
		if err := rows.Scan(&e.ID, &e.TenantID, &e.ProjectID, &typ, &e.Summary, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		e.Type = activity.Type(typ)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
