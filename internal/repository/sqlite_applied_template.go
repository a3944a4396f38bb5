package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/mapwise/capmap/internal/db"
	"github.com/mapwise/capmap/internal/domain"
)

// SQLiteAppliedTemplateRepo implements AppliedTemplateRepo using a SQLite database.
type SQLiteAppliedTemplateRepo struct {
	db db.DBTX
}

// NewSQLiteAppliedTemplateRepo creates a new SQLiteAppliedTemplateRepo.
func NewSQLiteAppliedTemplateRepo(conn db.DBTX) *SQLiteAppliedTemplateRepo {
	return &SQLiteAppliedTemplateRepo{db: conn}
}

// Record marks a template as applied to a map. Re-applying the same
// template refreshes the timestamp instead of failing.
func (r *SQLiteAppliedTemplateRepo) Record(ctx context.Context, a *domain.AppliedTemplate) error {
	query := `INSERT INTO applied_templates (map_id, template_id, applied_at)
		VALUES (?, ?, ?)
		ON CONFLICT(map_id, template_id) DO UPDATE SET applied_at = excluded.applied_at`
	_, err := r.db.ExecContext(ctx, query,
		a.MapID,
		a.TemplateID,
		a.AppliedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("recording applied template: %w", err)
	}
	return nil
}

func (r *SQLiteAppliedTemplateRepo) ListByMap(ctx context.Context, mapID string) ([]*domain.AppliedTemplate, error) {
	query := `SELECT map_id, template_id, applied_at FROM applied_templates
		WHERE map_id = ? ORDER BY applied_at`
	rows, err := r.db.QueryContext(ctx, query, mapID)
	if err != nil {
		return nil, fmt.Errorf("listing applied templates: %w", err)
	}
	defer rows.Close()

	var applied []*domain.AppliedTemplate
	for rows.Next() {
		var a domain.AppliedTemplate
		var appliedAt string
		if err := rows.Scan(&a.MapID, &a.TemplateID, &appliedAt); err != nil {
			return nil, err
		}
		a.AppliedAt = parseTime(appliedAt)
		applied = append(applied, &a)
	}
	return applied, rows.Err()
}
