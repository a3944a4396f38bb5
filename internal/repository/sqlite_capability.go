package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/mapwise/capmap/internal/db"
	"github.com/mapwise/capmap/internal/domain"
)

const capabilityColumns = `id, category_id, name, description, size, phase, color,
		hours, hours_override, sort_order, created_at, updated_at`

// capabilityColumnsAliased is the same column list prefixed with "c." for
// join queries.
const capabilityColumnsAliased = `c.id, c.category_id, c.name, c.description, c.size, c.phase, c.color,
		c.hours, c.hours_override, c.sort_order, c.created_at, c.updated_at`

// SQLiteCapabilityRepo implements CapabilityRepo using a SQLite database.
type SQLiteCapabilityRepo struct {
	db db.DBTX
}

// NewSQLiteCapabilityRepo creates a new SQLiteCapabilityRepo.
func NewSQLiteCapabilityRepo(conn db.DBTX) *SQLiteCapabilityRepo {
	return &SQLiteCapabilityRepo{db: conn}
}

func (r *SQLiteCapabilityRepo) Create(ctx context.Context, c *domain.Capability) error {
	query := `INSERT INTO capabilities (` + capabilityColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.CategoryID,
		c.Name,
		c.Description,
		string(c.Size),
		string(c.Phase),
		c.Color,
		c.Hours,
		nullableIntToValue(c.HoursOverride),
		c.SortOrder,
		c.CreatedAt.Format(time.RFC3339),
		c.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting capability: %w", err)
	}
	return nil
}

func (r *SQLiteCapabilityRepo) GetByID(ctx context.Context, id string) (*domain.Capability, error) {
	query := `SELECT ` + capabilityColumns + ` FROM capabilities WHERE id = ?`
	c, err := scanCapabilityFrom(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("capability %s not found", id)
	}
	return c, err
}

func (r *SQLiteCapabilityRepo) ListByCategory(ctx context.Context, categoryID string) ([]*domain.Capability, error) {
	query := `SELECT ` + capabilityColumns + ` FROM capabilities
		WHERE category_id = ? ORDER BY sort_order, created_at`
	rows, err := r.db.QueryContext(ctx, query, categoryID)
	if err != nil {
		return nil, fmt.Errorf("listing capabilities by category: %w", err)
	}
	defer rows.Close()
	return scanCapabilities(rows)
}

func (r *SQLiteCapabilityRepo) ListByMap(ctx context.Context, mapID string) ([]*domain.Capability, error) {
	query := `SELECT ` + capabilityColumnsAliased + `
		FROM capabilities c
		JOIN categories g ON c.category_id = g.id
		WHERE g.map_id = ?
		ORDER BY g.sort_order, c.sort_order, c.created_at`
	rows, err := r.db.QueryContext(ctx, query, mapID)
	if err != nil {
		return nil, fmt.Errorf("listing capabilities by map: %w", err)
	}
	defer rows.Close()
	return scanCapabilities(rows)
}

func (r *SQLiteCapabilityRepo) Update(ctx context.Context, c *domain.Capability) error {
	query := `UPDATE capabilities SET category_id = ?, name = ?, description = ?, size = ?,
		phase = ?, color = ?, hours = ?, hours_override = ?, sort_order = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		c.CategoryID,
		c.Name,
		c.Description,
		string(c.Size),
		string(c.Phase),
		c.Color,
		c.Hours,
		nullableIntToValue(c.HoursOverride),
		c.SortOrder,
		c.UpdatedAt.Format(time.RFC3339),
		c.ID,
	)
	if err != nil {
		return fmt.Errorf("updating capability: %w", err)
	}
	return requireRowAffected(res, "capability", c.ID)
}

func (r *SQLiteCapabilityRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM capabilities WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting capability: %w", err)
	}
	return requireRowAffected(res, "capability", id)
}

func (r *SQLiteCapabilityRepo) DeleteByCategory(ctx context.Context, categoryID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM capabilities WHERE category_id = ?`, categoryID)
	if err != nil {
		return fmt.Errorf("deleting capabilities of category: %w", err)
	}
	return nil
}

// BulkUpdate applies the patch to every capability in ids with one UPDATE
// statement. SQLite executes the statement atomically, which gives the
// all-or-nothing guarantee the bulk flows rely on.
func (r *SQLiteCapabilityRepo) BulkUpdate(ctx context.Context, ids []string, patch domain.CapabilityPatch) error {
	if len(ids) == 0 || patch.IsZero() {
		return nil
	}

	var sets []string
	var args []any
	add := func(col string, val any) {
		sets = append(sets, col+" = ?")
		args = append(args, val)
	}
	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.Size != nil {
		add("size", string(*patch.Size))
	}
	if patch.Phase != nil {
		add("phase", string(*patch.Phase))
	}
	if patch.Color != nil {
		add("color", *patch.Color)
	}
	if patch.Hours != nil {
		add("hours", *patch.Hours)
	}
	if patch.ClearHoursOverride {
		add("hours_override", nil)
	} else if patch.HoursOverride != nil {
		add("hours_override", *patch.HoursOverride)
	}
	if patch.SortOrder != nil {
		add("sort_order", *patch.SortOrder)
	}
	if patch.CategoryID != nil {
		add("category_id", *patch.CategoryID)
	}
	add("updated_at", time.Now().UTC().Format(time.RFC3339))

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]
	for _, id := range ids {
		args = append(args, id)
	}

	query := `UPDATE capabilities SET ` + strings.Join(sets, ", ") +
		` WHERE id IN (` + placeholders + `)`
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("bulk updating capabilities: %w", err)
	}
	return nil
}

func (r *SQLiteCapabilityRepo) MaxSortOrder(ctx context.Context, categoryID string) (int, error) {
	var max sql.NullInt64
	err := r.db.QueryRowContext(ctx,
		`SELECT MAX(sort_order) FROM capabilities WHERE category_id = ?`, categoryID,
	).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("querying max sort order: %w", err)
	}
	if !max.Valid {
		return -1, nil
	}
	return int(max.Int64), nil
}

func scanCapabilities(rows *sql.Rows) ([]*domain.Capability, error) {
	var caps []*domain.Capability
	for rows.Next() {
		c, err := scanCapabilityFrom(rows)
		if err != nil {
			return nil, err
		}
		caps = append(caps, c)
	}
	return caps, rows.Err()
}

func scanCapabilityFrom(s rowScanner) (*domain.Capability, error) {
	var c domain.Capability
	var size, phase, createdAt, updatedAt string
	var override sql.NullInt64
	if err := s.Scan(&c.ID, &c.CategoryID, &c.Name, &c.Description, &size, &phase,
		&c.Color, &c.Hours, &override, &c.SortOrder, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	c.Size = domain.Size(size)
	c.Phase = domain.Phase(phase)
	c.HoursOverride = nullableIntFromSQL(override)
	c.CreatedAt = parseTime(createdAt)
	c.UpdatedAt = parseTime(updatedAt)
	return &c, nil
}
