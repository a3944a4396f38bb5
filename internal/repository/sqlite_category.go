package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mapwise/capmap/internal/db"
	"github.com/mapwise/capmap/internal/domain"
)

const categoryColumns = `id, map_id, name, sort_order, subcategory, created_at, updated_at`

// SQLiteCategoryRepo implements CategoryRepo using a SQLite database.
type SQLiteCategoryRepo struct {
	db db.DBTX
}

// NewSQLiteCategoryRepo creates a new SQLiteCategoryRepo.
func NewSQLiteCategoryRepo(conn db.DBTX) *SQLiteCategoryRepo {
	return &SQLiteCategoryRepo{db: conn}
}

func (r *SQLiteCategoryRepo) Create(ctx context.Context, c *domain.Category) error {
	query := `INSERT INTO categories (` + categoryColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.MapID,
		c.Name,
		c.SortOrder,
		boolToInt(c.Subcategory),
		c.CreatedAt.Format(time.RFC3339),
		c.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting category: %w", err)
	}
	return nil
}

func (r *SQLiteCategoryRepo) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = ?`
	c, err := scanCategoryFrom(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("category %s not found", id)
	}
	return c, err
}

func (r *SQLiteCategoryRepo) ListByMap(ctx context.Context, mapID string) ([]*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE map_id = ? ORDER BY sort_order, created_at`
	rows, err := r.db.QueryContext(ctx, query, mapID)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	var cats []*domain.Category
	for rows.Next() {
		c, err := scanCategoryFrom(rows)
		if err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

func (r *SQLiteCategoryRepo) Update(ctx context.Context, c *domain.Category) error {
	query := `UPDATE categories SET name = ?, sort_order = ?, subcategory = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		c.Name,
		c.SortOrder,
		boolToInt(c.Subcategory),
		c.UpdatedAt.Format(time.RFC3339),
		c.ID,
	)
	if err != nil {
		return fmt.Errorf("updating category: %w", err)
	}
	return requireRowAffected(res, "category", c.ID)
}

func (r *SQLiteCategoryRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting category: %w", err)
	}
	return requireRowAffected(res, "category", id)
}

func (r *SQLiteCategoryRepo) MaxSortOrder(ctx context.Context, mapID string) (int, error) {
	var max sql.NullInt64
	err := r.db.QueryRowContext(ctx,
		`SELECT MAX(sort_order) FROM categories WHERE map_id = ?`, mapID,
	).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("querying max sort order: %w", err)
	}
	if !max.Valid {
		return -1, nil
	}
	return int(max.Int64), nil
}

func scanCategoryFrom(s rowScanner) (*domain.Category, error) {
	var c domain.Category
	var subcategory int
	var createdAt, updatedAt string
	if err := s.Scan(&c.ID, &c.MapID, &c.Name, &c.SortOrder, &subcategory, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	c.Subcategory = intToBool(subcategory)
	c.CreatedAt = parseTime(createdAt)
	c.UpdatedAt = parseTime(updatedAt)
	return &c, nil
}
