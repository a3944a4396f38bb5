package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mapwise/capmap/internal/db"
	"github.com/mapwise/capmap/internal/domain"
)

const mapColumns = `id, name, description, size_hours, phase_colors, created_at, updated_at`

// SQLiteMapRepo implements MapRepo using a SQLite database.
type SQLiteMapRepo struct {
	db db.DBTX
}

// NewSQLiteMapRepo creates a new SQLiteMapRepo. conn may be a *sql.DB or a
// transaction from a UnitOfWork.
func NewSQLiteMapRepo(conn db.DBTX) *SQLiteMapRepo {
	return &SQLiteMapRepo{db: conn}
}

func (r *SQLiteMapRepo) Create(ctx context.Context, m *domain.Map) error {
	sizeHours, phaseColors, err := marshalMapConfigs(m)
	if err != nil {
		return err
	}
	query := `INSERT INTO maps (` + mapColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		m.ID,
		m.Name,
		m.Description,
		sizeHours,
		phaseColors,
		m.CreatedAt.Format(time.RFC3339),
		m.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting map: %w", err)
	}
	return nil
}

func (r *SQLiteMapRepo) GetByID(ctx context.Context, id string) (*domain.Map, error) {
	query := `SELECT ` + mapColumns + ` FROM maps WHERE id = ?`
	return r.scanMap(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteMapRepo) List(ctx context.Context) ([]*domain.Map, error) {
	query := `SELECT ` + mapColumns + ` FROM maps ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing maps: %w", err)
	}
	defer rows.Close()

	var maps []*domain.Map
	for rows.Next() {
		m, err := r.scanMapRow(rows)
		if err != nil {
			return nil, err
		}
		maps = append(maps, m)
	}
	return maps, rows.Err()
}

func (r *SQLiteMapRepo) Update(ctx context.Context, m *domain.Map) error {
	sizeHours, phaseColors, err := marshalMapConfigs(m)
	if err != nil {
		return err
	}
	query := `UPDATE maps SET name = ?, description = ?, size_hours = ?, phase_colors = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		m.Name,
		m.Description,
		sizeHours,
		phaseColors,
		m.UpdatedAt.Format(time.RFC3339),
		m.ID,
	)
	if err != nil {
		return fmt.Errorf("updating map: %w", err)
	}
	return requireRowAffected(res, "map", m.ID)
}

func (r *SQLiteMapRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM maps WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting map: %w", err)
	}
	return requireRowAffected(res, "map", id)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *SQLiteMapRepo) scanMap(row *sql.Row) (*domain.Map, error) {
	m, err := scanMapFrom(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("map not found")
	}
	return m, err
}

func (r *SQLiteMapRepo) scanMapRow(rows *sql.Rows) (*domain.Map, error) {
	return scanMapFrom(rows)
}

func scanMapFrom(s rowScanner) (*domain.Map, error) {
	var m domain.Map
	var sizeHours, phaseColors, createdAt, updatedAt string
	if err := s.Scan(&m.ID, &m.Name, &m.Description, &sizeHours, &phaseColors, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(sizeHours), &m.SizeHours); err != nil {
		return nil, fmt.Errorf("parsing size_hours: %w", err)
	}
	if err := json.Unmarshal([]byte(phaseColors), &m.PhaseColors); err != nil {
		return nil, fmt.Errorf("parsing phase_colors: %w", err)
	}
	m.CreatedAt = parseTime(createdAt)
	m.UpdatedAt = parseTime(updatedAt)
	return &m, nil
}

func marshalMapConfigs(m *domain.Map) (string, string, error) {
	sizeHours := m.SizeHours
	if sizeHours == nil {
		sizeHours = map[domain.Size]int{}
	}
	phaseColors := m.PhaseColors
	if phaseColors == nil {
		phaseColors = map[domain.Phase]string{}
	}
	sh, err := json.Marshal(sizeHours)
	if err != nil {
		return "", "", fmt.Errorf("encoding size_hours: %w", err)
	}
	pc, err := json.Marshal(phaseColors)
	if err != nil {
		return "", "", fmt.Errorf("encoding phase_colors: %w", err)
	}
	return string(sh), string(pc), nil
}

func requireRowAffected(res sql.Result, entity, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s not found", entity, id)
	}
	return nil
}
