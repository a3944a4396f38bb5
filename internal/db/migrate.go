package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent; ALTER
// TABLE duplicates from re-runs are tolerated.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS maps (
		id           TEXT PRIMARY KEY,
		name         TEXT NOT NULL,
		description  TEXT NOT NULL DEFAULT '',
		size_hours   TEXT NOT NULL DEFAULT '{}',
		phase_colors TEXT NOT NULL DEFAULT '{}',
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS categories (
		id          TEXT PRIMARY KEY,
		map_id      TEXT NOT NULL REFERENCES maps(id) ON DELETE CASCADE,
		name        TEXT NOT NULL,
		sort_order  INTEGER NOT NULL DEFAULT 0,
		subcategory INTEGER NOT NULL DEFAULT 0,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_categories_map ON categories(map_id)`,

	`CREATE TABLE IF NOT EXISTS capabilities (
		id             TEXT PRIMARY KEY,
		category_id    TEXT NOT NULL REFERENCES categories(id) ON DELETE CASCADE,
		name           TEXT NOT NULL,
		description    TEXT NOT NULL DEFAULT '',
		size           TEXT NOT NULL DEFAULT 'tbd'
		               CHECK(size IN ('tbd','xs','s','m','l','xl','xxl','xxxl')),
		phase          TEXT NOT NULL DEFAULT ''
		               CHECK(phase IN ('','phase1','phase2','phase3','phase4','future','out_of_scope')),
		color          TEXT NOT NULL DEFAULT '',
		hours          INTEGER NOT NULL DEFAULT 0,
		hours_override INTEGER,
		sort_order     INTEGER NOT NULL DEFAULT 0,
		created_at     TEXT NOT NULL,
		updated_at     TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_capabilities_category ON capabilities(category_id)`,

	`CREATE TABLE IF NOT EXISTS applied_templates (
		map_id      TEXT NOT NULL REFERENCES maps(id) ON DELETE CASCADE,
		template_id TEXT NOT NULL,
		applied_at  TEXT NOT NULL,
		PRIMARY KEY (map_id, template_id)
	)`,
}
