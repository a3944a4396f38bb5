package service

import (
	"context"

	"github.com/mapwise/capmap/internal/domain"
)

// BoardData is the full load result for one map: everything the board
// needs to render, in one fetch.
type BoardData struct {
	Map              *domain.Map
	Categories       []*domain.Category
	Capabilities     []*domain.Capability
	AppliedTemplates []*domain.AppliedTemplate
}

type MapService interface {
	Create(ctx context.Context, m *domain.Map) error
	GetByID(ctx context.Context, id string) (*domain.Map, error)
	List(ctx context.Context) ([]*domain.Map, error)
	Update(ctx context.Context, m *domain.Map) error
	Delete(ctx context.Context, id string) error
	// LoadBoard fetches a map with its categories, capabilities, and
	// applied templates.
	LoadBoard(ctx context.Context, mapID string) (*BoardData, error)
}

type CategoryService interface {
	Create(ctx context.Context, c *domain.Category) error
	GetByID(ctx context.Context, id string) (*domain.Category, error)
	ListByMap(ctx context.Context, mapID string) ([]*domain.Category, error)
	Update(ctx context.Context, c *domain.Category) error
	// Move repositions a category within its map's column order,
	// rewriting sibling sort orders so the sequence stays dense.
	Move(ctx context.Context, id string, position int) error
	// Delete removes a category and its capabilities atomically.
	Delete(ctx context.Context, id string) error
}

type CapabilityService interface {
	Create(ctx context.Context, c *domain.Capability) error
	GetByID(ctx context.Context, id string) (*domain.Capability, error)
	ListByCategory(ctx context.Context, categoryID string) ([]*domain.Capability, error)
	Update(ctx context.Context, c *domain.Capability) error
	// Move reassigns a capability to another category, placing it last.
	Move(ctx context.Context, id, newCategoryID string) error
	Delete(ctx context.Context, id string) error
}

// BulkService coordinates field changes across a set of capabilities:
// it persists first and reports what was applied, so callers can mirror
// the confirmed change into in-memory state (confirm-then-apply).
type BulkService interface {
	// ApplyField persists a bulk single-field update. The returned patch
	// is the one actually applied: a size change carries the recomputed
	// hours from the map's size→hours configuration, and a phase change
	// carries the phase's established color when one exists.
	ApplyField(ctx context.Context, mapID string, ids []string, patch domain.CapabilityPatch) (domain.CapabilityPatch, error)
	// ApplyColor runs the phase/color consistency engine against the
	// map's current state and persists the outcome. It returns the full
	// affected ID set (selection plus phase-wide propagation). Conflicts
	// are returned before anything is written.
	ApplyColor(ctx context.Context, mapID string, ids []string, color string, override bool) ([]string, error)
	// SaveColors persists heterogeneous per-capability colors, issuing
	// one all-or-nothing update per distinct color.
	SaveColors(ctx context.Context, colorsByID map[string]string) error
}

type TemplateService interface {
	List(ctx context.Context) ([]domain.Template, error)
	Get(ctx context.Context, name string) (*domain.Template, error)
	// Apply materializes a template's categories and capabilities onto a
	// map atomically and records the application.
	Apply(ctx context.Context, mapID, templateName string) (*BoardData, error)
}
