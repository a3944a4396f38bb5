package repository

import (
	"context"

	"github.com/mapwise/capmap/internal/domain"
)

type MapRepo interface {
	Create(ctx context.Context, m *domain.Map) error
	GetByID(ctx context.Context, id string) (*domain.Map, error)
	List(ctx context.Context) ([]*domain.Map, error)
	Update(ctx context.Context, m *domain.Map) error
	Delete(ctx context.Context, id string) error
}

type CategoryRepo interface {
	Create(ctx context.Context, c *domain.Category) error
	GetByID(ctx context.Context, id string) (*domain.Category, error)
	ListByMap(ctx context.Context, mapID string) ([]*domain.Category, error)
	Update(ctx context.Context, c *domain.Category) error
	Delete(ctx context.Context, id string) error
	MaxSortOrder(ctx context.Context, mapID string) (int, error)
}

type CapabilityRepo interface {
	Create(ctx context.Context, c *domain.Capability) error
	GetByID(ctx context.Context, id string) (*domain.Capability, error)
	ListByCategory(ctx context.Context, categoryID string) ([]*domain.Capability, error)
	ListByMap(ctx context.Context, mapID string) ([]*domain.Capability, error)
	Update(ctx context.Context, c *domain.Capability) error
	Delete(ctx context.Context, id string) error
	DeleteByCategory(ctx context.Context, categoryID string) error
	// BulkUpdate applies the patch to all given capabilities in a single
	// statement: the whole update succeeds or none of it does.
	BulkUpdate(ctx context.Context, ids []string, patch domain.CapabilityPatch) error
	MaxSortOrder(ctx context.Context, categoryID string) (int, error)
}

type AppliedTemplateRepo interface {
	Record(ctx context.Context, a *domain.AppliedTemplate) error
	ListByMap(ctx context.Context, mapID string) ([]*domain.AppliedTemplate, error)
}
