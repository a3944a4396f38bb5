package testutil

import (
	"time"

	"github.com/mapwise/capmap/internal/domain"
	"github.com/google/uuid"
)

// Map options
type MapOption func(*domain.Map)

func WithSizeHours(hours map[domain.Size]int) MapOption {
	return func(m *domain.Map) {
		m.SizeHours = hours
	}
}

func WithPhaseColors(colors map[domain.Phase]string) MapOption {
	return func(m *domain.Map) {
		m.PhaseColors = colors
	}
}

func NewTestMap(name string, opts ...MapOption) *domain.Map {
	now := time.Now().UTC()
	m := &domain.Map{
		ID:        uuid.New().String(),
		Name:      name,
		SizeHours: domain.DefaultSizeHours(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Category options
type CategoryOption func(*domain.Category)

func WithSortOrder(order int) CategoryOption {
	return func(c *domain.Category) {
		c.SortOrder = order
	}
}

func WithSubcategory() CategoryOption {
	return func(c *domain.Category) {
		c.Subcategory = true
	}
}

func NewTestCategory(mapID, name string, opts ...CategoryOption) *domain.Category {
	now := time.Now().UTC()
	c := &domain.Category{
		ID:        uuid.New().String(),
		MapID:     mapID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Capability options
type CapabilityOption func(*domain.Capability)

func WithSize(s domain.Size) CapabilityOption {
	return func(c *domain.Capability) {
		c.Size = s
	}
}

func WithPhase(p domain.Phase) CapabilityOption {
	return func(c *domain.Capability) {
		c.Phase = p
	}
}

func WithColor(color string) CapabilityOption {
	return func(c *domain.Capability) {
		c.Color = color
	}
}

func WithHours(h int) CapabilityOption {
	return func(c *domain.Capability) {
		c.Hours = h
	}
}

func WithHoursOverride(h int) CapabilityOption {
	return func(c *domain.Capability) {
		c.HoursOverride = &h
	}
}

func WithCapSortOrder(order int) CapabilityOption {
	return func(c *domain.Capability) {
		c.SortOrder = order
	}
}

func NewTestCapability(categoryID, name string, opts ...CapabilityOption) *domain.Capability {
	now := time.Now().UTC()
	c := &domain.Capability{
		ID:         uuid.New().String(),
		CategoryID: categoryID,
		Name:       name,
		Size:       domain.SizeTBD,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
