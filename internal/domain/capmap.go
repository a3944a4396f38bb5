package domain

import (
	"fmt"
	"time"
)

// Map is the top-level container for one capability-mapping exercise.
// SizeHours drives the computed-hours estimate per capability size;
// PhaseColors persists custom colors chosen for phases on this map.
type Map struct {
	ID          string
	Name        string
	Description string
	SizeHours   map[Size]int
	PhaseColors map[Phase]string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DefaultSizeHours returns the stock size→hours configuration applied to
// new maps. TBD is intentionally zero: unsized work carries no estimate.
func DefaultSizeHours() map[Size]int {
	return map[Size]int{
		SizeTBD:  0,
		SizeXS:   4,
		SizeS:    8,
		SizeM:    16,
		SizeL:    24,
		SizeXL:   32,
		SizeXXL:  48,
		SizeXXXL: 64,
	}
}

// HoursFor returns the configured hours for a size, falling back to the
// stock configuration when the map has no entry for it.
func (m *Map) HoursFor(size Size) int {
	if m.SizeHours != nil {
		if h, ok := m.SizeHours[size]; ok {
			return h
		}
	}
	return DefaultSizeHours()[size]
}

// Validate checks the fields required before a map can be persisted.
func (m *Map) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("map name is required")
	}
	for size := range m.SizeHours {
		if !ValidSizes[size] {
			return fmt.Errorf("unknown size %q in hours configuration", size)
		}
	}
	for phase, color := range m.PhaseColors {
		if !ValidPhases[phase] {
			return fmt.Errorf("unknown phase %q in color configuration", phase)
		}
		if _, err := NormalizeColor(color); err != nil {
			return fmt.Errorf("phase %s: %w", phase, err)
		}
	}
	return nil
}

// DisplayID returns a short identifier for display, truncating the UUID.
func (m *Map) DisplayID() string {
	if len(m.ID) >= 8 {
		return m.ID[:8]
	}
	return m.ID
}
