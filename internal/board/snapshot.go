// Package board holds the in-memory state of one open capability map:
// the authoritative snapshot of categories and capabilities, the UI-only
// filter/selection state, the derived render projection, phase/color
// consistency rules, and the undo/redo history.
//
// Nothing in this package performs I/O. Persistence is the caller's
// concern; the board is mutated only after (or alongside) a confirmed
// repository operation, and every committed mutation is recorded in a
// History so it can be walked back.
package board

import "github.com/mapwise/capmap/internal/domain"

// Snapshot is the in-memory state of one map: its categories and
// capabilities, in storage order.
type Snapshot struct {
	Categories   []domain.Category
	Capabilities []domain.Capability
}

// Clone returns a structural deep copy. History entries and projection
// inputs rely on this: later in-place mutation of live state must never
// reach a cloned snapshot.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{
		Categories:   make([]domain.Category, len(s.Categories)),
		Capabilities: make([]domain.Capability, len(s.Capabilities)),
	}
	copy(out.Categories, s.Categories)
	for i, c := range s.Capabilities {
		if c.HoursOverride != nil {
			v := *c.HoursOverride
			c.HoursOverride = &v
		}
		out.Capabilities[i] = c
	}
	return out
}

// Capability returns a pointer to the capability with the given ID, or nil.
// The pointer aliases the snapshot's backing array.
func (s *Snapshot) Capability(id string) *domain.Capability {
	for i := range s.Capabilities {
		if s.Capabilities[i].ID == id {
			return &s.Capabilities[i]
		}
	}
	return nil
}

// Category returns a pointer to the category with the given ID, or nil.
func (s *Snapshot) Category(id string) *domain.Category {
	for i := range s.Categories {
		if s.Categories[i].ID == id {
			return &s.Categories[i]
		}
	}
	return nil
}
