package board

import (
	"fmt"

	"github.com/mapwise/capmap/internal/domain"
)

// ViewMode controls which capabilities a derived view includes.
type ViewMode string

const (
	ViewAll   ViewMode = "all"   // everything
	ViewSized ViewMode = "sized" // excludes TBD
	ViewTBD   ViewMode = "tbd"   // only TBD
)

// Filters is the UI-only filter state applied when deriving a view.
//
// ExcludedSizes and the view mode are hard exclusions; PhaseChips and
// SizeChips are soft highlight filters (non-matching tiles are dimmed,
// not hidden).
type Filters struct {
	Search        string
	Mode          ViewMode
	ExcludedSizes map[domain.Size]bool
	PhaseChips    map[domain.Phase]bool
	SizeChips     map[domain.Size]bool
}

// NewFilters returns the default filter state: everything visible.
func NewFilters() Filters {
	return Filters{
		Mode:          ViewAll,
		ExcludedSizes: make(map[domain.Size]bool),
		PhaseChips:    make(map[domain.Phase]bool),
		SizeChips:     make(map[domain.Size]bool),
	}
}

// State is the view state store for one open map. It owns the snapshot,
// the filters, the selection set, and the zoom level. All mutation goes
// through its methods; callers snapshot into a History after each
// committed mutation.
//
// State is not safe for concurrent use. It is owned by a single event
// loop (the TUI model) which serializes all access.
type State struct {
	snap      Snapshot
	filters   Filters
	selection map[string]bool
	zoom      float64
	version   uint64
}

// NewState returns an empty store with default filters.
func NewState() *State {
	return &State{
		filters:   NewFilters(),
		selection: make(map[string]bool),
		zoom:      1.0,
	}
}

// Load replaces the snapshot wholesale, as after a fetch or an undo/redo
// restore. The selection is cleared; filters and zoom persist across
// reloads of the same map.
func (st *State) Load(snap Snapshot) {
	st.snap = snap.Clone()
	st.selection = make(map[string]bool)
	st.version++
}

// Snapshot returns a deep copy of the current snapshot, suitable for
// history pushes and projection building.
func (st *State) Snapshot() Snapshot {
	return st.snap.Clone()
}

// Version is a monotonic counter bumped on every mutation. Callers memoize
// derived views against it.
func (st *State) Version() uint64 {
	return st.version
}

// Filters returns the current filter state.
func (st *State) Filters() Filters {
	return st.filters
}

// SetFilters replaces the filter state.
func (st *State) SetFilters(f Filters) {
	st.filters = f
	st.version++
}

// Zoom returns the current zoom factor.
func (st *State) Zoom() float64 { return st.zoom }

// SetZoom clamps and stores the zoom factor.
func (st *State) SetZoom(z float64) {
	if z < 0.25 {
		z = 0.25
	}
	if z > 2.0 {
		z = 2.0
	}
	st.zoom = z
	st.version++
}

// ApplyFieldUpdate applies the patch to every capability in ids that
// exists in the snapshot. Unknown IDs are skipped. The patch is assumed
// validated; this is the optimistic in-memory half of a bulk update.
func (st *State) ApplyFieldUpdate(ids []string, patch domain.CapabilityPatch) {
	for _, id := range ids {
		if c := st.snap.Capability(id); c != nil {
			patch.Apply(c)
		}
	}
	st.version++
}

// MoveCapability reassigns a capability to another category, placing it
// after that category's existing capabilities.
func (st *State) MoveCapability(id, newCategoryID string) error {
	c := st.snap.Capability(id)
	if c == nil {
		return fmt.Errorf("capability %s not found", id)
	}
	if st.snap.Category(newCategoryID) == nil {
		return fmt.Errorf("category %s not found", newCategoryID)
	}
	maxOrder := -1
	for i := range st.snap.Capabilities {
		if st.snap.Capabilities[i].CategoryID == newCategoryID && st.snap.Capabilities[i].SortOrder > maxOrder {
			maxOrder = st.snap.Capabilities[i].SortOrder
		}
	}
	c.CategoryID = newCategoryID
	c.SortOrder = maxOrder + 1
	st.version++
	return nil
}

// RemoveCapabilities drops the given capabilities from the snapshot and
// the selection. Unknown IDs are ignored.
func (st *State) RemoveCapabilities(ids []string) {
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
		delete(st.selection, id)
	}
	kept := st.snap.Capabilities[:0]
	for _, c := range st.snap.Capabilities {
		if !drop[c.ID] {
			kept = append(kept, c)
		}
	}
	st.snap.Capabilities = kept
	st.version++
}

// ── selection ────────────────────────────────────────────────────────────────

// ToggleSelect flips a capability in or out of the selection set.
func (st *State) ToggleSelect(id string) {
	if st.selection[id] {
		delete(st.selection, id)
	} else {
		st.selection[id] = true
	}
	st.version++
}

// Selected reports whether a capability is in the selection set.
func (st *State) Selected(id string) bool {
	return st.selection[id]
}

// Selection returns the selection set. Callers must not mutate it.
func (st *State) Selection() map[string]bool {
	return st.selection
}

// SelectionIDs returns the selected capability IDs in snapshot order.
func (st *State) SelectionIDs() []string {
	ids := make([]string, 0, len(st.selection))
	for _, c := range st.snap.Capabilities {
		if st.selection[c.ID] {
			ids = append(ids, c.ID)
		}
	}
	return ids
}

// ClearSelection empties the selection set.
func (st *State) ClearSelection() {
	if len(st.selection) == 0 {
		return
	}
	st.selection = make(map[string]bool)
	st.version++
}
