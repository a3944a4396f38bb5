package board

import (
	"sort"
	"strings"

	"github.com/mapwise/capmap/internal/domain"
)

// Tile is one render-ready capability.
type Tile struct {
	Capability domain.Capability
	Selected   bool
	// Highlight is false when active phase/size chips do not match this
	// capability. It is a dimming signal, never an exclusion.
	Highlight bool
	// Color is the resolved display color: the capability's explicit
	// color, else the first-seen color of its phase, else "".
	Color string
}

// Column is one category with its visible capabilities, sorted for display.
type Column struct {
	Category domain.Category
	Tiles    []Tile
}

// View is the render-ready projection of a snapshot under the current
// filters and selection.
type View struct {
	Columns []Column
	// Visible counts capabilities that survived filtering; Total counts
	// capabilities that belong to an existing category.
	Visible int
	Total   int
}

// Build derives the render projection from a snapshot. It is a pure
// function: identical inputs always produce identical output, so callers
// may memoize against the state version.
//
// A capability is included in its category's column when its category
// exists, its name matches the search term (case-insensitive substring,
// empty term matches all), its size is not excluded, and it passes the
// view mode (sized excludes TBD, tbd keeps only TBD). Capabilities whose
// category ID references no known category are silently invisible.
func Build(snap Snapshot, f Filters, selection map[string]bool) View {
	colors := BuildIndex(snap)

	categories := make([]domain.Category, len(snap.Categories))
	copy(categories, snap.Categories)
	sort.SliceStable(categories, func(i, j int) bool {
		return categories[i].SortOrder < categories[j].SortOrder
	})

	byCategory := make(map[string][]domain.Capability)
	search := strings.ToLower(strings.TrimSpace(f.Search))

	var total int
	for _, c := range snap.Capabilities {
		if snap.Category(c.CategoryID) == nil {
			continue // orphan: invisible, not an error
		}
		total++
		if !matchesFilters(c, f, search) {
			continue
		}
		byCategory[c.CategoryID] = append(byCategory[c.CategoryID], c)
	}

	view := View{Columns: make([]Column, 0, len(categories)), Total: total}
	for _, cat := range categories {
		tiles := byCategory[cat.ID]
		sort.SliceStable(tiles, func(i, j int) bool {
			return tiles[i].SortOrder < tiles[j].SortOrder
		})
		col := Column{Category: cat, Tiles: make([]Tile, 0, len(tiles))}
		for _, c := range tiles {
			color := c.Color
			if color == "" {
				color, _ = colors.ColorFor(c.Phase)
			}
			col.Tiles = append(col.Tiles, Tile{
				Capability: c,
				Selected:   selection[c.ID],
				Highlight:  matchesChips(c, f),
				Color:      color,
			})
			view.Visible++
		}
		view.Columns = append(view.Columns, col)
	}
	return view
}

func matchesFilters(c domain.Capability, f Filters, search string) bool {
	if search != "" && !strings.Contains(strings.ToLower(c.Name), search) {
		return false
	}
	if len(f.ExcludedSizes) > 0 && f.ExcludedSizes[c.Size] {
		return false
	}
	switch f.Mode {
	case ViewSized:
		return c.Sized()
	case ViewTBD:
		return !c.Sized()
	}
	return true
}

// matchesChips computes the highlight flag. With no active chips every
// capability is highlighted; with chips active, each active dimension
// must match.
func matchesChips(c domain.Capability, f Filters) bool {
	if len(f.PhaseChips) > 0 && !f.PhaseChips[c.Phase] {
		return false
	}
	if len(f.SizeChips) > 0 && !f.SizeChips[c.Size] {
		return false
	}
	return true
}
