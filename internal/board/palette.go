package board

import (
	"errors"
	"sort"

	"github.com/mapwise/capmap/internal/domain"
)

// A phase's visual identity must stay consistent across all of its
// capabilities: at most one color per phase, at most one phase per color.
// The relation is not stored; it is inferred lazily from capabilities
// that carry both a phase and a color, and enforced at mutation time.

var (
	// ErrColorInUse rejects a color already claimed by a different phase.
	ErrColorInUse = errors.New("color in use by another phase")

	// ErrPhaseHasColor rejects recoloring a phase that still has
	// capabilities outside the selection holding its current color.
	ErrPhaseHasColor = errors.New("phase already has a different color")
)

// Index maps phases to colors and back, built by scanning capabilities in
// sequence order. The first-seen mapping per key wins.
type Index struct {
	phaseColor map[domain.Phase]string
	colorPhase map[string]domain.Phase
}

// BuildIndex scans a snapshot and returns the inferred phase↔color index.
// Capabilities missing either a phase or a color do not contribute.
func BuildIndex(snap Snapshot) Index {
	ix := Index{
		phaseColor: make(map[domain.Phase]string),
		colorPhase: make(map[string]domain.Phase),
	}
	for _, c := range snap.Capabilities {
		if c.Phase == domain.PhaseNone || c.Color == "" {
			continue
		}
		if _, ok := ix.phaseColor[c.Phase]; !ok {
			ix.phaseColor[c.Phase] = c.Color
		}
		if _, ok := ix.colorPhase[c.Color]; !ok {
			ix.colorPhase[c.Color] = c.Phase
		}
	}
	return ix
}

// ColorFor returns the color mapped to a phase, if any.
func (ix Index) ColorFor(p domain.Phase) (string, bool) {
	c, ok := ix.phaseColor[p]
	return c, ok
}

// PhaseFor returns the phase mapped to a color, if any.
func (ix Index) PhaseFor(color string) (domain.Phase, bool) {
	p, ok := ix.colorPhase[color]
	return p, ok
}

// Assign applies color to the selected capabilities, enforcing phase/color
// consistency against the snapshot.
//
// Without override, the operation is phase-scoped: the color spreads to
// every capability sharing a phase with the selection, and conflicting
// assignments are rejected before anything is mutated. With override, the
// checks and the propagation are both bypassed and the color lands on the
// selection alone.
//
// On success the snapshot has been mutated in place and the returned slice
// holds the IDs of every affected capability (selection plus propagated),
// sorted. On conflict the snapshot is untouched.
func Assign(snap *Snapshot, ids []string, color string, override bool) ([]string, error) {
	color, err := domain.NormalizeColor(color)
	if err != nil {
		return nil, err
	}

	selected := make(map[string]bool, len(ids))
	for _, id := range ids {
		selected[id] = true
	}

	if override {
		var affected []string
		for i := range snap.Capabilities {
			if selected[snap.Capabilities[i].ID] {
				snap.Capabilities[i].Color = color
				affected = append(affected, snap.Capabilities[i].ID)
			}
		}
		sort.Strings(affected)
		return affected, nil
	}

	// Distinct phases among the selection.
	phases := make(map[domain.Phase]bool)
	for _, c := range snap.Capabilities {
		if selected[c.ID] && c.Phase != domain.PhaseNone {
			phases[c.Phase] = true
		}
	}

	ix := BuildIndex(*snap)

	if owner, ok := ix.PhaseFor(color); ok && !phases[owner] {
		return nil, ErrColorInUse
	}
	for p := range phases {
		current, ok := ix.ColorFor(p)
		if !ok || current == color {
			continue
		}
		// The phase maps to a different color. Only a conflict if
		// capabilities outside the selection still hold it.
		for _, c := range snap.Capabilities {
			if !selected[c.ID] && c.Phase == p && c.Color == current {
				return nil, ErrPhaseHasColor
			}
		}
	}

	var affected []string
	for i := range snap.Capabilities {
		c := &snap.Capabilities[i]
		if selected[c.ID] || (c.Phase != domain.PhaseNone && phases[c.Phase]) {
			c.Color = color
			affected = append(affected, c.ID)
		}
	}
	sort.Strings(affected)
	return affected, nil
}
