package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/mapwise/capmap/internal/board"
	"github.com/mapwise/capmap/internal/domain"
	"github.com/mapwise/capmap/internal/repository"
)

type bulkService struct {
	maps repository.MapRepo
	caps repository.CapabilityRepo
}

func NewBulkService(maps repository.MapRepo, caps repository.CapabilityRepo) BulkService {
	return &bulkService{maps: maps, caps: caps}
}

func (s *bulkService) ApplyField(ctx context.Context, mapID string, ids []string, patch domain.CapabilityPatch) (domain.CapabilityPatch, error) {
	if len(ids) == 0 {
		return patch, fmt.Errorf("no capabilities selected")
	}
	if err := patch.Validate(); err != nil {
		return patch, err
	}
	if patch.Color != nil && *patch.Color != "" {
		normalized, err := domain.NormalizeColor(*patch.Color)
		if err != nil {
			return patch, err
		}
		patch.Color = &normalized
	}

	// A size change recomputes the derived hours from the map's
	// size→hours configuration. Overrides are stored separately and
	// keep winning at display time.
	if patch.Size != nil {
		m, err := s.maps.GetByID(ctx, mapID)
		if err != nil {
			return patch, err
		}
		hours := m.HoursFor(*patch.Size)
		patch.Hours = &hours
	}

	// A phase change adopts the phase's established color, when the
	// phase already has one.
	if patch.Phase != nil && *patch.Phase != domain.PhaseNone && patch.Color == nil {
		snap, err := s.loadSnapshot(ctx, mapID)
		if err != nil {
			return patch, err
		}
		if color, ok := board.BuildIndex(snap).ColorFor(*patch.Phase); ok {
			patch.Color = &color
		}
	}

	if err := s.caps.BulkUpdate(ctx, ids, patch); err != nil {
		return patch, err
	}
	return patch, nil
}

func (s *bulkService) ApplyColor(ctx context.Context, mapID string, ids []string, color string, override bool) ([]string, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("no capabilities selected")
	}
	snap, err := s.loadSnapshot(ctx, mapID)
	if err != nil {
		return nil, err
	}

	affected, err := board.Assign(&snap, ids, color, override)
	if err != nil {
		return nil, err
	}

	normalized, err := domain.NormalizeColor(color)
	if err != nil {
		return nil, err
	}
	if err := s.caps.BulkUpdate(ctx, affected, domain.CapabilityPatch{Color: &normalized}); err != nil {
		return nil, err
	}

	// A non-override assignment claims the color for the selection's
	// phases; record that on the map so the pairing survives even when
	// every capability in the phase is later deleted.
	if !override {
		if err := s.recordPhaseColors(ctx, mapID, snap, ids, normalized); err != nil {
			return nil, err
		}
	}
	return affected, nil
}

func (s *bulkService) recordPhaseColors(ctx context.Context, mapID string, snap board.Snapshot, ids []string, color string) error {
	phases := make(map[domain.Phase]bool)
	for _, id := range ids {
		if c := snap.Capability(id); c != nil && c.Phase != domain.PhaseNone {
			phases[c.Phase] = true
		}
	}
	if len(phases) == 0 {
		return nil
	}

	m, err := s.maps.GetByID(ctx, mapID)
	if err != nil {
		return err
	}
	if m.PhaseColors == nil {
		m.PhaseColors = make(map[domain.Phase]string, len(phases))
	}
	for p := range phases {
		m.PhaseColors[p] = color
	}
	m.UpdatedAt = time.Now().UTC()
	return s.maps.Update(ctx, m)
}

func (s *bulkService) SaveColors(ctx context.Context, colorsByID map[string]string) error {
	// One update per distinct color; each is independently all-or-nothing.
	byColor := make(map[string][]string)
	for id, color := range colorsByID {
		normalized, err := domain.NormalizeColor(color)
		if err != nil {
			return fmt.Errorf("capability %s: %w", id, err)
		}
		byColor[normalized] = append(byColor[normalized], id)
	}

	colors := make([]string, 0, len(byColor))
	for color := range byColor {
		colors = append(colors, color)
	}
	sort.Strings(colors)

	for _, color := range colors {
		ids := byColor[color]
		sort.Strings(ids)
		c := color
		if err := s.caps.BulkUpdate(ctx, ids, domain.CapabilityPatch{Color: &c}); err != nil {
			return fmt.Errorf("saving color %s: %w", color, err)
		}
	}
	return nil
}

func (s *bulkService) loadSnapshot(ctx context.Context, mapID string) (board.Snapshot, error) {
	caps, err := s.caps.ListByMap(ctx, mapID)
	if err != nil {
		return board.Snapshot{}, err
	}
	snap := board.Snapshot{Capabilities: make([]domain.Capability, 0, len(caps))}
	for _, c := range caps {
		snap.Capabilities = append(snap.Capabilities, *c)
	}
	return snap, nil
}
