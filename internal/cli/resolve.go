package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/mapwise/capmap/internal/board"
	"github.com/mapwise/capmap/internal/domain"
	"github.com/mapwise/capmap/internal/service"
)

// resolveMapID resolves user input to a map ID. Matching order: exact
// name (case-insensitive), exact UUID, UUID prefix. A prefix matching
// more than one map is rejected rather than guessed at.
func resolveMapID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("map name or ID is required")
	}

	maps, err := app.Maps.List(ctx)
	if err != nil {
		return "", err
	}

	for _, m := range maps {
		if strings.EqualFold(m.Name, input) {
			return m.ID, nil
		}
	}

	for _, m := range maps {
		if m.ID == input {
			return m.ID, nil
		}
	}

	var matches []string
	for _, m := range maps {
		if strings.HasPrefix(m.ID, input) {
			matches = append(matches, m.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("map not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("map ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolveCategoryID resolves user input to a category within a map, by
// exact name (case-insensitive), exact ID, or ID prefix.
func resolveCategoryID(ctx context.Context, app *App, mapID, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("category name or ID is required")
	}

	cats, err := app.Categories.ListByMap(ctx, mapID)
	if err != nil {
		return "", err
	}

	for _, c := range cats {
		if strings.EqualFold(c.Name, input) {
			return c.ID, nil
		}
	}

	for _, c := range cats {
		if c.ID == input {
			return c.ID, nil
		}
	}

	var matches []string
	for _, c := range cats {
		if strings.HasPrefix(c.ID, input) {
			matches = append(matches, c.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("category not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("category prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolveCapabilityIDs resolves each input against the map's capabilities
// by exact name (case-insensitive, unique), exact ID, or ID prefix.
func resolveCapabilityIDs(ctx context.Context, app *App, mapID string, inputs []string) ([]string, error) {
	data, err := app.Maps.LoadBoard(ctx, mapID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(inputs))
	for _, input := range inputs {
		id, err := matchCapability(data.Capabilities, input)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func matchCapability(caps []*domain.Capability, input string) (string, error) {
	var nameMatches []string
	for _, c := range caps {
		if strings.EqualFold(c.Name, input) {
			nameMatches = append(nameMatches, c.ID)
		}
	}
	if len(nameMatches) == 1 {
		return nameMatches[0], nil
	}
	if len(nameMatches) > 1 {
		return "", fmt.Errorf("capability name %q is ambiguous (%d matches)", input, len(nameMatches))
	}

	for _, c := range caps {
		if c.ID == input {
			return c.ID, nil
		}
	}

	var matches []string
	for _, c := range caps {
		if strings.HasPrefix(c.ID, input) {
			matches = append(matches, c.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("capability not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("capability prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

// boardSnapshot converts a load result into the in-memory board form.
func boardSnapshot(data *service.BoardData) board.Snapshot {
	snap := board.Snapshot{
		Categories:   make([]domain.Category, 0, len(data.Categories)),
		Capabilities: make([]domain.Capability, 0, len(data.Capabilities)),
	}
	for _, c := range data.Categories {
		snap.Categories = append(snap.Categories, *c)
	}
	for _, c := range data.Capabilities {
		snap.Capabilities = append(snap.Capabilities, *c)
	}
	return snap
}
