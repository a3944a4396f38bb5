package cli

import "github.com/mapwise/capmap/internal/domain"

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	App *App

	// The map open in this session.
	Map *domain.Map

	// Terminal dimensions
	Width  int
	Height int
}

// MapName returns the open map's name, or a placeholder before load.
func (s *SharedState) MapName() string {
	if s.Map != nil {
		return s.Map.Name
	}
	return "(loading)"
}

// ContentHeight returns the available height for view content,
// accounting for the header (2 lines) and status bar (2 lines).
func (s *SharedState) ContentHeight() int {
	h := s.Height - 4
	if h < 1 {
		return 1
	}
	return h
}
