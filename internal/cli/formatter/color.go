package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mapwise/capmap/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// SizeStyle returns the lipgloss style for a capability size: cool colors
// for small work, hot colors for large, dim for TBD.
func SizeStyle(size domain.Size) lipgloss.Style {
	switch size {
	case domain.SizeXS, domain.SizeS:
		return StyleGreen
	case domain.SizeM, domain.SizeL:
		return StyleBlue
	case domain.SizeXL, domain.SizeXXL:
		return StyleYellow
	case domain.SizeXXXL:
		return StyleRed
	default:
		return StyleDim
	}
}

// SizeBadge renders a fixed-width colored badge such as "[XL ]".
func SizeBadge(size domain.Size) string {
	label := size.DisplayName()
	if label == "" || size == domain.SizeTBD {
		label = "TBD"
	}
	return SizeStyle(size).Render(fmt.Sprintf("[%-4s]", label))
}

// PhaseDot renders a "●" in the given hex color followed by the phase
// label. An empty hex falls back to the dim style; an unphased capability
// yields just a dim dash.
func PhaseDot(phase domain.Phase, hex string) string {
	if phase == domain.PhaseNone {
		return StyleDim.Render("–")
	}
	dot := "●"
	if hex != "" {
		dot = lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render(dot)
	} else {
		dot = StyleDim.Render(dot)
	}
	return dot + " " + phase.DisplayName()
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
