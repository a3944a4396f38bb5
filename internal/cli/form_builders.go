package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/mapwise/capmap/internal/cli/formatter"
	"github.com/mapwise/capmap/internal/domain"
)

// capmapHuhTheme returns a custom huh theme using the existing Gruvbox palette.
func capmapHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// sizeSelect builds a huh select listing every size in scale order.
func sizeSelect(title string, value *string) *huh.Select[string] {
	options := make([]huh.Option[string], 0, len(domain.SizeOrder))
	for _, s := range domain.SizeOrder {
		options = append(options, huh.NewOption(s.DisplayName(), string(s)))
	}
	return huh.NewSelect[string]().
		Title(title).
		Options(options...).
		Value(value)
}

// phaseSelect builds a huh select over all phases plus "no phase".
func phaseSelect(title string, value *string) *huh.Select[string] {
	options := []huh.Option[string]{huh.NewOption("No phase", "")}
	for _, p := range domain.PhaseOrder {
		options = append(options, huh.NewOption(p.DisplayName(), string(p)))
	}
	return huh.NewSelect[string]().
		Title(title).
		Options(options...).
		Value(value)
}

// colorInput builds a huh input for a #rrggbb hex color.
func colorInput(title string, value *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		Placeholder("#5b8def").
		Value(value).
		Validate(validateHexColor)
}

func validateHexColor(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("enter a color")
	}
	_, err := domain.NormalizeColor(s)
	return err
}

func validateRequired(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("this field is required")
	}
	return nil
}

// validateOptionalInt accepts blank or a non-negative integer.
func validateOptionalInt(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return fmt.Errorf("enter a non-negative whole number")
	}
	return nil
}
