package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/mapwise/capmap/internal/board"
	"github.com/mapwise/capmap/internal/domain"
)

// The board's bulk mutations all follow the same shape: collect input in
// a wizard, persist through the coordinator, then mirror the confirmed
// change back into board state via a message. Nothing touches the board
// until storage has accepted the write.

func targetLabel(n int) string {
	if n == 1 {
		return "1 capability"
	}
	return fmt.Sprintf("%d capabilities", n)
}

func newBulkSizeForm(state *SharedState, mapID string, ids []string) View {
	var sizeStr string

	form := huh.NewForm(
		huh.NewGroup(
			sizeSelect(fmt.Sprintf("Size for %s", targetLabel(len(ids))), &sizeStr),
		),
	).WithTheme(capmapHuhTheme()).WithShowHelp(false)

	done := func() tea.Cmd {
		app := state.App
		return func() tea.Msg {
			size := domain.Size(sizeStr)
			applied, err := app.Bulk.ApplyField(context.Background(), mapID, ids,
				domain.CapabilityPatch{Size: &size})
			if err != nil {
				return statusMsg{text: err.Error(), isErr: true}
			}
			label := fmt.Sprintf("Sized %s as %s", targetLabel(len(ids)), size.DisplayName())
			return bulkAppliedMsg{ids: ids, patch: applied, label: label}
		}
	}

	return newWizardView(state, "Set Size", form, done)
}

func newBulkPhaseForm(state *SharedState, mapID string, ids []string) View {
	var phaseStr string

	form := huh.NewForm(
		huh.NewGroup(
			phaseSelect(fmt.Sprintf("Phase for %s", targetLabel(len(ids))), &phaseStr),
		),
	).WithTheme(capmapHuhTheme()).WithShowHelp(false)

	done := func() tea.Cmd {
		app := state.App
		return func() tea.Msg {
			phase := domain.Phase(phaseStr)
			applied, err := app.Bulk.ApplyField(context.Background(), mapID, ids,
				domain.CapabilityPatch{Phase: &phase})
			if err != nil {
				return statusMsg{text: err.Error(), isErr: true}
			}
			label := fmt.Sprintf("Phased %s", targetLabel(len(ids)))
			if phase == domain.PhaseNone {
				label = fmt.Sprintf("Cleared phase on %s", targetLabel(len(ids)))
			}
			return bulkAppliedMsg{ids: ids, patch: applied, label: label}
		}
	}

	return newWizardView(state, "Set Phase", form, done)
}

func newColorForm(state *SharedState, mapID string, ids []string) View {
	var colorStr string
	var override bool

	form := huh.NewForm(
		huh.NewGroup(
			colorInput(fmt.Sprintf("Color for %s", targetLabel(len(ids))), &colorStr),
			huh.NewConfirm().
				Title("Override consistency rules?").
				Description("Colors the selection only, ignoring phase/color pairing").
				Value(&override),
		),
	).WithTheme(capmapHuhTheme()).WithShowHelp(false)

	done := func() tea.Cmd {
		app := state.App
		return func() tea.Msg {
			normalized, err := domain.NormalizeColor(colorStr)
			if err != nil {
				return statusMsg{text: err.Error(), isErr: true}
			}
			affected, err := app.Bulk.ApplyColor(context.Background(), mapID, ids, normalized, override)
			if err != nil {
				text := err.Error()
				if errors.Is(err, board.ErrColorInUse) || errors.Is(err, board.ErrPhaseHasColor) {
					text += " (retry with override to color only the selection)"
				}
				return statusMsg{text: text, isErr: true}
			}
			return colorAppliedMsg{affected: affected, color: normalized}
		}
	}

	return newWizardView(state, "Set Color", form, done)
}

func newHoursForm(state *SharedState, mapID string, ids []string) View {
	var hoursStr string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(fmt.Sprintf("Hours override for %s", targetLabel(len(ids)))).
				Description("Blank drops the override, back to computed hours").
				Placeholder("40").
				Value(&hoursStr).
				Validate(validateOptionalInt),
		),
	).WithTheme(capmapHuhTheme()).WithShowHelp(false)

	done := func() tea.Cmd {
		app := state.App
		return func() tea.Msg {
			var patch domain.CapabilityPatch
			var label string
			if strings.TrimSpace(hoursStr) == "" {
				patch.ClearHoursOverride = true
				label = fmt.Sprintf("Cleared override on %s", targetLabel(len(ids)))
			} else {
				hours, _ := strconv.Atoi(strings.TrimSpace(hoursStr))
				patch.HoursOverride = &hours
				label = fmt.Sprintf("Pinned %s at %dh", targetLabel(len(ids)), hours)
			}
			applied, err := app.Bulk.ApplyField(context.Background(), mapID, ids, patch)
			if err != nil {
				return statusMsg{text: err.Error(), isErr: true}
			}
			return bulkAppliedMsg{ids: ids, patch: applied, label: label}
		}
	}

	return newWizardView(state, "Set Hours", form, done)
}

func newSizeFilterForm(state *SharedState, f board.Filters) View {
	var chipSizes, hiddenSizes []string

	sizeOptions := func(active map[domain.Size]bool) []huh.Option[string] {
		opts := make([]huh.Option[string], 0, len(domain.SizeOrder))
		for _, s := range domain.SizeOrder {
			opts = append(opts, huh.NewOption(s.DisplayName(), string(s)).Selected(active[s]))
		}
		return opts
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Highlight sizes").
				Description("Matching tiles stay bright, the rest dim").
				Options(sizeOptions(f.SizeChips)...).
				Value(&chipSizes),
			huh.NewMultiSelect[string]().
				Title("Hide sizes").
				Description("Matching tiles leave the board entirely").
				Options(sizeOptions(f.ExcludedSizes)...).
				Value(&hiddenSizes),
		),
	).WithTheme(capmapHuhTheme()).WithShowHelp(false)

	done := func() tea.Cmd {
		return func() tea.Msg {
			chips := make(map[domain.Size]bool, len(chipSizes))
			for _, s := range chipSizes {
				chips[domain.Size(s)] = true
			}
			hidden := make(map[domain.Size]bool, len(hiddenSizes))
			for _, s := range hiddenSizes {
				hidden[domain.Size(s)] = true
			}
			return sizeFiltersMsg{chips: chips, excluded: hidden}
		}
	}

	return newWizardView(state, "Size Filters", form, done)
}

func newMoveForm(state *SharedState, snap board.Snapshot, ids []string) View {
	var categoryID string

	options := make([]huh.Option[string], 0, len(snap.Categories))
	for _, c := range snap.Categories {
		label := c.Name
		if c.Subcategory {
			label = "· " + label
		}
		options = append(options, huh.NewOption(label, c.ID))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(fmt.Sprintf("Move %s to", targetLabel(len(ids)))).
				Options(options...).
				Value(&categoryID),
		),
	).WithTheme(capmapHuhTheme()).WithShowHelp(false)

	done := func() tea.Cmd {
		app := state.App
		return func() tea.Msg {
			ctx := context.Background()
			for _, id := range ids {
				if err := app.Capabilities.Move(ctx, id, categoryID); err != nil {
					return statusMsg{text: err.Error(), isErr: true}
				}
			}
			return capsMovedMsg{ids: ids, categoryID: categoryID}
		}
	}

	return newWizardView(state, "Move", form, done)
}

func newDeleteConfirmForm(state *SharedState, ids []string) View {
	var confirmed bool

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete %s?", targetLabel(len(ids)))).
				Affirmative("Delete").
				Negative("Keep").
				Value(&confirmed),
		),
	).WithTheme(capmapHuhTheme()).WithShowHelp(false)

	done := func() tea.Cmd {
		app := state.App
		return func() tea.Msg {
			if !confirmed {
				return statusMsg{text: "Kept."}
			}
			ctx := context.Background()
			for _, id := range ids {
				if err := app.Capabilities.Delete(ctx, id); err != nil {
					return statusMsg{text: err.Error(), isErr: true}
				}
			}
			return capsDeletedMsg{ids: ids}
		}
	}

	return newWizardView(state, "Delete", form, done)
}

func newAddCapabilityForm(state *SharedState, snap board.Snapshot, categoryID string) View {
	var name, sizeStr, phaseStr string
	sizeStr = string(domain.SizeTBD)

	options := make([]huh.Option[string], 0, len(snap.Categories))
	for _, c := range snap.Categories {
		label := c.Name
		if c.Subcategory {
			label = "· " + label
		}
		options = append(options, huh.NewOption(label, c.ID))
	}
	if categoryID == "" && len(snap.Categories) > 0 {
		categoryID = snap.Categories[0].ID
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&name).
				Validate(validateRequired),
			huh.NewSelect[string]().
				Title("Category").
				Options(options...).
				Value(&categoryID),
			sizeSelect("Size", &sizeStr),
			phaseSelect("Phase", &phaseStr),
		),
	).WithTheme(capmapHuhTheme()).WithShowHelp(false)

	done := func() tea.Cmd {
		app := state.App
		return func() tea.Msg {
			c := domain.Capability{
				CategoryID: categoryID,
				Name:       strings.TrimSpace(name),
				Size:       domain.Size(sizeStr),
				Phase:      domain.Phase(phaseStr),
			}
			if err := app.Capabilities.Create(context.Background(), &c); err != nil {
				return statusMsg{text: err.Error(), isErr: true}
			}
			return capAddedMsg{cap: c}
		}
	}

	return newWizardView(state, "Add Capability", form, done)
}
