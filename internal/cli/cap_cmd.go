package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/mapwise/capmap/internal/board"
	"github.com/mapwise/capmap/internal/cli/formatter"
	"github.com/mapwise/capmap/internal/domain"
	"github.com/spf13/cobra"
)

func newCapCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cap",
		Short: "Manage capabilities",
	}

	cmd.AddCommand(
		newCapAddCmd(app),
		newCapListCmd(app),
		newCapSetCmd(app),
		newCapColorCmd(app),
		newCapMoveCmd(app),
		newCapRemoveCmd(app),
	)

	return cmd
}

func newCapAddCmd(app *App) *cobra.Command {
	var mapInput, categoryInput, sizeStr, phaseStr, description string

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a capability to a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			mapID, err := resolveMapID(ctx, app, mapInput)
			if err != nil {
				return err
			}
			catID, err := resolveCategoryID(ctx, app, mapID, categoryInput)
			if err != nil {
				return err
			}

			c := &domain.Capability{
				CategoryID:  catID,
				Name:        args[0],
				Description: description,
				Size:        domain.Size(sizeStr),
				Phase:       domain.Phase(phaseStr),
			}
			if err := app.Capabilities.Create(ctx, c); err != nil {
				return err
			}
			fmt.Printf("Added %s %s  %s\n", formatter.SizeBadge(c.Size), formatter.Bold(c.Name), formatter.FormatHours(c.EffectiveHours()))
			return nil
		},
	}

	addMapFlag(cmd.Flags(), &mapInput)
	cmd.Flags().StringVarP(&categoryInput, "category", "c", "", "Category name or ID (required)")
	cmd.Flags().StringVarP(&sizeStr, "size", "s", "tbd", "Size (tbd, xs, s, m, l, xl, xxl, xxxl)")
	cmd.Flags().StringVarP(&phaseStr, "phase", "p", "", "Phase (phase1..phase4, future, out_of_scope)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Capability description")
	cmd.MarkFlagRequired("map")
	cmd.MarkFlagRequired("category")

	return cmd
}

func newCapListCmd(app *App) *cobra.Command {
	var mapInput, categoryInput string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List capabilities on a map",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			mapID, err := resolveMapID(ctx, app, mapInput)
			if err != nil {
				return err
			}
			data, err := app.Maps.LoadBoard(ctx, mapID)
			if err != nil {
				return err
			}

			var onlyCategory string
			if categoryInput != "" {
				onlyCategory, err = resolveCategoryID(ctx, app, mapID, categoryInput)
				if err != nil {
					return err
				}
			}

			catNames := make(map[string]string, len(data.Categories))
			for _, c := range data.Categories {
				catNames[c.ID] = c.Name
			}

			headers := []string{"ID", "Name", "Category", "Size", "Hours", "Phase"}
			var rows [][]string
			for _, c := range data.Capabilities {
				if onlyCategory != "" && c.CategoryID != onlyCategory {
					continue
				}
				rows = append(rows, []string{
					formatter.Dim(c.ID[:8]),
					c.Name,
					catNames[c.CategoryID],
					formatter.SizeBadge(c.Size),
					formatter.FormatHours(c.EffectiveHours()),
					formatter.PhaseDot(c.Phase, c.Color),
				})
			}
			if len(rows) == 0 {
				fmt.Println("No capabilities found.")
				return nil
			}
			fmt.Print(formatter.RenderTable(headers, rows))
			return nil
		},
	}

	addMapFlag(cmd.Flags(), &mapInput)
	cmd.Flags().StringVarP(&categoryInput, "category", "c", "", "Limit to one category")
	cmd.MarkFlagRequired("map")

	return cmd
}

func newCapSetCmd(app *App) *cobra.Command {
	var mapInput, sizeStr, phaseStr, name, description string
	var hoursOverride int
	var clearOverride bool

	cmd := &cobra.Command{
		Use:   "set CAP...",
		Short: "Update fields on one or more capabilities",
		Long: `Update fields on one or more capabilities in a single operation.

A size change recomputes each capability's hours from the map's size
configuration. A phase change adopts the phase's established color when
one exists. An hours override pins the estimate regardless of size.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			mapID, err := resolveMapID(ctx, app, mapInput)
			if err != nil {
				return err
			}
			ids, err := resolveCapabilityIDs(ctx, app, mapID, args)
			if err != nil {
				return err
			}

			var patch domain.CapabilityPatch
			if cmd.Flags().Changed("size") {
				s := domain.Size(sizeStr)
				patch.Size = &s
			}
			if cmd.Flags().Changed("phase") {
				p := domain.Phase(phaseStr)
				patch.Phase = &p
			}
			if cmd.Flags().Changed("name") {
				patch.Name = &name
			}
			if cmd.Flags().Changed("description") {
				patch.Description = &description
			}
			if cmd.Flags().Changed("hours") {
				patch.HoursOverride = &hoursOverride
			}
			if clearOverride {
				patch.ClearHoursOverride = true
			}
			if patch.IsZero() {
				return fmt.Errorf("nothing to change; pass at least one of --size, --phase, --name, --description, --hours, --computed")
			}

			applied, err := app.Bulk.ApplyField(ctx, mapID, ids, patch)
			if err != nil {
				return err
			}

			fmt.Printf("Updated %d capabilities\n", len(ids))
			if applied.Size != nil && applied.Hours != nil {
				fmt.Printf("  %s recomputed to %s each\n", formatter.SizeBadge(*applied.Size), formatter.FormatHours(*applied.Hours))
			}
			if applied.Phase != nil && applied.Color != nil && *applied.Color != "" {
				fmt.Printf("  %s\n", formatter.PhaseDot(*applied.Phase, *applied.Color))
			}
			return nil
		},
	}

	addMapFlag(cmd.Flags(), &mapInput)
	cmd.Flags().StringVarP(&sizeStr, "size", "s", "", "New size")
	cmd.Flags().StringVarP(&phaseStr, "phase", "p", "", "New phase (empty string clears it)")
	cmd.Flags().StringVar(&name, "name", "", "New name (single capability)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "New description")
	cmd.Flags().IntVar(&hoursOverride, "hours", 0, "Pin an hours override")
	cmd.Flags().BoolVar(&clearOverride, "computed", false, "Drop the hours override, back to computed hours")
	cmd.MarkFlagRequired("map")

	return cmd
}

func newCapColorCmd(app *App) *cobra.Command {
	var mapInput string
	var override bool

	cmd := &cobra.Command{
		Use:   "color COLOR CAP...",
		Short: "Assign a phase color to one or more capabilities",
		Long: `Assign a hex color (#rrggbb) to the selected capabilities.

Colors identify phases one-to-one across the map. Coloring part of a
phase recolors the whole phase; reusing another phase's color is
rejected unless --override pins it to just the selection.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			mapID, err := resolveMapID(ctx, app, mapInput)
			if err != nil {
				return err
			}
			ids, err := resolveCapabilityIDs(ctx, app, mapID, args[1:])
			if err != nil {
				return err
			}

			affected, err := app.Bulk.ApplyColor(ctx, mapID, ids, args[0], override)
			if err != nil {
				if errors.Is(err, board.ErrColorInUse) || errors.Is(err, board.ErrPhaseHasColor) {
					return fmt.Errorf("%w (rerun with --override to color only the selection)", err)
				}
				return err
			}

			if len(affected) > len(ids) {
				fmt.Printf("Colored %d capabilities (%d via phase propagation)\n", len(affected), len(affected)-len(ids))
			} else {
				fmt.Printf("Colored %d capabilities\n", len(affected))
			}
			return nil
		},
	}

	addMapFlag(cmd.Flags(), &mapInput)
	cmd.Flags().BoolVar(&override, "override", false, "Color only the selection, skipping consistency rules")
	cmd.MarkFlagRequired("map")

	return cmd
}

func newCapMoveCmd(app *App) *cobra.Command {
	var mapInput, toCategory string

	cmd := &cobra.Command{
		Use:   "move CAP",
		Short: "Move a capability to another category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			mapID, err := resolveMapID(ctx, app, mapInput)
			if err != nil {
				return err
			}
			ids, err := resolveCapabilityIDs(ctx, app, mapID, args)
			if err != nil {
				return err
			}
			catID, err := resolveCategoryID(ctx, app, mapID, toCategory)
			if err != nil {
				return err
			}
			if err := app.Capabilities.Move(ctx, ids[0], catID); err != nil {
				return err
			}
			cat, err := app.Categories.GetByID(ctx, catID)
			if err != nil {
				return err
			}
			fmt.Printf("Moved to %s\n", formatter.Bold(cat.Name))
			return nil
		},
	}

	addMapFlag(cmd.Flags(), &mapInput)
	cmd.Flags().StringVarP(&toCategory, "to", "t", "", "Destination category (required)")
	cmd.MarkFlagRequired("map")
	cmd.MarkFlagRequired("to")

	return cmd
}

func newCapRemoveCmd(app *App) *cobra.Command {
	var mapInput string

	cmd := &cobra.Command{
		Use:   "remove CAP...",
		Short: "Delete one or more capabilities",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			mapID, err := resolveMapID(ctx, app, mapInput)
			if err != nil {
				return err
			}
			ids, err := resolveCapabilityIDs(ctx, app, mapID, args)
			if err != nil {
				return err
			}
			for _, id := range ids {
				if err := app.Capabilities.Delete(ctx, id); err != nil {
					return err
				}
			}
			label := "capability"
			if len(ids) > 1 {
				label = "capabilities"
			}
			fmt.Printf("Deleted %d %s\n", len(ids), label)
			return nil
		},
	}

	addMapFlag(cmd.Flags(), &mapInput)
	cmd.MarkFlagRequired("map")

	return cmd
}
