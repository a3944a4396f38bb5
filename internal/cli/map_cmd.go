package cli

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/mapwise/capmap/internal/cli/formatter"
	"github.com/mapwise/capmap/internal/domain"
	"github.com/spf13/cobra"
)

func newMapCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "map",
		Short: "Manage capability maps",
	}

	cmd.AddCommand(
		newMapCreateCmd(app),
		newMapListCmd(app),
		newMapShowCmd(app),
		newMapHoursCmd(app),
		newMapRemoveCmd(app),
	)

	return cmd
}

func newMapCreateCmd(app *App) *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a new capability map",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m := &domain.Map{
				Name:        args[0],
				Description: description,
				SizeHours:   domain.DefaultSizeHours(),
			}
			if err := app.Maps.Create(context.Background(), m); err != nil {
				return err
			}
			fmt.Printf("Created map %s (%s)\n", formatter.Bold(m.Name), m.DisplayID())
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "Map description")

	return cmd
}

func newMapListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List capability maps",
		RunE: func(cmd *cobra.Command, args []string) error {
			maps, err := app.Maps.List(context.Background())
			if err != nil {
				return err
			}
			if len(maps) == 0 {
				fmt.Println("No maps yet. Create one with: capmap map create NAME")
				return nil
			}

			headers := []string{"ID", "Name", "Description"}
			rows := make([][]string, 0, len(maps))
			for _, m := range maps {
				rows = append(rows, []string{m.DisplayID(), m.Name, m.Description})
			}
			fmt.Print(formatter.RenderTable(headers, rows))
			return nil
		},
	}
}

func newMapShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show MAP",
		Short: "Show a map's configuration and contents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			mapID, err := resolveMapID(ctx, app, args[0])
			if err != nil {
				return err
			}
			data, err := app.Maps.LoadBoard(ctx, mapID)
			if err != nil {
				return err
			}
			m := data.Map

			fmt.Println(formatter.Header("Map"))
			fmt.Printf("  Name:        %s\n", formatter.Bold(m.Name))
			fmt.Printf("  ID:          %s\n", m.ID)
			if m.Description != "" {
				fmt.Printf("  Description: %s\n", m.Description)
			}
			fmt.Printf("  Categories:  %d\n", len(data.Categories))
			fmt.Printf("  Capabilities: %d\n", len(data.Capabilities))

			fmt.Println()
			fmt.Println(formatter.Header("Size Hours"))
			for _, size := range domain.SizeOrder {
				fmt.Printf("  %s %s\n", formatter.SizeBadge(size), formatter.FormatHours(m.HoursFor(size)))
			}

			if len(m.PhaseColors) > 0 {
				fmt.Println()
				fmt.Println(formatter.Header("Phase Colors"))
				phases := make([]domain.Phase, 0, len(m.PhaseColors))
				for p := range m.PhaseColors {
					phases = append(phases, p)
				}
				sort.Slice(phases, func(i, j int) bool { return phases[i] < phases[j] })
				for _, p := range phases {
					fmt.Printf("  %s  %s\n", formatter.PhaseDot(p, m.PhaseColors[p]), formatter.Dim(m.PhaseColors[p]))
				}
			}

			if len(data.AppliedTemplates) > 0 {
				fmt.Println()
				fmt.Println(formatter.Header("Applied Templates"))
				for _, at := range data.AppliedTemplates {
					fmt.Printf("  %s %s\n", at.TemplateID, formatter.Dim(at.AppliedAt.Format("2006-01-02")))
				}
			}

			return nil
		},
	}
}

func newMapHoursCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "hours MAP SIZE HOURS",
		Short: "Set the computed hours for a size on a map",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			mapID, err := resolveMapID(ctx, app, args[0])
			if err != nil {
				return err
			}

			size := domain.Size(args[1])
			if !domain.ValidSizes[size] {
				return fmt.Errorf("unknown size %q", args[1])
			}
			hours, err := strconv.Atoi(args[2])
			if err != nil || hours < 0 {
				return fmt.Errorf("hours must be a non-negative integer, got %q", args[2])
			}

			m, err := app.Maps.GetByID(ctx, mapID)
			if err != nil {
				return err
			}
			if m.SizeHours == nil {
				m.SizeHours = domain.DefaultSizeHours()
			}
			m.SizeHours[size] = hours
			if err := app.Maps.Update(ctx, m); err != nil {
				return err
			}

			fmt.Printf("%s now maps to %s on %s\n", formatter.SizeBadge(size), formatter.FormatHours(hours), formatter.Bold(m.Name))
			fmt.Println(formatter.Dim("Existing capabilities keep their stored hours until resized."))
			return nil
		},
	}
}

func newMapRemoveCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "remove MAP",
		Short: "Delete a map and everything on it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			mapID, err := resolveMapID(ctx, app, args[0])
			if err != nil {
				return err
			}
			m, err := app.Maps.GetByID(ctx, mapID)
			if err != nil {
				return err
			}
			if !force {
				return fmt.Errorf("refusing to delete %q without --force (removes all categories and capabilities)", m.Name)
			}
			if err := app.Maps.Delete(ctx, mapID); err != nil {
				return err
			}
			fmt.Printf("Deleted map %s\n", formatter.Bold(m.Name))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation")

	return cmd
}
