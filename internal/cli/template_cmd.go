package cli

import (
	"context"
	"fmt"

	"github.com/mapwise/capmap/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newTemplateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Browse and apply board templates",
	}

	cmd.AddCommand(
		newTemplateListCmd(app),
		newTemplateShowCmd(app),
		newTemplateApplyCmd(app),
	)

	return cmd
}

func newTemplateListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			templates, err := app.Templates.List(context.Background())
			if err != nil {
				return err
			}

			if len(templates) == 0 {
				fmt.Println("No templates found.")
				return nil
			}

			headers := []string{"Name", "Description"}
			rows := make([][]string, 0, len(templates))
			for _, t := range templates {
				rows = append(rows, []string{t.Name, t.Description})
			}

			fmt.Print(formatter.RenderTable(headers, rows))
			return nil
		},
	}
}

func newTemplateShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show NAME",
		Short: "Show template details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := app.Templates.Get(context.Background(), args[0])
			if err != nil {
				return err
			}

			fmt.Println(formatter.Header("Template"))
			fmt.Printf("  Name:        %s\n", formatter.Bold(t.Name))
			fmt.Printf("  ID:          %s\n", t.ID)
			if t.Description != "" {
				fmt.Printf("  Description: %s\n", t.Description)
			}
			fmt.Printf("  Source:      %s\n", formatter.Dim(t.Path))

			return nil
		},
	}
}

func newTemplateApplyCmd(app *App) *cobra.Command {
	var mapInput string

	cmd := &cobra.Command{
		Use:   "apply NAME",
		Short: "Apply a template's categories and capabilities to a map",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			mapID, err := resolveMapID(ctx, app, mapInput)
			if err != nil {
				return err
			}

			before, err := app.Maps.LoadBoard(ctx, mapID)
			if err != nil {
				return err
			}

			after, err := app.Templates.Apply(ctx, mapID, args[0])
			if err != nil {
				return err
			}

			fmt.Printf("Applied %s to %s\n", formatter.Bold(args[0]), after.Map.Name)
			fmt.Printf("  +%d categories, +%d capabilities\n",
				len(after.Categories)-len(before.Categories),
				len(after.Capabilities)-len(before.Capabilities))
			return nil
		},
	}

	addMapFlag(cmd.Flags(), &mapInput)
	cmd.MarkFlagRequired("map")

	return cmd
}
