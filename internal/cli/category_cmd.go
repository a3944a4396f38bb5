package cli

import (
	"context"
	"fmt"

	"github.com/mapwise/capmap/internal/cli/formatter"
	"github.com/mapwise/capmap/internal/domain"
	"github.com/spf13/cobra"
)

func newCategoryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Manage board categories",
	}

	cmd.AddCommand(
		newCategoryAddCmd(app),
		newCategoryListCmd(app),
		newCategoryRenameCmd(app),
		newCategoryMoveCmd(app),
		newCategoryRemoveCmd(app),
	)

	return cmd
}

func newCategoryAddCmd(app *App) *cobra.Command {
	var mapInput string
	var subcategory bool

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a category column to a map",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			mapID, err := resolveMapID(ctx, app, mapInput)
			if err != nil {
				return err
			}

			c := &domain.Category{
				MapID:       mapID,
				Name:        args[0],
				Subcategory: subcategory,
			}
			if err := app.Categories.Create(ctx, c); err != nil {
				return err
			}
			kind := "category"
			if subcategory {
				kind = "subcategory"
			}
			fmt.Printf("Added %s %s\n", kind, formatter.Bold(c.Name))
			return nil
		},
	}

	addMapFlag(cmd.Flags(), &mapInput)
	cmd.Flags().BoolVar(&subcategory, "sub", false, "Create as an indented subcategory")
	cmd.MarkFlagRequired("map")

	return cmd
}

func newCategoryListCmd(app *App) *cobra.Command {
	var mapInput string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a map's categories in board order",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			mapID, err := resolveMapID(ctx, app, mapInput)
			if err != nil {
				return err
			}
			cats, err := app.Categories.ListByMap(ctx, mapID)
			if err != nil {
				return err
			}
			if len(cats) == 0 {
				fmt.Println("No categories yet.")
				return nil
			}

			headers := []string{"#", "Name", "Kind", "ID"}
			rows := make([][]string, 0, len(cats))
			for _, c := range cats {
				kind := "category"
				if c.Subcategory {
					kind = "subcategory"
				}
				rows = append(rows, []string{
					fmt.Sprintf("%d", c.SortOrder),
					c.Name,
					kind,
					formatter.Dim(c.ID[:8]),
				})
			}
			fmt.Print(formatter.RenderTable(headers, rows))
			return nil
		},
	}

	addMapFlag(cmd.Flags(), &mapInput)
	cmd.MarkFlagRequired("map")

	return cmd
}

func newCategoryRenameCmd(app *App) *cobra.Command {
	var mapInput string

	cmd := &cobra.Command{
		Use:   "rename CATEGORY NEW_NAME",
		Short: "Rename a category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			mapID, err := resolveMapID(ctx, app, mapInput)
			if err != nil {
				return err
			}
			catID, err := resolveCategoryID(ctx, app, mapID, args[0])
			if err != nil {
				return err
			}
			c, err := app.Categories.GetByID(ctx, catID)
			if err != nil {
				return err
			}
			old := c.Name
			c.Name = args[1]
			if err := app.Categories.Update(ctx, c); err != nil {
				return err
			}
			fmt.Printf("Renamed %s to %s\n", old, formatter.Bold(c.Name))
			return nil
		},
	}

	addMapFlag(cmd.Flags(), &mapInput)
	cmd.MarkFlagRequired("map")

	return cmd
}

func newCategoryMoveCmd(app *App) *cobra.Command {
	var mapInput string
	var position int

	cmd := &cobra.Command{
		Use:   "move CATEGORY",
		Short: "Reposition a category column on the board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			mapID, err := resolveMapID(ctx, app, mapInput)
			if err != nil {
				return err
			}
			catID, err := resolveCategoryID(ctx, app, mapID, args[0])
			if err != nil {
				return err
			}
			if position < 0 {
				return fmt.Errorf("position must be zero or greater, got %d", position)
			}
			if err := app.Categories.Move(ctx, catID, position); err != nil {
				return err
			}
			c, err := app.Categories.GetByID(ctx, catID)
			if err != nil {
				return err
			}
			fmt.Printf("Moved %s to position %d\n", formatter.Bold(c.Name), c.SortOrder)
			return nil
		},
	}

	addMapFlag(cmd.Flags(), &mapInput)
	cmd.Flags().IntVar(&position, "to", 0, "Zero-based board position (required)")
	cmd.MarkFlagRequired("map")
	cmd.MarkFlagRequired("to")

	return cmd
}

func newCategoryRemoveCmd(app *App) *cobra.Command {
	var mapInput string
	var force bool

	cmd := &cobra.Command{
		Use:   "remove CATEGORY",
		Short: "Delete a category and its capabilities",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			mapID, err := resolveMapID(ctx, app, mapInput)
			if err != nil {
				return err
			}
			catID, err := resolveCategoryID(ctx, app, mapID, args[0])
			if err != nil {
				return err
			}
			c, err := app.Categories.GetByID(ctx, catID)
			if err != nil {
				return err
			}
			caps, err := app.Capabilities.ListByCategory(ctx, catID)
			if err != nil {
				return err
			}
			if len(caps) > 0 && !force {
				return fmt.Errorf("category %q holds %d capabilities; pass --force to delete them too", c.Name, len(caps))
			}
			if err := app.Categories.Delete(ctx, catID); err != nil {
				return err
			}
			fmt.Printf("Deleted category %s (%d capabilities)\n", formatter.Bold(c.Name), len(caps))
			return nil
		},
	}

	addMapFlag(cmd.Flags(), &mapInput)
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Delete even when the category is not empty")
	cmd.MarkFlagRequired("map")

	return cmd
}
