package cli

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mapwise/capmap/internal/board"
	"github.com/mapwise/capmap/internal/cli/formatter"
	"github.com/mapwise/capmap/internal/domain"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

func newBoardCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board MAP",
		Short: "Open the interactive board for a map",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
				return fmt.Errorf("the interactive board needs a terminal; try: capmap board show %s", args[0])
			}

			ctx := context.Background()
			mapID, err := resolveMapID(ctx, app, args[0])
			if err != nil {
				return err
			}

			m := newAppModel(app, mapID)
			p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
			_, err = p.Run()
			return err
		},
	}

	cmd.AddCommand(newBoardShowCmd(app))

	return cmd
}

func newBoardShowCmd(app *App) *cobra.Command {
	var mode, search string
	var excludeSizes []string

	cmd := &cobra.Command{
		Use:   "show MAP",
		Short: "Print the board without entering the TUI",
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

			f := board.NewFilters()
			f.Search = search
			switch board.ViewMode(mode) {
			case board.ViewAll, board.ViewSized, board.ViewTBD:
				f.Mode = board.ViewMode(mode)
			default:
				return fmt.Errorf("unknown view mode %q (all, sized, tbd)", mode)
			}
			for _, s := range excludeSizes {
				size := domain.Size(s)
				if !domain.ValidSizes[size] {
					return fmt.Errorf("unknown size %q", s)
				}
				f.ExcludedSizes[size] = true
			}

			view := board.Build(boardSnapshot(data), f, nil)
			fmt.Println(formatter.RenderBoard(data.Map, view))
			return nil
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "all", "View mode: all, sized, tbd")
	cmd.Flags().StringVar(&search, "search", "", "Filter capabilities by name substring")
	cmd.Flags().StringSliceVar(&excludeSizes, "exclude-size", nil, "Sizes to hide (repeatable)")

	return cmd
}
