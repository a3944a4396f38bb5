package cli

import (
	"github.com/mapwise/capmap/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Maps         service.MapService
	Categories   service.CategoryService
	Capabilities service.CapabilityService
	Bulk         service.BulkService
	Templates    service.TemplateService
}

// NewRootCmd creates the top-level "capmap" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "capmap",
		Short: "Capability mapping and estimation board",
	}

	root.AddCommand(
		newMapCmd(app),
		newCategoryCmd(app),
		newCapCmd(app),
		newTemplateCmd(app),
		newBoardCmd(app),
	)

	return root
}
