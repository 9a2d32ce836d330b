package catalog

import (
	"github.com/spf13/cobra"

	"github.com/devcat-io/devcat/cmd/catalog/reset"
	"github.com/devcat-io/devcat/cmd/catalog/setdefault"
	"github.com/devcat-io/devcat/cmd/catalog/show"
	"github.com/devcat-io/devcat/internal/runtime"
)

func New(runtimeContext *runtime.Context) *cobra.Command {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Shows and configures which catalog devcat uses",
		Long: `Shows and configures the catalog that list, validate and install use when no --catalog is given.

The selection order is: --catalog flag, DEVCAT_CATALOG_URL, DEVCAT_DEFAULT_CATALOG_URL,
the defaultCatalog entry of ~/.devcat/config.yaml, and finally the built-in catalog.`,
	}

	catalogCmd.AddCommand(show.New(runtimeContext))
	catalogCmd.AddCommand(setdefault.New(runtimeContext))
	catalogCmd.AddCommand(reset.New(runtimeContext))

	return catalogCmd
}
