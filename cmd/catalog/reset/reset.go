package reset

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/devcat-io/devcat/internal/catalogconfig"
	"github.com/devcat-io/devcat/internal/constants"
	"github.com/devcat-io/devcat/internal/runtime"
	"github.com/devcat-io/devcat/internal/ui"
)

func New(runtimeContext *runtime.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Removes ~/.devcat/config.yaml and goes back to the built-in catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Execute(runtimeContext.Logger, cmd.OutOrStdout())
		},
	}
}

func Execute(log *zerolog.Logger, out io.Writer) error {
	log.Debug().Msg("Removing catalog config")
	if err := catalogconfig.Reset(); err != nil {
		return fmt.Errorf("failed to reset catalog config: %w", err)
	}

	restore := ui.SetOutput(out)
	defer restore()

	ui.Success("Catalog configuration reset")
	ui.Dim("Default catalog: " + constants.DefaultCatalogURL)
	return nil
}
