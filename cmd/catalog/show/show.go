package show

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/devcat-io/devcat/internal/catalogconfig"
	"github.com/devcat-io/devcat/internal/runtime"
	"github.com/devcat-io/devcat/internal/settings"
	"github.com/devcat-io/devcat/internal/ui"
)

type handler struct {
	log      *zerolog.Logger
	settings *settings.Settings
	out      io.Writer
}

func New(runtimeContext *runtime.Context) *cobra.Command {
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Shows the catalog in use and where each setting comes from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			h := &handler{
				log:      runtimeContext.Logger,
				settings: runtimeContext.Settings,
				out:      cmd.OutOrStdout(),
			}
			return h.Execute()
		},
	}
	settings.AddCatalogFlag(showCmd)
	return showCmd
}

func (h *handler) Execute() error {
	restore := ui.SetOutput(h.out)
	defer restore()

	s := h.settings
	if s.Catalog.HasOverride() {
		ui.Print(fmt.Sprintf("Catalog:            %s %s", ui.RenderBold(s.Catalog.Override), source(s.OverrideSource)))
	} else {
		ui.Print(fmt.Sprintf("Catalog:            %s", ui.RenderBold("default catalog, latest release")))
	}
	ui.Print(fmt.Sprintf("Default catalog:    %s %s", s.EffectiveDefault(), source(s.DefaultSource)))
	ui.Print(fmt.Sprintf("Minimum release:    %s %s", s.EffectiveMinVersion(), source(s.MinVersionSource)))

	configPath, err := catalogconfig.Path()
	if err != nil {
		h.log.Debug().Err(err).Msg("Could not locate config file")
		return nil
	}
	ui.Line()
	ui.Dim("Config file: " + configPath)
	return nil
}

func source(s settings.Source) string {
	return ui.RenderDim("(" + string(s) + ")")
}
