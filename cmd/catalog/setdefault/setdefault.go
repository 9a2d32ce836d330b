package setdefault

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/devcat-io/devcat/internal/catalogconfig"
	"github.com/devcat-io/devcat/internal/catalogrepo"
	"github.com/devcat-io/devcat/internal/constants"
	"github.com/devcat-io/devcat/internal/runtime"
	"github.com/devcat-io/devcat/internal/settings"
	"github.com/devcat-io/devcat/internal/ui"
	"github.com/devcat-io/devcat/internal/validation"
)

type Inputs struct {
	Locator    string `validate:"required" cli:"locator"`
	MinVersion string `validate:"omitempty,release_version" cli:"--min-version"`
}

type handler struct {
	log    *zerolog.Logger
	out    io.Writer
	inputs Inputs
}

func New(runtimeContext *runtime.Context) *cobra.Command {
	setDefaultCmd := &cobra.Command{
		Use:   "set-default <git-url>[@<ref>]",
		Short: "Sets the default catalog in ~/.devcat/config.yaml",
		Long: `Stores the default catalog in ~/.devcat/config.yaml. DEVCAT_DEFAULT_CATALOG_URL still takes
precedence when it is set. An unpinned default catalog resolves to its latest MAJOR.MINOR.PATCH
release tag at or above --min-version.`,
		Example: "  devcat catalog set-default https://github.com/acme/catalog.git --min-version 2.0.0",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h := &handler{log: runtimeContext.Logger, out: cmd.OutOrStdout()}
			h.inputs = h.ResolveInputs(args, runtimeContext.Viper)
			if err := h.ValidateInputs(); err != nil {
				return err
			}
			return h.Execute()
		},
	}

	setDefaultCmd.Flags().String(settings.Flags.MinVersion.Name, "",
		fmt.Sprintf("Lowest release tag to accept (default %s)", constants.DefaultMinCatalogVersion))

	return setDefaultCmd
}

func (h *handler) ResolveInputs(args []string, v *viper.Viper) Inputs {
	return Inputs{
		Locator:    strings.TrimSpace(args[0]),
		MinVersion: strings.TrimSpace(v.GetString(settings.Flags.MinVersion.Name)),
	}
}

func (h *handler) ValidateInputs() error {
	validate, err := validation.NewValidator()
	if err != nil {
		return fmt.Errorf("failed to initialize validator: %w", err)
	}
	if err := validate.Struct(h.inputs); err != nil {
		return validate.ParseValidationErrors(err)
	}
	if _, err := catalogrepo.ParseLocator(h.inputs.Locator); err != nil {
		return err
	}
	return nil
}

func (h *handler) Execute() error {
	cfg, err := catalogconfig.Load(h.log)
	if err != nil {
		return fmt.Errorf("failed to load catalog config: %w", err)
	}

	cfg.DefaultCatalog = h.inputs.Locator
	if h.inputs.MinVersion != "" {
		cfg.MinCatalogVersion = h.inputs.MinVersion
	}

	if err := catalogconfig.Save(cfg); err != nil {
		return fmt.Errorf("failed to save catalog config: %w", err)
	}

	restore := ui.SetOutput(h.out)
	defer restore()

	ui.Success("Default catalog set to " + cfg.DefaultCatalog)
	if cfg.MinCatalogVersion != "" {
		ui.Dim("Minimum release: " + cfg.MinCatalogVersion)
	}
	return nil
}
