package install

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/devcat-io/devcat/internal/catalogrepo"
	"github.com/devcat-io/devcat/internal/constants"
	"github.com/devcat-io/devcat/internal/engine"
	"github.com/devcat-io/devcat/internal/runtime"
	"github.com/devcat-io/devcat/internal/settings"
	"github.com/devcat-io/devcat/internal/ui"
	"github.com/devcat-io/devcat/internal/validation"
)

var ErrSelectionRequired = errors.New("a collection must be chosen")

type Inputs struct {
	Collection     string `validate:"omitempty,collection_name" cli:"--collection"`
	ProjectDir     string `validate:"required,dir,path_read" cli:"project directory"`
	NonInteractive bool
}

func New(runtimeContext *runtime.Context) *cobra.Command {
	installCmd := &cobra.Command{
		Use:   "install [project-directory]",
		Short: "Install a collection into a project's .devcontainer directory",
		Long: `Fetches the catalog and merges one collection, together with the catalog's shared assets,
into <project-directory>/.devcontainer (the current directory by default).

--collection needs an explicit catalog, from --catalog or DEVCAT_CATALOG_URL. Without
--collection a catalog with a single collection installs it, a terminal session asks which
one to install, and a non-interactive run against the default catalog installs "default".`,
		Example: "  devcat install\n  devcat install --catalog https://github.com/acme/catalog.git --collection python ./my-service",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h := newHandler(runtimeContext, cmd.OutOrStdout())

			inputs, err := h.ResolveInputs(args, runtimeContext.Viper)
			if err != nil {
				return err
			}
			h.inputs = inputs
			if err := h.ValidateInputs(); err != nil {
				return err
			}
			return h.Execute(cmd.Context())
		},
	}

	settings.AddCatalogFlag(installCmd)
	installCmd.Flags().StringP(settings.Flags.Collection.Name, settings.Flags.Collection.Short, "",
		"Name of the collection to install (requires --catalog or DEVCAT_CATALOG_URL)")
	installCmd.Flags().Bool(settings.Flags.NonInteractive.Name, false, "Never prompt; fail instead when a choice is needed")

	return installCmd
}

// promptFunc asks the user to pick one of entries and returns its name.
type promptFunc func(catalog catalogrepo.Locator, entries []catalogrepo.CollectionEntry) (string, error)

type handler struct {
	log         *zerolog.Logger
	runtimeCtx  *runtime.Context
	out         io.Writer
	inputs      Inputs
	interactive func() bool
	prompt      promptFunc
}

func newHandler(ctx *runtime.Context, out io.Writer) *handler {
	return &handler{
		log:         ctx.Logger,
		runtimeCtx:  ctx,
		out:         out,
		interactive: ui.IsInteractive,
		prompt:      promptForCollection,
	}
}

func (h *handler) ResolveInputs(args []string, v *viper.Viper) (Inputs, error) {
	projectDir := "."
	if len(args) > 0 {
		projectDir = args[0]
	}
	abs, err := filepath.Abs(projectDir)
	if err != nil {
		return Inputs{}, fmt.Errorf("failed to resolve project directory %s: %w", projectDir, err)
	}

	return Inputs{
		Collection:     strings.TrimSpace(v.GetString(settings.Flags.Collection.Name)),
		ProjectDir:     abs,
		NonInteractive: v.GetBool(settings.Flags.NonInteractive.Name),
	}, nil
}

func (h *handler) ValidateInputs() error {
	validate, err := validation.NewValidator()
	if err != nil {
		return fmt.Errorf("failed to initialize validator: %w", err)
	}

	if err := validate.Struct(h.inputs); err != nil {
		return validate.ParseValidationErrors(err)
	}

	if h.inputs.Collection != "" && !h.runtimeCtx.Settings.Catalog.HasOverride() {
		return fmt.Errorf("%w: --collection %s names a collection, so also name its catalog with --catalog <git-url>[@<ref>] or %s",
			engine.ErrLocatorRequired, h.inputs.Collection, constants.EnvVarCatalogURL)
	}
	return nil
}

func (h *handler) Execute(ctx context.Context) error {
	e, err := h.runtimeCtx.NewEngine()
	if err != nil {
		return err
	}

	restore := ui.SetOutput(h.out)
	defer restore()

	result, err := e.Install(ctx, h.runtimeCtx.Settings.Catalog, h.selector(), h.inputs.ProjectDir)
	if err != nil {
		return err
	}

	ui.Success(fmt.Sprintf("Installed collection %s into %s", result.Collection.Name, result.TargetPath))
	ui.Dim("Catalog: " + result.Catalog.String())
	ui.Line()
	ui.Print("Next: open the project in your editor and reopen it in the dev container, or run")
	ui.Command("  devcontainer up --workspace-folder " + h.inputs.ProjectDir)
	return nil
}

// selector applies the selection rules: an explicit name wins, a single
// collection is taken as is, a terminal gets a prompt, and a non-interactive
// run against the default catalog takes the default collection.
func (h *handler) selector() engine.Selector {
	if h.inputs.Collection != "" {
		return engine.Named(h.inputs.Collection)
	}

	isDefaultCatalog := h.runtimeCtx.Settings.IsDefaultCatalog()
	return engine.SelectorFunc(func(_ context.Context, catalog catalogrepo.Locator, entries []catalogrepo.CollectionEntry) (string, error) {
		switch {
		case len(entries) == 1:
			h.log.Debug().Str("collection", entries[0].Name).Msg("Catalog has a single collection")
			return entries[0].Name, nil
		case !h.inputs.NonInteractive && h.interactive():
			return h.prompt(catalog, entries)
		case isDefaultCatalog:
			return constants.DefaultCollectionName, nil
		default:
			return "", fmt.Errorf("%w: %s has %d collections; pass --collection <name> (see `devcat list --catalog %s`)",
				ErrSelectionRequired, catalog, len(entries), catalog)
		}
	})
}

func promptForCollection(catalog catalogrepo.Locator, entries []catalogrepo.CollectionEntry) (string, error) {
	options := make([]ui.SelectOption[string], len(entries))
	for i, e := range entries {
		label := e.Name
		if e.Description != "" {
			label += "  " + ui.RenderDim(e.Description)
		}
		options[i] = ui.SelectOption[string]{Label: label, Value: e.Name}
	}

	name, err := ui.Select("Which collection do you want to install?", "Catalog: "+catalog.String(), options)
	if err != nil {
		return "", fmt.Errorf("collection selection aborted: %w", err)
	}
	return name, nil
}
