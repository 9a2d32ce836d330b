package list

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/devcat-io/devcat/internal/catalogrepo"
	"github.com/devcat-io/devcat/internal/engine"
	"github.com/devcat-io/devcat/internal/runtime"
	"github.com/devcat-io/devcat/internal/settings"
	"github.com/devcat-io/devcat/internal/ui"
	"github.com/devcat-io/devcat/internal/validation"
)

const descriptionWidth = 60

type Inputs struct {
	Tags []string `validate:"dive,tag_token" cli:"--tag"`
	JSON bool
}

func New(runtimeContext *runtime.Context) *cobra.Command {
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the collections of a catalog",
		Long: `Lists the collections of the selected catalog, "default" first and then by name.
With --tag only collections carrying at least one of the given tags are shown.`,
		Example: "  devcat list\n  devcat list --tag python --tag data\n  devcat list --catalog git@github.com:acme/catalog.git@main",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			h := newHandler(runtimeContext, cmd.OutOrStdout())

			inputs, err := h.ResolveInputs(runtimeContext.Viper)
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

	settings.AddCatalogFlag(listCmd)
	settings.AddJSONFlag(listCmd)
	listCmd.Flags().StringSliceP(settings.Flags.Tag.Name, settings.Flags.Tag.Short, nil,
		"Only show collections with any of these tags (repeatable)")

	return listCmd
}

type handler struct {
	log        *zerolog.Logger
	runtimeCtx *runtime.Context
	out        io.Writer
	inputs     Inputs
}

func newHandler(ctx *runtime.Context, out io.Writer) *handler {
	return &handler{
		log:        ctx.Logger,
		runtimeCtx: ctx,
		out:        out,
	}
}

func (h *handler) ResolveInputs(v *viper.Viper) (Inputs, error) {
	var tags []string
	for _, t := range v.GetStringSlice(settings.Flags.Tag.Name) {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			tags = append(tags, t)
		}
	}
	return Inputs{
		Tags: tags,
		JSON: v.GetBool(settings.Flags.JSON.Name),
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
	return nil
}

func (h *handler) Execute(ctx context.Context) error {
	e, err := h.runtimeCtx.NewEngine()
	if err != nil {
		return err
	}

	result, err := ui.WithSpinnerResult("Fetching catalog...", func() (*engine.ListResult, error) {
		return e.List(ctx, h.runtimeCtx.Settings.Catalog, h.inputs.Tags)
	})
	if err != nil {
		return err
	}

	if h.inputs.JSON {
		return h.writeJSON(result)
	}
	h.printTable(result)
	return nil
}

type listOutput struct {
	Catalog     string                        `json:"catalog"`
	Tags        []string                      `json:"tags,omitempty"`
	Total       int                           `json:"total"`
	Collections []catalogrepo.CollectionEntry `json:"collections"`
}

func (h *handler) writeJSON(result *engine.ListResult) error {
	collections := result.Collections
	if collections == nil {
		collections = []catalogrepo.CollectionEntry{}
	}
	enc := json.NewEncoder(h.out)
	enc.SetIndent("", "  ")
	return enc.Encode(listOutput{
		Catalog:     result.Catalog.String(),
		Tags:        h.inputs.Tags,
		Total:       result.Total,
		Collections: collections,
	})
}

func (h *handler) printTable(result *engine.ListResult) {
	restore := ui.SetOutput(h.out)
	defer restore()

	ui.Dim("Catalog: " + result.Catalog.String())
	ui.Line()

	if len(result.Collections) == 0 {
		if len(h.inputs.Tags) > 0 {
			ui.Warning(fmt.Sprintf("No collections match tags %s (%d collections in catalog)",
				strings.Join(h.inputs.Tags, ", "), result.Total))
			return
		}
		ui.Warning("The catalog has no collections")
		return
	}

	ui.Print(renderTable(result.Collections))
	ui.Line()
	if len(h.inputs.Tags) > 0 {
		ui.Dim(fmt.Sprintf("%d of %d collections match tags %s", len(result.Collections), result.Total,
			strings.Join(h.inputs.Tags, ", ")))
	}
	ui.Dim("Install one with:")
	ui.Command("  devcat install --collection <name> --catalog " + result.Catalog.String())
}

func renderTable(entries []catalogrepo.CollectionEntry) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Name", "Description", "Tags", "Maintainer"})

	for _, c := range entries {
		t.AppendRow(table.Row{
			c.Name,
			c.Description,
			strings.Join(c.Tags, ", "),
			c.Maintainer,
		})
	}

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft},
		{Number: 2, Align: text.AlignLeft, WidthMax: descriptionWidth, WidthMaxEnforcer: text.WrapSoft},
		{Number: 3, Align: text.AlignLeft},
		{Number: 4, Align: text.AlignLeft},
	})

	return t.Render()
}
