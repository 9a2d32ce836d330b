package validate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/devcat-io/devcat/internal/catalogrepo"
	"github.com/devcat-io/devcat/internal/report"
	"github.com/devcat-io/devcat/internal/runtime"
	"github.com/devcat-io/devcat/internal/settings"
	"github.com/devcat-io/devcat/internal/ui"
	"github.com/devcat-io/devcat/internal/validation"
)

// ErrFindings makes the command exit non-zero when the report is not empty.
var ErrFindings = errors.New("catalog validation failed")

type Inputs struct {
	// Dir is set when validating a working copy in place.
	Dir     string `validate:"omitempty,dir,path_read" cli:"catalog directory"`
	Locator string
	JSON    bool
}

func New(runtimeContext *runtime.Context) *cobra.Command {
	validateCmd := &cobra.Command{
		Use:   "validate [locator|directory]",
		Short: "Check a catalog for structural and content problems",
		Long: `Validates a whole catalog: the shared assets, every collection and the catalog-wide rules.
The argument is either a local directory holding a catalog working copy, validated in place,
or a locator (<git-url> or <git-url>@<ref>). Without an argument the selected catalog is fetched.

The command exits non-zero if and only if there are findings.`,
		Example: "  devcat validate .\n  devcat validate https://github.com/acme/catalog.git@feature-branch\n  devcat validate --json",
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

	settings.AddCatalogFlag(validateCmd)
	settings.AddJSONFlag(validateCmd)

	return validateCmd
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

// ResolveInputs decides between a local directory and a locator. Anything that
// exists as a directory, or is written as a path, is treated as a directory.
func (h *handler) ResolveInputs(args []string, v *viper.Viper) (Inputs, error) {
	inputs := Inputs{JSON: v.GetBool(settings.Flags.JSON.Name)}
	if len(args) == 0 {
		return inputs, nil
	}

	arg := strings.TrimSpace(args[0])
	if info, err := os.Stat(arg); err == nil && info.IsDir() {
		inputs.Dir = arg
		return inputs, nil
	}
	if looksLikePath(arg) {
		inputs.Dir = arg
		return inputs, nil
	}
	if _, err := catalogrepo.ParseLocator(arg); err != nil {
		return Inputs{}, fmt.Errorf("%q is neither an existing directory nor a catalog locator: %w", arg, err)
	}
	inputs.Locator = arg
	return inputs, nil
}

func looksLikePath(s string) bool {
	return s == "." || s == ".." ||
		strings.HasPrefix(s, "./") || strings.HasPrefix(s, "../") ||
		strings.HasPrefix(s, "/")
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

	var (
		source string
		rep    *report.Report
	)
	if h.inputs.Dir != "" {
		source = h.inputs.Dir
		rep, err = e.ValidateDir(h.inputs.Dir)
	} else {
		sel := h.runtimeCtx.Settings.Catalog
		if h.inputs.Locator != "" {
			sel.Override = h.inputs.Locator
		}
		spinner := ui.NewSpinner()
		spinner.Start("Fetching catalog...")
		var loc catalogrepo.Locator
		loc, rep, err = e.Validate(ctx, sel)
		spinner.Stop()
		source = loc.String()
	}
	if err != nil {
		return err
	}

	if h.inputs.JSON {
		if err := h.writeJSON(source, rep); err != nil {
			return err
		}
	} else {
		h.printReport(source, rep)
	}

	if !rep.Passed() {
		return fmt.Errorf("%w: %d finding(s) in %s", ErrFindings, len(rep.Findings), source)
	}
	return nil
}

type validateOutput struct {
	Catalog         string           `json:"catalog"`
	Passed          bool             `json:"passed"`
	CollectionCount int              `json:"collectionCount"`
	Findings        []report.Finding `json:"findings"`
}

func (h *handler) writeJSON(source string, rep *report.Report) error {
	findings := rep.Findings
	if findings == nil {
		findings = []report.Finding{}
	}
	enc := json.NewEncoder(h.out)
	enc.SetIndent("", "  ")
	return enc.Encode(validateOutput{
		Catalog:         source,
		Passed:          rep.Passed(),
		CollectionCount: rep.CollectionCount,
		Findings:        findings,
	})
}

var scopeTitles = []struct {
	scope report.Scope
	title string
}{
	{report.ScopeStructure, "Catalog structure"},
	{report.ScopeCollection, "Collections"},
	{report.ScopeCatalog, "Catalog-wide rules"},
}

func (h *handler) printReport(source string, rep *report.Report) {
	restore := ui.SetOutput(h.out)
	defer restore()

	ui.Dim("Catalog: " + source)
	ui.Line()

	if rep.Passed() {
		ui.Success(fmt.Sprintf("Catalog is valid (%d collections)", rep.CollectionCount))
		return
	}

	for _, group := range scopeTitles {
		findings := rep.ByScope(group.scope)
		if len(findings) == 0 {
			continue
		}
		ui.Bold(fmt.Sprintf("%s (%d)", group.title, len(findings)))
		for _, f := range findings {
			ui.Print(ui.Indent(ui.RenderError("✗ ")+ui.RenderCode(f.Location)+": "+f.Message, 1))
		}
		ui.Line()
	}
	ui.Error(fmt.Sprintf("%d finding(s) in %d collections", len(rep.Findings), rep.CollectionCount))
}
