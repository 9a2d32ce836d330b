package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/devcat-io/devcat/cmd/catalog"
	"github.com/devcat-io/devcat/cmd/install"
	"github.com/devcat-io/devcat/cmd/list"
	"github.com/devcat-io/devcat/cmd/validate"
	"github.com/devcat-io/devcat/cmd/version"
	"github.com/devcat-io/devcat/internal/constants"
	"github.com/devcat-io/devcat/internal/logger"
	devcatruntime "github.com/devcat-io/devcat/internal/runtime"
	"github.com/devcat-io/devcat/internal/settings"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = newRootCommand()

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := RootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	runtimeContext := devcatruntime.NewContext(logger.NewConsoleLogger(), viper.New(), version.Version)

	rootCmd := &cobra.Command{
		Use:   "devcat",
		Short: "devcat CLI tool",
		Long: `Installs development container configurations ("collections") from a git catalog into your
project, and validates catalogs before they are published.`,
		DisableAutoGenTag: true,
		SilenceUsage:      true,
		RunE:              showHelp,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log := runtimeContext.Logger
			v := runtimeContext.Viper

			if err := v.BindPFlags(cmd.Flags()); err != nil {
				return fmt.Errorf("failed to bind flags: %w", err)
			}

			if verbose := v.GetBool(settings.Flags.Verbose.Name); verbose {
				newLogger := log.Level(zerolog.DebugLevel)
				runtimeContext.SetLogger(&newLogger)
			}

			if !isLoadSettings(cmd) {
				return nil
			}
			return runtimeContext.AttachSettings()
		},
	}

	cobra.AddTemplateFunc("wrappedFlagUsages", func(fs *pflag.FlagSet) string {
		// 100 = wrap width
		return strings.TrimRight(fs.FlagUsagesWrapped(100), "\n")
	})

	cobra.AddTemplateFunc("hasUngrouped", func(c *cobra.Command) bool {
		for _, cmd := range c.Commands() {
			if cmd.IsAvailableCommand() && !cmd.Hidden && cmd.GroupID == "" {
				return true
			}
		}
		return false
	})

	rootCmd.SetHelpTemplate(helpTemplate)

	addGlobalFlags(rootCmd.PersistentFlags())
	rootCmd.CompletionOptions.HiddenDefaultCmd = true

	listCmd := list.New(runtimeContext)
	installCmd := install.New(runtimeContext)
	validateCmd := validate.New(runtimeContext)
	catalogCmd := catalog.New(runtimeContext)
	versionCmd := version.New()

	catalogCmd.RunE = showHelp

	rootCmd.AddGroup(&cobra.Group{ID: "collections", Title: "Collections"})
	rootCmd.AddGroup(&cobra.Group{ID: "catalogs", Title: "Catalogs"})

	listCmd.GroupID = "collections"
	installCmd.GroupID = "collections"

	validateCmd.GroupID = "catalogs"
	catalogCmd.GroupID = "catalogs"

	rootCmd.AddCommand(
		listCmd,
		installCmd,
		validateCmd,
		catalogCmd,
		versionCmd,
	)

	return rootCmd
}

func isLoadSettings(cmd *cobra.Command) bool {
	// these never touch a catalog
	excludedCommands := map[string]struct{}{
		"version":    {},
		"bash":       {},
		"fish":       {},
		"powershell": {},
		"zsh":        {},
		"help":       {},
		"devcat":     {},
		"catalog":    {},
		"reset":      {},
	}

	_, exists := excludedCommands[cmd.Name()]
	return !exists
}

func showHelp(cmd *cobra.Command, _ []string) error {
	if err := cmd.Help(); err != nil {
		return fmt.Errorf("fail to show help: %w", err)
	}
	return nil
}

// addGlobalFlags registers the flags every subcommand accepts.
func addGlobalFlags(flags *pflag.FlagSet) {
	flags.StringP(settings.Flags.CliEnvFile.Name, settings.Flags.CliEnvFile.Short, constants.DefaultEnvFileName,
		fmt.Sprintf("Path to a %s file with DEVCAT_* variables", constants.DefaultEnvFileName))
	flags.BoolP(settings.Flags.Verbose.Name, settings.Flags.Verbose.Short, false,
		"Log debug output to stderr (git commands, resolved refs, install steps)")
}
