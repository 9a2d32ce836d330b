package settings

import (
	"github.com/spf13/cobra"
)

type Flag struct {
	Name  string
	Short string
}

type flagNames struct {
	CliEnvFile     Flag
	Verbose        Flag
	Catalog        Flag
	Collection     Flag
	Tag            Flag
	JSON           Flag
	NonInteractive Flag
	MinVersion     Flag
}

var Flags = flagNames{
	CliEnvFile:     Flag{"env", "e"},
	Verbose:        Flag{"verbose", "v"},
	Catalog:        Flag{"catalog", "c"},
	Collection:     Flag{"collection", "n"},
	Tag:            Flag{"tag", "t"},
	JSON:           Flag{"json", ""},
	NonInteractive: Flag{"non-interactive", ""},
	MinVersion:     Flag{"min-version", ""},
}

// AddCatalogFlag registers --catalog, which overrides every other catalog source.
func AddCatalogFlag(cmd *cobra.Command) {
	cmd.Flags().StringP(Flags.Catalog.Name, Flags.Catalog.Short, "", "Catalog to use, as <git-url> or <git-url>@<ref> (overrides "+
		"DEVCAT_CATALOG_URL and the configured default)")
}

// AddJSONFlag registers --json for machine-readable output.
func AddJSONFlag(cmd *cobra.Command) {
	cmd.Flags().Bool(Flags.JSON.Name, false, "Print machine-readable JSON instead of text")
}
