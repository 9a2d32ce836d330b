package version

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devcat-io/devcat/internal/versions"
)

// Version is set at build time with -ldflags "-X .../cmd/version.Version=v1.2.3".
var Version = "development"

func New() *cobra.Command {
	var versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the devcat version",
		Long:  "Prints the devcat version. Collections can require a minimum version through min_cli_version.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), "devcat", Version)
			if !versions.IsSemver(versions.Clean(Version)) {
				fmt.Fprintln(cmd.OutOrStdout(), "(development build: min_cli_version checks are skipped)")
			}
			return nil
		},
	}

	return versionCmd
}
