package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sengokuquiz/sengoku/internal/updatecheck"
)

// version is set via -ldflags at build time.
var version = updatecheck.DevVersion

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "sengoku", version)
	},
}
