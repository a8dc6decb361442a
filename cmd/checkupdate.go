package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sengokuquiz/sengoku/internal/updatecheck"
)

var checkUpdateCmd = &cobra.Command{
	Use:   "check-update",
	Short: "Check whether this build is still supported",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cfg.RemoteConfigURL == "" {
			fmt.Fprintln(cmd.OutOrStdout(), "No remote config URL set (SENGOKU_REMOTE_CONFIG_URL); nothing to check.")
			return nil
		}

		v := updatecheck.NewChecker(cfg.RemoteConfigURL, updatecheck.WithLogger(stderrLogger())).
			Check(cmd.Context(), version)

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Installed:  %s\n", v.Current)
		fmt.Fprintf(out, "Minimum:    %s\n", v.Minimum)
		switch {
		case !v.Fetched:
			fmt.Fprintln(out, "Status:     remote config unavailable, play continues")
		case v.RequiresUpdate:
			fmt.Fprintln(out, "Status:     update required")
			fmt.Fprintf(out, "            %s\n            %s\n", v.Message, v.UpdateURL)
		default:
			fmt.Fprintln(out, "Status:     up to date")
		}
		return nil
	},
}
