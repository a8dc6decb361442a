package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sengokuquiz/sengoku/internal/tier"
)

var debugCmd = &cobra.Command{
	Use:    "debug",
	Short:  "Developer tools",
	Hidden: true,
}

var debugSetProgressCmd = &cobra.Command{
	Use:   "set-progress",
	Short: "Overwrite one tier's correct count",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("tier")
		count, _ := cmd.Flags().GetInt("count")
		t, ok := tier.Parse(name)
		if !ok {
			return fmt.Errorf("unknown tier %q", name)
		}

		ctx := cmd.Context()
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		g, err := openGame(ctx, cfg, stderrLogger())
		if err != nil {
			return err
		}
		defer g.Close()

		g.machine.DebugSetProgress(ctx, t, count)
		snap := g.machine.Snapshot()
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d/%d, rank %s\n",
			t.DisplayName(), snap.Correct(t), t.RequiredCorrect(), snap.CurrentTier.DisplayName())
		return nil
	},
}

func init() {
	debugSetProgressCmd.Flags().String("tier", tier.First().String(), "Tier name, e.g. small_daimyo")
	debugSetProgressCmd.Flags().Int("count", 0, "Correct answers to record for the tier")
	debugCmd.AddCommand(debugSetProgressCmd)
}
