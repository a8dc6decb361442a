package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sengokuquiz/sengoku/internal/progress"
	"github.com/sengokuquiz/sengoku/internal/quiz"
	"github.com/sengokuquiz/sengoku/internal/store"
	"github.com/sengokuquiz/sengoku/internal/tier"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show rank, section progress and answer accuracy",
	RunE: func(cmd *cobra.Command, args []string) error {
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

		events := g.store.EventRepo()
		acc, err := events.AccuracyByTier(ctx)
		if err != nil {
			return fmt.Errorf("query accuracy: %w", err)
		}
		sessions, err := events.QuerySessionEvents(ctx, store.QueryOpts{})
		if err != nil {
			return fmt.Errorf("query sessions: %w", err)
		}

		snap := g.machine.Snapshot()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Rank:        %s\n", snap.CurrentTier.DisplayName())
		fmt.Fprintf(out, "Correct:     %d total\n", snap.TotalCorrect)
		fmt.Fprintf(out, "Checkpoint:  %d/%d\n", snap.CheckpointCount, progress.CheckpointInterval)
		fmt.Fprintf(out, "Sections:    %d cleared, %d abandoned\n",
			countActions(sessions, quiz.ActionEnd), countActions(sessions, quiz.ActionAbandon))
		fmt.Fprintln(out)

		fmt.Fprintf(out, "%-20s  %-10s  %-9s  %-10s  %s\n", "Tier", "Progress", "Sections", "Answered", "Accuracy")
		fmt.Fprintln(out, strings.Repeat("─", 66))
		for _, t := range tier.All() {
			status := fmt.Sprintf("%d/%d", snap.Correct(t), t.RequiredCorrect())
			if !snap.IsUnlocked(t) {
				status = "locked"
			}
			a := acc[t.String()]
			ratio := "-"
			if a.Answered > 0 {
				ratio = fmt.Sprintf("%.0f%%", a.Ratio()*100)
			}
			fmt.Fprintf(out, "%-20s  %-10s  %-9s  %-10d  %s\n",
				t.DisplayName(), status,
				fmt.Sprintf("%d/%d", snap.CompletedSections(t), tier.SectionsPerTier),
				a.Answered, ratio)
		}
		return nil
	},
}

func countActions(events []store.SessionEvent, action string) int {
	n := 0
	for _, e := range events {
		if e.Action == action {
			n++
		}
	}
	return n
}
