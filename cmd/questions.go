package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sengokuquiz/sengoku/internal/llm"
	"github.com/sengokuquiz/sengoku/internal/questionbank"
	"github.com/sengokuquiz/sengoku/internal/questiongen"
	"github.com/sengokuquiz/sengoku/internal/tier"
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Inspect, validate and draft question files",
}

var questionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show question and section counts per tier",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		bank := questionbank.New(questionFS(cfg), stderrLogger()).Load()
		out := cmd.OutOrStdout()

		if name, _ := cmd.Flags().GetString("tier"); name != "" {
			t, ok := tier.Parse(name)
			if !ok {
				return fmt.Errorf("unknown tier %q", name)
			}
			for _, set := range bank.Sections(t) {
				fmt.Fprintf(out, "Section %d\n", set.Index+1)
				for _, q := range set.Questions {
					fmt.Fprintf(out, "  %4d  %s\n", q.ID, q.Prompt)
				}
			}
			return nil
		}

		fmt.Fprintf(out, "%-20s  %-16s  %9s  %8s\n", "Tier", "File", "Questions", "Sections")
		fmt.Fprintln(out, strings.Repeat("─", 60))
		counts := bank.Count()
		for _, t := range tier.All() {
			fmt.Fprintf(out, "%-20s  %-16s  %9d  %8d\n",
				t.DisplayName(), questionbank.FileName(t), counts[t], len(bank.Sections(t)))
		}
		return nil
	},
}

var questionsValidateCmd = &cobra.Command{
	Use:   "validate [dir]",
	Short: "Check question files against the file schema",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		fsys := questionFS(cfg)
		if len(args) == 1 {
			fsys = os.DirFS(args[0])
		}

		out := cmd.OutOrStdout()
		bank := questionbank.New(fsys, stderrLogger())
		failed := 0
		for _, t := range tier.All() {
			name := questionbank.FileName(t)
			data, err := fs.ReadFile(fsys, name)
			if errors.Is(err, fs.ErrNotExist) {
				fmt.Fprintf(out, "%-26s  missing\n", name)
				continue
			}
			if err == nil {
				err = questionbank.ValidateFile(data)
			}
			if err != nil {
				failed++
				fmt.Fprintf(out, "%-26s  ✗ %v\n", name, err)
				continue
			}
			fmt.Fprintf(out, "%-26s  ✓ %d questions\n", name, len(bank.LoadTier(t)))
		}
		if failed > 0 {
			return fmt.Errorf("%d invalid question file(s)", failed)
		}
		return nil
	},
}

var questionsDraftCmd = &cobra.Command{
	Use:   "draft",
	Short: "Draft new questions for a tier with the configured LLM",
	Long: "Asks the configured language model for a batch of questions, drops the ones that fail\n" +
		"the bank's checks, and writes the tier file with the accepted ones appended for review.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		name, _ := cmd.Flags().GetString("tier")
		count, _ := cmd.Flags().GetInt("count")
		dir, _ := cmd.Flags().GetString("dir")
		t, ok := tier.Parse(name)
		if !ok {
			return fmt.Errorf("unknown tier %q", name)
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if dir == "" {
			dir = cfg.QuestionsDir
		}
		if dir == "" {
			return errors.New("no output directory: pass --dir or --questions")
		}

		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		logger := stderrLogger()
		provider, err := llm.New(ctx, cfg.LLM, st.EventRepo(), logger)
		if err != nil {
			return fmt.Errorf("LLM provider not configured: %w", err)
		}

		bank := questionbank.New(questionFS(cfg), logger).Load()
		qcfg := questiongen.DefaultConfig()
		if count > 0 {
			qcfg.Count = count
		}
		res, err := questiongen.NewDrafter(provider, bank, qcfg, logger).Draft(ctx, t)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, r := range res.Rejected {
			fmt.Fprintf(out, "rejected (%s): %s: %s\n", r.Check, r.Reason, r.Prompt)
		}
		if len(res.Accepted) == 0 {
			fmt.Fprintln(out, "No questions accepted; nothing written.")
			return nil
		}
		path, err := questiongen.WriteTier(dir, t, append(bank.Questions(t), res.Accepted...))
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Accepted %d of %d drafted questions; wrote %s\n",
			len(res.Accepted), len(res.Accepted)+len(res.Rejected), path)
		return nil
	},
}

func init() {
	questionsListCmd.Flags().String("tier", "", "List the prompts of one tier")

	questionsDraftCmd.Flags().String("tier", tier.First().String(), "Tier to draft for")
	questionsDraftCmd.Flags().Int("count", 0, "Questions to request (default from the drafter config)")
	questionsDraftCmd.Flags().String("dir", "", "Directory to write the tier file into (default --questions)")

	questionsCmd.AddCommand(questionsListCmd)
	questionsCmd.AddCommand(questionsValidateCmd)
	questionsCmd.AddCommand(questionsDraftCmd)
}
