package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sengokuquiz/sengoku/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "sengoku",
	Short: "Sengoku history quiz",
	Long:  "Sengoku Quiz: rise from small daimyo to tenka-bito by answering questions about Japan's Warring States period.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("db", "", "Path to SQLite database file (overrides SENGOKU_DB env var)")
	flags.String("store", "", "Progress backend: sqlite or redis (overrides SENGOKU_STORE env var)")
	flags.String("redis-url", "", "Redis URL for the redis store (overrides SENGOKU_REDIS_URL env var)")
	flags.String("questions", "", "Directory of question files to use instead of the bundled ones")
	flags.String("env-file", "", "Read settings from this file instead of ./.env")

	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(debugCmd)
	rootCmd.AddCommand(questionsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(checkUpdateCmd)
	rootCmd.AddCommand(premiumCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the environment and applies persistent flags on top.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	var files []string
	if f, _ := cmd.Flags().GetString("env-file"); f != "" {
		files = append(files, f)
	}
	cfg, err := config.Load(files...)
	if err != nil {
		return config.Config{}, err
	}

	override := func(dst *string, flag string) {
		if v, _ := cmd.Flags().GetString(flag); v != "" {
			*dst = v
		}
	}
	override(&cfg.DBPath, "db")
	override(&cfg.Store, "store")
	override(&cfg.RedisURL, "redis-url")
	override(&cfg.QuestionsDir, "questions")

	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
