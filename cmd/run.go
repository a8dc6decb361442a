package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/sengokuquiz/sengoku/internal/ads"
	"github.com/sengokuquiz/sengoku/internal/app"
	"github.com/sengokuquiz/sengoku/internal/premium"
	"github.com/sengokuquiz/sengoku/internal/screens/shared"
	"github.com/sengokuquiz/sengoku/internal/updatecheck"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logPath, err := cfg.ResolveLogFile()
	if err != nil {
		return fmt.Errorf("resolve log file: %w", err)
	}
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()
	logger := log.New(logFile, "", log.LstdFlags)

	g, err := openGame(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer g.Close()

	settings := g.store.SettingsRepo()
	prem := premium.NewService(ctx, premium.NewLocalBilling(settings), settings, logger)
	house := ads.NewHouseAds()

	verdict := updatecheck.NewChecker(cfg.RemoteConfigURL, updatecheck.WithLogger(logger)).
		Check(ctx, version)
	if verdict.RequiresUpdate {
		logger.Printf("update required: installed %s, minimum %s", verdict.Current, verdict.Minimum)
	}

	return app.Run(ctx, app.Options{
		Env: &shared.Env{
			Machine: g.machine,
			Bank:    g.bank,
			Ads:     ads.NewManager(house, prem, logger),
			Premium: prem,
			Journal: g.store.EventRepo(),
			Records: g.store.EventRepo(),
			Logger:  logger,
		},
		Banner:  house,
		Verdict: verdict,
		Splash:  true,
	})
}
