package cmd

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/sengokuquiz/sengoku/internal/config"
	"github.com/sengokuquiz/sengoku/internal/progress"
	"github.com/sengokuquiz/sengoku/internal/questionbank"
	"github.com/sengokuquiz/sengoku/internal/store"
	"github.com/sengokuquiz/sengoku/internal/store/redisstore"
)

// game bundles what the TUI and most subcommands share. Close releases the
// store and the redis connection, if any.
type game struct {
	cfg     config.Config
	store   *store.Store
	machine *progress.Machine
	bank    *questionbank.Bank
	closers []func() error
}

func openStore(cfg config.Config) (*store.Store, error) {
	dbPath, err := cfg.ResolveDBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return st, nil
}

// openGame opens the store, the configured progress backend and the
// question bank, and loads the progress machine.
func openGame(ctx context.Context, cfg config.Config, logger *log.Logger) (*game, error) {
	st, err := openStore(cfg)
	if err != nil {
		return nil, err
	}
	g := &game{cfg: cfg, store: st, closers: []func() error{st.Close}}

	var backend progress.Backend = st.ProgressRepo()
	if cfg.Store == config.StoreRedis {
		rb, err := redisstore.New(ctx, cfg.RedisURL)
		if err != nil {
			g.Close()
			return nil, fmt.Errorf("open redis store: %w", err)
		}
		g.closers = append(g.closers, rb.Close)
		backend = rb
	}
	g.machine = progress.NewMachine(ctx, backend, logger)
	g.bank = questionbank.New(questionFS(cfg), logger).Load()
	return g, nil
}

func questionFS(cfg config.Config) fs.FS {
	if cfg.QuestionsDir != "" {
		return os.DirFS(cfg.QuestionsDir)
	}
	return questionbank.BundledFS()
}

func (g *game) Close() {
	for i := len(g.closers) - 1; i >= 0; i-- {
		g.closers[i]()
	}
}

// stderrLogger is used by subcommands; the TUI logs to a file instead.
func stderrLogger() *log.Logger {
	return log.New(os.Stderr, "sengoku: ", 0)
}
