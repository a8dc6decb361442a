// Package shared holds what every screen needs to reach the game's services.
package shared

import (
	"context"
	"io"
	"log"

	"github.com/sengokuquiz/sengoku/internal/ads"
	"github.com/sengokuquiz/sengoku/internal/premium"
	"github.com/sengokuquiz/sengoku/internal/progress"
	"github.com/sengokuquiz/sengoku/internal/questionbank"
	"github.com/sengokuquiz/sengoku/internal/quiz"
	"github.com/sengokuquiz/sengoku/internal/store"
)

// Records reads the event journal back. store.EventRepo satisfies it.
type Records interface {
	QuerySessionEvents(ctx context.Context, opts store.QueryOpts) ([]store.SessionEvent, error)
	QueryAnswerEvents(ctx context.Context, opts store.QueryOpts) ([]store.AnswerEvent, error)
}

// Env is passed by pointer from the app to each screen it builds.
// Ads, Premium, Journal and Records may be nil.
type Env struct {
	Machine *progress.Machine
	Bank    *questionbank.Bank
	Ads     *ads.Manager
	Premium *premium.Service
	Journal quiz.Journal
	Records Records
	Logger  *log.Logger
}

// IsPremium reports the premium flag, false without a premium service.
func (e *Env) IsPremium() bool {
	return e.Premium != nil && e.Premium.IsPremium()
}

// Log returns the logger, never nil.
func (e *Env) Log() *log.Logger {
	if e.Logger == nil {
		e.Logger = log.New(io.Discard, "", 0)
	}
	return e.Logger
}
