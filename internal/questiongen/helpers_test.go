package questiongen

import (
	"context"
	"io"
	"log"

	"github.com/sengokuquiz/sengoku/internal/store"
)

func newLogger(w io.Writer) *log.Logger {
	return log.New(w, "", 0)
}

type recordingJournal struct {
	purposes []string
}

func (r *recordingJournal) AppendLLMRequest(_ context.Context, d store.LLMRequestEventData) error {
	r.purposes = append(r.purposes, d.Purpose)
	return nil
}
