package quiz

import (
	"context"
	"io"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/sengokuquiz/sengoku/internal/questionbank"
	"github.com/sengokuquiz/sengoku/internal/store"
	"github.com/sengokuquiz/sengoku/internal/tier"
)

// Recorder receives the outcome of every answered question.
// *progress.Machine satisfies it.
type Recorder interface {
	RecordCorrect(ctx context.Context, questionID int, t tier.Tier)
	RecordIncorrect(ctx context.Context, questionID int)
}

// Journal appends session and answer events. store.EventRepo satisfies it.
type Journal interface {
	AppendSessionEvent(ctx context.Context, data store.SessionEventData) error
	AppendAnswerEvent(ctx context.Context, data store.AnswerEventData) error
}

// Phase is the state of a session.
type Phase int

const (
	AwaitingAnswer Phase = iota // Current question shown, no answer yet
	Answered                    // Feedback for the current question
	Complete                    // Every question answered; terminal
)

func (p Phase) String() string {
	switch p {
	case AwaitingAnswer:
		return "awaiting_answer"
	case Answered:
		return "answered"
	case Complete:
		return "complete"
	default:
		return "unknown"
	}
}

// Session actions written to the journal.
const (
	ActionStart   = "start"
	ActionEnd     = "end"
	ActionAbandon = "abandon"
)

// Result is the outcome of one submitted answer.
type Result struct {
	QuestionID    int
	Chosen        int
	Correct       bool
	CorrectIndex  int
	CorrectAnswer string
	Explanation   string
}

// Session drives one section: it serves the set's questions in order,
// scores each answer once and forwards the outcome to the recorder.
type Session struct {
	id       string
	set      questionbank.Set
	recorder Recorder
	journal  Journal
	logger   *log.Logger
	now      func() time.Time

	index    int
	phase    Phase
	last     Result
	correct  int
	started  time.Time
	asked    time.Time
	finished bool
}

// Option configures a Session.
type Option func(*Session)

// WithJournal attaches a journal that records the session's events.
func WithJournal(j Journal) Option {
	return func(s *Session) { s.journal = j }
}

// WithLogger sets the logger used for journal failures.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// New starts a session over set. An empty set starts Complete.
func New(ctx context.Context, set questionbank.Set, recorder Recorder, opts ...Option) *Session {
	s := &Session{
		id:       uuid.NewString(),
		set:      set,
		recorder: recorder,
		logger:   log.New(io.Discard, "", 0),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.started = s.now()
	s.asked = s.started

	if set.Len() == 0 {
		s.phase = Complete
		s.finished = true
		return s
	}
	s.appendSession(ctx, ActionStart)
	return s
}

// ID returns the session's unique identifier.
func (s *Session) ID() string { return s.id }

// Tier returns the tier of the section being played.
func (s *Session) Tier() tier.Tier { return s.set.Tier }

// SectionIndex returns the section's index within its tier.
func (s *Session) SectionIndex() int { return s.set.Index }

// Len returns the number of questions in the section.
func (s *Session) Len() int { return s.set.Len() }

// Index returns the zero-based position of the current question.
func (s *Session) Index() int { return s.index }

// Phase returns the session's current phase.
func (s *Session) Phase() Phase { return s.phase }

// CorrectCount returns how many answers were correct so far.
func (s *Session) CorrectCount() int { return s.correct }

// LastResult returns the result of the most recent answer, if any.
func (s *Session) LastResult() (Result, bool) {
	if s.phase != Answered {
		return Result{}, false
	}
	return s.last, true
}

// CurrentQuestion returns the question being asked. It reports false once
// every question has been served.
func (s *Session) CurrentQuestion() (questionbank.Question, bool) {
	if s.index >= s.set.Len() {
		return questionbank.Question{}, false
	}
	return s.set.Questions[s.index], true
}

// Submit scores optionIndex against the current question. Only the first
// submission per question counts; later ones and out-of-range options are
// rejected without changing anything.
func (s *Session) Submit(ctx context.Context, optionIndex int) (Result, bool) {
	if s.phase != AwaitingAnswer {
		return Result{}, false
	}
	q, ok := s.CurrentQuestion()
	if !ok || optionIndex < 0 || optionIndex >= len(q.Options) {
		return Result{}, false
	}

	res := Result{
		QuestionID:    q.ID,
		Chosen:        optionIndex,
		Correct:       q.IsCorrect(optionIndex),
		CorrectIndex:  q.CorrectIndex,
		CorrectAnswer: q.CorrectAnswerText(),
		Explanation:   q.Explanation,
	}
	s.last = res
	s.phase = Answered

	if res.Correct {
		s.correct++
		s.recorder.RecordCorrect(ctx, q.ID, s.set.Tier)
	} else {
		s.recorder.RecordIncorrect(ctx, q.ID)
	}

	if s.journal != nil {
		err := s.journal.AppendAnswerEvent(ctx, store.AnswerEventData{
			SessionID:     s.id,
			QuestionID:    q.ID,
			Tier:          s.set.Tier.String(),
			Section:       s.set.Index,
			QuestionText:  q.Prompt,
			CorrectAnswer: res.CorrectAnswer,
			ChosenAnswer:  q.Options[optionIndex],
			Correct:       res.Correct,
			TimeMs:        s.now().Sub(s.asked).Milliseconds(),
		})
		if err != nil {
			s.logger.Printf("warning: journal answer: %v", err)
		}
	}
	return res, true
}

// Advance moves past an answered question and reports whether the section
// is now complete. It does nothing unless the current question was answered.
func (s *Session) Advance(ctx context.Context) bool {
	if s.phase != Answered {
		return s.phase == Complete
	}
	s.last = Result{}
	s.index++
	if s.index >= s.set.Len() {
		s.phase = Complete
		s.finish(ctx, ActionEnd)
		return true
	}
	s.phase = AwaitingAnswer
	s.asked = s.now()
	return false
}

// Abandon records that the player left before finishing. It is a no-op
// once the session has ended.
func (s *Session) Abandon(ctx context.Context) {
	s.finish(ctx, ActionAbandon)
}

func (s *Session) finish(ctx context.Context, action string) {
	if s.finished {
		return
	}
	s.finished = true
	s.appendSession(ctx, action)
}

func (s *Session) appendSession(ctx context.Context, action string) {
	if s.journal == nil {
		return
	}
	answered := s.index
	if s.phase == Answered {
		answered++
	}
	err := s.journal.AppendSessionEvent(ctx, store.SessionEventData{
		SessionID:       s.id,
		Action:          action,
		Tier:            s.set.Tier.String(),
		Section:         s.set.Index,
		QuestionsServed: answered,
		CorrectAnswers:  s.correct,
		DurationSecs:    int(s.now().Sub(s.started).Seconds()),
	})
	if err != nil {
		s.logger.Printf("warning: journal session %s: %v", action, err)
	}
}
