package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
	Newest bool      // newest first instead of sequence order
}

// Key/value namespaces.
const (
	NamespaceProgress = "progress"
	NamespaceSettings = "settings"
)

// SettingsRepo stores small application settings such as the premium entitlement.
type SettingsRepo interface {
	// Get returns the value of key and whether it was set.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set writes key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// SessionEventData captures the data for a quiz session event.
type SessionEventData struct {
	SessionID       string
	Action          string // "start", "end" or "abandon"
	Tier            string
	Section         int
	QuestionsServed int
	CorrectAnswers  int
	DurationSecs    int
}

// AnswerEventData captures the data for a single answered question.
type AnswerEventData struct {
	SessionID     string
	QuestionID    int
	Tier          string
	Section       int
	QuestionText  string
	CorrectAnswer string
	ChosenAnswer  string
	Correct       bool
	TimeMs        int64
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// SessionEvent is a stored session event.
type SessionEvent struct {
	Sequence  int64
	Timestamp time.Time
	SessionEventData
}

// AnswerEvent is a stored answer event.
type AnswerEvent struct {
	Sequence  int64
	Timestamp time.Time
	AnswerEventData
}

// LLMRequestEvent is a stored LLM request event.
type LLMRequestEvent struct {
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsage aggregates LLM request events for one purpose.
type LLMUsage struct {
	Purpose      string
	Calls        int
	Failures     int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// Accuracy summarizes answer events.
type Accuracy struct {
	Answered int
	Correct  int
}

// Ratio returns Correct/Answered, or 0 when nothing was answered.
func (a Accuracy) Ratio() float64 {
	if a.Answered == 0 {
		return 0
	}
	return float64(a.Correct) / float64(a.Answered)
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendSessionEvent records a session start, end or abandon.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// AppendAnswerEvent records one answered question.
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QuerySessionEvents returns session events in sequence order.
	QuerySessionEvents(ctx context.Context, opts QueryOpts) ([]SessionEvent, error)

	// QueryAnswerEvents returns answer events in sequence order.
	QueryAnswerEvents(ctx context.Context, opts QueryOpts) ([]AnswerEvent, error)

	// AccuracyByTier aggregates answer events per tier name.
	AccuracyByTier(ctx context.Context) (map[string]Accuracy, error)

	// QueryLLMEvents returns LLM request events, optionally for one purpose.
	QueryLLMEvents(ctx context.Context, purpose string, opts QueryOpts) ([]LLMRequestEvent, error)

	// GetLLMEvent returns the event with sequence seq, or nil if none exists.
	GetLLMEvent(ctx context.Context, seq int64) (*LLMRequestEvent, error)

	// LLMUsageByPurpose aggregates token usage per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error)
}
