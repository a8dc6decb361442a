package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies provider failures.
type Kind int

const (
	KindUnavailable Kind = iota
	KindRateLimited
	KindInvalidResponse
	KindTruncated
)

func (k Kind) String() string {
	switch k {
	case KindRateLimited:
		return "rate limited"
	case KindInvalidResponse:
		return "invalid response"
	case KindTruncated:
		return "truncated"
	default:
		return "provider unavailable"
	}
}

// Error is returned by every Provider in this package.
type Error struct {
	Kind Kind

	// Content is the raw reply, when one arrived.
	Content json.RawMessage
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return "llm: " + e.Kind.String()
	}
	return fmt.Sprintf("llm: %s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// IsKind reports whether err is an *Error of kind k.
func IsKind(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}

// fromStatus maps an HTTP status from an SDK error to a Kind.
func fromStatus(status int, err error) error {
	if status == http.StatusTooManyRequests {
		return &Error{Kind: KindRateLimited, Err: err}
	}
	return &Error{Kind: KindUnavailable, Err: err}
}

func invalid(content json.RawMessage, format string, args ...any) error {
	return &Error{Kind: KindInvalidResponse, Content: content, Err: fmt.Errorf(format, args...)}
}
