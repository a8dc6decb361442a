// Package updatecheck decides whether the running build is too old to play,
// based on a small JSON document served from a fixed URL.
package updatecheck

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"golang.org/x/mod/semver"
)

// DevVersion is the version string of builds made without -ldflags.
const DevVersion = "(devel)"

// RemoteConfig is the served document. Absent fields keep their defaults.
type RemoteConfig struct {
	MinimumVersion      string `json:"minimum_version"`
	ForceUpdateRequired bool   `json:"force_update_required"`
	ForceUpdateMessage  string `json:"force_update_message"`
	UpdateURL           string `json:"update_url"`
}

// DefaultRemoteConfig is used for fields the document omits.
func DefaultRemoteConfig() RemoteConfig {
	return RemoteConfig{
		MinimumVersion:      "1.0.0",
		ForceUpdateRequired: true,
		ForceUpdateMessage:  "This version of Sengoku Quiz is no longer supported. Please update to continue.",
		UpdateURL:           "https://github.com/sengokuquiz/sengoku/releases/latest",
	}
}

// Verdict is the outcome of one check.
type Verdict struct {
	RequiresUpdate bool
	Current        string
	Minimum        string
	Message        string
	UpdateURL      string

	// Fetched is false when the document could not be retrieved and the
	// verdict falls back to "no update required".
	Fetched bool
}

// Checker fetches the remote document once per Check, without retry.
type Checker struct {
	url     string
	client  *http.Client
	timeout time.Duration
	logger  *log.Logger
}

type Option func(*Checker)

func WithHTTPClient(c *http.Client) Option {
	return func(ch *Checker) { ch.client = c }
}

func WithTimeout(d time.Duration) Option {
	return func(ch *Checker) { ch.timeout = d }
}

func WithLogger(l *log.Logger) Option {
	return func(ch *Checker) { ch.logger = l }
}

// NewChecker returns a Checker for the document at url. An empty url makes
// every check a no-op that never requires an update.
func NewChecker(url string, opts ...Option) *Checker {
	c := &Checker{
		url:     url,
		client:  http.DefaultClient,
		timeout: 5 * time.Second,
		logger:  log.New(io.Discard, "", 0),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Check compares current against the remote minimum. Fetch and parse
// failures are logged and yield a verdict that lets the player continue.
func (c *Checker) Check(ctx context.Context, current string) Verdict {
	def := DefaultRemoteConfig()
	v := Verdict{Current: current, Minimum: def.MinimumVersion, Message: def.ForceUpdateMessage, UpdateURL: def.UpdateURL}
	if c.url == "" {
		return v
	}

	rc, err := c.Fetch(ctx)
	if err != nil {
		c.logger.Printf("warning: fetch remote config: %v", err)
		return v
	}
	v.Fetched = true
	v.Minimum, v.Message, v.UpdateURL = rc.MinimumVersion, rc.ForceUpdateMessage, rc.UpdateURL
	v.RequiresUpdate = rc.ForceUpdateRequired && Older(current, rc.MinimumVersion)
	return v
}

// Fetch retrieves and decodes the remote document over DefaultRemoteConfig.
func (c *Checker) Fetch(ctx context.Context) (RemoteConfig, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return RemoteConfig{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return RemoteConfig{}, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return RemoteConfig{}, fmt.Errorf("HTTP %d for %s", resp.StatusCode, c.url)
	}

	rc := DefaultRemoteConfig()
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&rc); err != nil {
		return RemoteConfig{}, fmt.Errorf("decode remote config: %w", err)
	}
	return rc, nil
}

// Older reports whether current is a lower semantic version than minimum.
// Development builds and unparsable versions are never older.
func Older(current, minimum string) bool {
	if current == DevVersion {
		return false
	}
	cur, lo := canonical(current), canonical(minimum)
	if cur == "" || lo == "" {
		return false
	}
	return semver.Compare(cur, lo) < 0
}

// canonical accepts "1.2", "v1.2.3" and "1.2.3-rc.1" style strings and
// returns the semver form, or "" when s is not a version.
func canonical(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if !strings.HasPrefix(s, "v") {
		s = "v" + s
	}
	return semver.Canonical(s)
}
