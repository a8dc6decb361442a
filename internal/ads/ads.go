// Package ads runs the checkpoint interstitial and the footer banner.
package ads

import (
	"context"
	"errors"
	"sync"
)

// Ad is one piece of interstitial creative.
type Ad struct {
	ID       string
	Headline string
	Body     string
	Action   string
}

// Source supplies interstitials.
type Source interface {
	Load(ctx context.Context) (Ad, error)
}

// ErrNoFill is returned by a Source with nothing to show.
var ErrNoFill = errors.New("no ad to show")

// HouseAds rotates through built-in creatives. It never fails unless it is
// empty.
type HouseAds struct {
	mu      sync.Mutex
	ads     []Ad
	banners []string
	next    int
}

func NewHouseAds() *HouseAds {
	return &HouseAds{
		ads: []Ad{
			{
				ID:       "premium",
				Headline: "Fight without interruption",
				Body:     "Premium removes the checkpoint interstitials.",
				Action:   "Press p on the home screen to subscribe",
			},
			{
				ID:       "castles",
				Headline: "Twelve original castles still stand",
				Body:     "Himeji, Matsumoto and Inuyama kept their Edo-period keeps.",
				Action:   "Plan a visit",
			},
			{
				ID:       "drafts",
				Headline: "Write your own questions",
				Body:     "sengoku questions draft asks a language model for new material.",
				Action:   "Run sengoku questions --help",
			},
		},
		banners: []string{
			"Sengoku Quiz Premium: no interstitials, same glory.",
			"Did you know? Nagashino (1575) made the arquebus famous.",
			"Climb from Small Daimyo to Ruler of the Realm.",
		},
	}
}

// Load returns the next creative in rotation.
func (h *HouseAds) Load(ctx context.Context) (Ad, error) {
	if err := ctx.Err(); err != nil {
		return Ad{}, err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.ads) == 0 {
		return Ad{}, ErrNoFill
	}
	ad := h.ads[h.next%len(h.ads)]
	h.next++
	return ad, nil
}

// Banner returns the footer text for tick n.
func (h *HouseAds) Banner(n int) string {
	if len(h.banners) == 0 {
		return ""
	}
	l := len(h.banners)
	return h.banners[(n%l+l)%l]
}
