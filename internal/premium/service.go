// Package premium tracks the ad-free subscription.
package premium

import (
	"context"
	"fmt"
	"io"
	"log"
	"slices"
	"strconv"
	"sync"
)

// premiumKey caches the entitlement so startup does not depend on billing.
const premiumKey = "isPremium"

// Status is the purchase flow state shown by the premium screen.
type Status int

const (
	Idle Status = iota
	Purchasing
	Succeeded
	Failed
)

func (s Status) String() string {
	switch s {
	case Purchasing:
		return "purchasing"
	case Succeeded:
		return "success"
	case Failed:
		return "failed"
	default:
		return "idle"
	}
}

// PurchaseState is Status plus the failure message, if any.
type PurchaseState struct {
	Status  Status
	Message string
}

// Service owns the premium flag. It is safe for concurrent use.
type Service struct {
	billing Billing
	kv      KV
	logger  *log.Logger

	mu       sync.RWMutex
	premium  bool
	products []Product
	state    PurchaseState
	watchers []func(bool)
}

// NewService reads the cached flag, then refreshes it and the product list
// from billing. Billing failures keep the cached flag and are logged.
func NewService(ctx context.Context, billing Billing, kv KV, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	s := &Service{billing: billing, kv: kv, logger: logger}

	if raw, ok, err := kv.Get(ctx, premiumKey); err != nil {
		logger.Printf("warning: read premium flag: %v", err)
	} else if ok {
		s.premium, _ = strconv.ParseBool(raw)
	}

	if err := s.refresh(ctx); err != nil {
		logger.Printf("warning: refresh entitlements: %v", err)
	}
	if products, err := billing.Products(ctx); err != nil {
		logger.Printf("warning: load products: %v", err)
	} else {
		s.products = products
	}
	return s
}

func (s *Service) IsPremium() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.premium
}

func (s *Service) Products() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.products)
}

func (s *Service) State() PurchaseState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// OnChange registers fn to run whenever the premium flag flips.
func (s *Service) OnChange(fn func(premium bool)) {
	s.mu.Lock()
	s.watchers = append(s.watchers, fn)
	s.mu.Unlock()
}

// Purchase buys productID. A cancelled purchase returns to Idle.
func (s *Service) Purchase(ctx context.Context, productID string) PurchaseState {
	if !slices.ContainsFunc(s.Products(), func(p Product) bool { return p.ID == productID }) {
		return s.setState(PurchaseState{Status: Failed, Message: "product not found"})
	}
	s.setState(PurchaseState{Status: Purchasing})

	tx, err := s.billing.Purchase(ctx, productID)
	if err != nil {
		return s.setState(PurchaseState{Status: Failed, Message: fmt.Sprintf("purchase failed: %v", err)})
	}
	switch tx.Outcome {
	case Verified:
		s.setPremium(ctx, true)
		return s.setState(PurchaseState{Status: Succeeded})
	case Cancelled:
		return s.setState(PurchaseState{Status: Idle})
	case Pending:
		return s.setState(PurchaseState{Status: Failed, Message: "purchase is pending approval"})
	default:
		return s.setState(PurchaseState{Status: Failed, Message: "purchase could not be verified"})
	}
}

// Restore syncs billing and recomputes the flag from current entitlements.
func (s *Service) Restore(ctx context.Context) PurchaseState {
	if err := s.billing.Sync(ctx); err != nil {
		return s.setState(PurchaseState{Status: Failed, Message: fmt.Sprintf("restore failed: %v", err)})
	}
	if err := s.refresh(ctx); err != nil {
		return s.setState(PurchaseState{Status: Failed, Message: fmt.Sprintf("restore failed: %v", err)})
	}
	return s.setState(PurchaseState{Status: Succeeded})
}

func (s *Service) refresh(ctx context.Context) error {
	owned, err := s.billing.Entitlements(ctx)
	if err != nil {
		return err
	}
	s.setPremium(ctx, slices.ContainsFunc(owned, func(id string) bool {
		return slices.Contains(ProductIDs, id)
	}))
	return nil
}

func (s *Service) setPremium(ctx context.Context, v bool) {
	s.mu.Lock()
	changed := s.premium != v
	s.premium = v
	watchers := slices.Clone(s.watchers)
	s.mu.Unlock()

	if err := s.kv.Set(ctx, premiumKey, strconv.FormatBool(v)); err != nil {
		s.logger.Printf("warning: save premium flag: %v", err)
	}
	if changed {
		for _, fn := range watchers {
			fn(v)
		}
	}
}

func (s *Service) setState(st PurchaseState) PurchaseState {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
	return st
}
