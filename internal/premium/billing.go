package premium

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"
)

// Product ids of the subscription plans.
const (
	ProductMonthly = "sengoku.premium.monthly"
	ProductYearly  = "sengoku.premium.yearly"
)

// ProductIDs lists every id that grants premium.
var ProductIDs = []string{ProductMonthly, ProductYearly}

// Product is a purchasable plan.
type Product struct {
	ID     string
	Title  string
	Price  string
	Period string
}

// Outcome is what the billing backend reports for a purchase attempt.
type Outcome int

const (
	Verified Outcome = iota
	Unverified
	Cancelled
	Pending
)

// Transaction is the result of Billing.Purchase.
type Transaction struct {
	ProductID   string
	Outcome     Outcome
	PurchasedAt time.Time
}

// Billing is the store the player pays through.
type Billing interface {
	Products(ctx context.Context) ([]Product, error)
	Purchase(ctx context.Context, productID string) (Transaction, error)

	// Entitlements returns the product ids the player currently owns.
	Entitlements(ctx context.Context) ([]string, error)

	// Sync refreshes entitlements from the backend before a restore.
	Sync(ctx context.Context) error
}

// KV is the small key/value surface premium state is kept in.
// store.SettingsRepo satisfies it.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// ErrUnknownProduct is returned for ids outside ProductIDs.
var ErrUnknownProduct = errors.New("unknown product")

const localEntitlementsKey = "billing.local.entitlements"

// LocalBilling grants every purchase immediately and remembers it in kv.
// It stands in for a real storefront in the terminal edition.
type LocalBilling struct {
	kv  KV
	now func() time.Time
}

func NewLocalBilling(kv KV) *LocalBilling {
	return &LocalBilling{kv: kv, now: time.Now}
}

func (b *LocalBilling) Products(context.Context) ([]Product, error) {
	return []Product{
		{ID: ProductMonthly, Title: "Premium (monthly)", Price: "$2.99", Period: "month"},
		{ID: ProductYearly, Title: "Premium (yearly)", Price: "$19.99", Period: "year"},
	}, nil
}

func (b *LocalBilling) Purchase(ctx context.Context, productID string) (Transaction, error) {
	if !slices.Contains(ProductIDs, productID) {
		return Transaction{}, fmt.Errorf("%w: %s", ErrUnknownProduct, productID)
	}
	owned, err := b.Entitlements(ctx)
	if err != nil {
		return Transaction{}, err
	}
	if !slices.Contains(owned, productID) {
		owned = append(owned, productID)
		data, err := json.Marshal(owned)
		if err != nil {
			return Transaction{}, err
		}
		if err := b.kv.Set(ctx, localEntitlementsKey, string(data)); err != nil {
			return Transaction{}, fmt.Errorf("record entitlement: %w", err)
		}
	}
	return Transaction{ProductID: productID, Outcome: Verified, PurchasedAt: b.now()}, nil
}

func (b *LocalBilling) Entitlements(ctx context.Context) ([]string, error) {
	raw, ok, err := b.kv.Get(ctx, localEntitlementsKey)
	if err != nil {
		return nil, fmt.Errorf("read entitlements: %w", err)
	}
	if !ok {
		return nil, nil
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil, fmt.Errorf("decode entitlements: %w", err)
	}
	return ids, nil
}

func (b *LocalBilling) Sync(context.Context) error { return nil }
