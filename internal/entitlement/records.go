// AngelaMos | 2026
// records.go

package entitlement

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/carterperez-dev/voice-to-ppt/internal/core"
)

type Tier string

const (
	TierGuest        Tier = "guest"
	TierSubscription Tier = "subscription"
	TierLifetime     Tier = "lifetime"
)

func (t Tier) Paid() bool {
	return t == TierSubscription || t == TierLifetime
}

func parseTier(v string) Tier {
	switch Tier(v) {
	case TierSubscription, TierLifetime:
		return Tier(v)
	default:
		return TierGuest
	}
}

// Records reads and transitions the pro:{userID} entitlement record.
type Records struct {
	store Store
}

func NewRecords(store Store) *Records {
	return &Records{store: store}
}

// Lookup returns TierGuest for unknown users and unrecognised values.
func (r *Records) Lookup(ctx context.Context, userID string) (Tier, error) {
	if userID == "" {
		return TierGuest, nil
	}

	v, err := r.store.Get(ctx, ProKey(userID))
	if errors.Is(err, core.ErrNotFound) {
		return TierGuest, nil
	}
	if err != nil {
		return TierGuest, err
	}
	return parseTier(v), nil
}

// GrantInitial creates the record only if none exists, so a repeated or late
// purchase event never downgrades an existing grant. It reports whether a
// record was written.
func (r *Records) GrantInitial(ctx context.Context, userID string, lifetime bool) (Tier, bool, error) {
	tier, ttl := TierSubscription, SubscriptionTTL
	if lifetime {
		tier, ttl = TierLifetime, 0
	}

	created, err := r.store.SetIfAbsent(ctx, ProKey(userID), string(tier), ttl)
	if err != nil {
		return "", false, fmt.Errorf("grant %s: %w", tier, err)
	}
	return tier, created, nil
}

// Renew sets or refreshes a subscription. Lifetime grants are left alone.
func (r *Records) Renew(ctx context.Context, userID string) (bool, error) {
	current, err := r.Lookup(ctx, userID)
	if err != nil {
		return false, err
	}
	if current == TierLifetime {
		return false, nil
	}

	if err := r.store.Set(ctx, ProKey(userID), string(TierSubscription), SubscriptionTTL); err != nil {
		return false, fmt.Errorf("renew subscription: %w", err)
	}
	return true, nil
}

// Cancel deletes subscription records only.
func (r *Records) Cancel(ctx context.Context, userID string) (bool, error) {
	current, err := r.Lookup(ctx, userID)
	if err != nil {
		return false, err
	}
	if current != TierSubscription {
		return false, nil
	}

	if err := r.store.Delete(ctx, ProKey(userID)); err != nil {
		return false, fmt.Errorf("cancel subscription: %w", err)
	}
	return true, nil
}

// Expire deletes the record whatever its tier.
func (r *Records) Expire(ctx context.Context, userID string) error {
	if err := r.store.Delete(ctx, ProKey(userID)); err != nil {
		return fmt.Errorf("expire entitlement: %w", err)
	}
	return nil
}

type RecordInfo struct {
	UserID    string `json:"user_id"`
	Tier      Tier   `json:"tier"`
	ExpiresIn int64  `json:"expires_in_seconds"`
	Permanent bool   `json:"permanent"`
}

func (r *Records) Inspect(ctx context.Context, userID string) (*RecordInfo, error) {
	tier, err := r.Lookup(ctx, userID)
	if err != nil {
		return nil, err
	}

	info := &RecordInfo{UserID: userID, Tier: tier}
	if !tier.Paid() {
		return info, nil
	}

	ttl, err := r.store.TTL(ctx, ProKey(userID))
	if err != nil && !errors.Is(err, core.ErrNotFound) {
		return nil, err
	}
	info.Permanent = ttl < 0
	if ttl > 0 {
		info.ExpiresIn = int64(ttl / time.Second)
	}
	return info, nil
}

type GuestUsage struct {
	Fingerprint string `json:"fingerprint"`
	Count       int64  `json:"count"`
	ExpiresIn   int64  `json:"expires_in_seconds"`
}

func (r *Records) GuestUsage(ctx context.Context, fingerprint string) (*GuestUsage, error) {
	usage := &GuestUsage{Fingerprint: fingerprint}

	v, err := r.store.Get(ctx, GuestKey(fingerprint))
	if errors.Is(err, core.ErrNotFound) {
		return usage, nil
	}
	if err != nil {
		return nil, err
	}

	if _, err := fmt.Sscan(v, &usage.Count); err != nil {
		return nil, fmt.Errorf("guest counter %s: %w", fingerprint, err)
	}

	ttl, err := r.store.TTL(ctx, GuestKey(fingerprint))
	if err == nil && ttl > 0 {
		usage.ExpiresIn = int64(ttl / time.Second)
	}
	return usage, nil
}
