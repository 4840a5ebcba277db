// AngelaMos | 2026
// guard.go

package entitlement

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/carterperez-dev/voice-to-ppt/internal/core"
	"github.com/carterperez-dev/voice-to-ppt/internal/middleware"
)

type decisionKey struct{}

// Capabilities is fixed at startup. Without a reachable store nothing is
// enforced: no limit and no watermark.
type Capabilities struct {
	Enforce bool
}

type Policy struct {
	FreeLimit  int
	UpgradeURL string
}

// Decision is the classification of one generation request.
type Decision struct {
	Enforced bool
	Tier     Tier
	UserID   string
	GuestID  string
	Count    int64
	Limit    int
}

func (d Decision) Paid() bool {
	return d.Tier.Paid()
}

// OverLimit is true once a guest has used more than the free allowance.
func (d Decision) OverLimit() bool {
	return d.Enforced && !d.Paid() && d.Count > int64(d.Limit)
}

// Watermark is true for a guest at or beyond the free allowance.
func (d Decision) Watermark() bool {
	return d.Enforced && !d.Paid() && d.Count >= int64(d.Limit)
}

// Identity keys history and filenames: the app user id when present, else the
// guest fingerprint.
func (d Decision) Identity() string {
	if d.UserID != "" {
		return d.UserID
	}
	return d.GuestID
}

type Guard struct {
	records *Records
	store   Store
	caps    Capabilities
	policy  Policy
	logger  *slog.Logger
}

func NewGuard(store Store, caps Capabilities, policy Policy, logger *slog.Logger) *Guard {
	if store == nil {
		caps.Enforce = false
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Guard{
		records: NewRecords(store),
		store:   store,
		caps:    caps,
		policy:  policy,
		logger:  logger,
	}
}

// Evaluate classifies a request. Paid users are checked first and never touch
// a guest counter. Store failures degrade to an unenforced decision.
func (g *Guard) Evaluate(ctx context.Context, userID, guestID string) Decision {
	d := Decision{
		Tier:    TierGuest,
		UserID:  userID,
		GuestID: guestID,
		Limit:   g.policy.FreeLimit,
	}

	if !g.caps.Enforce {
		return d
	}

	if userID != "" {
		tier, err := g.records.Lookup(ctx, userID)
		if err != nil {
			g.logger.WarnContext(ctx, "entitlement lookup failed, not enforcing",
				"error", err,
			)
			return d
		}
		if tier.Paid() {
			d.Tier = tier
			d.Enforced = true
			return d
		}
	}

	key := GuestKey(guestID)
	count, err := g.store.Incr(ctx, key)
	if err != nil {
		g.logger.WarnContext(ctx, "guest counter failed, not enforcing",
			"error", err,
		)
		return d
	}
	if err := g.store.Expire(ctx, key, GuestTTL); err != nil {
		g.logger.WarnContext(ctx, "guest counter expiry not refreshed",
			"error", err,
		)
	}

	d.Enforced = true
	d.Count = count
	return d
}

type LimitReachedResponse struct {
	Status     string `json:"status"`
	Used       int64  `json:"used"`
	Limit      int    `json:"limit"`
	GuestID    string `json:"guest_id"`
	UpgradeURL string `json:"upgrade_url"`
	Message    string `json:"message"`
}

// Middleware guards the generation endpoint. Over-limit guests get 402 and
// the handler never runs; everyone else carries a Decision in the context.
func (g *Guard) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		d := g.Evaluate(ctx, middleware.GetUserID(ctx), RequestFingerprint(r))

		if d.OverLimit() {
			g.logger.InfoContext(ctx, "guest limit reached",
				"guest", shortID(d.GuestID),
				"used", d.Count,
				"limit", d.Limit,
			)
			core.JSON(w, http.StatusPaymentRequired, LimitReachedResponse{
				Status:     "limit_reached",
				Used:       d.Count,
				Limit:      d.Limit,
				GuestID:    d.GuestID,
				UpgradeURL: g.policy.UpgradeURL,
				Message: fmt.Sprintf(
					"You've created %d amazing presentations!",
					d.Limit,
				),
			})
			return
		}

		next.ServeHTTP(w, r.WithContext(WithDecision(ctx, d)))
	})
}

func WithDecision(ctx context.Context, d Decision) context.Context {
	return context.WithValue(ctx, decisionKey{}, d)
}

// DecisionFromContext returns the guard's decision, or false when the request
// did not pass through the guard.
func DecisionFromContext(ctx context.Context) (Decision, bool) {
	d, ok := ctx.Value(decisionKey{}).(Decision)
	return d, ok
}

// TierOf reports the tier for rate limiting. Requests without a decision
// count as guests.
func TierOf(r *http.Request) string {
	if d, ok := DecisionFromContext(r.Context()); ok {
		return string(d.Tier)
	}
	return string(TierGuest)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
