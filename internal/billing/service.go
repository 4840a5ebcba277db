// AngelaMos | 2026
// service.go

package billing

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/carterperez-dev/voice-to-ppt/internal/entitlement"
)

var ErrUnavailable = errors.New("entitlement store unavailable")

type Service struct {
	records *entitlement.Records
	markers []string
	logger  *slog.Logger
}

// NewService takes a nil store when Redis is unreachable; every event then
// reports ErrUnavailable.
func NewService(store entitlement.Store, lifetimeMarkers []string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}

	markers := make([]string, 0, len(lifetimeMarkers))
	for _, m := range lifetimeMarkers {
		if m = strings.ToLower(strings.TrimSpace(m)); m != "" {
			markers = append(markers, m)
		}
	}

	s := &Service{markers: markers, logger: logger}
	if store != nil {
		s.records = entitlement.NewRecords(store)
	}
	return s
}

func (s *Service) Available() bool {
	return s.records != nil
}

// IsLifetime reports whether a product id names the one-time purchase.
func (s *Service) IsLifetime(productID string) bool {
	p := strings.ToLower(productID)
	for _, m := range s.markers {
		if strings.Contains(p, m) {
			return true
		}
	}
	return false
}

// Apply runs the entitlement transition for ev and returns the webhook status.
func (s *Service) Apply(ctx context.Context, ev Event) (string, error) {
	if !s.Available() {
		return StatusRedisUnavailable, ErrUnavailable
	}

	log := s.logger.With("event", ev.Type, "user", ev.AppUserID)

	switch ev.Type {
	case EventTest:
		log.InfoContext(ctx, "billing test event")
		return StatusTestSuccess, nil

	case EventInitialPurchase:
		tier, created, err := s.records.GrantInitial(ctx, ev.AppUserID, s.IsLifetime(ev.ProductID))
		if err != nil {
			return StatusError, err
		}
		if created {
			log.InfoContext(ctx, "entitlement granted", "tier", tier, "product", ev.ProductID)
		} else {
			log.InfoContext(ctx, "entitlement already present")
		}

	case EventRenewal:
		renewed, err := s.records.Renew(ctx, ev.AppUserID)
		if err != nil {
			return StatusError, err
		}
		log.InfoContext(ctx, "subscription renewal", "applied", renewed)

	case EventCancellation:
		cancelled, err := s.records.Cancel(ctx, ev.AppUserID)
		if err != nil {
			return StatusError, err
		}
		log.InfoContext(ctx, "subscription cancellation", "applied", cancelled)

	case EventExpiration:
		if err := s.records.Expire(ctx, ev.AppUserID); err != nil {
			return StatusError, err
		}
		log.InfoContext(ctx, "entitlement expired")

	default:
		log.WarnContext(ctx, "unhandled billing event")
	}

	return StatusOK, nil
}
