// AngelaMos | 2026
// history.go

package history

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/carterperez-dev/voice-to-ppt/internal/entitlement"
)

const (
	GuestCap = 3
	PaidCap  = 50
	MaxList  = 10

	GuestTTL = time.Hour
	PaidTTL  = 30 * 24 * time.Hour
)

type Entry struct {
	Filename string `json:"filename"`
	Template string `json:"template"`
	Created  int64  `json:"created"`
	URL      string `json:"url"`
	IsPro    bool   `json:"is_pro"`
	Tier     string `json:"tier,omitempty"`
}

type Service struct {
	store  entitlement.Store
	logger *slog.Logger
}

// NewService accepts a nil store: Record becomes a no-op and List returns
// nothing.
func NewService(store entitlement.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, logger: logger}
}

// Record prepends e to the identity's list, trims it to the tier's cap and
// refreshes its expiry.
func (s *Service) Record(ctx context.Context, identity string, e Entry, paid bool) error {
	if s.store == nil || identity == "" {
		return nil
	}

	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode history entry: %w", err)
	}

	keep, ttl := int64(GuestCap), GuestTTL
	if paid {
		keep, ttl = PaidCap, PaidTTL
	}

	key := entitlement.HistoryKey(identity)
	if err := s.store.PushHistory(ctx, key, string(data)); err != nil {
		return err
	}
	if err := s.store.TrimHistory(ctx, key, keep); err != nil {
		return err
	}
	return s.store.Expire(ctx, key, ttl)
}

// List returns up to MaxList entries, newest first. Corrupt entries are
// skipped and store failures yield an empty list.
func (s *Service) List(ctx context.Context, identity string) []Entry {
	out := []Entry{}
	if s.store == nil || identity == "" {
		return out
	}

	items, err := s.store.History(ctx, entitlement.HistoryKey(identity), MaxList)
	if err != nil {
		s.logger.WarnContext(ctx, "history unavailable", "error", err)
		return out
	}

	for _, item := range items {
		var e Entry
		if err := json.Unmarshal([]byte(item), &e); err != nil {
			s.logger.WarnContext(ctx, "skipping corrupt history entry", "error", err)
			continue
		}
		out = append(out, e)
	}
	return out
}
