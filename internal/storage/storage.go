// AngelaMos | 2026
// storage.go

package storage

import (
	"context"
	"fmt"

	"github.com/carterperez-dev/voice-to-ppt/internal/config"
)

const ContentTypePPTX = "application/vnd.openxmlformats-officedocument.presentationml.presentation"

// Store keeps generated documents by flat key. Get reports core.ErrNotFound
// for missing keys.
type Store interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Get(ctx context.Context, key string) ([]byte, error)
	Ping(ctx context.Context) error
}

// New builds the store selected by cfg.Driver.
func New(ctx context.Context, cfg config.StorageConfig) (Store, error) {
	switch cfg.Driver {
	case config.StorageLocal, "":
		return NewLocalStore(cfg.LocalDir)
	case config.StorageS3:
		return NewS3Store(ctx, cfg.S3)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
