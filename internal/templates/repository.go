// AngelaMos | 2026
// repository.go

package templates

import (
	"context"
	"errors"
	"fmt"

	"github.com/carterperez-dev/voice-to-ppt/internal/pptx"
)

var ErrUnknownDefault = errors.New("default template is not in the catalog")

// Source reads template files by name. storage.Store satisfies it.
type Source interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Ping(ctx context.Context) error
}

type Repository struct {
	source    Source
	byID      map[string]Template
	list      []Template
	defaultID string
}

func NewRepository(source Source, defaultID string) (*Repository, error) {
	list := Catalog()
	byID := make(map[string]Template, len(list))
	for _, t := range list {
		byID[t.ID] = t
	}

	if _, ok := byID[defaultID]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDefault, defaultID)
	}

	return &Repository{
		source:    source,
		byID:      byID,
		list:      list,
		defaultID: defaultID,
	}, nil
}

func (r *Repository) List() []Template {
	out := make([]Template, len(r.list))
	copy(out, r.list)
	return out
}

// Resolve maps an id to a catalog entry. Unknown or empty ids resolve to the
// default template.
func (r *Repository) Resolve(id string) Template {
	if t, ok := r.byID[id]; ok {
		return t
	}
	return r.byID[r.defaultID]
}

// Load resolves id and opens a fresh copy of the template document.
func (r *Repository) Load(
	ctx context.Context,
	id string,
) (*pptx.Presentation, Template, error) {
	t := r.Resolve(id)

	data, err := r.source.Get(ctx, t.File)
	if err != nil {
		return nil, t, fmt.Errorf("read template %s: %w", t.ID, err)
	}

	p, err := pptx.Open(data)
	if err != nil {
		return nil, t, fmt.Errorf("open template %s: %w", t.ID, err)
	}

	return p, t, nil
}

func (r *Repository) Ping(ctx context.Context) error {
	return r.source.Ping(ctx)
}
