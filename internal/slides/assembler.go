// AngelaMos | 2026
// assembler.go

package slides

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/voice-to-ppt/internal/core"
	"github.com/carterperez-dev/voice-to-ppt/internal/pptx"
	"github.com/carterperez-dev/voice-to-ppt/internal/templates"
)

var ErrMissingExemplar = errors.New("template needs a title and a content exemplar slide")

const (
	titleExemplar   = 0
	contentExemplar = 1
)

type TemplateLoader interface {
	Load(ctx context.Context, id string) (*pptx.Presentation, templates.Template, error)
}

type Options struct {
	Watermark bool
}

type Document struct {
	TemplateID string
	Slides     int
	Bytes      []byte
}

type Assembler struct {
	loader    TemplateLoader
	binder    *Binder
	watermark WatermarkStyle
	logger    *slog.Logger
}

func NewAssembler(
	loader TemplateLoader,
	binder *Binder,
	watermark WatermarkStyle,
	logger *slog.Logger,
) *Assembler {
	if binder == nil {
		binder = NewBinder(nil)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Assembler{
		loader:    loader,
		binder:    binder,
		watermark: watermark,
		logger:    logger,
	}
}

// Assemble builds one slide per spec from the template's exemplars, drops the
// exemplars and serializes the result.
func (a *Assembler) Assemble(
	ctx context.Context,
	outline Outline,
	opts Options,
) (*Document, error) {
	ctx, span := core.StartSpan(ctx, "slides.Assemble",
		attribute.String("template.requested", outline.TemplateID),
		attribute.Int("slides.count", len(outline.Slides)),
		attribute.Bool("watermark", opts.Watermark),
	)
	defer span.End()

	doc, err := a.assemble(ctx, outline, opts)
	if err != nil {
		core.SetSpanError(ctx, err)
		return nil, err
	}

	span.SetAttributes(attribute.String("template.resolved", doc.TemplateID))
	return doc, nil
}

func (a *Assembler) assemble(
	ctx context.Context,
	outline Outline,
	opts Options,
) (*Document, error) {
	pres, tpl, err := a.loader.Load(ctx, outline.TemplateID)
	if err != nil {
		return nil, fmt.Errorf("load template: %w", err)
	}

	if pres.Len() < 2 {
		return nil, fmt.Errorf("%w: %s has %d", ErrMissingExemplar, tpl.ID, pres.Len())
	}

	exemplars := map[Kind]*pptx.Slide{}
	exemplars[KindTitle], _ = pres.Slide(titleExemplar)
	exemplars[KindContent], _ = pres.Slide(contentExemplar)

	for _, spec := range outline.Slides {
		spec = spec.Normalize()

		slide, err := pres.CloneSlide(exemplars[spec.Kind])
		if err != nil {
			return nil, fmt.Errorf("clone %s exemplar for slide %d: %w", spec.Kind, spec.Number, err)
		}
		a.binder.Bind(slide, spec)
	}

	for _, i := range []int{contentExemplar, titleExemplar} {
		if err := pres.RemoveSlide(i); err != nil {
			return nil, fmt.Errorf("remove exemplar %d: %w", i, err)
		}
	}
	core.AddSpanEvent(ctx, "exemplars.pruned")

	if opts.Watermark {
		a.watermark.apply(pres)
		core.AddSpanEvent(ctx, "watermark.applied")
	}

	data, err := pres.Bytes()
	if err != nil {
		return nil, fmt.Errorf("serialize presentation: %w", err)
	}

	a.logger.DebugContext(ctx, "presentation assembled",
		"template", tpl.ID,
		"slides", pres.Len(),
		"watermark", opts.Watermark,
		"bytes", len(data),
	)

	return &Document{
		TemplateID: tpl.ID,
		Slides:     pres.Len(),
		Bytes:      data,
	}, nil
}
