// AngelaMos | 2026
// assembler_test.go

package slides

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/voice-to-ppt/internal/pptx"
	"github.com/carterperez-dev/voice-to-ppt/internal/pptx/pptxtest"
	"github.com/carterperez-dev/voice-to-ppt/internal/templates"
)

type fixtureLoader struct {
	data []byte
	err  error
	seen []string
}

func (f *fixtureLoader) Load(
	_ context.Context,
	id string,
) (*pptx.Presentation, templates.Template, error) {
	f.seen = append(f.seen, id)
	if f.err != nil {
		return nil, templates.Template{}, f.err
	}
	p, err := pptx.Open(f.data)
	return p, templates.Template{ID: "slate"}, err
}

func newTestAssembler(loader TemplateLoader) *Assembler {
	return NewAssembler(loader, nil, DefaultWatermark(""), nil)
}

func sampleOutline() Outline {
	return Outline{
		TemplateID: "nope",
		Title:      "Quarterly review",
		Slides: []SlideSpec{
			{Number: 1, Kind: KindTitle, Title: "Quarterly review", Content: []string{"Q3 2026"}},
			{Number: 2, Kind: KindContent, Title: "Highlights", Content: []string{"Revenue up", "Churn down"}},
			{Number: 3, Kind: KindContent, Format: FormatParagraph, Title: "Outlook", Content: []string{"Steady."}},
		},
	}
}

func reopen(t *testing.T, doc *Document) *pptx.Presentation {
	t.Helper()

	p, err := pptx.Open(doc.Bytes)
	require.NoError(t, err)
	return p
}

func TestAssemble(t *testing.T) {
	loader := &fixtureLoader{data: pptxtest.Template()}

	doc, err := newTestAssembler(loader).Assemble(context.Background(), sampleOutline(), Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"nope"}, loader.seen)
	assert.Equal(t, "slate", doc.TemplateID)
	assert.Equal(t, 3, doc.Slides)

	p := reopen(t, doc)
	require.Equal(t, 3, p.Len())

	want := [][]string{
		{"Quarterly review", "Q3 2026"},
		{"Highlights", "Revenue up\nChurn down"},
		{"Outlook", "Steady."},
	}
	for i, slide := range p.Slides() {
		assert.Equal(t, want[i], textsInOrder(slide), "slide %d", i+1)
	}

	first, err := p.Slide(0)
	require.NoError(t, err)
	assert.Equal(t, "ppt/slideLayouts/slideLayout1.xml", first.LayoutPartName())
	assert.Len(t, first.Shapes(), 3, "picture from the exemplar is kept")
}

func TestAssemblePrunesExemplars(t *testing.T) {
	loader := &fixtureLoader{data: pptxtest.Template()}

	doc, err := newTestAssembler(loader).Assemble(context.Background(), Outline{}, Options{})
	require.NoError(t, err)

	p := reopen(t, doc)
	assert.Equal(t, 0, p.Len())
	assert.False(t, p.HasPart("ppt/slides/slide1.xml"))
	assert.False(t, p.HasPart("ppt/slides/slide2.xml"))
	assert.False(t, p.HasPart("ppt/notesSlides/notesSlide1.xml"))
	assert.True(t, p.HasPart("ppt/slideLayouts/slideLayout1.xml"))
}

func TestAssembleNoStaleText(t *testing.T) {
	loader := &fixtureLoader{data: pptxtest.Template()}

	doc, err := newTestAssembler(loader).Assemble(context.Background(), sampleOutline(), Options{})
	require.NoError(t, err)

	for _, slide := range reopen(t, doc).Slides() {
		for _, text := range textsInOrder(slide) {
			assert.NotContains(t, text, "Exemplar")
		}
	}
}

func countWatermarks(slide *pptx.Slide) int {
	n := 0
	for _, sh := range slide.Shapes() {
		if strings.HasPrefix(sh.Name(), watermarkShapeName) {
			n++
		}
	}
	return n
}

func TestAssembleWatermark(t *testing.T) {
	loader := &fixtureLoader{data: pptxtest.Template()}

	doc, err := newTestAssembler(loader).Assemble(
		context.Background(),
		sampleOutline(),
		Options{Watermark: true},
	)
	require.NoError(t, err)

	for _, slide := range reopen(t, doc).Slides() {
		require.Equal(t, 1, countWatermarks(slide))

		for _, sh := range slide.Shapes() {
			if !strings.HasPrefix(sh.Name(), watermarkShapeName) {
				continue
			}
			assert.Equal(t, DefaultWatermarkText, sh.TextFrame().Text())

			x, y, ok := sh.Offset()
			require.True(t, ok)
			assert.Equal(t, int64(pptxtest.SlideWidth-7*emuPerInch)/2, x)
			assert.Equal(t, int64(pptxtest.SlideHeight-emuPerInch), y)
		}
	}
}

func TestAssembleWithoutWatermark(t *testing.T) {
	loader := &fixtureLoader{data: pptxtest.Template()}

	doc, err := newTestAssembler(loader).Assemble(context.Background(), sampleOutline(), Options{})
	require.NoError(t, err)

	for _, slide := range reopen(t, doc).Slides() {
		assert.Zero(t, countWatermarks(slide))
	}
}

func TestAssembleSingleSlideTemplate(t *testing.T) {
	loader := &fixtureLoader{data: pptxtest.SingleSlideTemplate()}

	_, err := newTestAssembler(loader).Assemble(context.Background(), sampleOutline(), Options{})
	assert.ErrorIs(t, err, ErrMissingExemplar)
}

func TestAssembleLoaderError(t *testing.T) {
	boom := errors.New("disk gone")
	loader := &fixtureLoader{err: boom}

	_, err := newTestAssembler(loader).Assemble(context.Background(), sampleOutline(), Options{})
	assert.ErrorIs(t, err, boom)
}

func TestDefaultWatermark(t *testing.T) {
	w := DefaultWatermark("")
	assert.Equal(t, DefaultWatermarkText, w.Text)
	assert.Equal(t, "F5A623", w.Color)
	assert.Equal(t, 12, w.SizePt)

	assert.Equal(t, "Custom", DefaultWatermark("Custom").Text)
}
