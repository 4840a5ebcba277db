// AngelaMos | 2026
// presentation_test.go

package pptx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/voice-to-ppt/internal/pptx/pptxtest"
)

func openFixture(t *testing.T) *Presentation {
	t.Helper()

	p, err := Open(pptxtest.Template())
	require.NoError(t, err)
	return p
}

func TestOpen(t *testing.T) {
	p := openFixture(t)

	assert.Equal(t, 2, p.Len())

	cx, cy := p.SlideSize()
	assert.Equal(t, int64(pptxtest.SlideWidth), cx)
	assert.Equal(t, int64(pptxtest.SlideHeight), cy)

	first, err := p.Slide(0)
	require.NoError(t, err)
	assert.Equal(t, "ppt/slides/slide1.xml", first.PartName())
	assert.Equal(t, "ppt/slideLayouts/slideLayout1.xml", first.LayoutPartName())

	_, err = p.Slide(2)
	assert.ErrorIs(t, err, ErrSlideIndex)
}

func TestOpenRejectsGarbage(t *testing.T) {
	_, err := Open([]byte("not a zip"))
	assert.Error(t, err)
}

func TestShapeOffsets(t *testing.T) {
	p := openFixture(t)

	title, err := p.Slide(0)
	require.NoError(t, err)

	shapes := title.TextShapes()
	require.Len(t, shapes, 2)

	_, y, ok := shapes[0].Offset()
	require.True(t, ok)
	assert.Equal(t, int64(pptxtest.SubtitleY), y)

	typ, idx, ok := shapes[1].Placeholder()
	require.True(t, ok)
	assert.Equal(t, "ctrTitle", typ)
	assert.Equal(t, 0, idx)

	_, y, ok = shapes[1].Offset()
	require.True(t, ok, "title offset is inherited from the layout")
	assert.Equal(t, int64(pptxtest.TitleY), y)

	assert.Len(t, title.Shapes(), 3)
	assert.Equal(t, "pic", title.Shapes()[2].Kind())
	assert.False(t, title.Shapes()[2].HasTextFrame())
	assert.Nil(t, title.Shapes()[2].TextFrame())
}

func TestShapeOffsetFromMaster(t *testing.T) {
	p := openFixture(t)

	content, err := p.Slide(1)
	require.NoError(t, err)

	body := content.TextShapes()[1]
	spPr := childNS(body.el, nsP, "spPr")
	spPr.RemoveChild(childNS(spPr, nsA, "xfrm"))

	_, y, ok := body.Offset()
	require.True(t, ok)
	assert.Equal(t, int64(pptxtest.ContentBodyY), y)
}

func TestCloneSlide(t *testing.T) {
	p := openFixture(t)

	src, err := p.Slide(0)
	require.NoError(t, err)

	clone, err := p.CloneSlide(src)
	require.NoError(t, err)

	assert.Equal(t, 3, p.Len())
	assert.Equal(t, "ppt/slides/slide3.xml", clone.PartName())
	assert.Equal(t, src.LayoutPartName(), clone.LayoutPartName())
	assert.True(t, p.HasPart("ppt/slides/_rels/slide3.xml.rels"))

	for _, rel := range clone.rels.all() {
		assert.NotEqual(t, relNotesSlide, relKind(rel), "notes are not cloned")
	}

	assert.Equal(t,
		src.TextShapes()[1].TextFrame().Text(),
		clone.TextShapes()[1].TextFrame().Text(),
	)

	clone.TextShapes()[1].TextFrame().Paragraphs()[0].SetText("changed")
	assert.Equal(t, pptxtest.StaleTitle, src.TextShapes()[1].TextFrame().Text(),
		"editing a clone leaves the source untouched")
}

func TestRemoveSlide(t *testing.T) {
	p := openFixture(t)

	require.NoError(t, p.RemoveSlide(0))

	assert.Equal(t, 1, p.Len())
	assert.False(t, p.HasPart("ppt/slides/slide1.xml"))
	assert.False(t, p.HasPart("ppt/slides/_rels/slide1.xml.rels"))
	assert.False(t, p.HasPart("ppt/notesSlides/notesSlide1.xml"))
	assert.False(t, p.HasPart("ppt/notesSlides/_rels/notesSlide1.xml.rels"))
	assert.True(t, p.HasPart("ppt/media/image1.png"))

	assert.ErrorIs(t, p.RemoveSlide(5), ErrSlideIndex)
}

func TestSaveRoundTrip(t *testing.T) {
	p := openFixture(t)

	title, err := p.Slide(0)
	require.NoError(t, err)
	content, err := p.Slide(1)
	require.NoError(t, err)

	_, err = p.CloneSlide(content)
	require.NoError(t, err)
	_, err = p.CloneSlide(title)
	require.NoError(t, err)

	require.NoError(t, p.RemoveSlide(1))
	require.NoError(t, p.RemoveSlide(0))

	data, err := p.Bytes()
	require.NoError(t, err)

	reopened, err := Open(data)
	require.NoError(t, err)
	require.Equal(t, 2, reopened.Len())

	first, err := reopened.Slide(0)
	require.NoError(t, err)
	assert.Equal(t, "ppt/slides/slide3.xml", first.PartName())

	ct, err := reopened.pkg.xml(contentTypesPart)
	require.NoError(t, err)
	var overrides []string
	for _, o := range ct.Root().SelectElements("Override") {
		overrides = append(overrides, o.SelectAttrValue("PartName", ""))
	}
	assert.Contains(t, overrides, "/ppt/slides/slide3.xml")
	assert.Contains(t, overrides, "/ppt/slides/slide4.xml")
	assert.NotContains(t, overrides, "/ppt/slides/slide1.xml")
	assert.NotContains(t, overrides, "/ppt/slides/slide2.xml")
	assert.NotContains(t, overrides, "/ppt/notesSlides/notesSlide1.xml")

	ids := childrenNS(reopened.slideIDList(false), nsP, "sldId")
	require.Len(t, ids, 2)
	assert.Equal(t, "258", ids[0].SelectAttrValue("id", ""))
	assert.Equal(t, "259", ids[1].SelectAttrValue("id", ""))
}
