// AngelaMos | 2026
// text_test.go

package pptx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/voice-to-ppt/internal/pptx/pptxtest"
)

func contentBody(t *testing.T) *TextFrame {
	t.Helper()

	p := openFixture(t)
	slide, err := p.Slide(1)
	require.NoError(t, err)

	shapes := slide.TextShapes()
	require.Len(t, shapes, 2)
	return shapes[1].TextFrame()
}

func TestParagraphText(t *testing.T) {
	tf := contentBody(t)

	paras := tf.Paragraphs()
	require.Len(t, paras, 3)
	assert.Equal(t, pptxtest.StaleBody+" one\ncontinued", paras[0].Text())
	assert.Equal(t, 1, paras[1].Level())
	assert.Equal(t, 0, paras[2].Level())
}

func TestSetTextKeepsFormatting(t *testing.T) {
	tf := contentBody(t)
	p := tf.Paragraphs()[0]

	p.SetText("fresh")

	assert.Equal(t, "fresh", p.Text())

	runs := childrenNS(p.el, nsA, "r")
	require.Len(t, runs, 1)
	assert.Equal(t, "2400", childNS(runs[0], nsA, "rPr").SelectAttrValue("sz", ""))
	assert.Empty(t, childrenNS(p.el, nsA, "br"))

	pPr := p.Properties(false)
	require.NotNil(t, pPr)
	assert.Equal(t, "342900", pPr.SelectAttrValue("marL", ""))

	children := p.el.ChildElements()
	assert.Equal(t, "endParaRPr", children[len(children)-1].Tag)
}

func TestSetTextLineBreaks(t *testing.T) {
	tf := contentBody(t)
	p := tf.Paragraphs()[2]

	p.SetText("first\nsecond")

	assert.Equal(t, "first\nsecond", p.Text())
	assert.Len(t, childrenNS(p.el, nsA, "br"), 1)
}

func TestSetTextEmpty(t *testing.T) {
	tf := contentBody(t)
	p := tf.Paragraphs()[0]

	p.SetText("")

	assert.Equal(t, "", p.Text())
	assert.Empty(t, childrenNS(p.el, nsA, "r"))
	assert.NotNil(t, childNS(p.el, nsA, "endParaRPr"))
}

func TestSetTextWithoutRunsUsesEndProperties(t *testing.T) {
	p := openFixture(t)
	slide, err := p.Slide(0)
	require.NoError(t, err)

	title := slide.TextShapes()[1].TextFrame().Paragraphs()[0]
	title.SetText("")
	title.SetText("Quarterly review")

	run := childNS(title.el, nsA, "r")
	require.NotNil(t, run)
	assert.Equal(t, "4400", childNS(run, nsA, "rPr").SelectAttrValue("sz", ""))
}

func TestAppendParagraphLike(t *testing.T) {
	tf := contentBody(t)
	first := tf.Paragraphs()[0]

	added := tf.AppendParagraphLike(first)
	added.SetText("appended")

	paras := tf.Paragraphs()
	require.Len(t, paras, 4)
	assert.Equal(t, "appended", paras[3].Text())

	pPr := paras[3].Properties(false)
	require.NotNil(t, pPr)
	assert.Equal(t, "342900", pPr.SelectAttrValue("marL", ""))
	assert.NotNil(t, childNS(pPr, nsA, "buChar"))

	run := childNS(paras[3].el, nsA, "r")
	assert.Equal(t, "2400", childNS(run, nsA, "rPr").SelectAttrValue("sz", ""))
}

func TestRemoveParagraph(t *testing.T) {
	tf := contentBody(t)

	for _, p := range tf.Paragraphs()[1:] {
		tf.RemoveParagraph(p)
	}

	assert.Len(t, tf.Paragraphs(), 1)
	assert.Equal(t, pptxtest.StaleBody+" one\ncontinued", tf.Text())
}

func TestLevelAndIndent(t *testing.T) {
	tf := contentBody(t)
	paras := tf.Paragraphs()

	paras[1].SetLevel(0)
	assert.Equal(t, 0, paras[1].Level())
	assert.Equal(t, "", paras[1].Properties(false).SelectAttrValue("lvl", ""))

	paras[2].SetLevel(2)
	assert.Equal(t, 2, paras[2].Level())

	paras[0].FlattenIndent()
	pPr := paras[0].Properties(false)
	assert.Nil(t, pPr.SelectAttr("marL"))
	assert.Nil(t, pPr.SelectAttr("indent"))
	assert.NotNil(t, childNS(pPr, nsA, "buChar"), "bullet style survives")
}

func TestAddTextBox(t *testing.T) {
	p := openFixture(t)
	slide, err := p.Slide(1)
	require.NoError(t, err)

	box := slide.AddTextBox("Watermark", 100, 200, 300, 400)

	assert.Equal(t, "Watermark 6", box.Name())
	x, y, ok := box.Offset()
	require.True(t, ok)
	assert.Equal(t, int64(100), x)
	assert.Equal(t, int64(200), y)

	para := box.TextFrame().Paragraphs()[0]
	para.SetText("stamp")
	para.SetFont(12, "F5A623")
	para.SetAlignment("ctr")

	assert.Equal(t, "stamp", box.TextFrame().Text())
	assert.Equal(t, "ctr", para.Properties(false).SelectAttrValue("algn", ""))

	rPr := childNS(childNS(para.el, nsA, "r"), nsA, "rPr")
	require.NotNil(t, rPr)
	assert.Equal(t, "1200", rPr.SelectAttrValue("sz", ""))
	clr := childNS(childNS(rPr, nsA, "solidFill"), nsA, "srgbClr")
	require.NotNil(t, clr)
	assert.Equal(t, "F5A623", clr.SelectAttrValue("val", ""))

	assert.Len(t, slide.TextShapes(), 3)
}
