// AngelaMos | 2026
// binder.go

package slides

import (
	"github.com/carterperez-dev/voice-to-ppt/internal/pptx"
)

// Binder writes a SlideSpec into a slide cloned from an exemplar. It edits
// the existing text bodies in place so template styling carries over.
type Binder struct {
	order ShapeOrder
}

func NewBinder(order ShapeOrder) *Binder {
	if order == nil {
		order = VerticalOrder{}
	}
	return &Binder{order: order}
}

func (b *Binder) Bind(slide *pptx.Slide, spec SlideSpec) {
	spec = spec.Normalize()

	shapes := b.order.Order(slide.TextShapes())
	if len(shapes) == 0 {
		return
	}

	setFirstParagraph(shapes[0].TextFrame(), spec.Title)

	if len(shapes) < 2 {
		return
	}
	body := shapes[1].TextFrame()

	if spec.Kind == KindTitle {
		subtitle := ""
		if len(spec.Content) > 0 {
			subtitle = spec.Content[0]
		}
		setFirstParagraph(body, subtitle)
		return
	}

	bindBody(body, spec)
}

func bindBody(tf *pptx.TextFrame, spec SlideSpec) {
	paras := tf.Paragraphs()
	if len(paras) == 0 {
		paras = []*pptx.Paragraph{tf.AddParagraph()}
	}

	for _, p := range paras[1:] {
		tf.RemoveParagraph(p)
	}
	first := paras[0]

	if len(spec.Content) == 0 {
		first.SetText("")
		return
	}

	if spec.Format == FormatParagraph {
		first.SetText(spec.Content[0])
		first.FlattenIndent()
		return
	}

	first.SetText(spec.Content[0])
	first.SetLevel(0)
	for _, line := range spec.Content[1:] {
		p := tf.AppendParagraphLike(first)
		p.SetText(line)
		p.SetLevel(0)
	}
}

func setFirstParagraph(tf *pptx.TextFrame, text string) {
	paras := tf.Paragraphs()
	if len(paras) == 0 {
		tf.AddParagraph().SetText(text)
		return
	}
	paras[0].SetText(text)
}
