// AngelaMos | 2026
// text.go

package pptx

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// TextFrame is the txBody of a shape.
type TextFrame struct {
	body *etree.Element
}

func (tf *TextFrame) Paragraphs() []*Paragraph {
	var out []*Paragraph
	for _, p := range childrenNS(tf.body, nsA, "p") {
		out = append(out, &Paragraph{el: p})
	}
	return out
}

// Text joins paragraph texts with newlines.
func (tf *TextFrame) Text() string {
	var lines []string
	for _, p := range tf.Paragraphs() {
		lines = append(lines, p.Text())
	}
	return strings.Join(lines, "\n")
}

// AddParagraph appends an empty paragraph with no properties.
func (tf *TextFrame) AddParagraph() *Paragraph {
	p := newChild(tf.body, nsA, "p")
	tf.body.AddChild(p)
	return &Paragraph{el: p}
}

// AppendParagraphLike appends an empty paragraph that copies the paragraph
// properties and first run formatting of tmpl.
func (tf *TextFrame) AppendParagraphLike(tmpl *Paragraph) *Paragraph {
	p := tf.AddParagraph()
	if tmpl == nil {
		return p
	}

	if pPr := childNS(tmpl.el, nsA, "pPr"); pPr != nil {
		p.el.AddChild(pPr.Copy())
	}
	if rPr := tmpl.runProperties(); rPr != nil {
		end := rPr.Copy()
		end.Tag = "endParaRPr"
		p.el.AddChild(end)
	}
	return p
}

func (tf *TextFrame) RemoveParagraph(p *Paragraph) {
	if p == nil || p.el.Parent() != tf.body {
		return
	}
	tf.body.RemoveChild(p.el)
}

// Paragraph is one a:p element.
type Paragraph struct {
	el *etree.Element
}

func (p *Paragraph) Text() string {
	var sb strings.Builder
	for _, c := range p.el.ChildElements() {
		if c.NamespaceURI() != nsA {
			continue
		}
		switch c.Tag {
		case "r", "fld":
			if t := childNS(c, nsA, "t"); t != nil {
				sb.WriteString(t.Text())
			}
		case "br":
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// runProperties returns the rPr of the first run or field, falling back to
// the end-of-paragraph properties.
func (p *Paragraph) runProperties() *etree.Element {
	for _, c := range p.el.ChildElements() {
		if isNS(c, nsA, "r") || isNS(c, nsA, "fld") {
			if rPr := childNS(c, nsA, "rPr"); rPr != nil {
				return rPr
			}
		}
	}
	return childNS(p.el, nsA, "endParaRPr")
}

// SetText replaces every run with a single run that keeps the formatting of
// the first one. Newlines become line breaks.
func (p *Paragraph) SetText(text string) {
	var rPr *etree.Element
	if src := p.runProperties(); src != nil {
		rPr = src.Copy()
		rPr.Tag = "rPr"
	}

	for _, c := range p.el.ChildElements() {
		if c.NamespaceURI() != nsA {
			continue
		}
		switch c.Tag {
		case "r", "fld", "br":
			p.el.RemoveChild(c)
		}
	}

	if text == "" {
		return
	}

	pos := len(p.el.Child)
	if end := childNS(p.el, nsA, "endParaRPr"); end != nil {
		pos = end.Index()
	}

	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			br := newChild(p.el, nsA, "br")
			if rPr != nil {
				br.AddChild(rPr.Copy())
			}
			p.el.InsertChildAt(pos, br)
			pos++
		}
		if line == "" {
			continue
		}

		r := newChild(p.el, nsA, "r")
		if rPr != nil {
			r.AddChild(rPr.Copy())
		}
		t := newChild(p.el, nsA, "t")
		t.SetText(line)
		r.AddChild(t)
		p.el.InsertChildAt(pos, r)
		pos++
	}
}

// Properties returns the pPr element, creating it when create is set.
func (p *Paragraph) Properties(create bool) *etree.Element {
	if pPr := childNS(p.el, nsA, "pPr"); pPr != nil || !create {
		return pPr
	}
	pPr := newChild(p.el, nsA, "pPr")
	p.el.InsertChildAt(0, pPr)
	return pPr
}

// Level is the outline indentation level, 0 when unset.
func (p *Paragraph) Level() int {
	pPr := p.Properties(false)
	if pPr == nil {
		return 0
	}
	n, err := strconv.Atoi(pPr.SelectAttrValue("lvl", "0"))
	if err != nil {
		return 0
	}
	return n
}

func (p *Paragraph) SetLevel(level int) {
	if level <= 0 {
		if pPr := p.Properties(false); pPr != nil {
			pPr.RemoveAttr("lvl")
		}
		return
	}
	p.Properties(true).CreateAttr("lvl", strconv.Itoa(level))
}

// FlattenIndent clears the level and any explicit margin or hanging indent so
// the paragraph sits at the left edge of its frame.
func (p *Paragraph) FlattenIndent() {
	pPr := p.Properties(false)
	if pPr == nil {
		return
	}
	pPr.RemoveAttr("lvl")
	pPr.RemoveAttr("marL")
	pPr.RemoveAttr("indent")
}

// SetAlignment sets algn: l, ctr, r, just.
func (p *Paragraph) SetAlignment(algn string) {
	p.Properties(true).CreateAttr("algn", algn)
}

// SetFont applies a size in points and an sRGB hex colour to every run.
func (p *Paragraph) SetFont(sizePt int, rgb string) {
	for _, c := range p.el.ChildElements() {
		if !isNS(c, nsA, "r") {
			continue
		}
		rPr := childNS(c, nsA, "rPr")
		if rPr == nil {
			rPr = newChild(c, nsA, "rPr")
			c.InsertChildAt(0, rPr)
		}
		applyFont(rPr, sizePt, rgb)
	}
}

func applyFont(rPr *etree.Element, sizePt int, rgb string) {
	if sizePt > 0 {
		rPr.CreateAttr("sz", strconv.Itoa(sizePt*100))
	}
	if rgb == "" {
		return
	}

	for _, c := range rPr.ChildElements() {
		if isNS(c, nsA, "solidFill") || isNS(c, nsA, "noFill") || isNS(c, nsA, "gradFill") {
			rPr.RemoveChild(c)
		}
	}

	// a:ln is the only element allowed before the fill
	pos := 0
	if ln := childNS(rPr, nsA, "ln"); ln != nil {
		pos = ln.Index() + 1
	}
	fill := newChild(rPr, nsA, "solidFill")
	rPr.InsertChildAt(pos, fill)

	clr := newChild(fill, nsA, "srgbClr")
	clr.CreateAttr("val", strings.TrimPrefix(rgb, "#"))
	fill.AddChild(clr)
}
