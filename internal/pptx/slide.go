// AngelaMos | 2026
// slide.go

package pptx

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

type Slide struct {
	pres  *Presentation
	name  string
	doc   *etree.Document
	rels  *relationships
	sldID *etree.Element
}

// PartName is the package path of the slide, e.g. ppt/slides/slide3.xml.
func (s *Slide) PartName() string {
	return s.name
}

// LayoutPartName is the package path of the slide layout the slide uses.
func (s *Slide) LayoutPartName() string {
	name, _ := s.rels.firstOfKind(relSlideLayout)
	return name
}

func (s *Slide) shapeTree() *etree.Element {
	cSld := childNS(s.doc.Root(), nsP, "cSld")
	return childNS(cSld, nsP, "spTree")
}

var shapeTags = map[string]bool{
	"sp":           true,
	"pic":          true,
	"grpSp":        true,
	"graphicFrame": true,
	"cxnSp":        true,
}

// Shapes lists the top level shapes of the slide in document order.
func (s *Slide) Shapes() []*Shape {
	tree := s.shapeTree()
	if tree == nil {
		return nil
	}

	var shapes []*Shape
	for _, c := range tree.ChildElements() {
		if shapeTags[c.Tag] && c.NamespaceURI() == nsP {
			shapes = append(shapes, &Shape{slide: s, el: c})
		}
	}
	return shapes
}

// TextShapes lists the top level shapes that carry a text body.
func (s *Slide) TextShapes() []*Shape {
	var out []*Shape
	for _, sh := range s.Shapes() {
		if sh.HasTextFrame() {
			out = append(out, sh)
		}
	}
	return out
}

// AddTextBox appends a borderless text box with one empty paragraph.
// Geometry is in EMU.
func (s *Slide) AddTextBox(name string, x, y, cx, cy int64) *Shape {
	tree := s.shapeTree()
	p := prefixFor(tree, nsP)
	a := prefixFor(tree, nsA)
	id := s.nextShapeID()

	sp := etree.NewElement(qualified(p, "sp"))

	nv := sp.CreateElement(qualified(p, "nvSpPr"))
	cNvPr := nv.CreateElement(qualified(p, "cNvPr"))
	cNvPr.CreateAttr("id", strconv.Itoa(id))
	cNvPr.CreateAttr("name", name+" "+strconv.Itoa(id))
	nv.CreateElement(qualified(p, "cNvSpPr")).CreateAttr("txBox", "1")
	nv.CreateElement(qualified(p, "nvPr"))

	spPr := sp.CreateElement(qualified(p, "spPr"))
	xfrm := spPr.CreateElement(qualified(a, "xfrm"))
	off := xfrm.CreateElement(qualified(a, "off"))
	off.CreateAttr("x", strconv.FormatInt(x, 10))
	off.CreateAttr("y", strconv.FormatInt(y, 10))
	ext := xfrm.CreateElement(qualified(a, "ext"))
	ext.CreateAttr("cx", strconv.FormatInt(cx, 10))
	ext.CreateAttr("cy", strconv.FormatInt(cy, 10))
	geom := spPr.CreateElement(qualified(a, "prstGeom"))
	geom.CreateAttr("prst", "rect")
	geom.CreateElement(qualified(a, "avLst"))
	spPr.CreateElement(qualified(a, "noFill"))

	txBody := sp.CreateElement(qualified(p, "txBody"))
	bodyPr := txBody.CreateElement(qualified(a, "bodyPr"))
	bodyPr.CreateAttr("wrap", "square")
	bodyPr.CreateAttr("rtlCol", "0")
	txBody.CreateElement(qualified(a, "lstStyle"))
	txBody.CreateElement(qualified(a, "p"))

	tree.AddChild(sp)

	return &Shape{slide: s, el: sp}
}

func (s *Slide) nextShapeID() int {
	highest := 0
	tree := s.shapeTree()
	if tree == nil {
		return 1
	}

	walk(tree, func(el *etree.Element) {
		if el.Tag != "cNvPr" {
			return
		}
		if n, err := strconv.Atoi(el.SelectAttrValue("id", "")); err == nil && n > highest {
			highest = n
		}
	})
	return highest + 1
}

// inheritedTrees returns the shape tree of the slide's layout, and of the master
// behind it, for placeholder inheritance.
func (s *Slide) inheritedTrees() (layout, master *etree.Element) {
	pkg := s.pres.pkg

	layoutName, ok := s.rels.firstOfKind(relSlideLayout)
	if !ok {
		return nil, nil
	}
	layoutDoc, err := pkg.xml(layoutName)
	if err != nil {
		return nil, nil
	}
	layout = childNS(childNS(layoutDoc.Root(), nsP, "cSld"), nsP, "spTree")

	layoutRels, err := pkg.relationships(layoutName)
	if err != nil {
		return layout, nil
	}
	masterName, ok := layoutRels.firstOfKind(relSlideMaster)
	if !ok {
		return layout, nil
	}
	masterDoc, err := pkg.xml(masterName)
	if err != nil {
		return layout, nil
	}
	master = childNS(childNS(masterDoc.Root(), nsP, "cSld"), nsP, "spTree")

	return layout, master
}

type Shape struct {
	slide *Slide
	el    *etree.Element
}

// Kind is the element name of the shape: sp, pic, grpSp, graphicFrame or cxnSp.
func (sh *Shape) Kind() string {
	return sh.el.Tag
}

func (sh *Shape) nonVisual() *etree.Element {
	for _, c := range sh.el.ChildElements() {
		if strings.HasPrefix(c.Tag, "nv") {
			return c
		}
	}
	return nil
}

func (sh *Shape) Name() string {
	cNvPr := childNS(sh.nonVisual(), nsP, "cNvPr")
	if cNvPr == nil {
		return ""
	}
	return cNvPr.SelectAttrValue("name", "")
}

// Placeholder reports the placeholder type and index. OOXML defaults apply
// when the attributes are absent: type "obj", index 0.
func (sh *Shape) Placeholder() (string, int, bool) {
	return placeholderOf(sh.el)
}

func placeholderOf(el *etree.Element) (string, int, bool) {
	var nv *etree.Element
	for _, c := range el.ChildElements() {
		if strings.HasPrefix(c.Tag, "nv") {
			nv = c
			break
		}
	}

	ph := childNS(childNS(nv, nsP, "nvPr"), nsP, "ph")
	if ph == nil {
		return "", 0, false
	}

	idx, err := strconv.Atoi(ph.SelectAttrValue("idx", "0"))
	if err != nil {
		idx = 0
	}
	return ph.SelectAttrValue("type", "obj"), idx, true
}

// Offset returns the top-left corner in EMU. Placeholders without their own
// transform inherit it from the layout, then from the master.
func (sh *Shape) Offset() (int64, int64, bool) {
	if x, y, ok := offsetOf(sh.el); ok {
		return x, y, true
	}

	typ, idx, ok := sh.Placeholder()
	if !ok {
		return 0, 0, false
	}

	layout, master := sh.slide.inheritedTrees()

	if el := findPlaceholder(layout, func(_ string, i int) bool { return i == idx }); el != nil {
		if x, y, ok := offsetOf(el); ok {
			return x, y, true
		}
	}

	want := masterPlaceholderType(typ)
	if el := findPlaceholder(master, func(t string, _ int) bool {
		return masterPlaceholderType(t) == want
	}); el != nil {
		if x, y, ok := offsetOf(el); ok {
			return x, y, true
		}
	}

	return 0, 0, false
}

func offsetOf(el *etree.Element) (int64, int64, bool) {
	var xfrm *etree.Element
	for _, c := range el.ChildElements() {
		switch c.Tag {
		case "spPr", "grpSpPr":
			xfrm = childNS(c, nsA, "xfrm")
		case "xfrm":
			xfrm = c
		}
		if xfrm != nil {
			break
		}
	}

	off := childNS(xfrm, nsA, "off")
	x, okX := int64Attr(off, "x")
	y, okY := int64Attr(off, "y")
	if !okX || !okY {
		return 0, 0, false
	}
	return x, y, true
}

func findPlaceholder(tree *etree.Element, match func(typ string, idx int) bool) *etree.Element {
	if tree == nil {
		return nil
	}
	for _, c := range tree.ChildElements() {
		typ, idx, ok := placeholderOf(c)
		if ok && match(typ, idx) {
			return c
		}
	}
	return nil
}

func masterPlaceholderType(typ string) string {
	switch typ {
	case "title", "ctrTitle":
		return "title"
	case "body", "subTitle", "obj":
		return "body"
	default:
		return typ
	}
}

func (sh *Shape) HasTextFrame() bool {
	return sh.el.Tag == "sp" && childNS(sh.el, nsP, "txBody") != nil
}

// TextFrame returns nil for shapes without a text body.
func (sh *Shape) TextFrame() *TextFrame {
	body := childNS(sh.el, nsP, "txBody")
	if body == nil {
		return nil
	}
	return &TextFrame{body: body}
}
