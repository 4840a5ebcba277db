// AngelaMos | 2026
// presentation.go

package pptx

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"

	"github.com/beevik/etree"
)

var (
	ErrInvalidPackage = errors.New("invalid presentation package")
	ErrSlideIndex     = errors.New("slide index out of range")
)

const (
	defaultSlideWidth  = 9144000
	defaultSlideHeight = 6858000
	minSlideID         = 256
)

var slidePartPattern = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)

// Presentation is an editable .pptx document. It is not safe for concurrent
// use; every request opens its own copy.
type Presentation struct {
	pkg    *opcPackage
	name   string
	doc    *etree.Document
	rels   *relationships
	slides []*Slide
}

func Open(data []byte) (*Presentation, error) {
	pkg, err := readPackage(data)
	if err != nil {
		return nil, err
	}

	if !pkg.has(rootRelsPart) {
		return nil, fmt.Errorf("%w: missing %s", ErrInvalidPackage, rootRelsPart)
	}

	rootRels, err := pkg.relationships("")
	if err != nil {
		return nil, err
	}

	name, ok := rootRels.firstOfKind(relOfficeDocument)
	if !ok {
		return nil, fmt.Errorf("%w: no office document relationship", ErrInvalidPackage)
	}

	doc, err := pkg.xml(name)
	if err != nil {
		return nil, err
	}

	rels, err := pkg.relationships(name)
	if err != nil {
		return nil, err
	}

	p := &Presentation{
		pkg:  pkg,
		name: name,
		doc:  doc,
		rels: rels,
	}

	for _, sldID := range childrenNS(p.slideIDList(false), nsP, "sldId") {
		rID := sldID.SelectAttrValue(prefixFor(sldID, nsR)+":id", "")
		rel := rels.byID(rID)
		if rel == nil {
			return nil, fmt.Errorf("%w: dangling slide relationship %q", ErrInvalidPackage, rID)
		}

		slide, err := p.loadSlide(rels.resolve(rel.SelectAttrValue("Target", "")), sldID)
		if err != nil {
			return nil, err
		}
		p.slides = append(p.slides, slide)
	}

	return p, nil
}

func (p *Presentation) loadSlide(name string, sldID *etree.Element) (*Slide, error) {
	doc, err := p.pkg.xml(name)
	if err != nil {
		return nil, err
	}

	rels, err := p.pkg.relationships(name)
	if err != nil {
		return nil, err
	}

	return &Slide{
		pres:  p,
		name:  name,
		doc:   doc,
		rels:  rels,
		sldID: sldID,
	}, nil
}

func (p *Presentation) Len() int {
	return len(p.slides)
}

func (p *Presentation) Slides() []*Slide {
	out := make([]*Slide, len(p.slides))
	copy(out, p.slides)
	return out
}

func (p *Presentation) Slide(i int) (*Slide, error) {
	if i < 0 || i >= len(p.slides) {
		return nil, fmt.Errorf("%w: %d", ErrSlideIndex, i)
	}
	return p.slides[i], nil
}

// SlideSize returns the slide width and height in EMU.
func (p *Presentation) SlideSize() (int64, int64) {
	sz := childNS(p.doc.Root(), nsP, "sldSz")
	cx, okX := int64Attr(sz, "cx")
	cy, okY := int64Attr(sz, "cy")
	if !okX || !okY {
		return defaultSlideWidth, defaultSlideHeight
	}
	return cx, cy
}

// CloneSlide appends a copy of src: same layout, same shapes and styling,
// same relationships except speaker notes.
func (p *Presentation) CloneSlide(src *Slide) (*Slide, error) {
	name := fmt.Sprintf("ppt/slides/slide%d.xml", p.nextSlideNumber())

	doc := src.doc.Copy()
	rels := newRelationships(name)
	for _, rel := range src.rels.all() {
		if relKind(rel) == relNotesSlide {
			continue
		}
		rels.doc.Root().AddChild(rel.Copy())
	}

	p.pkg.putXML(name, doc)
	p.pkg.putXML(rels.name, rels.doc)
	if err := p.pkg.addOverride(name, ContentTypeSlide); err != nil {
		return nil, err
	}

	rID := p.rels.add(relSlide, name)
	if !p.pkg.has(p.rels.name) {
		p.pkg.putXML(p.rels.name, p.rels.doc)
	}

	list := p.slideIDList(true)
	sldID := newChild(list, nsP, "sldId")
	sldID.CreateAttr("id", strconv.FormatInt(p.nextSlideID(), 10))
	sldID.CreateAttr(prefixFor(list, nsR)+":id", rID)
	list.AddChild(sldID)

	slide := &Slide{
		pres:  p,
		name:  name,
		doc:   doc,
		rels:  rels,
		sldID: sldID,
	}
	p.slides = append(p.slides, slide)

	return slide, nil
}

// RemoveSlide drops the slide at index i from the slide list together with its
// part, relationships, content-type override and notes.
func (p *Presentation) RemoveSlide(i int) error {
	slide, err := p.Slide(i)
	if err != nil {
		return err
	}

	rID := slide.sldID.SelectAttrValue(prefixFor(slide.sldID, nsR)+":id", "")
	if parent := slide.sldID.Parent(); parent != nil {
		parent.RemoveChild(slide.sldID)
	}
	p.rels.remove(rID)

	for _, rel := range slide.rels.all() {
		if relKind(rel) != relNotesSlide {
			continue
		}
		notes := slide.rels.resolve(rel.SelectAttrValue("Target", ""))
		p.pkg.remove(notes)
		p.pkg.remove(relsPartName(notes))
		if err := p.pkg.removeOverride(notes); err != nil {
			return err
		}
	}

	p.pkg.remove(slide.name)
	p.pkg.remove(slide.rels.name)
	if err := p.pkg.removeOverride(slide.name); err != nil {
		return err
	}

	p.slides = append(p.slides[:i], p.slides[i+1:]...)
	return nil
}

func (p *Presentation) Save(w io.Writer) error {
	return p.pkg.write(w)
}

func (p *Presentation) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := p.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// HasPart reports whether the package still contains the named part.
func (p *Presentation) HasPart(name string) bool {
	return p.pkg.has(name)
}

func (p *Presentation) slideIDList(create bool) *etree.Element {
	root := p.doc.Root()
	if list := childNS(root, nsP, "sldIdLst"); list != nil || !create {
		return list
	}

	list := newChild(root, nsP, "sldIdLst")
	if sz := childNS(root, nsP, "sldSz"); sz != nil {
		root.InsertChildAt(sz.Index(), list)
	} else {
		root.AddChild(list)
	}
	return list
}

func (p *Presentation) nextSlideNumber() int {
	highest := 0
	for name := range p.pkg.parts {
		m := slidePartPattern.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		if n, err := strconv.Atoi(m[1]); err == nil && n > highest {
			highest = n
		}
	}
	return highest + 1
}

func (p *Presentation) nextSlideID() int64 {
	highest := int64(minSlideID - 1)
	for _, sldID := range childrenNS(p.slideIDList(false), nsP, "sldId") {
		if id, ok := int64Attr(sldID, "id"); ok && id > highest {
			highest = id
		}
	}
	return highest + 1
}
