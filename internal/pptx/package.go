// AngelaMos | 2026
// package.go

package pptx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"path"
	"regexp"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

const (
	nsP = "http://schemas.openxmlformats.org/presentationml/2006/main"
	nsA = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsR = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"

	nsRelationships = "http://schemas.openxmlformats.org/package/2006/relationships"
	relTypeBase     = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/"

	contentTypesPart = "[Content_Types].xml"
	rootRelsPart     = "_rels/.rels"

	ContentTypeSlide = "application/vnd.openxmlformats-officedocument.presentationml.slide+xml"
)

const (
	relOfficeDocument = "officeDocument"
	relSlide          = "slide"
	relSlideLayout    = "slideLayout"
	relSlideMaster    = "slideMaster"
	relNotesSlide     = "notesSlide"
)

var conventionalPrefixes = map[string]string{
	nsP: "p",
	nsA: "a",
	nsR: "r",
}

var rIDPattern = regexp.MustCompile(`^rId(\d+)$`)

type part struct {
	data []byte
	doc  *etree.Document
}

// opcPackage holds every zip entry of the document in archive order. XML parts
// are parsed on first access and serialized from the tree on save.
type opcPackage struct {
	order []string
	parts map[string]*part
}

func readPackage(data []byte) (*opcPackage, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open zip: %w", err)
	}

	pkg := &opcPackage{
		order: make([]string, 0, len(zr.File)),
		parts: make(map[string]*part, len(zr.File)),
	}

	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open part %s: %w", f.Name, err)
		}
		content, err := io.ReadAll(rc)
		//nolint:errcheck // read-only entry
		_ = rc.Close()
		if err != nil {
			return nil, fmt.Errorf("read part %s: %w", f.Name, err)
		}

		pkg.order = append(pkg.order, f.Name)
		pkg.parts[f.Name] = &part{data: content}
	}

	if !pkg.has(contentTypesPart) {
		return nil, fmt.Errorf("%w: missing %s", ErrInvalidPackage, contentTypesPart)
	}

	return pkg, nil
}

func (p *opcPackage) has(name string) bool {
	_, ok := p.parts[name]
	return ok
}

func (p *opcPackage) xml(name string) (*etree.Document, error) {
	pt, ok := p.parts[name]
	if !ok {
		return nil, fmt.Errorf("%w: missing part %s", ErrInvalidPackage, name)
	}

	if pt.doc == nil {
		doc := etree.NewDocument()
		if err := doc.ReadFromBytes(pt.data); err != nil {
			return nil, fmt.Errorf("parse part %s: %w", name, err)
		}
		pt.doc = doc
		pt.data = nil
	}

	return pt.doc, nil
}

func (p *opcPackage) putXML(name string, doc *etree.Document) {
	if _, ok := p.parts[name]; !ok {
		p.order = append(p.order, name)
	}
	p.parts[name] = &part{doc: doc}
}

func (p *opcPackage) remove(name string) {
	if _, ok := p.parts[name]; !ok {
		return
	}
	delete(p.parts, name)

	for i, n := range p.order {
		if n == name {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
}

func (p *opcPackage) write(w io.Writer) error {
	zw := zip.NewWriter(w)

	names := make([]string, 0, len(p.order))
	names = append(names, contentTypesPart)
	for _, n := range p.order {
		if n != contentTypesPart {
			names = append(names, n)
		}
	}

	for _, name := range names {
		pt := p.parts[name]

		content := pt.data
		if pt.doc != nil {
			b, err := pt.doc.WriteToBytes()
			if err != nil {
				return fmt.Errorf("serialize part %s: %w", name, err)
			}
			content = b
		}

		fw, err := zw.CreateHeader(&zip.FileHeader{
			Name:   name,
			Method: zip.Deflate,
		})
		if err != nil {
			return fmt.Errorf("create zip entry %s: %w", name, err)
		}
		if _, err := fw.Write(content); err != nil {
			return fmt.Errorf("write zip entry %s: %w", name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("close zip: %w", err)
	}

	return nil
}

func (p *opcPackage) addOverride(partName, contentType string) error {
	doc, err := p.xml(contentTypesPart)
	if err != nil {
		return err
	}

	target := "/" + partName
	root := doc.Root()
	for _, o := range root.SelectElements("Override") {
		if o.SelectAttrValue("PartName", "") == target {
			o.CreateAttr("ContentType", contentType)
			return nil
		}
	}

	o := root.CreateElement("Override")
	o.CreateAttr("PartName", target)
	o.CreateAttr("ContentType", contentType)
	return nil
}

func (p *opcPackage) removeOverride(partName string) error {
	doc, err := p.xml(contentTypesPart)
	if err != nil {
		return err
	}

	target := "/" + partName
	root := doc.Root()
	for _, o := range root.SelectElements("Override") {
		if o.SelectAttrValue("PartName", "") == target {
			root.RemoveChild(o)
		}
	}
	return nil
}

// relationships wraps one .rels part.
type relationships struct {
	source string
	name   string
	doc    *etree.Document
}

func relsPartName(source string) string {
	dir, file := path.Split(source)
	return dir + "_rels/" + file + ".rels"
}

func (p *opcPackage) relationships(source string) (*relationships, error) {
	name := relsPartName(source)
	if !p.has(name) {
		return newRelationships(source), nil
	}

	doc, err := p.xml(name)
	if err != nil {
		return nil, err
	}

	return &relationships{source: source, name: name, doc: doc}, nil
}

func newRelationships(source string) *relationships {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)
	root := doc.CreateElement("Relationships")
	root.CreateAttr("xmlns", nsRelationships)

	return &relationships{
		source: source,
		name:   relsPartName(source),
		doc:    doc,
	}
}

func (r *relationships) all() []*etree.Element {
	return r.doc.Root().SelectElements("Relationship")
}

func (r *relationships) byID(id string) *etree.Element {
	for _, rel := range r.all() {
		if rel.SelectAttrValue("Id", "") == id {
			return rel
		}
	}
	return nil
}

// relKind reduces a relationship type URI to its last segment so strict and
// transitional OOXML namespaces compare equal.
func relKind(rel *etree.Element) string {
	return path.Base(rel.SelectAttrValue("Type", ""))
}

func (r *relationships) firstOfKind(kind string) (string, bool) {
	for _, rel := range r.all() {
		if relKind(rel) == kind && rel.SelectAttrValue("TargetMode", "") != "External" {
			return r.resolve(rel.SelectAttrValue("Target", "")), true
		}
	}
	return "", false
}

func (r *relationships) resolve(target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return path.Clean(path.Join(path.Dir(r.source), target))
}

func (r *relationships) nextID() string {
	highest := 0
	for _, rel := range r.all() {
		m := rIDPattern.FindStringSubmatch(rel.SelectAttrValue("Id", ""))
		if m == nil {
			continue
		}
		if n, err := strconv.Atoi(m[1]); err == nil && n > highest {
			highest = n
		}
	}
	return "rId" + strconv.Itoa(highest+1)
}

func (r *relationships) add(kind, targetPart string) string {
	id := r.nextID()

	rel := r.doc.Root().CreateElement("Relationship")
	rel.CreateAttr("Id", id)
	rel.CreateAttr("Type", relTypeBase+kind)
	rel.CreateAttr("Target", relativeTarget(r.source, targetPart))

	return id
}

func (r *relationships) remove(id string) {
	if rel := r.byID(id); rel != nil {
		r.doc.Root().RemoveChild(rel)
	}
}

func relativeTarget(source, target string) string {
	dir := path.Dir(source)
	if dir == "." {
		return target
	}
	if rest, ok := strings.CutPrefix(target, dir+"/"); ok {
		return rest
	}
	return "/" + target
}
