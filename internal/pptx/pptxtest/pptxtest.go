// AngelaMos | 2026
// pptxtest.go

// Package pptxtest builds small but structurally complete .pptx templates for
// tests: a title exemplar, a content exemplar, two layouts, a master, a notes
// slide and an image.
package pptxtest

import (
	"archive/zip"
	"bytes"
	"fmt"
)

const (
	// TitleY is the vertical offset the title exemplar's title placeholder
	// inherits from its layout.
	TitleY = 1122363
	// SubtitleY is the subtitle offset on the title exemplar. The subtitle is
	// listed before the title in the shape tree.
	SubtitleY = 3602038

	ContentTitleY = 365125
	ContentBodyY  = 1825625

	SlideWidth  = 12192000
	SlideHeight = 6858000

	StaleTitle    = "Exemplar title"
	StaleSubtitle = "Exemplar subtitle"
	StaleBody     = "Exemplar bullet"
)

const declaration = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

const namespaces = `xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" ` +
	`xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" ` +
	`xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"`

const relTypes = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/"

// pngBytes is a 1x1 transparent PNG.
var pngBytes = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89, 0x00, 0x00, 0x00,
	0x0d, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49,
	0x45, 0x4e, 0x44, 0xae, 0x42, 0x60, 0x82,
}

// Template returns a two-slide template: slide 1 is the title exemplar,
// slide 2 the content exemplar.
func Template() []byte {
	return build(true)
}

// SingleSlideTemplate returns a template that only has the title exemplar.
func SingleSlideTemplate() []byte {
	return build(false)
}

type entry struct {
	name string
	data []byte
}

func build(withContent bool) []byte {
	entries := []entry{
		{"[Content_Types].xml", []byte(contentTypes(withContent))},
		{"_rels/.rels", []byte(rels(rel("rId1", "officeDocument", "ppt/presentation.xml")))},
		{"ppt/presentation.xml", []byte(presentation(withContent))},
		{"ppt/_rels/presentation.xml.rels", []byte(presentationRels(withContent))},
		{"ppt/slideMasters/slideMaster1.xml", []byte(master)},
		{"ppt/slideMasters/_rels/slideMaster1.xml.rels", []byte(rels(
			rel("rId1", "slideLayout", "../slideLayouts/slideLayout1.xml"),
			rel("rId2", "slideLayout", "../slideLayouts/slideLayout2.xml"),
		))},
		{"ppt/slideLayouts/slideLayout1.xml", []byte(titleLayout)},
		{"ppt/slideLayouts/_rels/slideLayout1.xml.rels", []byte(rels(
			rel("rId1", "slideMaster", "../slideMasters/slideMaster1.xml"),
		))},
		{"ppt/slideLayouts/slideLayout2.xml", []byte(contentLayout)},
		{"ppt/slideLayouts/_rels/slideLayout2.xml.rels", []byte(rels(
			rel("rId1", "slideMaster", "../slideMasters/slideMaster1.xml"),
		))},
		{"ppt/slides/slide1.xml", []byte(titleSlide)},
		{"ppt/slides/_rels/slide1.xml.rels", []byte(rels(
			rel("rId1", "slideLayout", "../slideLayouts/slideLayout1.xml"),
			rel("rId2", "image", "../media/image1.png"),
			rel("rId3", "notesSlide", "../notesSlides/notesSlide1.xml"),
		))},
		{"ppt/notesSlides/notesSlide1.xml", []byte(notesSlide)},
		{"ppt/notesSlides/_rels/notesSlide1.xml.rels", []byte(rels(
			rel("rId1", "slide", "../slides/slide1.xml"),
		))},
		{"ppt/media/image1.png", pngBytes},
	}

	if withContent {
		entries = append(entries,
			entry{"ppt/slides/slide2.xml", []byte(contentSlide)},
			entry{"ppt/slides/_rels/slide2.xml.rels", []byte(rels(
				rel("rId1", "slideLayout", "../slideLayouts/slideLayout2.xml"),
			))},
		)
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		w, err := zw.Create(e.name)
		if err != nil {
			panic(err)
		}
		if _, err := w.Write(e.data); err != nil {
			panic(err)
		}
	}
	if err := zw.Close(); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

func contentTypes(withContent bool) string {
	overrides := []string{
		override("/ppt/presentation.xml", "presentationml.presentation.main+xml"),
		override("/ppt/slideMasters/slideMaster1.xml", "presentationml.slideMaster+xml"),
		override("/ppt/slideLayouts/slideLayout1.xml", "presentationml.slideLayout+xml"),
		override("/ppt/slideLayouts/slideLayout2.xml", "presentationml.slideLayout+xml"),
		override("/ppt/slides/slide1.xml", "presentationml.slide+xml"),
		override("/ppt/notesSlides/notesSlide1.xml", "presentationml.notesSlide+xml"),
	}
	if withContent {
		overrides = append(overrides, override("/ppt/slides/slide2.xml", "presentationml.slide+xml"))
	}

	out := declaration +
		`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
		`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
		`<Default Extension="xml" ContentType="application/xml"/>` +
		`<Default Extension="png" ContentType="image/png"/>`
	for _, o := range overrides {
		out += o
	}
	return out + `</Types>`
}

func override(partName, suffix string) string {
	return fmt.Sprintf(
		`<Override PartName=%q ContentType="application/vnd.openxmlformats-officedocument.%s"/>`,
		partName, suffix,
	)
}

func rels(items ...string) string {
	out := declaration +
		`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`
	for _, it := range items {
		out += it
	}
	return out + `</Relationships>`
}

func rel(id, kind, target string) string {
	return fmt.Sprintf(`<Relationship Id=%q Type=%q Target=%q/>`, id, relTypes+kind, target)
}

func presentation(withContent bool) string {
	slides := `<p:sldId id="256" r:id="rId2"/>`
	if withContent {
		slides += `<p:sldId id="257" r:id="rId3"/>`
	}
	return declaration + `<p:presentation ` + namespaces + `>` +
		`<p:sldMasterIdLst><p:sldMasterId id="2147483648" r:id="rId1"/></p:sldMasterIdLst>` +
		`<p:sldIdLst>` + slides + `</p:sldIdLst>` +
		fmt.Sprintf(`<p:sldSz cx="%d" cy="%d"/>`, SlideWidth, SlideHeight) +
		`<p:notesSz cx="6858000" cy="9144000"/>` +
		`</p:presentation>`
}

func presentationRels(withContent bool) string {
	items := []string{
		rel("rId1", "slideMaster", "slideMasters/slideMaster1.xml"),
		rel("rId2", "slide", "slides/slide1.xml"),
	}
	if withContent {
		items = append(items, rel("rId3", "slide", "slides/slide2.xml"))
	}
	return rels(items...)
}

func placeholder(id int, name, ph string, xfrm string, body string) string {
	return fmt.Sprintf(
		`<p:sp><p:nvSpPr><p:cNvPr id="%d" name=%q/><p:cNvSpPr/><p:nvPr>%s</p:nvPr></p:nvSpPr>`+
			`<p:spPr>%s</p:spPr>%s</p:sp>`,
		id, name, ph, xfrm, body,
	)
}

func xfrm(x, y, cx, cy int) string {
	return fmt.Sprintf(
		`<a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm>`,
		x, y, cx, cy,
	)
}

func txBody(paragraphs ...string) string {
	out := `<p:txBody><a:bodyPr/><a:lstStyle/>`
	for _, p := range paragraphs {
		out += p
	}
	return out + `</p:txBody>`
}

const groupProps = `<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>` +
	`<p:grpSpPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="0" cy="0"/>` +
	`<a:chOff x="0" y="0"/><a:chExt cx="0" cy="0"/></a:xfrm></p:grpSpPr>`

func cSld(tag, shapes string) string {
	return declaration + `<p:` + tag + ` ` + namespaces + `><p:cSld><p:spTree>` +
		groupProps + shapes + `</p:spTree></p:cSld></p:` + tag + `>`
}

var master = cSld("sldMaster",
	placeholder(2, "Title Placeholder 1", `<p:ph type="title"/>`,
		xfrm(838200, ContentTitleY, 10515600, 1325563), txBody(`<a:p><a:endParaRPr lang="en-US"/></a:p>`))+
		placeholder(3, "Text Placeholder 2", `<p:ph type="body" idx="1"/>`,
			xfrm(838200, ContentBodyY, 10515600, 4351338), txBody(`<a:p><a:endParaRPr lang="en-US"/></a:p>`)),
)

var titleLayout = cSld("sldLayout",
	placeholder(2, "Title 1", `<p:ph type="ctrTitle"/>`,
		xfrm(1524000, TitleY, 9144000, 2387600), txBody(`<a:p><a:endParaRPr lang="en-US"/></a:p>`))+
		placeholder(3, "Subtitle 2", `<p:ph type="subTitle" idx="1"/>`,
			xfrm(1524000, SubtitleY, 9144000, 1655762), txBody(`<a:p><a:endParaRPr lang="en-US"/></a:p>`)),
)

// contentLayout has no transforms of its own; offsets come from the master.
var contentLayout = cSld("sldLayout",
	placeholder(2, "Title 1", `<p:ph type="title"/>`, "", txBody(`<a:p><a:endParaRPr lang="en-US"/></a:p>`))+
		placeholder(3, "Content Placeholder 2", `<p:ph idx="1"/>`, "", txBody(`<a:p><a:endParaRPr lang="en-US"/></a:p>`)),
)

var titleSlide = cSld("sld",
	placeholder(3, "Subtitle 2", `<p:ph type="subTitle" idx="1"/>`,
		xfrm(1524000, SubtitleY, 9144000, 1655762),
		txBody(`<a:p><a:pPr algn="ctr"/><a:r><a:rPr lang="en-US" sz="2000" i="1"/><a:t>`+StaleSubtitle+`</a:t></a:r></a:p>`))+
		placeholder(2, "Title 1", `<p:ph type="ctrTitle"/>`, "",
			txBody(`<a:p><a:r><a:rPr lang="en-US" sz="4400" b="1"/><a:t>`+StaleTitle+`</a:t></a:r>`+
				`<a:endParaRPr lang="en-US" sz="4400" b="1"/></a:p>`))+
		`<p:pic><p:nvPicPr><p:cNvPr id="4" name="Logo 3"/><p:cNvPicPr/><p:nvPr/></p:nvPicPr>`+
		`<p:blipFill><a:blip r:embed="rId2"/><a:stretch><a:fillRect/></a:stretch></p:blipFill>`+
		`<p:spPr>`+xfrm(304800, 228600, 914400, 914400)+`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom></p:spPr></p:pic>`,
)

var contentSlide = cSld("sld",
	placeholder(2, "Title 1", `<p:ph type="title"/>`,
		xfrm(838200, ContentTitleY, 10515600, 1325563),
		txBody(`<a:p><a:r><a:rPr lang="en-US" sz="3600"/><a:t>`+StaleTitle+`</a:t></a:r></a:p>`))+
		placeholder(3, "Content Placeholder 2", `<p:ph idx="1"/>`,
			xfrm(838200, ContentBodyY, 10515600, 4351338),
			txBody(
				`<a:p><a:pPr marL="342900" indent="-342900"><a:buFont typeface="Arial"/><a:buChar char="&#8226;"/></a:pPr>`+
					`<a:r><a:rPr lang="en-US" sz="2400"/><a:t>`+StaleBody+` one</a:t></a:r>`+
					`<a:br><a:rPr lang="en-US" sz="2400"/></a:br>`+
					`<a:r><a:rPr lang="en-US" sz="2400"/><a:t>continued</a:t></a:r>`+
					`<a:endParaRPr lang="en-US" sz="2400"/></a:p>`,
				`<a:p><a:pPr lvl="1"/><a:r><a:rPr lang="en-US" sz="2000"/><a:t>`+StaleBody+` two</a:t></a:r></a:p>`,
				`<a:p><a:r><a:rPr lang="en-US"/><a:t>`+StaleBody+` three</a:t></a:r></a:p>`,
			))+
		`<p:cxnSp><p:nvCxnSpPr><p:cNvPr id="5" name="Divider 4"/><p:cNvCxnSpPr/><p:nvPr/></p:nvCxnSpPr>`+
		`<p:spPr>`+xfrm(838200, 1700000, 10515600, 0)+`<a:prstGeom prst="line"><a:avLst/></a:prstGeom></p:spPr></p:cxnSp>`,
)

var notesSlide = declaration + `<p:notes ` + namespaces + `><p:cSld><p:spTree>` + groupProps +
	placeholder(2, "Notes Placeholder 1", `<p:ph type="body" idx="1"/>`, "",
		txBody(`<a:p><a:r><a:rPr lang="en-US"/><a:t>Speaker notes</a:t></a:r></a:p>`)) +
	`</p:spTree></p:cSld></p:notes>`
