// Package pptx writes PowerPoint decks. The package emits the smallest
// part set readers accept: a presentation part, one master with one
// layout and a theme, and a slide part per slide with its media.
package pptx

import (
	"archive/zip"
	"fmt"
	"os"
	"strings"
)

const (
	nsA = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsR = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsP = "http://schemas.openxmlformats.org/presentationml/2006/main"
)

const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

// Slide size in EMUs: 10 by 7.5 inches.
const (
	SlideWidth  = 9144000
	SlideHeight = 6858000
)

// mediaFile is one image payload stored under ppt/media/.
type mediaFile struct {
	name  string
	relID string
	data  []byte
}

// Slide accumulates rendered shape XML for one slide.
type Slide struct {
	num   int
	title string
	body  []string
	pics  []string
	media []mediaFile
	shape int
}

// HasTitle reports whether a title paragraph has been set.
func (s *Slide) HasTitle() bool { return s.title != "" }

// HasBody reports whether any body shapes exist.
func (s *Slide) HasBody() bool { return len(s.body) > 0 || len(s.pics) > 0 }

// SetTitle stores the slide title paragraph XML. Only the first title
// on a slide wins; later candidates go to the body.
func (s *Slide) SetTitle(paraXML string) bool {
	if s.title != "" {
		return false
	}
	s.title = paraXML
	return true
}

// AddBody appends one rendered body paragraph (<a:p>).
func (s *Slide) AddBody(paraXML string) {
	s.body = append(s.body, paraXML)
}

// AddPicture registers an image payload and a picture shape sized in
// EMUs, stacked under the text body.
func (s *Slide) AddPicture(data []byte, cx, cy int) {
	n := len(s.media) + 1
	m := mediaFile{
		name:  fmt.Sprintf("slide%dimage%d.png", s.num, n),
		relID: fmt.Sprintf("rIdImg%d", n),
		data:  data,
	}
	s.media = append(s.media, m)

	s.shape++
	x := (SlideWidth - cx) / 2
	y := 1600000 + len(s.pics)*(cy+200000)
	s.pics = append(s.pics, fmt.Sprintf(
		`<p:pic><p:nvPicPr><p:cNvPr id="%d" name="Picture %d"/><p:cNvPicPr/><p:nvPr/></p:nvPicPr>`+
			`<p:blipFill><a:blip r:embed="%s"/><a:stretch><a:fillRect/></a:stretch></p:blipFill>`+
			`<p:spPr><a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm>`+
			`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom></p:spPr></p:pic>`,
		s.shape+100, s.shape, m.relID, x, y, cx, cy))
}

// Presentation accumulates slides and packs them into a .pptx file.
type Presentation struct {
	slides []*Slide
}

// NewPresentation returns an empty deck.
func NewPresentation() *Presentation {
	return &Presentation{}
}

// AddSlide appends a new empty slide and returns it.
func (p *Presentation) AddSlide() *Slide {
	s := &Slide{num: len(p.slides) + 1}
	p.slides = append(p.slides, s)
	return s
}

// SlideCount returns the number of slides added so far.
func (p *Presentation) SlideCount() int { return len(p.slides) }

// Save packs the deck into path. A deck with no slides gets one blank
// slide so the package stays valid.
func (p *Presentation) Save(path string) error {
	if len(p.slides) == 0 {
		p.AddSlide()
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create pptx: %w", err)
	}
	zw := zip.NewWriter(f)

	write := func(name, data string) error {
		w, err := zw.Create(name)
		if err != nil {
			return fmt.Errorf("create part %s: %w", name, err)
		}
		if _, err := w.Write([]byte(data)); err != nil {
			return fmt.Errorf("write part %s: %w", name, err)
		}
		return nil
	}

	parts := []struct {
		name string
		data string
	}{
		{"[Content_Types].xml", p.contentTypes()},
		{"_rels/.rels", rootRels},
		{"ppt/presentation.xml", p.presentationXML()},
		{"ppt/_rels/presentation.xml.rels", p.presentationRels()},
		{"ppt/slideMasters/slideMaster1.xml", slideMasterXML},
		{"ppt/slideMasters/_rels/slideMaster1.xml.rels", slideMasterRels},
		{"ppt/slideLayouts/slideLayout1.xml", slideLayoutXML},
		{"ppt/slideLayouts/_rels/slideLayout1.xml.rels", slideLayoutRels},
		{"ppt/theme/theme1.xml", themeXML},
	}
	for _, part := range parts {
		if err := write(part.name, part.data); err != nil {
			zw.Close()
			f.Close()
			return err
		}
	}

	for i, s := range p.slides {
		n := i + 1
		if err := write(fmt.Sprintf("ppt/slides/slide%d.xml", n), slideXML(s)); err != nil {
			zw.Close()
			f.Close()
			return err
		}
		if err := write(fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", n), slideRels(s)); err != nil {
			zw.Close()
			f.Close()
			return err
		}
		for _, m := range s.media {
			w, err := zw.Create("ppt/media/" + m.name)
			if err != nil {
				zw.Close()
				f.Close()
				return fmt.Errorf("create media: %w", err)
			}
			if _, err := w.Write(m.data); err != nil {
				zw.Close()
				f.Close()
				return fmt.Errorf("write media: %w", err)
			}
		}
	}

	if err := zw.Close(); err != nil {
		f.Close()
		return fmt.Errorf("finish pptx package: %w", err)
	}
	return f.Close()
}

func (p *Presentation) contentTypes() string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">`)
	b.WriteString(`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>`)
	b.WriteString(`<Default Extension="xml" ContentType="application/xml"/>`)
	b.WriteString(`<Default Extension="png" ContentType="image/png"/>`)
	b.WriteString(`<Override PartName="/ppt/presentation.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"/>`)
	b.WriteString(`<Override PartName="/ppt/slideMasters/slideMaster1.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slideMaster+xml"/>`)
	b.WriteString(`<Override PartName="/ppt/slideLayouts/slideLayout1.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slideLayout+xml"/>`)
	b.WriteString(`<Override PartName="/ppt/theme/theme1.xml" ContentType="application/vnd.openxmlformats-officedocument.theme+xml"/>`)
	for i := range p.slides {
		fmt.Fprintf(&b,
			`<Override PartName="/ppt/slides/slide%d.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slide+xml"/>`,
			i+1)
	}
	b.WriteString(`</Types>`)
	return b.String()
}

const rootRels = xmlHeader +
	`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="ppt/presentation.xml"/>` +
	`</Relationships>`

func (p *Presentation) presentationXML() string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	fmt.Fprintf(&b, `<p:presentation xmlns:a="%s" xmlns:r="%s" xmlns:p="%s">`, nsA, nsR, nsP)
	b.WriteString(`<p:sldMasterIdLst><p:sldMasterId id="2147483648" r:id="rId1"/></p:sldMasterIdLst>`)
	b.WriteString(`<p:sldIdLst>`)
	for i := range p.slides {
		fmt.Fprintf(&b, `<p:sldId id="%d" r:id="rId%d"/>`, 256+i, i+2)
	}
	b.WriteString(`</p:sldIdLst>`)
	fmt.Fprintf(&b, `<p:sldSz cx="%d" cy="%d"/><p:notesSz cx="%d" cy="%d"/>`,
		SlideWidth, SlideHeight, SlideHeight, SlideWidth)
	b.WriteString(`</p:presentation>`)
	return b.String()
}

func (p *Presentation) presentationRels() string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	b.WriteString(`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster" Target="slideMasters/slideMaster1.xml"/>`)
	for i := range p.slides {
		fmt.Fprintf(&b,
			`<Relationship Id="rId%d" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide" Target="slides/slide%d.xml"/>`,
			i+2, i+1)
	}
	b.WriteString(`</Relationships>`)
	return b.String()
}

const emptyShapeTree = `<p:spTree>` +
	`<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>` +
	`<p:grpSpPr/>`

const slideMasterXML = xmlHeader +
	`<p:sldMaster xmlns:a="` + nsA + `" xmlns:r="` + nsR + `" xmlns:p="` + nsP + `">` +
	`<p:cSld>` + emptyShapeTree + `</p:spTree></p:cSld>` +
	`<p:clrMap bg1="lt1" tx1="dk1" bg2="lt2" tx2="dk2" accent1="accent1" accent2="accent2" accent3="accent3" accent4="accent4" accent5="accent5" accent6="accent6" hlink="hlink" folHlink="folHlink"/>` +
	`<p:sldLayoutIdLst><p:sldLayoutId id="2147483649" r:id="rId1"/></p:sldLayoutIdLst>` +
	`</p:sldMaster>`

const slideMasterRels = xmlHeader +
	`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout" Target="../slideLayouts/slideLayout1.xml"/>` +
	`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/theme" Target="../theme/theme1.xml"/>` +
	`</Relationships>`

const slideLayoutXML = xmlHeader +
	`<p:sldLayout xmlns:a="` + nsA + `" xmlns:r="` + nsR + `" xmlns:p="` + nsP + `">` +
	`<p:cSld>` + emptyShapeTree + `</p:spTree></p:cSld>` +
	`<p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr>` +
	`</p:sldLayout>`

const slideLayoutRels = xmlHeader +
	`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster" Target="../slideMasters/slideMaster1.xml"/>` +
	`</Relationships>`

const themeXML = xmlHeader +
	`<a:theme xmlns:a="` + nsA + `" name="Office">` +
	`<a:themeElements>` +
	`<a:clrScheme name="Office">` +
	`<a:dk1><a:sysClr val="windowText" lastClr="000000"/></a:dk1>` +
	`<a:lt1><a:sysClr val="window" lastClr="FFFFFF"/></a:lt1>` +
	`<a:dk2><a:srgbClr val="44546A"/></a:dk2>` +
	`<a:lt2><a:srgbClr val="E7E6E6"/></a:lt2>` +
	`<a:accent1><a:srgbClr val="4472C4"/></a:accent1>` +
	`<a:accent2><a:srgbClr val="ED7D31"/></a:accent2>` +
	`<a:accent3><a:srgbClr val="A5A5A5"/></a:accent3>` +
	`<a:accent4><a:srgbClr val="FFC000"/></a:accent4>` +
	`<a:accent5><a:srgbClr val="5B9BD5"/></a:accent5>` +
	`<a:accent6><a:srgbClr val="70AD47"/></a:accent6>` +
	`<a:hlink><a:srgbClr val="0563C1"/></a:hlink>` +
	`<a:folHlink><a:srgbClr val="954F72"/></a:folHlink>` +
	`</a:clrScheme>` +
	`<a:fontScheme name="Office">` +
	`<a:majorFont><a:latin typeface="Calibri Light"/><a:ea typeface=""/><a:cs typeface=""/></a:majorFont>` +
	`<a:minorFont><a:latin typeface="Calibri"/><a:ea typeface=""/><a:cs typeface=""/></a:minorFont>` +
	`</a:fontScheme>` +
	`<a:fmtScheme name="Office">` +
	`<a:fillStyleLst><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:fillStyleLst>` +
	`<a:lnStyleLst><a:ln><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln><a:ln><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln><a:ln><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln></a:lnStyleLst>` +
	`<a:effectStyleLst><a:effectStyle><a:effectLst/></a:effectStyle><a:effectStyle><a:effectLst/></a:effectStyle><a:effectStyle><a:effectLst/></a:effectStyle></a:effectStyleLst>` +
	`<a:bgFillStyleLst><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:bgFillStyleLst>` +
	`</a:fmtScheme>` +
	`</a:themeElements>` +
	`</a:theme>`

func slideXML(s *Slide) string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	fmt.Fprintf(&b, `<p:sld xmlns:a="%s" xmlns:r="%s" xmlns:p="%s">`, nsA, nsR, nsP)
	b.WriteString(`<p:cSld>`)
	b.WriteString(emptyShapeTree)

	frames := layoutFor(s)
	if s.title != "" {
		b.WriteString(textShape(2, "Title", frames.title, s.title))
	}
	if len(s.body) > 0 {
		b.WriteString(textShape(3, "Content", frames.body, strings.Join(s.body, "")))
	}
	for _, pic := range s.pics {
		b.WriteString(pic)
	}

	b.WriteString(`</p:spTree></p:cSld>`)
	b.WriteString(`<p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr>`)
	b.WriteString(`</p:sld>`)
	return b.String()
}

func slideRels(s *Slide) string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	b.WriteString(`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout" Target="../slideLayouts/slideLayout1.xml"/>`)
	for _, m := range s.media {
		fmt.Fprintf(&b,
			`<Relationship Id="%s" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="../media/%s"/>`,
			m.relID, m.name)
	}
	b.WriteString(`</Relationships>`)
	return b.String()
}

// frame is a shape rectangle in EMUs.
type frame struct {
	x, y, cx, cy int
}

type slideFrames struct {
	title frame
	body  frame
}

// layoutProbes pick the geometry for a slide, first match wins.
var layoutProbes = []struct {
	name   string
	match  func(*Slide) bool
	frames slideFrames
}{
	{
		name:  "titleAndBody",
		match: func(s *Slide) bool { return s.HasTitle() && s.HasBody() },
		frames: slideFrames{
			title: frame{457200, 274638, 8229600, 1143000},
			body:  frame{457200, 1600200, 8229600, 4525963},
		},
	},
	{
		name:  "titleOnly",
		match: func(s *Slide) bool { return s.HasTitle() },
		frames: slideFrames{
			title: frame{457200, 2286000, 8229600, 2286000},
		},
	},
	{
		name:  "blank",
		match: func(*Slide) bool { return true },
		frames: slideFrames{
			body: frame{457200, 457200, 8229600, 5943600},
		},
	},
}

func layoutFor(s *Slide) slideFrames {
	for _, p := range layoutProbes {
		if p.match(s) {
			return p.frames
		}
	}
	return layoutProbes[len(layoutProbes)-1].frames
}

func textShape(id int, name string, f frame, paragraphs string) string {
	return fmt.Sprintf(`<p:sp><p:nvSpPr><p:cNvPr id="%d" name="%s"/><p:cNvSpPr/><p:nvPr/></p:nvSpPr>`+
		`<p:spPr><a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm>`+
		`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom></p:spPr>`+
		`<p:txBody><a:bodyPr wrap="square"/><a:lstStyle/>%s</p:txBody></p:sp>`,
		id, name, f.x, f.y, f.cx, f.cy, paragraphs)
}

// escape quotes the five XML-special characters.
func escape(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '"':
			b.WriteString("&quot;")
		case '\'':
			b.WriteString("&apos;")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
