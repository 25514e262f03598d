// Package docx writes Word documents. It produces the minimal OOXML
// package a conversion needs: a document part, a styles part, media
// parts for placed images, and the relationship plumbing that binds
// them.
package docx

import (
	"archive/zip"
	"fmt"
	"os"
	"strings"
)

// XML namespaces used in DOCX files
const (
	nsW   = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsR   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsWP  = "http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"
	nsA   = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsPic = "http://schemas.openxmlformats.org/drawingml/2006/picture"
)

const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

// mediaFile is one image payload stored under word/media/.
type mediaFile struct {
	name  string
	relID string
	data  []byte
}

// Document accumulates rendered body XML and media parts, then packs
// them into a .docx file.
type Document struct {
	body  strings.Builder
	media []mediaFile
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{}
}

// AppendBody adds one rendered block element (a <w:p>) to the document
// body. The caller is responsible for escaping text content.
func (d *Document) AppendBody(xml string) {
	d.body.WriteString(xml)
	d.body.WriteByte('\n')
}

// AddMedia registers an image payload and returns the relationship ID
// the drawing XML must reference. Payloads are stored as PNG.
func (d *Document) AddMedia(data []byte) string {
	n := len(d.media) + 1
	m := mediaFile{
		name:  fmt.Sprintf("image%d.png", n),
		relID: fmt.Sprintf("rIdImg%d", n),
		data:  data,
	}
	d.media = append(d.media, m)
	return m.relID
}

// Save packs the document into path. An existing file is truncated.
func (d *Document) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create docx: %w", err)
	}
	zw := zip.NewWriter(f)

	parts := []struct {
		name string
		data []byte
	}{
		{"[Content_Types].xml", []byte(d.contentTypes())},
		{"_rels/.rels", []byte(rootRels)},
		{"word/_rels/document.xml.rels", []byte(d.documentRels())},
		{"word/styles.xml", []byte(stylesXML)},
		{"word/document.xml", []byte(d.documentXML())},
	}
	for _, m := range d.media {
		parts = append(parts, struct {
			name string
			data []byte
		}{"word/media/" + m.name, m.data})
	}

	for _, p := range parts {
		w, err := zw.Create(p.name)
		if err != nil {
			zw.Close()
			f.Close()
			return fmt.Errorf("create part %s: %w", p.name, err)
		}
		if _, err := w.Write(p.data); err != nil {
			zw.Close()
			f.Close()
			return fmt.Errorf("write part %s: %w", p.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		f.Close()
		return fmt.Errorf("finish docx package: %w", err)
	}
	return f.Close()
}

func (d *Document) contentTypes() string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">`)
	b.WriteString(`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>`)
	b.WriteString(`<Default Extension="xml" ContentType="application/xml"/>`)
	b.WriteString(`<Default Extension="png" ContentType="image/png"/>`)
	b.WriteString(`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>`)
	b.WriteString(`<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>`)
	b.WriteString(`</Types>`)
	return b.String()
}

const rootRels = xmlHeader +
	`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
	`</Relationships>`

func (d *Document) documentRels() string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	b.WriteString(`<Relationship Id="rIdStyles" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>`)
	for _, m := range d.media {
		fmt.Fprintf(&b,
			`<Relationship Id="%s" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="media/%s"/>`,
			m.relID, m.name)
	}
	b.WriteString(`</Relationships>`)
	return b.String()
}

const stylesXML = xmlHeader +
	`<w:styles xmlns:w="` + nsW + `">` +
	`<w:docDefaults><w:rPrDefault><w:rPr>` +
	`<w:rFonts w:ascii="Arial" w:hAnsi="Arial" w:cs="Arial"/>` +
	`<w:sz w:val="22"/>` +
	`</w:rPr></w:rPrDefault></w:docDefaults>` +
	`<w:style w:type="paragraph" w:default="1" w:styleId="Normal">` +
	`<w:name w:val="Normal"/>` +
	`</w:style>` +
	`</w:styles>`

func (d *Document) documentXML() string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	fmt.Fprintf(&b,
		`<w:document xmlns:w="%s" xmlns:r="%s" xmlns:wp="%s" xmlns:a="%s" xmlns:pic="%s">`,
		nsW, nsR, nsWP, nsA, nsPic)
	b.WriteString("<w:body>\n")
	b.WriteString(d.body.String())
	b.WriteString(`<w:sectPr><w:pgSz w:w="12240" w:h="15840"/>` +
		`<w:pgMar w:top="1440" w:right="1440" w:bottom="1440" w:left="1440"/>` +
		`</w:sectPr>`)
	b.WriteString("</w:body></w:document>")
	return b.String()
}

// escape quotes the five XML-special characters for text content and
// attribute values.
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
