package docx

import (
	"fmt"
	"math"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/tsawler/docmorph/model"
)

// Unit conversions for WordprocessingML: indents and spacing are twips,
// run sizes are half-points, drawing extents are EMUs, and multiplied
// line spacing is 240ths of a line.
const (
	twipsPerPoint = 20
	emuPerPoint   = 12700
	lineUnit      = 240
)

// Run sizes outside this band render badly in Word; extracted sizes are
// scaled down before clamping because PDF nominal sizes run large.
const (
	runSizeScale = 0.75
	runSizeMin   = 8
	runSizeMax   = 72
)

// Emitter renders the classified content stream as a Word document.
type Emitter struct {
	doc      *Document
	log      *zap.Logger
	imageSeq int
}

// NewEmitter returns a Word emitter.
func NewEmitter(log *zap.Logger) *Emitter {
	return &Emitter{doc: NewDocument(), log: log}
}

// AddLine renders one logical line as a paragraph carrying the line's
// formatting directive.
func (e *Emitter) AddLine(line *model.Line, d model.Directive) {
	var b strings.Builder
	b.WriteString("<w:p>")
	b.WriteString(paragraphProps(d))
	for i, span := range line.Spans {
		text := span.Text
		if i > 0 {
			text = " " + text
		}
		b.WriteString(run(span, text))
	}
	b.WriteString("</w:p>")
	e.doc.AppendBody(b.String())
}

// AddImage places an extracted image as an inline drawing in a centered
// paragraph. The payload is read here so the caller may remove the temp
// file immediately afterwards. Unreadable payloads are logged and
// skipped.
func (e *Emitter) AddImage(img *model.ImageRef) {
	data, err := os.ReadFile(img.Path)
	if err != nil {
		e.log.Warn("skipping unreadable image payload",
			zap.String("path", img.Path), zap.Error(err))
		return
	}
	relID := e.doc.AddMedia(data)
	e.imageSeq++

	cx := int(math.Round(img.DisplayWidth * emuPerPoint))
	cy := int(math.Round(img.DisplayHeight * emuPerPoint))
	e.doc.AppendBody(inlineDrawing(e.imageSeq, relID, cx, cy))
}

// AddRule renders a horizontal rule as an empty paragraph with a bottom
// border.
func (e *Emitter) AddRule(_ *model.RuleLine, _ float64) {
	e.doc.AppendBody(`<w:p><w:pPr><w:pBdr>` +
		`<w:bottom w:val="single" w:sz="6" w:space="1" w:color="auto"/>` +
		`</w:pBdr></w:pPr></w:p>`)
}

// PageBreak forces a page break before the next block.
func (e *Emitter) PageBreak() {
	e.doc.AppendBody(`<w:p><w:r><w:br w:type="page"/></w:r></w:p>`)
}

// Save writes the document to path.
func (e *Emitter) Save(path string) error {
	return e.doc.Save(path)
}

// paragraphProps renders a directive as <w:pPr>.
func paragraphProps(d model.Directive) string {
	var b strings.Builder
	b.WriteString("<w:pPr>")

	fmt.Fprintf(&b, `<w:spacing w:before="%d" w:after="%d" w:line="%d" w:lineRule="auto"/>`,
		twips(d.SpaceBefore), twips(d.SpaceAfter), int(math.Round(d.LineSpacing*lineUnit)))

	left := twips(d.LeftIndent)
	first := twips(d.FirstLineIndent)
	switch {
	case first < 0:
		fmt.Fprintf(&b, `<w:ind w:left="%d" w:hanging="%d"/>`, left, -first)
	case first > 0:
		fmt.Fprintf(&b, `<w:ind w:left="%d" w:firstLine="%d"/>`, left, first)
	case left != 0:
		fmt.Fprintf(&b, `<w:ind w:left="%d"/>`, left)
	}

	if v := justification(d.Alignment); v != "" {
		fmt.Fprintf(&b, `<w:jc w:val="%s"/>`, v)
	}

	b.WriteString("</w:pPr>")
	return b.String()
}

func justification(a model.Alignment) string {
	switch a {
	case model.AlignCenter:
		return "center"
	case model.AlignRight:
		return "right"
	case model.AlignJustify:
		return "both"
	default:
		return ""
	}
}

// run renders one styled glyph span as <w:r>.
func run(span model.GlyphSpan, text string) string {
	var b strings.Builder
	b.WriteString("<w:r><w:rPr>")

	family := NormalizeFont(span.Font)
	fmt.Fprintf(&b, `<w:rFonts w:ascii="%s" w:hAnsi="%s" w:cs="%s"/>`,
		escape(family), escape(family), escape(family))
	if span.Bold() {
		b.WriteString("<w:b/>")
	}
	if span.Italic() {
		b.WriteString("<w:i/>")
	}
	fmt.Fprintf(&b, `<w:sz w:val="%d"/>`, halfPoints(span.Size))
	if model.HasColor(span.Color) {
		fmt.Fprintf(&b, `<w:color w:val="%s"/>`, model.HexRGB(span.Color))
	}

	b.WriteString("</w:rPr>")
	fmt.Fprintf(&b, `<w:t xml:space="preserve">%s</w:t>`, escape(text))
	b.WriteString("</w:r>")
	return b.String()
}

func inlineDrawing(seq int, relID string, cx, cy int) string {
	return fmt.Sprintf(`<w:p><w:pPr><w:jc w:val="center"/></w:pPr><w:r><w:drawing>`+
		`<wp:inline distT="0" distB="0" distL="0" distR="0">`+
		`<wp:extent cx="%d" cy="%d"/>`+
		`<wp:docPr id="%d" name="Picture %d"/>`+
		`<a:graphic><a:graphicData uri="%s">`+
		`<pic:pic>`+
		`<pic:nvPicPr><pic:cNvPr id="%d" name="Picture %d"/><pic:cNvPicPr/></pic:nvPicPr>`+
		`<pic:blipFill><a:blip r:embed="%s"/><a:stretch><a:fillRect/></a:stretch></pic:blipFill>`+
		`<pic:spPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="%d" cy="%d"/></a:xfrm>`+
		`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom></pic:spPr>`+
		`</pic:pic></a:graphicData></a:graphic>`+
		`</wp:inline></w:drawing></w:r></w:p>`,
		cx, cy, seq, seq, nsPic, seq, seq, relID, cx, cy)
}

// twips converts points to twentieths of a point.
func twips(pt float64) int {
	return int(math.Round(pt * twipsPerPoint))
}

// halfPoints converts an extracted font size to Word's half-point run
// size, scaled and clamped to the renderable band.
func halfPoints(size float64) int {
	pt := size * runSizeScale
	if pt < runSizeMin {
		pt = runSizeMin
	}
	if pt > runSizeMax {
		pt = runSizeMax
	}
	return int(math.Round(pt * 2))
}
