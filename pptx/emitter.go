package pptx

import (
	"fmt"
	"math"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/tsawler/docmorph/model"
)

// emuPerPoint converts display points to EMUs for picture extents.
const emuPerPoint = 12700

// Run sizes follow the same scaled and clamped band the other emitters
// use, expressed here in hundredths of a point.
const (
	runSizeScale = 0.75
	runSizeMin   = 8
	runSizeMax   = 72
)

// Emitter renders the classified content stream as a slide deck. A new
// slide starts at every heading, separator, vector rule, and page
// boundary; the heading that opened a slide becomes its title.
type Emitter struct {
	deck  *Presentation
	cur   *Slide
	log   *zap.Logger
	fresh bool
}

// NewEmitter returns a presentation emitter with an empty deck.
func NewEmitter(log *zap.Logger) *Emitter {
	return &Emitter{deck: NewPresentation(), log: log}
}

// slide returns the current slide, opening one on first use.
func (e *Emitter) slide() *Slide {
	if e.cur == nil {
		e.cur = e.deck.AddSlide()
		e.fresh = true
	}
	return e.cur
}

// breakSlide closes the current slide so the next content opens a new
// one. Breaking an untouched slide is a no-op: consecutive boundaries
// must not leave blank slides behind.
func (e *Emitter) breakSlide() {
	if e.cur != nil && e.fresh && !e.cur.HasTitle() && !e.cur.HasBody() {
		return
	}
	e.cur = nil
}

// AddLine places one logical line. Headings and separators open a new
// slide; a heading on a fresh slide becomes the slide title.
func (e *Emitter) AddLine(line *model.Line, d model.Directive) {
	if line.Class.Heading() || line.Class == model.Separator {
		e.breakSlide()
	}
	if line.Class == model.Separator {
		return
	}

	s := e.slide()
	para := paragraph(line, d, line.Class.Heading())
	if line.Class.Heading() && s.SetTitle(para) {
		e.fresh = false
		return
	}
	s.AddBody(para)
	e.fresh = false
}

// AddImage places an extracted picture on the current slide. The payload
// is read here so the caller may remove the temp file immediately
// afterwards.
func (e *Emitter) AddImage(img *model.ImageRef) {
	data, err := os.ReadFile(img.Path)
	if err != nil {
		e.log.Warn("skipping unreadable image payload",
			zap.String("path", img.Path), zap.Error(err))
		return
	}
	cx := int(math.Round(img.DisplayWidth * emuPerPoint))
	cy := int(math.Round(img.DisplayHeight * emuPerPoint))
	e.slide().AddPicture(data, cx, cy)
	e.fresh = false
}

// AddRule treats a vector rule as a section divider and opens a new
// slide.
func (e *Emitter) AddRule(_ *model.RuleLine, _ float64) {
	e.breakSlide()
}

// PageBreak opens a new slide at a source page boundary.
func (e *Emitter) PageBreak() {
	e.breakSlide()
}

// Save writes the deck to path.
func (e *Emitter) Save(path string) error {
	return e.deck.Save(path)
}

// paragraph renders one logical line as <a:p> with per-span runs.
func paragraph(line *model.Line, d model.Directive, heading bool) string {
	var b strings.Builder
	b.WriteString("<a:p>")
	if v := algn(d.Alignment); v != "" {
		fmt.Fprintf(&b, `<a:pPr algn="%s"/>`, v)
	}
	for i, span := range line.Spans {
		text := span.Text
		if i > 0 {
			text = " " + text
		}
		b.WriteString("<a:r>")
		fmt.Fprintf(&b, `<a:rPr lang="en-US" sz="%d"`, runSize(span.Size, heading))
		if span.Bold() {
			b.WriteString(` b="1"`)
		}
		if span.Italic() {
			b.WriteString(` i="1"`)
		}
		b.WriteString("/>")
		fmt.Fprintf(&b, `<a:t>%s</a:t>`, escape(text))
		b.WriteString("</a:r>")
	}
	b.WriteString("</a:p>")
	return b.String()
}

func algn(a model.Alignment) string {
	switch a {
	case model.AlignCenter:
		return "ctr"
	case model.AlignRight:
		return "r"
	case model.AlignJustify:
		return "just"
	default:
		return ""
	}
}

// runSize converts an extracted font size to hundredths of a point,
// scaled and clamped, with a floor that keeps slide titles prominent.
func runSize(size float64, heading bool) int {
	pt := size * runSizeScale
	if heading && pt < 18 {
		pt = 18
	}
	if pt < runSizeMin {
		pt = runSizeMin
	}
	if pt > runSizeMax {
		pt = runSizeMax
	}
	return int(math.Round(pt * 100))
}
