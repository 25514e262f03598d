// Package pdf reads a page's raw drawing model (positioned glyph runs,
// raster image references, and vector path rectangles) and resolves raw
// images into decodable rasters with target display sizes.
//
// Text and path primitives come from the PDF content stream; coordinates
// are converted once from the PDF's bottom-left origin to the top-left
// origin the layout stages assume.
package pdf

import (
	"fmt"
	"os"
	"sort"

	"github.com/ledongthuc/pdf"
	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/docmorph/model"
)

// Rule-candidate geometry: a path rectangle this much wider than tall and
// this thin reads as a decorative horizontal rule.
const (
	ruleAspectRatio = 5.0
	ruleMaxHeight   = 10.0
)

// rowTolerance is the baseline Y distance (points) within which glyphs
// belong to the same native row.
const rowTolerance = 2.0

// wordGapFactor scales font size into the horizontal gap that separates
// words when the content stream positions glyphs without space characters.
const wordGapFactor = 0.25

// defaultPageWidth and defaultPageHeight are Letter dimensions in points,
// used when a page carries no resolvable MediaBox.
const (
	defaultPageWidth  = 612.0
	defaultPageHeight = 792.0
)

// PageContent is one page's extracted drawing model.
type PageContent struct {
	// Number is the 1-based page number.
	Number int

	// Width and Height are the page dimensions in points.
	Width, Height float64

	// Rows are the native row groupings of glyph spans, top to bottom.
	Rows [][]model.GlyphSpan

	// Rules are horizontal-rule candidates from vector path rectangles.
	Rules []*model.RuleLine
}

// Empty reports whether the page yielded no drawable content. Empty pages
// are valid, not an error.
func (pc *PageContent) Empty() bool {
	return len(pc.Rows) == 0 && len(pc.Rules) == 0
}

// Extractor reads glyph spans and path rectangles from a source PDF.
type Extractor struct {
	file   *os.File
	reader *pdf.Reader
}

// Open opens a source PDF for primitive extraction. The extractor must be
// closed when done.
func Open(path string) (*Extractor, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	return &Extractor{file: f, reader: r}, nil
}

// Close releases the underlying file.
func (e *Extractor) Close() error {
	return e.file.Close()
}

// PageCount returns the number of pages in the document.
func (e *Extractor) PageCount() int {
	return e.reader.NumPage()
}

// Page extracts the drawing model of the given 1-based page. A page with
// no text and no paths returns an empty content set.
func (e *Extractor) Page(number int) (*PageContent, error) {
	if number < 1 || number > e.reader.NumPage() {
		return nil, fmt.Errorf("page %d out of range 1-%d", number, e.reader.NumPage())
	}

	page := e.reader.Page(number)
	pc := &PageContent{Number: number}
	pc.Width, pc.Height = pageSize(page)
	if page.V.IsNull() {
		return pc, nil
	}

	content := readContent(page)
	pc.Rows = groupRows(content.Text, pc.Height)
	pc.Rules = ruleCandidates(content.Rect, pc.Height)
	return pc, nil
}

// readContent guards the content-stream walk: malformed pages panic deep
// inside the parser, and a broken page should degrade to empty content
// rather than abort the document.
func readContent(page pdf.Page) (content pdf.Content) {
	defer func() {
		if r := recover(); r != nil {
			content = pdf.Content{}
		}
	}()
	return page.Content()
}

// pageSize resolves the page MediaBox, walking up to the page tree root
// for inherited boxes, with Letter as the fallback.
func pageSize(page pdf.Page) (w, h float64) {
	v := page.V
	for !v.IsNull() {
		if box := v.Key("MediaBox"); !box.IsNull() && box.Len() == 4 {
			w = box.Index(2).Float64() - box.Index(0).Float64()
			h = box.Index(3).Float64() - box.Index(1).Float64()
			if w > 0 && h > 0 {
				return w, h
			}
		}
		v = v.Key("Parent")
	}
	return defaultPageWidth, defaultPageHeight
}

// groupRows clusters the stream's glyph runs into native rows by baseline,
// orders each row left to right, and coalesces style-uniform neighbors
// into spans. Coordinates flip to top-origin here.
func groupRows(texts []pdf.Text, pageHeight float64) [][]model.GlyphSpan {
	if len(texts) == 0 {
		return nil
	}

	// Cluster by baseline. The stream order is unspecified relative to
	// visual order, so rows are keyed by Y and sorted afterwards.
	type row struct {
		y     float64
		texts []pdf.Text
	}
	var rows []*row
	for _, t := range texts {
		var home *row
		for _, r := range rows {
			if t.Y >= r.y-rowTolerance && t.Y <= r.y+rowTolerance {
				home = r
				break
			}
		}
		if home == nil {
			home = &row{y: t.Y}
			rows = append(rows, home)
		}
		home.texts = append(home.texts, t)
	}

	// Top of page first: larger PDF Y is higher on the page.
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].y > rows[j].y })

	out := make([][]model.GlyphSpan, 0, len(rows))
	for _, r := range rows {
		texts := r.texts
		sort.SliceStable(texts, func(i, j int) bool { return texts[i].X < texts[j].X })
		if spans := coalesce(texts, pageHeight); len(spans) > 0 {
			out = append(out, spans)
		}
	}
	return out
}

// coalesce merges a row's glyph runs into spans of uniform style. A gap
// wider than wordGapFactor of the font size inserts a space: many
// generators position words without emitting space glyphs.
func coalesce(texts []pdf.Text, pageHeight float64) []model.GlyphSpan {
	var spans []model.GlyphSpan
	var cur *model.GlyphSpan
	var lastEnd float64

	for _, t := range texts {
		if t.S == "" {
			continue
		}
		bbox := model.NewBBox(t.X, pageHeight-t.Y-t.FontSize, t.X+t.W, pageHeight-t.Y)
		clean := norm.NFC.String(t.S)

		if cur != nil && cur.Font == t.Font && cur.Size == t.FontSize {
			if gap := t.X - lastEnd; gap > t.FontSize*wordGapFactor {
				cur.Text += " "
			}
			cur.Text += clean
			cur.BBox = cur.BBox.Union(bbox)
		} else {
			spans = append(spans, model.GlyphSpan{
				Text: clean,
				BBox: bbox,
				Font: t.Font,
				Size: t.FontSize,
			})
			cur = &spans[len(spans)-1]
		}
		lastEnd = t.X + t.W
	}
	return spans
}

// ruleCandidates filters path rectangles down to horizontal-rule geometry:
// width over five times height, height under ten points.
func ruleCandidates(rects []pdf.Rect, pageHeight float64) []*model.RuleLine {
	var rules []*model.RuleLine
	for _, r := range rects {
		w := r.Max.X - r.Min.X
		h := r.Max.Y - r.Min.Y
		if w > h*ruleAspectRatio && h < ruleMaxHeight {
			rules = append(rules, &model.RuleLine{
				BBox: model.NewBBox(r.Min.X, pageHeight-r.Max.Y, r.Max.X, pageHeight-r.Min.Y),
			})
		}
	}
	return rules
}
