// Package xlsx renders the classified content stream as a spreadsheet.
// Each logical line becomes a row, each styled span a cell, so the
// page's visual rhythm survives in grid form.
package xlsx

import (
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/tsawler/docmorph/model"
)

// Cell font sizes outside this band are unreadable in a grid; extracted
// sizes are scaled down before clamping.
const (
	cellSizeScale = 0.75
	cellSizeMin   = 8
	cellSizeMax   = 72
)

// pageBreakRows is the gap left between source pages.
const pageBreakRows = 2

// ruleSpanCols is how many columns a horizontal rule underlines.
const ruleSpanCols = 6

// pixelsPerPoint converts display points to the 96dpi pixels excelize
// scales pictures in.
const pixelsPerPoint = 96.0 / 72.0

// rowHeightForSize maps a line's dominant font size to a row height.
func rowHeightForSize(size float64) float64 {
	switch {
	case size >= 18:
		return 30
	case size >= 16:
		return 25
	case size >= 14:
		return 20
	case size >= 12:
		return 18
	default:
		return 15
	}
}

type styleKey struct {
	bold, italic bool
	size         float64
	align        model.Alignment
	color        string
}

// Emitter renders lines, images, and rules into an xlsx workbook.
type Emitter struct {
	f      *excelize.File
	sheet  string
	row    int
	log    *zap.Logger
	styles map[styleKey]int
}

// NewEmitter returns a spreadsheet emitter with an empty workbook.
func NewEmitter(log *zap.Logger) *Emitter {
	f := excelize.NewFile()
	return &Emitter{
		f:      f,
		sheet:  f.GetSheetName(0),
		log:    log,
		styles: make(map[styleKey]int),
	}
}

// AddLine writes one logical line as a row, one cell per styled span.
func (e *Emitter) AddLine(line *model.Line, d model.Directive) {
	e.row++
	for col, span := range line.Spans {
		cell, err := excelize.CoordinatesToCellName(col+1, e.row)
		if err != nil {
			e.log.Warn("cell addressing failed", zap.Int("row", e.row), zap.Error(err))
			continue
		}
		if err := e.f.SetCellValue(e.sheet, cell, span.Text); err != nil {
			e.log.Warn("cell write failed", zap.String("cell", cell), zap.Error(err))
			continue
		}
		if id, err := e.spanStyle(span, d.Alignment); err == nil {
			_ = e.f.SetCellStyle(e.sheet, cell, cell, id)
		}
	}
	if err := e.f.SetRowHeight(e.sheet, e.row, rowHeightForSize(line.MaxFontSize)); err != nil {
		e.log.Warn("row height failed", zap.Int("row", e.row), zap.Error(err))
	}
}

// AddImage anchors an extracted picture at the next row, scaled from its
// native pixel size to the display footprint.
func (e *Emitter) AddImage(img *model.ImageRef) {
	e.row++
	cell, err := excelize.CoordinatesToCellName(1, e.row)
	if err != nil {
		return
	}

	opts := &excelize.GraphicOptions{}
	if img.PixelWidth > 0 && img.PixelHeight > 0 {
		opts.ScaleX = img.DisplayWidth * pixelsPerPoint / float64(img.PixelWidth)
		opts.ScaleY = img.DisplayHeight * pixelsPerPoint / float64(img.PixelHeight)
	}
	if err := e.f.AddPicture(e.sheet, cell, img.Path, opts); err != nil {
		e.log.Warn("skipping picture", zap.String("path", img.Path), zap.Error(err))
		e.row--
		return
	}

	// Leave empty rows under the anchor so the picture does not overlap
	// the next line. Default rows are about 20 pixels tall.
	e.row += int(img.DisplayHeight*pixelsPerPoint/20) + 1
}

// AddRule draws a bottom border across the first few columns.
func (e *Emitter) AddRule(_ *model.RuleLine, _ float64) {
	e.row++
	style, err := e.f.NewStyle(&excelize.Style{
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 1}},
	})
	if err != nil {
		return
	}
	start, err1 := excelize.CoordinatesToCellName(1, e.row)
	end, err2 := excelize.CoordinatesToCellName(ruleSpanCols, e.row)
	if err1 != nil || err2 != nil {
		return
	}
	_ = e.f.SetCellStyle(e.sheet, start, end, style)
}

// PageBreak leaves a visual gap between source pages.
func (e *Emitter) PageBreak() {
	e.row += pageBreakRows
}

// Save writes the workbook to path.
func (e *Emitter) Save(path string) error {
	if err := e.f.SaveAs(path); err != nil {
		return fmt.Errorf("save xlsx: %w", err)
	}
	return e.f.Close()
}

// spanStyle returns a cached style ID for the span's rendered look.
func (e *Emitter) spanStyle(span model.GlyphSpan, align model.Alignment) (int, error) {
	key := styleKey{
		bold:   span.Bold(),
		italic: span.Italic(),
		size:   cellSize(span.Size),
		align:  align,
	}
	if model.HasColor(span.Color) {
		key.color = model.HexRGB(span.Color)
	}
	if id, ok := e.styles[key]; ok {
		return id, nil
	}

	font := &excelize.Font{
		Bold:   key.bold,
		Italic: key.italic,
		Size:   key.size,
	}
	if key.color != "" {
		font.Color = key.color
	}
	id, err := e.f.NewStyle(&excelize.Style{
		Font:      font,
		Alignment: &excelize.Alignment{Horizontal: horizontal(key.align), Vertical: "top"},
	})
	if err != nil {
		return 0, err
	}
	e.styles[key] = id
	return id, nil
}

func horizontal(a model.Alignment) string {
	switch a {
	case model.AlignCenter:
		return "center"
	case model.AlignRight:
		return "right"
	case model.AlignJustify:
		return "justify"
	default:
		return "left"
	}
}

func cellSize(size float64) float64 {
	s := size * cellSizeScale
	if s < cellSizeMin {
		return cellSizeMin
	}
	if s > cellSizeMax {
		return cellSizeMax
	}
	return s
}
