package xlsx

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/tsawler/docmorph/model"
)

func TestRowHeightForSize(t *testing.T) {
	tests := []struct {
		size float64
		want float64
	}{
		{20, 30},
		{16.5, 25},
		{14, 20},
		{12, 18},
		{9, 15},
	}
	for _, tt := range tests {
		if got := rowHeightForSize(tt.size); got != tt.want {
			t.Errorf("rowHeightForSize(%v) = %v, want %v", tt.size, got, tt.want)
		}
	}
}

func TestCellSizeClamps(t *testing.T) {
	if got := cellSize(12); got != 9 {
		t.Errorf("cellSize(12) = %v, want 9", got)
	}
	if got := cellSize(2); got != 8 {
		t.Errorf("cellSize(2) = %v, want floor 8", got)
	}
	if got := cellSize(200); got != 72 {
		t.Errorf("cellSize(200) = %v, want ceiling 72", got)
	}
}

func testLine(text string, size float64, bold bool) *model.Line {
	return &model.Line{
		Text:        text,
		MaxFontSize: size,
		Bold:        bold,
		Spans:       []model.GlyphSpan{{Text: text, Font: "Arial", Size: size}},
	}
}

func TestEmitterRoundTrip(t *testing.T) {
	em := NewEmitter(zap.NewNop())
	em.AddLine(testLine("Title row", 20, true), model.Directive{Alignment: model.AlignCenter})
	em.AddLine(testLine("Body row", 12, false), model.Directive{Alignment: model.AlignLeft})
	em.PageBreak()
	em.AddLine(testLine("Next page", 12, false), model.Directive{Alignment: model.AlignLeft})

	out := filepath.Join(t.TempDir(), "out.xlsx")
	if err := em.Save(out); err != nil {
		t.Fatalf("Save: %v", err)
	}

	f, err := excelize.OpenFile(out)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer f.Close()
	sheet := f.GetSheetName(0)

	if v, _ := f.GetCellValue(sheet, "A1"); v != "Title row" {
		t.Errorf("A1 = %q", v)
	}
	if v, _ := f.GetCellValue(sheet, "A2"); v != "Body row" {
		t.Errorf("A2 = %q", v)
	}
	// Page break leaves two empty rows.
	if v, _ := f.GetCellValue(sheet, "A5"); v != "Next page" {
		t.Errorf("A5 = %q, want the post-break row", v)
	}

	if h, _ := f.GetRowHeight(sheet, 1); h != 30 {
		t.Errorf("title row height = %v, want 30", h)
	}
}

func TestEmitterAddsPicture(t *testing.T) {
	path := filepath.Join(t.TempDir(), "img.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, 32, 16))); err != nil {
		t.Fatal(err)
	}
	f.Close()

	em := NewEmitter(zap.NewNop())
	em.AddLine(testLine("before", 12, false), model.Directive{})
	rowBefore := em.row
	em.AddImage(&model.ImageRef{
		Path:          path,
		PixelWidth:    32,
		PixelHeight:   16,
		DisplayWidth:  120,
		DisplayHeight: 60,
	})
	if em.row <= rowBefore+1 {
		t.Errorf("image should advance past its anchor row: %d -> %d", rowBefore, em.row)
	}

	out := filepath.Join(t.TempDir(), "out.xlsx")
	if err := em.Save(out); err != nil {
		t.Fatalf("Save: %v", err)
	}

	wb, err := excelize.OpenFile(out)
	if err != nil {
		t.Fatal(err)
	}
	defer wb.Close()
	pics, err := wb.GetPictures(wb.GetSheetName(0), "A2")
	if err != nil {
		t.Fatalf("GetPictures: %v", err)
	}
	if len(pics) != 1 {
		t.Errorf("got %d pictures at anchor, want 1", len(pics))
	}
}

func TestEmitterSkipsMissingPicture(t *testing.T) {
	em := NewEmitter(zap.NewNop())
	rowBefore := em.row
	em.AddImage(&model.ImageRef{Path: "/nonexistent.png"})
	if em.row != rowBefore {
		t.Errorf("failed picture should not consume rows: %d -> %d", rowBefore, em.row)
	}
}
