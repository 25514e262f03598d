package layout

import (
	"testing"

	"github.com/tsawler/docmorph/model"
)

func span(text string, x0, y0, x1, y1, size float64, font string) model.GlyphSpan {
	return model.GlyphSpan{
		Text: text,
		BBox: model.NewBBox(x0, y0, x1, y1),
		Font: font,
		Size: size,
	}
}

func TestAssembleMergesWrappedTitle(t *testing.T) {
	rows := [][]model.GlyphSpan{
		{span("NINTH MEETING", 150, 100, 450, 120, 20, "Helvetica-Bold")},
		{span("OF THE NEGOTIATING BODY", 120, 104, 480, 124, 20.5, "Helvetica-Bold")},
	}

	lines := NewAssembler(DefaultMergeConfig()).Assemble(rows)
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1 merged line", len(lines))
	}
	if lines[0].Text != "NINTH MEETING OF THE NEGOTIATING BODY" {
		t.Errorf("merged text = %q", lines[0].Text)
	}
	if !lines[0].Bold {
		t.Error("merged line should stay bold")
	}
	if lines[0].MaxFontSize != 20.5 {
		t.Errorf("MaxFontSize = %v, want 20.5", lines[0].MaxFontSize)
	}
}

func TestAssembleBBoxUnionInvariant(t *testing.T) {
	rows := [][]model.GlyphSpan{
		{span("NINTH MEETING", 150, 100, 450, 120, 20, "Helvetica-Bold")},
		{span("OF THE NEGOTIATING BODY", 120, 104, 480, 124, 20, "Helvetica-Bold")},
	}

	lines := NewAssembler(DefaultMergeConfig()).Assemble(rows)
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	union := model.BBox{}
	for i, s := range lines[0].Spans {
		if i == 0 {
			union = s.BBox
		} else {
			union = union.Union(s.BBox)
		}
	}
	if lines[0].BBox != union {
		t.Errorf("line bbox %+v != span union %+v", lines[0].BBox, union)
	}
}

func TestAssembleKeepsDistantLinesApart(t *testing.T) {
	// Non-bold body lines 40 points apart: no merge path applies.
	rows := [][]model.GlyphSpan{
		{span("The first paragraph of plain prose.", 72, 200, 400, 212, 12, "TimesNewRomanPSMT")},
		{span("The second paragraph of plain prose.", 72, 240, 400, 252, 12, "TimesNewRomanPSMT")},
	}

	lines := NewAssembler(DefaultMergeConfig()).Assemble(rows)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2 separate lines", len(lines))
	}
}

func TestAssembleMergesSameVisualLine(t *testing.T) {
	// Two fragments on the same baseline within the continuation bounds.
	rows := [][]model.GlyphSpan{
		{span("Left half", 72, 300, 200, 312, 12, "Arial")},
		{span("right half", 100, 305, 320, 317, 12, "Arial")},
	}

	lines := NewAssembler(DefaultMergeConfig()).Assemble(rows)
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	if lines[0].Text != "Left half right half" {
		t.Errorf("merged text = %q", lines[0].Text)
	}
}

func TestAssembleSingleLinePassthrough(t *testing.T) {
	rows := [][]model.GlyphSpan{
		{span("Only line", 72, 400, 150, 412, 12, "Arial")},
	}

	lines := NewAssembler(DefaultMergeConfig()).Assemble(rows)
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	if lines[0].Text != "Only line" {
		t.Errorf("text = %q", lines[0].Text)
	}
}

func TestAssembleDropsEmptyRows(t *testing.T) {
	rows := [][]model.GlyphSpan{
		{span("   ", 72, 100, 80, 112, 12, "Arial")},
		{},
		{span("Real text", 72, 400, 150, 412, 12, "Arial")},
	}

	lines := NewAssembler(DefaultMergeConfig()).Assemble(rows)
	if len(lines) != 1 || lines[0].Text != "Real text" {
		t.Fatalf("lines = %v", lines)
	}
}

func TestAssembleEmptyPage(t *testing.T) {
	if got := NewAssembler(DefaultMergeConfig()).Assemble(nil); got != nil {
		t.Errorf("empty page should produce no lines, got %v", got)
	}
}
