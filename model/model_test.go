package model

import "testing"

func TestBBoxUnion(t *testing.T) {
	a := NewBBox(10, 100, 200, 112)
	b := NewBBox(50, 104, 300, 120)

	u := a.Union(b)
	want := BBox{X0: 10, Y0: 100, X1: 300, Y1: 120}
	if u != want {
		t.Errorf("Union = %+v, want %+v", u, want)
	}
}

func TestNewBBoxNormalizes(t *testing.T) {
	b := NewBBox(200, 120, 10, 100)
	if b.X0 != 10 || b.Y0 != 100 || b.X1 != 200 || b.Y1 != 120 {
		t.Errorf("NewBBox did not normalize corners: %+v", b)
	}
	if b.Width() != 190 {
		t.Errorf("Width = %v, want 190", b.Width())
	}
	if b.Height() != 20 {
		t.Errorf("Height = %v, want 20", b.Height())
	}
	if b.CenterX() != 105 {
		t.Errorf("CenterX = %v, want 105", b.CenterX())
	}
}

func TestGlyphSpanBold(t *testing.T) {
	tests := []struct {
		name string
		span GlyphSpan
		want bool
	}{
		{"flag bit", GlyphSpan{Font: "Arial", Flags: StyleBold}, true},
		{"face name bold", GlyphSpan{Font: "Arial-BoldMT"}, true},
		{"face name heavy", GlyphSpan{Font: "Helvetica Heavy"}, true},
		{"regular", GlyphSpan{Font: "TimesNewRomanPSMT"}, false},
	}

	for _, tt := range tests {
		if got := tt.span.Bold(); got != tt.want {
			t.Errorf("%s: Bold() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestGlyphSpanItalic(t *testing.T) {
	if !(GlyphSpan{Font: "Courier-Oblique"}).Italic() {
		t.Error("Oblique face should report italic")
	}
	if (GlyphSpan{Font: "Courier"}).Italic() {
		t.Error("plain face should not report italic")
	}
	if !(GlyphSpan{Font: "Arial", Flags: StyleItalic}).Italic() {
		t.Error("italic flag should report italic")
	}
}

func TestColorUnpack(t *testing.T) {
	r, g, b := RGB(0x1A2B3C)
	if r != 0x1A || g != 0x2B || b != 0x3C {
		t.Errorf("RGB(0x1A2B3C) = %d,%d,%d", r, g, b)
	}
	if HasColor(0) {
		t.Error("0 must mean no explicit color")
	}
	if !HasColor(0x0000FF) {
		t.Error("0x0000FF is an explicit color")
	}
	if got := HexRGB(0xFF00AA); got != "FF00AA" {
		t.Errorf("HexRGB = %q, want FF00AA", got)
	}
}

func TestClassificationString(t *testing.T) {
	tests := []struct {
		c    Classification
		want string
	}{
		{Unclassified, "unclassified"},
		{DocumentTitle, "document-title"},
		{SectionTitle, "section-title"},
		{ListItem, "list-item"},
		{BodyText, "body"},
		{HeaderInfo, "header"},
		{FooterInfo, "footer"},
		{Separator, "separator"},
	}
	for _, tt := range tests {
		if got := tt.c.String(); got != tt.want {
			t.Errorf("Classification(%d).String() = %q, want %q", tt.c, got, tt.want)
		}
	}
}

func TestHeading(t *testing.T) {
	if !DocumentTitle.Heading() || !SectionTitle.Heading() {
		t.Error("titles are headings")
	}
	if BodyText.Heading() || ListItem.Heading() {
		t.Error("body and list items are not headings")
	}
}

func TestContentItemConstructors(t *testing.T) {
	line := &Line{BBox: NewBBox(72, 200, 300, 212)}
	item := TextItem(line, 3)
	if item.Kind != ItemText || item.Position != 200 || item.Seq != 3 {
		t.Errorf("TextItem = %+v", item)
	}

	img := &ImageRef{Page: 1, Index: 0, BBox: NewBBox(0, 350, 100, 450), HasBBox: true}
	ii := ImageItem(img, img.BBox.Y0, 4)
	if ii.Kind != ItemImage || ii.Position != 350 {
		t.Errorf("ImageItem = %+v", ii)
	}

	rule := &RuleLine{BBox: NewBBox(50, 500, 550, 502)}
	ri := RuleItem(rule, 5)
	if ri.Kind != ItemRule || ri.Position != 500 {
		t.Errorf("RuleItem = %+v", ri)
	}
}
