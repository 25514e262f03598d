package docmorph

import (
	"reflect"
	"testing"

	"github.com/tsawler/docmorph/pdf"
)

func TestParsePageRange(t *testing.T) {
	tests := []struct {
		expr string
		max  int
		want []int
	}{
		{"1", 10, []int{1}},
		{"1-3", 10, []int{1, 2, 3}},
		{"1-3,7", 10, []int{1, 2, 3, 7}},
		{"3,1-2,3", 10, []int{1, 2, 3}},
		{" 2 - 4 , 9 ", 10, []int{2, 3, 4, 9}},
		{"8-12", 10, []int{8, 9, 10}},
	}
	for _, tt := range tests {
		got, err := ParsePageRange(tt.expr, tt.max)
		if err != nil {
			t.Errorf("ParsePageRange(%q) error: %v", tt.expr, err)
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParsePageRange(%q) = %v, want %v", tt.expr, got, tt.want)
		}
	}
}

func TestParsePageRangeRejects(t *testing.T) {
	for _, expr := range []string{
		"",
		"abc",
		"1-",
		"-3",
		"5-2",
		"0",
		"0-3",
		"1,,3",
		"11-12", // beyond a 10 page document
	} {
		if _, err := ParsePageRange(expr, 10); err == nil {
			t.Errorf("ParsePageRange(%q) should error", expr)
		}
	}
}

func TestOptionsValidate(t *testing.T) {
	good := DefaultOptions()
	if err := good.validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}

	bad := DefaultOptions()
	bad.Quality = "ultra"
	if err := bad.validate(); err == nil {
		t.Error("unknown quality should fail validation")
	}

	bad = DefaultOptions()
	bad.PageSize = "tabloid"
	if err := bad.validate(); err == nil {
		t.Error("unknown page size should fail validation")
	}

	bad = DefaultOptions()
	bad.PageRange = "9-5"
	if err := bad.validate(); err == nil {
		t.Error("inverted page range should fail validation")
	}

	bad = DefaultOptions()
	bad.MinImageWidth = -10
	if err := bad.validate(); err == nil {
		t.Error("negative image bound should fail validation")
	}

	bad = DefaultOptions()
	bad.MaxImageWidth = 20 // below the default 50pt minimum width
	if err := bad.validate(); err == nil {
		t.Error("inverted image bounds should fail validation")
	}
}

func TestImageBounds(t *testing.T) {
	o := DefaultOptions()
	if got := o.imageBounds(); got != pdf.DefaultSizeBounds() {
		t.Errorf("default options must keep the default envelope, got %+v", got)
	}

	o.MaxImageWidth = 500
	o.MinImageHeight = 40
	got := o.imageBounds()
	want := pdf.SizeBounds{MaxWidth: 500, MaxHeight: 200, MinWidth: 50, MinHeight: 40}
	if got != want {
		t.Errorf("imageBounds() = %+v, want %+v", got, want)
	}

	// The quality scale applies on top of caller bounds.
	o.Quality = QualityHigh
	if got := o.imageBounds(); got != want.Scale(1.5) {
		t.Errorf("high quality imageBounds() = %+v, want %+v", got, want.Scale(1.5))
	}
}

func TestOptionsCloneIsIndependent(t *testing.T) {
	orig := DefaultOptions()
	c := orig.clone()
	c.Quality = QualityLow
	if orig.Quality == QualityLow {
		t.Error("clone must not share storage with the original")
	}
}

func TestBoundsScale(t *testing.T) {
	tests := []struct {
		quality string
		want    float64
	}{
		{QualityHigh, 1.5},
		{QualityMedium, 1.0},
		{QualityLow, 0.67},
	}
	for _, tt := range tests {
		o := &ConversionOptions{Quality: tt.quality}
		if got := o.boundsScale(); got != tt.want {
			t.Errorf("boundsScale(%s) = %v, want %v", tt.quality, got, tt.want)
		}
	}
}
