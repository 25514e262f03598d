package imaging

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestConvertPNGToJPEG(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	out := filepath.Join(dir, "out.jpg")
	writePNG(t, in, 30, 20)

	if err := Convert(in, out, ""); err != nil {
		t.Fatalf("Convert: %v", err)
	}
	img, format, err := Decode(out)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if format != "jpeg" {
		t.Errorf("format = %q, want jpeg", format)
	}
	if img.Bounds().Dx() != 30 || img.Bounds().Dy() != 20 {
		t.Errorf("dims = %v, want 30x20", img.Bounds())
	}
}

func TestConvertFitsToPageSize(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	out := filepath.Join(dir, "out.png")
	writePNG(t, in, 2000, 1000)

	if err := Convert(in, out, "a4"); err != nil {
		t.Fatalf("Convert: %v", err)
	}
	img, _, err := Decode(out)
	if err != nil {
		t.Fatal(err)
	}
	b := img.Bounds()
	if b.Dx() > 794 || b.Dy() > 1123 {
		t.Errorf("dims = %v, exceed a4 footprint", b)
	}
	// Aspect ratio survives the fit.
	ratio := float64(b.Dx()) / float64(b.Dy())
	if ratio < 1.9 || ratio > 2.1 {
		t.Errorf("aspect ratio drifted to %v", ratio)
	}
}

func TestFitToLeavesSmallImagesAlone(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 50, 40))
	if got := FitTo(img, 100, 100); got != image.Image(img) {
		t.Error("image inside the box should pass through untouched")
	}
}

func TestEncodeUnknownExtension(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	if err := Encode(img, filepath.Join(t.TempDir(), "out.xyz")); err == nil {
		t.Fatal("unknown extension should error")
	}
}

func TestPageSizeSupported(t *testing.T) {
	for _, name := range []string{"", "original", "a4", "A4", "letter"} {
		if !PageSizeSupported(name) {
			t.Errorf("PageSizeSupported(%q) = false", name)
		}
	}
	if PageSizeSupported("tabloid") {
		t.Error("unknown page size should be unsupported")
	}
}

func TestDPIForQuality(t *testing.T) {
	tests := []struct {
		quality string
		want    int
	}{
		{"high", 300},
		{"medium", 150},
		{"low", 72},
		{"", 150},
		{"HIGH", 300},
	}
	for _, tt := range tests {
		if got := DPIForQuality(tt.quality); got != tt.want {
			t.Errorf("DPIForQuality(%q) = %d, want %d", tt.quality, got, tt.want)
		}
	}
}

func TestRenderArgs(t *testing.T) {
	tests := []struct {
		dpi, first, last int
		want             []string
	}{
		{150, 0, 0, []string{"-png", "-r", "150", "in.pdf", "/tmp/page"}},
		{300, 1, 1, []string{"-png", "-r", "300", "-f", "1", "-l", "1", "in.pdf", "/tmp/page"}},
		{72, 3, 0, []string{"-png", "-r", "72", "-f", "3", "in.pdf", "/tmp/page"}},
		{72, 0, 5, []string{"-png", "-r", "72", "-l", "5", "in.pdf", "/tmp/page"}},
	}
	for _, tt := range tests {
		got := renderArgs("in.pdf", "/tmp/page", tt.dpi, tt.first, tt.last)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("renderArgs(%d, %d, %d) = %v, want %v",
				tt.dpi, tt.first, tt.last, got, tt.want)
		}
	}
}

func TestSortByPageNumber(t *testing.T) {
	paths := []string{"/tmp/page-10.png", "/tmp/page-2.png", "/tmp/page-1.png"}
	sortByPageNumber(paths)
	if paths[0] != "/tmp/page-1.png" || paths[2] != "/tmp/page-10.png" {
		t.Errorf("numeric sort failed: %v", paths)
	}
}
