package pdf

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"strings"
	"testing"

	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"go.uber.org/zap"
)

func testImageSource(t *testing.T) *ImageSource {
	t.Helper()
	return &ImageSource{tmpDir: t.TempDir(), log: zap.NewNop()}
}

func encodeTestPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 7), G: uint8(y * 11), B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestMaterializeWritesTempPNG(t *testing.T) {
	s := testImageSource(t)
	raw := encodeTestPNG(t, 40, 25)

	ref, err := s.materialize(pdfmodel.Image{Reader: bytes.NewReader(raw)}, 3, 1)
	if err != nil {
		t.Fatalf("materialize: %v", err)
	}
	if ref.Page != 3 || ref.Index != 1 {
		t.Errorf("ref identity = page %d index %d", ref.Page, ref.Index)
	}
	if ref.PixelWidth != 40 || ref.PixelHeight != 25 {
		t.Errorf("pixel dims = %dx%d, want 40x25", ref.PixelWidth, ref.PixelHeight)
	}
	if ref.HasBBox {
		t.Error("embedded-object extraction carries no placement box")
	}
	if !strings.HasSuffix(ref.Path, ".png") {
		t.Errorf("path %q should be a png", ref.Path)
	}

	f, err := os.Open(ref.Path)
	if err != nil {
		t.Fatalf("temp file missing: %v", err)
	}
	defer f.Close()
	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatalf("temp file is not a valid png: %v", err)
	}
	if decoded.Bounds().Dx() != 40 || decoded.Bounds().Dy() != 25 {
		t.Errorf("round-trip dims = %v", decoded.Bounds())
	}
}

func TestMaterializeRejectsGarbage(t *testing.T) {
	s := testImageSource(t)
	if _, err := s.materialize(pdfmodel.Image{Reader: strings.NewReader("not an image")}, 1, 0); err == nil {
		t.Fatal("garbage stream should fail to decode")
	}
}

func TestNewImageSourceRejectsNonPDF(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/bogus.pdf"
	if err := os.WriteFile(path, []byte("plain text"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewImageSource(path, zap.NewNop()); err == nil {
		t.Fatal("non-PDF input should fail image parsing")
	}
}
