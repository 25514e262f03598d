// Package imaging converts between raster formats, fits images onto
// standard page footprints, and rasterizes PDF pages.
package imaging

import (
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"

	_ "golang.org/x/image/webp"
)

// jpegQuality matches the quality photo pipelines commonly archive at.
const jpegQuality = 95

// Standard page footprints in pixels at 96dpi.
var pageSizes = map[string]image.Point{
	"a4":     {X: 794, Y: 1123},
	"letter": {X: 816, Y: 1056},
}

// PageSizeSupported reports whether name is a known page footprint.
// The empty string means "keep original size" and is always supported.
func PageSizeSupported(name string) bool {
	if name == "" || strings.EqualFold(name, "original") {
		return true
	}
	_, ok := pageSizes[strings.ToLower(name)]
	return ok
}

// Decode reads and decodes an image file. WebP decodes but cannot be
// encoded back.
func Decode(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("open image: %w", err)
	}
	defer f.Close()
	img, format, err := image.Decode(f)
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}
	return img, format, nil
}

// Encode writes img to path in the format implied by the path's
// extension.
func Encode(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create image: %w", err)
	}
	defer f.Close()

	switch normalizeExt(filepath.Ext(path)) {
	case "png":
		err = png.Encode(f, img)
	case "jpg", "jpeg":
		err = jpeg.Encode(f, flatten(img), &jpeg.Options{Quality: jpegQuality})
	case "gif":
		err = gif.Encode(f, img, nil)
	case "bmp":
		err = bmp.Encode(f, img)
	case "tif", "tiff":
		err = tiff.Encode(f, img, nil)
	default:
		err = fmt.Errorf("no encoder for %q", filepath.Ext(path))
	}
	if err != nil {
		return fmt.Errorf("encode image: %w", err)
	}
	return nil
}

// Convert decodes inputPath and re-encodes it at outputPath, optionally
// fitted onto a named page footprint.
func Convert(inputPath, outputPath, pageSize string) error {
	img, _, err := Decode(inputPath)
	if err != nil {
		return err
	}
	if size, ok := pageSizes[strings.ToLower(pageSize)]; ok {
		img = FitTo(img, size.X, size.Y)
	}
	return Encode(img, outputPath)
}

// FitTo scales img to fit inside w by h pixels, preserving aspect
// ratio. Images already inside the box are returned unchanged.
func FitTo(img image.Image, w, h int) image.Image {
	b := img.Bounds()
	sw, sh := b.Dx(), b.Dy()
	if sw <= w && sh <= h {
		return img
	}

	scale := float64(w) / float64(sw)
	if s := float64(h) / float64(sh); s < scale {
		scale = s
	}
	dw := int(float64(sw) * scale)
	dh := int(float64(sh) * scale)
	if dw < 1 {
		dw = 1
	}
	if dh < 1 {
		dh = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

// flatten drops alpha for encoders that cannot carry it.
func flatten(img image.Image) image.Image {
	if _, ok := img.(*image.NRGBA); !ok {
		if _, ok := img.(*image.RGBA); !ok {
			return img
		}
	}
	b := img.Bounds()
	dst := image.NewRGBA(b)
	draw.Draw(dst, b, image.White, image.Point{}, draw.Src)
	draw.Draw(dst, b, img, b.Min, draw.Over)
	return dst
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
