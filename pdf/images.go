package pdf

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"sort"

	_ "image/gif"
	_ "image/jpeg"

	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfcpu "github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"go.uber.org/zap"
	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/tsawler/docmorph/model"
)

// ImageSource extracts the embedded raster images of a PDF and writes
// them out as PNG files ready for an emitter to place.
type ImageSource struct {
	ctx    *pdfmodel.Context
	tmpDir string
	log    *zap.Logger
}

// NewImageSource parses the document's object graph for image extraction.
// A document that cannot be parsed by the image path is not fatal to the
// conversion; callers treat a nil source as "no images".
func NewImageSource(path string, log *zap.Logger) (*ImageSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), pdfmodel.NewDefaultConfiguration())
	if err != nil {
		return nil, fmt.Errorf("parse pdf for images: %w", err)
	}
	return &ImageSource{ctx: ctx, tmpDir: os.TempDir(), log: log}, nil
}

// PageImages extracts the images referenced by the given 1-based page,
// converts each to RGB, and writes it to a temporary PNG. Images that
// fail to decode are logged and skipped; the caller removes each file
// after its emitter has consumed it.
func (s *ImageSource) PageImages(pageNr int) []*model.ImageRef {
	found, err := pdfcpu.ExtractPageImages(s.ctx, pageNr, false)
	if err != nil {
		s.log.Warn("image extraction failed for page",
			zap.Int("page", pageNr), zap.Error(err))
		return nil
	}
	if len(found) == 0 {
		return nil
	}

	// Map iteration order is random; object number keeps runs repeatable.
	objNrs := make([]int, 0, len(found))
	for nr := range found {
		objNrs = append(objNrs, nr)
	}
	sort.Ints(objNrs)

	var refs []*model.ImageRef
	for i, nr := range objNrs {
		ref, err := s.materialize(found[nr], pageNr, i)
		if err != nil {
			s.log.Warn("skipping undecodable image",
				zap.Int("page", pageNr), zap.Int("object", nr), zap.Error(err))
			continue
		}
		refs = append(refs, ref)
	}
	return refs
}

// materialize decodes one raw image, flattens it to RGB, and writes the
// temp PNG the emitters read from.
func (s *ImageSource) materialize(img pdfmodel.Image, pageNr, index int) (*model.ImageRef, error) {
	raw, err := io.ReadAll(img)
	if err != nil {
		return nil, fmt.Errorf("read image stream: %w", err)
	}

	decoded, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	bounds := decoded.Bounds()
	if bounds.Dx() < 1 || bounds.Dy() < 1 {
		return nil, fmt.Errorf("degenerate image %dx%d", bounds.Dx(), bounds.Dy())
	}

	// CMYK and YCbCr flatten to RGBA through the draw conversion.
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, decoded, bounds.Min, draw.Src)

	name := fmt.Sprintf("docmorph_p%d_i%d_%s.png", pageNr, index, uuid.NewString()[:8])
	path := filepath.Join(s.tmpDir, name)
	out, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create temp image: %w", err)
	}
	if err := png.Encode(out, rgba); err != nil {
		out.Close()
		os.Remove(path)
		return nil, fmt.Errorf("encode png: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(path)
		return nil, err
	}

	return &model.ImageRef{
		Page:        pageNr,
		Index:       index,
		Path:        path,
		PixelWidth:  bounds.Dx(),
		PixelHeight: bounds.Dy(),
	}, nil
}
