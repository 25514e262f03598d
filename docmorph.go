// Package docmorph converts documents between formats. PDF sources go
// through a native layout reconstruction pipeline that rebuilds logical
// lines, reading order, and paragraph formatting from the page drawing
// model; office formats ride LibreOffice; images and Markdown convert
// natively.
package docmorph

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tsawler/docmorph/imaging"
	"github.com/tsawler/docmorph/office"
)

// ConverterKind names a conversion strategy. The set is closed: every
// supported extension pair maps to exactly one kind.
type ConverterKind int

const (
	// KindUnsupported marks extension pairs no strategy covers.
	KindUnsupported ConverterKind = iota

	// KindPdfLayout is the native PDF layout reconstruction pipeline.
	KindPdfLayout

	// KindOfficeSuite shells out to LibreOffice.
	KindOfficeSuite

	// KindImage converts between raster formats natively.
	KindImage

	// KindRasterize renders PDF pages to a raster format.
	KindRasterize

	// KindMarkup converts between Markdown and HTML natively.
	KindMarkup

	// KindCrossType chains two strategies through an intermediate
	// format: Markdown bridges through HTML into the office suite,
	// office and image sources bridge through PDF.
	KindCrossType
)

// String returns the method label used in results and logs.
func (k ConverterKind) String() string {
	switch k {
	case KindPdfLayout:
		return "pdf-layout"
	case KindOfficeSuite:
		return "office-suite"
	case KindImage:
		return "image"
	case KindRasterize:
		return "rasterize"
	case KindMarkup:
		return "markup"
	case KindCrossType:
		return "cross-type"
	default:
		return "unsupported"
	}
}

// formatClass buckets file extensions by the machinery that understands
// them.
type formatClass int

const (
	classUnknown formatClass = iota
	classPDF
	classOffice
	classImage
	classMarkdown
	classHTML
)

var extClasses = map[string]formatClass{
	"pdf":      classPDF,
	"doc":      classOffice,
	"docx":     classOffice,
	"xls":      classOffice,
	"xlsx":     classOffice,
	"ppt":      classOffice,
	"pptx":     classOffice,
	"odt":      classOffice,
	"ods":      classOffice,
	"odp":      classOffice,
	"rtf":      classOffice,
	"txt":      classOffice,
	"csv":      classOffice,
	"png":      classImage,
	"jpg":      classImage,
	"jpeg":     classImage,
	"gif":      classImage,
	"bmp":      classImage,
	"tif":      classImage,
	"tiff":     classImage,
	"webp":     classImage,
	"md":       classMarkdown,
	"markdown": classMarkdown,
	"html":     classHTML,
	"htm":      classHTML,
}

// pdfLayoutTargets are the formats the native layout pipeline emits.
var pdfLayoutTargets = map[string]bool{
	"docx": true,
	"xlsx": true,
	"pptx": true,
	"md":   true,
}

// Dispatch picks the conversion strategy for an extension pair. The
// table is closed over format classes; unknown pairs come back as
// KindUnsupported rather than guessed at.
func Dispatch(sourceExt, targetExt string) ConverterKind {
	src := extClasses[normalizeExt(sourceExt)]
	dst := normalizeExt(targetExt)
	dstClass := extClasses[dst]

	switch src {
	case classPDF:
		if pdfLayoutTargets[dst] {
			return KindPdfLayout
		}
		if dstClass == classImage {
			return KindRasterize
		}
	case classOffice:
		if dstClass == classOffice || dstClass == classPDF || dstClass == classHTML {
			if office.SupportedTarget(dst) {
				return KindOfficeSuite
			}
		}
		if dstClass == classImage && dst != "webp" {
			return KindCrossType
		}
	case classImage:
		if dstClass == classImage && dst != "webp" {
			return KindImage
		}
		if dstClass == classPDF {
			return KindOfficeSuite
		}
		if dst == "docx" || dst == "xlsx" || dst == "pptx" {
			return KindCrossType
		}
	case classMarkdown:
		if dstClass == classHTML {
			return KindMarkup
		}
		if dstClass == classPDF || (dstClass == classOffice && office.SupportedTarget(dst)) {
			return KindCrossType
		}
	case classHTML:
		if dstClass == classMarkdown {
			return KindMarkup
		}
		if dstClass == classPDF || (dstClass == classOffice && office.SupportedTarget(dst)) {
			return KindOfficeSuite
		}
	}
	return KindUnsupported
}

// Morpher runs conversions. Construct with New; the zero value has no
// logger or office runner.
type Morpher struct {
	opts     *ConversionOptions
	log      *zap.Logger
	office   *office.Runner
	renderer *imaging.Renderer
}

// New returns a Morpher. Passing nil options selects the defaults, and
// a nil logger disables logging.
func New(opts *ConversionOptions, log *zap.Logger) *Morpher {
	if opts == nil {
		opts = DefaultOptions()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Morpher{
		opts:     opts.clone(),
		log:      log,
		office:   office.NewRunner(log),
		renderer: imaging.NewRenderer(log),
	}
}

// Convert transforms inputPath into outputPath, picking the strategy
// from the two file extensions. Output is written to a temporary file
// and renamed into place, so a failed conversion leaves nothing behind.
func (m *Morpher) Convert(ctx context.Context, inputPath, outputPath string) Result {
	start := time.Now()
	kind := Dispatch(filepath.Ext(inputPath), filepath.Ext(outputPath))
	method := kind.String()

	if kind == KindUnsupported {
		return failure(method, time.Since(start),
			fmt.Errorf("no conversion from %q to %q",
				filepath.Ext(inputPath), filepath.Ext(outputPath)))
	}
	if err := m.opts.validate(); err != nil {
		return failure(method, time.Since(start), err)
	}
	if _, err := os.Stat(inputPath); err != nil {
		return failure(method, time.Since(start), fmt.Errorf("input: %w", err))
	}

	m.log.Info("starting conversion",
		zap.String("input", inputPath),
		zap.String("output", outputPath),
		zap.String("method", method))

	tmp := tempOutputPath(outputPath)
	err := m.run(ctx, kind, inputPath, tmp, outputPath)
	if err != nil {
		os.Remove(tmp)
		m.log.Error("conversion failed", zap.String("input", inputPath), zap.Error(err))
		return failure(method, time.Since(start), err)
	}
	if err := os.Rename(tmp, outputPath); err != nil {
		os.Remove(tmp)
		return failure(method, time.Since(start), fmt.Errorf("finalize output: %w", err))
	}

	elapsed := time.Since(start)
	m.log.Info("conversion complete",
		zap.String("output", outputPath), zap.Duration("elapsed", elapsed))
	return success(method, outputPath, elapsed)
}

// run executes the dispatched strategy, writing to tmp.
func (m *Morpher) run(ctx context.Context, kind ConverterKind, inputPath, tmp, finalPath string) error {
	switch kind {
	case KindPdfLayout:
		return m.convertPDF(ctx, inputPath, tmp, normalizeExt(filepath.Ext(finalPath)))
	case KindOfficeSuite:
		return m.convertOffice(ctx, inputPath, tmp, normalizeExt(filepath.Ext(finalPath)))
	case KindImage:
		return imaging.Convert(inputPath, tmp, m.opts.PageSize)
	case KindRasterize:
		return m.rasterizePDF(ctx, inputPath, tmp)
	case KindMarkup:
		return m.convertMarkup(inputPath, tmp, normalizeExt(filepath.Ext(finalPath)))
	case KindCrossType:
		return m.convertCross(ctx, inputPath, tmp, normalizeExt(filepath.Ext(finalPath)))
	default:
		return fmt.Errorf("unsupported conversion kind %v", kind)
	}
}

// convertOffice runs LibreOffice into a scratch directory and moves the
// produced file onto tmp.
func (m *Morpher) convertOffice(ctx context.Context, inputPath, tmp, targetExt string) error {
	if !m.office.Available() {
		return fmt.Errorf("office conversion needs soffice on PATH")
	}
	scratch, err := os.MkdirTemp("", "docmorph-office-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(scratch)

	produced, err := m.office.Convert(ctx, inputPath, scratch, targetExt)
	if err != nil {
		return err
	}
	return moveFile(produced, tmp)
}

// convertCross chains two strategies through an intermediate file in a
// scratch directory. Markdown renders to HTML natively and the office
// suite takes it the rest of the way; office sources print to PDF and
// get rasterized; image sources print to PDF and go through the layout
// pipeline.
func (m *Morpher) convertCross(ctx context.Context, inputPath, tmp, targetExt string) error {
	scratch, err := os.MkdirTemp("", "docmorph-cross-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(scratch)

	switch extClasses[normalizeExt(filepath.Ext(inputPath))] {
	case classMarkdown:
		mid := filepath.Join(scratch, "stage.html")
		if err := m.convertMarkup(inputPath, mid, "html"); err != nil {
			return err
		}
		return m.convertOffice(ctx, mid, tmp, targetExt)
	case classOffice:
		mid := filepath.Join(scratch, "stage.pdf")
		if err := m.convertOffice(ctx, inputPath, mid, "pdf"); err != nil {
			return err
		}
		return m.rasterizePDF(ctx, mid, tmp)
	case classImage:
		mid := filepath.Join(scratch, "stage.pdf")
		if err := m.convertOffice(ctx, inputPath, mid, "pdf"); err != nil {
			return err
		}
		return m.convertPDF(ctx, mid, tmp, targetExt)
	default:
		return fmt.Errorf("no conversion chain from %q", filepath.Ext(inputPath))
	}
}

// rasterizePDF renders the selected page to the target raster format.
// A multi-page source converts its first selected page; a single output
// file cannot hold more.
func (m *Morpher) rasterizePDF(ctx context.Context, inputPath, tmp string) error {
	if !m.renderer.Available() {
		return fmt.Errorf("pdf rasterization needs pdftoppm on PATH")
	}
	scratch, err := os.MkdirTemp("", "docmorph-raster-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(scratch)

	// Rendering is the expensive step, so only the wanted page goes
	// through pdftoppm.
	first, last := 0, 0
	if m.opts.PageRange != "" {
		selected, err := ParsePageRange(m.opts.PageRange, 1<<30)
		if err != nil {
			return err
		}
		first, last = selected[0], selected[0]
	} else {
		first, last = 1, 1
	}

	pages, err := m.renderer.RenderPages(ctx, inputPath, scratch, m.opts.Quality, first, last)
	if err != nil {
		return err
	}
	return imaging.Convert(pages[0], tmp, m.opts.PageSize)
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// tempOutputPath places the scratch file next to the final output so
// the rename stays on one filesystem. The real extension is kept:
// emitters and encoders key the output format off it.
func tempOutputPath(outputPath string) string {
	dir := filepath.Dir(outputPath)
	name := fmt.Sprintf(".partial-%s%s", uuid.NewString()[:8], filepath.Ext(outputPath))
	return filepath.Join(dir, name)
}

// moveFile renames src to dst, falling back to copy and delete across
// filesystems.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return err
	}
	return os.Remove(src)
}
