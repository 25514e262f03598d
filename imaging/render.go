package imaging

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Rasterization density by quality tier.
const (
	dpiHigh   = 300
	dpiMedium = 150
	dpiLow    = 72
)

// DPIForQuality maps a quality tier name to rasterization density.
// Unknown tiers get the medium density.
func DPIForQuality(quality string) int {
	switch strings.ToLower(quality) {
	case "high":
		return dpiHigh
	case "low":
		return dpiLow
	default:
		return dpiMedium
	}
}

// Renderer rasterizes PDF pages through pdftoppm.
type Renderer struct {
	binary string
	log    *zap.Logger
}

// NewRenderer returns a renderer using the pdftoppm binary on PATH.
func NewRenderer(log *zap.Logger) *Renderer {
	return &Renderer{binary: "pdftoppm", log: log}
}

// Available reports whether the pdftoppm binary is on PATH.
func (r *Renderer) Available() bool {
	_, err := exec.LookPath(r.binary)
	return err == nil
}

// RenderPages rasterizes PDF pages as PNG files in outDir and returns
// their paths in page order. firstPage and lastPage bound the rendered
// range 1-based; zero leaves that end open, so (0, 0) renders every
// page.
func (r *Renderer) RenderPages(ctx context.Context, pdfPath, outDir, quality string, firstPage, lastPage int) ([]string, error) {
	dpi := DPIForQuality(quality)
	prefix := filepath.Join(outDir, "page")
	args := renderArgs(pdfPath, prefix, dpi, firstPage, lastPage)

	r.log.Debug("rasterizing pdf",
		zap.String("input", pdfPath), zap.Int("dpi", dpi),
		zap.Int("first", firstPage), zap.Int("last", lastPage))

	cmd := exec.CommandContext(ctx, r.binary, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("pdftoppm failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	pages, err := filepath.Glob(prefix + "-*.png")
	if err != nil {
		return nil, err
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("rasterization produced no pages")
	}
	sortByPageNumber(pages)
	return pages, nil
}

// renderArgs assembles the pdftoppm invocation.
func renderArgs(pdfPath, prefix string, dpi, firstPage, lastPage int) []string {
	args := []string{"-png", "-r", strconv.Itoa(dpi)}
	if firstPage > 0 {
		args = append(args, "-f", strconv.Itoa(firstPage))
	}
	if lastPage > 0 {
		args = append(args, "-l", strconv.Itoa(lastPage))
	}
	return append(args, pdfPath, prefix)
}

// sortByPageNumber orders pdftoppm outputs numerically: page-2 before
// page-10.
func sortByPageNumber(paths []string) {
	sort.Slice(paths, func(i, j int) bool {
		return pageNumber(paths[i]) < pageNumber(paths[j])
	})
}

func pageNumber(path string) int {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if i := strings.LastIndexByte(base, '-'); i >= 0 {
		if n, err := strconv.Atoi(base[i+1:]); err == nil {
			return n
		}
	}
	return 0
}
