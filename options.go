package docmorph

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/tsawler/docmorph/pdf"
)

// Quality tiers accepted by ConversionOptions.Quality.
const (
	QualityHigh   = "high"
	QualityMedium = "medium"
	QualityLow    = "low"
)

// ConversionOptions controls a conversion run. A zero value is not
// usable; start from DefaultOptions.
type ConversionOptions struct {
	// Quality selects rasterization density and image sizing bounds:
	// high, medium, or low.
	Quality string

	// PageRange limits PDF conversions to the given pages, for example
	// "1-3,7". Empty converts every page.
	PageRange string

	// PageSize fits converted images onto a named footprint: a4,
	// letter, or empty for original dimensions.
	PageSize string

	// VocabularyPath optionally points at a YAML file overriding the
	// classification keyword lists.
	VocabularyPath string

	// MaxImageWidth, MaxImageHeight, MinImageWidth, and MinImageHeight
	// bound extracted-image display sizes in points before the quality
	// scale applies. Zero keeps that bound at its default
	// (300/200/50/30).
	MaxImageWidth  float64
	MaxImageHeight float64
	MinImageWidth  float64
	MinImageHeight float64
}

// DefaultOptions returns the standard conversion options.
func DefaultOptions() *ConversionOptions {
	return &ConversionOptions{
		Quality: QualityMedium,
	}
}

// clone returns a copy so a shared options value cannot mutate under a
// running conversion.
func (o *ConversionOptions) clone() *ConversionOptions {
	c := *o
	return &c
}

// validate rejects option values nothing downstream can honor.
func (o *ConversionOptions) validate() error {
	switch o.Quality {
	case QualityHigh, QualityMedium, QualityLow:
	default:
		return fmt.Errorf("unknown quality %q", o.Quality)
	}
	switch strings.ToLower(o.PageSize) {
	case "", "original", "a4", "letter":
	default:
		return fmt.Errorf("unknown page size %q", o.PageSize)
	}
	if o.PageRange != "" {
		if _, err := ParsePageRange(o.PageRange, 1<<30); err != nil {
			return err
		}
	}
	if o.MaxImageWidth < 0 || o.MaxImageHeight < 0 ||
		o.MinImageWidth < 0 || o.MinImageHeight < 0 {
		return fmt.Errorf("image size bounds must not be negative")
	}
	b := o.imageBounds()
	if b.MaxWidth < b.MinWidth || b.MaxHeight < b.MinHeight {
		return fmt.Errorf("image size bounds inverted: max %gx%g below min %gx%g",
			b.MaxWidth, b.MaxHeight, b.MinWidth, b.MinHeight)
	}
	return nil
}

// imageBounds resolves the display-size envelope: defaults overridden
// per field, then scaled by quality tier.
func (o *ConversionOptions) imageBounds() pdf.SizeBounds {
	b := pdf.DefaultSizeBounds()
	if o.MaxImageWidth > 0 {
		b.MaxWidth = o.MaxImageWidth
	}
	if o.MaxImageHeight > 0 {
		b.MaxHeight = o.MaxImageHeight
	}
	if o.MinImageWidth > 0 {
		b.MinWidth = o.MinImageWidth
	}
	if o.MinImageHeight > 0 {
		b.MinHeight = o.MinImageHeight
	}
	return b.Scale(o.boundsScale())
}

// boundsScale widens or narrows the image display envelope by quality
// tier.
func (o *ConversionOptions) boundsScale() float64 {
	switch o.Quality {
	case QualityHigh:
		return 1.5
	case QualityLow:
		return 0.67
	default:
		return 1.0
	}
}

// ParsePageRange expands a range expression like "1-3,7" into sorted
// unique 1-based page numbers, dropping pages beyond max. Malformed and
// inverted tokens are errors, as is a range that selects nothing.
func ParsePageRange(expr string, max int) ([]int, error) {
	seen := make(map[int]bool)
	for _, token := range strings.Split(expr, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			return nil, fmt.Errorf("empty token in page range %q", expr)
		}

		lo, hi := token, token
		if i := strings.IndexByte(token, '-'); i >= 0 {
			lo, hi = token[:i], token[i+1:]
		}
		from, err := strconv.Atoi(strings.TrimSpace(lo))
		if err != nil {
			return nil, fmt.Errorf("bad page %q in range %q", lo, expr)
		}
		to, err := strconv.Atoi(strings.TrimSpace(hi))
		if err != nil {
			return nil, fmt.Errorf("bad page %q in range %q", hi, expr)
		}
		if from < 1 || to < 1 {
			return nil, fmt.Errorf("pages are numbered from 1 in range %q", expr)
		}
		if to < from {
			return nil, fmt.Errorf("inverted range %q", token)
		}
		for p := from; p <= to; p++ {
			if p <= max {
				seen[p] = true
			}
		}
	}

	pages := make([]int, 0, len(seen))
	for p := range seen {
		pages = append(pages, p)
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("page range %q selects no pages of %d", expr, max)
	}
	sort.Ints(pages)
	return pages, nil
}
