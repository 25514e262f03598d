package model

import "strings"

// StyleFlags is a bitmask of span style attributes. The bit layout follows
// the common PDF text-renderer convention: bit 1 italic, bit 4 bold.
type StyleFlags int

const (
	// StyleItalic marks an italic or oblique face.
	StyleItalic StyleFlags = 1 << 1
	// StyleBold marks a bold face.
	StyleBold StyleFlags = 1 << 4
)

// GlyphSpan is a contiguous run of text with uniform style: the atomic
// unit produced by the primitive extractor. Spans are immutable once
// built; lines and content items reference them without copying.
type GlyphSpan struct {
	// Text is the span's decoded text content.
	Text string

	// BBox is the span's bounding box in page coordinates.
	BBox BBox

	// Font is the source font name, possibly subset-prefixed ("ABCDEF+Arial-Bold").
	Font string

	// Size is the nominal font size in points.
	Size float64

	// Flags carries the bold/italic style bits.
	Flags StyleFlags

	// Color is the fill color as a packed 0xRRGGBB integer.
	// Zero means "no explicit color": emitters inherit the target default.
	Color int
}

// Bold reports whether the span renders bold, from either the style flags
// or the face name (Bold, Heavy, Black, Extra).
func (s GlyphSpan) Bold() bool {
	if s.Flags&StyleBold != 0 {
		return true
	}
	return boldFaceName(s.Font)
}

// Italic reports whether the span renders italic, from either the style
// flags or the face name (Italic, Oblique).
func (s GlyphSpan) Italic() bool {
	if s.Flags&StyleItalic != 0 {
		return true
	}
	lower := strings.ToLower(s.Font)
	return strings.Contains(lower, "italic") || strings.Contains(lower, "oblique")
}

func boldFaceName(font string) bool {
	lower := strings.ToLower(font)
	for _, marker := range []string{"bold", "heavy", "black", "extra"} {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// Line is a logical line: one or more spans merged into a single
// reading-order unit. The bounding box is always the union of the
// constituent spans' boxes, and Text concatenates them in source order.
type Line struct {
	// Spans are the contributing glyph spans, left-to-right, top-to-bottom.
	Spans []GlyphSpan

	// Text is the concatenated text of all spans.
	Text string

	// BBox is the union of all span boxes.
	BBox BBox

	// MaxFontSize is the largest nominal size among the spans.
	MaxFontSize float64

	// Bold reports whether any span in the line is bold.
	Bold bool

	// Font is the dominant (last seen non-empty) font name.
	Font string

	// Class is the structural role assigned by the classifier.
	// Unclassified until tagging runs.
	Class Classification

	// IsList marks a line beginning with an ordered-list marker.
	IsList bool

	// IsBullet marks a line beginning with a bullet glyph.
	IsBullet bool
}

// Position returns the line's vertical ordering key: its top edge.
func (l *Line) Position() float64 {
	return l.BBox.Y0
}

// ImageRef is a reference to a raster image placed on a page. The
// extractor resolves it to a decoded temp file; emitters consume Path and
// the computed display size, after which the file is removed.
type ImageRef struct {
	// Page is the 1-based source page number.
	Page int

	// Index is the image's extraction index within the page.
	Index int

	// BBox is the image's placement box on the page, when resolvable.
	BBox BBox

	// HasBBox reports whether BBox is meaningful. Images without
	// resolvable geometry receive a synthetic reading-order position.
	HasBBox bool

	// Path is the decoded raster's temporary file location.
	Path string

	// PixelWidth and PixelHeight are the decoded raster dimensions.
	PixelWidth  int
	PixelHeight int

	// DisplayWidth and DisplayHeight are the computed target sizes in points.
	DisplayWidth  float64
	DisplayHeight float64
}

// RuleLine is a decorative horizontal rule detected from vector geometry.
type RuleLine struct {
	BBox BBox
}

// ItemKind discriminates the content item union.
type ItemKind int

const (
	// ItemText is a logical text line.
	ItemText ItemKind = iota
	// ItemImage is a placed raster image.
	ItemImage
	// ItemRule is a decorative horizontal rule.
	ItemRule
)

// String returns a string representation of the item kind.
func (k ItemKind) String() string {
	switch k {
	case ItemText:
		return "text"
	case ItemImage:
		return "image"
	case ItemRule:
		return "rule"
	default:
		return "unknown"
	}
}

// ContentItem is one entry in a page's ordered content stream: a tagged
// union over text lines, images, and rules. Position is the single scalar
// used for reading-order sorting; Seq preserves extraction order for
// stable tie-breaking.
type ContentItem struct {
	Kind     ItemKind
	Position float64
	Seq      int

	Line  *Line
	Image *ImageRef
	Rule  *RuleLine
}

// TextItem wraps a line as a content item.
func TextItem(l *Line, seq int) ContentItem {
	return ContentItem{Kind: ItemText, Position: l.Position(), Seq: seq, Line: l}
}

// ImageItem wraps an image reference as a content item at the given position.
func ImageItem(img *ImageRef, position float64, seq int) ContentItem {
	return ContentItem{Kind: ItemImage, Position: position, Seq: seq, Image: img}
}

// RuleItem wraps a horizontal rule as a content item.
func RuleItem(r *RuleLine, seq int) ContentItem {
	return ContentItem{Kind: ItemRule, Position: r.BBox.Y0, Seq: seq, Rule: r}
}
