package model

// Classification is the inferred structural role of a logical line.
// Every line receives exactly one tag; ambiguous geometry falls through
// to BodyText rather than raising.
type Classification int

const (
	// Unclassified is the zero value before tagging.
	Unclassified Classification = iota
	// DocumentTitle is the document's main title.
	DocumentTitle
	// SectionTitle is a section or chapter heading.
	SectionTitle
	// ListItem is a bulleted or numbered list entry.
	ListItem
	// BodyText is ordinary paragraph text.
	BodyText
	// HeaderInfo is page-header material (dates, document codes).
	HeaderInfo
	// FooterInfo is page-footer material (footnotes, page furniture).
	FooterInfo
	// Separator is a line consisting only of repeated rule characters.
	Separator
)

// String returns a string representation of the classification.
func (c Classification) String() string {
	switch c {
	case DocumentTitle:
		return "document-title"
	case SectionTitle:
		return "section-title"
	case ListItem:
		return "list-item"
	case BodyText:
		return "body"
	case HeaderInfo:
		return "header"
	case FooterInfo:
		return "footer"
	case Separator:
		return "separator"
	default:
		return "unclassified"
	}
}

// Heading reports whether the classification starts a new structural
// block (used by the presentation emitter for slide breaks).
func (c Classification) Heading() bool {
	return c == DocumentTitle || c == SectionTitle
}

// Alignment is a target-document horizontal alignment.
type Alignment int

const (
	// AlignLeft aligns to the left margin.
	AlignLeft Alignment = iota
	// AlignCenter centers between margins.
	AlignCenter
	// AlignRight aligns to the right margin.
	AlignRight
	// AlignJustify stretches full measure.
	AlignJustify
)

// String returns a string representation of the alignment.
func (a Alignment) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	case AlignJustify:
		return "justify"
	default:
		return "left"
	}
}

// Directive is the resolved formatting for one emitted line. Derived per
// line from its classification and measured geometry, consumed once by
// the emitter, never persisted.
type Directive struct {
	// Alignment is the paragraph alignment.
	Alignment Alignment

	// LeftIndent is the paragraph left indent in points.
	LeftIndent float64

	// FirstLineIndent is the first-line indent in points. Negative means
	// outdent (hanging indent, used for bullets).
	FirstLineIndent float64

	// SpaceBefore and SpaceAfter are vertical paragraph spacing in points.
	SpaceBefore float64
	SpaceAfter  float64

	// LineSpacing is the line-height multiplier (slightly above 1 to
	// avoid glyph clipping in the target renderer).
	LineSpacing float64
}
