package layout

import "github.com/tsawler/docmorph/model"

// SynthesizerConfig holds the alignment and spacing thresholds used when
// mapping a classified line's geometry to formatting. Horizontal
// distances are PDF points, calibrated to common Letter/A4 widths.
type SynthesizerConfig struct {
	// CenterOffset is the maximum distance between line center and page
	// center for centered alignment.
	CenterOffset float64

	// RightOffset is the distance past page center marking right
	// alignment.
	RightOffset float64

	// JustifyMinWidthRatio is the minimum line-width fraction of page
	// width required before a full-measure line may justify.
	JustifyMinWidthRatio float64

	// EdgeMarginRatio is the page-edge fraction within which both
	// margins must sit for the justify test.
	EdgeMarginRatio float64
}

// DefaultSynthesizerConfig returns the default thresholds.
func DefaultSynthesizerConfig() SynthesizerConfig {
	return SynthesizerConfig{
		CenterOffset:         50,
		RightOffset:          100,
		JustifyMinWidthRatio: 0.75,
		EdgeMarginRatio:      0.02,
	}
}

// indent is a per-role indentation convention in points. Geometry already
// informed the classification; indentation encodes the visual convention
// for the role rather than being recomputed from coordinates.
type indent struct {
	left      float64
	firstLine float64
}

// roleIndents maps each classification to its fixed indent convention.
// Negative first-line values are outdents (hanging bullets); the small
// negative title indents visually left-align titles against body text.
var roleIndents = map[model.Classification]indent{
	model.DocumentTitle: {left: -0.2, firstLine: -0.5},
	model.SectionTitle:  {},
	model.ListItem:      {firstLine: -28.3},
	model.HeaderInfo:    {left: -0.7},
	model.FooterInfo:    {firstLine: 28.4},
	model.BodyText:      {},
	model.Separator:     {},
}

// Synthesizer derives one formatting directive per classified line. It is
// a pure function of the line and page width: re-running it on the same
// line always yields the same directive, and every line receives exactly
// one.
type Synthesizer struct {
	cfg SynthesizerConfig
}

// NewSynthesizer creates a synthesizer with the given thresholds.
func NewSynthesizer(cfg SynthesizerConfig) *Synthesizer {
	return &Synthesizer{cfg: cfg}
}

// Directive maps a classified line plus its measured geometry to the
// target-document formatting primitives.
func (s *Synthesizer) Directive(line *model.Line, pageWidth float64) model.Directive {
	d := model.Directive{
		Alignment:   s.alignment(line, pageWidth),
		LineSpacing: lineSpacing(line.MaxFontSize),
	}

	if in, ok := roleIndents[line.Class]; ok {
		d.LeftIndent = in.left
		d.FirstLineIndent = in.firstLine
	}

	switch line.Class {
	case model.DocumentTitle, model.SectionTitle:
		d.SpaceAfter = headingSpaceAfter(line.MaxFontSize)
		d.SpaceBefore = d.SpaceAfter / 2
	case model.ListItem:
		d.SpaceAfter = 12.95
	case model.HeaderInfo:
		d.SpaceAfter = 0.1
	case model.FooterInfo:
		d.SpaceAfter = 0
	default:
		d.SpaceAfter = 6
	}
	return d
}

// alignment picks the paragraph alignment from the line's horizontal
// placement. Pure separators always center. A line justifies only when
// hugging both page edges and spanning most of the measure; otherwise the
// center/right thresholds decide, defaulting left.
func (s *Synthesizer) alignment(line *model.Line, pageWidth float64) model.Alignment {
	if line.Class == model.Separator {
		return model.AlignCenter
	}

	edge := pageWidth * s.cfg.EdgeMarginRatio
	leftMargin := line.BBox.X0
	rightMargin := pageWidth - line.BBox.X1
	if leftMargin < edge && rightMargin < edge &&
		line.BBox.Width() > pageWidth*s.cfg.JustifyMinWidthRatio {
		return model.AlignJustify
	}

	center := line.BBox.CenterX()
	pageCenter := pageWidth / 2
	offset := center - pageCenter
	switch {
	case offset > s.cfg.RightOffset:
		return model.AlignRight
	case offset < s.cfg.CenterOffset && offset > -s.cfg.CenterOffset:
		return model.AlignCenter
	default:
		return model.AlignLeft
	}
}

// headingSpaceAfter scales trailing space with heading size.
func headingSpaceAfter(size float64) float64 {
	switch {
	case size >= 24:
		return 16
	case size >= 18:
		return 12
	case size >= 14:
		return 8
	default:
		return 6
	}
}

// lineSpacing returns the anti-clipping line-height multiplier, slightly
// above 1 and marginally larger for big type.
func lineSpacing(size float64) float64 {
	if size >= 16 {
		return 1.0375
	}
	return 1.029
}
