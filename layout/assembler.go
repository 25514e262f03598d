// Package layout reconstructs document structure from positioned glyph
// runs: it assembles raw rows into logical lines, orders page content into
// a reading-order stream, classifies each line's structural role, and
// synthesizes the formatting directives the emitters consume.
package layout

import (
	"strings"

	"github.com/tsawler/docmorph/model"
)

// MergeConfig holds the thresholds controlling when two adjacent raw
// lines are merged into one logical line. All distances are PDF points,
// calibrated for Letter/A4 page sizes.
type MergeConfig struct {
	// MaxGap is the maximum vertical gap for a keyword-driven merge.
	MaxGap float64

	// MaxFontDelta is the maximum font-size difference for any merge.
	MaxFontDelta float64

	// ContinuationGap and ContinuationShift bound the vertical and
	// horizontal distance for treating a line as a visual continuation
	// of the previous one.
	ContinuationGap   float64
	ContinuationShift float64

	// TitleWords are the trigger substrings for the bold multi-line
	// title merge. Injectable; see Vocabulary.
	TitleWords []string
}

// DefaultMergeConfig returns the default merge thresholds.
func DefaultMergeConfig() MergeConfig {
	return MergeConfig{
		MaxGap:            30,
		MaxFontDelta:      2,
		ContinuationGap:   15,
		ContinuationShift: 50,
		TitleWords:        DefaultVocabulary().TitleWords,
	}
}

// Assembler groups raw extractor rows into logical lines, merging
// visually-continuous units (wrapped titles, bullet continuations) so
// they emit as a single paragraph. Merging is deliberately conservative:
// rare and targeted, not general text reflow.
type Assembler struct {
	cfg MergeConfig
}

// NewAssembler creates an assembler with the given thresholds.
func NewAssembler(cfg MergeConfig) *Assembler {
	return &Assembler{cfg: cfg}
}

// Assemble converts native row groupings into logical lines. Rows with no
// visible text are dropped. Adjacent lines are merged when the merge
// rules hold; a group of size 1 passes through unchanged.
func (a *Assembler) Assemble(rows [][]model.GlyphSpan) []*model.Line {
	var lines []*model.Line
	for _, row := range rows {
		if line := buildLine(row); line != nil {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return nil
	}

	merged := make([]*model.Line, 0, len(lines))
	group := []*model.Line{lines[0]}
	for i := 1; i < len(lines); i++ {
		if a.shouldMerge(group[len(group)-1], lines[i]) {
			group = append(group, lines[i])
			continue
		}
		merged = append(merged, mergeGroup(group))
		group = []*model.Line{lines[i]}
	}
	merged = append(merged, mergeGroup(group))
	return merged
}

// buildLine folds one row of spans into a line, or nil if the row has no
// visible text. The bounding box is the union of the span boxes and the
// text concatenates spans in extraction order.
func buildLine(spans []model.GlyphSpan) *model.Line {
	line := &model.Line{}
	var sb strings.Builder
	for _, span := range spans {
		if span.Text == "" {
			continue
		}
		sb.WriteString(span.Text)
		if line.Spans == nil {
			line.BBox = span.BBox
		} else {
			line.BBox = line.BBox.Union(span.BBox)
		}
		line.Spans = append(line.Spans, span)
		if span.Size > line.MaxFontSize {
			line.MaxFontSize = span.Size
		}
		if span.Bold() {
			line.Bold = true
		}
		if span.Font != "" {
			line.Font = span.Font
		}
	}
	line.Text = strings.TrimSpace(sb.String())
	if line.Text == "" {
		return nil
	}
	return line
}

// shouldMerge decides whether b continues a. Two paths: a bold
// title-vocabulary merge within MaxGap, or a close visual continuation of
// the same line within ContinuationGap/ContinuationShift.
func (a *Assembler) shouldMerge(prev, next *model.Line) bool {
	gap := next.BBox.Y0 - prev.BBox.Y0
	if gap < 0 {
		gap = -gap
	}
	sizeDelta := prev.MaxFontSize - next.MaxFontSize
	if sizeDelta < 0 {
		sizeDelta = -sizeDelta
	}

	if gap < a.cfg.MaxGap && sizeDelta < a.cfg.MaxFontDelta && prev.Bold && next.Bold &&
		(containsAnyFold(prev.Text, a.cfg.TitleWords) || containsAnyFold(next.Text, a.cfg.TitleWords)) {
		return true
	}

	shift := next.BBox.X0 - prev.BBox.X0
	if shift < 0 {
		shift = -shift
	}
	return gap < a.cfg.ContinuationGap && shift < a.cfg.ContinuationShift
}

// mergeGroup collapses a run of lines into one. Text joins with single
// spaces; the box is the union of all members; style derives from the
// first line with the maximum font size across the group.
func mergeGroup(group []*model.Line) *model.Line {
	if len(group) == 1 {
		return group[0]
	}

	out := &model.Line{
		BBox: group[0].BBox,
		Bold: group[0].Bold,
		Font: group[0].Font,
	}
	parts := make([]string, 0, len(group))
	for _, l := range group {
		parts = append(parts, l.Text)
		out.BBox = out.BBox.Union(l.BBox)
		out.Spans = append(out.Spans, l.Spans...)
		if l.MaxFontSize > out.MaxFontSize {
			out.MaxFontSize = l.MaxFontSize
		}
	}
	out.Text = strings.Join(parts, " ")
	return out
}

func containsAnyFold(text string, words []string) bool {
	lower := strings.ToLower(text)
	for _, w := range words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}
