package layout

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tsawler/docmorph/model"
)

// Vocabulary holds the keyword tables and bullet-glyph set driving
// keyword-based classification. PDFs carry no structural metadata, so
// these vocabularies stand in for the cues an outline would provide.
// They are tunable configuration, not hard-coded truth: load alternates
// from YAML to localize or retarget the heuristics.
type Vocabulary struct {
	// TitleWords trigger document-title classification and the bold
	// multi-line title merge.
	TitleWords []string `yaml:"title_words"`

	// SectionWords trigger section-title classification.
	SectionWords []string `yaml:"section_words"`

	// ListWords trigger list-item classification.
	ListWords []string `yaml:"list_words"`

	// HeaderWords trigger header classification (dates, place names,
	// document codes).
	HeaderWords []string `yaml:"header_words"`

	// Bullets is the set of glyphs accepted as bullet markers at the
	// start of a line.
	Bullets string `yaml:"bullets"`
}

// DefaultVocabulary returns the built-in vocabulary, tuned on
// intergovernmental meeting documents.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		TitleWords: []string{
			"meeting", "negotiating", "body", "convention", "agreement",
			"international", "instrument", "pandemic", "prevention",
			"preparedness", "response",
		},
		SectionWords: []string{"agenda", "provisional", "opening", "closure"},
		ListWords: []string{
			"opening", "conceptual", "proposal", "information", "summaries",
			"informal", "secretariat", "report", "closure",
		},
		HeaderWords: []string{
			"a/inb", "geneva", "january", "february", "march", "april",
			"may", "june", "july", "august", "september", "october",
			"november", "december",
		},
		Bullets: "•◦‣▪▫▸▹▻▶►▷◀◁→⇒◆◇◈◉◎●○■□★☆☐☑☒✓✔✗✘-*+",
	}
}

// LoadVocabulary reads a vocabulary from a YAML file. Empty fields fall
// back to the defaults, so a file may override only one table.
func LoadVocabulary(path string) (Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Vocabulary{}, fmt.Errorf("read vocabulary: %w", err)
	}
	v := DefaultVocabulary()
	if err := yaml.Unmarshal(data, &v); err != nil {
		return Vocabulary{}, fmt.Errorf("parse vocabulary: %w", err)
	}
	return v, nil
}

// ClassifierConfig holds the geometric and typographic thresholds for
// role classification. Distances are PDF points from the page top,
// calibrated for Letter/A4; behavior on unusual page sizes is a known
// approximation.
type ClassifierConfig struct {
	// TitleMinSize is the minimum font size for a bold document title.
	TitleMinSize float64

	// SectionMinSize is the minimum font size for a bold section title.
	SectionMinSize float64

	// HeaderZone is the page-top band (points) classified as header.
	HeaderZone float64

	// FooterZone is the distance from the page top past which a line's
	// bottom edge marks it as footer.
	FooterZone float64

	// FootnoteMinLen is the minimum text length for the footnote-marker
	// footer rule.
	FootnoteMinLen int
}

// DefaultClassifierConfig returns the default thresholds.
func DefaultClassifierConfig() ClassifierConfig {
	return ClassifierConfig{
		TitleMinSize:   18,
		SectionMinSize: 14,
		HeaderZone:     100,
		FooterZone:     700,
		FootnoteMinLen: 100,
	}
}

var (
	orderedRe = regexp.MustCompile(`^\d+\.`)
	letterRe  = regexp.MustCompile(`^[a-z]\.`)
	romanRe   = regexp.MustCompile(`^(?i)[ivxlcdm]+\.`)
)

// Classifier assigns each logical line a structural role from fixed
// precedence rules over font size, bold flag, leading markers, and
// vertical position. It is a pure function of the line: classifying the
// same line twice always yields the same tag.
type Classifier struct {
	cfg   ClassifierConfig
	vocab Vocabulary
}

// NewClassifier creates a classifier with the given thresholds and
// vocabulary.
func NewClassifier(cfg ClassifierConfig, vocab Vocabulary) *Classifier {
	return &Classifier{cfg: cfg, vocab: vocab}
}

// Classify returns the line's structural role. Precedence is fixed and
// total: separator, document title, section title, list item, header,
// footer, then body. Every line gets exactly one tag.
//
// A line that opens with a list marker is never promoted to a title by
// vocabulary alone ("1. Opening of the meeting" is a list item even
// though "opening" is section vocabulary); size-and-bold promotion still
// applies.
func (c *Classifier) Classify(line *model.Line) model.Classification {
	text := strings.TrimSpace(line.Text)
	lower := strings.ToLower(text)
	listMarker := c.hasListMarker(text)

	switch {
	case isSeparatorText(text):
		return model.Separator
	case line.MaxFontSize >= c.cfg.TitleMinSize && line.Bold,
		!listMarker && containsAnyFold(lower, c.vocab.TitleWords):
		return model.DocumentTitle
	case line.MaxFontSize >= c.cfg.SectionMinSize && line.Bold,
		!listMarker && containsAnyFold(lower, c.vocab.SectionWords):
		return model.SectionTitle
	case listMarker, containsAnyFold(lower, c.vocab.ListWords):
		return model.ListItem
	case line.BBox.Y0 < c.cfg.HeaderZone, containsAnyFold(lower, c.vocab.HeaderWords):
		return model.HeaderInfo
	case line.BBox.Y1 > c.cfg.FooterZone,
		len(text) > c.cfg.FootnoteMinLen && strings.HasPrefix(text, "1 "):
		return model.FooterInfo
	default:
		return model.BodyText
	}
}

// Tag classifies every line in place, also setting the list and bullet
// flags the synthesizer and emitters read.
func (c *Classifier) Tag(lines []*model.Line) {
	for _, l := range lines {
		text := strings.TrimSpace(l.Text)
		l.IsList = isOrderedMarker(text)
		l.IsBullet = c.isBulletMarker(text)
		l.Class = c.Classify(l)
	}
}

// hasListMarker reports whether the text opens with any list marker,
// ordered or bulleted.
func (c *Classifier) hasListMarker(text string) bool {
	return isOrderedMarker(text) || c.isBulletMarker(text)
}

func isOrderedMarker(text string) bool {
	return orderedRe.MatchString(text) || letterRe.MatchString(text) || romanRe.MatchString(text)
}

func (c *Classifier) isBulletMarker(text string) bool {
	if text == "" {
		return false
	}
	runes := []rune(text)
	r := runes[0]
	if !strings.ContainsRune(c.vocab.Bullets, r) {
		return false
	}
	// Single-character markers that double as punctuation (-, *, +)
	// require a following space to count as bullets.
	if r == '-' || r == '*' || r == '+' {
		return len(runes) > 1 && runes[1] == ' '
	}
	return true
}

// isSeparatorText reports whether the text is purely a run of rule
// characters (a drawn divider rendered as text).
func isSeparatorText(text string) bool {
	if len(text) < 3 {
		return false
	}
	seen := false
	for _, r := range text {
		switch r {
		case '=', '-', '_', '*', '—', '–':
			seen = true
		case ' ':
		default:
			return false
		}
	}
	return seen
}
