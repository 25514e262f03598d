// Package markdown renders the classified content stream as Markdown
// and converts between Markdown and HTML.
package markdown

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/tsawler/docmorph/model"
)

// Emitter renders lines, images, and rules as GitHub-flavored Markdown.
// Image payloads are copied into an assets directory next to the output
// file at Save time.
type Emitter struct {
	blocks []string
	images [][]byte
	log    *zap.Logger
}

// NewEmitter returns a Markdown emitter.
func NewEmitter(log *zap.Logger) *Emitter {
	return &Emitter{log: log}
}

// AddLine renders one logical line as a Markdown block chosen by its
// classification.
func (e *Emitter) AddLine(line *model.Line, _ model.Directive) {
	text := inline(line)
	if strings.TrimSpace(text) == "" {
		return
	}

	switch line.Class {
	case model.DocumentTitle:
		e.blocks = append(e.blocks, "# "+text)
	case model.SectionTitle:
		e.blocks = append(e.blocks, "## "+text)
	case model.ListItem:
		e.blocks = append(e.blocks, listBlock(line, text))
	case model.Separator:
		e.blocks = append(e.blocks, "---")
	case model.FooterInfo:
		e.blocks = append(e.blocks, "*"+text+"*")
	default:
		e.blocks = append(e.blocks, text)
	}
}

// AddImage copies the payload now so the caller may remove the temp file
// immediately, and links it relative to the eventual output path.
func (e *Emitter) AddImage(img *model.ImageRef) {
	data, err := os.ReadFile(img.Path)
	if err != nil {
		e.log.Warn("skipping unreadable image payload",
			zap.String("path", img.Path), zap.Error(err))
		return
	}
	e.images = append(e.images, data)
	e.blocks = append(e.blocks,
		fmt.Sprintf("![image %d](%s)", len(e.images), e.imageName(len(e.images))))
}

// AddRule renders a thematic break.
func (e *Emitter) AddRule(_ *model.RuleLine, _ float64) {
	e.blocks = append(e.blocks, "---")
}

// PageBreak separates pages with a thematic break.
func (e *Emitter) PageBreak() {
	if len(e.blocks) > 0 {
		e.blocks = append(e.blocks, "---")
	}
}

// Save writes the document to path, plus an assets directory when
// images were placed.
func (e *Emitter) Save(path string) error {
	if len(e.images) > 0 {
		dir := assetsDir(path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create assets dir: %w", err)
		}
		for i, data := range e.images {
			name := filepath.Join(dir, fmt.Sprintf("image%d.png", i+1))
			if err := os.WriteFile(name, data, 0o644); err != nil {
				return fmt.Errorf("write asset: %w", err)
			}
		}
	}

	content := strings.Join(e.blocks, "\n\n")
	if content != "" {
		content += "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}

// imageName is the relative link target for the nth placed image. The
// assets directory name is only known relative to the final output, so
// links use the directory's base name.
func (e *Emitter) imageName(n int) string {
	return fmt.Sprintf("assets/image%d.png", n)
}

func assetsDir(outPath string) string {
	return filepath.Join(filepath.Dir(outPath), "assets")
}

// inline renders a line's spans with bold and italic markers, escaping
// characters Markdown would otherwise interpret.
func inline(line *model.Line) string {
	var parts []string
	for _, span := range line.Spans {
		text := escapeText(strings.TrimSpace(span.Text))
		if text == "" {
			continue
		}
		switch {
		case span.Bold() && span.Italic():
			text = "***" + text + "***"
		case span.Bold():
			text = "**" + text + "**"
		case span.Italic():
			text = "*" + text + "*"
		}
		parts = append(parts, text)
	}
	if len(parts) == 0 {
		return escapeText(strings.TrimSpace(line.Text))
	}
	return strings.Join(parts, " ")
}

// listBlock keeps ordered markers from the source text and normalizes
// bullet glyphs to the Markdown dash.
func listBlock(line *model.Line, text string) string {
	if line.IsBullet {
		trimmed := strings.TrimLeft(text, "•◦▪‣·∙-*+ ")
		return "- " + trimmed
	}
	return text
}

func escapeText(s string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		"`", "\\`",
		"*", `\*`,
		"_", `\_`,
		"[", `\[`,
		"]", `\]`,
	)
	return r.Replace(s)
}
