package docmorph

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/tsawler/docmorph/docx"
	"github.com/tsawler/docmorph/layout"
	"github.com/tsawler/docmorph/markdown"
	"github.com/tsawler/docmorph/model"
	"github.com/tsawler/docmorph/pdf"
	"github.com/tsawler/docmorph/pptx"
	"github.com/tsawler/docmorph/xlsx"
)

// Emitter consumes the classified content stream and writes one target
// format.
type Emitter interface {
	AddLine(line *model.Line, d model.Directive)
	AddImage(img *model.ImageRef)
	AddRule(r *model.RuleLine, pageWidth float64)
	PageBreak()
	Save(path string) error
}

// newEmitter picks the emitter for a layout-pipeline target extension.
func newEmitter(targetExt string, log *zap.Logger) (Emitter, error) {
	switch targetExt {
	case "docx":
		return docx.NewEmitter(log), nil
	case "xlsx":
		return xlsx.NewEmitter(log), nil
	case "pptx":
		return pptx.NewEmitter(log), nil
	case "md", "markdown":
		return markdown.NewEmitter(log), nil
	default:
		return nil, fmt.Errorf("no layout emitter for %q", targetExt)
	}
}

// convertPDF runs the native layout pipeline: extract primitives,
// assemble logical lines, order the content stream, classify, compute
// formatting directives, and emit.
func (m *Morpher) convertPDF(ctx context.Context, inputPath, tmp, targetExt string) error {
	em, err := newEmitter(targetExt, m.log)
	if err != nil {
		return err
	}

	ex, err := pdf.Open(inputPath)
	if err != nil {
		return err
	}
	defer ex.Close()

	pages := make([]int, 0, ex.PageCount())
	if m.opts.PageRange != "" {
		pages, err = ParsePageRange(m.opts.PageRange, ex.PageCount())
		if err != nil {
			return err
		}
	} else {
		for p := 1; p <= ex.PageCount(); p++ {
			pages = append(pages, p)
		}
	}

	// Image extraction runs on a separate parse; losing it degrades the
	// conversion to text-only rather than failing it.
	imgSrc, err := pdf.NewImageSource(inputPath, m.log)
	if err != nil {
		m.log.Warn("continuing without images", zap.Error(err))
		imgSrc = nil
	}
	bounds := m.opts.imageBounds()

	vocab := layout.DefaultVocabulary()
	if m.opts.VocabularyPath != "" {
		vocab, err = layout.LoadVocabulary(m.opts.VocabularyPath)
		if err != nil {
			return err
		}
	}
	asm := layout.NewAssembler(layout.DefaultMergeConfig())
	cls := layout.NewClassifier(layout.DefaultClassifierConfig(), vocab)
	syn := layout.NewSynthesizer(layout.DefaultSynthesizerConfig())

	for i, pageNo := range pages {
		if err := ctx.Err(); err != nil {
			return err
		}
		if i > 0 {
			em.PageBreak()
		}
		if err := m.convertPage(ex, imgSrc, pageNo, asm, cls, syn, bounds, em); err != nil {
			return err
		}
	}
	return em.Save(tmp)
}

// convertPage feeds one page through the layout stages into the
// emitter.
func (m *Morpher) convertPage(ex *pdf.Extractor, imgSrc *pdf.ImageSource, pageNo int,
	asm *layout.Assembler, cls *layout.Classifier, syn *layout.Synthesizer,
	bounds pdf.SizeBounds, em Emitter) error {

	pc, err := ex.Page(pageNo)
	if err != nil {
		return err
	}

	lines := asm.Assemble(pc.Rows)
	cls.Tag(lines)

	var images []*model.ImageRef
	if imgSrc != nil {
		images = imgSrc.PageImages(pageNo)
		for _, img := range images {
			pdf.DisplaySize(img, bounds)
		}
	}

	items := layout.Sequence(lines, images, pc.Rules)
	m.log.Debug("page reconstructed",
		zap.Int("page", pageNo),
		zap.Int("lines", len(lines)),
		zap.Int("images", len(images)),
		zap.Int("rules", len(pc.Rules)))

	for _, item := range items {
		switch item.Kind {
		case model.ItemText:
			em.AddLine(item.Line, syn.Directive(item.Line, pc.Width))
		case model.ItemImage:
			em.AddImage(item.Image)
			// The emitter has copied the payload; drop the temp file
			// before moving on.
			if err := os.Remove(item.Image.Path); err != nil && !os.IsNotExist(err) {
				m.log.Warn("temp image not removed",
					zap.String("path", item.Image.Path), zap.Error(err))
			}
		case model.ItemRule:
			em.AddRule(item.Rule, pc.Width)
		}
	}
	return nil
}

// convertMarkup converts between Markdown and HTML.
func (m *Morpher) convertMarkup(inputPath, tmp, targetExt string) error {
	source, err := os.ReadFile(inputPath)
	if err != nil {
		return err
	}

	var out []byte
	switch targetExt {
	case "html", "htm":
		title := markdown.Title(source)
		if title == "" {
			title = "Converted document"
		}
		out, err = markdown.ToHTMLDocument(source, title)
	case "md", "markdown":
		out, err = markdown.FromHTML(source)
	default:
		err = fmt.Errorf("no markup conversion to %q", targetExt)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(tmp, out, 0o644)
}
