// Package office shells out to LibreOffice for the format pairs that
// need a full office suite: Word, Excel, PowerPoint, OpenDocument, and
// friends converting among themselves or down to PDF.
package office

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultWorkers caps concurrent soffice processes. LibreOffice is
// memory hungry and serializes badly beyond a few instances.
const DefaultWorkers = 3

// DefaultTimeout bounds a single conversion run.
const DefaultTimeout = 5 * time.Minute

// filters maps target extensions to soffice --convert-to filter
// arguments.
var filters = map[string]string{
	"pdf":  "pdf",
	"docx": "docx:MS Word 2007 XML",
	"doc":  "doc:MS Word 97",
	"xlsx": "xlsx:Calc MS Excel 2007 XML",
	"xls":  "xls:MS Excel 97",
	"pptx": "pptx:Impress MS PowerPoint 2007 XML",
	"ppt":  "ppt:MS PowerPoint 97",
	"odt":  "odt",
	"ods":  "ods",
	"odp":  "odp",
	"rtf":  "rtf:Rich Text Format",
	"txt":  "txt:Text",
	"html": "html",
	"csv":  "csv:Text - txt - csv (StarCalc)",
}

// SupportedTarget reports whether soffice has a filter for the target
// extension.
func SupportedTarget(ext string) bool {
	_, ok := filters[normalizeExt(ext)]
	return ok
}

// Runner executes LibreOffice conversions with bounded concurrency.
type Runner struct {
	binary  string
	timeout time.Duration
	sem     chan struct{}
	log     *zap.Logger
}

// NewRunner returns a runner with the default binary, worker cap, and
// timeout.
func NewRunner(log *zap.Logger) *Runner {
	return &Runner{
		binary:  "soffice",
		timeout: DefaultTimeout,
		sem:     make(chan struct{}, DefaultWorkers),
		log:     log,
	}
}

// Available reports whether the soffice binary is on PATH.
func (r *Runner) Available() bool {
	_, err := exec.LookPath(r.binary)
	return err == nil
}

// Convert runs one conversion and returns the path of the produced
// file inside outDir. The call blocks while all workers are busy.
func (r *Runner) Convert(ctx context.Context, inputPath, outDir, targetExt string) (string, error) {
	ext := normalizeExt(targetExt)
	filter, ok := filters[ext]
	if !ok {
		return "", fmt.Errorf("no office filter for %q", targetExt)
	}

	select {
	case r.sem <- struct{}{}:
		defer func() { <-r.sem }()
	case <-ctx.Done():
		return "", ctx.Err()
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	args := buildArgs(inputPath, outDir, filter)
	r.log.Debug("running office conversion",
		zap.String("input", inputPath), zap.Strings("args", args))

	cmd := exec.CommandContext(ctx, r.binary, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("office conversion timed out after %s", r.timeout)
		}
		return "", fmt.Errorf("soffice failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	out := expectedOutput(inputPath, outDir, ext)
	if _, err := os.Stat(out); err != nil {
		return "", fmt.Errorf("office conversion produced no output at %s", out)
	}
	return out, nil
}

// buildArgs assembles the soffice invocation for one conversion.
func buildArgs(inputPath, outDir, filter string) []string {
	return []string{
		"--headless",
		"--norestore",
		"--invisible",
		"--convert-to", filter,
		"--outdir", outDir,
		inputPath,
	}
}

// expectedOutput is where soffice drops the converted file: the input
// base name with the target extension, inside outDir.
func expectedOutput(inputPath, outDir, ext string) string {
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	return filepath.Join(outDir, base+"."+ext)
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
