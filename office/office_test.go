package office

import (
	"context"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestBuildArgs(t *testing.T) {
	args := buildArgs("/tmp/in.docx", "/tmp/out", "pdf")
	joined := strings.Join(args, " ")
	for _, want := range []string{"--headless", "--convert-to pdf", "--outdir /tmp/out", "/tmp/in.docx"} {
		if !strings.Contains(joined, want) {
			t.Errorf("args missing %q: %v", want, args)
		}
	}
	if args[len(args)-1] != "/tmp/in.docx" {
		t.Errorf("input path must come last: %v", args)
	}
}

func TestExpectedOutput(t *testing.T) {
	got := expectedOutput("/data/report.v2.docx", "/tmp/out", "pdf")
	if got != "/tmp/out/report.v2.pdf" {
		t.Errorf("expectedOutput = %q", got)
	}
}

func TestSupportedTarget(t *testing.T) {
	for _, ext := range []string{"pdf", ".docx", "XLSX", "odt", "csv"} {
		if !SupportedTarget(ext) {
			t.Errorf("SupportedTarget(%q) = false", ext)
		}
	}
	for _, ext := range []string{"mp4", "", "exe"} {
		if SupportedTarget(ext) {
			t.Errorf("SupportedTarget(%q) = true", ext)
		}
	}
}

func TestConvertRejectsUnknownTarget(t *testing.T) {
	r := NewRunner(zap.NewNop())
	if _, err := r.Convert(context.Background(), "/tmp/in.docx", "/tmp", "mp4"); err == nil {
		t.Fatal("unknown target should error before running anything")
	}
}

func TestConvertHonorsCancelledContext(t *testing.T) {
	r := NewRunner(zap.NewNop())
	// Fill the worker slots so acquisition blocks, then cancel.
	for i := 0; i < DefaultWorkers; i++ {
		r.sem <- struct{}{}
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.Convert(ctx, "/tmp/in.docx", "/tmp", "pdf"); err != context.Canceled {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
