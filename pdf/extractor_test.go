package pdf

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tsawler/docmorph/model"
)

// writeFixturePDF builds a small single-page PDF by hand: a bold 18pt
// line, a 12pt line below it, and a filled thin rectangle near the page
// bottom. The MediaBox lives on the page tree node to exercise
// inheritance.
func writeFixturePDF(t *testing.T) string {
	t.Helper()

	content := "BT /F2 18 Tf 72 730 Td (TITLE LINE) Tj ET\n" +
		"BT /F1 12 Tf 72 700 Td (Hello) Tj ET\n" +
		"72 100 200 2 re f\n"
	widths := strings.TrimSpace(strings.Repeat("500 ", 95))

	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 /MediaBox [0 0 612 792] >>",
		"<< /Type /Page /Parent 2 0 R /Resources << /Font << /F1 5 0 R /F2 6 0 R >> >> /Contents 4 0 R >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%sendstream", len(content), content),
		fmt.Sprintf("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /FirstChar 32 /LastChar 126 /Widths [%s] /Encoding /WinAnsiEncoding >>", widths),
		fmt.Sprintf("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica-Bold /FirstChar 32 /LastChar 126 /Widths [%s] /Encoding /WinAnsiEncoding >>", widths),
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects)+1)
	for i, obj := range objects {
		offsets[i+1] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	start := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for i := 1; i <= len(objects); i++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(objects)+1, start)

	path := filepath.Join(t.TempDir(), "fixture.pdf")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestOpenMissingFile(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "nope.pdf")); err == nil {
		t.Fatal("missing file should error")
	}
}

func TestExtractFixturePage(t *testing.T) {
	ex, err := Open(writeFixturePDF(t))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer ex.Close()

	if n := ex.PageCount(); n != 1 {
		t.Fatalf("PageCount = %d, want 1", n)
	}

	pc, err := ex.Page(1)
	if err != nil {
		t.Fatalf("Page: %v", err)
	}
	if pc.Width != 612 || pc.Height != 792 {
		t.Errorf("page size = %vx%v, want 612x792 from inherited MediaBox", pc.Width, pc.Height)
	}
	if len(pc.Rows) != 2 {
		t.Fatalf("got %d rows, want 2: %+v", len(pc.Rows), pc.Rows)
	}

	title := pc.Rows[0]
	if got := rowText(title); got != "TITLE LINE" {
		t.Errorf("top row text = %q", got)
	}
	if !title[0].Bold() {
		t.Error("top row should read as bold from the face name")
	}
	if title[0].Size != 18 {
		t.Errorf("top row size = %v, want 18", title[0].Size)
	}

	if got := rowText(pc.Rows[1]); got != "Hello" {
		t.Errorf("second row text = %q", got)
	}

	// Top-origin check: the 18pt line at PDF baseline 730 sits above the
	// 12pt line at baseline 700.
	if title[0].BBox.Y0 >= pc.Rows[1][0].BBox.Y0 {
		t.Errorf("rows out of top-origin order: %v then %v",
			title[0].BBox.Y0, pc.Rows[1][0].BBox.Y0)
	}

	if len(pc.Rules) != 1 {
		t.Fatalf("got %d rules, want 1", len(pc.Rules))
	}
	r := pc.Rules[0]
	if r.BBox.Width() != 200 || r.BBox.Height() != 2 {
		t.Errorf("rule geometry = %vx%v, want 200x2", r.BBox.Width(), r.BBox.Height())
	}
	if r.BBox.Y0 != 690 {
		t.Errorf("rule Y0 = %v, want 690 in top-origin coordinates", r.BBox.Y0)
	}
}

func TestPageOutOfRange(t *testing.T) {
	ex, err := Open(writeFixturePDF(t))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer ex.Close()

	for _, n := range []int{0, 2, -1} {
		if _, err := ex.Page(n); err == nil {
			t.Errorf("Page(%d) should error", n)
		}
	}
}

func rowText(row []model.GlyphSpan) string {
	parts := make([]string, 0, len(row))
	for _, s := range row {
		parts = append(parts, s.Text)
	}
	return strings.Join(parts, " ")
}
