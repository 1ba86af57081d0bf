package parser

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/dgallion1/docoutline/internal/outline"
	"github.com/jung-kurt/gofpdf"
)

// buildReportPDF renders a three page report: a cover with a large title, a
// page opening with a bold numbered heading and body pages with page footers.
func buildReportPDF(t *testing.T) []byte {
	t.Helper()
	pdf := gofpdf.New("P", "pt", "Letter", "")
	pdf.SetCompression(false)

	footer := func(n int) {
		pdf.SetFont("Helvetica", "", 12)
		pdf.Text(290, 760, fmt.Sprintf("%d / 3", n))
	}

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 28)
	pdf.Text(200, 120, "Annual Report")
	pdf.SetFont("Helvetica", "", 12)
	pdf.Text(72, 500, "Prepared for the board.")
	footer(1)

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Text(72, 80, "1. Overview")
	pdf.SetFont("Helvetica", "", 12)
	pdf.Text(72, 110, "Revenue grew across all regions.")
	pdf.Text(72, 124, "Costs were held flat.")
	pdf.Text(72, 138, "Margins improved.")
	footer(2)

	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 12)
	pdf.Text(72, 80, "The outlook remains stable.")
	pdf.Text(72, 94, "No further changes are planned.")
	footer(3)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		t.Fatalf("render pdf: %v", err)
	}
	return buf.Bytes()
}

func TestPDFParser_Report(t *testing.T) {
	data := buildReportPDF(t)

	p := &PDFParser{}
	doc, err := p.Parse(bytes.NewReader(data), "report.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Pages) != 3 {
		t.Fatalf("expected 3 pages, got %d", len(doc.Pages))
	}
	if pg := doc.Pages[0]; pg.Width != 612 || pg.Height != 792 {
		t.Errorf("expected letter page size, got %vx%v", pg.Width, pg.Height)
	}

	res := outline.Infer(doc)
	if res.Title != "Annual Report" {
		t.Errorf("expected title %q, got %q", "Annual Report", res.Title)
	}

	want := outline.Entry{Level: outline.H1, Text: "1. Overview", Page: 1}
	if len(res.Outline) != 1 || res.Outline[0] != want {
		t.Errorf("expected outline [%+v], got %+v", want, res.Outline)
	}
}

func TestPDFParser_BoldFontFlag(t *testing.T) {
	data := buildReportPDF(t)

	doc, err := (&PDFParser{}).Parse(bytes.NewReader(data), "report.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var found bool
	for _, b := range doc.Pages[1].Blocks {
		for _, l := range b.Lines {
			for _, s := range l.Spans {
				if s.Text == "1. Overview" {
					found = true
					if !s.Bold() {
						t.Errorf("expected heading span to be bold, flags %d", s.Flags)
					}
					if s.Size != 14 {
						t.Errorf("expected size 14, got %v", s.Size)
					}
				}
			}
		}
	}
	if !found {
		t.Error("expected a span holding the heading text on page 1")
	}
}

func TestPDFParser_InvalidData(t *testing.T) {
	_, err := (&PDFParser{}).Parse(bytes.NewReader([]byte("not a pdf")), "broken.pdf")
	if err == nil {
		t.Fatal("expected error for invalid pdf")
	}
}

func TestPDFParser_DamagedFiles(t *testing.T) {
	report := buildReportPDF(t)
	truncated := append(append([]byte{}, report[:len(report)/2]...), report[len(report)-200:]...)

	tests := []struct {
		name string
		data []byte
	}{
		{"truncated body", truncated},
		{"xref past end", []byte("%PDF-1.4\n1 0 obj\n<< >>\nendobj\nstartxref\n9999\n%%EOF\n")},
		{"header only", []byte("%PDF-1.4\n")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := (&PDFParser{}).Parse(bytes.NewReader(tt.data), "damaged.pdf")
			if err == nil {
				t.Fatalf("expected error, got document with %d pages", len(doc.Pages))
			}
			if doc != nil {
				t.Errorf("expected nil document on error, got %+v", doc)
			}
		})
	}
}

func TestFontFlags(t *testing.T) {
	tests := []struct {
		font   string
		bold   bool
		italic bool
	}{
		{"Helvetica", false, false},
		{"Helvetica-Bold", true, false},
		{"ABCDEF+Arial-BoldItalicMT", true, true},
		{"Times-Oblique", false, true},
		{"Inter-SemiBold", true, false},
	}
	for _, tt := range tests {
		flags := fontFlags(tt.font)
		if got := flags&16 != 0; got != tt.bold {
			t.Errorf("%s: expected bold %v, got %v", tt.font, tt.bold, got)
		}
		if got := flags&2 != 0; got != tt.italic {
			t.Errorf("%s: expected italic %v, got %v", tt.font, tt.italic, got)
		}
	}
}
