package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/dgallion1/docoutline/internal/outline"
)

func TestForFile(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"report.pdf", "*parser.PDFParser"},
		{"REPORT.PDF", "*parser.PDFParser"},
		{"layout.json", "*parser.LayoutParser"},
		{"memo.docx", "*parser.DOCXParser"},
		{"page.htm", "*parser.HTMLParser"},
		{"notes.markdown", "*parser.MarkdownParser"},
	}
	for _, tt := range tests {
		p, err := ForFile(tt.filename, Options{})
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.filename, err)
		}
		if got := typeName(p); got != tt.want {
			t.Errorf("%s: expected %s, got %s", tt.filename, tt.want, got)
		}
	}

	if _, err := ForFile("data.csv", Options{}); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestIsSupportedExtension(t *testing.T) {
	if !IsSupportedExtension("a.PDF") {
		t.Error("expected .PDF to be supported")
	}
	if IsSupportedExtension("a.txt") {
		t.Error("expected .txt to be unsupported")
	}
	if IsSupportedExtension("noext") {
		t.Error("expected file without extension to be unsupported")
	}
}

func TestLayoutParser(t *testing.T) {
	input := `{"pages": [
  {"width": 600, "height": 800, "blocks": [
    {"type": 0, "bbox": [150, 60, 450, 100], "lines": [{"spans": [{"text": "Annual Report", "size": 28, "flags": 0}]}]},
    {"type": 0, "bbox": [60, 500, 540, 540], "lines": [{"spans": [{"text": "Cover text", "size": 12, "flags": 0}]}]}
  ]},
  {"width": 600, "height": 800, "blocks": [
    {"type": 0, "bbox": [60, 80, 540, 100], "lines": [{"spans": [{"text": "1. Overview", "size": 14, "flags": 16}]}]},
    {"type": 0, "bbox": [60, 120, 540, 200], "lines": [{"spans": [{"text": "Body", "size": 12, "flags": 0}]}, {"spans": [{"text": "more", "size": 12, "flags": 0}]}]}
  ]}
]}`
	p := &LayoutParser{}
	doc, err := p.Parse(strings.NewReader(input), "report.json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	res := outline.Infer(doc)
	if res.Title != "Annual Report" {
		t.Errorf("expected title %q, got %q", "Annual Report", res.Title)
	}
	if len(res.Outline) != 1 || res.Outline[0].Text != "1. Overview" || res.Outline[0].Page != 1 {
		t.Errorf("expected single heading on page 1, got %+v", res.Outline)
	}
}

func TestLayoutParser_Malformed(t *testing.T) {
	p := &LayoutParser{}
	_, err := p.Parse(strings.NewReader("not json"), "bad.json")
	if err == nil {
		t.Fatal("expected error for malformed layout")
	}
	if !strings.Contains(err.Error(), "bad.json") {
		t.Errorf("expected filename in error, got %v", err)
	}
}

func typeName(v any) string {
	switch v.(type) {
	case *PDFParser:
		return "*parser.PDFParser"
	case *LayoutParser:
		return "*parser.LayoutParser"
	case *DOCXParser:
		return "*parser.DOCXParser"
	case *HTMLParser:
		return "*parser.HTMLParser"
	case *MarkdownParser:
		return "*parser.MarkdownParser"
	}
	return "unknown"
}
