package parser

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dgallion1/docoutline/internal/layout"
)

// ErrUnsupportedFormat is returned for file extensions no parser handles.
var ErrUnsupportedFormat = errors.New("unsupported file extension")

// Parser converts raw document bytes into a page layout.
type Parser interface {
	Parse(r io.Reader, filename string) (*layout.Document, error)
}

// Options tune the parsers that typeset structured formats onto pages.
type Options struct {
	LinesPerPage int
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".pdf":      true,
	".json":     true,
	".docx":     true,
	".html":     true,
	".htm":      true,
	".md":       true,
	".markdown": true,
}

// ForFile returns the appropriate parser for a filename.
func ForFile(filename string, opts Options) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf":
		return &PDFParser{}, nil
	case ".json":
		return &LayoutParser{}, nil
	case ".docx":
		return &DOCXParser{LinesPerPage: opts.LinesPerPage}, nil
	case ".html", ".htm":
		return &HTMLParser{LinesPerPage: opts.LinesPerPage}, nil
	case ".md", ".markdown":
		return &MarkdownParser{LinesPerPage: opts.LinesPerPage}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// LayoutParser reads a layout already extracted by another tool.
type LayoutParser struct{}

func (p *LayoutParser) Parse(r io.Reader, filename string) (*layout.Document, error) {
	doc, err := layout.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return doc, nil
}
