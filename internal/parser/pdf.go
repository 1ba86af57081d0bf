package parser

import (
	"bytes"
	"fmt"
	"io"

	"github.com/dgallion1/docoutline/internal/layout"
	pdflib "github.com/ledongthuc/pdf"
)

// US Letter, used when a page carries no usable MediaBox.
const (
	defaultPageWidth  = 612.0
	defaultPageHeight = 792.0
)

// PDFParser reads glyph positions and fonts with ledongthuc/pdf and groups
// them into spans, lines and blocks.
type PDFParser struct{}

// Parse reads a PDF. ledongthuc/pdf reports damaged files (bad xref,
// truncated streams) by panicking, so any panic becomes an error here.
func (p *PDFParser) Parse(r io.Reader, filename string) (doc *layout.Document, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			doc, err = nil, fmt.Errorf("malformed pdf: %v", rec)
		}
	}()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}

	reader, err := pdflib.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}

	doc = &layout.Document{}
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			// Keep physical page numbering intact.
			doc.Pages = append(doc.Pages, layout.Page{Width: defaultPageWidth, Height: defaultPageHeight})
			continue
		}
		box := mediaBox(page)
		doc.Pages = append(doc.Pages, buildPage(pageGlyphs(page), box))
	}
	return doc, nil
}

// pageGlyphs returns the positioned glyphs of a page. Content streams the
// library cannot interpret yield an empty page instead of failing the document.
func pageGlyphs(page pdflib.Page) (texts []pdflib.Text) {
	defer func() {
		if recover() != nil {
			texts = nil
		}
	}()
	return page.Content().Text
}

// mediaBox returns the page box, following Parent links for inherited values.
func mediaBox(page pdflib.Page) layout.BBox {
	v := page.V
	for depth := 0; depth < 32 && !v.IsNull(); depth++ {
		box := v.Key("MediaBox")
		if box.Len() == 4 {
			b := layout.BBox{
				X0: box.Index(0).Float64(),
				Y0: box.Index(1).Float64(),
				X1: box.Index(2).Float64(),
				Y1: box.Index(3).Float64(),
			}
			if b.X1 > b.X0 && b.Y1 > b.Y0 {
				return b
			}
		}
		v = v.Key("Parent")
	}
	return layout.BBox{X1: defaultPageWidth, Y1: defaultPageHeight}
}
