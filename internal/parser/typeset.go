package parser

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/dgallion1/docoutline/internal/layout"
)

// Structured formats carry headings but no geometry. They are set onto
// US-Letter pages with fixed typography so the outline heuristics see the same
// signals a rendered PDF would give: a cover page holding the title, then
// body pages with larger bold headings.
const (
	DefaultLinesPerPage = 45

	marginX      = 72.0
	marginTop    = 72.0
	bodyFontSize = 12.0
	titleSize    = 28.0
	lineFactor   = 1.2
	charsPerLine = 90
)

var headingSizes = [7]float64{bodyFontSize, 24, 20, 16, 14, 13, 13}

// run is a piece of inline text with its weight.
type run struct {
	text string
	bold bool
}

type typesetter struct {
	linesPerPage int
	doc          *layout.Document
	line         int
}

// newTypesetter starts a document with a cover page. The cover is left empty
// when title is blank.
func newTypesetter(linesPerPage int, title string) *typesetter {
	if linesPerPage <= 0 {
		linesPerPage = DefaultLinesPerPage
	}
	t := &typesetter{linesPerPage: linesPerPage, doc: &layout.Document{}}

	cover := newPage()
	if title = strings.TrimSpace(title); title != "" {
		top := marginTop + 72
		cover.Blocks = append(cover.Blocks, layout.Block{
			Type: layout.BlockText,
			BBox: layout.BBox{X0: marginX, Y0: top, X1: defaultPageWidth - marginX, Y1: top + titleSize*lineFactor},
			Lines: []layout.Line{{Spans: []layout.Span{
				{Text: title, Size: titleSize, Flags: layout.FlagBold},
			}}},
		})
	}
	t.doc.Pages = append(t.doc.Pages, cover, newPage())
	return t
}

func newPage() layout.Page {
	return layout.Page{Width: defaultPageWidth, Height: defaultPageHeight}
}

// heading sets a bold heading of the given level (1-6).
func (t *typesetter) heading(level int, text string) {
	level = min(max(level, 1), 6)
	t.block([]run{{text: text, bold: true}}, headingSizes[level])
}

// paragraph sets body text.
func (t *typesetter) paragraph(runs []run) {
	t.block(runs, bodyFontSize)
}

func (t *typesetter) block(runs []run, size float64) {
	var spans []layout.Span
	chars := 0
	for _, r := range runs {
		if r.text == "" {
			continue
		}
		flags := 0
		if r.bold {
			flags = layout.FlagBold
		}
		spans = append(spans, layout.Span{Text: r.text, Size: size, Flags: flags})
		chars += utf8.RuneCountInString(r.text)
	}
	if len(spans) == 0 || strings.TrimSpace(joinRuns(runs)) == "" {
		return
	}

	need := max(1, int(math.Ceil(float64(chars)/charsPerLine)))
	if t.line > 0 && t.line+need > t.linesPerPage {
		t.doc.Pages = append(t.doc.Pages, newPage())
		t.line = 0
	}

	lineHeight := bodyFontSize * lineFactor
	top := marginTop + float64(t.line)*lineHeight
	page := &t.doc.Pages[len(t.doc.Pages)-1]
	page.Blocks = append(page.Blocks, layout.Block{
		Type:  layout.BlockText,
		BBox:  layout.BBox{X0: marginX, Y0: top, X1: defaultPageWidth - marginX, Y1: top + float64(need)*size*lineFactor},
		Lines: []layout.Line{{Spans: spans}},
	})
	// Headings also take a blank line after them.
	t.line += need
	if size > bodyFontSize {
		t.line++
	}
}

// document returns the typeset pages, dropping a trailing empty page.
func (t *typesetter) document() *layout.Document {
	if n := len(t.doc.Pages); n > 2 && len(t.doc.Pages[n-1].Blocks) == 0 {
		t.doc.Pages = t.doc.Pages[:n-1]
	}
	return t.doc
}

func joinRuns(runs []run) string {
	var sb strings.Builder
	for _, r := range runs {
		sb.WriteString(r.text)
	}
	return sb.String()
}
