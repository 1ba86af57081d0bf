package parser

import (
	"math"
	"strings"

	"github.com/dgallion1/docoutline/internal/layout"
	pdflib "github.com/ledongthuc/pdf"
)

const (
	// Glyph gap, as a fraction of font size, treated as a word break.
	wordSpaceMultiplier = 0.3
	// Baseline drift, as a fraction of font size, still on the same line.
	rowTolerance = 0.3
	// Vertical gap between lines, as a fraction of font size, that still
	// continues the same block.
	blockGapMultiplier = 0.6
	// Glyph ascent and descent as fractions of font size.
	ascent  = 0.8
	descent = 0.2
)

type pdfLine struct {
	spans    []layout.Span
	bbox     layout.BBox
	baseline float64
	size     float64
	lastFont string
	lastEnd  float64
}

// buildPage groups glyphs in content-stream order. PDF space is bottom-up, so
// coordinates are flipped against the MediaBox top.
func buildPage(texts []pdflib.Text, box layout.BBox) layout.Page {
	page := layout.Page{Width: box.X1 - box.X0, Height: box.Y1 - box.Y0}

	var lines []*pdfLine
	var cur *pdfLine
	for _, t := range texts {
		if t.S == "" || t.FontSize <= 0 {
			continue
		}
		x := t.X - box.X0
		glyph := layout.BBox{
			X0: x,
			Y0: box.Y1 - (t.Y + ascent*t.FontSize),
			X1: x + t.W,
			Y1: box.Y1 - (t.Y - descent*t.FontSize),
		}

		if cur == nil || !sameLine(cur, t, x) {
			if cur != nil && strings.TrimSpace(lineText(cur)) == "" {
				lines = lines[:len(lines)-1]
			}
			cur = &pdfLine{bbox: glyph, baseline: t.Y, size: t.FontSize}
			lines = append(lines, cur)
		} else if x-cur.lastEnd > wordSpaceMultiplier*t.FontSize && !endsWithSpace(cur) && !strings.HasPrefix(t.S, " ") {
			appendGlyph(cur, " ", t)
		}
		appendGlyph(cur, t.S, t)
		cur.bbox = cur.bbox.Union(glyph)
		cur.lastEnd = x + t.W
		cur.size = math.Max(cur.size, t.FontSize)
	}
	if cur != nil && strings.TrimSpace(lineText(cur)) == "" {
		lines = lines[:len(lines)-1]
	}

	var block *layout.Block
	var prev *pdfLine
	for _, l := range lines {
		if block == nil || !sameBlock(prev, l) {
			page.Blocks = append(page.Blocks, layout.Block{Type: layout.BlockText, BBox: l.bbox})
			block = &page.Blocks[len(page.Blocks)-1]
		}
		block.Lines = append(block.Lines, layout.Line{Spans: l.spans})
		block.BBox = block.BBox.Union(l.bbox)
		prev = l
	}
	return page
}

func sameLine(l *pdfLine, t pdflib.Text, x float64) bool {
	if math.Abs(t.Y-l.baseline) > rowTolerance*math.Max(l.size, t.FontSize) {
		return false
	}
	// A jump back to the left margin starts a new line even on the same baseline.
	return x >= l.lastEnd-t.FontSize
}

func sameBlock(prev, next *pdfLine) bool {
	if math.Round(prev.size) != math.Round(next.size) {
		return false
	}
	gap := next.bbox.Y0 - prev.bbox.Y1
	if gap < -prev.size || gap > blockGapMultiplier*prev.size {
		return false
	}
	return next.bbox.X0 <= prev.bbox.X1 && prev.bbox.X0 <= next.bbox.X1
}

// appendGlyph extends the last span when font and size match, otherwise opens
// a new span.
func appendGlyph(l *pdfLine, s string, t pdflib.Text) {
	flags := fontFlags(t.Font)
	if n := len(l.spans); n > 0 {
		last := &l.spans[n-1]
		if l.lastFont == t.Font && math.Abs(last.Size-t.FontSize) < 0.01 {
			last.Text += s
			return
		}
	}
	l.spans = append(l.spans, layout.Span{Text: s, Size: t.FontSize, Flags: flags})
	l.lastFont = t.Font
}

// fontFlags derives style bits from the base font name, e.g. "Helvetica-Bold".
func fontFlags(font string) int {
	name := strings.ToLower(font)
	flags := 0
	for _, w := range []string{"bold", "black", "heavy", "semibold", "demi"} {
		if strings.Contains(name, w) {
			flags |= layout.FlagBold
			break
		}
	}
	if strings.Contains(name, "italic") || strings.Contains(name, "oblique") {
		flags |= layout.FlagItalic
	}
	return flags
}

func lineText(l *pdfLine) string {
	var sb strings.Builder
	for _, s := range l.spans {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

func endsWithSpace(l *pdfLine) bool {
	if len(l.spans) == 0 {
		return true
	}
	return strings.HasSuffix(l.spans[len(l.spans)-1].Text, " ")
}
