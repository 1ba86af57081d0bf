package outline

import "github.com/dgallion1/docoutline/internal/layout"

func span(text string, size float64, bold bool) layout.Span {
	s := layout.Span{Text: text, Size: size}
	if bold {
		s.Flags = layout.FlagBold
	}
	return s
}

func line(spans ...layout.Span) layout.Line {
	return layout.Line{Spans: spans}
}

func textBlock(bbox layout.BBox, lines ...layout.Line) layout.Block {
	return layout.Block{Type: layout.BlockText, BBox: bbox, Lines: lines}
}

// para is a full-width body block in the lower half of a 600x800 page.
func para(text string, size float64) layout.Block {
	return textBlock(layout.BBox{X0: 60, Y0: 500, X1: 540, Y1: 540}, line(span(text, size, false)))
}

func page(blocks ...layout.Block) layout.Page {
	return layout.Page{Width: 600, Height: 800, Blocks: blocks}
}
