// Package layout describes a document as positioned, styled text: pages hold
// blocks, blocks hold lines, lines hold spans. Parsers produce it; the outline
// package reads it.
package layout

// Block type discriminators.
const (
	BlockUnknown = -1
	BlockText    = 0
	BlockImage   = 1
)

// Span style-flag bits.
const (
	FlagItalic = 2
	FlagBold   = 16
)

// Document is an ordered sequence of pages.
type Document struct {
	Pages []Page
}

// Page is a single physical page. Coordinates are top-down: Y grows toward the
// bottom edge.
type Page struct {
	Width  float64
	Height float64
	Blocks []Block
}

// BBox is an axis-aligned bounding box.
type BBox struct {
	X0, Y0, X1, Y1 float64
}

// CenterX returns the horizontal midpoint of the box.
func (b BBox) CenterX() float64 {
	return b.X0 + (b.X1-b.X0)/2
}

// Union returns the smallest box containing both b and o.
func (b BBox) Union(o BBox) BBox {
	return BBox{
		X0: min(b.X0, o.X0),
		Y0: min(b.Y0, o.Y0),
		X1: max(b.X1, o.X1),
		Y1: max(b.Y1, o.Y1),
	}
}

// Block is a geometric region of a page.
type Block struct {
	Type  int
	BBox  BBox
	Lines []Line
}

// IsText reports whether the block carries text lines.
func (b Block) IsText() bool {
	return b.Type == BlockText
}

// Line is an ordered run of spans sharing a visual line.
type Line struct {
	Spans []Span
}

// Span is an atomic styled text run.
type Span struct {
	Text  string
	Size  float64
	Flags int
}

// Bold reports whether the bold bit is set.
func (s Span) Bold() bool {
	return s.Flags&FlagBold != 0
}
