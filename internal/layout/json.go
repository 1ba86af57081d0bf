package layout

import (
	"encoding/json"
	"fmt"
	"io"
)

// The wire format mirrors PyMuPDF's "dict" text extraction so layouts dumped
// by other tools can be fed in directly.

type jsonDocument struct {
	Pages []jsonPage `json:"pages"`
}

type jsonPage struct {
	Width  float64     `json:"width"`
	Height float64     `json:"height"`
	Blocks []jsonBlock `json:"blocks"`
}

type jsonBlock struct {
	Type  *int       `json:"type,omitempty"`
	BBox  []float64  `json:"bbox"`
	Lines []jsonLine `json:"lines,omitempty"`
}

type jsonLine struct {
	Spans []jsonSpan `json:"spans"`
}

type jsonSpan struct {
	Text  string  `json:"text"`
	Size  float64 `json:"size"`
	Flags int     `json:"flags"`
}

// Decode reads a JSON layout. Blocks without a type are kept as BlockUnknown
// and a short bbox is zero-padded; only malformed JSON is an error.
func Decode(r io.Reader) (*Document, error) {
	var raw jsonDocument
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode layout: %w", err)
	}

	doc := &Document{Pages: make([]Page, 0, len(raw.Pages))}
	for _, rp := range raw.Pages {
		page := Page{Width: rp.Width, Height: rp.Height}
		for _, rb := range rp.Blocks {
			block := Block{Type: BlockUnknown, BBox: bboxFromSlice(rb.BBox)}
			if rb.Type != nil {
				block.Type = *rb.Type
			}
			for _, rl := range rb.Lines {
				line := Line{Spans: make([]Span, 0, len(rl.Spans))}
				for _, rs := range rl.Spans {
					line.Spans = append(line.Spans, Span{Text: rs.Text, Size: rs.Size, Flags: rs.Flags})
				}
				block.Lines = append(block.Lines, line)
			}
			page.Blocks = append(page.Blocks, block)
		}
		doc.Pages = append(doc.Pages, page)
	}
	return doc, nil
}

// Encode writes doc in the format Decode reads.
func Encode(w io.Writer, doc *Document) error {
	raw := jsonDocument{Pages: make([]jsonPage, 0, len(doc.Pages))}
	for _, p := range doc.Pages {
		rp := jsonPage{Width: p.Width, Height: p.Height, Blocks: make([]jsonBlock, 0, len(p.Blocks))}
		for _, b := range p.Blocks {
			typ := b.Type
			rb := jsonBlock{BBox: []float64{b.BBox.X0, b.BBox.Y0, b.BBox.X1, b.BBox.Y1}}
			if typ != BlockUnknown {
				rb.Type = &typ
			}
			for _, l := range b.Lines {
				rl := jsonLine{Spans: make([]jsonSpan, 0, len(l.Spans))}
				for _, s := range l.Spans {
					rl.Spans = append(rl.Spans, jsonSpan{Text: s.Text, Size: s.Size, Flags: s.Flags})
				}
				rb.Lines = append(rb.Lines, rl)
			}
			rp.Blocks = append(rp.Blocks, rb)
		}
		raw.Pages = append(raw.Pages, rp)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(raw); err != nil {
		return fmt.Errorf("encode layout: %w", err)
	}
	return nil
}

func bboxFromSlice(v []float64) BBox {
	var b [4]float64
	copy(b[:], v)
	return BBox{X0: b[0], Y0: b[1], X1: b[2], Y1: b[3]}
}
