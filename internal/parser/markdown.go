package parser

import (
	"bytes"
	"io"
	"strings"

	"github.com/dgallion1/docoutline/internal/layout"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles Markdown files using goldmark. A level-1 heading that
// opens the document becomes the cover title.
type MarkdownParser struct {
	LinesPerPage int
}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*layout.Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	first := doc.FirstChild()
	title := ""
	if h, ok := first.(*ast.Heading); ok && h.Level == 1 {
		title = inlineText(h, src)
		first = first.NextSibling()
	}

	ts := newTypesetter(p.LinesPerPage, title)
	for n := first; n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			ts.heading(node.Level, inlineText(node, src))
		case *ast.List:
			for item := node.FirstChild(); item != nil; item = item.NextSibling() {
				ts.paragraph(inlineRuns(item, src, false))
			}
		case *ast.ThematicBreak:
		default:
			ts.paragraph(inlineRuns(n, src, false))
		}
	}
	return ts.document(), nil
}

// inlineRuns flattens a node's text, marking strong emphasis as bold.
func inlineRuns(n ast.Node, src []byte, bold bool) []run {
	var runs []run
	if n.Type() == ast.TypeBlock && n.FirstChild() == nil {
		var buf bytes.Buffer
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			buf.Write(line.Value(src))
		}
		if s := strings.TrimSpace(buf.String()); s != "" {
			runs = append(runs, run{text: s, bold: bold})
		}
		return runs
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			s := string(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				s += " "
			}
			runs = append(runs, run{text: s, bold: bold})
		case *ast.Emphasis:
			runs = append(runs, inlineRuns(t, src, bold || t.Level >= 2)...)
		default:
			if c.Type() == ast.TypeBlock {
				if len(runs) > 0 {
					runs = append(runs, run{text: " "})
				}
			}
			runs = append(runs, inlineRuns(c, src, bold)...)
		}
	}
	return runs
}

func inlineText(n ast.Node, src []byte) string {
	return strings.TrimSpace(joinRuns(inlineRuns(n, src, false)))
}
