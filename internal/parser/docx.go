package parser

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/docoutline/internal/layout"
	"github.com/fumiama/go-docx"
)

// DOCXParser handles .docx files. A leading "Title" paragraph becomes the
// cover title; "Heading N" paragraphs are set as headings.
type DOCXParser struct {
	LinesPerPage int
}

func (p *DOCXParser) Parse(r io.Reader, filename string) (*layout.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read docx: %w", err)
	}

	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	var paras []*docx.Paragraph
	for _, item := range doc.Document.Body.Items {
		if para, ok := item.(*docx.Paragraph); ok {
			paras = append(paras, para)
		}
	}

	title := ""
	if len(paras) > 0 && docxStyle(paras[0]) == "title" {
		title = docxParagraphText(paras[0])
		paras = paras[1:]
	}

	ts := newTypesetter(p.LinesPerPage, title)
	for _, para := range paras {
		if level := docxHeadingLevel(para); level > 0 {
			ts.heading(level, docxParagraphText(para))
			continue
		}
		ts.paragraph(docxRuns(para))
	}
	return ts.document(), nil
}

func docxStyle(para *docx.Paragraph) string {
	if para.Properties == nil || para.Properties.Style == nil {
		return ""
	}
	return strings.ToLower(strings.ReplaceAll(para.Properties.Style.Val, " ", ""))
}

func docxHeadingLevel(para *docx.Paragraph) int {
	style := docxStyle(para)
	if !strings.HasPrefix(style, "heading") {
		return 0
	}
	switch strings.TrimPrefix(style, "heading") {
	case "1":
		return 1
	case "2":
		return 2
	case "3":
		return 3
	case "4":
		return 4
	case "5":
		return 5
	case "6":
		return 6
	}
	return 0
}

func docxRuns(para *docx.Paragraph) []run {
	var runs []run
	for _, child := range para.Children {
		r, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		var buf strings.Builder
		for _, rc := range r.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
		bold := r.RunProperties != nil && r.RunProperties.Bold != nil
		runs = append(runs, run{text: buf.String(), bold: bold})
	}
	return runs
}

func docxParagraphText(para *docx.Paragraph) string {
	return strings.TrimSpace(joinRuns(docxRuns(para)))
}
