// Package outline infers a document's title and heading hierarchy from page
// geometry and typography alone.
//
// The pipeline is: sample span sizes to find the body size, pick the title
// from the first page, flag headings on the remaining pages by size and
// weight, then drop repeated text and derive levels from section numbers.
// Every function is pure over its input, so documents can be processed
// concurrently without coordination.
package outline

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dgallion1/docoutline/internal/layout"
)

// Result is the inferred structure of one document.
type Result struct {
	Title   string  `json:"title"`
	Outline []Entry `json:"outline"`
}

// Infer runs the full pipeline with the default thresholds.
func Infer(doc *layout.Document) Result {
	return InferWithConfig(doc, DefaultConfig())
}

// InferWithConfig runs the full pipeline. A nil or empty document yields an
// empty title and outline.
func InferWithConfig(doc *layout.Document, cfg Config) Result {
	res := Result{Outline: []Entry{}}
	if doc == nil || len(doc.Pages) == 0 {
		return res
	}
	cfg = cfg.withDefaults()

	res.Title = Title(doc.Pages[0], cfg)
	body := BodySize(doc, cfg)
	res.Outline = Refine(DetectHeadings(doc, body, cfg), cfg)
	return res
}

// WriteJSON writes r as indented UTF-8 JSON. The outline is always an array.
func (r Result) WriteJSON(w io.Writer) error {
	if r.Outline == nil {
		r.Outline = []Entry{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode outline: %w", err)
	}
	return nil
}
