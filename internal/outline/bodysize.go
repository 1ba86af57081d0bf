package outline

import "github.com/dgallion1/docoutline/internal/layout"

// SampleSizes counts the rounded size of every span in the text blocks of the
// first cfg.SamplePages pages.
func SampleSizes(doc *layout.Document, cfg Config) SizeHistogram {
	cfg = cfg.withDefaults()

	var hist SizeHistogram
	if doc == nil {
		return hist
	}
	limit := min(cfg.SamplePages, len(doc.Pages))
	for _, page := range doc.Pages[:limit] {
		for _, block := range page.Blocks {
			if !block.IsText() {
				continue
			}
			for _, line := range block.Lines {
				for _, span := range line.Spans {
					hist.Add(RoundSize(span.Size))
				}
			}
		}
	}
	return hist
}

// BodySize estimates the size of normal paragraph text. It falls back to
// cfg.DefaultBodySize when nothing usable was sampled.
func BodySize(doc *layout.Document, cfg Config) int {
	cfg = cfg.withDefaults()
	hist := SampleSizes(doc, cfg)
	size, ok := hist.Mode()
	if !ok || size <= 0 {
		return cfg.DefaultBodySize
	}
	return size
}
