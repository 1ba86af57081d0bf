package outline

import (
	"strings"

	"github.com/dgallion1/docoutline/internal/layout"
)

// Title picks the title from the first page: the largest text in the upper
// half of the page whose center is away from the side margins. Every
// qualifying block at that size contributes, in page order.
func Title(page layout.Page, cfg Config) string {
	cfg = cfg.withDefaults()

	midY := page.Height / 2
	left := page.Width * cfg.TitleMargin
	right := page.Width * (1 - cfg.TitleMargin)

	var candidates []AggregatedBlock
	for _, block := range page.Blocks {
		agg, ok := Aggregate(block)
		if !ok {
			continue
		}
		if block.BBox.Y1 > midY {
			continue
		}
		if cx := block.BBox.CenterX(); cx <= left || cx >= right {
			continue
		}
		candidates = append(candidates, agg)
	}
	if len(candidates) == 0 {
		return ""
	}

	maxSize := candidates[0].Size
	for _, c := range candidates[1:] {
		maxSize = max(maxSize, c.Size)
	}
	var parts []string
	for _, c := range candidates {
		if c.Size == maxSize {
			parts = append(parts, c.Text)
		}
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}
