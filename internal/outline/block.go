package outline

import (
	"math"
	"strings"

	"github.com/dgallion1/docoutline/internal/layout"
)

// AggregatedBlock is one text block collapsed into a single record.
type AggregatedBlock struct {
	Text      string
	Size      int     // Most frequent rounded span size.
	BoldRatio float64 // Fraction of spans with the bold bit set.
}

// Bold reports whether more than half of the block's spans are bold.
func (b AggregatedBlock) Bold() bool {
	return b.BoldRatio > 0.5
}

// Aggregate merges a block's lines and spans. It returns false for non-text
// blocks and for blocks without any line or span.
func Aggregate(block layout.Block) (AggregatedBlock, bool) {
	if !block.IsText() || len(block.Lines) == 0 {
		return AggregatedBlock{}, false
	}

	var hist SizeHistogram
	lines := make([]string, 0, len(block.Lines))
	bold := 0
	for _, line := range block.Lines {
		var sb strings.Builder
		for _, span := range line.Spans {
			sb.WriteString(span.Text)
			hist.Add(RoundSize(span.Size))
			if span.Bold() {
				bold++
			}
		}
		lines = append(lines, sb.String())
	}

	size, ok := hist.Mode()
	if !ok {
		return AggregatedBlock{}, false
	}
	return AggregatedBlock{
		Text:      strings.TrimSpace(strings.Join(lines, " ")),
		Size:      size,
		BoldRatio: float64(bold) / float64(hist.Total()),
	}, true
}

// RoundSize rounds a font size to the nearest integer, halves to even.
func RoundSize(size float64) int {
	return int(math.RoundToEven(size))
}

// SizeHistogram counts font sizes and remembers the order in which sizes were
// first seen, so the mode is stable under ties. The zero value is ready to use.
type SizeHistogram struct {
	order  []int
	counts map[int]int
	total  int
}

// Add counts one occurrence of size.
func (h *SizeHistogram) Add(size int) {
	if h.counts == nil {
		h.counts = make(map[int]int)
	}
	if _, seen := h.counts[size]; !seen {
		h.order = append(h.order, size)
	}
	h.counts[size]++
	h.total++
}

// Total returns the number of sizes counted.
func (h *SizeHistogram) Total() int {
	return h.total
}

// Mode returns the most frequent size; ties go to the size seen first.
func (h *SizeHistogram) Mode() (int, bool) {
	best, bestCount := 0, 0
	for _, size := range h.order {
		if c := h.counts[size]; c > bestCount {
			best, bestCount = size, c
		}
	}
	return best, bestCount > 0
}
