package outline

import (
	"unicode"
	"unicode/utf8"

	"github.com/dgallion1/docoutline/internal/layout"
)

// HeadingCandidate is a block that looks like a heading before refinement.
type HeadingCandidate struct {
	Text     string
	Page     int // 0-indexed physical page.
	FontSize int
}

// DetectHeadings scans every page after the first and returns the blocks whose
// typography stands out from bodySize, in document order.
func DetectHeadings(doc *layout.Document, bodySize int, cfg Config) []HeadingCandidate {
	cfg = cfg.withDefaults()
	if doc == nil {
		return nil
	}

	sizeLimit := float64(bodySize) * cfg.SizeFactor
	boldLimit := float64(bodySize) * cfg.BoldSizeFactor

	var out []HeadingCandidate
	for pageNum := 1; pageNum < len(doc.Pages); pageNum++ {
		for _, block := range doc.Pages[pageNum].Blocks {
			agg, ok := Aggregate(block)
			if !ok || agg.Text == "" {
				continue
			}
			if IsPageCounter(agg.Text) {
				continue
			}

			size := float64(agg.Size)
			bold := agg.BoldRatio > cfg.BoldRatio
			significant := size > sizeLimit || (bold && size > boldLimit)

			n := utf8.RuneCountInString(agg.Text)
			plausible := n > cfg.MinTextLen && n < cfg.MaxTextLen

			if significant && plausible {
				out = append(out, HeadingCandidate{
					Text:     agg.Text,
					Page:     pageNum,
					FontSize: agg.Size,
				})
			}
		}
	}
	return out
}

// IsPageCounter reports whether text is a bare "N / M" page counter, allowing
// whitespace around each part.
func IsPageCounter(text string) bool {
	s := skipSpace(text)
	s, ok := skipDigits(s)
	if !ok {
		return false
	}
	s = skipSpace(s)
	if s == "" || s[0] != '/' {
		return false
	}
	s = skipSpace(s[1:])
	s, ok = skipDigits(s)
	if !ok {
		return false
	}
	return skipSpace(s) == ""
}

func skipSpace(s string) string {
	for s != "" {
		r, size := utf8.DecodeRuneInString(s)
		if !isSpace(r) {
			break
		}
		s = s[size:]
	}
	return s
}

// isSpace is unicode.IsSpace plus the information separators U+001C..U+001F,
// which Unicode-aware \s classes also match.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

// skipDigits consumes one or more decimal digits.
func skipDigits(s string) (string, bool) {
	i := 0
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		if !unicode.IsDigit(r) {
			break
		}
		i += size
	}
	return s[i:], i > 0
}
