package outline

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Level is a heading depth from H1 to H6.
type Level int

const (
	H1 Level = iota + 1
	H2
	H3
	H4
	H5
	H6
)

func (l Level) String() string {
	return fmt.Sprintf("H%d", int(l))
}

func (l Level) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

func (l *Level) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	var n int
	if _, err := fmt.Sscanf(s, "H%d", &n); err != nil || n < int(H1) || n > int(H6) {
		return fmt.Errorf("invalid heading level %q", s)
	}
	*l = Level(n)
	return nil
}

// Entry is one heading of the final outline.
type Entry struct {
	Level Level  `json:"level"`
	Text  string `json:"text"`
	Page  int    `json:"page"`
}

// Refine drops repeated boilerplate, assigns levels from numbering prefixes and
// orders the result by page. Entries on the same page keep detection order.
func Refine(candidates []HeadingCandidate, cfg Config) []Entry {
	cfg = cfg.withDefaults()

	counts := make(map[string]int, len(candidates))
	for _, c := range candidates {
		counts[c.Text]++
	}

	entries := make([]Entry, 0, len(candidates))
	for _, c := range candidates {
		if counts[c.Text] >= cfg.RepeatLimit {
			continue
		}
		text := strings.TrimSpace(c.Text)
		if text == "" {
			continue
		}
		entries = append(entries, Entry{
			Level: LevelFor(c.Text, cfg.MaxLevel),
			Text:  text,
			Page:  c.Page,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Page < entries[j].Page
	})
	return entries
}
