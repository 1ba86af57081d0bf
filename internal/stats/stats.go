// Package stats keeps rolling-window figures about processed documents.
package stats

import (
	"sort"
	"sync"
	"time"
)

type sample struct {
	at       time.Time
	format   string
	parseMs  int64
	inferMs  int64
	headings int
	failed   bool
}

// Latency aggregates one stage's durations in milliseconds.
type Latency struct {
	MinMs int64   `json:"min_ms"`
	MaxMs int64   `json:"max_ms"`
	AvgMs float64 `json:"avg_ms"`
	P50Ms float64 `json:"p50_ms"`
	P95Ms float64 `json:"p95_ms"`
	P99Ms float64 `json:"p99_ms"`
}

// Snapshot is a point-in-time view of the window.
type Snapshot struct {
	Documents int            `json:"documents"`
	Failed    int            `json:"failed"`
	Headings  int            `json:"headings"`
	ByFormat  map[string]int `json:"by_format"`
	Parse     Latency        `json:"parse"`
	Infer     Latency        `json:"infer"`
	Window    string         `json:"window"`
}

// Tracker records per-document parse and inference timings within a rolling
// window. It is safe for concurrent use.
type Tracker struct {
	mu      sync.Mutex
	samples []sample
	maxAge  time.Duration
}

func NewTracker(maxAge time.Duration) *Tracker {
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	return &Tracker{
		samples: make([]sample, 0, 256),
		maxAge:  maxAge,
	}
}

// RecordDocument adds a successfully outlined document.
func (t *Tracker) RecordDocument(format string, parse, infer time.Duration, headings int) {
	t.add(sample{
		format:   format,
		parseMs:  max(parse.Milliseconds(), 0),
		inferMs:  max(infer.Milliseconds(), 0),
		headings: headings,
	})
}

// RecordFailure counts a document that could not be parsed.
func (t *Tracker) RecordFailure(format string) {
	t.add(sample{format: format, failed: true})
}

func (t *Tracker) add(s sample) {
	now := time.Now()
	s.at = now

	t.mu.Lock()
	defer t.mu.Unlock()

	t.pruneLocked(now)
	t.samples = append(t.samples, s)
}

func (t *Tracker) Snapshot() Snapshot {
	now := time.Now()

	t.mu.Lock()
	defer t.mu.Unlock()

	t.pruneLocked(now)
	snap := Snapshot{ByFormat: map[string]int{}, Window: t.maxAge.String()}

	var parse, infer []int64
	for _, s := range t.samples {
		snap.ByFormat[s.format]++
		if s.failed {
			snap.Failed++
			continue
		}
		snap.Documents++
		snap.Headings += s.headings
		parse = append(parse, s.parseMs)
		infer = append(infer, s.inferMs)
	}
	snap.Parse = summarize(parse)
	snap.Infer = summarize(infer)
	return snap
}

func (t *Tracker) pruneLocked(now time.Time) {
	cutoff := now.Add(-t.maxAge)
	writeIdx := 0
	for _, s := range t.samples {
		if !s.at.Before(cutoff) {
			t.samples[writeIdx] = s
			writeIdx++
		}
	}
	t.samples = t.samples[:writeIdx]
}

func summarize(values []int64) Latency {
	if len(values) == 0 {
		return Latency{}
	}
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })

	var sum int64
	for _, v := range values {
		sum += v
	}
	return Latency{
		MinMs: values[0],
		MaxMs: values[len(values)-1],
		AvgMs: float64(sum) / float64(len(values)),
		P50Ms: percentile(values, 50),
		P95Ms: percentile(values, 95),
		P99Ms: percentile(values, 99),
	}
}

// percentile interpolates linearly between the two closest ranks.
func percentile(sorted []int64, pct float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if pct <= 0 {
		return float64(sorted[0])
	}
	if pct >= 100 {
		return float64(sorted[len(sorted)-1])
	}

	index := (float64(len(sorted)-1) * pct) / 100.0
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return float64(sorted[lower])
	}
	weight := index - float64(lower)
	lo := float64(sorted[lower])
	hi := float64(sorted[upper])
	return lo + ((hi - lo) * weight)
}
