package outline

// Config holds the thresholds used by the inference heuristics.
type Config struct {
	SamplePages     int     // Leading pages sampled for the body size.
	DefaultBodySize int     // Body size when no span is sampled.
	SizeFactor      float64 // Size multiple of body size that marks a heading on its own.
	BoldSizeFactor  float64 // Lower multiple used when the block is bold.
	BoldRatio       float64 // Fraction of bold spans above which a block is bold.
	MinTextLen      int     // Heading text must be longer than this (runes).
	MaxTextLen      int     // Heading text must be shorter than this (runes).
	RepeatLimit     int     // Texts seen this many times are dropped as boilerplate.
	MaxLevel        int     // Deepest heading level emitted.
	TitleMargin     float64 // Title center must lie in (margin, 1-margin) of page width.
}

// DefaultConfig returns the standard thresholds.
func DefaultConfig() Config {
	return Config{
		SamplePages:     10,
		DefaultBodySize: 12,
		SizeFactor:      1.15,
		BoldSizeFactor:  1.05,
		BoldRatio:       0.5,
		MinTextLen:      3,
		MaxTextLen:      250,
		RepeatLimit:     3,
		MaxLevel:        6,
		TitleMargin:     0.1,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.SamplePages <= 0 {
		c.SamplePages = d.SamplePages
	}
	if c.DefaultBodySize <= 0 {
		c.DefaultBodySize = d.DefaultBodySize
	}
	if c.SizeFactor <= 0 {
		c.SizeFactor = d.SizeFactor
	}
	if c.BoldSizeFactor <= 0 {
		c.BoldSizeFactor = d.BoldSizeFactor
	}
	if c.BoldRatio <= 0 {
		c.BoldRatio = d.BoldRatio
	}
	if c.MinTextLen <= 0 {
		c.MinTextLen = d.MinTextLen
	}
	if c.MaxTextLen <= 0 {
		c.MaxTextLen = d.MaxTextLen
	}
	if c.RepeatLimit <= 0 {
		c.RepeatLimit = d.RepeatLimit
	}
	if c.MaxLevel <= 0 || c.MaxLevel > 6 {
		c.MaxLevel = d.MaxLevel
	}
	if c.TitleMargin <= 0 || c.TitleMargin >= 0.5 {
		c.TitleMargin = d.TitleMargin
	}
	return c
}
