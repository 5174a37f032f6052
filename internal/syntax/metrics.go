package syntax

import "time"

// Metrics tracks highlighting performance for a document or for the
// service as a whole. Counters are monotonic until Reset.
type Metrics struct {
	// TotalTime is the cumulative time spent tokenizing.
	TotalTime time.Duration

	// LinesHighlighted is the number of successful line tokenizations.
	LinesHighlighted int

	// TokensGenerated is the total number of spans produced.
	TokensGenerated int

	// AvgTimePerLine is the running average tokenize time.
	AvgTimePerLine time.Duration

	// MaxLineTime is the slowest observed line.
	MaxLineTime time.Duration

	// CacheHits counts lines served from the cache.
	CacheHits int

	// CacheMisses counts lines that required tokenization.
	CacheMisses int
}

// RecordLineHighlight folds one successful tokenize call into the metrics.
func (m *Metrics) RecordLineHighlight(duration time.Duration, tokenCount int) {
	m.TotalTime += duration
	m.LinesHighlighted++
	m.TokensGenerated += tokenCount
	m.AvgTimePerLine = m.TotalTime / time.Duration(m.LinesHighlighted)
	if duration > m.MaxLineTime {
		m.MaxLineTime = duration
	}
}

// RecordCacheHit counts a cache hit.
func (m *Metrics) RecordCacheHit() {
	m.CacheHits++
}

// RecordCacheMiss counts a cache miss.
func (m *Metrics) RecordCacheMiss() {
	m.CacheMisses++
}

// CacheHitRatio returns hits / (hits + misses), or zero when no lookups
// have happened.
func (m *Metrics) CacheHitRatio() float64 {
	total := m.CacheHits + m.CacheMisses
	if total == 0 {
		return 0
	}
	return float64(m.CacheHits) / float64(total)
}

// Reset zeroes all counters.
func (m *Metrics) Reset() {
	*m = Metrics{}
}
