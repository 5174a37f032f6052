// Package perf provides performance baseline measurement for the
// highlighting engine: bucketed timings for file loads and line
// highlights, memory sampling, report generation, and requirement checks
// used by the baseline harness.
package perf

import (
	"fmt"
	"runtime"
	"strings"
	"time"
)

// SizeCategory buckets files by size for load-time measurement.
type SizeCategory uint8

const (
	// SizeSmall is files under 10KB.
	SizeSmall SizeCategory = iota
	// SizeMedium is files between 10KB and 100KB.
	SizeMedium
	// SizeLarge is files between 100KB and 1MB.
	SizeLarge
	// SizeExtraLarge is files over 1MB.
	SizeExtraLarge
)

// SizeCategoryFor returns the bucket for a file size in bytes.
func SizeCategoryFor(bytes int64) SizeCategory {
	switch {
	case bytes <= 10_240:
		return SizeSmall
	case bytes <= 102_400:
		return SizeMedium
	case bytes <= 1_048_576:
		return SizeLarge
	default:
		return SizeExtraLarge
	}
}

// String returns the human-readable bucket name.
func (c SizeCategory) String() string {
	switch c {
	case SizeSmall:
		return "Small (< 10KB)"
	case SizeMedium:
		return "Medium (10KB - 100KB)"
	case SizeLarge:
		return "Large (100KB - 1MB)"
	default:
		return "Extra Large (> 1MB)"
	}
}

// LengthCategory buckets lines by length for highlight-time measurement.
type LengthCategory uint8

const (
	// LengthShort is lines under 80 bytes.
	LengthShort LengthCategory = iota
	// LengthNormal is lines of 80-199 bytes.
	LengthNormal
	// LengthLong is lines of 200-499 bytes.
	LengthLong
	// LengthExtraLong is lines of 500 bytes or more.
	LengthExtraLong
)

// LengthCategoryFor returns the bucket for a line length in bytes.
func LengthCategoryFor(length int) LengthCategory {
	switch {
	case length < 80:
		return LengthShort
	case length < 200:
		return LengthNormal
	case length < 500:
		return LengthLong
	default:
		return LengthExtraLong
	}
}

// String returns the human-readable bucket name.
func (c LengthCategory) String() string {
	switch c {
	case LengthShort:
		return "Short (< 80 chars)"
	case LengthNormal:
		return "Normal (80-200 chars)"
	case LengthLong:
		return "Long (200-500 chars)"
	default:
		return "Extra Long (> 500 chars)"
	}
}

// Baseline aggregates the measurements of one session.
type Baseline struct {
	// LoadTimesBySize holds raw file load durations per size bucket.
	LoadTimesBySize map[SizeCategory][]time.Duration

	// MaxLoadTime is the slowest observed file load.
	MaxLoadTime time.Duration

	// FilesMeasured counts recorded file loads.
	FilesMeasured int

	// TotalLoadTime is cumulative file load time.
	TotalLoadTime time.Duration

	// HighlightTimesByLength holds raw highlight durations per bucket.
	HighlightTimesByLength map[LengthCategory][]time.Duration

	// TokenRate is the running average token generation rate per second.
	TokenRate float64

	// CacheHitRatio is the most recently recorded hit ratio.
	CacheHitRatio float64

	// Operations counts recorded highlight operations.
	Operations int

	// BaselineMemoryKB is heap usage at session start.
	BaselineMemoryKB uint64

	// HighlightingMemoryKB is heap usage after highlighting work.
	HighlightingMemoryKB uint64

	// OverheadKB is the difference attributable to highlighting.
	OverheadKB uint64

	// PeakMemoryKB is the highest sampled heap usage.
	PeakMemoryKB uint64
}

// Measurement is a performance measurement session.
type Measurement struct {
	baseline Baseline
	started  bool
}

// NewMeasurement creates an empty measurement session.
func NewMeasurement() *Measurement {
	return &Measurement{
		baseline: Baseline{
			LoadTimesBySize:        make(map[SizeCategory][]time.Duration),
			HighlightTimesByLength: make(map[LengthCategory][]time.Duration),
		},
	}
}

// Start begins a session and samples baseline memory.
func (m *Measurement) Start() {
	m.started = true
	m.baseline.BaselineMemoryKB = heapKB()
}

// RecordFileLoad records one file load by size and duration.
func (m *Measurement) RecordFileLoad(sizeBytes int64, d time.Duration) {
	cat := SizeCategoryFor(sizeBytes)
	m.baseline.LoadTimesBySize[cat] = append(m.baseline.LoadTimesBySize[cat], d)
	m.baseline.FilesMeasured++
	m.baseline.TotalLoadTime += d
	if d > m.baseline.MaxLoadTime {
		m.baseline.MaxLoadTime = d
	}
}

// RecordLineHighlight records one highlight operation by line length,
// duration, and produced token count.
func (m *Measurement) RecordLineHighlight(lineLength int, d time.Duration, tokenCount int) {
	cat := LengthCategoryFor(lineLength)
	m.baseline.HighlightTimesByLength[cat] = append(m.baseline.HighlightTimesByLength[cat], d)
	m.baseline.Operations++

	if secs := d.Seconds(); secs > 0 {
		rate := float64(tokenCount) / secs
		n := float64(m.baseline.Operations)
		m.baseline.TokenRate = (m.baseline.TokenRate*(n-1) + rate) / n
	}
}

// RecordCachePerformance records cache hit/miss totals.
func (m *Measurement) RecordCachePerformance(hits, misses int) {
	if total := hits + misses; total > 0 {
		m.baseline.CacheHitRatio = float64(hits) / float64(total)
	}
}

// MeasureHighlightingMemory samples heap usage after highlighting work.
func (m *Measurement) MeasureHighlightingMemory() {
	current := heapKB()
	m.baseline.HighlightingMemoryKB = current
	if base := m.baseline.BaselineMemoryKB; base > 0 && current > base {
		m.baseline.OverheadKB = current - base
	}
	if current > m.baseline.PeakMemoryKB {
		m.baseline.PeakMemoryKB = current
	}
}

// Baseline returns the accumulated measurements.
func (m *Measurement) Baseline() *Baseline {
	return &m.baseline
}

// avgLoadTime returns the average load duration for a bucket.
func (m *Measurement) avgLoadTime(cat SizeCategory) (time.Duration, bool) {
	return avg(m.baseline.LoadTimesBySize[cat])
}

// avgHighlightTime returns the average highlight duration for a bucket.
func (m *Measurement) avgHighlightTime(cat LengthCategory) (time.Duration, bool) {
	return avg(m.baseline.HighlightTimesByLength[cat])
}

func avg(times []time.Duration) (time.Duration, bool) {
	if len(times) == 0 {
		return 0, false
	}
	var total time.Duration
	for _, d := range times {
		total += d
	}
	return total / time.Duration(len(times)), true
}

func maxOf(times []time.Duration) time.Duration {
	var m time.Duration
	for _, d := range times {
		if d > m {
			m = d
		}
	}
	return m
}

// GenerateReport renders the session as a plain-text report.
func (m *Measurement) GenerateReport() string {
	var b strings.Builder

	b.WriteString("=== Performance Baseline Report ===\n\n")

	b.WriteString("File Loading Performance:\n")
	for cat := SizeSmall; cat <= SizeExtraLarge; cat++ {
		times := m.baseline.LoadTimesBySize[cat]
		if len(times) == 0 {
			continue
		}
		average, _ := avg(times)
		fmt.Fprintf(&b, "  %s: %d files, avg %dms, max %dms\n",
			cat, len(times), average.Milliseconds(), maxOf(times).Milliseconds())
	}

	b.WriteString("\nMemory Usage:\n")
	fmt.Fprintf(&b, "  Baseline: %dKB\n", m.baseline.BaselineMemoryKB)
	fmt.Fprintf(&b, "  With Highlighting: %dKB\n", m.baseline.HighlightingMemoryKB)
	fmt.Fprintf(&b, "  Overhead: %dKB\n", m.baseline.OverheadKB)
	fmt.Fprintf(&b, "  Peak: %dKB\n", m.baseline.PeakMemoryKB)

	b.WriteString("\nHighlighting Performance:\n")
	for cat := LengthShort; cat <= LengthExtraLong; cat++ {
		times := m.baseline.HighlightTimesByLength[cat]
		if len(times) == 0 {
			continue
		}
		average, _ := avg(times)
		fmt.Fprintf(&b, "  %s: %d operations, avg %dms\n", cat, len(times), average.Milliseconds())
	}
	fmt.Fprintf(&b, "  Token Generation Rate: %.0f tokens/sec\n", m.baseline.TokenRate)
	fmt.Fprintf(&b, "  Cache Hit Ratio: %.1f%%\n", m.baseline.CacheHitRatio*100)

	b.WriteString("\n=== End Report ===\n")
	return b.String()
}

// MeetsRequirements checks the session against the baseline targets:
// small/medium file loads under 100ms, short/normal line highlights under
// 50ms, memory overhead under 50MB, and a cache hit ratio of at least 70%.
func (m *Measurement) MeetsRequirements() (bool, []string) {
	var issues []string

	for _, cat := range []SizeCategory{SizeSmall, SizeMedium} {
		if average, ok := m.avgLoadTime(cat); ok && average.Milliseconds() > 100 {
			issues = append(issues, fmt.Sprintf(
				"File loading for %s exceeds 100ms requirement: %dms", cat, average.Milliseconds()))
		}
	}
	for _, cat := range []LengthCategory{LengthShort, LengthNormal} {
		if average, ok := m.avgHighlightTime(cat); ok && average.Milliseconds() > 50 {
			issues = append(issues, fmt.Sprintf(
				"Line highlighting for %s exceeds 50ms requirement: %dms", cat, average.Milliseconds()))
		}
	}
	if m.baseline.OverheadKB > 50_000 {
		issues = append(issues, fmt.Sprintf(
			"Memory overhead exceeds 50MB requirement: %dKB", m.baseline.OverheadKB))
	}
	if m.baseline.CacheHitRatio < 0.7 {
		issues = append(issues, fmt.Sprintf(
			"Cache hit ratio below 70%% requirement: %.1f%%", m.baseline.CacheHitRatio*100))
	}

	return len(issues) == 0, issues
}

// heapKB samples current heap allocation in kilobytes.
func heapKB() uint64 {
	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)
	return stats.HeapAlloc / 1024
}
