package perf

import "time"

// RunBaselineTest runs the synthetic baseline over a set of file names,
// simulating loads and highlights across the size and length buckets.
// Real service integration is exercised separately by the baseline
// harness binary.
func RunBaselineTest(testFiles []string) *Measurement {
	m := NewMeasurement()
	m.Start()

	lineLengths := []int{50, 120, 300, 800}

	for i := range testFiles {
		var fileSize int64
		switch i % 4 {
		case 0:
			fileSize = 5_000
		case 1:
			fileSize = 50_000
		case 2:
			fileSize = 500_000
		default:
			fileSize = 2_000_000
		}

		loadTime := time.Duration(fileSize/10_000) * time.Millisecond
		m.RecordFileLoad(fileSize, loadTime)

		for _, length := range lineLengths {
			highlightTime := time.Duration(length) * 10 * time.Microsecond
			m.RecordLineHighlight(length, highlightTime, length/10)
		}

		m.MeasureHighlightingMemory()
	}

	m.RecordCachePerformance(75, 25)
	return m
}
