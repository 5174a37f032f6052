// Package prefetch tracks the visible viewport and maintains the queue of
// nearby lines to tokenize during idle time.
package prefetch

import "sort"

const (
	// DefaultBatchSize is the default number of lines per background batch.
	DefaultBatchSize = 10

	// DefaultLookahead is the default number of lines considered above and
	// below the viewport.
	DefaultLookahead = 50

	// scrollHysteresis is the minimum viewport movement, in lines, that
	// triggers a queue rebuild. Smaller movements are ignored to prevent
	// thrashing during per-keystroke scrolling.
	scrollHysteresis = 5

	maxBatchSize = 50
	maxLookahead = 200
)

// Viewport is the half-open range of visible lines.
type Viewport struct {
	// Start is the first visible line.
	Start int

	// End is the last visible line, exclusive.
	End int
}

// Scheduler owns the viewport, the background queue, and the in-progress
// set. A line appears at most once across the queue and the in-progress
// set.
type Scheduler struct {
	viewport   *Viewport
	queue      []int
	inProgress map[int]struct{}
	batchSize  int
	lookahead  int
}

// NewScheduler creates a scheduler with default batch size and lookahead.
func NewScheduler() *Scheduler {
	return &Scheduler{
		inProgress: make(map[int]struct{}),
		batchSize:  DefaultBatchSize,
		lookahead:  DefaultLookahead,
	}
}

// SetBatchSize sets the per-batch line count, clamped to [1, 50].
func (s *Scheduler) SetBatchSize(n int) {
	if n < 1 {
		n = 1
	}
	if n > maxBatchSize {
		n = maxBatchSize
	}
	s.batchSize = n
}

// BatchSize returns the configured batch size.
func (s *Scheduler) BatchSize() int {
	return s.batchSize
}

// SetLookahead sets the prefetch distance, clamped to [0, 200].
func (s *Scheduler) SetLookahead(n int) {
	if n < 0 {
		n = 0
	}
	if n > maxLookahead {
		n = maxLookahead
	}
	s.lookahead = n
}

// Lookahead returns the configured prefetch distance.
func (s *Scheduler) Lookahead() int {
	return s.lookahead
}

// Viewport returns the tracked viewport, if one is set.
func (s *Scheduler) Viewport() (Viewport, bool) {
	if s.viewport == nil {
		return Viewport{}, false
	}
	return *s.viewport, true
}

// UpdateViewport records a new visible range and rebuilds the queue.
//
// If a viewport is already tracked and both endpoints moved by fewer than
// five lines, the call is a no-op. The cached predicate reports whether a
// line already has a cache entry; such lines are not queued.
func (s *Scheduler) UpdateViewport(start, end int, cached func(int) bool) {
	if s.viewport != nil &&
		abs(start-s.viewport.Start) < scrollHysteresis &&
		abs(end-s.viewport.End) < scrollHysteresis {
		return
	}
	s.viewport = &Viewport{Start: start, End: end}
	s.Rebuild(cached)
}

// Rebuild recomputes the queue from the current viewport.
//
// Candidates are the lookahead ranges immediately above and below the
// viewport. A candidate is admitted only if it has no cache entry and is
// not in the in-progress set. Admitted lines are ordered by ascending
// distance from the viewport edge.
func (s *Scheduler) Rebuild(cached func(int) bool) {
	s.queue = s.queue[:0]
	if s.viewport == nil || s.lookahead == 0 {
		return
	}

	type candidate struct {
		line     int
		distance int
	}
	var candidates []candidate

	admit := func(line, distance int) {
		if line < 0 {
			return
		}
		if cached != nil && cached(line) {
			return
		}
		if _, busy := s.inProgress[line]; busy {
			return
		}
		candidates = append(candidates, candidate{line: line, distance: distance})
	}

	vp := *s.viewport
	for line := vp.Start - s.lookahead; line < vp.Start; line++ {
		admit(line, vp.Start-line)
	}
	for line := vp.End; line < vp.End+s.lookahead; line++ {
		admit(line, line-vp.End+1)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].distance < candidates[j].distance
	})

	for _, c := range candidates {
		s.queue = append(s.queue, c.line)
	}
}

// TakeBatch pops at most min(k, batch size) lines from the front of the
// queue, atomically moving them into the in-progress set.
func (s *Scheduler) TakeBatch(k int) []int {
	if k > s.batchSize {
		k = s.batchSize
	}
	if k > len(s.queue) {
		k = len(s.queue)
	}
	if k <= 0 {
		return nil
	}
	batch := make([]int, k)
	copy(batch, s.queue[:k])
	s.queue = append(s.queue[:0], s.queue[k:]...)
	for _, line := range batch {
		s.inProgress[line] = struct{}{}
	}
	return batch
}

// Complete removes a line from the in-progress set. Lines are not
// re-queued automatically; a later viewport update re-enumerates them.
func (s *Scheduler) Complete(line int) {
	delete(s.inProgress, line)
}

// DropInProgressRange removes in-progress entries in [start, start+n).
// Used when the corresponding lines were deleted from the buffer.
func (s *Scheduler) DropInProgressRange(start, n int) {
	for line := start; line < start+n; line++ {
		delete(s.inProgress, line)
	}
}

// HasWork reports whether queued lines remain.
func (s *Scheduler) HasWork() bool {
	return len(s.queue) > 0
}

// QueueLen returns the number of queued lines.
func (s *Scheduler) QueueLen() int {
	return len(s.queue)
}

// Queued returns a copy of the queue in order. Intended for tests and
// diagnostics.
func (s *Scheduler) Queued() []int {
	out := make([]int, len(s.queue))
	copy(out, s.queue)
	return out
}

// InProgress reports whether a line is currently being tokenized.
func (s *Scheduler) InProgress(line int) bool {
	_, ok := s.inProgress[line]
	return ok
}

// InProgressCount returns the size of the in-progress set.
func (s *Scheduler) InProgressCount() int {
	return len(s.inProgress)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
