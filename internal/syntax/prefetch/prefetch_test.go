package prefetch

import "testing"

func noneCached(int) bool { return false }

func TestDefaults(t *testing.T) {
	s := NewScheduler()
	if s.BatchSize() != DefaultBatchSize {
		t.Errorf("BatchSize() = %d, want %d", s.BatchSize(), DefaultBatchSize)
	}
	if s.Lookahead() != DefaultLookahead {
		t.Errorf("Lookahead() = %d, want %d", s.Lookahead(), DefaultLookahead)
	}
	if _, ok := s.Viewport(); ok {
		t.Error("fresh scheduler has a viewport")
	}
}

func TestClamping(t *testing.T) {
	s := NewScheduler()

	s.SetBatchSize(0)
	if s.BatchSize() != 1 {
		t.Errorf("batch size clamped to %d, want 1", s.BatchSize())
	}
	s.SetBatchSize(1000)
	if s.BatchSize() != 50 {
		t.Errorf("batch size clamped to %d, want 50", s.BatchSize())
	}

	s.SetLookahead(-1)
	if s.Lookahead() != 0 {
		t.Errorf("lookahead clamped to %d, want 0", s.Lookahead())
	}
	s.SetLookahead(1000)
	if s.Lookahead() != 200 {
		t.Errorf("lookahead clamped to %d, want 200", s.Lookahead())
	}
}

func TestUpdateViewportBuildsQueue(t *testing.T) {
	s := NewScheduler()
	s.SetLookahead(10)
	s.UpdateViewport(100, 120, noneCached)

	queued := s.Queued()
	if len(queued) != 20 {
		t.Fatalf("queue length = %d, want 20", len(queued))
	}

	// Every queued line is in the lookahead bands.
	for _, line := range queued {
		above := line >= 90 && line < 100
		below := line >= 120 && line < 130
		if !above && !below {
			t.Errorf("line %d outside lookahead bands", line)
		}
	}

	// Distances are non-decreasing.
	last := 0
	for _, line := range queued {
		d := distance(line, 100, 120)
		if d < last {
			t.Fatalf("queue not ordered by distance: %v", queued)
		}
		last = d
	}
}

func distance(line, start, end int) int {
	if line < start {
		return start - line
	}
	return line - end + 1
}

func TestViewportNearTopOfFile(t *testing.T) {
	s := NewScheduler()
	s.SetLookahead(10)
	s.UpdateViewport(3, 10, noneCached)

	for _, line := range s.Queued() {
		if line < 0 {
			t.Errorf("negative line %d queued", line)
		}
	}
}

func TestScrollHysteresis(t *testing.T) {
	s := NewScheduler()
	s.SetLookahead(10)
	s.UpdateViewport(100, 120, noneCached)
	before := s.Queued()

	// Both endpoints move fewer than 5 lines: no-op.
	s.UpdateViewport(104, 124, noneCached)
	if vp, _ := s.Viewport(); vp.Start != 100 || vp.End != 120 {
		t.Errorf("viewport moved under hysteresis: %+v", vp)
	}
	after := s.Queued()
	if len(before) != len(after) {
		t.Fatalf("queue changed under hysteresis: %d -> %d", len(before), len(after))
	}
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("queue changed under hysteresis at %d", i)
		}
	}

	// A 5-line move rebuilds.
	s.UpdateViewport(105, 125, noneCached)
	if vp, _ := s.Viewport(); vp.Start != 105 || vp.End != 125 {
		t.Errorf("viewport did not move: %+v", vp)
	}
}

func TestUpdateViewportIdempotent(t *testing.T) {
	s := NewScheduler()
	s.SetLookahead(10)
	s.UpdateViewport(50, 70, noneCached)
	before := s.Queued()

	s.UpdateViewport(50, 70, noneCached)
	after := s.Queued()

	if len(before) != len(after) {
		t.Fatalf("repeated update changed queue length: %d -> %d", len(before), len(after))
	}
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("repeated update changed queue at %d", i)
		}
	}
}

func TestRebuildFiltersCachedAndInProgress(t *testing.T) {
	s := NewScheduler()
	s.SetLookahead(5)
	s.SetBatchSize(3)
	s.UpdateViewport(10, 20, noneCached)

	// Move three lines into the in-progress set.
	batch := s.TakeBatch(3)
	if len(batch) != 3 {
		t.Fatalf("TakeBatch = %v, want 3 lines", batch)
	}
	for _, line := range batch {
		if !s.InProgress(line) {
			t.Errorf("line %d not in progress after TakeBatch", line)
		}
	}

	// Force a rebuild with some lines cached; neither cached nor
	// in-progress lines may be queued.
	cached := map[int]bool{9: true, 20: true}
	s.UpdateViewport(11, 21, nil) // under hysteresis: no-op
	s.Rebuild(func(line int) bool { return cached[line] })

	for _, line := range s.Queued() {
		if cached[line] {
			t.Errorf("cached line %d queued", line)
		}
		if s.InProgress(line) {
			t.Errorf("in-progress line %d queued", line)
		}
	}
}

func TestTakeBatchClamp(t *testing.T) {
	s := NewScheduler()
	s.SetLookahead(10)
	s.SetBatchSize(4)
	s.UpdateViewport(100, 120, noneCached)

	batch := s.TakeBatch(100)
	if len(batch) != 4 {
		t.Errorf("TakeBatch(100) returned %d lines, want batch size 4", len(batch))
	}

	if s.TakeBatch(0) != nil {
		t.Error("TakeBatch(0) should return nothing")
	}
}

func TestComplete(t *testing.T) {
	s := NewScheduler()
	s.SetLookahead(5)
	s.UpdateViewport(10, 20, noneCached)

	batch := s.TakeBatch(2)
	for _, line := range batch {
		s.Complete(line)
		if s.InProgress(line) {
			t.Errorf("line %d in progress after Complete", line)
		}
	}
	if s.InProgressCount() != 0 {
		t.Errorf("InProgressCount() = %d, want 0", s.InProgressCount())
	}
}

func TestDropInProgressRange(t *testing.T) {
	s := NewScheduler()
	s.SetLookahead(5)
	s.SetBatchSize(10)
	s.UpdateViewport(10, 20, noneCached)

	batch := s.TakeBatch(10)
	if len(batch) == 0 {
		t.Fatal("no batch taken")
	}
	s.DropInProgressRange(0, 100)
	if s.InProgressCount() != 0 {
		t.Errorf("InProgressCount() = %d after covering drop", s.InProgressCount())
	}
}

func TestZeroLookahead(t *testing.T) {
	s := NewScheduler()
	s.SetLookahead(0)
	s.UpdateViewport(10, 20, noneCached)
	if s.HasWork() {
		t.Error("zero lookahead queued work")
	}
}
