package renderer

import (
	"testing"

	"github.com/dshills/radiant/internal/engine/buffer"
	"github.com/dshills/radiant/internal/syntax"
	"github.com/dshills/radiant/internal/syntax/token"
)

func newTestBridge() *Bridge {
	service := syntax.NewService()
	service.SetDiagnostics(func(string, ...any) {})
	return NewBridge(service)
}

func TestRegisterLookupUnregister(t *testing.T) {
	br := newTestBridge()
	buf := buffer.NewFromString("fn main() {}", buffer.WithPath("t.rs"))
	state := br.Service().CreateState("t.rs")

	br.RegisterBuffer(buf, state)
	if got, ok := br.BufferState(buf); !ok || got != state {
		t.Fatalf("BufferState = (%v, %v)", got, ok)
	}

	br.UnregisterBuffer(buf)
	if _, ok := br.BufferState(buf); ok {
		t.Error("state still registered after UnregisterBuffer")
	}
}

func TestLineTokens(t *testing.T) {
	br := newTestBridge()
	buf := buffer.NewFromString("fn main() {}", buffer.WithPath("t.rs"))

	// Unregistered buffer: no spans, plain text path.
	if _, ok := br.LineTokens(buf, "fn main() {}", 0); ok {
		t.Error("LineTokens succeeded for unregistered buffer")
	}

	br.RegisterBuffer(buf, br.Service().CreateState("t.rs"))
	spans, ok := br.LineTokens(buf, "fn main() {}", 0)
	if !ok {
		t.Fatal("LineTokens failed for registered buffer")
	}
	if token.Concat(spans) != "fn main() {}" {
		t.Errorf("spans do not reconstruct the line: %v", spans)
	}
}

func TestLineTokensDisabledState(t *testing.T) {
	br := newTestBridge()
	buf := buffer.NewFromString("plain text", buffer.WithPath("notes.txt"))
	br.RegisterBuffer(buf, br.Service().CreateState("notes.txt"))

	if _, ok := br.LineTokens(buf, "plain text", 0); ok {
		t.Error("LineTokens succeeded for disabled state")
	}
}

func TestLineTokensWithViewport(t *testing.T) {
	br := newTestBridge()
	buf := buffer.NewFromString("fn main() {}", buffer.WithPath("t.rs"))
	state := br.Service().CreateState("t.rs")
	state.SetLookahead(5)
	br.RegisterBuffer(buf, state)

	spans, ok := br.LineTokensWithViewport(buf, "fn main() {}", 0, 0, 1)
	if !ok || len(spans) == 0 {
		t.Fatalf("LineTokensWithViewport = (%v, %v)", spans, ok)
	}
	if _, set := state.Viewport(); !set {
		t.Error("viewport not recorded during highlighted read")
	}
}

func TestNotifyTextChangeShiftsCache(t *testing.T) {
	br := newTestBridge()
	buf := buffer.NewFromString("a\nb\nc", buffer.WithPath("t.rs"))
	state := br.Service().CreateState("t.rs")
	br.RegisterBuffer(buf, state)

	// Prime the cache at line 2.
	br.LineTokens(buf, "c", 2)
	if _, ok := state.CachedTokens(2); !ok {
		t.Fatal("line 2 not cached")
	}

	br.NotifyTextChange(buf, syntax.InsertChange(0, 1))
	if _, ok := state.CachedTokens(3); !ok {
		t.Error("cached entry did not shift to line 3")
	}
}

func TestNotifyEditOperation(t *testing.T) {
	br := newTestBridge()
	buf := buffer.NewFromString("a\nb\nc\nd", buffer.WithPath("t.rs"))
	state := br.Service().CreateState("t.rs")
	br.RegisterBuffer(buf, state)

	br.LineTokens(buf, "d", 3)

	// Newline typed on line 1: cursor moved from row 1 to row 2.
	br.NotifyEditOperation(buf,
		buffer.Position{Line: 1, Col: 3},
		buffer.Position{Line: 2, Col: 0},
		false)

	if _, ok := state.CachedTokens(4); !ok {
		t.Error("insertion did not shift cached line 3 to 4")
	}

	// Deleting that line again: cursor moved from row 2 back to row 1.
	br.NotifyEditOperation(buf,
		buffer.Position{Line: 2, Col: 0},
		buffer.Position{Line: 1, Col: 3},
		true)

	if _, ok := state.CachedTokens(3); !ok {
		t.Error("deletion did not shift cached line back to 3")
	}
}

func TestBackgroundWorkLifecycle(t *testing.T) {
	br := newTestBridge()
	buf := buffer.NewFromString("fn main() {}\nlet x = 1;", buffer.WithPath("t.rs"))
	state := br.Service().CreateState("t.rs")
	state.SetLookahead(5)
	state.SetBatchSize(10)
	br.RegisterBuffer(buf, state)

	if br.HasBackgroundWork(buf) {
		t.Error("background work before any viewport")
	}

	br.UpdateViewportTracking(buf, 0, 2)
	if !br.HasBackgroundWork(buf) {
		t.Fatal("no background work after viewport update")
	}

	count, ok := br.ProcessBackgroundHighlighting(buf, buf.Line)
	if !ok {
		t.Fatal("ProcessBackgroundHighlighting found no binding")
	}
	// The lookahead reaches past the end of the 2-line buffer; missing
	// lines are skipped without being cached.
	if count != 0 {
		t.Errorf("cached %d lines past end of buffer, want 0", count)
	}

	if _, ok := br.ProcessBackgroundHighlighting(buffer.New(), buf.Line); ok {
		t.Error("background processing succeeded for unregistered buffer")
	}
}

func TestClearAll(t *testing.T) {
	br := newTestBridge()
	buf := buffer.NewFromString("x", buffer.WithPath("t.rs"))
	br.RegisterBuffer(buf, br.Service().CreateState("t.rs"))

	br.ClearAll()
	if _, ok := br.BufferState(buf); ok {
		t.Error("binding survived ClearAll")
	}
}
