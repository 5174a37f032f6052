// Package renderer bridges buffers, the highlighting engine, and the
// terminal screen. The Bridge maps each open buffer to its highlighting
// state so the draw path can ask for spans and the edit path can deliver
// change notifications.
package renderer

import (
	"sync"

	"github.com/dshills/radiant/internal/engine/buffer"
	"github.com/dshills/radiant/internal/syntax"
	"github.com/dshills/radiant/internal/syntax/token"
)

// Bridge is the process-local registry binding buffers to highlighting
// states. Registration and lookup are guarded by a mutex; the states
// themselves follow the engine's main-thread discipline.
type Bridge struct {
	mu      sync.Mutex
	service *syntax.Service
	states  map[*buffer.Buffer]*syntax.State
}

// NewBridge creates a bridge over the given highlighting service.
func NewBridge(service *syntax.Service) *Bridge {
	if service == nil {
		service = syntax.Default()
	}
	return &Bridge{
		service: service,
		states:  make(map[*buffer.Buffer]*syntax.State),
	}
}

// Service returns the underlying highlighting service.
func (br *Bridge) Service() *syntax.Service {
	return br.service
}

// RegisterBuffer associates a highlighting state with a buffer.
func (br *Bridge) RegisterBuffer(buf *buffer.Buffer, state *syntax.State) {
	br.mu.Lock()
	defer br.mu.Unlock()
	br.states[buf] = state
}

// UnregisterBuffer removes a buffer's highlighting association.
func (br *Bridge) UnregisterBuffer(buf *buffer.Buffer) {
	br.mu.Lock()
	defer br.mu.Unlock()
	delete(br.states, buf)
}

// BufferState returns the highlighting state bound to a buffer.
func (br *Bridge) BufferState(buf *buffer.Buffer) (*syntax.State, bool) {
	br.mu.Lock()
	defer br.mu.Unlock()
	state, ok := br.states[buf]
	return state, ok
}

// ClearAll removes every buffer association. Called on shutdown.
func (br *Bridge) ClearAll() {
	br.mu.Lock()
	defer br.mu.Unlock()
	br.states = make(map[*buffer.Buffer]*syntax.State)
}

// LineTokens returns the highlighted spans for a line of a registered
// buffer. The second result is false when the buffer has no binding or
// highlighting is disabled for it; callers then use the plain text render
// path.
func (br *Bridge) LineTokens(buf *buffer.Buffer, lineContent string, lineNumber int) ([]token.Info, bool) {
	state, ok := br.BufferState(buf)
	if !ok || !state.Enabled() {
		return nil, false
	}
	return br.service.HighlightLine(state, lineContent, lineNumber), true
}

// LineTokensWithViewport is LineTokens plus a viewport update, so reads
// during a redraw keep the prefetch queue aligned with the screen.
func (br *Bridge) LineTokensWithViewport(buf *buffer.Buffer, lineContent string, lineNumber, viewportStart, viewportEnd int) ([]token.Info, bool) {
	state, ok := br.BufferState(buf)
	if !ok || !state.Enabled() {
		return nil, false
	}
	br.service.UpdateViewport(state, viewportStart, viewportEnd)
	return br.service.HighlightLine(state, lineContent, lineNumber), true
}

// NotifyTextChange delivers a buffer change notification to the
// highlighting state, shifting caches and seeding dirty lines.
func (br *Bridge) NotifyTextChange(buf *buffer.Buffer, n syntax.ChangeNotification) {
	if state, ok := br.BufferState(buf); ok {
		state.ApplyChange(n)
	}
}

// NotifyEditOperation translates a cursor movement around an edit into a
// change notification. Deletions that removed lines report a delete at
// the final cursor row; insertions that added lines report an insert at
// the starting row.
func (br *Bridge) NotifyEditOperation(buf *buffer.Buffer, before, after buffer.Position, wasDeletion bool) {
	delta := syntax.CalculateLineDelta(before.Line, after.Line)

	var n syntax.ChangeNotification
	if wasDeletion {
		if delta < 0 {
			n = syntax.DeleteChange(after.Line, -delta)
		} else {
			n = syntax.SingleLineChange(before.Line, syntax.ChangeDelete)
		}
	} else {
		if delta > 0 {
			n = syntax.InsertChange(before.Line, delta)
		} else {
			n = syntax.SingleLineChange(after.Line, syntax.ChangeInsert)
		}
	}
	br.NotifyTextChange(buf, n)
}

// NotifyUndoRedo marks a wider range dirty for multi-line undo and redo
// steps.
func (br *Bridge) NotifyUndoRedo(buf *buffer.Buffer, startLine, endLine, lineDelta int) {
	br.NotifyTextChange(buf, syntax.NewChange(startLine, endLine, lineDelta, syntax.ChangeMultiple))
}

// NotifyReplaceOperation reports a find-and-replace edit.
func (br *Bridge) NotifyReplaceOperation(buf *buffer.Buffer, startLine, endLine, lineDelta int) {
	br.NotifyTextChange(buf, syntax.ReplaceChange(startLine, endLine, lineDelta))
}

// ProcessBackgroundHighlighting runs one background batch for a buffer
// during idle time. Returns the number of lines newly cached and whether
// the buffer had a highlighting binding.
func (br *Bridge) ProcessBackgroundHighlighting(buf *buffer.Buffer, getLine func(int) (string, bool)) (int, bool) {
	state, ok := br.BufferState(buf)
	if !ok {
		return 0, false
	}
	if !state.Enabled() {
		return 0, true
	}
	return br.service.HighlightBackgroundBatch(state, getLine), true
}

// HasBackgroundWork reports whether a buffer has queued prefetch lines.
func (br *Bridge) HasBackgroundWork(buf *buffer.Buffer) bool {
	state, ok := br.BufferState(buf)
	return ok && state.HasBackgroundWork()
}

// UpdateViewportTracking records the visible range for a buffer without
// highlighting anything. Useful while scrolling.
func (br *Bridge) UpdateViewportTracking(buf *buffer.Buffer, viewportStart, viewportEnd int) {
	if state, ok := br.BufferState(buf); ok && state.Enabled() {
		br.service.UpdateViewport(state, viewportStart, viewportEnd)
	}
}
