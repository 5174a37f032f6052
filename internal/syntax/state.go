package syntax

import (
	"github.com/dshills/radiant/internal/syntax/cache"
	"github.com/dshills/radiant/internal/syntax/dirty"
	"github.com/dshills/radiant/internal/syntax/language"
	"github.com/dshills/radiant/internal/syntax/prefetch"
	"github.com/dshills/radiant/internal/syntax/token"
)

// State holds the highlighting state of a single document: language,
// token cache, dirty tracking, viewport, and the background prefetch
// queue.
//
// A State is shared between the renderer and the change notifier through
// a pointer handle. Access is main-thread only; see the package comment.
type State struct {
	language language.Language
	config   language.Config
	enabled  bool
	metrics  Metrics

	cache *cache.Cache
	dirty *dirty.Set
	sched *prefetch.Scheduler
}

// NewState creates an enabled, empty state for the given language.
func NewState(lang language.Language) *State {
	return &State{
		language: lang,
		config:   language.NewConfig(lang),
		enabled:  true,
		cache:    cache.New(),
		dirty:    dirty.NewSet(),
		sched:    prefetch.NewScheduler(),
	}
}

// DisabledState creates a state with highlighting turned off. All lines
// render as plain text.
func DisabledState(lang language.Language) *State {
	st := NewState(lang)
	st.config = language.DisabledConfig(lang)
	st.enabled = false
	return st
}

// Language returns the document's detected language.
func (st *State) Language() language.Language {
	return st.language
}

// Config returns the language configuration.
func (st *State) Config() language.Config {
	return st.config
}

// Enabled reports whether highlighting is on for this document.
func (st *State) Enabled() bool {
	return st.enabled
}

// Metrics returns the document's metrics.
func (st *State) Metrics() *Metrics {
	return &st.metrics
}

// CacheSize returns the number of cached lines.
func (st *State) CacheSize() int {
	return st.cache.Len()
}

// HasCachedTokens reports whether the line is cached with this hash.
func (st *State) HasCachedTokens(line int, hash uint64) bool {
	return st.cache.Has(line, hash)
}

// CachedTokens returns the cached spans for a line.
func (st *State) CachedTokens(line int) ([]token.Info, bool) {
	return st.cache.Get(line)
}

// CacheTokens stores spans for a line and clears its dirty flag, keeping
// the dirty and cached sets disjoint.
func (st *State) CacheTokens(line int, hash uint64, spans []token.Info) {
	st.cache.Put(line, hash, spans)
	st.dirty.Clear(line)
}

// InvalidateLine drops the cache entry for a line.
func (st *State) InvalidateLine(line int) {
	st.cache.Invalidate(line)
}

// MarkLineDirty marks a line for re-tokenization and invalidates its
// cache entry.
func (st *State) MarkLineDirty(line int) {
	st.dirty.Mark(line)
	st.cache.Invalidate(line)
}

// MarkLinesDirty marks [start, end] inclusive and invalidates the range.
func (st *State) MarkLinesDirty(start, end int) {
	st.dirty.MarkRange(start, end)
	st.cache.InvalidateRange(start, end)
}

// MarkDocumentDirty flags the whole document and clears the cache.
func (st *State) MarkDocumentDirty() {
	st.dirty.MarkDocument()
	st.cache.Clear()
}

// IsLineDirty reports whether the line needs re-tokenization.
func (st *State) IsLineDirty(line int) bool {
	return st.dirty.IsDirty(line)
}

// ClearLineDirty clears the dirty flag for one line.
func (st *State) ClearLineDirty(line int) {
	st.dirty.Clear(line)
}

// ClearAllDirty clears every dirty flag including the document flag.
func (st *State) ClearAllDirty() {
	st.dirty.ClearAll()
}

// HandleInsert rewrites cache, dirty set, and validity hashes for an
// insertion of n lines at startLine, then seeds the new range dirty and
// rebuilds the background queue. Inserting zero lines is a no-op.
func (st *State) HandleInsert(startLine, n int) {
	if n <= 0 {
		return
	}
	st.cache.ShiftUp(startLine, n)
	st.dirty.ShiftUp(startLine, n)
	st.MarkLinesDirty(startLine, startLine+n)
	st.rebuildQueue()
}

// HandleDelete rewrites cache, dirty set, and validity hashes for a
// deletion of n lines at startLine: cached entries inside the deleted
// range are dropped, later entries shift down, startLine is marked dirty,
// and in-progress background work for deleted lines is abandoned.
// Deleting zero lines is a no-op.
func (st *State) HandleDelete(startLine, n int) {
	if n <= 0 {
		return
	}
	st.cache.ShiftDown(startLine, n)
	st.dirty.ShiftDown(startLine, n)
	st.MarkLineDirty(startLine)
	st.sched.DropInProgressRange(startLine, n)
	st.rebuildQueue()
}

// ApplyChange routes a buffer change notification through the edit-delta
// rewriter. Replace and Multiple decompose into a dirty range plus an
// insert or delete at the end line, matching how the buffer reports
// widened edits.
func (st *State) ApplyChange(n ChangeNotification) {
	switch n.Type {
	case ChangeInsert:
		if n.LineDelta > 0 {
			st.HandleInsert(n.StartLine, n.LineDelta)
		} else {
			st.HandleInsert(n.StartLine, 0)
		}
	case ChangeDelete:
		if n.LineDelta < 0 {
			st.HandleDelete(n.StartLine, -n.LineDelta)
		} else {
			st.HandleDelete(n.StartLine, 0)
		}
	case ChangeReplace, ChangeMultiple:
		st.MarkLinesDirty(n.StartLine, n.EndLine)
		if n.LineDelta > 0 {
			st.HandleInsert(n.EndLine, n.LineDelta)
		} else if n.LineDelta < 0 {
			st.HandleDelete(n.EndLine, -n.LineDelta)
		}
	}
}

// HasBackgroundWork reports whether queued prefetch lines remain.
func (st *State) HasBackgroundWork() bool {
	return st.sched.HasWork()
}

// SetBatchSize sets the background batch size, clamped to [1, 50].
func (st *State) SetBatchSize(n int) {
	st.sched.SetBatchSize(n)
}

// SetLookahead sets the prefetch lookahead, clamped to [0, 200].
func (st *State) SetLookahead(n int) {
	st.sched.SetLookahead(n)
}

// Viewport returns the tracked viewport, if set.
func (st *State) Viewport() (prefetch.Viewport, bool) {
	return st.sched.Viewport()
}

// rebuildQueue re-enumerates prefetch candidates when a viewport is set.
func (st *State) rebuildQueue() {
	if _, ok := st.sched.Viewport(); ok {
		st.sched.Rebuild(st.cache.Contains)
	}
}
