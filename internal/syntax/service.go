package syntax

import (
	"fmt"
	"hash/fnv"
	"os"
	"sync"
	"time"

	"github.com/dshills/radiant/internal/syntax/language"
	"github.com/dshills/radiant/internal/syntax/token"
	"github.com/dshills/radiant/internal/syntax/tokenizer"
)

const (
	// DefaultLineTimeout is the soft per-line tokenize deadline.
	DefaultLineTimeout = 50 * time.Millisecond

	// DefaultMaxLineLength is the longest line, in bytes, the tokenizer
	// will be asked to process.
	DefaultMaxLineLength = 10_000
)

// Service is the highlighting façade. It owns language detection, the
// per-language tokenizer adapters, global configuration, and the
// service-wide metrics aggregate.
//
// One Service is shared by every open document. Access is main-thread
// only; the mutex exists to keep accidental cross-goroutine use from
// corrupting the adapter map, not to make the engine concurrent.
type Service struct {
	mu sync.Mutex

	detector *language.Detector
	adapters map[language.Language]*tokenizer.Adapter

	enabled       bool
	lineTimeout   time.Duration
	maxLineLength int
	global        Metrics

	// diagf receives timeout and init-failure diagnostics.
	diagf func(format string, args ...any)
}

// NewService creates a highlighting service with default configuration.
func NewService() *Service {
	return &Service{
		detector:      language.NewDetector(),
		adapters:      make(map[language.Language]*tokenizer.Adapter),
		enabled:       true,
		lineTimeout:   DefaultLineTimeout,
		maxLineLength: DefaultMaxLineLength,
		diagf: func(format string, args ...any) {
			fmt.Fprintf(os.Stderr, "radiant: "+format+"\n", args...)
		},
	}
}

// SetDiagnostics redirects timeout and failure diagnostics, typically
// into the application logger.
func (s *Service) SetDiagnostics(f func(format string, args ...any)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if f != nil {
		s.diagf = f
	}
}

// CreateState detects the language for a file path and returns a fresh
// document state. Languages outside Tier 1 and Tier 2 yield a disabled
// state, as does a globally disabled service.
func (s *Service) CreateState(path string) *State {
	s.mu.Lock()
	defer s.mu.Unlock()

	lang := s.detector.Detect(path)
	if s.enabled && (lang.IsTier1() || lang.IsTier2()) {
		return NewState(lang)
	}
	return DisabledState(lang)
}

// HighlightLine returns the colored spans for one line of a document.
//
// The cache is consulted first, keyed by line number and content hash.
// On a miss the language's tokenizer runs under the soft deadline; spans
// from an over-budget call are discarded and the line falls back to a
// single plain span without poisoning the cache. Lines longer than the
// configured maximum bypass the tokenizer entirely.
func (s *Service) HighlightLine(st *State, line string, lineNumber int) []token.Info {
	s.mu.Lock()
	defer s.mu.Unlock()

	if st == nil || !st.enabled || !s.enabled {
		return plainSpans(line)
	}
	if len(line) > s.maxLineLength {
		return plainSpans(line)
	}

	hash := lineHash(line)
	if st.HasCachedTokens(lineNumber, hash) {
		st.metrics.RecordCacheHit()
		s.global.RecordCacheHit()
		spans, _ := st.CachedTokens(lineNumber)
		return token.Clone(spans)
	}
	st.metrics.RecordCacheMiss()
	s.global.RecordCacheMiss()

	adapter := s.adapterFor(st.language)

	start := time.Now()
	spans, err := adapter.HighlightLine(line, lineNumber)
	duration := time.Since(start)

	if err != nil {
		s.diagf("tokenizer init failed for %s: %v", st.language, err)
		return plainSpans(line)
	}
	if duration > s.lineTimeout {
		s.diagf("highlight timeout for line %d (%dms)", lineNumber, duration.Milliseconds())
		return plainSpans(line)
	}

	st.metrics.RecordLineHighlight(duration, len(spans))
	s.global.RecordLineHighlight(duration, len(spans))
	st.CacheTokens(lineNumber, hash, spans)
	return token.Clone(spans)
}

// HighlightBackgroundBatch pops one batch from the document's prefetch
// queue and tokenizes each line under a tightened deadline of half the
// line timeout. getLine supplies line content by number; lines that are
// missing, too long, already cached, or over budget are skipped. Every
// popped line leaves the in-progress set before the call returns. The
// return value is the number of lines newly cached.
func (s *Service) HighlightBackgroundBatch(st *State, getLine func(int) (string, bool)) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if st == nil || !st.enabled || !s.enabled {
		return 0
	}

	batch := st.sched.TakeBatch(st.sched.BatchSize())
	if len(batch) == 0 {
		return 0
	}

	deadline := s.lineTimeout / 2
	count := 0
	for _, lineNumber := range batch {
		count += s.backgroundLine(st, lineNumber, deadline, getLine)
		st.sched.Complete(lineNumber)
	}
	return count
}

// backgroundLine tokenizes one prefetched line. Returns 1 when the line
// was newly cached.
func (s *Service) backgroundLine(st *State, lineNumber int, deadline time.Duration, getLine func(int) (string, bool)) int {
	line, ok := getLine(lineNumber)
	if !ok || len(line) > s.maxLineLength {
		return 0
	}
	hash := lineHash(line)
	if st.HasCachedTokens(lineNumber, hash) {
		return 0
	}

	adapter := s.adapterFor(st.language)
	start := time.Now()
	spans, err := adapter.HighlightLine(line, lineNumber)
	duration := time.Since(start)
	if err != nil || duration > deadline {
		return 0
	}

	st.metrics.RecordLineHighlight(duration, len(spans))
	s.global.RecordLineHighlight(duration, len(spans))
	st.CacheTokens(lineNumber, hash, spans)
	return 1
}

// UpdateViewport records the visible range for a document and rebuilds
// its prefetch queue, subject to scroll hysteresis.
func (s *Service) UpdateViewport(st *State, start, end int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st == nil {
		return
	}
	st.sched.UpdateViewport(start, end, st.cache.Contains)
}

// SetLanguageOverride forces a language for an exact file path.
func (s *Service) SetLanguageOverride(path string, lang language.Language) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.detector.SetOverride(path, lang)
}

// RemoveLanguageOverride removes a path override, returning the language
// it held.
func (s *Service) RemoveLanguageOverride(path string) (language.Language, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.detector.RemoveOverride(path)
}

// ClearLanguageOverrides drops all path overrides.
func (s *Service) ClearLanguageOverrides() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.detector.ClearOverrides()
}

// SetEnabled toggles highlighting globally.
func (s *Service) SetEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enabled = enabled
}

// IsEnabled reports whether highlighting is globally on.
func (s *Service) IsEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabled
}

// GlobalMetrics returns a copy of the service-wide metrics aggregate.
func (s *Service) GlobalMetrics() Metrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.global
}

// ResetMetrics zeroes the service-wide aggregate.
func (s *Service) ResetMetrics() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.global.Reset()
}

// SupportedLanguages returns every language reachable through detection.
func (s *Service) SupportedLanguages() []language.Language {
	return language.SupportedLanguages()
}

// SetLineTimeout sets the soft per-line deadline. A zero deadline makes
// every tokenized line fall back to plain text.
func (s *Service) SetLineTimeout(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lineTimeout = d
}

// LineTimeout returns the current per-line deadline.
func (s *Service) LineTimeout() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lineTimeout
}

// SetMaxLineLength sets the longest line, in bytes, handed to the
// tokenizer.
func (s *Service) SetMaxLineLength(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.maxLineLength = n
}

// MaxLineLength returns the current line length budget.
func (s *Service) MaxLineLength() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maxLineLength
}

// CachedAdapterCount returns the number of lazily built tokenizer
// adapters.
func (s *Service) CachedAdapterCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.adapters)
}

// adapterFor returns the language's adapter, creating it on first use.
// Callers must hold s.mu.
func (s *Service) adapterFor(lang language.Language) *tokenizer.Adapter {
	adapter, ok := s.adapters[lang]
	if !ok {
		adapter = tokenizer.New(lang)
		s.adapters[lang] = adapter
	}
	return adapter
}

// plainSpans returns a single unhighlighted span covering the line, or an
// empty list for an empty line.
func plainSpans(line string) []token.Info {
	if line == "" {
		return []token.Info{}
	}
	return []token.Info{token.Plain(line, 0, len(line))}
}

// lineHash computes the 64-bit content hash used for cache validity.
func lineHash(line string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(line))
	return h.Sum64()
}

// defaultService is the process-wide fallback instance for callers that
// do not thread a Service through explicitly.
var (
	defaultService     *Service
	defaultServiceOnce sync.Once
)

// Default returns the shared service instance, creating it on first use.
func Default() *Service {
	defaultServiceOnce.Do(func() {
		if defaultService == nil {
			defaultService = NewService()
		}
	})
	return defaultService
}
