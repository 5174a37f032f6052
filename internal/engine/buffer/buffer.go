// Package buffer provides the line-oriented text buffer the highlighting
// engine reads from. It supplies line content by number. The buffer itself
// sends no change notifications; the editor reports each modification to
// the engine through the render bridge.
package buffer

import (
	"errors"
	"strings"
	"sync"
)

// Errors returned by buffer operations.
var (
	ErrLineOutOfRange = errors.New("buffer: line out of range")
	ErrRangeInvalid   = errors.New("buffer: invalid range")
)

// Position is a cursor location in the buffer.
type Position struct {
	// Line is the zero-based row.
	Line int

	// Col is the zero-based byte column.
	Col int
}

// Buffer is a line-oriented text store. All methods are safe for
// concurrent use, though the editor drives it from a single goroutine.
type Buffer struct {
	mu    sync.RWMutex
	lines []string
	path  string
}

// Option configures a new buffer.
type Option func(*Buffer)

// WithPath sets the file path associated with the buffer.
func WithPath(path string) Option {
	return func(b *Buffer) { b.path = path }
}

// New creates an empty single-line buffer.
func New(opts ...Option) *Buffer {
	b := &Buffer{lines: []string{""}}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NewFromString creates a buffer from existing content. The content is
// split on '\n'; a trailing newline yields a final empty line.
func NewFromString(content string, opts ...Option) *Buffer {
	b := New(opts...)
	b.lines = strings.Split(content, "\n")
	return b
}

// Path returns the file path associated with the buffer.
func (b *Buffer) Path() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.path
}

// SetPath updates the associated file path.
func (b *Buffer) SetPath(path string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.path = path
}

// LineCount returns the number of lines.
func (b *Buffer) LineCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.lines)
}

// Line returns the content of a line.
func (b *Buffer) Line(n int) (string, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if n < 0 || n >= len(b.lines) {
		return "", false
	}
	return b.lines[n], true
}

// SetLine replaces the content of a single line.
func (b *Buffer) SetLine(n int, content string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if n < 0 || n >= len(b.lines) {
		return ErrLineOutOfRange
	}
	b.lines[n] = content
	return nil
}

// InsertLines inserts the given lines before position at. Inserting at
// LineCount appends.
func (b *Buffer) InsertLines(at int, lines []string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if at < 0 || at > len(b.lines) {
		return ErrLineOutOfRange
	}
	if len(lines) == 0 {
		return nil
	}
	updated := make([]string, 0, len(b.lines)+len(lines))
	updated = append(updated, b.lines[:at]...)
	updated = append(updated, lines...)
	updated = append(updated, b.lines[at:]...)
	b.lines = updated
	return nil
}

// RemoveLines deletes n lines starting at position at. A buffer always
// keeps at least one (possibly empty) line.
func (b *Buffer) RemoveLines(at, n int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if at < 0 || at >= len(b.lines) {
		return ErrLineOutOfRange
	}
	if n < 0 || at+n > len(b.lines) {
		return ErrRangeInvalid
	}
	if n == 0 {
		return nil
	}
	b.lines = append(b.lines[:at], b.lines[at+n:]...)
	if len(b.lines) == 0 {
		b.lines = []string{""}
	}
	return nil
}

// ReplaceLines substitutes the inclusive range [start, end] with the
// given lines and returns the net line delta.
func (b *Buffer) ReplaceLines(start, end int, lines []string) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if start < 0 || end >= len(b.lines) {
		return 0, ErrLineOutOfRange
	}
	if end < start {
		return 0, ErrRangeInvalid
	}
	removed := end - start + 1
	delta := len(lines) - removed
	updated := make([]string, 0, len(b.lines)+delta)
	updated = append(updated, b.lines[:start]...)
	updated = append(updated, lines...)
	updated = append(updated, b.lines[end+1:]...)
	if len(updated) == 0 {
		updated = []string{""}
	}
	b.lines = updated
	return delta, nil
}

// Contents returns the full buffer joined with '\n'.
func (b *Buffer) Contents() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return strings.Join(b.lines, "\n")
}

// Lines returns a copy of all lines.
func (b *Buffer) Lines() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]string, len(b.lines))
	copy(out, b.lines)
	return out
}
