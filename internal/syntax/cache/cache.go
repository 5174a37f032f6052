// Package cache provides the per-document line-token cache.
//
// The cache is a purely keyed map from line number to a span list plus a
// 64-bit content hash. It never observes line content; hash production is
// the caller's responsibility. An entry is valid only when the stored hash
// matches the hash supplied by the caller.
package cache

import "github.com/dshills/radiant/internal/syntax/token"

// Cache maps line numbers to cached spans and their content hashes.
type Cache struct {
	tokens   map[int][]token.Info
	validity map[int]uint64
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{
		tokens:   make(map[int][]token.Info),
		validity: make(map[int]uint64),
	}
}

// Has reports whether the line is cached with a matching content hash.
func (c *Cache) Has(line int, hash uint64) bool {
	stored, ok := c.validity[line]
	if !ok || stored != hash {
		return false
	}
	_, ok = c.tokens[line]
	return ok
}

// Contains reports whether the line has any cache entry, regardless of hash.
func (c *Cache) Contains(line int) bool {
	_, ok := c.tokens[line]
	return ok
}

// Get returns the cached spans for a line.
func (c *Cache) Get(line int) ([]token.Info, bool) {
	spans, ok := c.tokens[line]
	return spans, ok
}

// Put stores spans for a line, overwriting any prior entry.
func (c *Cache) Put(line int, hash uint64, spans []token.Info) {
	c.tokens[line] = spans
	c.validity[line] = hash
}

// Invalidate removes the entry for a line.
func (c *Cache) Invalidate(line int) {
	delete(c.tokens, line)
	delete(c.validity, line)
}

// InvalidateRange removes entries for lines in [start, end] inclusive.
func (c *Cache) InvalidateRange(start, end int) {
	for line := start; line <= end; line++ {
		c.Invalidate(line)
	}
}

// Clear removes all entries.
func (c *Cache) Clear() {
	c.tokens = make(map[int][]token.Info)
	c.validity = make(map[int]uint64)
}

// Len returns the number of cached lines.
func (c *Cache) Len() int {
	return len(c.tokens)
}

// ShiftUp rebuilds the cache moving entries at or after startLine up by n.
// Entries below startLine keep their keys. Used when lines are inserted.
func (c *Cache) ShiftUp(startLine, n int) {
	if n <= 0 {
		return
	}
	tokens := make(map[int][]token.Info, len(c.tokens))
	validity := make(map[int]uint64, len(c.validity))
	for line, spans := range c.tokens {
		if line >= startLine {
			tokens[line+n] = spans
		} else {
			tokens[line] = spans
		}
	}
	for line, hash := range c.validity {
		if line >= startLine {
			validity[line+n] = hash
		} else {
			validity[line] = hash
		}
	}
	c.tokens = tokens
	c.validity = validity
}

// ShiftDown rebuilds the cache for a deletion of n lines at startLine:
// entries in [startLine, startLine+n) are dropped, entries at or after
// startLine+n move down by n, entries below startLine keep their keys.
func (c *Cache) ShiftDown(startLine, n int) {
	if n <= 0 {
		return
	}
	tokens := make(map[int][]token.Info, len(c.tokens))
	validity := make(map[int]uint64, len(c.validity))
	for line, spans := range c.tokens {
		switch {
		case line >= startLine+n:
			tokens[line-n] = spans
		case line < startLine:
			tokens[line] = spans
		}
	}
	for line, hash := range c.validity {
		switch {
		case line >= startLine+n:
			validity[line-n] = hash
		case line < startLine:
			validity[line] = hash
		}
	}
	c.tokens = tokens
	c.validity = validity
}
