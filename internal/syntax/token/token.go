// Package token defines the span type produced by the highlighting engine.
package token

// Info is a contiguous substring of a line with an optional kind label.
//
// Offsets are byte offsets within the line. Across a line's span list the
// offsets are monotonically non-decreasing, and concatenating the Text
// fields in order reproduces the line byte-for-byte.
type Info struct {
	// Text is the content of the span.
	Text string

	// Kind is the token kind used for color mapping ("keyword", "string",
	// ...). Empty means plain text.
	Kind string

	// Start is the byte offset where the span begins in its line.
	Start int

	// End is the byte offset where the span ends (exclusive).
	End int
}

// Plain creates a span with no kind label.
func Plain(text string, start, end int) Info {
	return Info{Text: text, Start: start, End: end}
}

// Highlighted creates a span with the given kind label.
func Highlighted(text, kind string, start, end int) Info {
	return Info{Text: text, Kind: kind, Start: start, End: end}
}

// IsHighlighted reports whether the span carries a kind label.
func (t Info) IsHighlighted() bool {
	return t.Kind != ""
}

// Len returns the span length in bytes.
func (t Info) Len() int {
	return len(t.Text)
}

// IsEmpty reports whether the span has no text.
func (t Info) IsEmpty() bool {
	return t.Text == ""
}

// Concat joins the texts of the spans in order. Used to check the
// reconstruction invariant.
func Concat(spans []Info) string {
	n := 0
	for _, s := range spans {
		n += len(s.Text)
	}
	buf := make([]byte, 0, n)
	for _, s := range spans {
		buf = append(buf, s.Text...)
	}
	return string(buf)
}

// Clone returns a copy of the span list that shares no backing array with
// the input. Cached span lists are cloned before being handed to callers.
func Clone(spans []Info) []Info {
	if spans == nil {
		return nil
	}
	out := make([]Info, len(spans))
	copy(out, spans)
	return out
}
