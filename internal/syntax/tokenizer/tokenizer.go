// Package tokenizer adapts the chroma regex highlighter to the engine's
// span model. One adapter exists per language; construction is cheap and
// the backend lexer is not built until the first tokenize call.
package tokenizer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"

	"github.com/dshills/radiant/internal/syntax/language"
	"github.com/dshills/radiant/internal/syntax/token"
)

// ErrInitFailed indicates the backend rejected lexer construction.
var ErrInitFailed = errors.New("tokenizer: backend initialization failed")

// Adapter wraps a chroma lexer for a single language.
//
// Adapters mutate internal scratch state per call and are not safe for
// concurrent use.
type Adapter struct {
	language    language.Language
	lexer       chroma.Lexer
	initialized bool
}

// New creates an adapter for the given language. The backend is not
// initialized until the first highlight call.
func New(lang language.Language) *Adapter {
	return &Adapter{language: lang}
}

// Language returns the language this adapter tokenizes.
func (a *Adapter) Language() language.Language {
	return a.language
}

// IsInitialized reports whether the backend lexer has been built.
func (a *Adapter) IsInitialized() bool {
	return a.initialized
}

// init builds the backend lexer on first use. It first asks the backend
// for built-in rules matching the language's primary extension, then falls
// back to the manually installed rule sets.
func (a *Adapter) init() error {
	if a.initialized {
		return nil
	}
	lexer := lexers.Match("file." + a.language.PrimaryExtension())
	if lexer == nil {
		var err error
		lexer, err = newManualLexer(a.language)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInitFailed, a.language, err)
		}
	}
	a.lexer = chroma.Coalesce(lexer)
	a.initialized = true
	return nil
}

// HighlightLine tokenizes a single line as a one-line document.
//
// This is fast but does not resolve multi-line constructs; use
// HighlightDocument for context-aware results. The returned spans
// concatenate to the input line byte-for-byte. An empty line yields an
// empty span list.
func (a *Adapter) HighlightLine(line string, _ int) ([]token.Info, error) {
	if err := a.init(); err != nil {
		return nil, err
	}
	if line == "" {
		return []token.Info{}, nil
	}

	it, err := a.lexer.Tokenise(nil, line)
	if err != nil {
		// Backend construction succeeded but tokenization did not; the
		// contract is a single plain span over the whole line.
		return []token.Info{token.Plain(line, 0, len(line))}, nil
	}
	return spansForLine(it.Tokens(), line), nil
}

// HighlightDocument tokenizes the whole document and returns the spans for
// the requested line. Multi-line strings and block comments resolve
// correctly. An out-of-range line number yields an empty span list.
func (a *Adapter) HighlightDocument(document string, lineNumber int) ([]token.Info, error) {
	if err := a.init(); err != nil {
		return nil, err
	}

	docLines := strings.Split(document, "\n")
	if lineNumber < 0 || lineNumber >= len(docLines) {
		return []token.Info{}, nil
	}
	line := docLines[lineNumber]
	if line == "" {
		return []token.Info{}, nil
	}

	it, err := a.lexer.Tokenise(nil, document)
	if err != nil {
		return []token.Info{token.Plain(line, 0, len(line))}, nil
	}

	spans := spansForDocumentLine(it.Tokens(), lineNumber, line)
	return spans, nil
}

// spansForLine converts a token stream for a single line into spans,
// clamping at the line length. Chroma may append a trailing newline to the
// stream; everything past the original line is discarded.
func spansForLine(toks []chroma.Token, line string) []token.Info {
	spans := make([]token.Info, 0, len(toks))
	off := 0
	for _, tok := range toks {
		if off >= len(line) {
			break
		}
		text := tok.Value
		if remaining := len(line) - off; len(text) > remaining {
			text = text[:remaining]
		}
		if text == "" {
			continue
		}
		spans = appendSpan(spans, text, kindOf(tok.Type), off)
		off += len(text)
	}
	if off < len(line) {
		spans = appendSpan(spans, line[off:], "", off)
	}
	return spans
}

// spansForDocumentLine walks a whole-document token stream, splitting
// token values on newlines, and collects the spans belonging to the
// target line.
func spansForDocumentLine(toks []chroma.Token, target int, line string) []token.Info {
	spans := make([]token.Info, 0, 8)
	lineIdx := 0
	off := 0
	for _, tok := range toks {
		if lineIdx > target {
			break
		}
		value := tok.Value
		for value != "" {
			nl := strings.IndexByte(value, '\n')
			var segment string
			if nl < 0 {
				segment = value
				value = ""
			} else {
				segment = value[:nl]
				value = value[nl+1:]
			}
			if lineIdx == target && segment != "" && off < len(line) {
				text := segment
				if remaining := len(line) - off; len(text) > remaining {
					text = text[:remaining]
				}
				spans = appendSpan(spans, text, kindOf(tok.Type), off)
				off += len(text)
			}
			if nl >= 0 {
				lineIdx++
				if lineIdx > target {
					break
				}
				if lineIdx == target {
					off = 0
				}
			}
		}
	}
	if off < len(line) {
		spans = appendSpan(spans, line[off:], "", off)
	}
	return spans
}

// appendSpan appends a span at the running offset, merging with the
// previous span when both carry the same kind. Merging keeps span lists
// short without breaking the concatenation invariant.
func appendSpan(spans []token.Info, text, kind string, off int) []token.Info {
	if n := len(spans); n > 0 && spans[n-1].Kind == kind && spans[n-1].End == off {
		spans[n-1].Text += text
		spans[n-1].End += len(text)
		return spans
	}
	return append(spans, token.Info{Text: text, Kind: kind, Start: off, End: off + len(text)})
}
