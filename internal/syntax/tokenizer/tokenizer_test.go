package tokenizer

import (
	"strings"
	"testing"

	"github.com/dshills/radiant/internal/syntax/language"
	"github.com/dshills/radiant/internal/syntax/token"
)

// checkInvariants verifies the span contract: contiguous offsets from 0
// to len(line) and byte-exact reconstruction.
func checkInvariants(t *testing.T, line string, spans []token.Info) {
	t.Helper()
	if token.Concat(spans) != line {
		t.Errorf("concatenated spans %q != line %q", token.Concat(spans), line)
	}
	offset := 0
	for i, s := range spans {
		if s.Start != offset {
			t.Errorf("span %d starts at %d, want %d", i, s.Start, offset)
		}
		if s.End != s.Start+len(s.Text) {
			t.Errorf("span %d end %d inconsistent with text length %d", i, s.End, len(s.Text))
		}
		offset = s.End
	}
	if offset != len(line) {
		t.Errorf("spans end at %d, want %d", offset, len(line))
	}
}

func TestLazyInitialization(t *testing.T) {
	a := New(language.Rust)
	if a.IsInitialized() {
		t.Error("adapter initialized before first use")
	}
	if a.Language() != language.Rust {
		t.Errorf("Language() = %v", a.Language())
	}

	if _, err := a.HighlightLine("fn main() {", 0); err != nil {
		t.Fatalf("HighlightLine: %v", err)
	}
	if !a.IsInitialized() {
		t.Error("adapter not initialized after first use")
	}
}

func TestHighlightLineRustKeyword(t *testing.T) {
	a := New(language.Rust)
	line := "fn main() {"

	spans, err := a.HighlightLine(line, 0)
	if err != nil {
		t.Fatalf("HighlightLine: %v", err)
	}
	checkInvariants(t, line, spans)

	found := false
	for _, s := range spans {
		if s.Kind == "keyword" && s.Text == "fn" {
			found = true
		}
	}
	if !found {
		t.Errorf("no keyword span for 'fn' in %v", spans)
	}
}

func TestHighlightLineEmpty(t *testing.T) {
	a := New(language.Rust)
	spans, err := a.HighlightLine("", 0)
	if err != nil {
		t.Fatalf("HighlightLine: %v", err)
	}
	if len(spans) != 0 {
		t.Errorf("empty line produced %d spans", len(spans))
	}
}

func TestHighlightLineInvariantsAcrossLanguages(t *testing.T) {
	tests := []struct {
		lang language.Language
		line string
	}{
		{language.Rust, `let s = "hello"; // comment`},
		{language.JavaScript, `const x = 42; /* note */`},
		{language.TypeScript, `const msg: string = 'hi';`},
		{language.Python, `def f(x): return x  # comment`},
		{language.JSON, `{"a": [1, true, null]}`},
		{language.YAML, `key: value`},
		{language.Markdown, `# Heading`},
		{language.SQL, `SELECT * FROM t;`},
	}
	for _, tt := range tests {
		a := New(tt.lang)
		spans, err := a.HighlightLine(tt.line, 0)
		if err != nil {
			t.Fatalf("%v: HighlightLine: %v", tt.lang, err)
		}
		checkInvariants(t, tt.line, spans)
	}
}

func TestHighlightDocumentMultiline(t *testing.T) {
	a := New(language.Rust)
	doc := "/* start\nmiddle\nend */\nfn main() {}"

	// Line 1 is inside the block comment; document mode must see it.
	spans, err := a.HighlightDocument(doc, 1)
	if err != nil {
		t.Fatalf("HighlightDocument: %v", err)
	}
	checkInvariants(t, "middle", spans)

	comment := false
	for _, s := range spans {
		if s.Kind == "comment" {
			comment = true
		}
	}
	if !comment {
		t.Errorf("no comment span inside block comment: %v", spans)
	}
}

func TestHighlightDocumentOutOfRange(t *testing.T) {
	a := New(language.Rust)
	doc := "fn main() {}"

	for _, lineNumber := range []int{-1, 5} {
		spans, err := a.HighlightDocument(doc, lineNumber)
		if err != nil {
			t.Fatalf("HighlightDocument(%d): %v", lineNumber, err)
		}
		if len(spans) != 0 {
			t.Errorf("out-of-range line %d produced %d spans", lineNumber, len(spans))
		}
	}
}

func TestHighlightDocumentLineContent(t *testing.T) {
	a := New(language.Python)
	doc := "x = 1\ny = 2\nz = 3"

	for i, want := range []string{"x = 1", "y = 2", "z = 3"} {
		spans, err := a.HighlightDocument(doc, i)
		if err != nil {
			t.Fatalf("HighlightDocument(%d): %v", i, err)
		}
		checkInvariants(t, want, spans)
	}
}

func TestManualLexerRust(t *testing.T) {
	lexer, err := newManualLexer(language.Rust)
	if err != nil {
		t.Fatalf("newManualLexer: %v", err)
	}
	it, err := lexer.Tokenise(nil, "fn main() {")
	if err != nil {
		t.Fatalf("Tokenise: %v", err)
	}

	found := false
	for _, tok := range it.Tokens() {
		if kindOf(tok.Type) == "keyword" && strings.TrimSpace(tok.Value) == "fn" {
			found = true
		}
	}
	if !found {
		t.Error("manual Rust rules did not tag 'fn' as a keyword")
	}
}

func TestManualLexerJSON(t *testing.T) {
	lexer, err := newManualLexer(language.JSON)
	if err != nil {
		t.Fatalf("newManualLexer: %v", err)
	}
	it, err := lexer.Tokenise(nil, `{"ok": true, "n": -3}`)
	if err != nil {
		t.Fatalf("Tokenise: %v", err)
	}

	kinds := make(map[string]bool)
	for _, tok := range it.Tokens() {
		kinds[kindOf(tok.Type)] = true
	}
	for _, want := range []string{"string", "boolean", "number"} {
		if !kinds[want] {
			t.Errorf("manual JSON rules missing kind %q (got %v)", want, kinds)
		}
	}
}

func TestManualLexerBasicFallback(t *testing.T) {
	lexer, err := newManualLexer(language.TOML)
	if err != nil {
		t.Fatalf("newManualLexer: %v", err)
	}
	it, err := lexer.Tokenise(nil, `name = "radiant" # comment`)
	if err != nil {
		t.Fatalf("Tokenise: %v", err)
	}

	kinds := make(map[string]bool)
	for _, tok := range it.Tokens() {
		kinds[kindOf(tok.Type)] = true
	}
	if !kinds["string"] || !kinds["comment"] {
		t.Errorf("basic rules missing string/comment kinds: %v", kinds)
	}
}
