package buffer

import (
	"errors"
	"testing"
)

func TestNewFromString(t *testing.T) {
	b := NewFromString("one\ntwo\nthree")
	if b.LineCount() != 3 {
		t.Fatalf("LineCount() = %d, want 3", b.LineCount())
	}
	if line, ok := b.Line(1); !ok || line != "two" {
		t.Errorf("Line(1) = (%q, %v)", line, ok)
	}
	if _, ok := b.Line(3); ok {
		t.Error("Line(3) exists in a 3-line buffer")
	}
	if _, ok := b.Line(-1); ok {
		t.Error("Line(-1) exists")
	}
}

func TestEmptyBuffer(t *testing.T) {
	b := New()
	if b.LineCount() != 1 {
		t.Fatalf("empty buffer has %d lines, want 1", b.LineCount())
	}
	if line, ok := b.Line(0); !ok || line != "" {
		t.Errorf("Line(0) = (%q, %v)", line, ok)
	}
}

func TestSetLine(t *testing.T) {
	b := NewFromString("a\nb")
	if err := b.SetLine(1, "B"); err != nil {
		t.Fatalf("SetLine: %v", err)
	}
	if line, _ := b.Line(1); line != "B" {
		t.Errorf("Line(1) = %q", line)
	}
	if err := b.SetLine(9, "x"); !errors.Is(err, ErrLineOutOfRange) {
		t.Errorf("SetLine out of range = %v", err)
	}
}

func TestInsertLines(t *testing.T) {
	b := NewFromString("a\nd")
	if err := b.InsertLines(1, []string{"b", "c"}); err != nil {
		t.Fatalf("InsertLines: %v", err)
	}
	want := []string{"a", "b", "c", "d"}
	for i, w := range want {
		if line, _ := b.Line(i); line != w {
			t.Errorf("Line(%d) = %q, want %q", i, line, w)
		}
	}

	if err := b.InsertLines(b.LineCount(), []string{"e"}); err != nil {
		t.Errorf("append via InsertLines: %v", err)
	}
	if err := b.InsertLines(99, []string{"x"}); !errors.Is(err, ErrLineOutOfRange) {
		t.Errorf("InsertLines out of range = %v", err)
	}
}

func TestRemoveLines(t *testing.T) {
	b := NewFromString("a\nb\nc\nd")
	if err := b.RemoveLines(1, 2); err != nil {
		t.Fatalf("RemoveLines: %v", err)
	}
	if b.LineCount() != 2 {
		t.Fatalf("LineCount() = %d, want 2", b.LineCount())
	}
	if line, _ := b.Line(1); line != "d" {
		t.Errorf("Line(1) = %q, want d", line)
	}

	if err := b.RemoveLines(0, 5); !errors.Is(err, ErrRangeInvalid) {
		t.Errorf("oversized remove = %v", err)
	}

	// Removing everything leaves one empty line.
	if err := b.RemoveLines(0, 2); err != nil {
		t.Fatalf("RemoveLines all: %v", err)
	}
	if b.LineCount() != 1 {
		t.Errorf("LineCount() = %d after removing all, want 1", b.LineCount())
	}
}

func TestReplaceLines(t *testing.T) {
	b := NewFromString("a\nb\nc")
	delta, err := b.ReplaceLines(1, 1, []string{"x", "y"})
	if err != nil {
		t.Fatalf("ReplaceLines: %v", err)
	}
	if delta != 1 {
		t.Errorf("delta = %d, want 1", delta)
	}
	if b.Contents() != "a\nx\ny\nc" {
		t.Errorf("Contents() = %q", b.Contents())
	}

	if _, err := b.ReplaceLines(2, 1, nil); !errors.Is(err, ErrRangeInvalid) {
		t.Errorf("inverted range = %v", err)
	}
}

func TestContentsRoundTrip(t *testing.T) {
	const text = "fn main() {\n    println!(\"hi\");\n}"
	b := NewFromString(text)
	if b.Contents() != text {
		t.Errorf("Contents() = %q, want %q", b.Contents(), text)
	}
}

func TestPath(t *testing.T) {
	b := New(WithPath("x.rs"))
	if b.Path() != "x.rs" {
		t.Errorf("Path() = %q", b.Path())
	}
	b.SetPath("y.rs")
	if b.Path() != "y.rs" {
		t.Errorf("Path() after SetPath = %q", b.Path())
	}
}
