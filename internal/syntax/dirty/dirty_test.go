package dirty

import "testing"

func TestMarkAndClear(t *testing.T) {
	s := NewSet()

	if s.IsDirty(5) {
		t.Error("fresh set reports dirty")
	}

	s.Mark(5)
	if !s.IsDirty(5) {
		t.Error("IsDirty(5) = false after Mark")
	}
	if s.IsDirty(6) {
		t.Error("unrelated line dirty")
	}

	s.Clear(5)
	if s.IsDirty(5) {
		t.Error("IsDirty(5) = true after Clear")
	}
}

func TestMarkRange(t *testing.T) {
	s := NewSet()
	s.MarkRange(3, 6)

	for line := 0; line < 10; line++ {
		want := line >= 3 && line <= 6
		if s.IsDirty(line) != want {
			t.Errorf("IsDirty(%d) = %v, want %v", line, s.IsDirty(line), want)
		}
	}
	if s.Len() != 4 {
		t.Errorf("Len() = %d, want 4", s.Len())
	}
}

func TestMarkDocument(t *testing.T) {
	s := NewSet()
	s.Mark(1)
	s.MarkDocument()

	if !s.WholeDocument() {
		t.Error("WholeDocument() = false after MarkDocument")
	}
	if !s.IsDirty(999) {
		t.Error("document-wide flag should make every line dirty")
	}
	if s.Len() != 0 {
		t.Errorf("individual lines retained after MarkDocument: %d", s.Len())
	}

	s.ClearAll()
	if s.WholeDocument() || s.IsDirty(0) {
		t.Error("ClearAll did not reset the document flag")
	}
}

func TestShiftUp(t *testing.T) {
	s := NewSet()
	s.Mark(2)
	s.Mark(7)

	s.ShiftUp(3, 2)

	if !s.IsDirty(2) {
		t.Error("line below insertion moved")
	}
	if !s.IsDirty(9) || s.IsDirty(7) {
		t.Error("line 7 did not shift to 9")
	}
}

func TestShiftDown(t *testing.T) {
	s := NewSet()
	s.Mark(3)
	s.Mark(5)
	s.Mark(8)

	s.ShiftDown(4, 2)

	if !s.IsDirty(3) {
		t.Error("line below deletion moved")
	}
	if s.IsDirty(5) {
		t.Error("deleted line survived the shift")
	}
	if !s.IsDirty(6) {
		t.Error("line 8 did not shift to 6")
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
}
