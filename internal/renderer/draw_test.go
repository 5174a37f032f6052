package renderer

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/radiant/internal/engine/buffer"
	"github.com/dshills/radiant/internal/syntax/colormap"
)

func newSimScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	screen.SetSize(80, 24)
	t.Cleanup(screen.Fini)
	return screen
}

func TestDrawHighlightedLine(t *testing.T) {
	screen := newSimScreen(t)
	br := newTestBridge()
	mapper := colormap.New(true)

	buf := buffer.NewFromString("fn main() {}", buffer.WithPath("t.rs"))
	br.RegisterBuffer(buf, br.Service().CreateState("t.rs"))

	DrawHighlightedLine(screen, br, mapper, buf, "fn main() {}", 0, 0, 0, 80)

	// 'f' of the keyword "fn" must carry the keyword color.
	r, _, style, _ := screen.GetContent(0, 0)
	if r != 'f' {
		t.Fatalf("cell (0,0) = %q, want 'f'", r)
	}
	fg, _, _ := style.Decompose()
	if fg != mapper.Color("keyword") {
		t.Errorf("keyword cell color = %v, want %v", fg, mapper.Color("keyword"))
	}
}

func TestDrawPlainFallback(t *testing.T) {
	screen := newSimScreen(t)
	br := newTestBridge()
	mapper := colormap.New(true)

	// Unregistered buffer falls back to plain rendering.
	buf := buffer.NewFromString("hello")
	DrawHighlightedLine(screen, br, mapper, buf, "hello", 0, 0, 0, 80)

	r, _, style, _ := screen.GetContent(0, 0)
	if r != 'h' {
		t.Fatalf("cell (0,0) = %q, want 'h'", r)
	}
	fg, _, _ := style.Decompose()
	if fg != tcell.ColorDefault {
		t.Errorf("plain cell has foreground %v, want default", fg)
	}
}

func TestDrawClipsAtRightEdge(t *testing.T) {
	screen := newSimScreen(t)
	br := newTestBridge()
	mapper := colormap.New(true)

	buf := buffer.NewFromString("fn main() {}", buffer.WithPath("t.rs"))
	br.RegisterBuffer(buf, br.Service().CreateState("t.rs"))

	DrawHighlightedLine(screen, br, mapper, buf, "fn main() {}", 0, 0, 0, 4)

	// Column 4 and beyond stay untouched.
	r, _, _, _ := screen.GetContent(4, 0)
	if r != ' ' {
		t.Errorf("cell (4,0) = %q, want blank", r)
	}
}
