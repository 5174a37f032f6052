package app

import (
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/radiant/internal/engine/buffer"
	"github.com/dshills/radiant/internal/renderer"
	"github.com/dshills/radiant/internal/syntax"
	"github.com/dshills/radiant/internal/syntax/colormap"
)

// undoStep is a whole-buffer snapshot taken before an edit.
type undoStep struct {
	lines  []string
	cursor buffer.Position
}

// editor is the interactive loop: it owns the cursor and scroll position
// and drives the render bridge on every frame. Background highlighting
// runs between frames whenever no input is pending.
type editor struct {
	screen tcell.Screen
	buf    *buffer.Buffer
	bridge *renderer.Bridge
	mapper *colormap.Mapper
	logger *Logger

	cursor  buffer.Position
	topLine int
	undo    []undoStep
	quit    bool
}

func newEditor(screen tcell.Screen, buf *buffer.Buffer, bridge *renderer.Bridge, mapper *colormap.Mapper, logger *Logger) *editor {
	return &editor{
		screen: screen,
		buf:    buf,
		bridge: bridge,
		mapper: mapper,
		logger: logger,
	}
}

// run is the main loop: draw, drain idle background work, block on the
// next event.
func (e *editor) run() error {
	for !e.quit {
		e.draw()

		for !e.screen.HasPendingEvent() && e.bridge.HasBackgroundWork(e.buf) {
			n, _ := e.bridge.ProcessBackgroundHighlighting(e.buf, e.buf.Line)
			if n == 0 {
				break
			}
		}

		e.handleEvent(e.screen.PollEvent())
	}
	return ErrQuit
}

// textHeight returns the number of rows available for buffer text; the
// bottom row is the status line.
func (e *editor) textHeight() int {
	_, h := e.screen.Size()
	if h <= 1 {
		return 0
	}
	return h - 1
}

func (e *editor) draw() {
	w, _ := e.screen.Size()
	height := e.textHeight()

	e.scrollToCursor(height)
	e.bridge.UpdateViewportTracking(e.buf, e.topLine, e.topLine+height)

	for row := 0; row < height; row++ {
		lineNumber := e.topLine + row
		content, ok := e.buf.Line(lineNumber)
		if !ok {
			content = ""
		}
		renderer.DrawHighlightedLine(e.screen, e.bridge, e.mapper, e.buf, content, lineNumber, row, 0, w)
	}

	e.drawStatus(w, height)
	e.screen.ShowCursor(e.cursor.Col, e.cursor.Line-e.topLine)
	e.screen.Show()
}

func (e *editor) drawStatus(w, row int) {
	status := fmt.Sprintf(" %s | %d:%d", e.buf.Path(), e.cursor.Line+1, e.cursor.Col+1)
	if state, ok := e.bridge.BufferState(e.buf); ok && state.Enabled() {
		m := state.Metrics()
		status += fmt.Sprintf(" | %s | cache %.0f%%", state.Language(), m.CacheHitRatio()*100)
	}
	style := tcell.StyleDefault.Reverse(true)
	x := 0
	for _, r := range status {
		if x >= w {
			break
		}
		e.screen.SetContent(x, row, r, nil, style)
		x++
	}
	for ; x < w; x++ {
		e.screen.SetContent(x, row, ' ', nil, style)
	}
}

// scrollToCursor keeps the cursor inside the viewport.
func (e *editor) scrollToCursor(height int) {
	if height <= 0 {
		return
	}
	if e.cursor.Line < e.topLine {
		e.topLine = e.cursor.Line
	}
	if e.cursor.Line >= e.topLine+height {
		e.topLine = e.cursor.Line - height + 1
	}
	if e.topLine < 0 {
		e.topLine = 0
	}
}

func (e *editor) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		e.screen.Sync()
	case *tcell.EventKey:
		e.handleKey(ev)
	}
}

func (e *editor) handleKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyCtrlQ, tcell.KeyEscape:
		e.quit = true
	case tcell.KeyCtrlS:
		e.save()
	case tcell.KeyCtrlZ:
		e.undoLast()
	case tcell.KeyUp:
		e.moveCursor(-1, 0)
	case tcell.KeyDown:
		e.moveCursor(1, 0)
	case tcell.KeyLeft:
		e.moveCursor(0, -1)
	case tcell.KeyRight:
		e.moveCursor(0, 1)
	case tcell.KeyPgUp:
		e.moveCursor(-e.textHeight(), 0)
	case tcell.KeyPgDn:
		e.moveCursor(e.textHeight(), 0)
	case tcell.KeyHome:
		e.cursor.Col = 0
	case tcell.KeyEnd:
		if line, ok := e.buf.Line(e.cursor.Line); ok {
			e.cursor.Col = len(line)
		}
	case tcell.KeyEnter:
		e.insertNewline()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		e.deleteBack()
	case tcell.KeyRune:
		e.insertRune(ev.Rune())
	}
}

func (e *editor) moveCursor(dLine, dCol int) {
	e.cursor.Line += dLine
	if e.cursor.Line < 0 {
		e.cursor.Line = 0
	}
	if max := e.buf.LineCount() - 1; e.cursor.Line > max {
		e.cursor.Line = max
	}
	e.cursor.Col += dCol
	if e.cursor.Col < 0 {
		e.cursor.Col = 0
	}
	if line, ok := e.buf.Line(e.cursor.Line); ok && e.cursor.Col > len(line) {
		e.cursor.Col = len(line)
	}
}

// snapshot records the buffer for undo before a mutation.
func (e *editor) snapshot() {
	e.undo = append(e.undo, undoStep{lines: e.buf.Lines(), cursor: e.cursor})
	if len(e.undo) > 100 {
		e.undo = e.undo[1:]
	}
}

func (e *editor) insertRune(r rune) {
	line, ok := e.buf.Line(e.cursor.Line)
	if !ok {
		return
	}
	e.snapshot()
	col := clamp(e.cursor.Col, 0, len(line))
	if err := e.buf.SetLine(e.cursor.Line, line[:col]+string(r)+line[col:]); err != nil {
		return
	}
	e.cursor.Col = col + len(string(r))
	e.bridge.NotifyTextChange(e.buf, syntax.SingleLineChange(e.cursor.Line, syntax.ChangeInsert))
}

func (e *editor) insertNewline() {
	line, ok := e.buf.Line(e.cursor.Line)
	if !ok {
		return
	}
	e.snapshot()
	col := clamp(e.cursor.Col, 0, len(line))
	if err := e.buf.SetLine(e.cursor.Line, line[:col]); err != nil {
		return
	}
	if err := e.buf.InsertLines(e.cursor.Line+1, []string{line[col:]}); err != nil {
		return
	}
	e.bridge.NotifyTextChange(e.buf, syntax.InsertChange(e.cursor.Line, 1))
	e.cursor.Line++
	e.cursor.Col = 0
}

func (e *editor) deleteBack() {
	line, ok := e.buf.Line(e.cursor.Line)
	if !ok {
		return
	}
	if e.cursor.Col > 0 {
		e.snapshot()
		col := clamp(e.cursor.Col, 1, len(line))
		if err := e.buf.SetLine(e.cursor.Line, line[:col-1]+line[col:]); err != nil {
			return
		}
		e.cursor.Col = col - 1
		e.bridge.NotifyTextChange(e.buf, syntax.SingleLineChange(e.cursor.Line, syntax.ChangeDelete))
		return
	}
	if e.cursor.Line == 0 {
		return
	}
	prev, _ := e.buf.Line(e.cursor.Line - 1)
	e.snapshot()
	if err := e.buf.SetLine(e.cursor.Line-1, prev+line); err != nil {
		return
	}
	if err := e.buf.RemoveLines(e.cursor.Line, 1); err != nil {
		return
	}
	e.bridge.NotifyTextChange(e.buf, syntax.DeleteChange(e.cursor.Line, 1))
	e.cursor.Line--
	e.cursor.Col = len(prev)
}

// undoLast restores the previous snapshot and reports the step as a
// multiple-change over the affected range.
func (e *editor) undoLast() {
	if len(e.undo) == 0 {
		return
	}
	step := e.undo[len(e.undo)-1]
	e.undo = e.undo[:len(e.undo)-1]

	before := e.buf.LineCount()
	_, err := e.buf.ReplaceLines(0, before-1, step.lines)
	if err != nil {
		return
	}
	e.cursor = step.cursor

	delta := len(step.lines) - before
	end := len(step.lines) - 1
	e.bridge.NotifyUndoRedo(e.buf, 0, end, delta)
}

func (e *editor) save() {
	path := e.buf.Path()
	if path == "" {
		return
	}
	if err := os.WriteFile(path, []byte(e.buf.Contents()), 0o644); err != nil {
		e.logger.Error("save %s: %v", path, err)
		return
	}
	e.logger.Info("saved %s", path)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
