package renderer

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/dshills/radiant/internal/engine/buffer"
	"github.com/dshills/radiant/internal/syntax/colormap"
	"github.com/dshills/radiant/internal/syntax/token"
)

// DrawHighlightedLine renders one buffer line to the screen row y between
// columns left (inclusive) and right (exclusive), coloring each span
// through the mapper. When the bridge has no spans for the line it is
// drawn as plain text.
func DrawHighlightedLine(screen tcell.Screen, br *Bridge, mapper *colormap.Mapper, buf *buffer.Buffer, lineContent string, lineNumber, y, left, right int) {
	spans, ok := br.LineTokens(buf, lineContent, lineNumber)
	if ok && len(spans) > 0 {
		drawSpans(screen, mapper, spans, y, left, right)
		return
	}
	drawText(screen, lineContent, tcell.StyleDefault, y, left, right)
}

// drawSpans writes styled spans cell by cell, stopping at the right edge.
func drawSpans(screen tcell.Screen, mapper *colormap.Mapper, spans []token.Info, y, left, right int) {
	x := left
	for _, span := range spans {
		if x >= right {
			break
		}
		style := tcell.StyleDefault
		if span.IsHighlighted() {
			style = style.Foreground(mapper.Color(span.Kind))
		}
		x = drawText(screen, span.Text, style, y, x, right)
	}
	for ; x < right; x++ {
		screen.SetContent(x, y, ' ', nil, tcell.StyleDefault)
	}
}

// drawText writes text at row y starting at column x, advancing by rune
// display width. Returns the column after the last cell written.
func drawText(screen tcell.Screen, text string, style tcell.Style, y, x, right int) int {
	for _, r := range text {
		if x >= right {
			break
		}
		w := runewidth.RuneWidth(r)
		if w == 0 {
			w = 1
		}
		screen.SetContent(x, y, r, nil, style)
		x += w
	}
	return x
}
