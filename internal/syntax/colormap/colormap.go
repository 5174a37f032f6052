// Package colormap maps token kinds to terminal colors for the renderer.
package colormap

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Named ANSI colors. tcell's W3C names sit at the standard ANSI indexes:
// Navy/Teal/Purple/Olive/Maroon/Silver are the normal-intensity colors,
// Blue/Aqua/Fuchsia/Yellow/Red/White the bright ones.
const (
	colorBlue          = tcell.ColorNavy
	colorCyan          = tcell.ColorTeal
	colorGreen         = tcell.ColorGreen
	colorMagenta       = tcell.ColorPurple
	colorYellow        = tcell.ColorOlive
	colorRed           = tcell.ColorMaroon
	colorWhite         = tcell.ColorSilver
	colorBrightBlack   = tcell.ColorGray
	colorBrightBlue    = tcell.ColorBlue
	colorBrightCyan    = tcell.ColorAqua
	colorBrightMagenta = tcell.ColorFuchsia
	colorBrightYellow  = tcell.ColorYellow
	colorBrightRed     = tcell.ColorRed
)

// Mapper resolves token kind strings to foreground colors. Unknown kinds
// resolve to the default white.
type Mapper struct {
	colors map[string]tcell.Color
	use256 bool
}

// New creates a mapper with the default theme for the given color depth.
func New(use256Colors bool) *Mapper {
	m := &Mapper{use256: use256Colors}
	m.loadDefaultTheme()
	return m
}

// loadDefaultTheme installs the built-in kind → color table.
func (m *Mapper) loadDefaultTheme() {
	if m.use256 {
		m.colors = map[string]tcell.Color{
			"keyword":     colorBlue,
			"type":        colorCyan,
			"string":      colorGreen,
			"comment":     colorBrightBlack,
			"number":      colorMagenta,
			"boolean":     colorMagenta,
			"attribute":   colorYellow,
			"builtin":     colorBrightCyan,
			"decorator":   colorBrightYellow,
			"regex":       colorRed,
			"operator":    colorWhite,
			"punctuation": colorBrightBlack,
			"function":    colorBrightBlue,
			"variable":    colorWhite,
			"constant":    colorBrightMagenta,
			"error":       colorBrightRed,
		}
		return
	}
	// 16-color terminals: bright variants collapse onto the base palette,
	// except comments, which keep bright black.
	m.colors = map[string]tcell.Color{
		"keyword":     colorBlue,
		"type":        colorCyan,
		"string":      colorGreen,
		"comment":     colorBrightBlack,
		"number":      colorYellow,
		"boolean":     colorYellow,
		"attribute":   colorYellow,
		"builtin":     colorCyan,
		"decorator":   colorYellow,
		"regex":       colorRed,
		"operator":    colorWhite,
		"punctuation": colorWhite,
		"function":    colorBlue,
		"variable":    colorWhite,
		"constant":    colorYellow,
		"error":       colorRed,
	}
}

// Color returns the foreground color for a token kind.
func (m *Mapper) Color(kind string) tcell.Color {
	if c, ok := m.colors[kind]; ok {
		return c
	}
	return colorWhite
}

// SetColor assigns a custom color to a kind.
func (m *Mapper) SetColor(kind string, color tcell.Color) {
	m.colors[kind] = color
}

// SetHex assigns a custom color from a "#rrggbb" string. In 256-color
// mode the exact color is used; on 16-color terminals it is downmapped to
// the nearest ANSI color by Lab distance.
func (m *Mapper) SetHex(kind, hex string) error {
	c, err := colorful.Hex(hex)
	if err != nil {
		return fmt.Errorf("colormap: invalid color %q for kind %q: %w", hex, kind, err)
	}
	if m.use256 {
		m.colors[kind] = tcell.NewRGBColor(
			int32(c.R*255+0.5), int32(c.G*255+0.5), int32(c.B*255+0.5))
		return nil
	}
	m.colors[kind] = nearestANSI(c)
	return nil
}

// Reset restores the default theme for the current color depth.
func (m *Mapper) Reset() {
	m.loadDefaultTheme()
}

// Is256ColorMode reports whether the mapper targets 256-color terminals.
func (m *Mapper) Is256ColorMode() bool {
	return m.use256
}

// Set256ColorMode switches color depth and reloads the default theme when
// the depth changes.
func (m *Mapper) Set256ColorMode(use256 bool) {
	if m.use256 != use256 {
		m.use256 = use256
		m.loadDefaultTheme()
	}
}

// Kinds returns all configured token kinds.
func (m *Mapper) Kinds() []string {
	kinds := make([]string, 0, len(m.colors))
	for kind := range m.colors {
		kinds = append(kinds, kind)
	}
	return kinds
}

// Export returns a copy of the active theme.
func (m *Mapper) Export() map[string]tcell.Color {
	theme := make(map[string]tcell.Color, len(m.colors))
	for kind, c := range m.colors {
		theme[kind] = c
	}
	return theme
}

// Load replaces the active theme.
func (m *Mapper) Load(theme map[string]tcell.Color) {
	m.colors = make(map[string]tcell.Color, len(theme))
	for kind, c := range theme {
		m.colors[kind] = c
	}
}

// ansiPalette holds the standard 16-color palette with xterm RGB values
// for perceptual distance comparison.
var ansiPalette = []struct {
	color tcell.Color
	rgb   colorful.Color
}{
	{tcell.ColorBlack, rgb(0x00, 0x00, 0x00)},
	{tcell.ColorMaroon, rgb(0x80, 0x00, 0x00)},
	{tcell.ColorGreen, rgb(0x00, 0x80, 0x00)},
	{tcell.ColorOlive, rgb(0x80, 0x80, 0x00)},
	{tcell.ColorNavy, rgb(0x00, 0x00, 0x80)},
	{tcell.ColorPurple, rgb(0x80, 0x00, 0x80)},
	{tcell.ColorTeal, rgb(0x00, 0x80, 0x80)},
	{tcell.ColorSilver, rgb(0xc0, 0xc0, 0xc0)},
	{tcell.ColorGray, rgb(0x80, 0x80, 0x80)},
	{tcell.ColorRed, rgb(0xff, 0x00, 0x00)},
	{tcell.ColorLime, rgb(0x00, 0xff, 0x00)},
	{tcell.ColorYellow, rgb(0xff, 0xff, 0x00)},
	{tcell.ColorBlue, rgb(0x00, 0x00, 0xff)},
	{tcell.ColorFuchsia, rgb(0xff, 0x00, 0xff)},
	{tcell.ColorAqua, rgb(0x00, 0xff, 0xff)},
	{tcell.ColorWhite, rgb(0xff, 0xff, 0xff)},
}

func rgb(r, g, b uint8) colorful.Color {
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

// nearestANSI returns the 16-color palette entry closest to c in Lab
// space.
func nearestANSI(c colorful.Color) tcell.Color {
	best := ansiPalette[0].color
	bestDist := c.DistanceLab(ansiPalette[0].rgb)
	for _, entry := range ansiPalette[1:] {
		if d := c.DistanceLab(entry.rgb); d < bestDist {
			best = entry.color
			bestDist = d
		}
	}
	return best
}
