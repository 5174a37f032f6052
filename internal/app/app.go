package app

import (
	"errors"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/radiant/internal/config"
	"github.com/dshills/radiant/internal/engine/buffer"
	"github.com/dshills/radiant/internal/renderer"
	"github.com/dshills/radiant/internal/syntax"
	"github.com/dshills/radiant/internal/syntax/colormap"
	"github.com/dshills/radiant/internal/syntax/language"
)

// ErrQuit signals a normal user-requested exit from the event loop.
var ErrQuit = errors.New("quit")

// Options configures the application.
type Options struct {
	// ConfigPath is the settings file location. Empty uses defaults.
	ConfigPath string

	// LogLevel is the minimum log level (debug, info, warn, error).
	LogLevel string

	// Use16Colors forces the 16-color theme regardless of settings.
	Use16Colors bool

	// Files are the paths to open; the first becomes the active buffer.
	Files []string
}

// Application ties the buffer, highlighting service, bridge, and screen
// together and runs the editor loop.
type Application struct {
	logger   *Logger
	settings config.Settings
	service  *syntax.Service
	bridge   *renderer.Bridge
	mapper   *colormap.Mapper

	screen tcell.Screen
	buf    *buffer.Buffer
	state  *syntax.State
}

// New builds an application from options: settings are loaded, the
// highlighting service configured, and the first file read into a buffer.
func New(opts Options) (*Application, error) {
	logger := NewLogger(ParseLogLevel(opts.LogLevel), os.Stderr)

	settings, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if opts.Use16Colors {
		settings.Use256Colors = false
	}

	service := syntax.NewService()
	service.SetEnabled(settings.Enabled)
	service.SetLineTimeout(settings.LineTimeout)
	service.SetMaxLineLength(settings.MaxLineLength)
	service.SetDiagnostics(logger.WithComponent("syntax").Warn)
	for path, name := range settings.LanguageOverrides {
		if lang, ok := language.Parse(name); ok {
			service.SetLanguageOverride(path, lang)
		} else {
			logger.Warn("unknown language %q for override %s", name, path)
		}
	}

	mapper := colormap.New(settings.Use256Colors)
	for kind, hex := range settings.Colors {
		if err := mapper.SetHex(kind, hex); err != nil {
			logger.Warn("%v", err)
		}
	}

	a := &Application{
		logger:   logger,
		settings: settings,
		service:  service,
		bridge:   renderer.NewBridge(service),
		mapper:   mapper,
	}

	if err := a.openInitialBuffer(opts.Files); err != nil {
		return nil, err
	}
	return a, nil
}

// openInitialBuffer loads the first file, or starts with an empty
// unnamed buffer.
func (a *Application) openInitialBuffer(files []string) error {
	if len(files) == 0 {
		a.buf = buffer.New()
		a.state = syntax.DisabledState(language.PlainText)
		a.bridge.RegisterBuffer(a.buf, a.state)
		return nil
	}

	path := files[0]
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("open %s: %w", path, err)
	}
	a.buf = buffer.NewFromString(string(data), buffer.WithPath(path))

	a.state = a.service.CreateState(path)
	a.state.SetBatchSize(a.settings.BatchSize)
	a.state.SetLookahead(a.settings.Lookahead)
	a.bridge.RegisterBuffer(a.buf, a.state)

	a.logger.Info("opened %s (%s, highlighting %v)",
		path, a.state.Language(), a.state.Enabled())
	return nil
}

// Logger returns the application logger.
func (a *Application) Logger() *Logger {
	return a.logger
}

// Bridge returns the render bridge.
func (a *Application) Bridge() *renderer.Bridge {
	return a.bridge
}

// Run initializes the terminal and enters the editor loop. It returns
// ErrQuit on a clean exit.
func (a *Application) Run() error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	a.screen = screen

	ed := newEditor(a.screen, a.buf, a.bridge, a.mapper, a.logger)
	return ed.run()
}

// Shutdown releases the terminal and clears highlighting associations.
// Safe to call more than once.
func (a *Application) Shutdown() {
	if a.screen != nil {
		a.screen.Fini()
		a.screen = nil
	}
	a.bridge.ClearAll()
}
