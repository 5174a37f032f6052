// Package config loads and saves editor settings from a JSON file.
//
// Settings are read with gjson path queries so a partial file overrides
// only the keys it names, and written back with sjson patches so unknown
// keys authored by the user survive a save.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// ErrInvalidConfig indicates the settings file is not valid JSON.
var ErrInvalidConfig = errors.New("config: invalid settings file")

// Settings holds the highlighting-related editor configuration.
type Settings struct {
	// Enabled toggles syntax highlighting globally.
	Enabled bool

	// LineTimeout is the soft per-line tokenize deadline.
	LineTimeout time.Duration

	// MaxLineLength is the longest line handed to the tokenizer.
	MaxLineLength int

	// BatchSize is the background batch size.
	BatchSize int

	// Lookahead is the background prefetch distance.
	Lookahead int

	// Use256Colors selects the 256-color theme over the 16-color one.
	Use256Colors bool

	// LanguageOverrides maps exact file paths to language names.
	LanguageOverrides map[string]string

	// Colors maps token kinds to "#rrggbb" strings.
	Colors map[string]string
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		Enabled:           true,
		LineTimeout:       50 * time.Millisecond,
		MaxLineLength:     10_000,
		BatchSize:         10,
		Lookahead:         50,
		Use256Colors:      true,
		LanguageOverrides: map[string]string{},
		Colors:            map[string]string{},
	}
}

// Load reads settings from path. A missing file yields the defaults.
func Load(path string) (Settings, error) {
	s := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, fmt.Errorf("config: read %s: %w", path, err)
	}
	if !gjson.ValidBytes(data) {
		return s, fmt.Errorf("%w: %s", ErrInvalidConfig, path)
	}

	if v := gjson.GetBytes(data, "highlight.enabled"); v.Exists() {
		s.Enabled = v.Bool()
	}
	if v := gjson.GetBytes(data, "highlight.line_timeout_ms"); v.Exists() {
		s.LineTimeout = time.Duration(v.Int()) * time.Millisecond
	}
	if v := gjson.GetBytes(data, "highlight.max_line_length"); v.Exists() {
		s.MaxLineLength = int(v.Int())
	}
	if v := gjson.GetBytes(data, "highlight.batch_size"); v.Exists() {
		s.BatchSize = int(v.Int())
	}
	if v := gjson.GetBytes(data, "highlight.lookahead"); v.Exists() {
		s.Lookahead = int(v.Int())
	}
	if v := gjson.GetBytes(data, "highlight.use_256_colors"); v.Exists() {
		s.Use256Colors = v.Bool()
	}
	if v := gjson.GetBytes(data, "highlight.language_overrides"); v.Exists() {
		v.ForEach(func(key, value gjson.Result) bool {
			s.LanguageOverrides[key.String()] = value.String()
			return true
		})
	}
	if v := gjson.GetBytes(data, "highlight.colors"); v.Exists() {
		v.ForEach(func(key, value gjson.Result) bool {
			s.Colors[key.String()] = value.String()
			return true
		})
	}

	return s, nil
}

// Save writes settings to path, patching an existing file in place so
// unrelated keys are preserved.
func Save(path string, s Settings) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("config: read %s: %w", path, err)
		}
		data = []byte("{}")
	}

	patches := []struct {
		path  string
		value any
	}{
		{"highlight.enabled", s.Enabled},
		{"highlight.line_timeout_ms", s.LineTimeout.Milliseconds()},
		{"highlight.max_line_length", s.MaxLineLength},
		{"highlight.batch_size", s.BatchSize},
		{"highlight.lookahead", s.Lookahead},
		{"highlight.use_256_colors", s.Use256Colors},
	}
	for _, p := range patches {
		if data, err = sjson.SetBytes(data, p.path, p.value); err != nil {
			return fmt.Errorf("config: set %s: %w", p.path, err)
		}
	}
	for path2, lang := range s.LanguageOverrides {
		key := "highlight.language_overrides." + escapeKey(path2)
		if data, err = sjson.SetBytes(data, key, lang); err != nil {
			return fmt.Errorf("config: set override %s: %w", path2, err)
		}
	}
	for kind, hex := range s.Colors {
		key := "highlight.colors." + escapeKey(kind)
		if data, err = sjson.SetBytes(data, key, hex); err != nil {
			return fmt.Errorf("config: set color %s: %w", kind, err)
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// escapeKey escapes dots so file paths survive as single JSON object
// keys in sjson path syntax.
func escapeKey(key string) string {
	out := make([]byte, 0, len(key))
	for i := 0; i < len(key); i++ {
		if key[i] == '.' {
			out = append(out, '\\')
		}
		out = append(out, key[i])
	}
	return string(out)
}
