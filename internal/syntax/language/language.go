// Package language provides language detection and per-language
// configuration for syntax highlighting.
package language

// Language identifies a language supported by the highlighting engine.
type Language uint8

// Supported languages. PlainText is the zero value so an unknown or
// undetected file degrades to no highlighting.
const (
	PlainText Language = iota
	Rust
	JavaScript
	TypeScript
	Python
	JSON
	HTML
	CSS
	Markdown
	YAML
	TOML
	SQL
)

// String returns the display name of the language.
func (l Language) String() string {
	switch l {
	case Rust:
		return "Rust"
	case JavaScript:
		return "JavaScript"
	case TypeScript:
		return "TypeScript"
	case Python:
		return "Python"
	case JSON:
		return "JSON"
	case HTML:
		return "HTML"
	case CSS:
		return "CSS"
	case Markdown:
		return "Markdown"
	case YAML:
		return "YAML"
	case TOML:
		return "TOML"
	case SQL:
		return "SQL"
	case PlainText:
		return "Plain Text"
	default:
		return "Plain Text"
	}
}

// PrimaryExtension returns the canonical file extension (without the dot).
func (l Language) PrimaryExtension() string {
	switch l {
	case Rust:
		return "rs"
	case JavaScript:
		return "js"
	case TypeScript:
		return "ts"
	case Python:
		return "py"
	case JSON:
		return "json"
	case HTML:
		return "html"
	case CSS:
		return "css"
	case Markdown:
		return "md"
	case YAML:
		return "yaml"
	case TOML:
		return "toml"
	case SQL:
		return "sql"
	default:
		return "txt"
	}
}

// IsTier1 reports whether the language ships a full rule set in-engine.
func (l Language) IsTier1() bool {
	switch l {
	case Rust, JavaScript, TypeScript, Python, JSON:
		return true
	default:
		return false
	}
}

// IsTier2 reports whether the language ships basic rules only.
func (l Language) IsTier2() bool {
	switch l {
	case HTML, CSS, Markdown, YAML, TOML, SQL:
		return true
	default:
		return false
	}
}

// Parse resolves a language from its display name or primary extension,
// case-insensitively. Used when reading language names from settings.
func Parse(name string) (Language, bool) {
	lower := make([]byte, len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		lower[i] = c
	}
	switch string(lower) {
	case "rust", "rs":
		return Rust, true
	case "javascript", "js":
		return JavaScript, true
	case "typescript", "ts":
		return TypeScript, true
	case "python", "py":
		return Python, true
	case "json":
		return JSON, true
	case "html":
		return HTML, true
	case "css":
		return CSS, true
	case "markdown", "md":
		return Markdown, true
	case "yaml":
		return YAML, true
	case "toml":
		return TOML, true
	case "sql":
		return SQL, true
	case "plain text", "plaintext", "txt":
		return PlainText, true
	default:
		return PlainText, false
	}
}

// Config holds per-language highlighting configuration.
type Config struct {
	// Language this configuration applies to.
	Language Language

	// Enabled reports whether highlighting is on for this language.
	Enabled bool

	// SupportsMultiline reports whether multi-line constructs (block
	// comments, triple-quoted strings) are resolved for this language.
	SupportsMultiline bool

	// TabWidth is used for indentation-sensitive languages.
	TabWidth int
}

// NewConfig returns the default configuration for a language.
func NewConfig(lang Language) Config {
	return Config{
		Language:          lang,
		Enabled:           true,
		SupportsMultiline: true,
		TabWidth:          4,
	}
}

// DisabledConfig returns a configuration with highlighting turned off.
func DisabledConfig(lang Language) Config {
	cfg := NewConfig(lang)
	cfg.Enabled = false
	return cfg
}
