package tokenizer

import (
	"github.com/alecthomas/chroma/v2"

	"github.com/dshills/radiant/internal/syntax/language"
)

// newManualLexer builds a rule set by hand for languages the backend has
// no built-in rules for. Tier 1 languages get full rule sets; everything
// else gets basic string and line-comment rules.
func newManualLexer(lang language.Language) (chroma.Lexer, error) {
	cfg := &chroma.Config{
		Name:      lang.String(),
		Filenames: []string{"*." + lang.PrimaryExtension()},
	}
	return chroma.NewLexer(cfg, func() chroma.Rules {
		switch lang {
		case language.Rust:
			return rustRules()
		case language.JavaScript, language.TypeScript:
			return javascriptRules()
		case language.Python:
			return pythonRules()
		case language.JSON:
			return jsonRules()
		default:
			return basicRules()
		}
	})
}

func rustRules() chroma.Rules {
	return chroma.Rules{
		"root": {
			{`//.*?$`, chroma.CommentSingle, nil},
			{`/\*`, chroma.CommentMultiline, chroma.Push("comment")},
			{`#\[.*?\]`, chroma.NameAttribute, nil},
			{`\b(as|async|await|break|const|continue|crate|dyn|else|enum|extern|false|fn|for|if|impl|in|let|loop|match|mod|move|mut|pub|ref|return|self|Self|static|struct|super|trait|true|type|unsafe|use|where|while)\b`, chroma.Keyword, nil},
			{`\b(bool|char|f32|f64|i8|i16|i32|i64|i128|isize|str|u8|u16|u32|u64|u128|usize|String|Vec|Option|Result|Box|Rc|Arc)\b`, chroma.KeywordType, nil},
			{`r#*".*?"#*`, chroma.LiteralString, nil},
			{`"(\\.|[^"\\])*"`, chroma.LiteralString, nil},
			{`'(\\.|[^'\\])'`, chroma.LiteralString, nil},
			{`\b\d+(\.\d+)?([eE][+-]?\d+)?(f32|f64|i8|i16|i32|i64|i128|isize|u8|u16|u32|u64|u128|usize)?\b`, chroma.LiteralNumber, nil},
			{`\s+`, chroma.Text, nil},
			{`.`, chroma.Text, nil},
		},
		"comment": {
			{`\*/`, chroma.CommentMultiline, chroma.Pop(1)},
			{`[^*]+`, chroma.CommentMultiline, nil},
			{`\*`, chroma.CommentMultiline, nil},
		},
	}
}

func javascriptRules() chroma.Rules {
	return chroma.Rules{
		"root": {
			{`//.*?$`, chroma.CommentSingle, nil},
			{`/\*`, chroma.CommentMultiline, chroma.Push("comment")},
			{`\b(async|await|break|case|catch|class|const|continue|debugger|default|delete|do|else|export|extends|finally|for|function|if|import|in|instanceof|let|new|of|return|super|switch|this|throw|try|typeof|var|void|while|with|yield)\b`, chroma.Keyword, nil},
			{`\b(Array|Boolean|Date|Error|Function|JSON|Map|Math|Number|Object|Promise|RegExp|Set|String|Symbol|console|document|window)\b`, chroma.NameBuiltin, nil},
			{"`(\\\\.|[^`\\\\])*`", chroma.LiteralString, nil},
			{`"(\\.|[^"\\])*"`, chroma.LiteralString, nil},
			{`'(\\.|[^'\\])*'`, chroma.LiteralString, nil},
			{`/[^/\n]+/[gimuy]*`, chroma.LiteralStringRegex, nil},
			{`\b\d+(\.\d+)?([eE][+-]?\d+)?\b`, chroma.LiteralNumber, nil},
			{`\s+`, chroma.Text, nil},
			{`.`, chroma.Text, nil},
		},
		"comment": {
			{`\*/`, chroma.CommentMultiline, chroma.Pop(1)},
			{`[^*]+`, chroma.CommentMultiline, nil},
			{`\*`, chroma.CommentMultiline, nil},
		},
	}
}

func pythonRules() chroma.Rules {
	return chroma.Rules{
		"root": {
			{`#.*?$`, chroma.CommentSingle, nil},
			{`\b(and|as|assert|async|await|break|class|continue|def|del|elif|else|except|False|finally|for|from|global|if|import|in|is|lambda|None|nonlocal|not|or|pass|raise|return|True|try|while|with|yield)\b`, chroma.Keyword, nil},
			{`\b(abs|all|any|ascii|bin|bool|breakpoint|bytearray|bytes|callable|chr|classmethod|compile|complex|delattr|dict|dir|divmod|enumerate|eval|exec|filter|float|format|frozenset|getattr|globals|hasattr|hash|help|hex|id|input|int|isinstance|issubclass|iter|len|list|locals|map|max|memoryview|min|next|object|oct|open|ord|pow|print|property|range|repr|reversed|round|set|setattr|slice|sorted|staticmethod|str|sum|super|tuple|type|vars|zip)\b`, chroma.NameBuiltin, nil},
			{`@\w+`, chroma.NameDecorator, nil},
			// Triple-quoted strings before single-quoted forms.
			{`"""`, chroma.LiteralString, chroma.Push("tdqs")},
			{`'''`, chroma.LiteralString, chroma.Push("tsqs")},
			{`[rf]"[^"]*"|[rf]'[^']*'`, chroma.LiteralString, nil},
			{`"(\\.|[^"\\])*"`, chroma.LiteralString, nil},
			{`'(\\.|[^'\\])*'`, chroma.LiteralString, nil},
			{`\b0[xX][0-9a-fA-F]+\b`, chroma.LiteralNumber, nil},
			{`\b0[bB][01]+\b`, chroma.LiteralNumber, nil},
			{`\b0[oO][0-7]+\b`, chroma.LiteralNumber, nil},
			{`\b\d+(\.\d+)?([eE][+-]?\d+)?\b`, chroma.LiteralNumber, nil},
			{`\s+`, chroma.Text, nil},
			{`.`, chroma.Text, nil},
		},
		"tdqs": {
			{`"""`, chroma.LiteralString, chroma.Pop(1)},
			{`[^"]+`, chroma.LiteralString, nil},
			{`"`, chroma.LiteralString, nil},
		},
		"tsqs": {
			{`'''`, chroma.LiteralString, chroma.Pop(1)},
			{`[^']+`, chroma.LiteralString, nil},
			{`'`, chroma.LiteralString, nil},
		},
	}
}

func jsonRules() chroma.Rules {
	return chroma.Rules{
		"root": {
			{`"(\\.|[^"\\])*"`, chroma.LiteralString, nil},
			{`-?\b\d+(\.\d+)?([eE][+-]?\d+)?\b`, chroma.LiteralNumber, nil},
			{`\b(true|false|null)\b`, chroma.KeywordConstant, nil},
			{`[{}\[\],:]`, chroma.Punctuation, nil},
			{`\s+`, chroma.Text, nil},
			{`.`, chroma.Text, nil},
		},
	}
}

// basicRules covers Tier 2 and unknown languages: strings and line
// comments only.
func basicRules() chroma.Rules {
	return chroma.Rules{
		"root": {
			{`"(\\.|[^"\\])*"`, chroma.LiteralString, nil},
			{`//.*?$|#.*?$`, chroma.CommentSingle, nil},
			{`\s+`, chroma.Text, nil},
			{`.`, chroma.Text, nil},
		},
	}
}
