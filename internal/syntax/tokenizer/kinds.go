package tokenizer

import "github.com/alecthomas/chroma/v2"

// kindOf maps a chroma token type to the engine's kind vocabulary. The
// vocabulary is open; the color mapper renders unknown kinds in the
// default color, so this table only needs to cover the conventional core.
// Plain text maps to the empty kind.
func kindOf(t chroma.TokenType) string {
	switch t {
	case chroma.KeywordConstant:
		// true/false/null in JSON and friends.
		return "boolean"
	case chroma.KeywordType:
		return "type"
	case chroma.NameBuiltin, chroma.NameBuiltinPseudo:
		return "builtin"
	case chroma.NameDecorator:
		return "decorator"
	case chroma.NameAttribute:
		return "attribute"
	case chroma.NameFunction, chroma.NameFunctionMagic:
		return "function"
	case chroma.NameClass, chroma.NameNamespace, chroma.NameException:
		return "type"
	case chroma.NameConstant:
		return "constant"
	case chroma.NameVariable, chroma.NameVariableClass, chroma.NameVariableGlobal,
		chroma.NameVariableInstance, chroma.NameVariableMagic:
		return "variable"
	case chroma.LiteralStringRegex:
		return "regex"
	case chroma.NameTag:
		return "keyword"
	}

	switch {
	case t.InCategory(chroma.Keyword):
		return "keyword"
	case t.InSubCategory(chroma.LiteralString):
		return "string"
	case t.InSubCategory(chroma.LiteralNumber):
		return "number"
	case t.InCategory(chroma.Comment):
		return "comment"
	case t.InCategory(chroma.Operator):
		return "operator"
	case t.InCategory(chroma.Punctuation):
		return "punctuation"
	case t == chroma.Error || t.InCategory(chroma.Error):
		return "error"
	default:
		return ""
	}
}
