// Package pattern implements the symbol-pattern language: lexing pattern
// text into tokens, grouping tokens, compiling groups into a tree of
// pattern nodes, and matching compiled patterns against the qualified-name
// components of a classified symbol.
package pattern

import "fmt"

// TokenKind discriminates pattern tokens.
type TokenKind uint8

const (
	TokUnknown   TokenKind = iota
	TokSimple              // plain literal component, eg. `x` in `x::y::Z`
	TokAnonymous           // `@`
	TokGlob                // `**`
	TokThis                // `{this.*}` left unresolved (no config file bound)
	TokLateBind            // `{file.*}`, resolved per matched file
	TokSimpleFmt           // `I{file.stem}v{...}` => `I{0}v{1}` + args
	TokRegex               // eg. `I*X+0?[...]`
	TokRegexFmt            // `I?{file.stem}+` => `I?({0})+` + args
)

// MaxTrailing caps the number of distinct replacement arguments a format
// token may carry.
const MaxTrailing = 7

// Token is one lexed particle of a pattern. A non-zero Trailing count
// means the next Trailing tokens are this token's replacement arguments
// and immediately follow it in the stream.
type Token struct {
	Kind     TokenKind
	Text     string
	Trailing uint8
	Grouped  bool
	Modified bool
}

// IsLiteral reports whether the token matches text verbatim.
func (t Token) IsLiteral() bool {
	return t.Kind == TokSimple || t.Kind == TokAnonymous
}

func (k TokenKind) String() string {
	switch k {
	case TokSimple:
		return "Simple"
	case TokAnonymous:
		return "Anonymous"
	case TokGlob:
		return "Glob"
	case TokThis:
		return "This"
	case TokLateBind:
		return "LateBind"
	case TokSimpleFmt:
		return "SimpleFmt"
	case TokRegex:
		return "Regex"
	case TokRegexFmt:
		return "RegexFmt"
	default:
		return "Unknown"
	}
}

func (t Token) String() string {
	if t.Kind == TokGlob {
		return "<Glob:'**'>"
	}
	return fmt.Sprintf("<%s:'%s'>", t.Kind, t.Text)
}
