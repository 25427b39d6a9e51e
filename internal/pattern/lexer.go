package pattern

import (
	"strings"

	"debase/internal/fileprop"
)

// lexer splits pattern text on `::` and emits tokens. Components that are
// neither plain identifiers, standalone particles (`@`, `**`), nor whole
// replacement blocks are handed to the compound lexer.
type lexer struct {
	toks []Token
	rest string
	curr string
	this *fileprop.Cache // resolves {this.*} immediately when non-nil
}

// Lex tokenizes one pattern. When this is non-nil, `{this.*}` and
// `{self.*}` replacements resolve against it during lexing; `{file.*}`
// replacements always stay late-bound.
func Lex(pat string, this *fileprop.Cache) ([]Token, error) {
	pat = strings.TrimSpace(pat)
	pat = strings.TrimPrefix(pat, "::")
	// Symbols can never be empty.
	if pat == "" {
		return nil, lexErr(pat, "cannot be empty")
	}

	lx := &lexer{rest: pat, this: this}
	if err := lx.lex(pat); err != nil {
		return nil, err
	}
	return lx.toks, nil
}

func (lx *lexer) lex(pat string) error {
	// Pre-parsing validation.
	if strings.HasSuffix(pat, "::") {
		return lexErr(pat, "cannot end with scope resolution")
	}
	if strings.HasSuffix(pat, "@") {
		return lexErr(pat, "cannot end with anonymous namespace")
	}

	if err := lx.lexComponents(); err != nil {
		return err
	}

	// Post-parsing validation.
	if len(lx.toks) == 1 {
		switch lx.toks[0].Kind {
		case TokGlob:
			return lexErr(pat, "must contain non-glob particle")
		case TokAnonymous:
			return lexErr(pat, "must contain non-anonymous particle")
		}
	}
	return nil
}

func (lx *lexer) lexComponents() error {
	for !lx.done() {
		// Grab as many plain identifier components as possible.
		if err := lx.handleSimple(); err != nil {
			return err
		}
		if lx.done() {
			return nil
		}

		switch lx.curr {
		case "@":
			lx.emit(TokAnonymous)
			continue
		case "**":
			// Coalesce runs of globs into one token.
			if !lx.lastWasGlob() {
				lx.emit(TokGlob)
			}
			lx.curr = ""
			continue
		}

		if isReplacement(lx.curr) {
			body := lx.curr[1 : len(lx.curr)-1]
			tok, err := lx.replacementToken(body)
			if err != nil {
				return err
			}
			lx.toks = append(lx.toks, tok)
			lx.curr = ""
			continue
		}

		if err := lx.handleCompound(); err != nil {
			return err
		}
	}
	return nil
}

// handleSimple consumes consecutive all-identifier components.
func (lx *lexer) handleSimple() error {
	for {
		if !lx.loadNext() {
			return nil
		}
		if lx.curr == "" {
			return lexErr(lx.curr, "contains empty token")
		}
		if !isIdentString(lx.curr) {
			// Some other component kind, dealt with by the caller.
			return nil
		}
		if isDigitByte(lx.curr[0]) {
			return lexErr(lx.curr, "identifiers cannot start with a number")
		}
		lx.emit(TokSimple)
	}
}

// replacementToken parses a `{obj.member}` body (braces already removed).
// `{this.*}` resolves to a plain Simple token when a config cache is
// available, otherwise it stays a This token that compilation will reject.
func (lx *lexer) replacementToken(body string) (Token, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return Token{}, lexErr(lx.curr, "empty replacement body")
	}

	obj, member, _ := strings.Cut(body, ".")
	obj = strings.TrimRight(obj, " \t")
	member = strings.TrimLeft(member, " \t")

	var kind TokenKind
	switch {
	case strings.EqualFold(obj, "this") || strings.EqualFold(obj, "self"):
		kind = TokThis
	case strings.EqualFold(obj, "file") || strings.EqualFold(obj, "input"):
		kind = TokLateBind
	default:
		return Token{}, lexErr(lx.curr, "unknown replacement object")
	}

	canon, ok := fileprop.CanonicalMember(member)
	if !ok {
		return Token{}, lexErr(lx.curr, "unknown replacement member")
	}

	if kind == TokThis && lx.this != nil {
		prop, err := lx.this.Property(canon)
		if err != nil {
			return Token{}, err
		}
		if !isIdentString(prop) {
			return Token{}, lexErr(lx.curr, "replacement contains invalid characters")
		}
		// Direct replacement via {this.prop}.
		return Token{Kind: TokSimple, Text: prop, Modified: true}, nil
	}
	return Token{Kind: kind, Text: canon}, nil
}

// isReplacement reports whether a whole component is one `{...}` block.
// Mixed forms like `{this.stem}{file.stem}` must go to the compound lexer.
func isReplacement(s string) bool {
	if len(s) < 2 || s[0] != '{' || s[len(s)-1] != '}' {
		return false
	}
	return strings.Count(s, "{") == 1
}

func (lx *lexer) handleCompound() error {
	if rest, ok := strings.CutPrefix(lx.curr, "/"); ok {
		rest, ok = strings.CutSuffix(rest, "/")
		if !ok {
			return lexErr(lx.curr, "unknown sequence in compound.")
		}
		lx.curr = rest
	}
	cl := &compoundLexer{lx: lx}
	return cl.lex()
}

// loadNext cuts the next `::`-separated component into curr, trimming
// surrounding whitespace. Returns false once the input is exhausted.
func (lx *lexer) loadNext() bool {
	if lx.rest == "" {
		lx.curr = ""
		return false
	}
	curr, rest, _ := strings.Cut(lx.rest, "::")
	lx.curr = strings.TrimSpace(curr)
	lx.rest = rest
	return true
}

func (lx *lexer) done() bool { return lx.rest == "" && lx.curr == "" }

func (lx *lexer) lastWasGlob() bool {
	return len(lx.toks) > 0 && lx.toks[len(lx.toks)-1].Kind == TokGlob
}

func (lx *lexer) emit(k TokenKind) {
	lx.toks = append(lx.toks, Token{Kind: k, Text: lx.curr})
	lx.curr = ""
}
