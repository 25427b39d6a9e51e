package pattern

import (
	"strconv"
	"strings"

	"fortio.org/safecast"

	"debase/internal/fileprop"
)

// compoundLexer handles one component that mixes identifier text with the
// restricted regex flavor and/or embedded `{obj.member}` replacements,
// eg. `{this.stem}Class`, `I?Foo`, `[A-Z]*{file.stem}+[^123]`.
//
// The regex flavor is deliberately small: it only needs to describe C++
// identifiers. Grouping is not supported. Late-bound replacements make the
// component's pattern recompile for every file, so they carry overhead.
type compoundLexer struct {
	lx       *lexer
	curr     string
	at       int
	lastRead CharKind

	hasRegex bool
	hasRepl  bool

	// Ordered, deduplicated `{obj.member}` replacements referenced by
	// ordinal `{N}` placeholders in buf.
	replKeys []string
	replToks []Token

	buf strings.Builder
}

func (cl *compoundLexer) lex() error {
	if isIdentString(cl.lx.curr) {
		// Simple case of something like /abc/.
		cl.lx.emit(TokSimple)
		return nil
	}

	cl.curr = cl.lx.curr
	cl.lastRead = CharUnsupported
	if err := cl.lexImpl(); err != nil {
		return err
	}

	if !cl.hasRegex && !cl.hasRepl {
		// Only inlined {this.*} text: drop the grouping parentheses and
		// degrade to a plain literal.
		cl.lx.toks = append(cl.lx.toks, Token{
			Kind:     TokSimple,
			Text:     stripParens(cl.buf.String()),
			Modified: true,
		})
		cl.lx.curr = ""
		return nil
	}
	return cl.finish()
}

func (cl *compoundLexer) lexImpl() error {
	for cl.at < len(cl.curr) {
		switch k := cl.at0(); k {
		case CharOpenCurly:
			if err := cl.handleReplacement(); err != nil {
				return err
			}
		case CharIdentifier:
			cl.buf.WriteByte(cl.curr[cl.at])
			cl.at++
			cl.lastRead = k
		default:
			if err := cl.dispatchRegex(k); err != nil {
				return err
			}
		}
	}
	return nil
}

// finish emits the head token plus its trailing replacement arguments.
func (cl *compoundLexer) finish() error {
	kind := TokSimpleFmt
	if cl.hasRegex {
		kind = TokRegex
		if cl.hasRepl {
			kind = TokRegexFmt
		}
	}
	trailing, err := safecast.Conv[uint8](len(cl.replToks))
	if err != nil {
		return cl.report("too many trailing arguments")
	}
	cl.lx.toks = append(cl.lx.toks, Token{
		Kind:     kind,
		Text:     cl.buf.String(),
		Trailing: trailing,
		Grouped:  cl.hasRepl,
	})
	if cl.hasRepl {
		// End the compound group on the last argument.
		cl.replToks[len(cl.replToks)-1].Grouped = false
		cl.lx.toks = append(cl.lx.toks, cl.replToks...)
	}
	cl.lx.curr = ""
	return nil
}

func (cl *compoundLexer) handleReplacement() error {
	rel := strings.IndexByte(cl.curr[cl.at+1:], '}')
	if rel < 0 {
		return cl.report("unterminated replacement block")
	}
	body := strings.TrimSpace(cl.curr[cl.at+1 : cl.at+1+rel])
	end := cl.at + 1 + rel

	if cl.lx.this != nil && hasFoldPrefix(body, "this") {
		_, member, _ := strings.Cut(body, ".")
		canon, ok := fileprop.CanonicalMember(member)
		if !ok {
			return cl.report("invalid property name")
		}
		prop, err := cl.lx.this.Property(canon)
		if err != nil {
			return err
		}
		if !isIdentString(prop) {
			return cl.report("replacement contains invalid characters")
		}
		// Inline the property, parenthesized so quantifiers bind to it.
		cl.buf.WriteByte('(')
		cl.buf.WriteString(prop)
		cl.buf.WriteByte(')')
		cl.at = end + 1
		cl.lastRead = CharIdentifier
		return nil
	}

	cl.hasRepl = true
	ord := -1
	for i, key := range cl.replKeys {
		if key == body {
			ord = i
			break
		}
	}
	if ord < 0 {
		tok, err := cl.lx.replacementToken(body)
		if err != nil {
			return err
		}
		tok.Grouped = true
		cl.replKeys = append(cl.replKeys, body)
		cl.replToks = append(cl.replToks, tok)
		ord = len(cl.replToks) - 1
	}
	if ord > MaxTrailing {
		return cl.report("too many trailing arguments: " + strconv.Itoa(ord))
	}
	cl.buf.WriteByte('{')
	cl.buf.WriteString(strconv.Itoa(ord))
	cl.buf.WriteByte('}')

	cl.at = end + 1
	cl.lastRead = CharCloseCurly
	return nil
}

func (cl *compoundLexer) dispatchRegex(k CharKind) error {
	cl.hasRegex = true
	switch k {
	case CharWildcard:
		cl.writeEscapeClass('i')
		cl.at++
		cl.lastRead = CharWildcard
		return nil
	case CharZeroOrOne, CharKleene, CharKleenePlus:
		return cl.handleQuantifier(k)
	case CharEscape:
		return cl.handleEscape()
	case CharOpenBrace:
		return cl.handleCharacterClass()
	case CharOpenParen:
		return cl.report("match groups currently unsupported")
	default:
		return cl.regexError(k)
	}
}

func (cl *compoundLexer) handleQuantifier(k CharKind) error {
	if cl.lastRead == CharUnsupported {
		return cl.reportf("'%c' found at the start of pattern", cl.curr[cl.at])
	}
	switch cl.lastRead {
	case CharIdentifier, CharWildcard, CharCloseParen, CharCloseBrace:
		// Regular regex stuff.
	case CharZeroOrOne, CharKleene, CharKleenePlus:
		// Things like +* are invalid, but lazy `*?` is still allowed.
		if k != CharZeroOrOne {
			if k == CharKleene && cl.lastRead == CharKleene {
				return cl.report("glob not allowed in compound expressions")
			}
			return cl.report("found multiple quantifiers in a row")
		}
		// Check for *??.
		if cl.next() == CharZeroOrOne {
			return cl.report("found multiple quantifiers in a row")
		}
	case CharCloseCurly:
		// Quantified replacement, eg. {file.stem}?.
	default:
		return cl.regexError(k)
	}
	cl.buf.WriteByte(cl.curr[cl.at])
	cl.at++
	cl.lastRead = k
	return nil
}

func (cl *compoundLexer) writeEscapeClass(c byte) {
	switch c {
	case 'a':
		cl.buf.WriteString("[A-Za-z]")
	case 'd':
		cl.buf.WriteString("[0-9]")
	case 'w':
		cl.buf.WriteString("[A-Za-z0-9_]")
	case 'i':
		// Any identifier character.
		cl.buf.WriteString("[A-Za-z0-9_$]")
	}
}

func (cl *compoundLexer) handleEscape() error {
	if cl.next() == CharEnd {
		return cl.report("character must follow escape sequence")
	}
	cl.at++
	c := cl.curr[cl.at]
	switch c {
	case 'a', 'd', 'w', 'i':
		cl.writeEscapeClass(c)
	case 'n', 'r', 't', '0':
		return cl.report("whitespace escapes are not allowed")
	default:
		if isPrintByte(c) {
			return cl.reportf("invalid escape sequence '\\%c'", c)
		}
		return cl.report("invalid escape sequence")
	}
	cl.at++
	cl.lastRead = CharCloseBrace
	return nil
}

func (cl *compoundLexer) handleCharacterClass() error {
	end := cl.at + 1
	inPosix := false
	for end < len(cl.curr) {
		if cl.curr[end] == ']' {
			if !inPosix {
				break
			}
			inPosix = false
		} else if cl.curr[end] == '[' {
			if inPosix {
				return cl.report("invalid character class nesting")
			}
			inPosix = true
		}
		end++
	}
	if end >= len(cl.curr) {
		return cl.report("unterminated character class")
	}

	cc := cl.curr[cl.at : end+1]
	if err := cl.validateCharacterClass(cc); err != nil {
		return err
	}
	cl.buf.WriteString(cc)
	cl.at = end + 1
	cl.lastRead = CharCloseBrace
	return nil
}

func (cl *compoundLexer) validateCharacterClass(cc string) error {
	// Reject empty and bare negation classes up front.
	if len(cc) <= 2 {
		return cl.ccReport(cc, "class")
	}

	start := 1
	if cc[1] == '-' {
		return cl.ccReport(cc, "'-' found at start class")
	} else if cc[1] == '^' {
		if len(cc) == 3 {
			return cl.ccReport(cc, "'^' found in class")
		}
		start = 2
	}

	for i, e := start, len(cc)-1; i < e; i++ {
		if cc[i] == '-' {
			if i == start {
				return cl.ccReport(cc, "'-' found at end of class")
			}
			if !isIdentByte(cc[i+1]) {
				return cl.ccReport(cc, "'"+string(cc[i+1])+"' in case range")
			}
			if !validCaseRange(cc[i-1], cc[i+1]) {
				return lexErr(cc, "invalid case range '"+cc[i-1:i+2]+"'")
			}
			i++
			continue
		}

		// POSIX metaclass.
		if cc[i] == '[' && cc[i+1] == ':' {
			if i+5 >= e {
				return lexErr(cc, "invalid POSIX metaclass")
			}
			j := i + 2
			for cc[j] != ':' {
				if j+1 >= e {
					return lexErr(cc, "unterminated POSIX metaclass")
				}
				if !isLowerByte(cc[j]) {
					return lexErr(cc, "invalid character in POSIX metaclass")
				}
				j++
			}
			if cc[j+1] != ']' {
				return lexErr(cc, "unterminated POSIX metaclass")
			}
			name := cc[i+2 : j]
			if !validPOSIXMetaclass(name) {
				return lexErr(name, "unknown POSIX metaclass '"+name+"'")
			}
			i += 2 + len(name) + 1
			continue
		}

		if !isIdentByte(cc[i]) {
			return cl.ccReport(cc, "'"+string(cc[i])+"' found in case range")
		}
	}
	return nil
}

// validCaseRange ensures a range stays inside one character category, so
// things like [0-z] cannot sneak punctuation in.
func validCaseRange(start, end byte) bool {
	switch {
	case isUpperByte(start):
		return isUpperByte(end)
	case isDigitByte(start):
		return isDigitByte(end)
	case isLowerByte(start):
		return isLowerByte(end)
	default:
		return false
	}
}

func validPOSIXMetaclass(name string) bool {
	switch name {
	case "upper", "lower", "alpha", "digit", "alnum", "xdigit":
		return true
	default:
		return false
	}
}

func (cl *compoundLexer) regexError(k CharKind) error {
	c := cl.curr[cl.at]
	switch k {
	case CharOpenCurly:
		return cl.report("quantifiers not allowed in this regex flavor")
	case CharRange, CharNot:
		return cl.reportf("character '%c' found outside character class", c)
	case CharCloseParen, CharCloseBrace, CharCloseCurly:
		return cl.reportf("unopened '%c'", c)
	case CharWhitespace:
		return cl.report("whitespace found in pattern")
	default:
		if isPrintByte(c) {
			return cl.reportf("invalid character '%c' in pattern", c)
		}
		return cl.report("invalid character in pattern")
	}
}

func (cl *compoundLexer) at0() CharKind {
	if cl.at >= len(cl.curr) {
		return CharEnd
	}
	return classifyChar(cl.curr[cl.at])
}

func (cl *compoundLexer) next() CharKind {
	if cl.at+1 >= len(cl.curr) {
		return CharEnd
	}
	return classifyChar(cl.curr[cl.at+1])
}

func (cl *compoundLexer) report(reason string) error {
	return lexErr(cl.lx.curr, reason)
}

func (cl *compoundLexer) reportf(format string, args ...any) error {
	return lexErrf(cl.lx.curr, format, args...)
}

func (cl *compoundLexer) ccReport(cc, reason string) error {
	return lexErr(cc, "invalid character "+reason)
}

func hasFoldPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

// stripParens removes the grouping parentheses wrapped around inlined
// {this.*} properties.
func stripParens(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '(' || s[i] == ')' {
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
