package pattern

import "strings"

// String renders a compiled pattern back into a `::`-joined source-like
// form. Regex leaves render as an opaque marker since their translated
// expression no longer resembles the input.
func (a *Arena) String(id ID) string {
	var b strings.Builder
	a.print(&b, id)
	return b.String()
}

func (a *Arena) print(b *strings.Builder, id ID) {
	n := a.get(id)
	if n == nil {
		return
	}
	switch n.kind {
	case KindSimple:
		for i, lit := range n.literals {
			if i > 0 {
				b.WriteString("::")
			}
			b.WriteString(lit)
		}
	case KindLeadingGlob:
		b.WriteString("**::")
		a.print(b, n.trailing)
	case KindButterflyGlob:
		a.print(b, n.leading)
		b.WriteString("::**::")
		a.print(b, n.trailing)
	case KindSingleSequence, KindAnySequence:
		for i, elem := range n.elems {
			if i > 0 {
				b.WriteString("::")
			}
			a.print(b, elem)
		}
	case KindForwarding:
		a.print(b, n.inner)
	case KindSolo:
		b.WriteString(n.text)
	case KindRegex:
		b.WriteString("/REGEX/")
	}
}

// FormatTokens renders a lexed token stream with replacement argument
// groups parenthesized after their head token.
func FormatTokens(toks []Token) string {
	if len(toks) == 0 {
		return "<empty>"
	}
	var b strings.Builder
	skip := 0
	for i, tok := range toks {
		if skip > 0 {
			skip--
			b.WriteString(tok.String())
			if skip == 0 {
				b.WriteByte(')')
			} else {
				b.WriteString(", ")
			}
			continue
		}
		if i > 0 {
			b.WriteString(" :: ")
		}
		b.WriteString(tok.String())
		if tok.Trailing > 0 {
			skip = int(tok.Trailing)
			b.WriteString(" (")
		}
	}
	return b.String()
}
