package pattern

// CharKind classifies one byte of a compound pattern component.
type CharKind uint8

const (
	CharUnsupported CharKind = iota
	CharEnd
	CharWhitespace // space, tab, newline
	CharIdentifier // [0-9a-zA-Z_$]
	CharAnonymous  // @
	CharWildcard   // .
	CharZeroOrOne  // ?
	CharKleene     // *
	CharKleenePlus // +
	CharRange      // -
	CharNot        // ^
	CharEscape     // backslash
	CharOpenParen  // (
	CharCloseParen // )
	CharOpenBrace  // [
	CharCloseBrace // ]
	CharOpenCurly  // {
	CharCloseCurly // }
)

// isIdentByte reports whether b may appear in a C++ identifier.
func isIdentByte(b byte) bool {
	return b == '_' || b == '$' ||
		(b >= '0' && b <= '9') ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z')
}

// isIdentString reports whether every byte of s is an identifier byte.
// The empty string counts as an identifier, matching how lexed components
// are pre-trimmed before classification.
func isIdentString(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isIdentByte(s[i]) {
			return false
		}
	}
	return true
}

func isDigitByte(b byte) bool { return b >= '0' && b <= '9' }
func isLowerByte(b byte) bool { return b >= 'a' && b <= 'z' }
func isUpperByte(b byte) bool { return b >= 'A' && b <= 'Z' }

func isSpaceByte(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	default:
		return false
	}
}

func isPrintByte(b byte) bool { return b >= 0x20 && b < 0x7f }

// classifyChar returns the CharKind of a single byte.
func classifyChar(b byte) CharKind {
	switch b {
	case '@':
		return CharAnonymous
	case '.':
		return CharWildcard
	case '?':
		return CharZeroOrOne
	case '*':
		return CharKleene
	case '+':
		return CharKleenePlus
	case '-':
		return CharRange
	case '^':
		return CharNot
	case '(':
		return CharOpenParen
	case ')':
		return CharCloseParen
	case '[':
		return CharOpenBrace
	case ']':
		return CharCloseBrace
	case '{':
		return CharOpenCurly
	case '}':
		return CharCloseCurly
	case '\\':
		return CharEscape
	case 0:
		return CharEnd
	default:
		switch {
		case isIdentByte(b):
			return CharIdentifier
		case isSpaceByte(b):
			return CharWhitespace
		default:
			return CharUnsupported
		}
	}
}
