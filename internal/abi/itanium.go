package abi

import "strings"

// itaniumClassifier handles names mangled under the Itanium C++ ABI
// (GCC, Clang). It parses only the name part of the encoding; parameter
// types after the name are ignored.
type itaniumClassifier struct{}

// Itanium returns the classifier for the Itanium/GNU ABI.
func Itanium() Classifier { return itaniumClassifier{} }

func (itaniumClassifier) Name() string { return "itanium" }

// gnuAnonymousNamespace is the component GCC and Clang emit for an
// anonymous namespace.
const gnuAnonymousNamespace = "_GLOBAL__N_1"

func (itaniumClassifier) Classify(sym string) Features {
	f := NewFeatures()
	p := itaniumParser{rest: sym}
	p.classify(&f)
	if p.bad {
		f.Reset()
	}
	return f
}

type itaniumParser struct {
	rest string
	bad  bool
}

func (p *itaniumParser) fail() {
	p.bad = true
}

func (p *itaniumParser) peek() byte {
	if len(p.rest) == 0 {
		return 0
	}
	return p.rest[0]
}

func (p *itaniumParser) advance() byte {
	c := p.peek()
	if len(p.rest) > 0 {
		p.rest = p.rest[1:]
	}
	return c
}

func (p *itaniumParser) consume(prefix string) bool {
	if strings.HasPrefix(p.rest, prefix) {
		p.rest = p.rest[len(prefix):]
		return true
	}
	return false
}

func (p *itaniumParser) classify(f *Features) {
	if !p.consume("_Z") {
		// Not a C++ mangled name at all.
		p.fail()
		return
	}
	switch p.peek() {
	case 'T', 'G':
		// Virtual tables, typeinfo, thunks, guard variables and the
		// rest of the <special-name> productions. None is a structor.
		f.Kind = Other
		return
	case 'N':
		p.advance()
		p.nestedName(f)
	case 'L':
		p.advance()
		p.unscopedName(f)
	default:
		p.unscopedName(f)
	}
}

// unscopedName handles names outside any namespace or class scope. A
// structor cannot appear here.
func (p *itaniumParser) unscopedName(f *Features) {
	if p.consume("St") {
		f.Names = append(f.Names, "std")
	}
	switch {
	case isDigitByte(p.peek()):
		name, ok := p.sourceName()
		if !ok {
			p.fail()
			return
		}
		f.Names = append(f.Names, name)
		f.Kind = Ignorable
	case p.operatorName() != "":
		f.Kind = Other
	default:
		p.fail()
	}
}

// nestedName parses <nested-name>: CV/ref qualifiers, then a prefix of
// name components, terminated by E. Constructors and destructors only
// ever appear as the last component of a nested name.
func (p *itaniumParser) nestedName(f *Features) {
	for strings.IndexByte("rVKRO", p.peek()) >= 0 {
		p.advance()
	}
	for {
		c := p.peek()
		switch {
		case c == 0:
			p.fail()
			return
		case c == 'E':
			p.advance()
			if len(f.Names) == 0 {
				p.fail()
				return
			}
			// Ended on a plain source name: an ordinary member
			// function.
			f.Kind = Ignorable
			return
		case isDigitByte(c):
			name, ok := p.sourceName()
			if !ok {
				p.fail()
				return
			}
			if name == gnuAnonymousNamespace {
				name = AnonymousNamespace
			}
			f.Names = append(f.Names, name)
		case c == 'C':
			p.advance()
			p.structor(f, Constructor)
			return
		case c == 'D':
			p.advance()
			p.structor(f, Destructor)
			return
		case c == 'S':
			p.advance()
			if p.advance() != 't' {
				// Substitution back-references need the full
				// demangler's substitution table.
				p.fail()
				return
			}
			f.Names = append(f.Names, "std")
		case c == 'I':
			// Template arguments.
			p.fail()
			return
		case c == 'L':
			p.advance()
		default:
			if p.operatorName() != "" {
				if p.advance() != 'E' {
					p.fail()
					return
				}
				f.Kind = Other
				return
			}
			p.fail()
			return
		}
	}
}

// structor parses the variant digit after C or D and finishes the
// nested name. The enclosing class is the component parsed just before,
// so Names is already complete.
func (p *itaniumParser) structor(f *Features, kind SymbolKind) {
	d := p.advance()
	switch kind {
	case Constructor:
		if d < '0' || d > '3' {
			p.fail()
			return
		}
	case Destructor:
		if d < '0' || d > '2' {
			p.fail()
			return
		}
	}
	if len(f.Names) == 0 {
		p.fail()
		return
	}
	if p.advance() != 'E' {
		p.fail()
		return
	}
	f.Kind = kind
	f.Variant = int(d - '0')
}

// sourceName parses <source-name>: a decimal length followed by that
// many identifier bytes.
func (p *itaniumParser) sourceName() (string, bool) {
	n := 0
	for isDigitByte(p.peek()) {
		n = n*10 + int(p.advance()-'0')
		if n > len(p.rest) {
			return "", false
		}
	}
	if n == 0 || n > len(p.rest) {
		return "", false
	}
	name := p.rest[:n]
	p.rest = p.rest[n:]
	return name, true
}

// itaniumOperators are the two-letter <operator-name> codes.
var itaniumOperators = map[string]string{
	"nw": "new", "na": "new[]", "dl": "delete", "da": "delete[]",
	"ps": "+", "ng": "-", "ad": "&", "de": "*", "co": "~",
	"pl": "+", "mi": "-", "ml": "*", "dv": "/", "rm": "%",
	"an": "&", "or": "|", "eo": "^", "aS": "=", "pL": "+=",
	"mI": "-=", "mL": "*=", "dV": "/=", "rM": "%=", "aN": "&=",
	"oR": "|=", "eO": "^=", "ls": "<<", "rs": ">>", "lS": "<<=",
	"rS": ">>=", "eq": "==", "ne": "!=", "lt": "<", "gt": ">",
	"le": "<=", "ge": ">=", "nt": "!", "aa": "&&", "oo": "||",
	"pp": "++", "mm": "--", "cm": ",", "pm": "->*", "pt": "->",
	"cl": "()", "ix": "[]", "qu": "?", "cv": "cast", "ti": "typeid",
	"te": "typeid", "ss": "<=>",
}

// operatorName consumes a two-letter operator code if one is next and
// returns its spelling, or "" without consuming anything.
func (p *itaniumParser) operatorName() string {
	if len(p.rest) < 2 {
		return ""
	}
	op, ok := itaniumOperators[p.rest[:2]]
	if !ok {
		return ""
	}
	p.rest = p.rest[2:]
	return op
}

func isDigitByte(c byte) bool { return c >= '0' && c <= '9' }
