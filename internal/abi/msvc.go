package abi

import "strings"

// msvcClassifier handles names mangled under the Microsoft ABI. MSVC
// emits qualified-name components innermost-first; the parser collects
// them in mangled order and reverses at the end so Names reads in
// source order.
type msvcClassifier struct{}

// MSVC returns the classifier for the Microsoft ABI.
func MSVC() Classifier { return msvcClassifier{} }

func (msvcClassifier) Name() string { return "msvc" }

func (msvcClassifier) Classify(sym string) Features {
	f := NewFeatures()
	p := msvcParser{rest: sym}
	p.classify(&f)
	if p.bad {
		f.Reset()
	}
	return f
}

type msvcParser struct {
	rest string
	bad  bool

	// backrefs holds the first ten distinct name components in order
	// of appearance; digits 0-9 in a qualified name refer back to them.
	backrefs []string
}

func (p *msvcParser) fail() { p.bad = true }

func (p *msvcParser) peek() byte {
	if len(p.rest) == 0 {
		return 0
	}
	return p.rest[0]
}

func (p *msvcParser) consume(prefix string) bool {
	if strings.HasPrefix(p.rest, prefix) {
		p.rest = p.rest[len(prefix):]
		return true
	}
	return false
}

func (p *msvcParser) classify(f *Features) {
	if !strings.HasPrefix(p.rest, "?") {
		p.fail()
		return
	}
	switch {
	case p.consume("??$"):
		// Template function.
		p.fail()
	case p.consume("??0"):
		p.structor(f, Constructor)
	case p.consume("??1"):
		p.structor(f, Destructor)
	case p.consume("??_"):
		// Extended special names: vftables, deleting-destructor
		// closures, dynamic initializers. Compiler-generated, never a
		// plain structor.
		f.Kind = Other
	case p.consume("??"):
		// Operator functions (??4 assignment, ??2 new, ...).
		f.Kind = Other
	default:
		p.consume("?")
		p.plainFunction(f)
	}
}

// structor parses the qualified name after ??0 or ??1. The first
// component in mangled order is the class itself.
func (p *msvcParser) structor(f *Features, kind SymbolKind) {
	names, ok := p.qualifiedName()
	if !ok {
		p.fail()
		return
	}
	f.Names = names
	f.Kind = kind
	// Plain ??0/??1 structors carry no closure suffix; deleting
	// destructors mangle through ??_G and ??_E instead.
	f.Variant = 1
}

// plainFunction parses an ordinary "?name@scope@@..." symbol.
func (p *msvcParser) plainFunction(f *Features) {
	names, ok := p.qualifiedName()
	if !ok {
		p.fail()
		return
	}
	// The byte after the terminating @@ distinguishes functions from
	// data symbols. Variables encode with a leading storage-class
	// digit and are of no interest here.
	if isDigitByte(p.peek()) {
		p.fail()
		return
	}
	f.Names = names
	f.Kind = Ignorable
}

// qualifiedName parses @-terminated components up to the closing @@ and
// returns them in source order.
func (p *msvcParser) qualifiedName() ([]string, bool) {
	var parts []string
	for {
		if p.consume("@") {
			break
		}
		name, ok := p.nameComponent()
		if !ok {
			return nil, false
		}
		parts = append(parts, name)
	}
	if len(parts) == 0 {
		return nil, false
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return parts, true
}

func (p *msvcParser) nameComponent() (string, bool) {
	c := p.peek()
	switch {
	case c == 0:
		return "", false
	case isDigitByte(c):
		p.rest = p.rest[1:]
		i := int(c - '0')
		if i >= len(p.backrefs) {
			return "", false
		}
		return p.backrefs[i], true
	case strings.HasPrefix(p.rest, "?$"):
		// Template specialization component.
		return "", false
	case strings.HasPrefix(p.rest, "?A"):
		// Anonymous namespace: ?A0x<hash>@. The hash is irrelevant;
		// every anonymous namespace maps to the same particle.
		end := strings.IndexByte(p.rest, '@')
		if end < 0 {
			return "", false
		}
		p.rest = p.rest[end+1:]
		p.remember(AnonymousNamespace)
		return AnonymousNamespace, true
	default:
		end := strings.IndexByte(p.rest, '@')
		if end <= 0 {
			return "", false
		}
		name := p.rest[:end]
		p.rest = p.rest[end+1:]
		p.remember(name)
		return name, true
	}
}

func (p *msvcParser) remember(name string) {
	if len(p.backrefs) < 10 {
		p.backrefs = append(p.backrefs, name)
	}
}
