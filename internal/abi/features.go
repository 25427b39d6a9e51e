// Package abi classifies mangled C++ symbol names. Two independent
// classifiers cover the Itanium/GNU and Microsoft ABIs; both demangle
// just enough of a name to decide whether it is a constructor or
// destructor and to recover its qualified-name components.
package abi

// SymbolKind is the classification of one mangled name.
type SymbolKind uint8

const (
	// Invalid marks names that could not be parsed or use unsupported
	// constructs (templates, substitutions). Callers skip these.
	Invalid SymbolKind = iota
	Constructor
	Destructor
	// Other marks special or compiler-generated functions (operators,
	// thunks, vtables, deleting-destructor closures).
	Other
	// Ignorable marks ordinary named functions that can never be a
	// structor.
	Ignorable
)

func (k SymbolKind) String() string {
	switch k {
	case Constructor:
		return "constructor"
	case Destructor:
		return "destructor"
	case Other:
		return "other"
	case Ignorable:
		return "ignorable"
	default:
		return "invalid"
	}
}

// Features are the useful parts of a classified function symbol. Names
// holds the qualified-name components in source order; for a structor the
// final component is the class name itself.
type Features struct {
	Kind    SymbolKind
	Variant int
	Names   []string
}

// NewFeatures returns an empty, invalid feature set.
func NewFeatures() Features {
	return Features{Kind: Invalid, Variant: -1}
}

// BaseName returns the final name component.
func (f *Features) BaseName() string {
	if len(f.Names) == 0 {
		return ""
	}
	return f.Names[len(f.Names)-1]
}

// NestedNames returns the enclosing namespace/class path without the
// base name.
func (f *Features) NestedNames() []string {
	if len(f.Names) == 0 {
		return nil
	}
	return f.Names[:len(f.Names)-1]
}

func (f *Features) IsCtor() bool     { return f.Kind == Constructor }
func (f *Features) IsDtor() bool     { return f.Kind == Destructor }
func (f *Features) IsCtorDtor() bool { return f.IsCtor() || f.IsDtor() }

// Reset clears the feature set back to invalid.
func (f *Features) Reset() {
	f.Kind = Invalid
	f.Variant = -1
	f.Names = f.Names[:0]
}

// AnonymousNamespace is the qualified-name particle every anonymous
// namespace component demangles to. It matches the `@` pattern token.
const AnonymousNamespace = "@"
