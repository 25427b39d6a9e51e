package pattern

import (
	"fmt"
	"regexp"

	"fortio.org/safecast"
)

// Kind discriminates compiled pattern nodes.
type Kind uint8

const (
	KindUnknown        Kind = iota
	KindSimple              // eg. `x::y::Z`
	KindLeadingGlob         // eg. `**::y::Z`
	KindButterflyGlob       // eg. `x::**::Z`
	KindSingleSequence      // ordered single-component matchers
	KindAnySequence         // concatenation of sub-patterns, no glob
	KindForwarding          // single-component pattern behind a multi contract
	KindSolo                // one literal component
	KindRegex               // one regex-lite component
)

func (k Kind) String() string {
	switch k {
	case KindSimple:
		return "Simple"
	case KindLeadingGlob:
		return "LeadingGlob"
	case KindButterflyGlob:
		return "ButterflyGlob"
	case KindSingleSequence:
		return "SingleSequence"
	case KindAnySequence:
		return "AnySequence"
	case KindForwarding:
		return "Forwarding"
	case KindSolo:
		return "Solo"
	case KindRegex:
		return "Regex"
	default:
		return "Unknown"
	}
}

// ID indexes a node inside an Arena. The zero value is NoID.
type ID uint32

// NoID is the invalid pattern ID.
const NoID ID = 0

// IsValid reports whether the ID refers to an allocated node.
func (id ID) IsValid() bool { return id != NoID }

// node is the closed tagged variant behind every compiled pattern. Only
// the fields relevant to its kind are populated.
type node struct {
	kind  Kind
	count uint32 // required component count (exact or minimum)

	literals []string // Simple
	elems    []ID     // SingleSequence, AnySequence
	leading  ID       // ButterflyGlob
	trailing ID       // LeadingGlob, ButterflyGlob
	inner    ID       // Forwarding

	// Solo/Regex leaf state. Leaves reachable through a Replacer are
	// rewritten in place on every file binding.
	text  string
	re    *regexp.Regexp
	bound bool
	dead  bool // permissive bind failure: permanently unmatchable
}

// Arena owns every pattern node and replacer for the lifetime of its
// matcher. Nodes cross-reference each other by ID, never by pointer, so
// in-place leaf mutation can never dangle.
type Arena struct {
	nodes     []node
	replacers []*Replacer
}

// NewArena creates an arena with an optional capacity hint.
func NewArena(capacity uint32) *Arena {
	if capacity == 0 {
		capacity = 16
	}
	return &Arena{
		nodes: make([]node, 1, capacity+1), // index 0 reserved for NoID
	}
}

func (a *Arena) alloc(n node) ID {
	value, err := safecast.Conv[uint32](len(a.nodes))
	if err != nil {
		panic(fmt.Errorf("pattern arena overflow: %w", err))
	}
	a.nodes = append(a.nodes, n)
	return ID(value)
}

func (a *Arena) get(id ID) *node {
	if !id.IsValid() || int(id) >= len(a.nodes) {
		return nil
	}
	return &a.nodes[id]
}

// Kind returns the node kind behind id.
func (a *Arena) Kind(id ID) Kind {
	n := a.get(id)
	if n == nil {
		return KindUnknown
	}
	return n.kind
}

// RequiredCount returns the exact or minimum number of qualified-name
// components the pattern can match.
func (a *Arena) RequiredCount(id ID) int {
	n := a.get(id)
	if n == nil {
		return 0
	}
	return int(n.count)
}

// Len reports the number of allocated nodes excluding the sentinel.
func (a *Arena) Len() int { return len(a.nodes) - 1 }

// Replacers returns the pending replacers registered during compilation.
func (a *Arena) Replacers() []*Replacer { return a.replacers }

func isLeafKind(k Kind) bool { return k == KindSolo || k == KindRegex }
