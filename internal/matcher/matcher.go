// Package matcher ties pattern compilation, per-file replacement
// binding and ABI classification into a single symbol matcher.
// Patterns come from a JSON or TOML config file; mangled names come in
// one at a time and match against the ctor or dtor pattern set.
package matcher

import (
	"fmt"
	"strings"

	"debase/internal/abi"
	"debase/internal/fileprop"
	"debase/internal/pattern"
)

// Mode selects how loading and binding failures are handled.
type Mode uint8

const (
	// ModeStrict fails on the first malformed config entry or binding
	// error.
	ModeStrict Mode = iota
	// ModePermissive skips malformed entries and lets failed bindings
	// disable only the affected pattern leaf.
	ModePermissive
)

func (m Mode) String() string {
	if m == ModePermissive {
		return "permissive"
	}
	return "strict"
}

// ParseMode parses a --mode flag value.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "strict":
		return ModeStrict, nil
	case "permissive":
		return ModePermissive, nil
	default:
		return ModeStrict, fmt.Errorf("unknown mode %q (want strict or permissive)", s)
	}
}

// SymbolMatcher owns the pattern arena and the ctor/dtor pattern sets.
// Compiled patterns live for the matcher's lifetime; rebinding a file
// mutates replacement-bearing leaves in place.
type SymbolMatcher struct {
	arena *pattern.Arena

	// cache deduplicates compiled patterns by their trimmed source
	// text. The two sets may share entries.
	cache map[string]pattern.ID
	ctors map[pattern.ID]struct{}
	dtors map[pattern.ID]struct{}

	classifier abi.Classifier
	mode       Mode

	// configProps resolves {this.*} replacements while patterns from a
	// config file compile. Nil outside config loading.
	configProps *fileprop.Cache
	configFile  string

	file string
}

// New builds an empty matcher classifying symbols with cls.
func New(cls abi.Classifier, mode Mode) *SymbolMatcher {
	return &SymbolMatcher{
		arena:      pattern.NewArena(16),
		cache:      make(map[string]pattern.ID),
		ctors:      make(map[pattern.ID]struct{}),
		dtors:      make(map[pattern.ID]struct{}),
		classifier: cls,
		mode:       mode,
	}
}

func (m *SymbolMatcher) Mode() Mode                 { return m.mode }
func (m *SymbolMatcher) Classifier() abi.Classifier { return m.classifier }
func (m *SymbolMatcher) File() string               { return m.file }
func (m *SymbolMatcher) ConfigFile() string         { return m.configFile }

// PatternCount reports how many distinct patterns have been compiled.
func (m *SymbolMatcher) PatternCount() int { return len(m.cache) }

// CompilePattern compiles pat, reusing the cached result when the same
// text was seen before.
func (m *SymbolMatcher) CompilePattern(pat string) (pattern.ID, error) {
	key := strings.TrimSpace(pat)
	if id, ok := m.cache[key]; ok {
		return id, nil
	}
	id, err := pattern.Compile(m.arena, key, m.configProps)
	if err != nil {
		return pattern.NoID, err
	}
	m.cache[key] = id
	return id, nil
}

// AddCtorPattern compiles pat into the constructor set.
func (m *SymbolMatcher) AddCtorPattern(pat string) error {
	id, err := m.CompilePattern(pat)
	if err != nil {
		return err
	}
	m.ctors[id] = struct{}{}
	return nil
}

// AddDtorPattern compiles pat into the destructor set.
func (m *SymbolMatcher) AddDtorPattern(pat string) error {
	id, err := m.CompilePattern(pat)
	if err != nil {
		return err
	}
	m.dtors[id] = struct{}{}
	return nil
}

// AddPattern compiles pat into both sets.
func (m *SymbolMatcher) AddPattern(pat string) error {
	id, err := m.CompilePattern(pat)
	if err != nil {
		return err
	}
	m.ctors[id] = struct{}{}
	m.dtors[id] = struct{}{}
	return nil
}

// SetFile binds path as the current file, re-resolving every {file.*}
// replacement. In strict mode the first binding failure is returned; in
// permissive mode failed leaves become unmatchable and nil is returned.
func (m *SymbolMatcher) SetFile(path string) error {
	m.file = path
	props := fileprop.NewCache(path)
	if m.mode == ModePermissive {
		m.arena.BindFilePermissive(props)
		return nil
	}
	return m.arena.BindFile(props)
}

// Match reports whether the classified features hit any pattern in the
// matching set. Non-structor features never match.
func (m *SymbolMatcher) Match(f *abi.Features) bool {
	if !f.IsCtorDtor() {
		return false
	}
	set := m.dtors
	if f.IsCtor() {
		set = m.ctors
	}
	for id := range set {
		if m.arena.Match(id, f.Names) {
			return true
		}
	}
	return false
}

// MatchSymbol classifies a mangled name and matches it. Variant 0 is
// the complete-object alias of a structor family; only the other
// variants denote the one physical function the transform targets, so
// variant 0 never matches here.
func (m *SymbolMatcher) MatchSymbol(mangled string) bool {
	f := m.classifier.Classify(mangled)
	if !f.IsCtorDtor() || f.Variant == 0 {
		return false
	}
	return m.Match(&f)
}

// Classify exposes the matcher's classifier.
func (m *SymbolMatcher) Classify(mangled string) abi.Features {
	return m.classifier.Classify(mangled)
}

// Patterns renders every cached pattern with its set membership, for
// diagnostics.
func (m *SymbolMatcher) Patterns() []PatternInfo {
	out := make([]PatternInfo, 0, len(m.cache))
	for src, id := range m.cache {
		_, ctor := m.ctors[id]
		_, dtor := m.dtors[id]
		out = append(out, PatternInfo{
			Source:   src,
			Compiled: m.arena.String(id),
			Ctor:     ctor,
			Dtor:     dtor,
		})
	}
	return out
}

// PatternInfo describes one cached pattern.
type PatternInfo struct {
	Source   string
	Compiled string
	Ctor     bool
	Dtor     bool
}
