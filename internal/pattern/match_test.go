package pattern

import (
	"testing"

	"debase/internal/fileprop"
)

func TestMatchSimple(t *testing.T) {
	a := NewArena(0)
	id := mustCompile(t, a, "x::y::Z", nil)
	if !a.Match(id, []string{"x", "y", "Z"}) {
		t.Error("exact literal list must match")
	}
	if a.Match(id, []string{"x", "y", "W"}) {
		t.Error("differing base name must not match")
	}
	if a.Match(id, []string{"x", "y"}) || a.Match(id, []string{"x", "y", "Z", "W"}) {
		t.Error("length mismatch must not match")
	}
	if a.Match(id, nil) {
		t.Error("empty name list must never match")
	}
}

func TestMatchLeadingGlob(t *testing.T) {
	a := NewArena(0)
	id := mustCompile(t, a, "**::Z", nil)
	if !a.Match(id, []string{"a", "b", "Z"}) {
		t.Error("glob must absorb leading components")
	}
	if !a.Match(id, []string{"Z"}) {
		t.Error("glob must match zero components")
	}
	if a.Match(id, []string{"Y"}) {
		t.Error("trailing mismatch must fail")
	}
}

func TestMatchButterflyGlob(t *testing.T) {
	a := NewArena(0)
	id := mustCompile(t, a, "x::**::Z", nil)
	if !a.Match(id, []string{"x", "m", "n", "Z"}) {
		t.Error("glob must absorb middle components")
	}
	if !a.Match(id, []string{"x", "Z"}) {
		t.Error("glob must match zero middle components")
	}
	if a.Match(id, []string{"w", "m", "Z"}) {
		t.Error("leading mismatch must fail")
	}
	if a.Match(id, []string{"x"}) {
		t.Error("too few components must fail")
	}
}

func TestMatchReplacementBinding(t *testing.T) {
	a := NewArena(0)
	id := mustCompile(t, a, "I{file.stem}", nil)

	// Unbound replacement leaves never match.
	if a.Match(id, []string{"IFoo"}) {
		t.Error("unbound leaf must not match")
	}

	if err := a.BindFile(fileprop.NewCache("Foo.cpp")); err != nil {
		t.Fatalf("BindFile failed: %v", err)
	}
	if !a.Match(id, []string{"IFoo"}) {
		t.Error("bound pattern must match the substituted literal")
	}
	if a.Match(id, []string{"IBar"}) {
		t.Error("bound pattern must not match other stems")
	}

	// Rebinding the same file is pure.
	if err := a.BindFile(fileprop.NewCache("Foo.cpp")); err != nil {
		t.Fatalf("rebind failed: %v", err)
	}
	if !a.Match(id, []string{"IFoo"}) {
		t.Error("rebinding the same file must not change behavior")
	}
}

// Mirrors the end-to-end matcher exercise: three patterns sharing one
// arena, rebound from one file to another.
func TestMatchRebindAcrossFiles(t *testing.T) {
	a := NewArena(0)
	p0 := mustCompile(t, a, "x::/y+/::z::I?{file.stem}", nil)
	p1 := mustCompile(t, a, "**::{file.stem}", nil)
	p2 := mustCompile(t, a, "[[:lower:]]+::**::{file.stem}", nil)

	if err := a.BindFile(fileprop.NewCache("bindings/CCScheduler.cpp")); err != nil {
		t.Fatalf("BindFile failed: %v", err)
	}
	if !a.Match(p0, []string{"x", "y", "z", "ICCScheduler"}) {
		t.Error("p0 should match ICCScheduler")
	}
	if !a.Match(p1, []string{"cocos2d", "CCScheduler"}) {
		t.Error("p1 should match CCScheduler")
	}
	if !a.Match(p2, []string{"x", "y", "z", "CCScheduler"}) {
		t.Error("p2 should match CCScheduler")
	}

	if err := a.BindFile(fileprop.NewCache("bindings/CCLightning.cpp")); err != nil {
		t.Fatalf("rebind failed: %v", err)
	}
	if !a.Match(p0, []string{"x", "yyy", "z", "CCLightning"}) {
		t.Error("p0 should match CCLightning after rebinding")
	}
	if !a.Match(p1, []string{"cocos2d", "CCLightning"}) {
		t.Error("p1 should match CCLightning after rebinding")
	}
	if !a.Match(p2, []string{"cocos2d", "CCLightning"}) {
		t.Error("p2 should match CCLightning after rebinding")
	}
	if a.Match(p1, []string{"cocos2d", "CCScheduler"}) {
		t.Error("stale binding must not survive a rebind")
	}
}

func TestMatchCompoundRegex(t *testing.T) {
	a := NewArena(0)
	id := mustCompile(t, a, "x::/y+/::z", nil)
	if !a.Match(id, []string{"x", "yyyy", "z"}) {
		t.Error("y+ should match a run of ys")
	}
	if a.Match(id, []string{"x", "q", "z"}) {
		t.Error("y+ must not match q")
	}
}

func TestMatchAnonymous(t *testing.T) {
	a := NewArena(0)
	id := mustCompile(t, a, "@::Detail", nil)
	if !a.Match(id, []string{"@", "Detail"}) {
		t.Error("@ must match the anonymous-namespace particle")
	}
	if a.Match(id, []string{"ns", "Detail"}) {
		t.Error("@ must not match a named namespace")
	}
}

func TestMatchPermissiveDisable(t *testing.T) {
	a := NewArena(0)
	// A stem containing "**" rebuilds into a nested repetition, which
	// fails to recompile and trips the permissive path.
	id := mustCompile(t, a, "I{file.stem}+", nil)

	skipped := a.BindFilePermissive(fileprop.NewCache("bindings/C**C.cpp"))
	if len(skipped) != 1 {
		t.Fatalf("got %d swallowed errors, want 1", len(skipped))
	}
	if a.Match(id, []string{"IC**C"}) {
		t.Error("disabled leaf must not match")
	}

	// The dead flag is sticky: a later good binding must not revive it.
	if err := a.BindFile(fileprop.NewCache("bindings/Good.cpp")); err != nil {
		t.Fatalf("BindFile failed: %v", err)
	}
	if a.Match(id, []string{"IGood"}) {
		t.Error("leaf disabled by a permissive failure stays unmatchable")
	}
}
