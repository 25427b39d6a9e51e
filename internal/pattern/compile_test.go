package pattern

import (
	"errors"
	"testing"

	"debase/internal/fileprop"
)

func mustCompile(t *testing.T, a *Arena, pat string, this *fileprop.Cache) ID {
	t.Helper()
	id, err := Compile(a, pat, this)
	if err != nil {
		t.Fatalf("Compile(%q) failed: %v", pat, err)
	}
	return id
}

func TestCompileKinds(t *testing.T) {
	tests := []struct {
		pat   string
		kind  Kind
		count int
	}{
		{"a::b::C", KindSimple, 3},
		{"foo", KindSimple, 1},
		{"@::a", KindSimple, 2},
		{"**::Z", KindLeadingGlob, 1},
		{"**::y::Z", KindLeadingGlob, 2},
		{"x::**::Z", KindButterflyGlob, 2},
		{"a::b::**::c::d", KindButterflyGlob, 4},
		{"a::/b+/::c", KindSingleSequence, 3},
		{"/I+/", KindRegex, 1},
		{"x::y::I{file.stem}", KindAnySequence, 3},
		{"I{file.stem}", KindSolo, 1},
		{"{file.stem}", KindSingleSequence, 1},
	}
	for _, tt := range tests {
		t.Run(tt.pat, func(t *testing.T) {
			a := NewArena(0)
			id := mustCompile(t, a, tt.pat, nil)
			if got := a.Kind(id); got != tt.kind {
				t.Errorf("kind = %s, want %s", got, tt.kind)
			}
			if got := a.RequiredCount(id); got != tt.count {
				t.Errorf("requiredCount = %d, want %d", got, tt.count)
			}
		})
	}
}

func TestCompileMultiGlobUnimplemented(t *testing.T) {
	a := NewArena(0)
	_, err := Compile(a, "a::**::b::**::c", nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsUnimplemented(err) {
		t.Errorf("multi-glob error should report as unimplemented, got %v", err)
	}
	var ce *CompileError
	if !errors.As(err, &ce) {
		t.Errorf("expected *CompileError, got %T", err)
	}
}

func TestCompileGlobAtEnd(t *testing.T) {
	// Lexes fine (glob position is a compile-time concern), then the
	// grouper rejects it.
	toks, err := Lex("::@::**", nil)
	if err != nil {
		t.Fatalf("Lex failed: %v", err)
	}
	a := NewArena(0)
	if _, err := CompileTokens(a, toks); err == nil {
		t.Fatal("glob at end of pattern must not compile")
	}
}

func TestCompileUnresolvedThis(t *testing.T) {
	a := NewArena(0)
	_, err := Compile(a, "x::{this.stem}", nil)
	if err == nil {
		t.Fatal("expected error for {this.*} without a config cache")
	}
	var ce *CompileError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *CompileError, got %T: %v", err, err)
	}
}

func TestCompileResolvedThis(t *testing.T) {
	a := NewArena(0)
	this := fileprop.NewCache("conf/Widgets.json")
	id := mustCompile(t, a, "x::{this.stem}", this)
	if got := a.Kind(id); got != KindSimple {
		t.Fatalf("kind = %s, want Simple", got)
	}
	if !a.Match(id, []string{"x", "Widgets"}) {
		t.Error("resolved {this.stem} should match the config stem literally")
	}
}

func TestCompileCacheIndependence(t *testing.T) {
	// Two compilations of the same text are independent nodes; caching
	// is the matcher's job, not the arena's.
	a := NewArena(0)
	id1 := mustCompile(t, a, "a::b", nil)
	id2 := mustCompile(t, a, "a::b", nil)
	if id1 == id2 {
		t.Error("arena must not deduplicate compilations")
	}
}

func TestCompileReplacerRegistration(t *testing.T) {
	a := NewArena(0)
	mustCompile(t, a, "x::I{file.stem}v", nil)
	if len(a.Replacers()) != 1 {
		t.Fatalf("got %d replacers, want 1", len(a.Replacers()))
	}
	target := a.Replacers()[0].Target()
	if a.Kind(target) != KindSolo {
		t.Errorf("replacer target kind = %s, want Solo", a.Kind(target))
	}
}

func TestCompiledString(t *testing.T) {
	a := NewArena(0)
	tests := []struct {
		pat  string
		want string
	}{
		{"a::b::C", "a::b::C"},
		{"**::y::Z", "**::y::Z"},
		{"x::**::Z", "x::**::Z"},
		{"/I+/", "/REGEX/"},
	}
	for _, tt := range tests {
		id := mustCompile(t, a, tt.pat, nil)
		if got := a.String(id); got != tt.want {
			t.Errorf("String(%q) = %q, want %q", tt.pat, got, tt.want)
		}
	}
}
