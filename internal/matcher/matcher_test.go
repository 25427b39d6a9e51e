package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"debase/internal/abi"
)

func TestMatchSymbolVariants(t *testing.T) {
	m := New(abi.Itanium(), ModeStrict)
	require.NoError(t, m.AddPattern("cocos2d::CCScheduler"))

	// Base-object and deleting variants participate; the variant-0
	// alias never does.
	assert.True(t, m.MatchSymbol("_ZN7cocos2d11CCSchedulerC1Ev"))
	assert.True(t, m.MatchSymbol("_ZN7cocos2d11CCSchedulerC2Ev"))
	assert.False(t, m.MatchSymbol("_ZN7cocos2d11CCSchedulerC0Ev"))
	assert.True(t, m.MatchSymbol("_ZN7cocos2d11CCSchedulerD1Ev"))
	assert.False(t, m.MatchSymbol("_ZN7cocos2d11CCSchedulerD0Ev"))

	// Non-structors never match, whatever the patterns say.
	assert.False(t, m.MatchSymbol("_ZN7cocos2d11CCScheduler6updateEv"))
	assert.False(t, m.MatchSymbol("garbage"))
}

func TestCtorDtorSetsAreIndependent(t *testing.T) {
	m := New(abi.Itanium(), ModeStrict)
	require.NoError(t, m.AddCtorPattern("a::OnlyCtor"))
	require.NoError(t, m.AddDtorPattern("a::OnlyDtor"))

	assert.True(t, m.MatchSymbol("_ZN1a8OnlyCtorC1Ev"))
	assert.False(t, m.MatchSymbol("_ZN1a8OnlyCtorD1Ev"))
	assert.False(t, m.MatchSymbol("_ZN1a8OnlyDtorC1Ev"))
	assert.True(t, m.MatchSymbol("_ZN1a8OnlyDtorD1Ev"))
}

func TestPatternCacheDeduplicates(t *testing.T) {
	m := New(abi.Itanium(), ModeStrict)
	require.NoError(t, m.AddCtorPattern("x::Y"))
	require.NoError(t, m.AddDtorPattern("  x::Y  "))
	require.NoError(t, m.AddPattern("x::Y"))
	assert.Equal(t, 1, m.PatternCount())

	infos := m.Patterns()
	require.Len(t, infos, 1)
	assert.True(t, infos[0].Ctor)
	assert.True(t, infos[0].Dtor)
	assert.Equal(t, "x::Y", infos[0].Compiled)
}

func TestMatchWithFileBinding(t *testing.T) {
	m := New(abi.Itanium(), ModeStrict)
	require.NoError(t, m.AddPattern("**::{file.stem}"))

	require.NoError(t, m.SetFile("bindings/CCScheduler.cpp"))
	assert.True(t, m.MatchSymbol("_ZN7cocos2d11CCSchedulerD1Ev"))
	assert.False(t, m.MatchSymbol("_ZN7cocos2d11CCLightningD1Ev"))

	require.NoError(t, m.SetFile("bindings/CCLightning.cpp"))
	assert.False(t, m.MatchSymbol("_ZN7cocos2d11CCSchedulerD1Ev"))
	assert.True(t, m.MatchSymbol("_ZN7cocos2d11CCLightningD1Ev"))
}

func TestMatchAnonymousNamespace(t *testing.T) {
	m := New(abi.Itanium(), ModeStrict)
	require.NoError(t, m.AddPattern("@::Detail"))
	assert.True(t, m.MatchSymbol("_ZN12_GLOBAL__N_16DetailD2Ev"))
	assert.False(t, m.MatchSymbol("_ZN2ns6DetailD2Ev"))
}

func TestMatchMSVC(t *testing.T) {
	m := New(abi.MSVC(), ModeStrict)
	require.NoError(t, m.AddPattern("cocos2d::CCScheduler"))
	assert.True(t, m.MatchSymbol("??0CCScheduler@cocos2d@@QAE@XZ"))
	assert.True(t, m.MatchSymbol("??1CCScheduler@cocos2d@@UAE@XZ"))
	assert.False(t, m.MatchSymbol("?update@CCScheduler@cocos2d@@UAEXM@Z"))
}

func TestCompileErrorsSurface(t *testing.T) {
	m := New(abi.Itanium(), ModeStrict)
	assert.Error(t, m.AddPattern("x::"))
	assert.Error(t, m.AddPattern("a::**::b::**::c"))
	assert.Error(t, m.AddPattern("x::{this.stem}"))
	assert.Equal(t, 0, m.PatternCount())
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{
		"":           ModeStrict,
		"strict":     ModeStrict,
		"Permissive": ModePermissive,
		" STRICT ":   ModeStrict,
	} {
		got, err := ParseMode(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseMode("lenient")
	assert.Error(t, err)
}
