package abi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItaniumStructors(t *testing.T) {
	cls := Itanium()
	tests := []struct {
		sym     string
		kind    SymbolKind
		variant int
		names   []string
	}{
		{"_ZN1x2ns5ClassC1Ev", Constructor, 1, []string{"x", "ns", "Class"}},
		{"_ZN1x2ns5ClassC2Ev", Constructor, 2, []string{"x", "ns", "Class"}},
		{"_ZN1x2ns5ClassC0Ev", Constructor, 0, []string{"x", "ns", "Class"}},
		{"_ZN1x2ns5ClassD1Ev", Destructor, 1, []string{"x", "ns", "Class"}},
		{"_ZN1x2ns5ClassD2Ev", Destructor, 2, []string{"x", "ns", "Class"}},
		{"_ZN1x2ns5ClassD0Ev", Destructor, 0, []string{"x", "ns", "Class"}},
		{"_ZN7cocos2d11CCSchedulerC1Ev", Constructor, 1, []string{"cocos2d", "CCScheduler"}},
		{"_ZN7cocos2d11CCSchedulerD2Ev", Destructor, 2, []string{"cocos2d", "CCScheduler"}},
	}
	for _, tt := range tests {
		t.Run(tt.sym, func(t *testing.T) {
			f := cls.Classify(tt.sym)
			require.Equal(t, tt.kind, f.Kind)
			assert.Equal(t, tt.variant, f.Variant)
			assert.Equal(t, tt.names, f.Names)
			assert.Equal(t, tt.names[len(tt.names)-1], f.BaseName())
			assert.Equal(t, tt.names[:len(tt.names)-1], f.NestedNames())
		})
	}
}

func TestItaniumNestedNameFeatures(t *testing.T) {
	f := Itanium().Classify("_ZN1x2ns5ClassC1Ev")
	require.True(t, f.IsCtor())
	assert.Equal(t, []string{"x", "ns"}, f.NestedNames())
	assert.Equal(t, "Class", f.BaseName())
}

func TestItaniumAnonymousNamespace(t *testing.T) {
	f := Itanium().Classify("_ZN12_GLOBAL__N_16DetailD2Ev")
	require.Equal(t, Destructor, f.Kind)
	assert.Equal(t, []string{AnonymousNamespace, "Detail"}, f.Names)
}

func TestItaniumStd(t *testing.T) {
	f := Itanium().Classify("_ZNSt6vectorD2Ev")
	require.Equal(t, Destructor, f.Kind)
	assert.Equal(t, []string{"std", "vector"}, f.Names)
}

func TestItaniumNonStructors(t *testing.T) {
	cls := Itanium()
	tests := []struct {
		sym  string
		kind SymbolKind
	}{
		// Plain functions are never structors.
		{"_Z3foov", Ignorable},
		{"_ZN1a1b3fooEv", Ignorable},
		// Operators and special names.
		{"_ZN1a1XplERKS_", Other},
		{"_ZTV1X", Other},
		{"_ZTI1X", Other},
		{"_ZGVZ3foovE1x", Other},
		// Templates and substitutions need the full demangler.
		{"_ZN1xI1yE3fooEv", Invalid},
		{"_ZN1aS_3fooEv", Invalid},
		// Garbage.
		{"", Invalid},
		{"not_mangled", Invalid},
		{"_Z", Invalid},
		{"_ZN1a", Invalid},
		{"_ZN1aC9Ev", Invalid},
		{"_ZN1aD5Ev", Invalid},
	}
	for _, tt := range tests {
		t.Run(tt.sym, func(t *testing.T) {
			f := cls.Classify(tt.sym)
			assert.Equal(t, tt.kind, f.Kind, "symbol %q", tt.sym)
			assert.False(t, f.IsCtorDtor())
		})
	}
}
