package abi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMSVCStructors(t *testing.T) {
	cls := MSVC()
	tests := []struct {
		sym   string
		kind  SymbolKind
		names []string
	}{
		{"??0Class@ns@x@@QAE@XZ", Constructor, []string{"x", "ns", "Class"}},
		{"??1Class@ns@x@@QAE@XZ", Destructor, []string{"x", "ns", "Class"}},
		{"??0CCScheduler@cocos2d@@QAE@XZ", Constructor, []string{"cocos2d", "CCScheduler"}},
		{"??1CCScheduler@cocos2d@@UAE@XZ", Destructor, []string{"cocos2d", "CCScheduler"}},
	}
	for _, tt := range tests {
		t.Run(tt.sym, func(t *testing.T) {
			f := cls.Classify(tt.sym)
			require.Equal(t, tt.kind, f.Kind)
			assert.Equal(t, tt.names, f.Names)
			// Plain ??0/??1 structors always participate in matching.
			assert.Equal(t, 1, f.Variant)
		})
	}
}

func TestMSVCBackReferences(t *testing.T) {
	// "name@0@" refers back to the first component seen.
	f := MSVC().Classify("??0name@0@@QAE@XZ")
	require.Equal(t, Constructor, f.Kind)
	assert.Equal(t, []string{"name", "name"}, f.Names)

	// Out-of-range back-references are malformed.
	f = MSVC().Classify("??0name@5@@QAE@XZ")
	assert.Equal(t, Invalid, f.Kind)
}

func TestMSVCAnonymousNamespace(t *testing.T) {
	f := MSVC().Classify("??1Detail@?A0x1b2c3d4e@@QAE@XZ")
	require.Equal(t, Destructor, f.Kind)
	assert.Equal(t, []string{AnonymousNamespace, "Detail"}, f.Names)
}

func TestMSVCNonStructors(t *testing.T) {
	cls := MSVC()
	tests := []struct {
		sym  string
		kind SymbolKind
	}{
		// Ordinary member functions.
		{"?update@CCScheduler@cocos2d@@UAEXM@Z", Ignorable},
		{"?foo@@YAXXZ", Ignorable},
		// Operators and compiler-generated specials.
		{"??4Class@@QAEAAV0@ABV0@@Z", Other},
		{"??_GClass@@UAEPAXI@Z", Other},
		{"??_EClass@@UAEPAXI@Z", Other},
		{"??_7Class@@6B@", Other},
		// Templates are out of scope.
		{"??$foo@H@@YAXXZ", Invalid},
		{"??0?$vector@H@std@@QAE@XZ", Invalid},
		// Data symbols and garbage.
		{"?var@@3HA", Invalid},
		{"", Invalid},
		{"_ZN1aC1Ev", Invalid},
		{"??0@@QAE@XZ", Invalid},
	}
	for _, tt := range tests {
		t.Run(tt.sym, func(t *testing.T) {
			f := cls.Classify(tt.sym)
			assert.Equal(t, tt.kind, f.Kind, "symbol %q", tt.sym)
		})
	}
}

func TestClassifierSelection(t *testing.T) {
	assert.Equal(t, "msvc", ForEnvironment("msvc").Name())
	assert.Equal(t, "msvc", ForTriple("x86_64-pc-windows-msvc").Name())
	assert.Equal(t, "msvc", ForTriple("x86_64-pc-windows").Name())
	assert.Equal(t, "msvc", ForTriple("i686-pc-win32").Name())
	assert.Equal(t, "itanium", ForTriple("i686-w64-windows-gnu").Name())
	assert.Equal(t, "itanium", ForTriple("x86_64-pc-windows-cygnus").Name())
	assert.Equal(t, "itanium", ForTriple("x86_64-unknown-linux-gnu").Name())
	assert.Equal(t, "itanium", ForTriple("arm64-apple-darwin").Name())
	assert.Equal(t, "itanium", ForTriple("").Name())
}

func TestMinGWStructorsClassifyAsItanium(t *testing.T) {
	cls := ForTriple("i686-w64-windows-gnu")
	assert.Equal(t, "itanium", cls.Name())

	f := cls.Classify("_ZN7cocos2d11CCSchedulerD2Ev")
	assert.Equal(t, Destructor, f.Kind)
	assert.Equal(t, 2, f.Variant)
	assert.Equal(t, []string{"cocos2d", "CCScheduler"}, f.Names)
}
