package abi

import "strings"

// Classifier classifies a single mangled symbol name. Implementations
// never return an error: anything unparseable classifies as Invalid.
type Classifier interface {
	// Classify parses sym and returns its features. A result with
	// Kind == Invalid carries no usable names.
	Classify(sym string) Features

	// Name identifies the ABI for diagnostics.
	Name() string
}

// ForEnvironment picks the classifier for a target environment string
// or triple. An msvc environment gets the Microsoft classifier, as does
// a Windows OS with no environment component after it; MinGW and Cygwin
// targets mangle with the Itanium ABI like everyone else.
func ForEnvironment(env string) Classifier {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(env)), "-")
	last := parts[len(parts)-1]
	if strings.Contains(last, "msvc") {
		return MSVC()
	}
	windows := false
	for _, p := range parts {
		if strings.Contains(p, "windows") || strings.Contains(p, "win32") {
			windows = true
			break
		}
	}
	if !windows {
		return Itanium()
	}
	switch last {
	case "gnu", "gnueabi", "gnueabihf", "cygnus", "cygwin", "itanium":
		return Itanium()
	}
	return MSVC()
}

// ForTriple picks the classifier for a full target triple such as
// "x86_64-pc-windows-msvc" or "arm64-apple-darwin".
func ForTriple(triple string) Classifier {
	return ForEnvironment(triple)
}
