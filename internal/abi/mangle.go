package abi

import (
	"fmt"
	"strings"
)

// MangleBaseDtor turns a plain qualified name such as "a::b::C" into
// the Itanium base-object destructor symbol "_ZN1a1b1CD2Ev". Only
// simple identifier components are supported; anything resembling a
// pattern or template is rejected.
func MangleBaseDtor(qualified string) (string, error) {
	if strings.ContainsAny(qualified, "?*+@$[]<>") {
		return "", fmt.Errorf("unimplemented identifier in %q", qualified)
	}
	var parts []string
	for _, p := range strings.Split(qualified, "::") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		parts = append(parts, p)
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("empty qualified name %q", qualified)
	}
	var sb strings.Builder
	sb.WriteString("_ZN")
	for _, p := range parts {
		if p == "std" {
			sb.WriteString("St")
			continue
		}
		fmt.Fprintf(&sb, "%d%s", len(p), p)
	}
	sb.WriteString("D2Ev")
	return sb.String(), nil
}
