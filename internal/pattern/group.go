package pattern

// TokenGroup is a window into a token stream: a maximal run of tokens
// between glob separators. A glob opens the group but is excluded from
// its window; a trailing-bearing token always forms its own group
// spanning itself plus its arguments.
type TokenGroup struct {
	Toks        []Token
	AllSimple   bool
	Replacement bool
	LeadingGlob bool
}

// splitGroups partitions toks into groups and returns the number of glob
// separators seen. Groups partition the stream without gaps or overlaps.
func splitGroups(toks []Token) ([]TokenGroup, int, error) {
	var groups []TokenGroup
	globs := 0

	i := 0
	for i < len(toks) {
		group := TokenGroup{AllSimple: true}

		if toks[i].Kind == TokGlob {
			globs++
			i++
			group.LeadingGlob = true
			if i >= len(toks) {
				return nil, 0, &CompileError{Reason: "glob token found at end of pattern"}
			}
			if toks[i].Kind == TokGlob {
				return nil, 0, &CompileError{Reason: "sequential globs not coalesced"}
			}
		}

		// Replacements are always their own group.
		if toks[i].Trailing > 0 {
			n := int(toks[i].Trailing) + 1
			group.Toks = toks[i : i+n]
			group.AllSimple = false
			group.Replacement = true
			i += n
			groups = append(groups, group)
			continue
		}

		start := i
		for i < len(toks) {
			curr := toks[i]
			if curr.Kind == TokGlob || curr.Trailing > 0 {
				break
			}
			if !curr.IsLiteral() {
				group.AllSimple = false
			}
			i++
		}
		if i == start {
			return nil, 0, &CompileError{Reason: "found empty group"}
		}
		group.Toks = toks[start:i]
		groups = append(groups, group)
	}

	if len(groups) == 0 {
		return nil, 0, &CompileError{Reason: "found no groups"}
	}
	return groups, globs, nil
}
