package pattern

// Match dispatches to the per-kind matching rules against an ordered
// qualified-name component list. The final component is the base name.
func (a *Arena) Match(id ID, names []string) bool {
	if len(names) == 0 {
		return false
	}
	n := a.get(id)
	if n == nil {
		return false
	}
	if isLeafKind(n.kind) {
		return len(names) == 1 && a.matchLeaf(n, names[0])
	}
	return a.matchMulti(n, names)
}

func (a *Arena) matchMulti(n *node, names []string) bool {
	switch n.kind {
	case KindSimple:
		if len(names) != len(n.literals) {
			return false
		}
		for i, lit := range n.literals {
			if lit != names[i] {
				return false
			}
		}
		return true

	case KindSingleSequence:
		if len(names) != len(n.elems) {
			return false
		}
		for i, elem := range n.elems {
			if !a.matchLeaf(a.get(elem), names[i]) {
				return false
			}
		}
		return true

	case KindAnySequence:
		if len(names) < int(n.count) {
			return false
		}
		for _, elem := range n.elems {
			sub := a.get(elem)
			if isLeafKind(sub.kind) {
				if !a.matchLeaf(sub, names[0]) {
					return false
				}
				names = names[1:]
				continue
			}
			need := int(sub.count)
			if !a.matchMulti(sub, names[:need]) {
				return false
			}
			names = names[need:]
		}
		return true

	case KindLeadingGlob:
		need := a.RequiredCount(n.trailing)
		if len(names) < need {
			return false
		}
		return a.Match(n.trailing, names[len(names)-need:])

	case KindButterflyGlob:
		lead, trail := a.RequiredCount(n.leading), a.RequiredCount(n.trailing)
		if len(names) < lead+trail {
			return false
		}
		if !a.Match(n.leading, names[:lead]) {
			return false
		}
		return a.Match(n.trailing, names[len(names)-trail:])

	case KindForwarding:
		if len(names) != 1 {
			return false
		}
		return a.matchLeaf(a.get(n.inner), names[0])

	default:
		return false
	}
}

// matchLeaf matches one Solo/Regex leaf against a single component.
// Leaves that were never bound, or were disabled by a permissive binding
// failure, match nothing.
func (a *Arena) matchLeaf(n *node, name string) bool {
	if n == nil || n.dead || !n.bound {
		return false
	}
	switch n.kind {
	case KindSolo:
		return n.text == name
	case KindRegex:
		return n.re != nil && n.re.MatchString(name)
	default:
		return false
	}
}
