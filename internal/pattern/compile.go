package pattern

import (
	"errors"
	"fmt"
	"regexp"

	"debase/internal/fileprop"
)

// Compile lexes pat and compiles it into the arena, returning the root
// node ID. `{this.*}` replacements resolve against this during lexing.
func Compile(a *Arena, pat string, this *fileprop.Cache) (ID, error) {
	toks, err := Lex(pat, this)
	if err != nil {
		return NoID, err
	}
	return CompileTokens(a, toks)
}

// CompileTokens builds the pattern tree for an already-lexed stream.
func CompileTokens(a *Arena, toks []Token) (ID, error) {
	groups, globs, err := splitGroups(toks)
	if err != nil {
		return NoID, err
	}
	switch globs {
	case 0:
		return a.compileNoGlob(groups)
	case 1:
		return a.compileOneGlob(groups)
	default:
		return NoID, &CompileError{
			Reason: fmt.Sprintf("%d globs in one pattern", globs),
			Err:    ErrMultiGlob,
		}
	}
}

func (a *Arena) compileNoGlob(groups []TokenGroup) (ID, error) {
	if len(groups) == 1 {
		return a.compileGroup(groups[0])
	}
	elems := make([]ID, 0, len(groups))
	total := 0
	for _, group := range groups {
		id, err := a.compileGroup(group)
		if err != nil {
			return NoID, err
		}
		elems = append(elems, id)
		total += a.RequiredCount(id)
	}
	return a.alloc(node{
		kind:  KindAnySequence,
		count: uint32(total),
		elems: elems,
	}), nil
}

func (a *Arena) compileOneGlob(groups []TokenGroup) (ID, error) {
	if groups[0].LeadingGlob {
		trailing, err := a.compileNoGlob(groups)
		if err != nil {
			return NoID, err
		}
		trailing = a.wrap(trailing)
		return a.alloc(node{
			kind:     KindLeadingGlob,
			count:    uint32(a.RequiredCount(trailing)),
			trailing: trailing,
		}), nil
	}

	// Grab all the groups up to the glob.
	split := len(groups)
	for i, group := range groups {
		if group.LeadingGlob {
			split = i
			break
		}
	}
	leading, err := a.compileNoGlob(groups[:split])
	if err != nil {
		return NoID, err
	}
	trailing, err := a.compileNoGlob(groups[split:])
	if err != nil {
		return NoID, err
	}
	leading, trailing = a.wrap(leading), a.wrap(trailing)
	return a.alloc(node{
		kind:     KindButterflyGlob,
		count:    uint32(a.RequiredCount(leading) + a.RequiredCount(trailing)),
		leading:  leading,
		trailing: trailing,
	}), nil
}

func (a *Arena) compileGroup(group TokenGroup) (ID, error) {
	switch {
	case group.AllSimple:
		return a.makeSimple(group), nil
	case group.Replacement:
		return a.makeReplacement(group)
	default:
		return a.makeSingleSequence(group)
	}
}

func (a *Arena) makeSimple(group TokenGroup) ID {
	literals := make([]string, len(group.Toks))
	for i, tok := range group.Toks {
		literals[i] = tok.Text
	}
	return a.alloc(node{
		kind:     KindSimple,
		count:    uint32(len(literals)),
		literals: literals,
	})
}

func (a *Arena) makeSingleSequence(group TokenGroup) (ID, error) {
	elems := make([]ID, 0, len(group.Toks))
	for _, tok := range group.Toks {
		switch tok.Kind {
		case TokSimple, TokAnonymous:
			elems = append(elems, a.alloc(node{
				kind:  KindSolo,
				count: 1,
				text:  tok.Text,
				bound: true,
			}))
		case TokLateBind:
			id := a.alloc(node{kind: KindSolo, count: 1})
			a.replacers = append(a.replacers, &Replacer{
				target: id,
				pieces: []piece{{prop: fileprop.KindOf(tok.Text), isProp: true}},
			})
			elems = append(elems, id)
		case TokRegex:
			id, err := a.makeRegexLeaf(tok.Text)
			if err != nil {
				return NoID, err
			}
			elems = append(elems, id)
		case TokThis:
			return NoID, &CompileError{Reason: "unresolved {this} replacement (no config file bound)"}
		default:
			return NoID, &CompileError{Reason: "invalid token kind " + tok.Kind.String()}
		}
	}
	return a.alloc(node{
		kind:  KindSingleSequence,
		count: uint32(len(elems)),
		elems: elems,
	}), nil
}

func (a *Arena) makeReplacement(group TokenGroup) (ID, error) {
	head := group.Toks[0]
	pieces, err := parsePieces(head.Text, group.Toks[1:])
	if err != nil {
		return NoID, err
	}
	var id ID
	switch head.Kind {
	case TokSimpleFmt:
		id = a.alloc(node{kind: KindSolo, count: 1})
	case TokRegexFmt:
		id = a.alloc(node{kind: KindRegex, count: 1})
	default:
		return NoID, &CompileError{Reason: "invalid replacement kind " + head.Kind.String()}
	}
	a.replacers = append(a.replacers, &Replacer{target: id, pieces: pieces})
	return id, nil
}

func (a *Arena) makeRegexLeaf(expr string) (ID, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return NoID, &CompileError{Reason: "bad regex " + expr, Err: err}
	}
	return a.alloc(node{
		kind:  KindRegex,
		count: 1,
		text:  expr,
		re:    re,
		bound: true,
	}), nil
}

// wrap adapts a single-component leaf to the multi-component contract
// required by glob sides.
func (a *Arena) wrap(id ID) ID {
	if !isLeafKind(a.Kind(id)) {
		return id
	}
	return a.alloc(node{kind: KindForwarding, count: 1, inner: id})
}

// IsUnimplemented reports whether err is the documented multi-glob
// limitation rather than a malformed pattern.
func IsUnimplemented(err error) bool {
	return errors.Is(err, ErrMultiGlob)
}
