package pattern

import (
	"regexp"
	"strings"

	"debase/internal/fileprop"
)

// piece is one segment of a deferred replacement: either literal text or
// a file property resolved at binding time.
type piece struct {
	lit    string
	prop   fileprop.Kind
	isProp bool
}

// Replacer rebinds one Solo/Regex leaf whenever the matcher moves to a
// new file. `{this.*}` replacements never appear here; they resolve once
// during lexing.
type Replacer struct {
	target ID
	pieces []piece
}

// Target returns the leaf node the replacer rewrites.
func (r *Replacer) Target() ID { return r.target }

// parsePieces splits a format head like `I{0}v{1}` into literal pieces
// and property references into args. Only `{digit}` sequences produced by
// the compound lexer are placeholders.
func parsePieces(format string, args []Token) ([]piece, error) {
	pieces := make([]piece, 0, 2)
	lit := 0
	for i := 0; i < len(format); i++ {
		if format[i] != '{' {
			continue
		}
		end := strings.IndexByte(format[i:], '}')
		if end < 0 {
			break
		}
		idx := 0
		ok := end > 1
		for _, c := range []byte(format[i+1 : i+end]) {
			if !isDigitByte(c) {
				ok = false
				break
			}
			idx = idx*10 + int(c-'0')
		}
		if !ok {
			continue
		}
		if idx >= len(args) {
			return nil, &CompileError{Reason: "replacement placeholder out of range"}
		}
		if i > lit {
			pieces = append(pieces, piece{lit: format[lit:i]})
		}
		pieces = append(pieces, piece{prop: fileprop.KindOf(args[idx].Text), isProp: true})
		i += end
		lit = i + 1
	}
	if lit < len(format) {
		pieces = append(pieces, piece{lit: format[lit:]})
	}
	return pieces, nil
}

// BindFile resolves every pending replacer against the properties of one
// concrete file and recompiles the affected leaves in place. On error the
// caller decides whether to abort or to disable just the failed leaf via
// DisableTarget.
func (a *Arena) BindFile(props *fileprop.Cache) error {
	for _, r := range a.replacers {
		if err := a.bindOne(r, props); err != nil {
			return err
		}
	}
	return nil
}

// BindFilePermissive binds like BindFile but marks the leaf of every
// failed replacer permanently unmatchable instead of stopping. It returns
// the errors that were swallowed.
func (a *Arena) BindFilePermissive(props *fileprop.Cache) []error {
	var skipped []error
	for _, r := range a.replacers {
		if err := a.bindOne(r, props); err != nil {
			a.DisableTarget(r)
			skipped = append(skipped, err)
		}
	}
	return skipped
}

func (a *Arena) bindOne(r *Replacer, props *fileprop.Cache) error {
	n := a.get(r.target)
	if n == nil {
		return &BindError{File: props.Path(), Reason: "replacer target does not exist"}
	}
	if n.dead {
		// A permissive-mode casualty stays unmatchable for good.
		return nil
	}

	var b strings.Builder
	for _, p := range r.pieces {
		if !p.isProp {
			b.WriteString(p.lit)
			continue
		}
		val, err := props.PropertyKind(p.prop)
		if err != nil {
			return &BindError{File: props.Path(), Reason: err.Error()}
		}
		b.WriteString(val)
	}

	text := b.String()
	if n.kind == KindRegex {
		re, err := regexp.Compile(text)
		if err != nil {
			return &BindError{File: props.Path(), Reason: "bad rebuilt regex: " + err.Error()}
		}
		n.re = re
	}
	n.text = text
	n.bound = true
	return nil
}

// DisableTarget makes the replacer's leaf permanently unmatchable. Used
// by permissive mode when a binding fails.
func (a *Arena) DisableTarget(r *Replacer) {
	if n := a.get(r.target); n != nil {
		n.dead = true
		n.bound = false
	}
}
