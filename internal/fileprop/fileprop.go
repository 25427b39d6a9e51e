// Package fileprop computes and caches the path-derived properties a
// pattern replacement can reference: the full path, its stem, its parent
// directory, and its extension. All lookups are pure string computations
// over an already-resolved path; nothing touches the filesystem.
package fileprop

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Kind identifies one replaceable file property.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindFile         // {file} — full path
	KindStem         // {file.stem}
	KindDir          // {file.dir}
	KindExt          // {file.ext}
)

// Member names accepted inside `{obj.member}` replacement blocks.
const (
	MemberStem = "stem"
	MemberDir  = "dir"
	MemberExt  = "ext"
)

// KindOf maps a canonical member name to its Kind. The empty member
// selects the whole path.
func KindOf(member string) Kind {
	switch member {
	case "":
		return KindFile
	case MemberStem:
		return KindStem
	case MemberDir:
		return KindDir
	case MemberExt:
		return KindExt
	default:
		return KindUnknown
	}
}

// CanonicalMember validates a member name case-insensitively and returns
// its canonical spelling. The second result is false for unknown members.
func CanonicalMember(member string) (string, bool) {
	switch {
	case member == "":
		return "", true
	case strings.EqualFold(member, MemberStem):
		return MemberStem, true
	case strings.EqualFold(member, MemberDir):
		return MemberDir, true
	case strings.EqualFold(member, MemberExt):
		return MemberExt, true
	default:
		return "", false
	}
}

// Cache lazily derives properties from one file path. Derived values are
// computed once and reused; a new file needs a new Cache.
type Cache struct {
	path string
	stem *string
	dir  *string
	ext  *string
}

// NewCache returns a property cache for path.
func NewCache(path string) *Cache {
	return &Cache{path: path}
}

// Path returns the path the cache was created with.
func (c *Cache) Path() string { return c.path }

// Property resolves a member name (canonical spelling) to its value.
func (c *Cache) Property(member string) (string, error) {
	return c.PropertyKind(KindOf(member))
}

// PropertyKind resolves a property kind to its value.
func (c *Cache) PropertyKind(k Kind) (string, error) {
	switch k {
	case KindFile:
		return c.path, nil
	case KindStem:
		if c.stem == nil {
			s := stem(c.path)
			c.stem = &s
		}
		return *c.stem, nil
	case KindDir:
		if c.dir == nil {
			d := parentDir(c.path)
			c.dir = &d
		}
		return *c.dir, nil
	case KindExt:
		if c.ext == nil {
			e := filepath.Ext(c.path)
			c.ext = &e
		}
		return *c.ext, nil
	default:
		return "", fmt.Errorf("unknown file property %q", k)
	}
}

func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindStem:
		return MemberStem
	case KindDir:
		return MemberDir
	case KindExt:
		return MemberExt
	default:
		return "unknown"
	}
}

// stem is the basename up to the first dot, so "lib.so.6" stems to "lib".
// Both separator styles split, whatever the host OS.
func stem(path string) string {
	base := path[len(parentDir(path)):]
	base = strings.TrimLeft(base, `/\`)
	if i := strings.IndexByte(base, '.'); i >= 0 {
		return base[:i]
	}
	return base
}

// parentDir strips the final path component without cleaning the rest,
// mirroring how patterns expect "a/b/c.cpp" to yield "a/b".
func parentDir(path string) string {
	i := strings.LastIndexByte(path, '/')
	if i < 0 {
		i = strings.LastIndexByte(path, '\\')
	}
	if i < 0 {
		return ""
	}
	return path[:i]
}
