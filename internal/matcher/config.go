package matcher

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"debase/internal/fileprop"
	"debase/internal/pattern"
)

// rawConfig is the shape shared by JSON and TOML configs. Both fields
// are polymorphic: "files" is a string or array of strings, "patterns"
// is a string, an array of strings, or an object with ctor/dtor/all
// subfields.
type rawConfig struct {
	Files    any `json:"files" toml:"files"`
	Patterns any `json:"patterns" toml:"patterns"`
}

// ErrConfigLoaded reports a second LoadConfig call on the same matcher.
var ErrConfigLoaded = errors.New("config file has already been loaded")

// LoadConfig reads a JSON or TOML config (picked by file extension),
// compiles its patterns into the matcher, and appends its resolved
// file list to outFiles. While patterns compile, {this.*} replacements
// resolve against the config file's own path properties. Pass a nil
// outFiles to skip the "files" field entirely.
func (m *SymbolMatcher) LoadConfig(path string, outFiles *[]string) error {
	if m.configFile != "" {
		return ErrConfigLoaded
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	abs = filepath.ToSlash(abs)

	var raw rawConfig
	if strings.EqualFold(filepath.Ext(abs), ".toml") {
		if _, err := toml.DecodeFile(abs, &raw); err != nil {
			return fmt.Errorf("%s: failed to parse TOML: %w", path, err)
		}
	} else {
		data, err := os.ReadFile(abs)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("%s: failed to parse JSON: %w", path, err)
		}
	}

	ld := configLoader{m: m, path: abs}
	m.configProps = fileprop.NewCache(abs)
	err = ld.load(&raw, outFiles)
	m.configProps = nil
	if err != nil {
		return err
	}
	m.configFile = abs
	return nil
}

type configLoader struct {
	m    *SymbolMatcher
	path string
}

func (ld *configLoader) report(format string, args ...any) error {
	return fmt.Errorf("in %s: %s", ld.path, fmt.Sprintf(format, args...))
}

func (ld *configLoader) permissive() bool {
	return ld.m.mode == ModePermissive
}

func (ld *configLoader) load(raw *rawConfig, outFiles *[]string) error {
	if outFiles != nil {
		switch files := raw.Files.(type) {
		case string:
			if err := ld.loadFilePath(files, outFiles); err != nil {
				return err
			}
		case []any:
			if err := ld.loadFilePaths(files, outFiles); err != nil {
				return err
			}
		default:
			return ld.report("'files' does not exist or is not an array")
		}
	}
	switch patterns := raw.Patterns.(type) {
	case map[string]any:
		return ld.loadPatternObject(patterns)
	case []any:
		return ld.loadPatternList(patterns)
	case string:
		return ld.m.AddPattern(patterns)
	default:
		return ld.report("'patterns' does not exist or is not an object/array/string")
	}
}

// loadFilePath resolves one entry of the "files" field relative to the
// config file's directory. Entries that are not regular files error in
// strict mode and are dropped in permissive mode.
func (ld *configLoader) loadFilePath(name string, outFiles *[]string) error {
	resolved := name
	if !filepath.IsAbs(resolved) {
		resolved = filepath.Join(filepath.Dir(ld.path), resolved)
	}
	resolved = filepath.ToSlash(filepath.Clean(resolved))
	info, err := os.Stat(resolved)
	if err != nil || !info.Mode().IsRegular() {
		if ld.permissive() {
			return nil
		}
		return ld.report("file %q is not a regular file", name)
	}
	*outFiles = append(*outFiles, resolved)
	return nil
}

func (ld *configLoader) loadFilePaths(files []any, outFiles *[]string) error {
	for _, f := range files {
		name, ok := f.(string)
		if !ok {
			if ld.permissive() {
				continue
			}
			return ld.report("filename is not a string")
		}
		if err := ld.loadFilePath(name, outFiles); err != nil {
			return err
		}
	}
	return nil
}

// loadPatternObject handles the {"ctor": ..., "dtor": ..., "all": ...}
// form. Each subfield is a string or array of strings; "all" patterns
// join both sets.
func (ld *configLoader) loadPatternObject(patterns map[string]any) error {
	ctors, err := ld.loadSubpatterns(patterns, "ctor")
	if err != nil {
		return err
	}
	dtors, err := ld.loadSubpatterns(patterns, "dtor")
	if err != nil {
		return err
	}
	all, err := ld.loadSubpatterns(patterns, "all")
	if err != nil {
		return err
	}
	if len(ctors) == 0 && len(dtors) == 0 && len(all) == 0 {
		return ld.report("no patterns found in config (ctor/dtor/all)")
	}
	for _, id := range ctors {
		ld.m.ctors[id] = struct{}{}
	}
	for _, id := range dtors {
		ld.m.dtors[id] = struct{}{}
	}
	for _, id := range all {
		ld.m.ctors[id] = struct{}{}
		ld.m.dtors[id] = struct{}{}
	}
	return nil
}

func (ld *configLoader) loadSubpatterns(patterns map[string]any, name string) ([]pattern.ID, error) {
	field, ok := patterns[name]
	if !ok {
		return nil, nil
	}
	var out []pattern.ID
	switch v := field.(type) {
	case []any:
		for _, p := range v {
			src, ok := p.(string)
			if !ok {
				if ld.permissive() {
					continue
				}
				return nil, ld.report("pattern is not a string")
			}
			id, err := ld.m.CompilePattern(src)
			if err != nil {
				return nil, err
			}
			out = append(out, id)
		}
	case string:
		id, err := ld.m.CompilePattern(v)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	default:
		if !ld.permissive() {
			return nil, ld.report("field %q is not an array or string", name)
		}
	}
	return out, nil
}

// loadPatternList handles the bare-array form; every entry joins both
// sets. Permissive mode drops entries that fail to compile.
func (ld *configLoader) loadPatternList(patterns []any) error {
	for _, p := range patterns {
		src, ok := p.(string)
		if !ok {
			if ld.permissive() {
				continue
			}
			return ld.report("pattern is not a string")
		}
		if err := ld.m.AddPattern(src); err != nil {
			if ld.permissive() {
				continue
			}
			return err
		}
	}
	return nil
}
