// Package settings resolves the project root and loads the staticFiles
// section of the project's package.json.
package settings

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/staticfiles/internal/envgate"
	"git.home.luguber.info/inful/staticfiles/internal/errors"
)

const (
	// ManifestFile is the project manifest holding the configuration.
	ManifestFile = "package.json"
	// SectionKey is the top-level manifest key for static-copy entries.
	SectionKey = "staticFiles"
	// DefaultStaticDir is the source used when an entry sets no staticPath.
	DefaultStaticDir = "static"

	envNpmPackageJSON = "npm_package_json"
	envPnpmScriptDir  = "PNPM_SCRIPT_SRC_DIR"
)

// Set is the ordered list of entries processed in a reaction.
type Set []Entry

// Section is the raw staticFiles value: a single object or an array of them.
type Section struct {
	one  *Entry
	many []Entry
}

// UnmarshalJSON accepts either an object or an array of objects.
func (s *Section) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	switch {
	case len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")):
		*s = Section{}
		return nil
	case trimmed[0] == '[':
		var many []Entry
		if err := json.Unmarshal(trimmed, &many); err != nil {
			return err
		}
		*s = Section{many: many}
		if s.many == nil {
			s.many = []Entry{}
		}
		return nil
	case trimmed[0] == '{':
		var one Entry
		if err := json.Unmarshal(trimmed, &one); err != nil {
			return err
		}
		*s = Section{one: &one}
		return nil
	default:
		return fmt.Errorf("%s must be an object or an array of objects", SectionKey)
	}
}

// Entries normalizes the section. An array is returned as is; a single object
// or an absent section becomes a one-element set (all defaults when absent).
func (s Section) Entries() Set {
	if s.many != nil {
		return Set(s.many)
	}
	if s.one != nil {
		return Set{*s.one}
	}
	return Set{{}}
}

type manifest struct {
	StaticFiles Section `json:"staticFiles"`
}

// FindProjectRoot returns the directory whose package.json configures the
// copy: the directory of $npm_package_json when a package manager started
// the build, else $PNPM_SCRIPT_SRC_DIR, else fallback.
func FindProjectRoot(env envgate.Env, fallback string) string {
	if p, ok := env.Lookup(envNpmPackageJSON); ok && p != "" {
		return filepath.Dir(p)
	}
	if dir, ok := env.Lookup(envPnpmScriptDir); ok && dir != "" {
		return dir
	}
	return fallback
}

// Load reads <projectRoot>/package.json and returns its normalized entries.
func Load(projectRoot string) (Set, error) {
	path := filepath.Join(projectRoot, ManifestFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.ConfigError("cannot read project manifest").WithCause(err).
			WithContext("path", path).
			Build()
	}
	return Parse(data, path)
}

// Parse decodes manifest bytes; path is only used in error context.
func Parse(data []byte, path string) (Set, error) {
	var m manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.ConfigError("project manifest is not valid").WithCause(err).
			WithContext("path", path).
			Build()
	}
	set := m.StaticFiles.Entries()
	for i, e := range set {
		if err := e.Validate(); err != nil {
			ce, _ := errors.AsClassified(err)
			return nil, ce.WithContext("path", path).WithContext("entry", i)
		}
	}
	return set, nil
}
