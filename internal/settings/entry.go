package settings

import (
	"path/filepath"

	"git.home.luguber.info/inful/staticfiles/internal/errors"
	"git.home.luguber.info/inful/staticfiles/internal/glob"
)

// Entry is one static-copy rule from the staticFiles section.
type Entry struct {
	// StaticPath is the source file or directory. Defaults to <projectRoot>/static.
	StaticPath string `json:"staticPath,omitempty"`
	// DistDir overrides the detected build output directories with a single one.
	DistDir string `json:"distDir,omitempty"`
	// StaticOutPath is joined onto every destination directory.
	StaticOutPath string `json:"staticOutPath,omitempty"`
	// IncludeGlob filters copied files. Defaults to "**".
	IncludeGlob string `json:"includeGlob,omitempty"`
	// Env lists variables that must equal the given values for the entry to run.
	Env map[string]string `json:"env,omitempty"`
}

// Source returns the effective static source path. Relative paths are
// resolved against projectRoot.
func (e Entry) Source(projectRoot string) string {
	if e.StaticPath == "" {
		return filepath.Join(projectRoot, DefaultStaticDir)
	}
	return resolve(projectRoot, e.StaticPath)
}

// Destinations returns the directories the entry copies into: DistDir when
// set, otherwise every detected output directory, each joined with
// StaticOutPath when set.
func (e Entry) Destinations(projectRoot string, outputDirs []string) []string {
	var dirs []string
	if e.DistDir != "" {
		dirs = []string{resolve(projectRoot, e.DistDir)}
	} else {
		dirs = make([]string, 0, len(outputDirs))
		for _, d := range outputDirs {
			dirs = append(dirs, resolve(projectRoot, d))
		}
	}
	if e.StaticOutPath == "" {
		return dirs
	}
	for i, d := range dirs {
		dirs[i] = filepath.Join(d, e.StaticOutPath)
	}
	return dirs
}

// Matcher compiles IncludeGlob.
func (e Entry) Matcher() (glob.Matcher, error) {
	return glob.New(e.IncludeGlob)
}

// Validate checks the entry without touching the filesystem.
func (e Entry) Validate() error {
	if _, err := e.Matcher(); err != nil {
		return errors.ConfigError("invalid includeGlob").WithCause(err).
			WithContext("glob", e.IncludeGlob).
			Build()
	}
	return nil
}

func resolve(root, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(root, p)
}
