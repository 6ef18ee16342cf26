package staticcopy

import (
	"os"

	"git.home.luguber.info/inful/staticfiles/internal/envgate"
	"git.home.luguber.info/inful/staticfiles/internal/errors"
	"git.home.luguber.info/inful/staticfiles/internal/glob"
	"git.home.luguber.info/inful/staticfiles/internal/settings"
)

// SkipReason explains why an entry copies nothing.
type SkipReason string

const (
	SkipNone          SkipReason = ""
	SkipEnv           SkipReason = "env_mismatch"
	SkipNoDestination SkipReason = "no_destination"
)

// Step is one resolved configuration entry.
type Step struct {
	Index        int
	Entry        settings.Entry
	Skip         SkipReason
	Source       string
	SourceIsDir  bool
	Destinations []string
	Matcher      glob.Matcher
}

// resolveStep applies the env gate, computes destinations and inspects the
// source. A missing source is an error even when there is nowhere to copy to.
func resolveStep(index int, e settings.Entry, projectRoot string, outputDirs []string, env envgate.Env) (Step, error) {
	step := Step{Index: index, Entry: e}
	if !envgate.Matches(env, e.Env) {
		step.Skip = SkipEnv
		return step, nil
	}

	m, err := e.Matcher()
	if err != nil {
		return step, errors.ConfigError("invalid includeGlob").WithCause(err).
			WithContext("entry", index).
			Build()
	}
	step.Matcher = m
	step.Destinations = e.Destinations(projectRoot, outputDirs)
	step.Source = e.Source(projectRoot)

	info, err := os.Stat(step.Source)
	if err != nil {
		if os.IsNotExist(err) {
			return step, errors.NotFoundError("static source not found").WithCause(err).
				WithContext("path", step.Source).
				WithContext("entry", index).
				Build()
		}
		return step, errors.FileSystemError("cannot inspect static source").WithCause(err).
			WithContext("path", step.Source).
			WithContext("entry", index).
			Build()
	}
	step.SourceIsDir = info.IsDir()

	if len(step.Destinations) == 0 {
		step.Skip = SkipNoDestination
	}
	return step, nil
}
