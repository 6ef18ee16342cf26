// Package envgate decides whether a static-copy entry is active for the
// current environment. The environment is injected as a read-only lookup so
// callers (and tests) never depend on the real process state.
package envgate

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Env is a read-only key/value view of an environment.
type Env interface {
	Lookup(key string) (string, bool)
}

// Map is an Env backed by a plain map.
type Map map[string]string

// Lookup implements Env.
func (m Map) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

type osEnv struct{}

func (osEnv) Lookup(key string) (string, bool) { return os.LookupEnv(key) }

// OS returns an Env that reads the live process environment.
func OS() Env { return osEnv{} }

// Matches reports whether every required variable is present in env with an
// exactly equal value. A nil or empty requirement always matches.
func Matches(env Env, required map[string]string) bool {
	for name, want := range required {
		got, ok := env.Lookup(name)
		if !ok || got != want {
			return false
		}
	}
	return true
}

// Snapshot copies the process environment and overlays variables read from
// the given dotenv files. Process values win over file values, and earlier
// files win over later ones. The process environment is never modified.
func Snapshot(files ...string) (Map, error) {
	snap := Map{}
	for i := len(files) - 1; i >= 0; i-- {
		vars, err := godotenv.Read(files[i])
		if err != nil {
			return nil, err
		}
		for k, v := range vars {
			snap[k] = v
		}
	}
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		snap[k] = v
	}
	return snap, nil
}
