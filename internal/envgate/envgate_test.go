package envgate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMatches(t *testing.T) {
	env := Map{"NODE_ENV": "production", "TARGET": "web", "EMPTY": ""}

	tests := []struct {
		name     string
		required map[string]string
		want     bool
	}{
		{name: "nil requirement", required: nil, want: true},
		{name: "empty requirement", required: map[string]string{}, want: true},
		{name: "single match", required: map[string]string{"NODE_ENV": "production"}, want: true},
		{name: "all match", required: map[string]string{"NODE_ENV": "production", "TARGET": "web"}, want: true},
		{name: "value mismatch", required: map[string]string{"NODE_ENV": "development"}, want: false},
		{name: "one of many mismatches", required: map[string]string{"NODE_ENV": "production", "TARGET": "node"}, want: false},
		{name: "missing variable", required: map[string]string{"CI": "true"}, want: false},
		{name: "empty value present", required: map[string]string{"EMPTY": ""}, want: true},
		{name: "empty value required but unset", required: map[string]string{"UNSET": ""}, want: false},
		{name: "case sensitive", required: map[string]string{"NODE_ENV": "Production"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Matches(env, tt.required))
		})
	}
}

type countingEnv struct {
	Map
	lookups int
}

func (c *countingEnv) Lookup(key string) (string, bool) {
	c.lookups++
	return c.Map.Lookup(key)
}

func TestMatchesStopsAtFirstMismatch(t *testing.T) {
	env := &countingEnv{Map: Map{}}
	require.False(t, Matches(env, map[string]string{"A": "1", "B": "2", "C": "3"}))
	require.Equal(t, 1, env.lookups)
}

func TestOSEnv(t *testing.T) {
	t.Setenv("STATICFILES_ENVGATE_TEST", "yes")
	require.True(t, Matches(OS(), map[string]string{"STATICFILES_ENVGATE_TEST": "yes"}))
	require.False(t, Matches(OS(), map[string]string{"STATICFILES_ENVGATE_TEST": "no"}))
}

func TestSnapshotOverlaysDotenvFiles(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, ".env.local")
	second := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(first, []byte("DEPLOY_TARGET=staging\n"), 0o600))
	require.NoError(t, os.WriteFile(second, []byte("DEPLOY_TARGET=prod\nFROM_ENV_FILE=1\nSTATICFILES_SNAPSHOT_TEST=file\n"), 0o600))
	t.Setenv("STATICFILES_SNAPSHOT_TEST", "process")

	snap, err := Snapshot(first, second)
	require.NoError(t, err)

	require.Equal(t, "staging", snap["DEPLOY_TARGET"], "earlier files win")
	require.Equal(t, "1", snap["FROM_ENV_FILE"])
	require.Equal(t, "process", snap["STATICFILES_SNAPSHOT_TEST"], "process environment wins")
	_, leaked := os.LookupEnv("FROM_ENV_FILE")
	require.False(t, leaked, "snapshot must not modify the process environment")
}

func TestSnapshotMissingFile(t *testing.T) {
	_, err := Snapshot(filepath.Join(t.TempDir(), "nope.env"))
	require.Error(t, err)
}
