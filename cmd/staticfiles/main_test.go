package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunExitCodes(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "package.json"), []byte(`{"staticFiles": {"staticPath": "public"}}`), 0o644))
	dist := filepath.Join(root, "dist")
	cfg := filepath.Join(root, "staticfiles.yaml")
	base := []string{"--config", cfg, "copy", "--project-root", root, "--dist-dir", dist}

	t.Run("missing source", func(t *testing.T) {
		require.Equal(t, 3, run(base))
	})

	t.Run("success", func(t *testing.T) {
		require.NoError(t, os.MkdirAll(filepath.Join(root, "public"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(root, "public", "a.txt"), []byte("a"), 0o644))
		require.Equal(t, 0, run(base))
		require.FileExists(t, filepath.Join(dist, "a.txt"))
	})

	t.Run("bad runner config", func(t *testing.T) {
		require.NoError(t, os.WriteFile(cfg, []byte("log_level: [\n"), 0o644))
		t.Cleanup(func() { _ = os.Remove(cfg) })
		require.Equal(t, 7, run(base))
	})

	t.Run("missing inputs", func(t *testing.T) {
		require.Equal(t, 2, run([]string{"--config", cfg, "copy", "--project-root", root}))
	})
}
