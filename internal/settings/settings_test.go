package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/staticfiles/internal/envgate"
	"git.home.luguber.info/inful/staticfiles/internal/errors"
	"git.home.luguber.info/inful/staticfiles/internal/testutil"
)

func writeManifest(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ManifestFile), []byte(content), 0o644))
}

func TestFindProjectRoot(t *testing.T) {
	tests := []struct {
		name string
		env  envgate.Map
		want string
	}{
		{
			name: "npm package json marker wins",
			env:  envgate.Map{"npm_package_json": "/work/app/package.json", "PNPM_SCRIPT_SRC_DIR": "/work/pnpm"},
			want: "/work/app",
		},
		{
			name: "pnpm script dir",
			env:  envgate.Map{"PNPM_SCRIPT_SRC_DIR": "/work/pnpm"},
			want: "/work/pnpm",
		},
		{
			name: "empty markers fall back",
			env:  envgate.Map{"npm_package_json": "", "PNPM_SCRIPT_SRC_DIR": ""},
			want: "/fallback",
		},
		{
			name: "no markers",
			env:  envgate.Map{},
			want: "/fallback",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, filepath.FromSlash(tt.want), FindProjectRoot(tt.env, filepath.FromSlash("/fallback")))
		})
	}
}

func TestLoadSingleObject(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `{
		"name": "app",
		"staticFiles": {"staticPath": "public", "staticOutPath": "assets", "includeGlob": "*.png", "env": {"NODE_ENV": "production"}}
	}`)

	set, err := Load(dir)
	require.NoError(t, err)
	require.Equal(t, Set{{
		StaticPath:    "public",
		StaticOutPath: "assets",
		IncludeGlob:   "*.png",
		Env:           map[string]string{"NODE_ENV": "production"},
	}}, set)
}

func TestLoadArrayKeepsOrder(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `{"staticFiles": [{"staticPath": "one"}, {"staticPath": "two", "distDir": "out"}]}`)

	set, err := Load(dir)
	require.NoError(t, err)
	require.Equal(t, Set{{StaticPath: "one"}, {StaticPath: "two", DistDir: "out"}}, set)
}

func TestLoadEmptyArrayYieldsNoEntries(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `{"staticFiles": []}`)

	set, err := Load(dir)
	require.NoError(t, err)
	require.Empty(t, set)
}

func TestLoadAbsentSectionYieldsDefaultEntry(t *testing.T) {
	for name, content := range map[string]string{
		"absent": `{"name": "app"}`,
		"null":   `{"staticFiles": null}`,
	} {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			writeManifest(t, dir, content)

			set, err := Load(dir)
			require.NoError(t, err)
			require.Equal(t, Set{{}}, set)
		})
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name     string
		manifest string
	}{
		{name: "malformed json", manifest: `{"staticFiles": `},
		{name: "scalar section", manifest: `{"staticFiles": "static"}`},
		{name: "non-string env value", manifest: `{"staticFiles": {"env": {"DEBUG": true}}}`},
		{name: "invalid glob", manifest: `{"staticFiles": [{"includeGlob": "**"}, {"includeGlob": "[oops"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeManifest(t, dir, tt.manifest)

			_, err := Load(dir)
			require.Error(t, err)
			require.True(t, errors.HasCategory(err, errors.CategoryConfig), "got %v", err)
		})
	}
}

func TestLoadMissingManifest(t *testing.T) {
	dir := t.TempDir()
	_, err := Load(dir)
	require.Error(t, err)
	ce, ok := errors.AsClassified(err)
	require.True(t, ok)
	require.Equal(t, errors.CategoryConfig, ce.Category())
	path, _ := ce.Context().GetString("path")
	require.Equal(t, filepath.Join(dir, ManifestFile), path)
}

func TestEntrySource(t *testing.T) {
	root := filepath.FromSlash("/proj")
	require.Equal(t, filepath.Join(root, "static"), Entry{}.Source(root))
	require.Equal(t, filepath.Join(root, "public"), Entry{StaticPath: "public"}.Source(root))

	abs := filepath.Join(t.TempDir(), "abs")
	require.Equal(t, abs, Entry{StaticPath: abs}.Source(root))
}

func TestEntryDestinations(t *testing.T) {
	root := filepath.FromSlash("/proj")
	outputs := []string{filepath.FromSlash("/proj/dist1"), "dist2"}

	tests := []struct {
		name  string
		entry Entry
		want  []string
	}{
		{
			name:  "all output dirs",
			entry: Entry{},
			want:  []string{filepath.FromSlash("/proj/dist1"), filepath.FromSlash("/proj/dist2")},
		},
		{
			name:  "out path appended",
			entry: Entry{StaticOutPath: "assets"},
			want:  []string{filepath.FromSlash("/proj/dist1/assets"), filepath.FromSlash("/proj/dist2/assets")},
		},
		{
			name:  "dist dir override",
			entry: Entry{DistDir: "dist1", StaticOutPath: "assets"},
			want:  []string{filepath.FromSlash("/proj/dist1/assets")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.entry.Destinations(root, outputs))
		})
	}

	require.Empty(t, Entry{}.Destinations(root, nil))
}

func TestEntryDestinationsDoesNotAliasOutputDirs(t *testing.T) {
	outputs := []string{"dist"}
	_ = Entry{StaticOutPath: "x"}.Destinations("/p", outputs)
	require.Equal(t, []string{"dist"}, outputs)
}

func TestDefaultProjectRootLockfile(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "yarn.lock"), nil, 0o644))
	nested := filepath.Join(root, "packages", "web")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	require.Equal(t, root, DefaultProjectRoot(nested))
}

func TestDefaultProjectRootGitWorktree(t *testing.T) {
	root := testutil.InitGitRepo(t)
	nested := filepath.Join(root, "src", "app")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	require.Equal(t, root, DefaultProjectRoot(nested))
}

func TestDefaultProjectRootFallsBackToStart(t *testing.T) {
	start := t.TempDir()
	require.Equal(t, start, DefaultProjectRoot(start))
}
