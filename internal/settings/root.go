package settings

import (
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
)

var lockfiles = []string{"yarn.lock", "package-lock.json", "pnpm-lock.yaml"}

// DefaultProjectRoot is the fallback used when no package manager marker is
// set: the nearest ancestor of start holding a lockfile, else the root of the
// enclosing git worktree, else start itself.
func DefaultProjectRoot(start string) string {
	abs, err := filepath.Abs(start)
	if err != nil {
		return start
	}
	if dir, ok := findLockfileDir(abs); ok {
		return dir
	}
	if dir, ok := gitWorktreeRoot(abs); ok {
		return dir
	}
	return abs
}

func findLockfileDir(dir string) (string, bool) {
	for {
		for _, name := range lockfiles {
			if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
				return dir, true
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func gitWorktreeRoot(dir string) (string, bool) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", false
	}
	wt, err := repo.Worktree()
	if err != nil {
		return "", false
	}
	return wt.Filesystem.Root(), true
}
