// Package fswalk enumerates a directory tree as a lazy sequence of visits.
//
// Directories are yielded before their contents, so a consumer that creates
// destination directories on directory visits always has them in place when
// the contained files arrive. Order within a single directory follows the
// directory listing and callers must not rely on it. Entries are classified
// with os.Stat, so symlinks are followed; there is no cycle detection.
package fswalk

import (
	"iter"
	"os"
	"path/filepath"
)

// Visit is one directory entry found during a walk.
type Visit struct {
	Path   string // root joined with Rel
	Rel    string // slash-separated, relative to the walk root
	IsFile bool
}

// Walk returns a depth-first sequence of the entries under root (root itself
// is not yielded). An I/O error is yielded once with a zero Visit and ends
// the sequence.
func Walk(root string) iter.Seq2[Visit, error] {
	return func(yield func(Visit, error) bool) {
		walkDir(root, "", yield)
	}
}

// walkDir returns false once the consumer stopped or an error was reported.
func walkDir(dir, relDir string, yield func(Visit, error) bool) bool {
	f, err := os.Open(dir)
	if err != nil {
		yield(Visit{}, err)
		return false
	}
	names, err := f.Readdirnames(-1)
	_ = f.Close()
	if err != nil {
		yield(Visit{}, err)
		return false
	}

	for _, name := range names {
		path := filepath.Join(dir, name)
		rel := name
		if relDir != "" {
			rel = relDir + "/" + name
		}
		info, err := os.Stat(path)
		if err != nil {
			yield(Visit{}, err)
			return false
		}
		if !info.IsDir() {
			if !yield(Visit{Path: path, Rel: rel, IsFile: true}, nil) {
				return false
			}
			continue
		}
		if !yield(Visit{Path: path, Rel: rel}, nil) {
			return false
		}
		if !walkDir(path, rel, yield) {
			return false
		}
	}
	return true
}
