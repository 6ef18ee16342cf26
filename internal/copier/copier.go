// Package copier copies static sources into destination directories.
//
// Files are always overwritten; only destination directories are checked for
// existence before creation. Every failure is returned as a classified
// filesystem error and nothing is retried.
package copier

import (
	"io"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/staticfiles/internal/errors"
	"git.home.luguber.info/inful/staticfiles/internal/fswalk"
	"git.home.luguber.info/inful/staticfiles/internal/glob"
)

const dirPerm = 0o755

// Stats summarises one copy operation.
type Stats struct {
	FilesCopied  int
	FilesSkipped int // excluded by the include glob
	DirsCreated  int
}

// Add accumulates other into s.
func (s *Stats) Add(other Stats) {
	s.FilesCopied += other.FilesCopied
	s.FilesSkipped += other.FilesSkipped
	s.DirsCreated += other.DirsCreated
}

// CopyFile copies src into destDir under its own basename when the basename
// matches m. destDir is created even when the file is filtered out.
func CopyFile(src, destDir string, m glob.Matcher) (Stats, error) {
	var st Stats
	created, err := ensureDir(destDir)
	if err != nil {
		return st, err
	}
	if created {
		st.DirsCreated++
	}

	name := filepath.Base(src)
	if !m.Match(name) {
		st.FilesSkipped++
		return st, nil
	}
	if err := copyRegular(src, filepath.Join(destDir, name)); err != nil {
		return st, err
	}
	st.FilesCopied++
	return st, nil
}

// CopyDir mirrors the tree under src into destDir, copying files whose
// walk-relative path matches m. Every directory of the source tree is
// recreated, including those that end up holding no matching files.
func CopyDir(src, destDir string, m glob.Matcher) (Stats, error) {
	var st Stats
	created, err := ensureDir(destDir)
	if err != nil {
		return st, err
	}
	if created {
		st.DirsCreated++
	}

	for v, err := range fswalk.Walk(src) {
		if err != nil {
			return st, errors.FileSystemError("walk static source failed").WithCause(err).
				WithContext("path", src).
				Build()
		}
		dest := filepath.Join(destDir, filepath.FromSlash(v.Rel))
		if !v.IsFile {
			created, err := ensureDir(dest)
			if err != nil {
				return st, err
			}
			if created {
				st.DirsCreated++
			}
			continue
		}
		if !m.Match(v.Rel) {
			st.FilesSkipped++
			continue
		}
		if err := copyRegular(v.Path, dest); err != nil {
			return st, err
		}
		st.FilesCopied++
	}
	return st, nil
}

// ensureDir creates dir (and parents) if it does not exist yet.
func ensureDir(dir string) (bool, error) {
	if _, err := os.Stat(dir); err == nil {
		return false, nil
	}
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return false, errors.FileSystemError("create destination directory failed").WithCause(err).
			WithContext("path", dir).
			WithContext("operation", "mkdir").
			Build()
	}
	return true, nil
}

// copyRegular copies src to dst, truncating dst and preserving permission bits.
// When dst already is src the file is left untouched.
func copyRegular(src, dst string) error {
	fail := func(err error, op string) error {
		return errors.FileSystemError("copy file failed").WithCause(err).
			WithContext("path", src).
			WithContext("dest", dst).
			WithContext("operation", op).
			Build()
	}

	in, err := os.Open(src)
	if err != nil {
		return fail(err, "open")
	}
	defer func() {
		_ = in.Close()
	}()
	info, err := in.Stat()
	if err != nil {
		return fail(err, "stat")
	}
	if existing, err := os.Stat(dst); err == nil && os.SameFile(info, existing) {
		return nil
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fail(err, "create")
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fail(err, "write")
	}
	if err := out.Close(); err != nil {
		return fail(err, "close")
	}
	// OpenFile only applies the mode on creation.
	if err := os.Chmod(dst, info.Mode().Perm()); err != nil {
		return fail(err, "chmod")
	}
	return nil
}
