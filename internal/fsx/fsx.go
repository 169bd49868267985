// Package fsx holds file system helpers for writing outputs safely.
package fsx

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
)

// Swapped in tests to simulate rename failures.
var renameFunc = os.Rename

// TargetIsDirError reports that the destination of a write is a directory.
type TargetIsDirError struct {
	Path string
}

func (e *TargetIsDirError) Error() string {
	return fmt.Sprintf("write target %q is a directory", e.Path)
}

// WriteFileAtomicReplace writes data to dir/name through a temporary file in
// the same directory and a rename, replacing any existing file. Readers never
// observe a partially written target.
//
// If dir/name is a symlink the write goes to the file it points at and the
// link itself is kept.
func WriteFileAtomicReplace(dir, name string, data []byte) error {
	dst, err := resolveTarget(filepath.Join(dir, name))
	if err != nil {
		return err
	}
	if fi, err := os.Stat(dst); err == nil && fi.IsDir() {
		return &TargetIsDirError{Path: dst}
	}
	dir, name = filepath.Split(dst)

	tmp, err := os.CreateTemp(dir, "."+name+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	if err := writeAll(tmp, data); err != nil {
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := renameFunc(tmpName, dst); err != nil {
		return err
	}

	// best-effort
	_ = syncDir(dir)
	return nil
}

// resolveTarget follows symlinks at path. A dangling link resolves to the
// path it names so the write creates that file.
func resolveTarget(path string) (string, error) {
	for hops := 0; hops < 40; hops++ {
		fi, err := os.Lstat(path)
		if os.IsNotExist(err) {
			return path, nil
		}
		if err != nil {
			return "", err
		}
		if fi.Mode()&os.ModeSymlink == 0 {
			return path, nil
		}
		link, err := os.Readlink(path)
		if err != nil {
			return "", err
		}
		if !filepath.IsAbs(link) {
			link = filepath.Join(filepath.Dir(path), link)
		}
		path = link
	}
	return "", fmt.Errorf("too many levels of symbolic links at %q", path)
}

func writeAll(w io.Writer, b []byte) error {
	for len(b) > 0 {
		n, err := w.Write(b)
		if err != nil {
			return err
		}
		b = b[n:]
	}
	return nil
}

func syncDir(dir string) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	f, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Sync()
}
