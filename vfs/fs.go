// Package vfs defines the FileSystem port the resolver core depends on:
// stat/readdir/readFile/readlink over an abstract filesystem, plus an
// adapter that lets a purely synchronous implementation stand in for one
// capable of servicing concurrent forks, and a small LRU-free stat/readdir
// cache keyed by an adaptive radix tree.
//
// Implementing an actual filesystem (on-disk or virtual) is left to a
// collaborator; this package only defines the port and ships one reference
// implementation (MemFS) for tests.
package vfs

import (
	"errors"
	"io/fs"
)

// FileInfo is the subset of os.FileInfo the resolver needs.
type FileInfo interface {
	Name() string
	IsDir() bool
	Mode() fs.FileMode
}

// FileSystem is the port the resolver core depends on. Every method may
// block; the core treats each call as a potential suspension point but does
// not itself require true asynchrony — it is the caller's choice whether
// Stat/ReadFile/etc. return immediately or after real I/O.
type FileSystem interface {
	Stat(path string) (FileInfo, error)
	ReadFile(path string) ([]byte, error)
	ReadDir(path string) ([]FileInfo, error)
	// Readlink returns the immediate link target of path. Implementations
	// that don't support symlinks should return ErrNotSymlink.
	Readlink(path string) (string, error)
}

// Error tags a FileSystem failure as not-found or as a generic i/o error,
// so steps can distinguish "yield to the next tap" (not-found) from
// "terminate the request" (i/o).
type Error struct {
	Op      string
	Path    string
	NotExist bool
	Err     error
}

func (e *Error) Error() string {
	return e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// ErrNotSymlink is returned by Readlink when the path is not a symlink.
var ErrNotSymlink = errors.New("vfs: not a symlink")

// IsNotFound reports whether err (as returned by a FileSystem method)
// indicates the path does not exist.
func IsNotFound(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.NotExist
	}
	return errors.Is(err, fs.ErrNotExist)
}

func wrap(op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Path: path, NotExist: errors.Is(err, fs.ErrNotExist), Err: err}
}
