package vfs

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// Adapter wraps a synchronous-only FileSystem and bounds how many of its
// calls may be in flight at once: each call runs inline on the caller's
// goroutine after acquiring a slot from a semaphore sized by
// MaxConcurrency. This is the Go analogue of enhanced-resolve's
// "useSyncFileSystemCalls" adapter, which wraps a synchronous fs to fit the
// async port; here every FileSystem call is already a plain function call,
// so the thing worth adapting is the degree of concurrency, not the calling
// convention. Each call still blocks its own goroutine until done — the
// adapter bounds how many are in flight at once rather than letting a build
// open unboundedly many file descriptors concurrently.
type Adapter struct {
	Underlying     FileSystem
	MaxConcurrency int64

	sem *semaphore.Weighted
}

// NewAdapter wraps fs with a semaphore bounding concurrent in-flight calls
// to maxConcurrency (a value <= 0 means unbounded).
func NewAdapter(fs FileSystem, maxConcurrency int64) *Adapter {
	a := &Adapter{Underlying: fs, MaxConcurrency: maxConcurrency}
	if maxConcurrency > 0 {
		a.sem = semaphore.NewWeighted(maxConcurrency)
	}
	return a
}

func (a *Adapter) acquire(ctx context.Context) error {
	if a.sem == nil {
		return nil
	}
	return a.sem.Acquire(ctx, 1)
}

func (a *Adapter) release() {
	if a.sem != nil {
		a.sem.Release(1)
	}
}

func (a *Adapter) Stat(path string) (FileInfo, error) {
	if err := a.acquire(context.Background()); err != nil {
		return nil, err
	}
	defer a.release()
	return a.Underlying.Stat(path)
}

func (a *Adapter) ReadFile(path string) ([]byte, error) {
	if err := a.acquire(context.Background()); err != nil {
		return nil, err
	}
	defer a.release()
	return a.Underlying.ReadFile(path)
}

func (a *Adapter) ReadDir(path string) ([]FileInfo, error) {
	if err := a.acquire(context.Background()); err != nil {
		return nil, err
	}
	defer a.release()
	return a.Underlying.ReadDir(path)
}

func (a *Adapter) Readlink(path string) (string, error) {
	if err := a.acquire(context.Background()); err != nil {
		return "", err
	}
	defer a.release()
	return a.Underlying.Readlink(path)
}

var _ FileSystem = (*Adapter)(nil)
