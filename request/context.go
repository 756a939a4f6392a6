package request

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/branchwell/resolve/trace"
)

// Context carries the ambient diagnostics that accompany one top-level
// Resolve call through every fork it spawns. It is not safe for concurrent
// use by more than one top-level call; each call to Resolver.Resolve gets
// its own.
type Context struct {
	// Issuer is the caller-supplied ContextInfo for this top-level
	// resolution, threaded through every fork so steps like
	// PackageManagerLookupPlugin can reach it without it being a field
	// of every Request.
	Issuer ContextInfo

	// Trace, if non-nil, accumulates a log entry for every fork.
	Trace *trace.Log

	// FileDependencies and MissingDependencies are populated by steps as
	// they stat/read files, so a caller doing incremental builds can
	// learn what to watch. This package never watches the filesystem
	// itself, only records what was consulted.
	FileDependencies    map[string]struct{}
	MissingDependencies map[string]struct{}

	mu    sync.Mutex
	stack []string // live (hook, fingerprint) pairs, for cycle detection
	depth int
}

// NewContext creates a Context with a fresh trace log when withTrace is
// true.
func NewContext(withTrace bool) *Context {
	c := &Context{
		FileDependencies:    map[string]struct{}{},
		MissingDependencies: map[string]struct{}{},
	}
	if withTrace {
		c.Trace = trace.NewLog()
	}
	return c
}

// AddFileDependency records path as having been read/stat'd during this
// resolution.
func (c *Context) AddFileDependency(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.FileDependencies[path] = struct{}{}
}

// AddMissingDependency records path as having been looked up but not
// found.
func (c *Context) AddMissingDependency(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.MissingDependencies[path] = struct{}{}
}

// fingerprint of a (hook, request) pair used for cycle detection.
func fingerprint(hook string, req Request) string {
	return fmt.Sprintf("%s\x00%s\x00%s", hook, req.Path, req.Request)
}

// Enter pushes (hook, req) onto the live fork stack, reporting an error if
// the fingerprint is already on the stack (a live cycle). On success it
// returns an exit function the caller must invoke (typically via defer)
// once the fork completes. log, if non-nil, receives an error entry if exit
// pops a frame other than the one Enter just pushed — a corrupted stack
// that would otherwise silently desync every depth reported after it.
func (c *Context) Enter(hook string, req Request, log *slog.Logger) (depth int, exit func(), err error) {
	fp := fingerprint(hook, req)

	c.mu.Lock()
	for _, live := range c.stack {
		if live == fp {
			d := len(c.stack)
			c.mu.Unlock()
			return d, func() {}, NewError(KindRecursion, req, fmt.Sprintf("recursive fork into hook %q", hook), nil)
		}
	}
	c.stack = append(c.stack, fp)
	c.depth = len(c.stack)
	d := c.depth
	c.mu.Unlock()

	return d, func() {
		c.mu.Lock()
		n := len(c.stack)
		if n == 0 {
			c.mu.Unlock()
			return
		}
		mismatch := c.stack[n-1] != fp
		c.stack = c.stack[:n-1]
		c.depth = n - 1
		c.mu.Unlock()
		if mismatch && log != nil {
			log.Error("bug: fork stack popped out of order", "hook", hook, "path", req.Path, "request", req.Request)
		}
	}, nil
}

// Depth returns the current fork stack depth, used to indent trace
// entries.
func (c *Context) Depth() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.depth
}
