package request

import (
	"context"

	"github.com/branchwell/resolve/cache"
	"github.com/branchwell/resolve/descfile"
	"github.com/branchwell/resolve/vfs"
)

// Result is what a Step produces: exactly one of (Yield, Resolved, Err) is
// meaningful, mirroring the three non-forking outcomes a tap can reach:
// yield to the next tap, terminate with a result, or terminate with an
// error. Forking itself is not part of Result — a step that wants to fork
// calls Engine.DoResolve directly and decides what to return based on
// that call's outcome.
type Result struct {
	Yield    bool
	Resolved *Request
	Err      error
}

// Yield is the Result a step returns to pass to the next tap.
func Yield() Result { return Result{Yield: true} }

// Resolved is the Result a step returns when it has produced a terminal
// value for this hook dispatch.
func Resolved(req Request) Result { return Result{Resolved: &req} }

// Failed is the Result a step returns when it has failed this hook
// dispatch outright (as opposed to yielding so a sibling tap can try).
func Failed(err error) Result { return Result{Err: err} }

// Step is a single tapped handler. It may yield, succeed, fail, or fork
// via the supplied Engine.
type Step func(ctx context.Context, e Engine, req Request, rctx *Context) Result

// Engine is the capability a Step needs from the resolver that's running
// it: forking into another hook, and access to this Resolver's configured
// collaborators. The concrete engine (package resolve's Resolver) and the
// step library (package steps) both depend on this interface instead of on
// each other, which is what lets the engine import the step library to
// wire it up without creating an import cycle.
type Engine interface {
	// DoResolve forks into targetHook with newReq. A nil, nil return means
	// every tap yielded (no match, not an error).
	DoResolve(ctx context.Context, targetHook string, newReq Request, message string, rctx *Context) (*Request, error)

	Options() Options
	FileSystem() vfs.FileSystem
	DescriptionFiles() *descfile.Loader
	UnsafeCache() *cache.Cache
}
