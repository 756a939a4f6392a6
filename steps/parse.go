// Package steps implements the small, composable steps a resolver wires
// into its hook graph: alias, alias-field, append-extension,
// description-file attach, directory-exists, file-exists, file-kind,
// join-request(-part), main-field, module-kind, modules-in-root,
// modules-in-hierarchy, next, parse, package-manager-lookup, result,
// symlink, try-next, unsafe-cache, use-file.
//
// Every step is a request.Step: a function of (ctx, engine, req, rctx)
// that yields, succeeds, fails, or forks via engine.DoResolve. Steps never
// import package resolve (the engine); they depend only on package
// request's shared vocabulary, which is what lets the engine import this
// package to tap steps onto its hooks without an import cycle.
package steps

import (
	"context"
	"strings"

	"github.com/branchwell/resolve/paths"
	"github.com/branchwell/resolve/request"
)

// fork calls e.DoResolve and translates its three-way outcome (match,
// yield, error) into a request.Result, the pattern nearly every step in
// this package follows after computing its candidate request(s).
func fork(ctx context.Context, e request.Engine, hook string, next request.Request, message string, rctx *request.Context) request.Result {
	res, err := e.DoResolve(ctx, hook, next, message, rctx)
	if err != nil {
		return request.Failed(err)
	}
	if res == nil {
		return request.Yield()
	}
	return request.Resolved(*res)
}

// Parse splits req.Request into {request, query, fragment, directory} and
// classifies req.Module, then forks into targetHook ("parsed-resolve").
// It never fails; it yields when there's nothing left to parse (an empty
// request string, meaning Path is already the answer).
func Parse(targetHook string) request.Step {
	return func(ctx context.Context, e request.Engine, req request.Request, rctx *request.Context) request.Result {
		if req.Request == "" {
			return request.Yield()
		}

		r := req.Request
		fragment := ""
		if i := strings.LastIndexByte(r, '#'); i >= 0 {
			fragment = r[i+1:]
			r = r[:i]
		}
		query := ""
		if i := strings.IndexByte(r, '?'); i >= 0 {
			query = r[i+1:]
			r = r[:i]
		}

		directory := strings.HasSuffix(r, "/")
		kind := paths.Classify(r)

		next := req.With(func(cp *request.Request) {
			cp.Request = r
			cp.Query = query
			cp.Fragment = fragment
			cp.Directory = directory
			cp.Module = kind == paths.Normal
		})
		return fork(ctx, e, targetHook, next, "parsed request", rctx)
	}
}
