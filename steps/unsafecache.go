package steps

import (
	"context"
	"path/filepath"

	"github.com/branchwell/resolve/cache"
	"github.com/branchwell/resolve/request"
)

// UnsafeCache implements UnsafeCachePlugin: looks up a fingerprint of the
// incoming request in the shared cache, returning a cached resolution
// immediately on hit. On miss it forwards to targetHook and, once a
// terminal resolution bubbles back, stores it — but only when
// cachePredicate admits it.
func UnsafeCache(withContext bool, predicate request.Predicate, targetHook string) request.Step {
	if predicate == nil {
		predicate = func(string, string) bool { return true }
	}
	return func(ctx context.Context, e request.Engine, req request.Request, rctx *request.Context) request.Result {
		key := cache.Key{Request: req.Request, Query: req.Query, Fragment: req.Fragment}
		if withContext {
			key.Path = req.Path
		}
		fp := key.Fingerprint()

		if entry, ok := e.UnsafeCache().Get(fp); ok {
			next := req.With(func(cp *request.Request) { cp.Path = entry.Result; cp.Request = "" })
			return request.Resolved(next)
		}

		res, err := e.DoResolve(ctx, targetHook, req, "unsafe cache miss", rctx)
		if err != nil {
			return request.Failed(err)
		}
		if res == nil {
			return request.Yield()
		}
		if predicate(res.Path, req.Request) {
			e.UnsafeCache().Put(fp, cache.Entry{Result: filepath.Clean(res.Path)})
		}
		return request.Resolved(*res)
	}
}
