package steps

import (
	"context"

	"github.com/branchwell/resolve/request"
)

// PackageManagerLookup implements PackageManagerLookupPlugin: delegates
// module resolution to an external package-manager API (a Yarn
// Plug'n'Play-style collaborator), mapping (issuer, request) to an
// absolute path, then forks into targetHook ("relative") with Path
// replaced by that answer and Request cleared.
func PackageManagerLookup(pm request.PackageManager, targetHook string) request.Step {
	return func(ctx context.Context, e request.Engine, req request.Request, rctx *request.Context) request.Result {
		if pm == nil {
			return request.Yield()
		}
		resolved, err := pm.Resolve(rctx.Issuer, req.Request)
		if err != nil {
			return request.Yield()
		}
		next := req.With(func(cp *request.Request) {
			cp.Path = resolved
			cp.Request = ""
		})
		return fork(ctx, e, targetHook, next, "resolved via package manager", rctx)
	}
}
