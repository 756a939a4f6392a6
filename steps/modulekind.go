package steps

import (
	"context"

	"github.com/branchwell/resolve/request"
)

// ModuleKind implements ModuleKindPlugin: yields unless req.Module, in
// which case it clears Module and forks into targetHook ("raw-module").
func ModuleKind(targetHook string) request.Step {
	return func(ctx context.Context, e request.Engine, req request.Request, rctx *request.Context) request.Result {
		if !req.Module {
			return request.Yield()
		}
		next := req.With(func(cp *request.Request) { cp.Module = false })
		return fork(ctx, e, targetHook, next, "is a module request", rctx)
	}
}
