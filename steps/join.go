package steps

import (
	"context"
	"path/filepath"

	"github.com/branchwell/resolve/paths"
	"github.com/branchwell/resolve/request"
)

// JoinRequest implements JoinRequestPlugin: combines Path and Request into
// a new Path, clears Request, and forks into targetHook ("relative"). It
// always forks, even when Request is already empty — joining with "" is a
// no-op, and several hooks (e.g. resolve-in-existing-directory, reached
// when a module request turns out to name a directory) rely on this being
// the sole tap that advances the pipeline regardless of whether there's a
// textual remainder left to join.
func JoinRequest(targetHook string) request.Step {
	return func(ctx context.Context, e request.Engine, req request.Request, rctx *request.Context) request.Result {
		next := req.With(func(cp *request.Request) {
			cp.Path = filepath.Join(req.Path, req.Request)
			cp.Request = ""
		})
		return fork(ctx, e, targetHook, next, "joined "+req.Path+" + "+req.Request, rctx)
	}
}

// JoinRequestPart implements JoinRequestPartPlugin: joins only the module
// name portion of Request onto Path, leaving the remainder as the new
// Request, then forks into targetHook ("resolve-in-directory"). This is
// how a resolved module root re-enters directory resolution with whatever
// subpath followed the module name, e.g. "lodash/fp" -> Path+="/lodash",
// Request="fp".
func JoinRequestPart(targetHook string) request.Step {
	return func(ctx context.Context, e request.Engine, req request.Request, rctx *request.Context) request.Result {
		if req.Request == "" {
			return request.Yield()
		}
		module, remainder := paths.ModuleAndRemainder(req.Request)
		next := req.With(func(cp *request.Request) {
			cp.Path = filepath.Join(req.Path, module)
			cp.Request = remainder
		})
		return fork(ctx, e, targetHook, next, "joined module part "+module, rctx)
	}
}
