package steps

import (
	"context"
	"strings"

	"github.com/branchwell/resolve/request"
)

// AppendExtension implements AppendPlugin: forks into targetHook ("file")
// with ext appended to Path, yielding (idempotently) when Path already
// ends with ext — enabling an extension that's already present on the
// request must not change the result.
func AppendExtension(ext string, targetHook string) request.Step {
	return func(ctx context.Context, e request.Engine, req request.Request, rctx *request.Context) request.Result {
		if strings.HasSuffix(req.Path, ext) {
			return request.Yield()
		}
		next := req.With(func(cp *request.Request) { cp.Path = req.Path + ext })
		return fork(ctx, e, targetHook, next, "appended extension "+ext, rctx)
	}
}
