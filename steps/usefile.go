package steps

import (
	"context"
	"path/filepath"

	"github.com/branchwell/resolve/request"
)

// UseFile implements UseFilePlugin: for each configured main-file stem
// (e.g. "index"), appends it to Path and forks into targetHook
// ("undescribed-raw-file"); the first fork to succeed wins.
func UseFile(mainFiles []string, targetHook string) request.Step {
	return func(ctx context.Context, e request.Engine, req request.Request, rctx *request.Context) request.Result {
		var errs []error
		for _, name := range mainFiles {
			next := req.With(func(cp *request.Request) {
				cp.Path = filepath.Join(req.Path, name)
				cp.Request = ""
			})
			res, err := e.DoResolve(ctx, targetHook, next, "using main file "+name, rctx)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			if res != nil {
				return request.Resolved(*res)
			}
		}
		if err := request.MostInformative(errs); err != nil {
			return request.Failed(err)
		}
		return request.Yield()
	}
}
