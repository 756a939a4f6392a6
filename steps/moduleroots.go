package steps

import (
	"context"
	"path/filepath"

	"github.com/branchwell/resolve/request"
)

// ModulesInRoot implements ModulesInRootPlugin: forks once into targetHook
// ("module") with Path replaced by the absolute root directory and
// Request left as it is.
func ModulesInRoot(rootDir string, targetHook string) request.Step {
	abs, err := filepath.Abs(rootDir)
	if err != nil {
		abs = rootDir
	}
	return func(ctx context.Context, e request.Engine, req request.Request, rctx *request.Context) request.Result {
		next := req.With(func(cp *request.Request) {
			cp.Path = abs
		})
		return fork(ctx, e, targetHook, next, "looking for modules in root "+abs, rctx)
	}
}

// ModulesInHierarchicDirectories implements
// ModulesInHierachicDirectoriesPlugin: for every ancestor of Path,
// enumerates the configured module-root names (a group of names sharing
// priority, tried last-configured-first so that the last-configured name
// wins within a directory), and forks into targetHook ("module") with
// Path = ancestor/name. Ancestors are tried innermost first, so a match
// close to Path naturally wins over one further away, because forking
// stops at first success.
func ModulesInHierarchicDirectories(names []string, targetHook string) request.Step {
	reversed := make([]string, len(names))
	for i, n := range names {
		reversed[len(names)-1-i] = n
	}
	return func(ctx context.Context, e request.Engine, req request.Request, rctx *request.Context) request.Result {
		dir := req.Path
		var errs []error
		for {
			for _, name := range reversed {
				candidate := filepath.Join(dir, name)
				next := req.With(func(cp *request.Request) { cp.Path = candidate })
				res, err := e.DoResolve(ctx, targetHook, next, "looking for modules in "+candidate, rctx)
				if err != nil {
					errs = append(errs, err)
					continue
				}
				if res != nil {
					return request.Resolved(*res)
				}
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
		if err := request.MostInformative(errs); err != nil {
			return request.Failed(err)
		}
		return request.Yield()
	}
}
