package steps

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/branchwell/resolve/descfile"
	"github.com/branchwell/resolve/request"
)

// DescriptionFileUp walks ancestor directories of req.Path (via
// engine.DescriptionFiles) searching for a description file, attaches it
// to the request, and forks into targetHook. On I/O error other than
// not-found it propagates; when no ancestor has one, it forks anyway with
// the description-file fields left empty, since not every directory needs
// one.
func DescriptionFileUp(targetHook string) request.Step {
	return func(ctx context.Context, e request.Engine, req request.Request, rctx *request.Context) request.Result {
		f, err := e.DescriptionFiles().Load(req.Path)
		if err != nil {
			if err == descfile.ErrNoDescriptionFile {
				return fork(ctx, e, targetHook, req, "no description file found", rctx)
			}
			return request.Failed(request.NewError(request.KindIO, req, "loading description file", err))
		}

		rel, relErr := filepath.Rel(f.Root, req.Path)
		if relErr != nil {
			rel = ""
		}
		next := req.With(func(cp *request.Request) {
			cp.DescriptionFilePath = f.Path
			cp.DescriptionFileRoot = f.Root
			cp.DescriptionFileData = f
			cp.RelativePath = rel
		})
		return fork(ctx, e, targetHook, next, "using description file: "+f.Path, rctx)
	}
}

// DescriptionFileDown re-uses a description file already attached earlier
// in this request's lineage instead of re-walking ancestors. If none is
// attached yet, it falls back to walking up, since a directory reached via
// a fresh fork (e.g. after ModulesInRootPlugin) may not have inherited
// one.
func DescriptionFileDown(targetHook string) request.Step {
	up := DescriptionFileUp(targetHook)
	return func(ctx context.Context, e request.Engine, req request.Request, rctx *request.Context) request.Result {
		if req.DescriptionFileRoot != "" && underRoot(req.Path, req.DescriptionFileRoot) {
			rel, err := filepath.Rel(req.DescriptionFileRoot, req.Path)
			if err != nil {
				rel = ""
			}
			next := req.With(func(cp *request.Request) { cp.RelativePath = rel })
			return fork(ctx, e, targetHook, next, "reusing attached description file", rctx)
		}
		return up(ctx, e, req, rctx)
	}
}

func underRoot(path, root string) bool {
	path, root = filepath.Clean(path), filepath.Clean(root)
	return path == root || strings.HasPrefix(path, root+string(filepath.Separator))
}
