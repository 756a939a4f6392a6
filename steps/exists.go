package steps

import (
	"context"

	"github.com/branchwell/resolve/request"
	"github.com/branchwell/resolve/vfs"
)

// DirectoryExists implements DirectoryExistsPlugin: stats req.Path,
// yielding when it doesn't exist (or isn't a directory), and forking into
// targetHook when it does.
func DirectoryExists(targetHook string) request.Step {
	return func(ctx context.Context, e request.Engine, req request.Request, rctx *request.Context) request.Result {
		info, err := e.FileSystem().Stat(req.Path)
		if err != nil {
			if vfs.IsNotFound(err) {
				rctx.AddMissingDependency(req.Path)
				return request.Yield()
			}
			return request.Failed(request.NewError(request.KindIO, req, "statting directory", err))
		}
		if !info.IsDir() {
			return request.Yield()
		}
		rctx.AddFileDependency(req.Path)
		return fork(ctx, e, targetHook, req, "existing directory "+req.Path, rctx)
	}
}

// FileExists implements FileExistsPlugin: stats the candidate file at
// req.Path, yielding when it doesn't exist (or is a directory), and
// forking into targetHook when it does.
func FileExists(targetHook string) request.Step {
	return func(ctx context.Context, e request.Engine, req request.Request, rctx *request.Context) request.Result {
		info, err := e.FileSystem().Stat(req.Path)
		if err != nil {
			if vfs.IsNotFound(err) {
				rctx.AddMissingDependency(req.Path)
				return request.Yield()
			}
			return request.Failed(request.NewError(request.KindIO, req, "statting file", err))
		}
		if info.IsDir() {
			return request.Yield()
		}
		rctx.AddFileDependency(req.Path)
		return fork(ctx, e, targetHook, req, "existing file "+req.Path, rctx)
	}
}

// FileKind implements FileKindPlugin: guards the non-directory branch,
// yielding when req.Directory is set (a trailing slash forces directory
// semantics) or when a subpath is still left in req.Request (only Path
// itself can name the file), and forking into targetHook otherwise.
func FileKind(targetHook string) request.Step {
	return func(ctx context.Context, e request.Engine, req request.Request, rctx *request.Context) request.Result {
		if req.Directory || req.Request != "" {
			return request.Yield()
		}
		return fork(ctx, e, targetHook, req, "treating as file", rctx)
	}
}
