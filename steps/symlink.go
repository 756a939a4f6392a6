package steps

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/branchwell/resolve/request"
	"github.com/branchwell/resolve/vfs"
)

// Symlink implements SymlinkPlugin: resolves every symlink along Path
// (via repeated Readlink calls, the same way filepath.EvalSymlinks walks
// a path component by component) and, if the canonical path differs from
// the original, forks into targetHook ("existing-file") with the
// canonical path. Otherwise it yields, letting Next advance the pipeline
// with the original path — every successful resolution must equal its own
// readlink-canonical form when symlinks are enabled.
func Symlink(targetHook string) request.Step {
	return func(ctx context.Context, e request.Engine, req request.Request, rctx *request.Context) request.Result {
		canonical, changed, err := canonicalize(e.FileSystem(), req.Path)
		if err != nil {
			return request.Failed(request.NewError(request.KindIO, req, "resolving symlinks", err))
		}
		if !changed {
			return request.Yield()
		}
		next := req.With(func(cp *request.Request) { cp.Path = canonical })
		return fork(ctx, e, targetHook, next, "resolved symlink to "+canonical, rctx)
	}
}

// canonicalize walks path component by component, following any symlink
// encountered, up to a fixed number of hops to guard against a cyclic
// symlink chain.
func canonicalize(fs vfs.FileSystem, path string) (string, bool, error) {
	const maxHops = 40

	clean := filepath.Clean(path)
	parts := strings.Split(filepath.ToSlash(clean), "/")

	resolved := "/"
	if len(parts) > 0 && parts[0] == "" {
		parts = parts[1:]
	}

	changed := false
	for hop := 0; hop < maxHops; hop++ {
		if len(parts) == 0 {
			break
		}
		next := filepath.Join(resolved, parts[0])
		target, err := fs.Readlink(next)
		switch {
		case err == nil:
			changed = true
			if filepath.IsAbs(target) {
				resolved = "/"
			}
			rest := strings.Split(filepath.ToSlash(target), "/")
			parts = append(rest, parts[1:]...)
			if len(parts) > 0 && parts[0] == "" {
				parts = parts[1:]
			}
			continue
		case err == vfs.ErrNotSymlink:
			resolved = next
			parts = parts[1:]
		default:
			return "", false, err
		}
	}
	return filepath.Clean(resolved), changed, nil
}
