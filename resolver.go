// Copyright 2020-2023 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package resolve implements a pluggable module-resolution engine: a
// hook-dispatch pipeline, modelled on the community "node-style"
// resolution algorithm, that turns a textual request issued from a known
// context directory into an absolute path on a (virtual) filesystem.
//
// The package itself holds only the engine — the hook registry and the
// doResolve fork machinery (hooks.go, resolver.go) plus the declarative
// assembly phase that wires a specific pipeline from an option set
// (factory.go). The actual step behaviors live in resolve/steps, kept
// separate from this package (and from each other) by the shared
// vocabulary in resolve/request, which is what avoids an import cycle
// between the engine and the steps it taps.
package resolve

import (
	"context"
	"log/slog"

	"github.com/branchwell/resolve/cache"
	"github.com/branchwell/resolve/descfile"
	"github.com/branchwell/resolve/request"
	"github.com/branchwell/resolve/vfs"
)

// ResolveRequest, ResolveContext, Options, and ContextInfo are the public
// names for the shared vocabulary types: callers of this package never
// need to import resolve/request directly.
type (
	ResolveRequest = request.Request
	ResolveContext = request.Context
	ResolveInfo    = request.Info
	ContextInfo    = request.ContextInfo
	Options        = request.Options
	AliasEntry     = request.AliasEntry
	MainFieldEntry = request.MainFieldEntry
	ModuleRoot     = request.ModuleRoot
	PackageManager = request.PackageManager
	Plugin         = request.Plugin
	PluginFunc     = request.PluginFunc
)

// DefaultOptions returns the documented option defaults for every key left
// unset.
func DefaultOptions() Options { return request.DefaultOptions() }

// NewResolveContext creates a ResolveContext for one top-level Resolve
// call. Pass withTrace true to have the resulting ResolveInfo carry a
// human-readable trace of every fork attempted.
func NewResolveContext(withTrace bool) *ResolveContext { return request.NewContext(withTrace) }

// Resolver executes requests through the hook graph NewResolver wires onto
// it. It owns the hook registry, the filesystem port, the option record,
// and a logger; its lifetime spans a whole build session, not a single
// resolve call.
type Resolver struct {
	opts        Options
	fs          vfs.FileSystem
	statCache   *vfs.CachingFileSystem
	descFiles   *descfile.Loader
	unsafeCache *cache.Cache
	hooks       *hookRegistry
	log         *slog.Logger
}

var _ request.Engine = (*Resolver)(nil)

func (r *Resolver) Options() Options                   { return r.opts }
func (r *Resolver) FileSystem() vfs.FileSystem         { return r.fs }
func (r *Resolver) DescriptionFiles() *descfile.Loader { return r.descFiles }
func (r *Resolver) UnsafeCache() *cache.Cache          { return r.unsafeCache }

// DoResolve forks into targetHook with newReq: cycle detection against the
// live fork stack, a trace entry proportional to stack depth, then
// dispatch.
func (r *Resolver) DoResolve(ctx context.Context, targetHook string, newReq request.Request, message string, rctx *request.Context) (*request.Request, error) {
	depth, exit, err := rctx.Enter(targetHook, newReq, r.log)
	if err != nil {
		return nil, err
	}
	defer exit()

	if rctx.Trace != nil {
		rctx.Trace.Add(depth, "%s: %s (path=%s request=%s)", targetHook, message, newReq.Path, newReq.Request)
	}

	result, err := r.hooks.dispatch(ctx, r, targetHook, newReq, rctx)
	if err != nil {
		return nil, annotateTrace(err, rctx)
	}
	return result, nil
}

// annotateTrace stamps the accumulated trace log onto a *request.Error so
// a caller asking for diagnostics can see the full fork path that led to a
// failure, without every step author having to do this themselves.
func annotateTrace(err error, rctx *request.Context) error {
	re, ok := err.(*request.Error)
	if !ok || rctx.Trace == nil || re.Trace != "" {
		return err
	}
	re.Trace = rctx.Trace.String()
	return re
}

// Resolve drives a single top-level request through the pipeline. result
// is the absolute path the request resolved to; info carries the matched
// description file path and, when rctx was created with tracing enabled,
// a rendered trace.
func (r *Resolver) Resolve(ctx context.Context, issuer ContextInfo, contextDir, req string, rctx *ResolveContext) (result string, info ResolveInfo, err error) {
	if rctx == nil {
		rctx = request.NewContext(false)
	}
	rctx.Issuer = issuer

	if contextDir == "" {
		return "", ResolveInfo{}, request.NewError(request.KindBadRequest, request.Request{Request: req}, "context directory must not be empty", nil)
	}

	start := request.Request{Path: contextDir, Request: req}
	out, err := r.DoResolve(ctx, "resolve", start, "top-level resolve", rctx)
	if err != nil {
		if rctx.Trace != nil {
			return "", ResolveInfo{Trace: rctx.Trace.String()}, err
		}
		return "", ResolveInfo{}, err
	}
	if out == nil {
		noMatch := request.NewError(request.KindNoResolution, start, "no tap produced a result", nil)
		if rctx.Trace != nil {
			return "", ResolveInfo{Trace: rctx.Trace.String()}, noMatch
		}
		return "", ResolveInfo{}, noMatch
	}

	info = ResolveInfo{DescriptionFilePath: out.DescriptionFilePath}
	if rctx.Trace != nil {
		info.Trace = rctx.Trace.String()
	}
	return out.Path, info, nil
}

// ResetCaches discards every entry in the unsafe cache and the
// description-file cache, the operation a build watcher calls between
// incremental builds (watching the filesystem for changes itself remains
// out of scope for this package).
func (r *Resolver) ResetCaches() {
	r.unsafeCache.Reset()
	r.descFiles.Reset()
	r.statCache.Reset()
}

