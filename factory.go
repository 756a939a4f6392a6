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

package resolve

import (
	"errors"
	"log/slog"

	"github.com/branchwell/resolve/cache"
	"github.com/branchwell/resolve/descfile"
	"github.com/branchwell/resolve/steps"
	"github.com/branchwell/resolve/vfs"
)

// NewResolver builds a fully-taped Resolver from opts. It first ensures
// every named hook exists, then pushes taps in a fixed order: aliases
// before module-kind, extension-less match before appended-extension
// attempts, and so on. Ordering here is load-bearing — see the per-hook
// comments below for why each tap comes where it does.
func NewResolver(opts Options) (*Resolver, error) {
	if opts.FileSystem == nil {
		return nil, errors.New("resolve: Options.FileSystem is required")
	}
	opts = opts.Defaulted()

	statCache := vfs.NewCachingFileSystem(opts.FileSystem)
	fs := vfs.FileSystem(statCache)
	if opts.MaxFileSystemConcurrency > 0 {
		fs = vfs.NewAdapter(fs, opts.MaxFileSystemConcurrency)
	}

	r := &Resolver{
		opts:        opts,
		fs:          fs,
		statCache:   statCache,
		descFiles:   descfile.NewLoader(fs, opts.DescriptionFiles, descfile.Parser(opts.DescriptionFileParser)),
		unsafeCache: cache.New(),
		hooks:       newHookRegistry(),
		log:         slog.Default(),
	}

	for _, hook := range []string{
		"resolve", "new-resolve", "parsed-resolve", "described-resolve",
		"raw-module", "relative", "module", "resolve-in-directory",
		"resolve-in-existing-directory", "described-relative", "directory",
		"undescribed-existing-directory", "existing-directory",
		"undescribed-raw-file", "raw-file", "file", "existing-file", "resolved",
	} {
		r.hooks.ensureHook(hook)
	}

	// resolve --(UnsafeCache?)--> new-resolve
	if opts.UnsafeCache {
		r.hooks.tap("resolve", steps.UnsafeCache(opts.CacheWithContext, opts.CachePredicate, "new-resolve"))
	} else {
		r.hooks.tap("resolve", steps.Next("new-resolve"))
	}

	// new-resolve --> ParsePlugin --> parsed-resolve
	r.hooks.tap("new-resolve", steps.Parse("parsed-resolve"))

	// parsed-resolve --> DescriptionFilePlugin(up) --> described-resolve
	r.hooks.tap("parsed-resolve", steps.DescriptionFileUp("described-resolve"))

	// described-resolve: Aliases*, AliasFields*, ModuleKind, JoinRequest, in
	// that order — AliasPlugin must precede ModuleKindPlugin because an
	// alias may rewrite a module request into a relative one.
	if len(opts.Alias) > 0 {
		r.hooks.tap("described-resolve", steps.Alias(opts.Alias, "resolve"))
	}
	if len(opts.AliasFields) > 0 {
		r.hooks.tap("described-resolve", steps.AliasField(opts.AliasFields, "resolve"))
	}
	r.hooks.tap("described-resolve", steps.ModuleKind("raw-module"))
	r.hooks.tap("described-resolve", steps.JoinRequest("relative"))

	// raw-module: PackageManagerLookup? then ModulesIn{Root,Hierarchic}*.
	if opts.PnpApi != nil {
		r.hooks.tap("raw-module", steps.PackageManagerLookup(opts.PnpApi, "relative"))
	}
	for _, root := range opts.Modules {
		if root.AbsoluteDir != "" {
			r.hooks.tap("raw-module", steps.ModulesInRoot(root.AbsoluteDir, "module"))
			continue
		}
		if len(root.Names) > 0 {
			r.hooks.tap("raw-module", steps.ModulesInHierarchicDirectories(root.Names, "module"))
		}
	}

	// module --> JoinRequestPart --> resolve-in-directory
	r.hooks.tap("module", steps.JoinRequestPart("resolve-in-directory"))

	// resolve-in-directory: FileKind (single-file-module branch) before
	// DirectoryExists, so a file beats a same-named directory.
	r.hooks.tap("resolve-in-directory", steps.FileKind("undescribed-raw-file"))
	r.hooks.tap("resolve-in-directory", steps.DirectoryExists("resolve-in-existing-directory"))

	// resolve-in-existing-directory --> JoinRequest --> relative
	r.hooks.tap("resolve-in-existing-directory", steps.JoinRequest("relative"))

	// relative --> DescriptionFilePlugin(up) --> described-relative
	r.hooks.tap("relative", steps.DescriptionFileUp("described-relative"))

	// described-relative: FileKind before TryNext("as directory") — try
	// the request as a file first, fall back to directory semantics only
	// once the file branch yields with nothing.
	r.hooks.tap("described-relative", steps.FileKind("raw-file"))
	r.hooks.tap("described-relative", steps.TryNext("directory", "as directory"))

	// directory --> DirectoryExists --> undescribed-existing-directory
	r.hooks.tap("directory", steps.DirectoryExists("undescribed-existing-directory"))

	// undescribed-existing-directory: resolveToContext short-circuits
	// straight to resolved (the directory itself is the answer); otherwise
	// attach a description file and try configured main files, falling
	// back to a plain UseFile attempt if no description file applied.
	if opts.ResolveToContext {
		r.hooks.tap("undescribed-existing-directory", steps.Next("resolved"))
	} else {
		r.hooks.tap("undescribed-existing-directory", steps.DescriptionFileDown("existing-directory"))
		r.hooks.tap("undescribed-existing-directory", steps.UseFile(opts.MainFiles, "undescribed-raw-file"))
	}

	// existing-directory: MainField before UseFile — an explicit main
	// field entry always beats the generic main-file fallback.
	r.hooks.tap("existing-directory", steps.MainField(opts.MainFields, "resolve-in-existing-directory"))
	r.hooks.tap("existing-directory", steps.UseFile(opts.MainFiles, "undescribed-raw-file"))

	// undescribed-raw-file --> DescriptionFilePlugin(down) --> raw-file
	r.hooks.tap("undescribed-raw-file", steps.DescriptionFileDown("raw-file"))

	// raw-file: extension-less match before appended-extension attempts,
	// so an explicit extension in the request beats a synthesised one.
	if !opts.EnforceExtension {
		r.hooks.tap("raw-file", steps.TryNext("file", "no extension"))
	}
	for _, ext := range opts.Extensions {
		r.hooks.tap("raw-file", steps.AppendExtension(ext, "file"))
	}

	// file: Alias*/AliasField* before FileExists. AliasField* is keyed by
	// relativePath, so it can fire once a description file is attached.
	// Alias* matches against req.Request, which is already empty on this
	// hook, so plain alias entries do not match here.
	if len(opts.Alias) > 0 {
		r.hooks.tap("file", steps.Alias(opts.Alias, "resolve"))
	}
	if len(opts.AliasFields) > 0 {
		r.hooks.tap("file", steps.AliasField(opts.AliasFields, "resolve"))
	}
	r.hooks.tap("file", steps.FileExists("existing-file"))

	// existing-file: Symlink? (self-fork to re-check once canonicalized)
	// before the unconditional Next into resolved.
	if opts.Symlinks {
		r.hooks.tap("existing-file", steps.Symlink("existing-file"))
	}
	r.hooks.tap("existing-file", steps.Next("resolved"))

	// resolved --> ResultPlugin (terminal)
	r.hooks.tap("resolved", steps.Result(opts.Restrictions))

	for _, plugin := range opts.Plugins {
		plugin.Apply(r)
	}

	return r, nil
}

// Tap re-taps additional plugins onto an already-built Resolver, the Go
// equivalent of passing the `resolver` option to re-use an existing
// instance instead of building a fresh one.
func (r *Resolver) Tap(plugins ...Plugin) {
	for _, p := range plugins {
		p.Apply(r)
	}
}
