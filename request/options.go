package request

import "github.com/branchwell/resolve/vfs"

// AliasEntry is one configured alias mapping. Name ending in "$" is
// encoded here as OnlyModule=true; a trailing "$" left on Name is not
// compared when an OnlyModule entry is matched.
type AliasEntry struct {
	Name       string
	Alias      []string // replacement requests, tried in order
	Ignore     bool     // true when alias was explicitly false
	OnlyModule bool
}

// MainFieldEntry is one configured mainFields entry. Name is a path of
// keys through nested objects (a single element names a top-level field);
// ForceRelative mirrors the {name, forceRelative} option shape.
type MainFieldEntry struct {
	Name          []string
	ForceRelative bool
}

// ModuleRoot is one configured entry of the "modules" option. Bare names
// (e.g. "node_modules") are looked up hierarchically; absolute paths name
// a single fixed root. Bare names that share priority are grouped by the
// caller into one ModuleRoot; within one ancestor directory, the
// later-listed name in Names wins.
type ModuleRoot struct {
	Names      []string // grouped bare names tried in this ancestor, last wins
	AbsoluteDir string  // set instead of Names for a fixed-root entry
}

// PackageManager is the pluggable package-manager lookup API (a Yarn
// Plug'n'Play-style collaborator): maps an (issuer, request) pair to an
// absolute path.
type PackageManager interface {
	Resolve(issuer ContextInfo, request string) (resolvedPath string, err error)
}

// Plugin is a user-supplied extension: anything that can tap itself onto
// a resolver's hooks.
type Plugin interface {
	Apply(e Engine)
}

// PluginFunc adapts a bare function taking the resolver to Plugin.
type PluginFunc func(e Engine)

func (f PluginFunc) Apply(e Engine) { f(e) }

// Predicate decides whether a resolved result is admitted into the unsafe
// cache; corresponds to the cachePredicate option.
type Predicate func(path, req string) bool

// Options is the declarative record the factory assembles a Resolver
// from. Every field has a documented default; Defaulted returns a copy
// with zero-value fields filled in.
type Options struct {
	// FileSystem is the required port every filesystem-touching step
	// reads and stats through.
	FileSystem vfs.FileSystem

	Alias       []AliasEntry
	AliasFields []string

	CachePredicate  Predicate
	CacheWithContext bool

	DescriptionFiles []string
	EnforceExtension bool
	Extensions       []string

	UnsafeCache bool
	Symlinks    bool

	Modules   []ModuleRoot
	MainFields []MainFieldEntry
	MainFiles  []string

	Plugins []Plugin

	PnpApi PackageManager

	ResolveToContext bool

	// Restrictions are glob patterns (matched with doublestar) that a
	// final resolved path must satisfy.
	Restrictions []string

	DescriptionFileParser func([]byte) (map[string]any, error)

	// MaxFileSystemConcurrency caps the number of filesystem calls in
	// flight at once across every resolution sharing this Resolver. Zero
	// means unbounded.
	MaxFileSystemConcurrency int64

	// UseSyncFileSystemCalls mirrors the JS option of the same name. The
	// Go port's FileSystem port is already synchronous (no callback/
	// Promise split exists in Go the way it does in the source runtime),
	// so this toggle has no behavioral effect here; it is kept on Options
	// purely so a caller porting a JS config object doesn't need to strip
	// the field first.
	UseSyncFileSystemCalls bool
}

// Defaulted returns a copy of o with the documented defaults filled in
// for every zero-valued slice and func field. The two bool fields that
// default to true (CacheWithContext, Symlinks) are left as they are.
func (o Options) Defaulted() Options {
	if o.CachePredicate == nil {
		o.CachePredicate = func(string, string) bool { return true }
	}
	if len(o.DescriptionFiles) == 0 {
		o.DescriptionFiles = []string{"package.json"}
	}
	if len(o.Extensions) == 0 {
		o.Extensions = []string{".js", ".json", ".node"}
	}
	if len(o.Modules) == 0 {
		o.Modules = []ModuleRoot{{Names: []string{"node_modules"}}}
	}
	if len(o.MainFields) == 0 {
		o.MainFields = []MainFieldEntry{{Name: []string{"main"}}}
	}
	if len(o.MainFiles) == 0 {
		o.MainFiles = []string{"index"}
	}
	// CacheWithContext and Symlinks default to true; since Go's zero value
	// for bool is false, Defaulted alone can't distinguish "unset" from
	// "explicitly false" for these fields. Callers wanting the documented
	// defaults use DefaultOptions(), which sets them before Defaulted runs.
	return o
}

// DefaultOptions returns the documented Options record for every key left
// at its default.
func DefaultOptions() Options {
	return Options{
		CacheWithContext: true,
		Symlinks:         true,
	}.Defaulted()
}
