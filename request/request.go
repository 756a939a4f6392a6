package request

import "github.com/branchwell/resolve/descfile"

// Request is the unit of work carried by the pipeline. Values are
// immutable once constructed: every step that needs to change a
// field calls With, which returns a shallow copy with overrides applied,
// rather than mutating a Request a sibling fork might still be holding.
type Request struct {
	// Path is the absolute directory currently under consideration.
	Path string
	// Request is the remaining textual request being resolved.
	Request string
	// Query is a trailing "?..." fragment, without its leading "?".
	Query string
	// Fragment is a trailing "#..." fragment, without its leading "#".
	Fragment string
	// Module is true iff Request begins with a bare-module identifier.
	Module bool
	// Directory is true iff the original request ended with "/".
	Directory bool

	DescriptionFilePath string
	DescriptionFileRoot string
	DescriptionFileData *descfile.File
	// RelativePath is Path expressed relative to DescriptionFileRoot when
	// a description file is attached.
	RelativePath string

	// context holds opaque markers individual steps add to break cycles,
	// e.g. "main field already tried for this description file".
	context map[string]struct{}
}

// With returns a copy of r with fn applied, leaving r untouched. Steps use
// this instead of mutating fields in place.
func (r Request) With(fn func(*Request)) Request {
	cp := r
	if r.context != nil {
		cp.context = make(map[string]struct{}, len(r.context))
		for k := range r.context {
			cp.context[k] = struct{}{}
		}
	}
	fn(&cp)
	return cp
}

// Mark records an opaque context marker on a copy of r.
func (r Request) Mark(marker string) Request {
	return r.With(func(cp *Request) {
		if cp.context == nil {
			cp.context = map[string]struct{}{}
		}
		cp.context[marker] = struct{}{}
	})
}

// Marked reports whether marker was previously recorded via Mark.
func (r Request) Marked(marker string) bool {
	if r.context == nil {
		return false
	}
	_, ok := r.context[marker]
	return ok
}

// ContextInfo is caller-supplied information about the code issuing the
// resolution request (e.g. the importing file), passed through to plugins
// such as PackageManagerLookupPlugin untouched by the core.
type ContextInfo struct {
	Issuer string
}

// Info is returned alongside a successful resolution: the matched
// description file path, plus the rendered trace when one was requested.
type Info struct {
	DescriptionFilePath string
	Trace               string
}
