// Package descfile implements the DescriptionFileLoader: locating, caching
// and parsing the nearest ancestor description file (e.g. package.json) for
// a given directory.
//
// Actually parsing a description file's bytes into structured data is left
// to an injected Parser rather than hard-coded to encoding/json, since
// callers describing packages with something other than JSON (or a
// non-standard package.json dialect) still need to plug into the same
// ancestor-walk and cache.
package descfile

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"sync"

	art "github.com/plar/go-adaptive-radix-tree"

	"github.com/branchwell/resolve/vfs"
)

// File is the parsed content of a description file together with the
// location it was found at.
type File struct {
	// Path is the absolute path to the description file itself.
	Path string
	// Root is Path's parent directory: every file under Root (until a
	// closer description file is found) is described by this File.
	Root string
	// Data is the parsed JSON object. Nested values are left as
	// map[string]any/[]any/primitives, matching encoding/json's default
	// unmarshalling target.
	Data map[string]any
}

// Parser turns a description file's raw bytes into structured data. The
// zero value of Loader uses encoding/json.Unmarshal, which is adequate for
// package.json-style files; callers with a different description file
// format may inject their own.
type Parser func(data []byte) (map[string]any, error)

func defaultParser(data []byte) (map[string]any, error) {
	var v map[string]any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// Loader locates and parses the nearest ancestor description file for a
// directory, caching the answer for every directory visited along the way
// in an adaptive radix tree keyed by path.
type Loader struct {
	FS     vfs.FileSystem
	Names  []string // candidate description-file names, priority order
	Parser Parser

	mu    sync.Mutex
	tree  art.Tree
	files sync.Map // Path -> *File, so two directories sharing a description file share the parse
}

// NewLoader constructs a Loader. names is the descriptionFiles option
// (priority order); if empty, ["package.json"] is assumed.
func NewLoader(fs vfs.FileSystem, names []string, parser Parser) *Loader {
	if len(names) == 0 {
		names = []string{"package.json"}
	}
	if parser == nil {
		parser = defaultParser
	}
	return &Loader{FS: fs, Names: names, Parser: parser, tree: art.New()}
}

// ErrNoDescriptionFile is returned when no ancestor of dir carries any of
// the configured description-file names.
var ErrNoDescriptionFile = errors.New("descfile: no description file found")

// Load walks ancestors of dir (dir itself first) looking for a file named
// any of l.Names. The first hit is parsed (or served from cache) and
// returned. I/O errors other than not-found propagate; exhausting all
// ancestors without a hit returns ErrNoDescriptionFile. Every directory
// visited along the walk is cached with the same answer, so a later lookup
// from any of them — not just the directory the walk started at — is a
// single tree lookup instead of a re-walk.
func (l *Loader) Load(dir string) (*File, error) {
	l.mu.Lock()
	if cached, ok := l.tree.Search(art.Key(dir)); ok {
		l.mu.Unlock()
		f, _ := cached.(*File)
		if f == nil {
			return nil, ErrNoDescriptionFile
		}
		return f, nil
	}
	l.mu.Unlock()

	dir = filepath.Clean(dir)
	var visited []string
	cur := dir
	for {
		if cached, ok := l.tree.Search(art.Key(cur)); ok {
			f, _ := cached.(*File)
			l.storeAll(visited, f)
			if f == nil {
				return nil, ErrNoDescriptionFile
			}
			return f, nil
		}
		visited = append(visited, cur)

		for _, name := range l.Names {
			candidate := filepath.Join(cur, name)
			if f, ok := l.files.Load(candidate); ok {
				l.storeAll(visited, f.(*File))
				return f.(*File), nil
			}

			data, err := l.FS.ReadFile(candidate)
			if err != nil {
				if vfs.IsNotFound(err) {
					continue
				}
				return nil, err
			}
			parsed, err := l.Parser(data)
			if err != nil {
				return nil, err
			}
			f := &File{Path: candidate, Root: cur, Data: parsed}
			l.files.Store(candidate, f)
			l.storeAll(visited, f)
			return f, nil
		}

		parent := filepath.Dir(cur)
		if parent == cur {
			l.storeAll(visited, nil)
			return nil, ErrNoDescriptionFile
		}
		cur = parent
	}
}

// storeAll records f as the answer for every directory in dirs, so a later
// Load from any of them is served from cache rather than re-walking.
func (l *Loader) storeAll(dirs []string, f *File) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, dir := range dirs {
		l.tree.Insert(art.Key(dir), f)
	}
}

// Reset clears every cached lookup and parsed file. Intended for tests and
// long-lived build daemons that need to react to an explicit cache-reset
// request; entries are otherwise invalidated only explicitly, never on a
// timer — this package doesn't watch the filesystem for changes.
func (l *Loader) Reset() {
	l.mu.Lock()
	l.tree = art.New()
	l.mu.Unlock()
	l.files = sync.Map{}
}

// Field looks up a dotted-path-free, single-level field in f.Data, the
// shape AliasFieldPlugin and MainFieldPlugin both need: a top-level key
// whose value is either absent, a string, a bool, or a nested object.
func (f *File) Field(name string) (any, bool) {
	if f == nil || f.Data == nil {
		return nil, false
	}
	v, ok := f.Data[name]
	return v, ok
}
