// Package cache implements the process-wide "unsafe cache": a
// request-fingerprint to resolution memo consulted at the very front of
// the pipeline. "Unsafe" because it is invalidated only by process
// restart or an explicit Reset, never by filesystem changes — this
// package never watches the filesystem for changes.
package cache

import (
	"encoding/hex"
	"sync"

	art "github.com/plar/go-adaptive-radix-tree"
	"github.com/zeebo/blake3"
)

// Key is the stable fingerprint of a cacheable request: a serialization
// of {path, request, query, fragment}. Path should be left empty by
// callers that have cacheWithContext disabled, since Path at the point
// the unsafe-cache step runs is the caller's context directory.
type Key struct {
	Path, Request, Query, Fragment string
}

// Fingerprint hashes a Key with blake3 (chosen for speed over cryptographic
// strength — this cache key only needs to be collision-resistant enough to
// avoid accidental aliasing between distinct requests within one process,
// not to resist a deliberate attacker) into a short hex string suitable as
// an ART tree key.
func (k Key) Fingerprint() string {
	h := blake3.New()
	_, _ = h.Write([]byte(k.Path))
	h.Write([]byte{0})
	_, _ = h.Write([]byte(k.Request))
	h.Write([]byte{0})
	_, _ = h.Write([]byte(k.Query))
	h.Write([]byte{0})
	_, _ = h.Write([]byte(k.Fragment))
	sum := h.Sum(nil)
	return hex.EncodeToString(sum)
}

// Predicate decides whether a resolved result is admitted into the cache;
// corresponds to the cachePredicate option.
type Predicate func(path, request string) bool

// AlwaysCache is the default Predicate: every request is admitted.
func AlwaysCache(string, string) bool { return true }

// Cache is a single Resolver's unsafe cache. Each Resolver must own its
// own Cache — distinct option sets must never share one, since two
// Resolvers can legitimately resolve the same request string to different
// answers.
type Cache struct {
	mu   sync.Mutex
	tree art.Tree
}

// New creates an empty Cache.
func New() *Cache {
	return &Cache{tree: art.New()}
}

// Entry is what's stored for a successful resolution.
type Entry struct {
	Result string
	Info   any
}

// Get returns the cached Entry for fp, if any.
func (c *Cache) Get(fp string) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.tree.Search(art.Key(fp))
	if !ok {
		return Entry{}, false
	}
	return v.(Entry), true
}

// Put stores an Entry for fp, overwriting any previous value.
func (c *Cache) Put(fp string, e Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tree.Insert(art.Key(fp), e)
}

// Reset discards every cached entry.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tree = art.New()
}

// Len reports the number of cached entries; used by tests to check how
// many entries Put and Reset leave behind.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tree.Size()
}
