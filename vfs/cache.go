package vfs

import (
	"sync"

	art "github.com/plar/go-adaptive-radix-tree"
)

type cacheEntry struct {
	info    FileInfo
	entries []FileInfo
	err     error
}

// CachingFileSystem memoizes Stat and ReadDir results per path in an
// adaptive radix tree, a data structure well suited to a path-keyed table
// that benefits from prefix-shaped access patterns — exactly what repeated
// ancestor walks (DescriptionFilePlugin, ModulesInHierachicDirectoriesPlugin)
// produce. ReadFile and Readlink are not cached: their results are consumed
// once and rarely re-requested for the same path within a single build.
type CachingFileSystem struct {
	Underlying FileSystem

	mu        sync.Mutex
	stats     art.Tree
	readdirs  art.Tree
}

// NewCachingFileSystem wraps fs with an unbounded per-Resolver cache,
// invalidated only by an explicit call to Reset.
func NewCachingFileSystem(fs FileSystem) *CachingFileSystem {
	return &CachingFileSystem{Underlying: fs, stats: art.New(), readdirs: art.New()}
}

func (c *CachingFileSystem) Stat(path string) (FileInfo, error) {
	c.mu.Lock()
	if v, ok := c.stats.Search(art.Key(path)); ok {
		c.mu.Unlock()
		e := v.(cacheEntry)
		return e.info, e.err
	}
	c.mu.Unlock()

	info, err := c.Underlying.Stat(path)

	c.mu.Lock()
	c.stats.Insert(art.Key(path), cacheEntry{info: info, err: err})
	c.mu.Unlock()

	return info, err
}

func (c *CachingFileSystem) ReadDir(path string) ([]FileInfo, error) {
	c.mu.Lock()
	if v, ok := c.readdirs.Search(art.Key(path)); ok {
		c.mu.Unlock()
		e := v.(cacheEntry)
		return e.entries, e.err
	}
	c.mu.Unlock()

	entries, err := c.Underlying.ReadDir(path)

	c.mu.Lock()
	c.readdirs.Insert(art.Key(path), cacheEntry{entries: entries, err: err})
	c.mu.Unlock()

	return entries, err
}

func (c *CachingFileSystem) ReadFile(path string) ([]byte, error) {
	return c.Underlying.ReadFile(path)
}

func (c *CachingFileSystem) Readlink(path string) (string, error) {
	return c.Underlying.Readlink(path)
}

// Reset discards every cached Stat/ReadDir result.
func (c *CachingFileSystem) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats = art.New()
	c.readdirs = art.New()
}

var _ FileSystem = (*CachingFileSystem)(nil)
