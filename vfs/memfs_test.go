package vfs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/branchwell/resolve/vfs"
)

func TestMemFSStatAndReadFile(t *testing.T) {
	t.Parallel()
	fs := vfs.NewMemFS().AddFile("/a/b.txt", []byte("hello"))

	info, err := fs.Stat("/a/b.txt")
	require.NoError(t, err)
	assert.False(t, info.IsDir())

	info, err = fs.Stat("/a")
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	data, err := fs.ReadFile("/a/b.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	_, err = fs.Stat("/missing")
	assert.True(t, vfs.IsNotFound(err))
}

func TestMemFSReadDir(t *testing.T) {
	t.Parallel()
	fs := vfs.NewMemFS().
		AddFile("/a/one.txt", []byte("1")).
		AddFile("/a/two.txt", []byte("2")).
		AddDir("/a/sub")

	entries, err := fs.ReadDir("/a")
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"one.txt", "two.txt", "sub"}, names)
}

func TestMemFSSymlink(t *testing.T) {
	t.Parallel()
	fs := vfs.NewMemFS().AddFile("/a/real.txt", []byte("x"))
	fs.AddSymlink("/a/link.txt", "/a/real.txt")

	target, err := fs.Readlink("/a/link.txt")
	require.NoError(t, err)
	assert.Equal(t, "/a/real.txt", target)

	_, err = fs.Readlink("/a/real.txt")
	assert.ErrorIs(t, err, vfs.ErrNotSymlink)
}

func TestCachingFileSystemMemoizesStat(t *testing.T) {
	t.Parallel()
	underlying := &countingFS{MemFS: vfs.NewMemFS().AddFile("/a.txt", []byte("x"))}
	cached := vfs.NewCachingFileSystem(underlying)

	_, err := cached.Stat("/a.txt")
	require.NoError(t, err)
	_, err = cached.Stat("/a.txt")
	require.NoError(t, err)

	assert.Equal(t, 1, underlying.statCalls)

	cached.Reset()
	_, err = cached.Stat("/a.txt")
	require.NoError(t, err)
	assert.Equal(t, 2, underlying.statCalls)
}

type countingFS struct {
	*vfs.MemFS
	statCalls int
}

func (c *countingFS) Stat(path string) (vfs.FileInfo, error) {
	c.statCalls++
	return c.MemFS.Stat(path)
}
