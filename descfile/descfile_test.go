package descfile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/branchwell/resolve/descfile"
	"github.com/branchwell/resolve/vfs"
)

func TestLoaderWalksAncestors(t *testing.T) {
	t.Parallel()
	fs := vfs.NewMemFS().
		AddFile("/root/package.json", []byte(`{"name":"root","main":"./index.js"}`)).
		AddDir("/root/a/b/c")

	l := descfile.NewLoader(fs, nil, nil)

	f, err := l.Load("/root/a/b/c")
	require.NoError(t, err)
	assert.Equal(t, "/root/package.json", f.Path)
	assert.Equal(t, "/root", f.Root)

	v, ok := f.Field("main")
	require.True(t, ok)
	assert.Equal(t, "./index.js", v)

	_, ok = f.Field("missing")
	assert.False(t, ok)
}

func TestLoaderReturnsNotFoundWhenNoAncestorHasOne(t *testing.T) {
	t.Parallel()
	fs := vfs.NewMemFS().AddDir("/isolated/dir")
	l := descfile.NewLoader(fs, nil, nil)

	_, err := l.Load("/isolated/dir")
	assert.ErrorIs(t, err, descfile.ErrNoDescriptionFile)
}

func TestLoaderResetClearsCache(t *testing.T) {
	t.Parallel()
	fs := vfs.NewMemFS().AddFile("/root/package.json", []byte(`{"name":"root"}`))
	l := descfile.NewLoader(fs, nil, nil)

	_, err := l.Load("/root")
	require.NoError(t, err)

	l.Reset()
	_, err = l.Load("/root")
	require.NoError(t, err, "a reset loader should still find the file fresh")
}

func TestLoaderCustomParser(t *testing.T) {
	t.Parallel()
	fs := vfs.NewMemFS().AddFile("/root/manifest.toml", []byte("name=\"root\""))
	calls := 0
	parser := func(data []byte) (map[string]any, error) {
		calls++
		return map[string]any{"raw": string(data)}, nil
	}
	l := descfile.NewLoader(fs, []string{"manifest.toml"}, parser)

	f, err := l.Load("/root")
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	v, ok := f.Field("raw")
	require.True(t, ok)
	assert.Equal(t, `name="root"`, v)
}
