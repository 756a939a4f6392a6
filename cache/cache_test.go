package cache_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/branchwell/resolve/cache"
)

func TestKeyFingerprintStable(t *testing.T) {
	t.Parallel()
	k := cache.Key{Path: "/a", Request: "./b", Query: "q", Fragment: "f"}
	assert.Equal(t, k.Fingerprint(), k.Fingerprint())
}

func TestKeyFingerprintDistinguishesFields(t *testing.T) {
	t.Parallel()
	base := cache.Key{Path: "/a", Request: "./b"}
	variants := []cache.Key{
		{Path: "/a", Request: "./c"},
		{Path: "/z", Request: "./b"},
		{Path: "/a", Request: "./b", Query: "q"},
		{Path: "/a", Request: "./b", Fragment: "f"},
	}
	for _, v := range variants {
		assert.NotEqual(t, base.Fingerprint(), v.Fingerprint())
	}
}

func TestCacheGetPutReset(t *testing.T) {
	t.Parallel()
	c := cache.New()
	assert.Equal(t, 0, c.Len())

	fp := cache.Key{Request: "./a"}.Fingerprint()
	_, ok := c.Get(fp)
	assert.False(t, ok)

	c.Put(fp, cache.Entry{Result: "/a/resolved.js"})
	entry, ok := c.Get(fp)
	require.True(t, ok)
	assert.Equal(t, "/a/resolved.js", entry.Result)
	assert.Equal(t, 1, c.Len())

	c.Reset()
	assert.Equal(t, 0, c.Len())
	_, ok = c.Get(fp)
	assert.False(t, ok)
}
