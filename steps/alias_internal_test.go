package steps

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchAlias(t *testing.T) {
	t.Parallel()

	matched, rest := matchAlias("foo", false, "foo")
	assert.True(t, matched)
	assert.Equal(t, "", rest)

	matched, rest = matchAlias("foo", false, "foo/bar")
	assert.True(t, matched)
	assert.Equal(t, "/bar", rest)

	matched, _ = matchAlias("foo", false, "foobar")
	assert.False(t, matched, "foo must not match foobar as a prefix without a separator")

	matched, _ = matchAlias("foo$", true, "foo/bar")
	assert.False(t, matched, "onlyModule entries never match a subpath")

	matched, rest = matchAlias("foo$", true, "foo")
	assert.True(t, matched)
	assert.Equal(t, "", rest)
}

func TestLookupAliasField(t *testing.T) {
	t.Parallel()

	table := map[string]any{
		"./a": false,
		"b":   "./b-browser.js",
	}

	v, ok := lookupAliasField(table, "./a")
	assert.True(t, ok)
	assert.Equal(t, false, v)

	v, ok = lookupAliasField(table, "b/sub")
	assert.True(t, ok)
	assert.Equal(t, "./b-browser.js/sub", v)

	_, ok = lookupAliasField(table, "missing")
	assert.False(t, ok)
}
