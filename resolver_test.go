package resolve_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	resolve "github.com/branchwell/resolve"
	"github.com/branchwell/resolve/request"
	"github.com/branchwell/resolve/vfs"
)

// extensionsFixture builds a small extension-resolution scenario tree,
// rooted at /fx/extensions.
func extensionsFixture() *vfs.MemFS {
	fs := vfs.NewMemFS()
	fs.AddFile("/fx/extensions/foo.ts", []byte("ts"))
	fs.AddFile("/fx/extensions/foo.js", []byte("js"))
	fs.AddFile("/fx/extensions/dir/index.ts", []byte("ts"))
	fs.AddFile("/fx/extensions/package.json", []byte(`{"main": "./index.js"}`))
	fs.AddFile("/fx/extensions/index.js", []byte("js"))
	fs.AddFile("/fx/extensions/node_modules/module.js", []byte("js"))
	fs.AddFile("/fx/extensions/node_modules/module/index.ts", []byte("ts"))
	return fs
}

func newExtensionsResolver(t *testing.T) *resolve.Resolver {
	t.Helper()
	opts := resolve.DefaultOptions()
	opts.FileSystem = extensionsFixture()
	opts.Extensions = []string{".ts", ".js"}
	r, err := resolve.NewResolver(opts)
	require.NoError(t, err)
	return r
}

func TestResolveScenarios(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		request string
		want    string
	}{
		{"extensionless request prefers configured order", "./foo", "/fx/extensions/foo.ts"},
		{"directory request falls back to main file and extension", "./dir", "/fx/extensions/dir/index.ts"},
		{"dot request uses main field", ".", "/fx/extensions/index.js"},
		{"bare module: single file beats same-named directory", "module", "/fx/extensions/node_modules/module.js"},
		{"trailing slash forces directory semantics", "module/", "/fx/extensions/node_modules/module/index.ts"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			r := newExtensionsResolver(t)
			got, _, err := r.Resolve(context.Background(), resolve.ContextInfo{}, "/fx/extensions", tc.request, nil)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestResolveTrailingSlashOnFileRequestFails(t *testing.T) {
	t.Parallel()
	r := newExtensionsResolver(t)
	_, _, err := r.Resolve(context.Background(), resolve.ContextInfo{}, "/fx/extensions", "./foo.js/", nil)
	require.Error(t, err)
	assert.True(t, request.IsKind(err, request.KindNoResolution))
}

func TestResolveIsIdempotentUnderUnsafeCache(t *testing.T) {
	t.Parallel()

	withoutCache := resolve.DefaultOptions()
	withoutCache.FileSystem = extensionsFixture()
	withoutCache.Extensions = []string{".ts", ".js"}
	plain, err := resolve.NewResolver(withoutCache)
	require.NoError(t, err)

	withCache := withoutCache
	withCache.FileSystem = extensionsFixture()
	withCache.UnsafeCache = true
	cached, err := resolve.NewResolver(withCache)
	require.NoError(t, err)

	for _, req := range []string{"./foo", "module", "module/"} {
		want, _, err := plain.Resolve(context.Background(), resolve.ContextInfo{}, "/fx/extensions", req, nil)
		require.NoError(t, err)

		got1, _, err := cached.Resolve(context.Background(), resolve.ContextInfo{}, "/fx/extensions", req, nil)
		require.NoError(t, err)
		got2, _, err := cached.Resolve(context.Background(), resolve.ContextInfo{}, "/fx/extensions", req, nil)
		require.NoError(t, err)

		assert.Equal(t, want, got1)
		assert.Equal(t, want, got2, "cached resolution must not change the answer")
	}
}

func TestResolveAlias(t *testing.T) {
	t.Parallel()
	fs := vfs.NewMemFS().AddFile("/fx/alias/bar.js", []byte("bar"))
	opts := resolve.DefaultOptions()
	opts.FileSystem = fs
	opts.Alias = []resolve.AliasEntry{
		{Name: "foo", Alias: []string{"./bar"}},
	}
	r, err := resolve.NewResolver(opts)
	require.NoError(t, err)

	got, _, err := r.Resolve(context.Background(), resolve.ContextInfo{}, "/fx/alias", "foo", nil)
	require.NoError(t, err)
	assert.Equal(t, "/fx/alias/bar.js", got)
}

func TestResolveAliasFalseFails(t *testing.T) {
	t.Parallel()
	fs := vfs.NewMemFS().AddFile("/fx/alias/bar.js", []byte("bar"))
	opts := resolve.DefaultOptions()
	opts.FileSystem = fs
	opts.Alias = []resolve.AliasEntry{
		{Name: "ignored", Ignore: true},
	}
	r, err := resolve.NewResolver(opts)
	require.NoError(t, err)

	_, _, err = r.Resolve(context.Background(), resolve.ContextInfo{}, "/fx/alias", "ignored", nil)
	require.Error(t, err)
	assert.True(t, request.IsKind(err, request.KindAliasedToFalse))
}

func TestResolveResolveToContext(t *testing.T) {
	t.Parallel()
	fs := vfs.NewMemFS().AddDir("/fx/ctx/pkg")
	opts := resolve.DefaultOptions()
	opts.FileSystem = fs
	opts.ResolveToContext = true
	r, err := resolve.NewResolver(opts)
	require.NoError(t, err)

	got, _, err := r.Resolve(context.Background(), resolve.ContextInfo{}, "/fx/ctx", "./pkg", nil)
	require.NoError(t, err)
	assert.Equal(t, "/fx/ctx/pkg", got)
}

func TestResolveRestrictionsExcludesMatch(t *testing.T) {
	t.Parallel()
	fs := vfs.NewMemFS().AddFile("/fx/restrict/node_modules/lib.js", []byte("lib"))
	opts := resolve.DefaultOptions()
	opts.FileSystem = fs
	opts.Restrictions = []string{"/fx/restrict/src/**"}
	r, err := resolve.NewResolver(opts)
	require.NoError(t, err)

	_, _, err = r.Resolve(context.Background(), resolve.ContextInfo{}, "/fx/restrict", "./node_modules/lib.js", nil)
	require.Error(t, err)
	assert.True(t, request.IsKind(err, request.KindNoResolution))
}

func TestResolveSymlinkCanonicalizes(t *testing.T) {
	t.Parallel()
	fs := vfs.NewMemFS().AddFile("/fx/sym/real.js", []byte("real"))
	fs.AddSymlink("/fx/sym/link.js", "/fx/sym/real.js")
	opts := resolve.DefaultOptions()
	opts.FileSystem = fs
	r, err := resolve.NewResolver(opts)
	require.NoError(t, err)

	got, _, err := r.Resolve(context.Background(), resolve.ContextInfo{}, "/fx/sym", "./link.js", nil)
	require.NoError(t, err)
	assert.Equal(t, "/fx/sym/real.js", got)
}

func TestResolveTraceIsPopulatedOnFailure(t *testing.T) {
	t.Parallel()
	fs := vfs.NewMemFS()
	opts := resolve.DefaultOptions()
	opts.FileSystem = fs
	r, err := resolve.NewResolver(opts)
	require.NoError(t, err)

	rctx := resolve.NewResolveContext(true)
	_, info, err := r.Resolve(context.Background(), resolve.ContextInfo{}, "/fx/missing", "./nope", rctx)
	require.Error(t, err)
	assert.NotEmpty(t, info.Trace)
}

func TestResolveInfoIsDeterministic(t *testing.T) {
	t.Parallel()
	fs := vfs.NewMemFS()
	opts := resolve.DefaultOptions()
	opts.FileSystem = fs
	r, err := resolve.NewResolver(opts)
	require.NoError(t, err)

	rctx1 := resolve.NewResolveContext(true)
	_, info1, err := r.Resolve(context.Background(), resolve.ContextInfo{}, "/fx/missing", "./nope", rctx1)
	require.Error(t, err)

	rctx2 := resolve.NewResolveContext(true)
	_, info2, err := r.Resolve(context.Background(), resolve.ContextInfo{}, "/fx/missing", "./nope", rctx2)
	require.Error(t, err)

	if diff := cmp.Diff(info1, info2); diff != "" {
		t.Errorf("ResolveInfo for the same failing request differs between runs (-first +second):\n%s", diff)
	}
}

func TestResolveRequiresFileSystem(t *testing.T) {
	t.Parallel()
	_, err := resolve.NewResolver(resolve.DefaultOptions())
	require.Error(t, err)
}
