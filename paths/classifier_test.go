package paths_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/branchwell/resolve/paths"
)

func TestClassify(t *testing.T) {
	t.Parallel()
	cases := []struct {
		request string
		want    paths.Kind
	}{
		{"lodash", paths.Normal},
		{"lodash/fp", paths.Normal},
		{"@scope/pkg", paths.Normal},
		{"./foo", paths.Relative},
		{"../foo", paths.Relative},
		{".", paths.Relative},
		{"..", paths.Relative},
		{"", paths.Relative},
		{"/foo/bar", paths.AbsolutePosix},
		{"#internal", paths.Internal},
		{`C:\foo`, paths.AbsoluteWindows},
		{"C:/foo", paths.AbsoluteWindows},
		{`\\host\share`, paths.AbsoluteWindows},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.request, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, paths.Classify(tc.request))
		})
	}
}

func TestIsAbsolute(t *testing.T) {
	t.Parallel()
	assert.True(t, paths.AbsolutePosix.IsAbsolute())
	assert.True(t, paths.AbsoluteWindows.IsAbsolute())
	assert.False(t, paths.Normal.IsAbsolute())
	assert.False(t, paths.Relative.IsAbsolute())
}

func TestModuleAndRemainder(t *testing.T) {
	t.Parallel()
	cases := []struct {
		request       string
		module, remainder string
	}{
		{"lodash", "lodash", ""},
		{"lodash/fp", "lodash", "fp"},
		{"lodash/fp/identity", "lodash", "fp/identity"},
		{"@scope/pkg", "@scope/pkg", ""},
		{"@scope/pkg/sub", "@scope/pkg", "sub"},
		{"", "", ""},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.request, func(t *testing.T) {
			t.Parallel()
			module, remainder := paths.ModuleAndRemainder(tc.request)
			assert.Equal(t, tc.module, module)
			assert.Equal(t, tc.remainder, remainder)
		})
	}
}
