package stringutil_test

import (
	"testing"

	"github.com/bitosaur/emlee/pkg/stringutil"
	"github.com/stretchr/testify/assert"
)

func TestMakePathPrefixer(t *testing.T) {
	testCases := []struct {
		name, base, path, want string
	}{
		{"empty base", "", "/serve/", "/serve/"},
		{"bare base", "emlee", "/serve/", "/emlee/serve/"},
		{"slashed base", "/emlee/", "/serve/", "/emlee/serve/"},
		{"nested base", "tools/emlee", "/api/", "/tools/emlee/api/"},
		{"missing leading slash", "emlee", "api", "/emlee/api"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			prefix := stringutil.MakePathPrefixer(tc.base)
			assert.Equal(t, tc.want, prefix(tc.path))
		})
	}
}
