// Package stringutil contains small string helpers shared across packages.
package stringutil

import "strings"

// MakePathPrefixer returns a function that prefixes URL paths with the
// configured base path.  An empty base path yields the path unchanged.
func MakePathPrefixer(basePath string) func(string) string {
	base := strings.Trim(basePath, "/")
	if base != "" {
		base = "/" + base
	}
	return func(path string) string {
		if !strings.HasPrefix(path, "/") {
			path = "/" + path
		}
		return base + path
	}
}
