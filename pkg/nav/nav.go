// Package nav tracks the position of the open email file among its
// directory siblings for next/previous traversal.
package nav

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// State holds the ordered sibling listing and the current position.  It is
// a snapshot: rebuilt on every open, never incrementally maintained.
type State struct {
	// Paths is the eligible sibling files, sorted case-insensitively.
	Paths []string

	// Index is the position of the opened file within Paths, or -1 when
	// the opened file was not present in the listing.
	Index int
}

// Scan lists the directory containing opened non-recursively, keeps files
// with one of the given extensions (matched case-insensitively), sorts them
// case-insensitively by full path, and locates the opened file.
func Scan(opened string, exts []string) (*State, error) {
	dir := filepath.Dir(opened)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !eligible(entry.Name(), exts) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.SliceStable(paths, func(i, j int) bool {
		return strings.ToLower(paths[i]) < strings.ToLower(paths[j])
	})

	state := &State{Paths: paths, Index: -1}
	for i, p := range paths {
		if p == filepath.Clean(opened) {
			state.Index = i
			break
		}
	}
	return state, nil
}

// Next returns the path following the current position, wrapping at the
// end.  Returns false when the listing is empty.
func (s *State) Next() (string, bool) {
	if len(s.Paths) == 0 {
		return "", false
	}
	return s.Paths[(s.Index+1)%len(s.Paths)], true
}

// Previous returns the path preceding the current position, wrapping at the
// start.  Returns false when the listing is empty.
func (s *State) Previous() (string, bool) {
	if len(s.Paths) == 0 {
		return "", false
	}
	k := len(s.Paths)
	return s.Paths[((s.Index-1)%k+k)%k], true
}

func eligible(name string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}
