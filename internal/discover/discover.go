// Package discover enumerates the source files a run should process.
package discover

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

// Options controls which files Find returns.
type Options struct {
	Extension string   // e.g. ".java"
	Recursive bool     // descend into subdirectories
	Exclude   []string // glob patterns, matched against slash paths
}

// Matcher decides whether a path is a candidate source file.
type Matcher struct {
	ext      string
	excludes []glob.Glob
}

// NewMatcher compiles the exclude patterns in opts.
func NewMatcher(opts Options) (*Matcher, error) {
	m := &Matcher{ext: opts.Extension}
	for _, p := range opts.Exclude {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("exclude pattern %q: %w", p, err)
		}
		m.excludes = append(m.excludes, g)
	}
	return m, nil
}

// Match reports whether rel (relative to its root) is a candidate file.
func (m *Matcher) Match(rel string) bool {
	if m.ext != "" && !strings.EqualFold(filepath.Ext(rel), m.ext) {
		return false
	}
	return !m.Excluded(rel)
}

// Excluded reports whether rel matches an exclude pattern, either as a
// whole path or by its base name.
func (m *Matcher) Excluded(rel string) bool {
	slash := filepath.ToSlash(rel)
	base := filepath.Base(rel)
	for _, g := range m.excludes {
		if g.Match(slash) || g.Match(base) {
			return true
		}
	}
	return false
}

// Find returns the sorted, de-duplicated set of files under roots. A root
// that is a file is included as long as it is not excluded, whatever its
// extension.
func Find(roots []string, opts Options) ([]string, error) {
	m, err := NewMatcher(opts)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var files []string
	add := func(path string) {
		path = filepath.Clean(path)
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			if !m.Excluded(root) {
				add(root)
			}
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			rel, relErr := filepath.Rel(root, path)
			if relErr != nil {
				return relErr
			}
			if d.IsDir() {
				if path == root {
					return nil
				}
				if !opts.Recursive || m.Excluded(rel) {
					return filepath.SkipDir
				}
				return nil
			}
			if d.Type().IsRegular() && m.Match(rel) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(files)
	return files, nil
}
