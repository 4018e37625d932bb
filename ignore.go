package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	gitignore "github.com/denormal/go-gitignore"
	"github.com/samber/lo"
)

// ignoreMatcher decides which paths the walker and the watcher never visit.
// It combines the default directory-name set, the output root, optional
// .siteignore rules, and custom glob patterns from the command line.
type ignoreMatcher struct {
	rootDir   string
	outputAbs string
	rules     gitignore.GitIgnore
	excludes  []string
}

// newIgnoreMatcher loads .siteignore from the source root if present and
// validates the custom exclude patterns. Invalid patterns are dropped with
// a warning rather than failing the build.
func newIgnoreMatcher(rootDir, outputAbs string, excludes []string) *ignoreMatcher {
	m := &ignoreMatcher{rootDir: rootDir, outputAbs: outputAbs}
	for _, pattern := range excludes {
		if !doublestar.ValidatePattern(pattern) {
			logWarn("Invalid exclude pattern %q ignored", pattern)
			continue
		}
		m.excludes = append(m.excludes, pattern)
	}
	m.rules = loadIgnoreFile(filepath.Join(rootDir, IgnoreFileName), rootDir)
	return m
}

// loadIgnoreFile reads a gitignore-style file into a matcher. A missing
// file yields a nil matcher, which matches nothing.
func loadIgnoreFile(path, baseDir string) gitignore.GitIgnore {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()
	return gitignore.New(f, baseDir, nil)
}

// shouldIgnoreDir reports whether a directory is skipped entirely.
func (m *ignoreMatcher) shouldIgnoreDir(path string) bool {
	if m.isOutputRoot(path) {
		return true
	}
	if lo.Contains(defaultIgnoreDirs, filepath.Base(path)) {
		return true
	}
	return m.matches(path, true)
}

// shouldIgnore reports whether a file is excluded from processing. The
// ignore file itself never appears in the output tree.
func (m *ignoreMatcher) shouldIgnore(path string) bool {
	if filepath.Base(path) == IgnoreFileName {
		return true
	}
	if m.underOutputRoot(path) {
		return true
	}
	// Watch events arrive as bare paths, not via a pruned walk, so files
	// under a default-ignored directory must be caught here too.
	for _, part := range strings.Split(m.relative(path), "/") {
		if lo.Contains(defaultIgnoreDirs, part) {
			return true
		}
	}
	return m.matches(path, false)
}

// matches checks .siteignore rules and the custom glob patterns.
func (m *ignoreMatcher) matches(path string, isDir bool) bool {
	rel := m.relative(path)
	if m.rules != nil {
		if match := m.rules.Relative(rel, isDir); match != nil && match.Ignore() {
			return true
		}
	}
	for _, pattern := range m.excludes {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

// relative returns the slash-normalized path relative to the source root.
func (m *ignoreMatcher) relative(path string) string {
	rel, err := filepath.Rel(m.rootDir, path)
	if err != nil {
		rel = path
	}
	return filepath.ToSlash(rel)
}

func (m *ignoreMatcher) isOutputRoot(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	return abs == m.outputAbs
}

func (m *ignoreMatcher) underOutputRoot(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	return abs == m.outputAbs || strings.HasPrefix(abs, m.outputAbs+string(filepath.Separator))
}
