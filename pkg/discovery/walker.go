// Package discovery finds the source files a lint run analyzes.
package discovery

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultMaxDepth bounds recursion when Walker.MaxDepth is zero.
const DefaultMaxDepth = 64

// ErrMaxDepth is wrapped by the SkippedDirError of a directory that lies
// deeper than the walker's depth limit.
var ErrMaxDepth = errors.New("maximum directory depth exceeded")

// SkippedDirError records a subdirectory that could not be listed. The walk
// continues with its siblings.
type SkippedDirError struct {
	Path string
	Err  error
}

func (e *SkippedDirError) Error() string {
	return fmt.Sprintf("skipped directory %s: %v", e.Path, e.Err)
}

func (e *SkippedDirError) Unwrap() error { return e.Err }

// Result is the outcome of one walk.
type Result struct {
	// Files holds matching paths in discovery order. Paths are joined onto
	// the root exactly as it was given.
	Files []string

	// Skipped holds one *SkippedDirError per subtree that was not visited.
	Skipped []error
}

// Walker recursively collects files with a given extension.
//
// A Walker holds configuration only. Each Walk call keeps its own state, so
// one Walker may be used from several goroutines.
type Walker struct {
	// Extension to keep, including the leading dot, e.g. ".ts".
	Extension string

	// Ignore holds doublestar patterns matched against slash-separated paths
	// relative to the root. Matching directories are not descended into.
	Ignore []string

	// MaxDepth limits how many directory levels below the root are visited.
	// Zero means DefaultMaxDepth.
	MaxDepth int

	// SkipSymlinks disables following symbolic links.
	SkipSymlinks bool

	Logger *slog.Logger
}

// New creates a walker for files ending in ext. A missing leading dot is added.
func New(ext string) *Walker {
	return &Walker{Extension: normalizeExt(ext)}
}

func normalizeExt(ext string) string {
	if ext != "" && !strings.HasPrefix(ext, ".") {
		return "." + ext
	}
	return ext
}

// ValidatePatterns reports the first syntactically invalid ignore pattern.
func ValidatePatterns(patterns []string) error {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("invalid ignore pattern %q: %w", p, doublestar.ErrBadPattern)
		}
	}
	return nil
}

// Walk collects every matching file below root.
//
// Entries are visited in lexical order, so the result is deterministic for
// a given tree. Symbolic links to directories are followed once: a set of
// resolved real paths guards against cycles. A subdirectory that cannot be
// listed is logged, recorded in Result.Skipped and otherwise ignored. Walk
// only fails when root itself cannot be read.
func (w *Walker) Walk(root string) (*Result, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to stat root %s: %w", root, err)
	}

	s := &walkState{
		Walker:  w,
		root:    root,
		ext:     normalizeExt(w.Extension),
		maxDep:  w.MaxDepth,
		visited: make(map[string]bool),
		log:     w.Logger,
		result:  &Result{},
	}
	if s.maxDep <= 0 {
		s.maxDep = DefaultMaxDepth
	}
	if s.log == nil {
		s.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if !info.IsDir() {
		if s.matches(root) {
			s.result.Files = append(s.result.Files, root)
		}
		return s.result, nil
	}

	if _, err := os.ReadDir(root); err != nil {
		return nil, fmt.Errorf("failed to list root %s: %w", root, err)
	}

	s.walkDir(root, 0)
	return s.result, nil
}

type walkState struct {
	*Walker
	root    string
	ext     string
	maxDep  int
	visited map[string]bool
	log     *slog.Logger
	result  *Result
}

func (s *walkState) walkDir(dir string, depth int) {
	if depth > s.maxDep {
		s.skip(dir, ErrMaxDepth)
		return
	}

	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		s.skip(dir, err)
		return
	}
	if abs, err := filepath.Abs(resolved); err == nil {
		resolved = abs
	}
	if s.visited[resolved] {
		s.log.Debug("directory already visited", "path", dir, "real_path", resolved)
		return
	}
	s.visited[resolved] = true

	entries, err := os.ReadDir(dir)
	if err != nil {
		s.skip(dir, err)
		return
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		isDir := entry.IsDir()

		if entry.Type()&os.ModeSymlink != 0 {
			if s.SkipSymlinks {
				continue
			}
			target, err := os.Stat(path)
			if err != nil {
				s.log.Debug("skipping broken symlink", "path", path, "error", err)
				continue
			}
			if !isDir && !target.IsDir() && !target.Mode().IsRegular() {
				continue
			}
			isDir = target.IsDir()
		} else if !isDir && !entry.Type().IsRegular() {
			continue
		}

		if s.ignored(path, isDir) {
			continue
		}

		if isDir {
			s.walkDir(path, depth+1)
			continue
		}
		if s.matches(path) {
			s.result.Files = append(s.result.Files, path)
		}
	}
}

func (s *walkState) skip(dir string, err error) {
	s.log.Warn("skipping directory", "path", dir, "error", err)
	s.result.Skipped = append(s.result.Skipped, &SkippedDirError{Path: dir, Err: err})
}

func (s *walkState) matches(path string) bool {
	return s.ext == "" || strings.HasSuffix(filepath.Base(path), s.ext)
}

// ignored returns true if path matches one of the ignore patterns.
func (s *walkState) ignored(path string, isDir bool) bool {
	if len(s.Ignore) == 0 {
		return false
	}
	rel, err := filepath.Rel(s.root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)

	for _, p := range s.Ignore {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
		if isDir {
			if ok, _ := doublestar.Match(p, rel+"/"); ok {
				return true
			}
		}
	}
	return false
}
