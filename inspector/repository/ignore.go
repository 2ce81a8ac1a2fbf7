package repository

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar"
	"github.com/viant/afs"
)

// DefaultIgnoreFileName holds one ignore pattern per line.
const DefaultIgnoreFileName = ".cmakegenignore"

// IgnoreFile matches slash separated paths relative to the project root.
// Patterns without a slash match any path segment; rooted patterns and those
// with an inner slash match the whole relative path.
type IgnoreFile struct {
	rules []rule
}

type rule struct {
	pattern string
	rooted  bool
}

// NewIgnoreFile creates rules from patterns.
func NewIgnoreFile(patterns ...string) *IgnoreFile {
	result := &IgnoreFile{}
	for _, pattern := range patterns {
		result.Add(pattern)
	}
	return result
}

// LoadIgnoreFile reads rules from URL on top of defaults. A missing file
// yields the defaults only.
func LoadIgnoreFile(ctx context.Context, URL string, defaults ...string) (*IgnoreFile, error) {
	result := NewIgnoreFile(defaults...)
	fs := afs.New()
	if exists, err := fs.Exists(ctx, URL); err != nil || !exists {
		return result, nil
	}
	content, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read ignore file %s: %w", URL, err)
	}
	scanner := bufio.NewScanner(bytes.NewReader(content))
	for scanner.Scan() {
		result.Add(scanner.Text())
	}
	return result, scanner.Err()
}

// Add appends a pattern; blank lines and # comments are skipped.
func (f *IgnoreFile) Add(pattern string) {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" || strings.HasPrefix(pattern, "#") {
		return
	}
	pattern = strings.TrimSuffix(pattern, "/")
	trimmed := strings.TrimPrefix(pattern, "/")
	if trimmed == "" {
		return
	}
	if _, err := doublestar.Match(trimmed, ""); err != nil {
		return
	}
	f.rules = append(f.rules, rule{pattern: trimmed, rooted: trimmed != pattern || strings.Contains(trimmed, "/")})
}

// Patterns returns the active patterns.
func (f *IgnoreFile) Patterns() []string {
	result := make([]string, 0, len(f.rules))
	for _, r := range f.rules {
		result = append(result, r.pattern)
	}
	return result
}

// Ignored reports whether relPath matches a rule.
func (f *IgnoreFile) Ignored(relPath string) bool {
	relPath = strings.TrimPrefix(path.Clean(relPath), "./")
	base := path.Base(relPath)
	for _, r := range f.rules {
		candidate := base
		if r.rooted {
			candidate = relPath
		}
		if matched, _ := doublestar.Match(r.pattern, candidate); matched {
			return true
		}
	}
	return false
}
