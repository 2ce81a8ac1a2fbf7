package info

import (
	"path/filepath"
	"strings"
)

// Kind classifies a scanned file.
type Kind int

const (
	// Other files are ignored by the tool
	Other Kind = iota
	Include
	Source
)

// Files holds the absolute paths a project lists.
type Files struct {
	IncludeFiles []string
	SourceFiles  []string
}

// Empty reports whether no file was found.
func (f Files) Empty() bool {
	return len(f.IncludeFiles) == 0 && len(f.SourceFiles) == 0
}

// Classify returns the file kind for name according to the configured
// extensions.
func (c *Config) Classify(name string) Kind {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return Other
	}
	for _, candidate := range c.IncludeExtensions {
		if ext == candidate {
			return Include
		}
	}
	for _, candidate := range c.SourceExtensions {
		if ext == candidate {
			return Source
		}
	}
	return Other
}
