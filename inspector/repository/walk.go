package repository

import (
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/viant/cmakegen/inspector/info"
)

// Walk scans root into a directory tree, classifying files by the configured
// extensions and noting existing list-files. Paths matched by ignore are
// skipped. Entries are visited in name order.
func Walk(root string, config *info.Config, ignore *IgnoreFile) (*info.Directory, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if ignore == nil {
		ignore = NewIgnoreFile()
	}
	result := info.NewDirectory(absRoot)
	if err := walkDirectory(result, "", config, ignore); err != nil {
		return nil, err
	}
	return result, nil
}

func walkDirectory(dir *info.Directory, relative string, config *info.Config, ignore *IgnoreFile) error {
	entries, err := os.ReadDir(dir.Path)
	if err != nil {
		return fmt.Errorf("failed to read directory: %w", err)
	}
	for _, entry := range entries {
		relPath := path.Join(relative, entry.Name())
		if ignore.Ignored(relPath) {
			continue
		}
		entryPath := filepath.Join(dir.Path, entry.Name())
		if entry.IsDir() {
			child := info.NewDirectory(entryPath)
			if err := walkDirectory(child, relPath, config, ignore); err != nil {
				return fmt.Errorf("failed to read subfolder %s: %w", entry.Name(), err)
			}
			dir.AddChild(child)
			continue
		}
		if entry.Name() == info.ListFileName {
			dir.HasListFile = true
			continue
		}
		switch config.Classify(entry.Name()) {
		case info.Include:
			dir.IncludeFiles = append(dir.IncludeFiles, entryPath)
		case info.Source:
			dir.SourceFiles = append(dir.SourceFiles, entryPath)
		}
	}
	return nil
}
