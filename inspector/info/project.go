package info

import (
	"path"
	"path/filepath"
)

// ListFileName is the list-file name a project directory carries.
const ListFileName = "CMakeLists.txt"

// Directory is one node of the scanned source tree.
type Directory struct {
	Path          string
	IncludeFiles  []string
	SourceFiles   []string
	HasListFile   bool
	HasEntryPoint bool
	Parent        *Directory
	Children      []*Directory
}

// NewDirectory creates a tree node for path.
func NewDirectory(path string) *Directory {
	return &Directory{Path: path}
}

// AddChild attaches child below d.
func (d *Directory) AddChild(child *Directory) {
	child.Parent = d
	d.Children = append(d.Children, child)
}

// Name returns the directory base name, used as the default project name.
func (d *Directory) Name() string {
	return filepath.Base(d.Path)
}

// ListFilePath returns the path of the directory list-file.
func (d *Directory) ListFilePath() string {
	return filepath.Join(d.Path, ListFileName)
}

// Relative returns the path of d relative to base with forward slashes.
func (d *Directory) Relative(base *Directory) string {
	rel, err := filepath.Rel(base.Path, d.Path)
	if err != nil {
		return filepath.ToSlash(d.Path)
	}
	return path.Clean(filepath.ToSlash(rel))
}

// Walk visits d and its descendants breadth first. Children of a directory
// for which visit returns false are skipped.
func (d *Directory) Walk(visit func(dir *Directory) bool) {
	queue := []*Directory{d}
	for len(queue) > 0 {
		dir := queue[0]
		queue = queue[1:]
		if !visit(dir) {
			continue
		}
		queue = append(queue, dir.Children...)
	}
}

// Filter returns the directories of the tree matching the predicate, in
// breadth first order.
func (d *Directory) Filter(predicate func(dir *Directory) bool) []*Directory {
	var result []*Directory
	d.Walk(func(dir *Directory) bool {
		if predicate(dir) {
			result = append(result, dir)
		}
		return true
	})
	return result
}

// ProjectFiles gathers the files owned by the project rooted at d: its own
// files and those of descendants without a list-file of their own.
func (d *Directory) ProjectFiles() Files {
	var files Files
	d.Walk(func(dir *Directory) bool {
		if dir != d && dir.HasListFile {
			return false
		}
		files.IncludeFiles = append(files.IncludeFiles, dir.IncludeFiles...)
		files.SourceFiles = append(files.SourceFiles, dir.SourceFiles...)
		return true
	})
	return files
}

// SubProjects returns the nearest descendants that carry a list-file.
func (d *Directory) SubProjects() []*Directory {
	var result []*Directory
	d.Walk(func(dir *Directory) bool {
		if dir == d {
			return true
		}
		if dir.HasListFile {
			result = append(result, dir)
			return false
		}
		return true
	})
	return result
}

// HasEntryPoints reports whether d or a descendant owned by its project
// defines main.
func (d *Directory) HasEntryPoints() bool {
	found := false
	d.Walk(func(dir *Directory) bool {
		if dir != d && dir.HasListFile {
			return false
		}
		if dir.HasEntryPoint {
			found = true
		}
		return !found
	})
	return found
}
