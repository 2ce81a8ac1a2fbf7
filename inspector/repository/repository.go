package repository

// Project represents information about a detected C/C++ project
type Project struct {
	RootPath     string // Absolute path to the project root directory
	Type         string // Marker kind that identified the root (config, ignore, git, unknown)
	Name         string // Name of the project (git origin or directory name)
	RelativePath string // Path from project root to the inspected location
}
