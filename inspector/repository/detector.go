package repository

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/viant/cmakegen/inspector/info"
)

// Detector identifies project root folders and provides project-related information
type Detector struct {
	// Common project root marker files/directories
	markers []string
}

// New creates a new project detector instance
func New() *Detector {
	return &Detector{
		markers: []string{
			info.ConfigFileName,   // tool configuration
			DefaultIgnoreFileName, // ignore rules
		},
	}
}

// DetectProject identifies the project root for the given path. The search
// walks up from path and stops at the enclosing git repository root; without
// a marker the path itself is the root.
func (d *Detector) DetectProject(location string) (*Project, error) {
	absPath, err := filepath.Abs(location)
	if err != nil {
		return nil, err
	}
	startDir := absPath
	fileInfo, err := os.Stat(absPath)
	if err != nil {
		return nil, err
	}
	if !fileInfo.IsDir() {
		startDir = filepath.Dir(absPath)
	}

	project := &Project{
		Type:     "unknown",
		RootPath: startDir,
	}
	if rootPath, projectType := d.findProjectRoot(startDir); rootPath != "" {
		project.RootPath = rootPath
		project.Type = projectType
	}

	relPath, err := filepath.Rel(project.RootPath, absPath)
	if err != nil {
		relPath = filepath.Base(absPath)
	}
	project.RelativePath = filepath.ToSlash(relPath)
	project.Name = extractProjectName(project.RootPath)
	return project, nil
}

// findProjectRoot searches up from the current directory for project markers
func (d *Detector) findProjectRoot(startDir string) (string, string) {
	dir := startDir
	for {
		for _, marker := range d.markers {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, determineProjectType(marker)
			}
		}
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return dir, "git"
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", ""
}

// extractProjectName uses the git origin repository name when available and
// falls back to the directory name.
func extractProjectName(rootPath string) string {
	if name := extractGitProjectName(rootPath); name != "" {
		return name
	}
	return filepath.Base(rootPath)
}

func extractGitProjectName(gitRoot string) string {
	file, err := os.Open(filepath.Join(gitRoot, ".git", "config"))
	if err != nil {
		return ""
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	foundRemote := false
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.Contains(line, "[remote \"origin\"]") {
			foundRemote = true
			continue
		}
		if foundRemote && strings.HasPrefix(line, "url = ") {
			url := strings.TrimSuffix(strings.TrimPrefix(line, "url = "), ".git")
			if index := strings.LastIndexAny(url, "/:"); index != -1 {
				url = url[index+1:]
			}
			return url
		}
	}
	return ""
}

// determineProjectType identifies the type of project based on the marker file
func determineProjectType(marker string) string {
	switch marker {
	case info.ConfigFileName:
		return "config"
	case DefaultIgnoreFileName:
		return "ignore"
	default:
		return "unknown"
	}
}
