package inspector

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/viant/cmakegen/inspector/cpp"
	"github.com/viant/cmakegen/inspector/info"
	"github.com/viant/cmakegen/inspector/repository"
)

// vcsDirectory is never scanned.
const vcsDirectory = ".git"

// Inspector scans a C/C++ source tree into directories with their include
// and source files, existing list-files and entry points.
type Inspector struct {
	config    *info.Config
	functions *cpp.Inspector
}

// New creates an inspector with the given config
func New(config *info.Config) (*Inspector, error) {
	if config == nil {
		config = info.DefaultConfig()
	}
	functions, err := cpp.NewInspector(config.DetectConcurrency)
	if err != nil {
		return nil, err
	}
	return &Inspector{
		config:    config,
		functions: functions,
	}, nil
}

// Scan walks root applying the ignore file found there. The build directory
// and VCS metadata are always skipped.
func (i *Inspector) Scan(ctx context.Context, root string) (*info.Directory, error) {
	ignoreURL := filepath.Join(root, i.config.IgnoreFile)
	ignore, err := repository.LoadIgnoreFile(ctx, ignoreURL, i.config.BuildDir, vcsDirectory)
	if err != nil {
		return nil, err
	}
	dir, err := repository.Walk(root, i.config, ignore)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}
	return dir, nil
}

// InspectProject scans root and marks directories whose sources define main.
func (i *Inspector) InspectProject(ctx context.Context, root string) (*info.Directory, error) {
	dir, err := i.Scan(ctx, root)
	if err != nil {
		return nil, err
	}
	if !i.config.DetectEntryPoints {
		return dir, nil
	}
	if err := i.functions.InspectProject(ctx, dir); err != nil {
		return nil, fmt.Errorf("failed to detect entry points: %w", err)
	}
	return dir, nil
}
