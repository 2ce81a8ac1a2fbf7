package coder

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/bufbuild/protocompile/reporter"
	"github.com/viant/afs"
	"github.com/viant/cmakegen/inspector"
	"github.com/viant/cmakegen/inspector/info"
	"github.com/viant/cmakegen/listfile"
	"github.com/viant/cmakegen/prompt"
)

// Coder creates list-files for a new source tree and keeps existing ones in
// sync with the files on disk.
type Coder struct {
	config    *info.Config
	inspector *inspector.Inspector
	fs        afs.Service
	io        prompt.IoHandler
	logger    *log.Logger
}

// New creates a coder for config.
func New(config *info.Config, options ...Option) (*Coder, error) {
	if config == nil {
		config = info.DefaultConfig()
	}
	srv, err := inspector.New(config)
	if err != nil {
		return nil, err
	}
	c := &Coder{
		config:    config,
		inspector: srv,
		fs:        afs.New(),
		io:        prompt.NewConsole(os.Stdin, os.Stdout),
		logger:    log.Default(),
	}
	for _, option := range options {
		option(c)
	}
	return c, nil
}

// Update synchronizes the file lists of every list-file under root. A failing
// directory is logged and skipped; the failures are returned joined.
func (c *Coder) Update(ctx context.Context, root string) error {
	dir, err := c.inspector.Scan(ctx, root)
	if err != nil {
		return err
	}
	var errs []error
	for _, project := range dir.Filter(hasListFile) {
		changed, err := c.updateDirectory(ctx, project)
		if err != nil {
			c.logger.Printf("failed to update %s: %v", project.Path, err)
			errs = append(errs, fmt.Errorf("%s: %w", project.Path, err))
			continue
		}
		if changed {
			c.logger.Printf("updated %s", project.ListFilePath())
		}
	}
	return errors.Join(errs...)
}

func (c *Coder) updateDirectory(ctx context.Context, dir *info.Directory) (bool, error) {
	file, err := listfile.Parse(ctx, c.fs, dir.Path, dir.ListFilePath(), c.reporter())
	if err != nil {
		return false, err
	}
	files := dir.ProjectFiles()
	if files.Empty() {
		return false, nil
	}
	if err := Synchronize(file, files); err != nil {
		return false, err
	}
	if err := file.Validate(); err != nil {
		return false, err
	}
	return file.Write(ctx, c.fs)
}

// Synchronize rewrites the include and source lists of file that differ from
// files. The include list is added when missing and removed when no header
// remains; a missing source list is not created.
func Synchronize(file *listfile.File, files info.Files) error {
	if len(files.IncludeFiles) > 0 {
		if file.FileListChanged(listfile.IncludeFiles, files.IncludeFiles) {
			if err := file.ReplaceFileList(listfile.IncludeFiles, files.IncludeFiles); err != nil {
				return err
			}
		}
	} else if _, ok := file.Statement(listfile.SetFileList(listfile.IncludeFiles)); ok {
		if err := file.RemoveFileList(listfile.IncludeFiles); err != nil {
			return err
		}
	}
	if len(files.SourceFiles) > 0 && file.FileListChanged(listfile.SourceFiles, files.SourceFiles) {
		return file.ReplaceFileList(listfile.SourceFiles, files.SourceFiles)
	}
	return nil
}

func (c *Coder) reporter() reporter.Reporter {
	return reporter.NewReporter(
		func(err reporter.ErrorWithPos) error {
			return err
		},
		func(err reporter.ErrorWithPos) {
			c.logger.Printf("warning: %v", err)
		},
	)
}

func hasListFile(dir *info.Directory) bool {
	return dir.HasListFile
}
