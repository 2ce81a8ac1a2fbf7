package coder

import (
	"log"

	"github.com/viant/afs"
	"github.com/viant/cmakegen/prompt"
)

type Option func(*Coder)

// WithIoHandler sets where questions go and answers come from.
func WithIoHandler(handler prompt.IoHandler) Option {
	return func(c *Coder) {
		c.io = handler
	}
}

// WithLogger sets the logger for per-directory progress and failures.
func WithLogger(logger *log.Logger) Option {
	return func(c *Coder) {
		c.logger = logger
	}
}

// WithFs sets the file service used to read and write list-files.
func WithFs(fs afs.Service) Option {
	return func(c *Coder) {
		c.fs = fs
	}
}
