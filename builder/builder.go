// Package builder configures and builds a CMake project in its build
// directory.
package builder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ExitError reports a build tool run that finished with a non-zero status.
type ExitError struct {
	Command string
	Code    int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s: exit status %d", e.Command, e.Code)
}

// Runner executes a command in dir.
type Runner func(ctx context.Context, dir string, stdout, stderr io.Writer, name string, args ...string) error

// Builder runs the configure and build steps of the build tool.
type Builder struct {
	Tool     string
	Root     string
	BuildDir string
	Stdout   io.Writer
	Stderr   io.Writer
	run      Runner
}

// New creates a builder for the project at root.
func New(tool, root, buildDir string) *Builder {
	return &Builder{
		Tool:     tool,
		Root:     root,
		BuildDir: buildDir,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		run:      execute,
	}
}

// WithRunner replaces how commands are executed.
func (b *Builder) WithRunner(run Runner) *Builder {
	b.run = run
	return b
}

// Build creates the build directory, configures the project into it and
// builds it. It stops at the first failing step.
func (b *Builder) Build(ctx context.Context) error {
	buildDir := b.BuildDir
	if !filepath.IsAbs(buildDir) {
		buildDir = filepath.Join(b.Root, buildDir)
	}
	if err := os.MkdirAll(buildDir, 0755); err != nil {
		return fmt.Errorf("failed to create build directory %s: %w", buildDir, err)
	}
	steps := [][]string{
		{"-S", b.Root, "-B", buildDir},
		{"--build", buildDir},
	}
	for _, args := range steps {
		if err := b.run(ctx, b.Root, b.Stdout, b.Stderr, b.Tool, args...); err != nil {
			return err
		}
	}
	return nil
}

func execute(ctx context.Context, dir string, stdout, stderr io.Writer, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	err := cmd.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExitError{Command: name + " " + strings.Join(args, " "), Code: exitErr.ExitCode()}
	}
	if err != nil {
		return fmt.Errorf("failed to run %s: %w", name, err)
	}
	return nil
}
