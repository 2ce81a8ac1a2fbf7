package coder

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/viant/cmakegen/inspector/info"
	"github.com/viant/cmakegen/listfile"
	"github.com/viant/cmakegen/prompt"
)

const (
	libraryType    = "lib"
	executableType = "exe"
	languages      = "CXX"
)

// Generate walks the user through creating list-files for a tree that has
// none yet. Nothing is written when a list-file already exists.
func (c *Coder) Generate(ctx context.Context, root string) error {
	c.io.Write("Welcome to cmakegen")
	c.io.Write("This tool will guide you through the process of configuring all the CMakeLists.txt files needed for your project")

	dir, err := c.inspector.InspectProject(ctx, root)
	if err != nil {
		return err
	}
	if len(dir.Filter(hasListFile)) > 0 {
		c.io.Write("Found CMakeLists.txt files in the project, please use -b instead to update them.")
		return nil
	}
	if err := c.placeListFiles(ctx, dir); err != nil {
		return err
	}
	projects := dir.Filter(hasListFile)
	if len(projects) == 0 {
		return nil
	}

	cmakeVersion, err := c.askCMakeVersion()
	if err != nil {
		return err
	}
	cppVersion, err := prompt.Optional(c.io, "C++ version?", c.config.CppStandard)
	if err != nil {
		return err
	}
	for _, project := range projects {
		file, err := c.populate(project, cmakeVersion, cppVersion)
		if err != nil {
			return err
		}
		if _, err := file.Write(ctx, c.fs); err != nil {
			return err
		}
		c.logger.Printf("created %s", file.Path)
	}
	return nil
}

// placeListFiles asks which directories become projects and creates an empty
// list-file in each.
func (c *Coder) placeListFiles(ctx context.Context, dir *info.Directory) error {
	candidates := dir.Filter(func(*info.Directory) bool { return true })
	options := make([]string, len(candidates))
	for i, candidate := range candidates {
		options[i] = candidate.Relative(dir)
	}
	indices, err := prompt.Select(c.io,
		"Found the following folders, please specify which should be considered projects (contain CMakeLists.txt):",
		options,
		"==> Folders to create CMakeLists.txt in (ex: (N)one, 1 2 3 or 1-3)")
	if err != nil {
		return err
	}
	for _, index := range indices {
		candidate := candidates[index]
		if err := c.fs.Upload(ctx, candidate.ListFilePath(), os.FileMode(0644), bytes.NewReader(nil)); err != nil {
			return fmt.Errorf("failed to create %s: %w", candidate.ListFilePath(), err)
		}
		candidate.HasListFile = true
	}
	return nil
}

func (c *Coder) askCMakeVersion() (string, error) {
	for {
		version, err := prompt.Optional(c.io, "CMake version?", c.config.CMakeVersion)
		if err != nil {
			return "", err
		}
		if err := info.ValidateCMakeVersion(version); err != nil {
			c.io.Write(err.Error())
			continue
		}
		return version, nil
	}
}

// populate builds the canonical list-file of a project directory.
func (c *Coder) populate(dir *info.Directory, cmakeVersion, cppVersion string) (*listfile.File, error) {
	file := listfile.NewFile(dir.Path, dir.ListFilePath())
	name := dir.Name()

	file.AddStatement(statement("cmake_minimum_required", "VERSION", cmakeVersion))
	file.AddStatement(statement(listfile.ProjectName, name, "VERSION", c.config.ProjectVersion, "LANGUAGES", languages))
	for _, sub := range dir.SubProjects() {
		file.AddStatement(statement("add_subdirectory", sub.Relative(dir)))
	}

	files := dir.ProjectFiles()
	if files.Empty() {
		return file, nil
	}
	output := []string{name}
	if len(files.IncludeFiles) > 0 {
		file.AddStatement(file.CreateReplacement(listfile.SetName, listfile.IncludeFilesName, listfile.NoPos, files.IncludeFiles))
		output = append(output, listfile.IncludeFiles.Reference())
	}
	if len(files.SourceFiles) > 0 {
		file.AddStatement(file.CreateReplacement(listfile.SetName, listfile.SourceFilesName, listfile.NoPos, files.SourceFiles))
		output = append(output, listfile.SourceFiles.Reference())
	}

	suggested := libraryType
	if dir.HasEntryPoints() {
		suggested = executableType
	}
	projectType, err := prompt.Choice(c.io,
		fmt.Sprintf("Found source files for %s what should the project type be?", name),
		suggested, libraryType, executableType)
	if err != nil {
		return nil, err
	}
	outputName := listfile.LibraryName
	if projectType == executableType {
		outputName = listfile.ExecutableName
	}
	file.AddStatement(statement(outputName, output...))
	file.AddStatement(statement("target_compile_features", name, "PRIVATE", cppVersion))
	file.AddStatement(statement("target_compile_options", append([]string{name, "PRIVATE"}, c.config.CompileOptions...)...))
	return file, nil
}

func statement(name string, args ...string) *listfile.Statement {
	arguments := make([]listfile.Argument, len(args))
	for i, arg := range args {
		arguments[i] = listfile.NewArgument(arg)
	}
	return listfile.NewStatement(name, arguments...)
}
