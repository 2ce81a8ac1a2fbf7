package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/viant/cmakegen/builder"
	"github.com/viant/cmakegen/inspector/coder"
	"github.com/viant/cmakegen/inspector/info"
	"github.com/viant/cmakegen/inspector/repository"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("no arguments provided")
		return
	}

	var generate, build bool
	flag.BoolVar(&generate, "g", false, "generate CMakeLists.txt files interactively")
	flag.BoolVar(&generate, "gen", false, "generate CMakeLists.txt files interactively")
	flag.BoolVar(&build, "b", false, "update CMakeLists.txt files and build the project")
	flag.BoolVar(&build, "build", false, "update CMakeLists.txt files and build the project")
	cmakeVersion := flag.String("cmake", "", "default cmake_minimum_required version")
	cppVersion := flag.String("cpp", "", "default C++ standard compile feature")
	location := flag.String("root", ".", "directory inside the project")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	project, err := repository.New().DetectProject(*location)
	if err != nil {
		log.Fatalf("failed to detect project: %v", err)
	}
	config, err := info.LoadConfig(ctx, filepath.Join(project.RootPath, info.ConfigFileName))
	if err != nil {
		log.Fatal(err)
	}
	config.ApplyEnv()
	if *cmakeVersion != "" {
		config.CMakeVersion = *cmakeVersion
	}
	if *cppVersion != "" {
		config.CppStandard = *cppVersion
	}
	if err := config.Validate(); err != nil {
		log.Fatal(err)
	}

	c, err := coder.New(config)
	if err != nil {
		log.Fatal(err)
	}
	switch {
	case generate:
		if err := c.Generate(ctx, project.RootPath); err != nil {
			log.Fatalf("failed to generate: %v", err)
		}
	case build:
		if err := c.Update(ctx, project.RootPath); err != nil {
			log.Fatalf("failed to update list-files: %v", err)
		}
		b := builder.New(config.BuildTool, project.RootPath, config.BuildDir)
		if err := b.Build(ctx); err != nil {
			log.Fatalf("build failed: %v", err)
		}
	default:
		flag.Usage()
	}
}
