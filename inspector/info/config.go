package info

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/viant/afs"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// ConfigFileName is looked up in the project root.
const ConfigFileName = ".cmakegen.yaml"

// envPrefix prefixes environment overrides, e.g. CMAKEGEN_BUILD_DIR.
const envPrefix = "CMAKEGEN_"

// minimumCMakeVersion is the oldest cmake_minimum_required the tool writes.
const minimumCMakeVersion = "v3.0"

// Config controls scanning, generation and the build step.
type Config struct {
	BuildTool         string   `yaml:"buildTool"`
	BuildDir          string   `yaml:"buildDir"`
	CMakeVersion      string   `yaml:"cmakeVersion"`
	CppStandard       string   `yaml:"cppStandard"`
	ProjectVersion    string   `yaml:"projectVersion"`
	IgnoreFile        string   `yaml:"ignoreFile"`
	IncludeExtensions []string `yaml:"includeExtensions"`
	SourceExtensions  []string `yaml:"sourceExtensions"`
	CompileOptions    []string `yaml:"compileOptions"`
	DetectEntryPoints bool     `yaml:"detectEntryPoints"`
	DetectConcurrency int      `yaml:"detectConcurrency"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		BuildTool:         "cmake",
		BuildDir:          "_build",
		CMakeVersion:      "3.10.0",
		CppStandard:       "cxx_std_11",
		ProjectVersion:    "1.0.0",
		IgnoreFile:        ".cmakegenignore",
		IncludeExtensions: []string{".h", ".hpp", ".hh"},
		SourceExtensions:  []string{".c", ".cpp", ".c++"},
		CompileOptions:    []string{"-Wall", "-Wextra", "-Wshadow", "-Wnon-virtual-dtor", "-pedantic", "-Werror"},
		DetectEntryPoints: true,
		DetectConcurrency: 4,
	}
}

// LoadConfig reads a YAML config from URL on top of the defaults. A missing
// file yields the defaults.
func LoadConfig(ctx context.Context, URL string) (*Config, error) {
	config := DefaultConfig()
	fs := afs.New()
	exists, err := fs.Exists(ctx, URL)
	if err != nil || !exists {
		return config, nil
	}
	content, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", URL, err)
	}
	if err := yaml.Unmarshal(content, config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", URL, err)
	}
	return config, nil
}

// ApplyEnv loads a .env file when present and applies CMAKEGEN_* overrides.
func (c *Config) ApplyEnv() {
	_ = godotenv.Load()
	if value := os.Getenv(envPrefix + "BUILD_TOOL"); value != "" {
		c.BuildTool = value
	}
	if value := os.Getenv(envPrefix + "BUILD_DIR"); value != "" {
		c.BuildDir = value
	}
	if value := os.Getenv(envPrefix + "CMAKE_VERSION"); value != "" {
		c.CMakeVersion = value
	}
	if value := os.Getenv(envPrefix + "CPP_STANDARD"); value != "" {
		c.CppStandard = value
	}
	if value := os.Getenv(envPrefix + "IGNORE_FILE"); value != "" {
		c.IgnoreFile = value
	}
}

// Validate checks the version strings the generator writes.
func (c *Config) Validate() error {
	if err := ValidateCMakeVersion(c.CMakeVersion); err != nil {
		return err
	}
	if c.CppStandard == "" {
		return fmt.Errorf("c++ standard is empty")
	}
	if c.BuildTool == "" {
		return fmt.Errorf("build tool is empty")
	}
	return nil
}

// ValidateCMakeVersion accepts MAJOR.MINOR[.PATCH] versions from 3.0 on.
func ValidateCMakeVersion(version string) error {
	canonical := "v" + strings.TrimPrefix(version, "v")
	if !semver.IsValid(canonical) || semver.Prerelease(canonical) != "" {
		return fmt.Errorf("invalid cmake version: %q", version)
	}
	if semver.Compare(canonical, minimumCMakeVersion) < 0 {
		return fmt.Errorf("cmake version %s is older than %s", version, strings.TrimPrefix(minimumCMakeVersion, "v"))
	}
	return nil
}
