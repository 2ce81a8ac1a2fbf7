package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIgnoreFile_Ignored(t *testing.T) {
	ignore := NewIgnoreFile("_build", "*_test.cpp", "/vendor/", "docs/**/*.h", "# comment", "  ")

	tests := []struct {
		description string
		path        string
		expected    bool
	}{
		{description: "build directory", path: "_build", expected: true},
		{description: "nested build directory", path: "lib/_build", expected: true},
		{description: "suffix pattern", path: "src/a_test.cpp", expected: true},
		{description: "suffix pattern does not match other files", path: "src/a.cpp"},
		{description: "rooted directory", path: "vendor", expected: true},
		{description: "rooted pattern is not a segment match", path: "lib/vendor"},
		{description: "double star", path: "docs/api/v1/x.h", expected: true},
		{description: "double star with other extension", path: "docs/api/x.cpp"},
		{description: "dot prefix", path: "./_build", expected: true},
	}

	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			assert.Equal(t, tc.expected, ignore.Ignored(tc.path))
		})
	}
	assert.Equal(t, []string{"_build", "*_test.cpp", "vendor", "docs/**/*.h"}, ignore.Patterns())
}

func TestLoadIgnoreFile(t *testing.T) {
	dir := t.TempDir()
	URL := filepath.Join(dir, DefaultIgnoreFileName)

	ignore, err := LoadIgnoreFile(context.Background(), URL, "_build")
	require.NoError(t, err)
	assert.Equal(t, []string{"_build"}, ignore.Patterns())

	require.NoError(t, os.WriteFile(URL, []byte("# generated\nout\n\n*.gen.h\n"), 0644))
	ignore, err = LoadIgnoreFile(context.Background(), URL, "_build")
	require.NoError(t, err)
	assert.Equal(t, []string{"_build", "out", "*.gen.h"}, ignore.Patterns())
	assert.True(t, ignore.Ignored("include/api.gen.h"))
}
