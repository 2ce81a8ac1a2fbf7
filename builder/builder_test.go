package builder

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	dir  string
	name string
	args []string
}

func TestBuilder_Build(t *testing.T) {
	root := t.TempDir()
	buildDir := filepath.Join(root, "_build")

	tests := []struct {
		description string
		failAt      int
		expected    []call
		wantErr     bool
	}{
		{
			description: "configure then build",
			failAt:      -1,
			expected: []call{
				{dir: root, name: "cmake", args: []string{"-S", root, "-B", buildDir}},
				{dir: root, name: "cmake", args: []string{"--build", buildDir}},
			},
		},
		{
			description: "configure failure stops the build",
			failAt:      0,
			expected: []call{
				{dir: root, name: "cmake", args: []string{"-S", root, "-B", buildDir}},
			},
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			var calls []call
			b := New("cmake", root, "_build").WithRunner(func(ctx context.Context, dir string, stdout, stderr io.Writer, name string, args ...string) error {
				calls = append(calls, call{dir: dir, name: name, args: args})
				if len(calls)-1 == tc.failAt {
					return &ExitError{Command: name, Code: 1}
				}
				return nil
			})
			err := b.Build(context.Background())
			assert.Equal(t, tc.expected, calls)
			if tc.wantErr {
				var exitErr *ExitError
				require.True(t, errors.As(err, &exitErr))
				assert.Equal(t, 1, exitErr.Code)
				return
			}
			require.NoError(t, err)
			stat, err := os.Stat(buildDir)
			require.NoError(t, err)
			assert.True(t, stat.IsDir())
		})
	}
}

func TestExecute(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on a POSIX shell")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	dir := t.TempDir()

	err := execute(context.Background(), dir, io.Discard, io.Discard, "sh", "-c", "exit 3")
	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 3, exitErr.Code)
	assert.Equal(t, "sh -c exit 3: exit status 3", exitErr.Error())

	assert.NoError(t, execute(context.Background(), dir, io.Discard, io.Discard, "sh", "-c", "true"))

	err = execute(context.Background(), dir, io.Discard, io.Discard, filepath.Join(dir, "missing-tool"))
	assert.Error(t, err)
	assert.False(t, errors.As(err, &exitErr))
}
