package listfile

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listedSource = `project(foo)

set(INCLUDE_FILES
  "a.h"
)

set(SRC_FILES
  "main.cpp"
)

add_executable(foo ${INCLUDE_FILES} ${SRC_FILES})
`

func mustParse(t *testing.T, source string) *File {
	t.Helper()
	file, err := ParseString("/src", "/src/CMakeLists.txt", source, nil)
	require.NoError(t, err)
	return file
}

func mustFormat(t *testing.T, file *File) string {
	t.Helper()
	actual, err := FormatString(file)
	require.NoError(t, err)
	return actual
}

func TestFile_CreateReplacement(t *testing.T) {
	file := NewFile("", FileName)
	statement := file.CreateReplacement("set", "INCLUDE_FILES", At(10, 1), []string{"a.h", "b.h"})

	expected := &Statement{
		Name: "set",
		Arguments: []Argument{
			{Text: "INCLUDE_FILES", Pos: At(10, 1)},
			{Text: `"a.h"`, Quoted: true, Pos: At(11, 3)},
			{Text: `"b.h"`, Quoted: true, Pos: At(12, 3)},
		},
		Start: At(10, 1),
		End:   At(13, 0),
	}
	if diff := cmp.Diff(expected, statement); diff != "" {
		t.Errorf("replacement mismatch (-want +got):\n%s", diff)
	}
}

func TestFile_ReplaceFileList(t *testing.T) {
	tests := []struct {
		description string
		source      string
		kind        FileListKind
		files       []string
		expected    string
	}{
		{
			description: "grow include list",
			source:      listedSource,
			kind:        IncludeFiles,
			files:       []string{"/src/a.h", "/src/b.h"},
			expected: `project(foo)

set(INCLUDE_FILES
  "a.h"
  "b.h"
)

set(SRC_FILES
  "main.cpp"
)

add_executable(foo ${INCLUDE_FILES} ${SRC_FILES})
`,
		},
		{
			description: "shrink source list",
			source: `project(foo)
set(SRC_FILES
  "a.cpp"
  "b.cpp"
  "c.cpp"
)
add_executable(foo ${SRC_FILES})
`,
			kind:  SourceFiles,
			files: []string{"/src/b.cpp"},
			expected: `project(foo)
set(SRC_FILES
  "b.cpp"
)
add_executable(foo ${SRC_FILES})
`,
		},
		{
			description: "single line list is laid out one path per line",
			source:      "project(foo)\nset(SRC_FILES a.cpp b.cpp) # keep\nadd_library(foo ${SRC_FILES})\n",
			kind:        SourceFiles,
			files:       []string{"a.cpp", "b.cpp"},
			expected:    "project(foo)\nset(SRC_FILES\n  \"a.cpp\"\n  \"b.cpp\"\n) # keep\nadd_library(foo ${SRC_FILES})\n",
		},
		{
			description: "missing source list is not created",
			source:      "project(foo)\nadd_executable(foo)\n",
			kind:        SourceFiles,
			files:       []string{"a.cpp"},
			expected:    "project(foo)\nadd_executable(foo)\n",
		},
		{
			description: "missing include list is inserted ahead of the source list",
			source:      projectSource,
			kind:        IncludeFiles,
			files:       []string{"/src/util.h"},
			expected: `project(foo)
add_executable(foo INCLUDE_FILES SRC_FILES)
set(INCLUDE_FILES
  "util.h"
)
set(SRC_FILES
  "main.cpp"
)
`,
		},
		{
			description: "missing include list referenced as a variable",
			source:      "project(foo)\n\nset(SRC_FILES\n  \"main.cpp\"\n)\n\nadd_executable(foo ${SRC_FILES}) # app\n",
			kind:        IncludeFiles,
			files:       []string{"x.h"},
			expected:    "project(foo)\n\nset(INCLUDE_FILES\n  \"x.h\"\n)\nset(SRC_FILES\n  \"main.cpp\"\n)\n\nadd_executable(foo ${INCLUDE_FILES} ${SRC_FILES}) # app\n",
		},
		{
			description: "include reference follows the library type",
			source:      "project(foo)\nset(SRC_FILES\n  \"a.cpp\"\n)\nadd_library(foo STATIC ${SRC_FILES})\n",
			kind:        IncludeFiles,
			files:       []string{"/src/a.h"},
			expected:    "project(foo)\nset(INCLUDE_FILES\n  \"a.h\"\n)\nset(SRC_FILES\n  \"a.cpp\"\n)\nadd_library(foo STATIC ${INCLUDE_FILES} ${SRC_FILES})\n",
		},
		{
			description: "include reference follows executable flags",
			source:      "project(foo)\nset(SRC_FILES\n  \"a.cpp\"\n)\nadd_executable(foo WIN32 MACOSX_BUNDLE\n  SRC_FILES)\n",
			kind:        IncludeFiles,
			files:       []string{"/src/a.h"},
			expected:    "project(foo)\nset(INCLUDE_FILES\n  \"a.h\"\n)\nset(SRC_FILES\n  \"a.cpp\"\n)\nadd_executable(foo WIN32 MACOSX_BUNDLE\n  INCLUDE_FILES SRC_FILES)\n",
		},
	}

	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			file := mustParse(t, tc.source)
			require.NoError(t, file.ReplaceFileList(tc.kind, tc.files))
			assert.NoError(t, file.Validate())
			assert.Equal(t, tc.expected, mustFormat(t, file))
		})
	}
}

func TestFile_ReplaceFileList_Idempotent(t *testing.T) {
	files := []string{"/src/a.h", "/src/b.h", "/src/c.h"}

	once := mustParse(t, listedSource)
	require.NoError(t, once.ReplaceFileList(IncludeFiles, files))
	expected := mustFormat(t, once)

	require.NoError(t, once.ReplaceFileList(IncludeFiles, files))
	assert.Equal(t, expected, mustFormat(t, once))

	reparsed := mustParse(t, expected)
	assert.False(t, reparsed.FileListChanged(IncludeFiles, files))
	require.NoError(t, reparsed.ReplaceFileList(IncludeFiles, files))
	assert.Equal(t, expected, mustFormat(t, reparsed))
}

func TestFile_RemoveFileList(t *testing.T) {
	tests := []struct {
		description string
		source      string
		expected    string
	}{
		{
			description: "block surrounded by blank lines",
			source:      listedSource,
			expected: `project(foo)

set(SRC_FILES
  "main.cpp"
)

add_executable(foo ${SRC_FILES})
`,
		},
		{
			description: "bare reference and adjacent statements",
			source: `project(foo)
add_executable(foo INCLUDE_FILES SRC_FILES)
set(INCLUDE_FILES
  "util.h"
)
set(SRC_FILES
  "main.cpp"
)
`,
			expected: projectSource,
		},
		{
			description: "statement after the block on the same line",
			source:      "project(foo)\nset(INCLUDE_FILES \"a.h\") add_library(foo ${INCLUDE_FILES} x.cpp)\n",
			expected:    "project(foo)\n                         add_library(foo x.cpp)\n",
		},
		{
			description: "tab separated reference",
			source:      "project(foo)\nset(INCLUDE_FILES\n  \"a.h\"\n)\nadd_executable(foo\t${INCLUDE_FILES}\t${SRC_FILES})\n",
			expected:    "project(foo)\nadd_executable(foo\t${SRC_FILES})\n",
		},
		{
			description: "no include list",
			source:      projectSource,
			expected:    projectSource,
		},
	}

	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			file := mustParse(t, tc.source)
			require.NoError(t, file.RemoveFileList(IncludeFiles))
			assert.NoError(t, file.Validate())
			assert.Equal(t, tc.expected, mustFormat(t, file))
		})
	}
}

func TestFile_EditErrors(t *testing.T) {
	t.Run("file without positions", func(t *testing.T) {
		file := NewFile("", FileName)
		file.AddStatement(NewStatement("project", NewArgument("foo")))
		assert.ErrorIs(t, file.ReplaceFileList(SourceFiles, []string{"a.cpp"}), ErrNoPositions)
		assert.ErrorIs(t, file.RemoveFileList(IncludeFiles), ErrNoPositions)
	})

	t.Run("missing project", func(t *testing.T) {
		file := mustParse(t, "set(SRC_FILES\n  \"a.cpp\"\n)\n")
		err := file.ReplaceFileList(IncludeFiles, []string{"a.h"})
		var missing *MissingStatementError
		require.True(t, errors.As(err, &missing))
		assert.Equal(t, "/src/CMakeLists.txt", missing.Path)
		assert.Contains(t, err.Error(), "project()")
		assert.Len(t, file.Statements, 1)
	})

	t.Run("missing output", func(t *testing.T) {
		file := mustParse(t, "project(foo)\nset(INCLUDE_FILES\n  \"a.h\"\n)\nadd_executable(bar)\n")
		err := file.RemoveFileList(IncludeFiles)
		var missing *MissingStatementError
		require.True(t, errors.As(err, &missing))
		assert.Contains(t, err.Error(), "(foo)")
		assert.Len(t, file.Statements, 3)
	})
}

func TestStatement_InsertRemoveArgument(t *testing.T) {
	file := mustParse(t, "add_executable(foo a.cpp b.cpp\n  c.cpp)\n")
	statement := file.Statements[0]
	original := *statement
	original.Arguments = append([]Argument(nil), statement.Arguments...)

	statement.InsertArgument(1, Argument{Text: `"Y"`, Quoted: true, Pos: statement.Arguments[1].Pos})
	assert.Equal(t, At(1, 20), statement.Arguments[1].Pos)
	assert.Equal(t, At(1, 24), statement.Arguments[2].Pos)
	assert.Equal(t, At(2, 3), statement.Arguments[4].Pos)
	assert.Equal(t, "add_executable(foo \"Y\" a.cpp b.cpp\n  c.cpp)\n", mustFormat(t, file))

	require.True(t, statement.RemoveArgument(`"Y"`))
	if diff := cmp.Diff(&original, statement); diff != "" {
		t.Errorf("statement mismatch after insert/remove (-want +got):\n%s", diff)
	}
	assert.False(t, statement.RemoveArgument("missing"))
}

func TestStatement_Validate(t *testing.T) {
	statement := NewStatement("set", Argument{Text: "A", Pos: At(1, 5)}, NewArgument("B"))
	assert.Error(t, statement.Validate())

	statement = NewStatement("set", NewArgument("A"), NewArgument("B"))
	assert.NoError(t, statement.Validate())
}

func TestFile_ShiftLines(t *testing.T) {
	file := mustParse(t, projectSource)
	file.ShiftLines(1, 2)
	assert.Equal(t, At(1, 1), file.Statements[0].Start)
	assert.Equal(t, At(4, 1), file.Statements[1].Start)
	assert.Equal(t, At(4, 16), file.Statements[1].Arguments[0].Pos)
	assert.Equal(t, At(7, 1), file.Statements[2].End)
	assert.Equal(t, "project(foo)\n\n\nadd_executable(foo SRC_FILES)\nset(SRC_FILES\n  \"main.cpp\"\n)\n", mustFormat(t, file))
}
