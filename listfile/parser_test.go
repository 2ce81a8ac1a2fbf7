package listfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
)

const projectSource = `project(foo)
add_executable(foo SRC_FILES)
set(SRC_FILES
  "main.cpp"
)
`

func TestParseString(t *testing.T) {
	file, err := ParseString("/src", "/src/CMakeLists.txt", projectSource, nil)
	require.NoError(t, err)
	require.True(t, file.HasPositions())

	expected := []*Statement{
		{
			Name:      "project",
			Arguments: []Argument{{Text: "foo", Pos: At(1, 9)}},
			Start:     At(1, 1),
			Open:      At(1, 8),
			End:       At(1, 12),
		},
		{
			Name: "add_executable",
			Arguments: []Argument{
				{Text: "foo", Pos: At(2, 16)},
				{Text: "SRC_FILES", Pos: At(2, 20), Lead: " "},
			},
			Start: At(2, 1),
			Open:  At(2, 15),
			End:   At(2, 29),
			Lead:  "\n",
		},
		{
			Name: "set",
			Arguments: []Argument{
				{Text: "SRC_FILES", Pos: At(3, 5)},
				{Text: `"main.cpp"`, Quoted: true, Pos: At(4, 3), Lead: "\n  "},
			},
			Start:   At(3, 1),
			Open:    At(3, 4),
			End:     At(5, 1),
			Lead:    "\n",
			EndLead: "\n",
		},
	}
	if diff := cmp.Diff(expected, file.Statements); diff != "" {
		t.Errorf("statements mismatch (-want +got):\n%s", diff)
	}
	assert.NoError(t, file.Validate())
}

func TestParseString_Comments(t *testing.T) {
	source := "# leading\nset(SRC_FILES # sources\n  \"a.cpp\"\n)\n#[[ one\ntwo ]]\n"
	file, err := ParseString("", FileName, source, nil)
	require.NoError(t, err)
	require.Len(t, file.Statements, 3)

	assert.True(t, file.Statements[0].IsComment())
	assert.Equal(t, "# leading", file.Statements[0].Name)
	assert.Equal(t, At(1, 9), file.Statements[0].End)

	files, ok := file.FileList(SourceFiles)
	require.True(t, ok)
	assert.Equal(t, []string{"a.cpp"}, files)
	assert.True(t, file.Statements[1].Arguments[1].Comment)

	assert.Equal(t, "#[[ one\ntwo ]]", file.Statements[2].Name)
	assert.Equal(t, At(5, 1), file.Statements[2].Start)
	assert.Equal(t, At(6, 6), file.Statements[2].End)
	assert.NoError(t, file.Validate())
}

func TestParseString_Diagnostics(t *testing.T) {
	t.Run("bad character is a warning", func(t *testing.T) {
		var errs, warnings SyntaxError
		file, err := ParseString("", FileName, "project(foo)\n@\n", Collector(&errs, &warnings))
		require.NoError(t, err)
		assert.Len(t, file.Statements, 1)
		assert.Empty(t, errs)
		require.Len(t, warnings, 1)
		assert.Contains(t, warnings[0].Error(), "2:1")
		assert.Contains(t, warnings.Error(), "unexpected character")
	})

	t.Run("bad characters inside arguments are kept", func(t *testing.T) {
		source := "target_link_libraries(app $<TARGET_FILE:lib> a*b)\n"
		var warnings SyntaxError
		file, err := ParseString("", FileName, source, Collector(nil, &warnings))
		require.NoError(t, err)
		assert.Len(t, warnings, 3)
		assert.Equal(t, []string{"app", "$", "<", "TARGET_FILE:lib", ">", "a", "*", "b"}, file.Statements[0].Values())
		actual, err := FormatString(file)
		require.NoError(t, err)
		assert.Equal(t, source, actual)
	})

	t.Run("unterminated statement fails", func(t *testing.T) {
		_, err := ParseString("", FileName, "project(foo\n", nil)
		assert.Error(t, err)
	})

	t.Run("unterminated statement collected", func(t *testing.T) {
		var errs SyntaxError
		file, err := ParseString("", FileName, "project(foo)\nset(A\n", Collector(&errs, nil))
		assert.Error(t, err)
		require.Len(t, errs, 1)
		assert.Contains(t, errs[0].Error(), "unterminated statement set")
		assert.Len(t, file.Statements, 1)
	})

	t.Run("identifier without parenthesis", func(t *testing.T) {
		source := "foo bar\nproject(x)\n"
		var warnings SyntaxError
		file, err := ParseString("", FileName, source, Collector(nil, &warnings))
		require.NoError(t, err)
		require.Len(t, file.Statements, 1)
		assert.Equal(t, "project", file.Statements[0].Name)
		assert.Equal(t, "foo bar\n", file.Statements[0].Lead)
		assert.Len(t, warnings, 2)
		assert.Equal(t, source, mustFormat(t, file))
	})

	t.Run("name followed by a newline before the parenthesis", func(t *testing.T) {
		source := "project(foo)\ntarget_link_libraries\n  (foo pthread)\nfoo\nbar(x)\n"
		var warnings SyntaxError
		file, err := ParseString("", FileName, source, Collector(nil, &warnings))
		require.NoError(t, err)
		require.Len(t, file.Statements, 3)

		link := file.Statements[1]
		assert.Equal(t, "target_link_libraries", link.Name)
		assert.Equal(t, At(2, 1), link.Start)
		assert.Equal(t, At(3, 3), link.Open)
		assert.Equal(t, "\n  ", link.OpenLead)
		assert.Equal(t, []string{"foo", "pthread"}, link.Values())

		assert.Equal(t, "bar", file.Statements[2].Name)
		assert.Equal(t, At(5, 1), file.Statements[2].Start)
		require.Len(t, warnings, 1)
		assert.Contains(t, warnings[0].Error(), "expected ( after foo")
		assert.Equal(t, source, mustFormat(t, file))
	})
}

func TestParse(t *testing.T) {
	dir := t.TempDir()
	location := filepath.Join(dir, FileName)
	source := "project(foo)\r\n\tset(SRC_FILES \"a.cpp\")   \r\n"
	require.NoError(t, os.WriteFile(location, []byte(source), 0644))

	file, err := Parse(context.Background(), afs.New(), dir, location, nil)
	require.NoError(t, err)
	assert.Equal(t, location, file.Path)
	assert.Equal(t, "\r\n", file.LineEnding())
	files, ok := file.FileList(SourceFiles)
	require.True(t, ok)
	assert.Equal(t, []string{"a.cpp"}, files)

	t.Run("missing file yields an empty file", func(t *testing.T) {
		missing := filepath.Join(dir, "missing", FileName)
		file, err := Parse(context.Background(), nil, dir, missing, nil)
		assert.Error(t, err)
		require.NotNil(t, file)
		assert.Equal(t, missing, file.Path)
		assert.Empty(t, file.Statements)
		assert.False(t, file.HasPositions())
	})
}
