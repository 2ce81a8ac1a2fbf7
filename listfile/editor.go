package listfile

import (
	"strings"
)

// replacementColumn is where canonical file-list entries start.
const replacementColumn = 3

// outputKeywords may follow the target name of add_executable/add_library
// ahead of its sources.
var outputKeywords = map[string]bool{
	"STATIC":           true,
	"SHARED":           true,
	"MODULE":           true,
	"OBJECT":           true,
	"INTERFACE":        true,
	"WIN32":            true,
	"MACOSX_BUNDLE":    true,
	"EXCLUDE_FROM_ALL": true,
}

// CreateReplacement builds a file-list block laid out one path per line:
// the marker at start, each path quoted at (start.Line+i, 3) and the closing
// parenthesis at (start.Line+len(files)+1, 0). Without a start position the
// block is unpositioned and rendered by the canonical formatter.
func (f *File) CreateReplacement(name, marker string, start Pos, files []string) *Statement {
	statement := &Statement{Name: name, Arguments: make([]Argument, 0, len(files)+1)}
	if !start.Valid {
		statement.Arguments = append(statement.Arguments, NewArgument(marker))
		for _, file := range files {
			statement.Arguments = append(statement.Arguments, NewQuotedArgument(f.relative(file)))
		}
		return statement
	}
	statement.Start = start
	statement.Arguments = append(statement.Arguments, Argument{Text: marker, Pos: start})
	for i, file := range files {
		arg := NewQuotedArgument(f.relative(file))
		arg.Pos = At(start.Line+uint(i)+1, replacementColumn)
		statement.Arguments = append(statement.Arguments, arg)
	}
	statement.End = At(start.Line+uint(len(files))+1, 0)
	return statement
}

// FileList returns the paths listed by the kind's set() statement.
func (f *File) FileList(kind FileListKind) ([]string, bool) {
	statement, ok := f.Statement(SetFileList(kind))
	if !ok {
		return nil, false
	}
	values := statement.Values()
	if len(values) > 0 {
		values = values[1:]
	}
	return values, true
}

// FileListChanged reports whether files differ, as a set, from the paths the
// kind's set() statement lists. A missing statement counts as changed.
func (f *File) FileListChanged(kind FileListKind, files []string) bool {
	current, ok := f.FileList(kind)
	if !ok || len(current) != len(files) {
		return true
	}
	listed := make(map[string]bool, len(current))
	for _, value := range current {
		listed[normalizePath(value)] = true
	}
	for _, file := range files {
		if !listed[normalizePath(f.relative(file))] {
			return true
		}
	}
	return false
}

func normalizePath(value string) string {
	return strings.TrimPrefix(value, "./")
}

// ReplaceFileList rewrites the kind's set() statement to list files. A
// missing include list is inserted ahead of the source list and referenced
// from the project output after its target keywords; a missing source list
// is left alone.
func (f *File) ReplaceFileList(kind FileListKind, files []string) error {
	if !f.hasPositions {
		return ErrNoPositions
	}
	index := f.index(SetFileList(kind))
	if index == -1 {
		if kind == IncludeFiles {
			return f.addIncludeList(files)
		}
		return nil
	}
	existing := f.Statements[index]
	if !existing.HasPosition() {
		return ErrNoPositions
	}
	replacement := f.CreateReplacement(SetName, kind.Marker(), existing.Start, files)
	offset := replacement.lines() - existing.lines()
	f.Statements[index] = replacement
	f.ShiftLines(index+1, offset)
	// the closing parenthesis now sits in the first column
	f.shiftLineTail(index, replacement.End.Line, startColumn-int(existing.End.Column))
	return nil
}

func (f *File) addIncludeList(files []string) error {
	output, err := f.output()
	if err != nil {
		return err
	}
	anchor := f.index(SetFileList(SourceFiles))
	if anchor == -1 {
		anchor = f.indexOf(output)
	}
	if !f.Statements[anchor].HasPosition() || !output.HasPosition() {
		return ErrNoPositions
	}

	block := f.CreateReplacement(SetName, IncludeFilesName, f.Statements[anchor].Start, files)
	f.ShiftLines(anchor, block.lines())
	f.Statements = append(f.Statements, nil)
	copy(f.Statements[anchor+1:], f.Statements[anchor:])
	f.Statements[anchor] = block

	if hasReference(output, IncludeFiles) {
		return nil
	}
	reference := IncludeFiles.Reference()
	for _, arg := range output.Arguments {
		if arg.Text == SourceFilesName {
			reference = IncludeFilesName
			break
		}
	}
	index := 1
	for index < len(output.Arguments) && outputKeywords[output.Arguments[index].Text] {
		index++
	}
	arg := Argument{Text: reference}
	if next, ok := output.Argument(index); ok {
		arg.Pos = next.Pos
	} else {
		arg.Pos = output.End.shiftColumn(argumentSpace)
	}
	output.InsertArgument(index, arg)
	f.shiftLineTail(f.indexOf(output), arg.Pos.Line, len([]rune(reference))+argumentSpace)
	return nil
}

// RemoveFileList deletes the kind's set() statement together with the lines
// it occupied, and drops its reference from the project output.
func (f *File) RemoveFileList(kind FileListKind) error {
	if !f.hasPositions {
		return ErrNoPositions
	}
	index := f.index(SetFileList(kind))
	if index == -1 {
		return nil
	}
	output, err := f.output()
	if err != nil {
		return err
	}
	removed := f.Statements[index]
	lines := f.occupiedLines(index)
	f.Statements = append(f.Statements[:index], f.Statements[index+1:]...)
	if removed.HasPosition() {
		f.ShiftLines(index, -lines)
	}

	for _, text := range []string{kind.Reference(), kind.Marker()} {
		arg, at := argumentByText(output, text)
		if at < 1 {
			continue
		}
		output.RemoveArgument(text)
		if arg.Pos.Valid {
			f.shiftLineTail(f.indexOf(output), arg.Pos.Line, -(len([]rune(text)) + argumentSpace))
		}
		break
	}
	return nil
}

// occupiedLines returns how many lines disappear when the statement at index
// is removed. Lines shared with a neighbouring statement stay, and one of two
// blank separators around the statement goes with it.
func (f *File) occupiedLines(index int) int {
	removed := f.Statements[index]
	if !removed.HasPosition() {
		return 0
	}
	lines := removed.lines()
	var previous, next *Statement
	if index > 0 && f.Statements[index-1].HasPosition() {
		previous = f.Statements[index-1]
	}
	if index+1 < len(f.Statements) && f.Statements[index+1].HasPosition() {
		next = f.Statements[index+1]
	}
	if previous != nil && previous.End.Line == removed.Start.Line {
		lines--
	}
	if next != nil && next.Start.Line == removed.End.Line {
		lines--
	}
	if lines < 0 {
		return 0
	}
	if previous != nil && next != nil &&
		previous.End.Line+1 < removed.Start.Line && next.Start.Line > removed.End.Line+1 {
		lines++
	}
	return lines
}

// output resolves the add_executable/add_library statement of the project.
func (f *File) output() (*Statement, error) {
	project, ok := f.Statement(Project())
	if !ok {
		return nil, &MissingStatementError{Criteria: Project(), Path: f.Path}
	}
	name, ok := project.Argument(0)
	if !ok {
		return nil, &MissingStatementError{Criteria: Project(), Path: f.Path}
	}
	output, ok := f.Statement(Output(name.Text))
	if !ok {
		return nil, &MissingStatementError{Criteria: Output(name.Text), Path: f.Path}
	}
	return output, nil
}

func (f *File) indexOf(statement *Statement) int {
	for i, s := range f.Statements {
		if s == statement {
			return i
		}
	}
	return -1
}

func hasReference(statement *Statement, kind FileListKind) bool {
	_, reference := argumentByText(statement, kind.Reference())
	_, marker := argumentByText(statement, kind.Marker())
	return reference > 0 || marker > 0
}

func argumentByText(statement *Statement, text string) (Argument, int) {
	for i, arg := range statement.Arguments {
		if arg.Text == text {
			return arg, i
		}
	}
	return Argument{}, -1
}
