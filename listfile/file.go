package listfile

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/viant/afs"
)

// FileName is the list-file maintained in every project directory.
const FileName = "CMakeLists.txt"

// File is an ordered sequence of statements read from or destined for one
// list-file.
type File struct {
	Path       string
	Dir        string
	Statements []*Statement

	hasPositions bool
	eof          Pos
	eofLead      string
	lineEnding   string
	source       []byte
}

// NewFile creates an empty file without positions.
func NewFile(dir, path string) *File {
	return &File{Dir: dir, Path: path}
}

// LineEnding returns the line terminator the file was read with, "\n" for
// files built in memory.
func (f *File) LineEnding() string {
	if f.lineEnding == "" {
		return "\n"
	}
	return f.lineEnding
}

// HasPositions reports whether any statement ever added carried a position.
// It selects the formatter mode for the whole file.
func (f *File) HasPositions() bool {
	return f.hasPositions
}

// AddStatement appends a statement.
func (f *File) AddStatement(s *Statement) {
	f.Statements = append(f.Statements, s)
	if s.HasPosition() {
		f.hasPositions = true
	}
}

// Statement returns the first statement matching the criteria. The returned
// pointer must not be kept across edits.
func (f *File) Statement(criteria Criteria) (*Statement, bool) {
	if index := f.index(criteria); index != -1 {
		return f.Statements[index], true
	}
	return nil, false
}

func (f *File) index(criteria Criteria) int {
	for i, s := range f.Statements {
		if criteria.Matches(s) {
			return i
		}
	}
	return -1
}

// ShiftLines moves every statement at or after index from by offset lines.
// Columns are left untouched.
func (f *File) ShiftLines(from int, offset int) {
	if from < 0 {
		from = 0
	}
	for i := from; i < len(f.Statements); i++ {
		f.Statements[i].shiftLines(offset)
	}
	f.eof = f.eof.shiftLine(offset)
}

// shiftLineTail moves positions that sit on line, in statements after index
// after, by width columns. It keeps statements sharing a line with an edited
// statement clear of it.
func (f *File) shiftLineTail(after int, line uint, width int) {
	for i := after + 1; i < len(f.Statements); i++ {
		s := f.Statements[i]
		if s.Start.Line > line {
			return
		}
		if s.Start.Line == line {
			s.Start = s.Start.shiftColumn(width)
		}
		if s.Open.Line == line {
			s.Open = s.Open.shiftColumn(width)
		}
		for j := range s.Arguments {
			if s.Arguments[j].Pos.Line == line {
				s.Arguments[j].Pos = s.Arguments[j].Pos.shiftColumn(width)
			}
		}
		if s.End.Line == line {
			s.End = s.End.shiftColumn(width)
		}
	}
}

// Validate checks every statement and that positioned statements are in
// strictly increasing order, each ending before the next one starts.
func (f *File) Validate() error {
	var previous *Statement
	for _, s := range f.Statements {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("%s: %w", f.Path, err)
		}
		if !s.HasPosition() {
			continue
		}
		if previous != nil && !previous.End.Before(s.Start.Position) {
			return fmt.Errorf("%s: statement %s ending at %v overlaps %s starting at %v",
				f.Path, previous.Name, previous.End, s.Name, s.Start)
		}
		previous = s
	}
	return nil
}

// Bytes renders the file with Format.
func (f *File) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := Format(&buf, f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write formats the file and stores it at its path with fs, a nil fs uses
// the default service. A file rendering to the content it was parsed from is
// left alone; the result reports whether it was written.
func (f *File) Write(ctx context.Context, fs afs.Service) (bool, error) {
	content, err := f.Bytes()
	if err != nil {
		return false, fmt.Errorf("failed to format %s: %w", f.Path, err)
	}
	if f.source != nil && bytes.Equal(f.source, content) {
		return false, nil
	}
	if fs == nil {
		fs = afs.New()
	}
	if err := fs.Upload(ctx, f.Path, os.FileMode(0644), bytes.NewReader(content)); err != nil {
		return false, fmt.Errorf("failed to write %s: %w", f.Path, err)
	}
	return true, nil
}

// relative returns file relative to the file directory using forward slashes.
func (f *File) relative(file string) string {
	if f.Dir != "" && filepath.IsAbs(file) {
		if rel, err := filepath.Rel(f.Dir, file); err == nil {
			return filepath.ToSlash(rel)
		}
	}
	return filepath.ToSlash(file)
}
