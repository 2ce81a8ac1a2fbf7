package listfile

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"
)

type formatState int

const (
	beforeStatement formatState = iota
	inName
	inArguments
	afterStatement
)

var stateNames = [...]string{"BeforeStatement", "InName", "InArguments", "AfterStatement"}

func (s formatState) String() string {
	return stateNames[s]
}

// Format writes the file to w. A file with positions is replayed through its
// recorded coordinates so untouched text keeps its layout; any other file is
// rendered in the canonical layout.
func Format(w io.Writer, f *File) error {
	out := bufio.NewWriter(w)
	formatter := &formatter{out: out, line: startLine, column: startColumn, newline: f.LineEnding()}
	if f.HasPositions() {
		formatter.replay(f)
	} else {
		formatter.canonical(f)
	}
	if formatter.err != nil {
		return formatter.err
	}
	return out.Flush()
}

// FormatString renders the file as a string.
func FormatString(f *File) (string, error) {
	var buf bytes.Buffer
	if err := Format(&buf, f); err != nil {
		return "", err
	}
	return buf.String(), nil
}

type formatter struct {
	out     *bufio.Writer
	line    uint
	column  uint
	newline string
	state   formatState
	err     error
}

func (w *formatter) canonical(f *File) {
	for i, statement := range f.Statements {
		if i > 0 {
			w.write(w.newline)
		}
		w.write(strings.ReplaceAll(canonicalText(statement), "\n", w.newline))
		w.write(w.newline)
	}
}

func canonicalText(s *Statement) string {
	if s.IsComment() {
		return s.Name
	}
	var text strings.Builder
	text.WriteString(s.Name)
	text.WriteString("(")
	fileList := len(s.Arguments) > 1 && IsFileListMarker(s.Arguments[0].Text)
	for i, arg := range s.Arguments {
		switch {
		case i == 0:
		case fileList:
			text.WriteString("\n  ")
		default:
			text.WriteString(" ")
		}
		text.WriteString(arg.Text)
	}
	if fileList {
		text.WriteString("\n")
	}
	text.WriteString(")")
	return text.String()
}

func (w *formatter) replay(f *File) {
	for _, statement := range f.Statements {
		w.transition(beforeStatement)
		if !statement.HasPosition() {
			if w.column > startColumn {
				w.write(w.newline)
			}
			w.write(strings.ReplaceAll(canonicalText(statement), "\n", w.newline))
			w.transition(afterStatement)
			continue
		}
		w.moveTo(statement.Start.Position, statement.Lead)
		if statement.IsComment() {
			w.write(statement.Name)
			w.transition(afterStatement)
			continue
		}
		w.transition(inName)
		w.write(statement.Name)
		if statement.Open.Valid {
			w.moveTo(statement.Open.Position, statement.OpenLead)
		}
		w.write("(")
		w.transition(inArguments)
		for _, arg := range statement.Arguments {
			if arg.Pos.Valid {
				w.moveTo(arg.Pos.Position, arg.Lead)
			} else {
				w.write(" ")
			}
			w.write(arg.Text)
		}
		w.moveTo(statement.End.Position, statement.EndLead)
		w.write(")")
		w.transition(afterStatement)
	}
	if f.eof.Valid {
		w.moveTo(f.eof.Position, f.eofLead)
	}
	if w.column > startColumn {
		w.write(w.newline)
	}
}

func (w *formatter) transition(next formatState) {
	switch {
	case next == beforeStatement && (w.state == beforeStatement || w.state == afterStatement),
		next == inName && w.state == beforeStatement,
		next == inArguments && w.state == inName,
		next == afterStatement && w.state != afterStatement:
		w.state = next
	default:
		if w.err == nil {
			w.err = fmt.Errorf("listfile: invalid formatter transition %v -> %v", w.state, next)
		}
	}
}

// moveTo advances the cursor to position. The recorded lead is written back
// when it ends exactly there, otherwise newlines then spaces are written. It
// never moves backwards.
func (w *formatter) moveTo(position Position, lead string) {
	if lead != "" && w.lands(lead, position) {
		w.write(lead)
		return
	}
	for w.line < position.Line {
		w.write(w.newline)
	}
	for w.line == position.Line && w.column < position.Column {
		w.write(" ")
	}
}

func (w *formatter) lands(text string, position Position) bool {
	line, column := w.line, w.column
	for _, c := range text {
		if c == '\n' {
			line++
			column = startColumn
			continue
		}
		column++
	}
	return line == position.Line && column == position.Column
}

func (w *formatter) write(text string) {
	if w.err != nil {
		return
	}
	if _, err := w.out.WriteString(text); err != nil {
		w.err = err
		return
	}
	if n := strings.Count(text, "\n"); n > 0 {
		w.line += uint(n)
		w.column = startColumn + uint(len([]rune(text[strings.LastIndex(text, "\n")+1:])))
		return
	}
	w.column += uint(len([]rune(text)))
}
