package listfile

import (
	"fmt"
	"strings"
)

// argumentSpace separates two arguments on one line.
const argumentSpace = 1

// Argument is one operand of a statement. Text is the literal token content,
// quotes included for quoted arguments. Lead is the source text between the
// previous element and the argument.
type Argument struct {
	Text    string
	Quoted  bool
	Comment bool
	Pos     Pos
	Lead    string
}

// NewArgument creates an unpositioned unquoted argument.
func NewArgument(text string) Argument {
	return Argument{Text: text}
}

// NewQuotedArgument creates an unpositioned argument wrapping value in quotes.
func NewQuotedArgument(value string) Argument {
	return Argument{Text: `"` + value + `"`, Quoted: true}
}

// Value returns the argument text without surrounding quotes.
func (a Argument) Value() string {
	if a.Quoted && len(a.Text) >= 2 && strings.HasPrefix(a.Text, `"`) && strings.HasSuffix(a.Text, `"`) {
		return a.Text[1 : len(a.Text)-1]
	}
	return a.Text
}

// Statement is one name(arguments...) clause. A statement whose name starts
// with '#' is a comment kept verbatim, it has no arguments and its End is the
// position of the last comment character.
//
// Lead, OpenLead and EndLead hold the source text found before the name, the
// opening and the closing parenthesis. Replay writes them back while they
// still land on the recorded positions.
type Statement struct {
	Name      string
	Arguments []Argument
	Start     Pos
	Open      Pos
	End       Pos
	Lead      string
	OpenLead  string
	EndLead   string
}

// NewStatement creates an unpositioned statement.
func NewStatement(name string, arguments ...Argument) *Statement {
	return &Statement{Name: name, Arguments: arguments}
}

// HasPosition reports whether both start and end are set.
func (s *Statement) HasPosition() bool {
	return s.Start.Valid && s.End.Valid
}

// IsComment reports whether the statement is a preserved comment.
func (s *Statement) IsComment() bool {
	return strings.HasPrefix(s.Name, "#")
}

// Argument returns the argument at index i.
func (s *Statement) Argument(i int) (Argument, bool) {
	if i < 0 || i >= len(s.Arguments) {
		return Argument{}, false
	}
	return s.Arguments[i], true
}

// Values returns the unquoted text of every non-comment argument.
func (s *Statement) Values() []string {
	result := make([]string, 0, len(s.Arguments))
	for _, arg := range s.Arguments {
		if arg.Comment {
			continue
		}
		result = append(result, arg.Value())
	}
	return result
}

// Validate checks that either all arguments carry a position or none does,
// and that a statement with positioned arguments is positioned itself.
func (s *Statement) Validate() error {
	positioned := 0
	for _, arg := range s.Arguments {
		if arg.Pos.Valid {
			positioned++
		}
	}
	if positioned != 0 && positioned != len(s.Arguments) {
		return fmt.Errorf("statement %s: %d of %d arguments carry a position", s.Name, positioned, len(s.Arguments))
	}
	if positioned > 0 && !s.HasPosition() {
		return fmt.Errorf("statement %s: positioned arguments without statement position", s.Name)
	}
	return nil
}

// InsertArgument inserts arg at index. Arguments after it on the same line,
// and the closing parenthesis when it shares that line, move right by the
// width of the inserted text plus one separating space. An argument taking
// the place of the next one also takes over its lead.
func (s *Statement) InsertArgument(index int, arg Argument) {
	if index < 0 {
		index = 0
	}
	if index > len(s.Arguments) {
		index = len(s.Arguments)
	}
	s.Arguments = append(s.Arguments, Argument{})
	copy(s.Arguments[index+1:], s.Arguments[index:])
	s.Arguments[index] = arg
	if !arg.Pos.Valid {
		return
	}
	if index+1 < len(s.Arguments) && s.Arguments[index+1].Pos == arg.Pos {
		next := &s.Arguments[index+1]
		s.Arguments[index].Lead, next.Lead = next.Lead, " "
	}
	width := len([]rune(arg.Text)) + argumentSpace
	for i := index + 1; i < len(s.Arguments); i++ {
		if s.Arguments[i].Pos.Line == arg.Pos.Line {
			s.Arguments[i].Pos = s.Arguments[i].Pos.shiftColumn(width)
		}
	}
	if s.End.Valid && s.End.Line == arg.Pos.Line {
		s.End = s.End.shiftColumn(width)
	}
}

// RemoveArgument removes the first argument whose text equals name. Later
// arguments on the same line, and the closing parenthesis when it shares that
// line, move left by the width of name plus one separating space. The next
// argument on that line inherits the removed lead.
func (s *Statement) RemoveArgument(name string) bool {
	index := -1
	for i, arg := range s.Arguments {
		if arg.Text == name {
			index = i
			break
		}
	}
	if index == -1 {
		return false
	}
	removed := s.Arguments[index]
	s.Arguments = append(s.Arguments[:index], s.Arguments[index+1:]...)
	if !removed.Pos.Valid {
		return true
	}
	if index < len(s.Arguments) && s.Arguments[index].Pos.Line == removed.Pos.Line {
		s.Arguments[index].Lead = removed.Lead
	}
	width := -(len([]rune(name)) + argumentSpace)
	for i := index; i < len(s.Arguments); i++ {
		if s.Arguments[i].Pos.Line == removed.Pos.Line {
			s.Arguments[i].Pos = s.Arguments[i].Pos.shiftColumn(width)
		}
	}
	if s.End.Valid && s.End.Line == removed.Pos.Line {
		s.End = s.End.shiftColumn(width)
	}
	return true
}

func (s *Statement) shiftLines(offset int) {
	if !s.HasPosition() || offset == 0 {
		return
	}
	s.Start = s.Start.shiftLine(offset)
	s.Open = s.Open.shiftLine(offset)
	s.End = s.End.shiftLine(offset)
	for i := range s.Arguments {
		s.Arguments[i].Pos = s.Arguments[i].Pos.shiftLine(offset)
	}
}

// lines returns how many lines the statement spans.
func (s *Statement) lines() int {
	if !s.HasPosition() {
		return 0
	}
	return int(s.End.Line) - int(s.Start.Line) + 1
}

func (s *Statement) String() string {
	if s.IsComment() {
		return s.Name
	}
	texts := make([]string, len(s.Arguments))
	for i, arg := range s.Arguments {
		texts[i] = arg.Text
	}
	return s.Name + "(" + strings.Join(texts, " ") + ")"
}
