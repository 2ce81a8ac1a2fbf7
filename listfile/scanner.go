package listfile

import (
	"bufio"
	"io"
	"strings"
	"unicode"
)

const (
	startLine   = 1
	startColumn = 1
)

var argumentCharacters = ".\\/${}:-\"+_"

func allowedInArgument(c rune) bool {
	return isAlnum(c) || strings.ContainsRune(argumentCharacters, c)
}

func allowedInIdentifier(c rune) bool {
	return c == '_' || isAlnum(c)
}

func isAlnum(c rune) bool {
	return unicode.IsLetter(c) || unicode.IsDigit(c)
}

// Scanner splits list-file content into positioned tokens. It reads one
// character ahead at most; the character that terminates a token is replayed
// as the first character of the next one.
type Scanner struct {
	reader  *bufio.Reader
	line    uint
	column  uint
	depth   int
	pending rune
	hasNext bool
	err     error

	latest     rune
	before     rune
	lineEnding string
}

// NewScanner creates a scanner reading from r.
func NewScanner(r io.Reader) *Scanner {
	return &Scanner{
		reader: bufio.NewReader(r),
		line:   startLine,
		column: startColumn,
	}
}

// Err returns the first non-EOF read error.
func (s *Scanner) Err() error {
	return s.err
}

// LineEnding returns the terminator of the first line read, "\r\n" or "\n".
func (s *Scanner) LineEnding() string {
	if s.lineEnding == "" {
		return "\n"
	}
	return s.lineEnding
}

// ScanningArguments reports whether the scanner is inside an argument list.
func (s *Scanner) ScanningArguments() bool {
	return s.depth > 0
}

// Next returns the next token, EndOfFile once the input is exhausted.
func (s *Scanner) Next() Token {
	c, ok := s.read()
	if !ok {
		return Token{Type: EndOfFile, Line: s.line, Column: s.column}
	}

	switch c {
	case ' ', '\t', '\r':
		return s.single(Space, c)
	case '\n':
		if s.lineEnding == "" {
			s.lineEnding = "\n"
			if s.before == '\r' {
				s.lineEnding = "\r\n"
			}
		}
		s.line++
		s.column = startColumn
		return Token{Type: Newline, Text: "\n", Length: 1, Line: s.line, Column: s.column}
	case '(':
		s.depth++
		return s.single(ParenOpen, c)
	case ')':
		if s.depth > 0 {
			s.depth--
		}
		return s.single(ParenClose, c)
	case '#':
		return s.comment()
	}

	if s.depth > 0 {
		if allowedInArgument(c) {
			return s.argument(c)
		}
	} else if allowedInIdentifier(c) {
		return s.run(Identifier, c, allowedInIdentifier)
	}
	return s.single(BadCharacter, c)
}

func (s *Scanner) read() (rune, bool) {
	if s.hasNext {
		s.hasNext = false
		return s.pending, true
	}
	c, _, err := s.reader.ReadRune()
	if err != nil {
		if err != io.EOF && s.err == nil {
			s.err = err
		}
		return 0, false
	}
	s.before, s.latest = s.latest, c
	return c, true
}

func (s *Scanner) unread(c rune) {
	s.pending = c
	s.hasNext = true
}

func (s *Scanner) single(kind TokenType, c rune) Token {
	token := Token{Type: kind, Text: string(c), Length: 1, Line: s.line, Column: s.column}
	s.column++
	return token
}

func (s *Scanner) run(kind TokenType, first rune, allowed func(rune) bool) Token {
	var text strings.Builder
	text.WriteRune(first)
	length := uint(1)
	for {
		c, ok := s.read()
		if !ok {
			break
		}
		if !allowed(c) {
			s.unread(c)
			break
		}
		text.WriteRune(c)
		length++
	}
	token := Token{Type: kind, Text: text.String(), Length: length, Line: s.line, Column: s.column}
	s.column += length
	return token
}

// argument scans an argument run. A run opened by a quote extends to the
// closing quote on the same line, then continues with argument characters.
func (s *Scanner) argument(first rune) Token {
	if first != '"' {
		return s.run(ArgumentUnquoted, first, allowedInArgument)
	}
	var text strings.Builder
	text.WriteRune(first)
	length := uint(1)
	closed := false
	for {
		c, ok := s.read()
		if !ok {
			break
		}
		if !closed {
			if c == '\n' {
				s.unread(c)
				break
			}
			closed = c == '"'
		} else if !allowedInArgument(c) {
			s.unread(c)
			break
		}
		text.WriteRune(c)
		length++
	}
	token := Token{Type: ArgumentQuoted, Text: text.String(), Length: length, Line: s.line, Column: s.column}
	s.column += length
	return token
}

// comment scans a line comment, ending before the newline, or a bracket
// comment opened by "#[[" and closed by "]]".
func (s *Scanner) comment() Token {
	line, column := s.line, s.column
	var text strings.Builder
	text.WriteRune('#')
	length := uint(1)
	bracket := false
	var previous rune = '#'
	lines := uint(0)
	lastLineLength := uint(1)
	for {
		c, ok := s.read()
		if !ok {
			break
		}
		if !bracket && c == '\n' {
			s.unread(c)
			break
		}
		text.WriteRune(c)
		length++
		lastLineLength++
		if c == '[' && previous == '[' && length == 3 {
			bracket = true
		}
		if bracket && c == '\n' {
			lines++
			lastLineLength = 0
		}
		if bracket && c == ']' && previous == ']' && length > 4 {
			break
		}
		previous = c
	}
	if lines > 0 {
		s.line += lines
		s.column = startColumn + lastLineLength
	} else {
		s.column += length
	}
	return Token{Type: CommentBlock, Text: text.String(), Length: length, Line: line, Column: column}
}
