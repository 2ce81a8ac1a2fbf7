package listfile

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/bufbuild/protocompile/ast"
	"github.com/bufbuild/protocompile/reporter"
	"github.com/viant/afs"
)

// Parse reads the list-file at path with fs and builds its statements. A nil
// fs uses the default service. When the file cannot be read the returned File
// is empty and the error describes the I/O failure. Diagnostics go to rep; a
// nil rep fails on the first error and ignores warnings.
func Parse(ctx context.Context, fs afs.Service, dir, path string, rep reporter.Reporter) (*File, error) {
	if fs == nil {
		fs = afs.New()
	}
	content, err := fs.DownloadWithURL(ctx, path)
	if err != nil {
		return NewFile(dir, path), fmt.Errorf("failed to read %s: %w", path, err)
	}
	return ParseBytes(dir, path, content, rep)
}

// ParseBytes parses list-file content held in memory. The content is kept so
// that Write can skip an unchanged file.
func ParseBytes(dir, path string, content []byte, rep reporter.Reporter) (*File, error) {
	file, err := ParseReader(dir, path, bytes.NewReader(content), rep)
	file.source = content
	return file, err
}

// ParseString parses list-file content held in a string.
func ParseString(dir, path, content string, rep reporter.Reporter) (*File, error) {
	return ParseBytes(dir, path, []byte(content), rep)
}

// ParseReader parses list-file content from r.
func ParseReader(dir, path string, r io.Reader, rep reporter.Reporter) (*File, error) {
	p := &parser{
		scanner: NewScanner(r),
		handler: reporter.NewHandler(rep),
		file:    NewFile(dir, path),
	}
	if err := p.parse(); err != nil {
		return p.file, err
	}
	if err := p.scanner.Err(); err != nil {
		return NewFile(dir, path), fmt.Errorf("failed to read %s: %w", path, err)
	}
	return p.file, p.handler.Error()
}

type parser struct {
	scanner *Scanner
	handler *reporter.Handler
	file    *File
	pending []Token
	skipped strings.Builder
}

func (p *parser) next() Token {
	if len(p.pending) > 0 {
		token := p.pending[0]
		p.pending = p.pending[1:]
		return token
	}
	return p.scanner.Next()
}

// push returns tokens to the front of the stream.
func (p *parser) push(tokens ...Token) {
	p.pending = append(tokens, p.pending...)
}

// skip keeps text that is not part of a statement so replay reproduces it.
func (p *parser) skip(text string) {
	p.skipped.WriteString(text)
}

// lead returns the text skipped since the previous element.
func (p *parser) lead() string {
	text := p.skipped.String()
	p.skipped.Reset()
	return text
}

func (p *parser) parse() error {
	lineStart := true
	for {
		token := p.next()
		switch token.Type {
		case EndOfFile:
			p.file.eof = token.Pos()
			p.file.eofLead = p.lead()
			p.file.lineEnding = p.scanner.LineEnding()
			return nil
		case Newline:
			lineStart = true
			p.skip(token.Text)
		case Space:
			p.skip(token.Text)
		case CommentBlock:
			p.file.AddStatement(&Statement{Name: token.Text, Lead: p.lead(), Start: token.Pos(), End: commentEnd(token)})
		case Identifier:
			if !lineStart {
				p.warn(token, "unexpected identifier %q", token.Text)
				p.skip(token.Text)
				continue
			}
			statement, err := p.statement(token)
			if err != nil {
				return err
			}
			if statement == nil {
				lineStart = false
				continue
			}
			p.file.AddStatement(statement)
		case BadCharacter:
			p.warn(token, "unexpected character %q", token.Text)
			p.skip(token.Text)
		default:
			p.warn(token, "unexpected %v %q outside of a statement", token.Type, token.Text)
			p.skip(token.Text)
		}
	}
}

// statement parses the argument list following name; spaces and newlines may
// separate the two. It returns nil without error when name is not followed
// by an opening parenthesis, the name then stays in the file as plain text.
func (p *parser) statement(name Token) (*Statement, error) {
	var between []Token
	token := p.next()
	for token.Type == Space || token.Type == Newline {
		between = append(between, token)
		token = p.next()
	}
	if token.Type != ParenOpen {
		p.warn(name, "expected ( after %s", name.Text)
		p.skip(name.Text)
		p.push(append(between, token)...)
		return nil, nil
	}

	statement := &Statement{Name: name.Text, Lead: p.lead(), Start: name.Pos(), Open: token.Pos()}
	for _, skipped := range between {
		statement.OpenLead += skipped.Text
	}
	depth := 1
	for {
		token = p.next()
		switch token.Type {
		case EndOfFile:
			p.push(token)
			return nil, p.handler.HandleError(reporter.Errorf(p.span(name), "unterminated statement %s", name.Text))
		case Space, Newline:
			p.skip(token.Text)
		case ParenOpen:
			depth++
			statement.Arguments = append(statement.Arguments, Argument{Text: token.Text, Pos: token.Pos(), Lead: p.lead()})
		case ParenClose:
			depth--
			if depth == 0 {
				statement.End = token.Pos()
				statement.EndLead = p.lead()
				return statement, nil
			}
			statement.Arguments = append(statement.Arguments, Argument{Text: token.Text, Pos: token.Pos(), Lead: p.lead()})
		case Identifier, ArgumentUnquoted:
			statement.Arguments = append(statement.Arguments, Argument{Text: token.Text, Pos: token.Pos(), Lead: p.lead()})
		case ArgumentQuoted:
			statement.Arguments = append(statement.Arguments, Argument{Text: token.Text, Quoted: true, Pos: token.Pos(), Lead: p.lead()})
		case CommentBlock:
			statement.Arguments = append(statement.Arguments, Argument{Text: token.Text, Comment: true, Pos: token.Pos(), Lead: p.lead()})
		case BadCharacter:
			p.warn(token, "unexpected character %q in %s", token.Text, name.Text)
			// kept so a rewrite reproduces it in place
			statement.Arguments = append(statement.Arguments, Argument{Text: token.Text, Pos: token.Pos(), Lead: p.lead()})
		}
	}
}

func (p *parser) warn(token Token, format string, args ...interface{}) {
	p.handler.HandleWarning(reporter.Errorf(p.span(token), format, args...))
}

func (p *parser) span(token Token) ast.SourceSpan {
	pos := ast.SourcePos{
		Filename: p.file.Path,
		Line:     int(token.Line),
		Col:      int(token.Column),
	}
	return ast.NewSourceSpan(pos, pos)
}

// commentEnd returns the position of the last character of a comment token.
func commentEnd(token Token) Pos {
	text := token.Text
	if n := strings.Count(text, "\n"); n > 0 {
		last := text[strings.LastIndex(text, "\n")+1:]
		return At(token.Line+uint(n), uint(len([]rune(last))))
	}
	return At(token.Line, token.Column+token.Length-1)
}
