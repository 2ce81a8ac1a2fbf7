package listfile

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/bufbuild/protocompile/reporter"
)

// ErrNoPositions is returned by editor operations on a file that was not
// parsed from disk and therefore has no coordinates to preserve.
var ErrNoPositions = errors.New("listfile: file has no source positions")

// MissingStatementError reports that an edit required a statement the file
// does not contain.
type MissingStatementError struct {
	Criteria Criteria
	Path     string
}

func (e *MissingStatementError) Error() string {
	return fmt.Sprintf("%s: missing %s statement", e.Path, e.Criteria)
}

// SyntaxError collects the diagnostics reported while parsing a file.
type SyntaxError []reporter.ErrorWithPos

// Error returns one line per diagnostic.
func (e SyntaxError) Error() string {
	var buf bytes.Buffer
	for i := range e {
		if i > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(e[i].Error())
	}
	return buf.String()
}

// Unwrap returns an error for each diagnostic.
func (e SyntaxError) Unwrap() []error {
	slice := make([]error, len(e))
	for i := range e {
		slice[i] = e[i]
	}
	return slice
}

// Collector returns a reporter accumulating errors and warnings into the
// given slices without failing the parse.
func Collector(errs, warnings *SyntaxError) reporter.Reporter {
	return reporter.NewReporter(
		func(err reporter.ErrorWithPos) error {
			if errs != nil {
				*errs = append(*errs, err)
			}
			return nil
		},
		func(err reporter.ErrorWithPos) {
			if warnings != nil {
				*warnings = append(*warnings, err)
			}
		},
	)
}
