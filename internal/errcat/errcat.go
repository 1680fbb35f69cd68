// Package errcat formats lex/parse-time diagnostics with source context and
// a caret pointing at the offending column, in the style of the teacher's
// internal/errors package (CWBudde-go-dws). Runtime errors raised while
// evaluating a program are value.Error records (internal/value/error.go);
// this package only covers the "external parser" diagnostics spec section
// 6 says the evaluator surfaces unchanged as ParseError.
package errcat

import (
	"fmt"
	"strings"

	"github.com/eddndev/achronyme/pkg/ast"
)

// SyntaxError is a single lex/parse failure with position and source
// context, formatted for REPL and CLI output (spec section 6's exit code 1
// path).
type SyntaxError struct {
	Message string
	Source  string
	File    string
	Pos     ast.Position
}

func NewSyntaxError(pos ast.Position, message, source, file string) *SyntaxError {
	return &SyntaxError{Pos: pos, Message: message, Source: source, File: file}
}

func (e *SyntaxError) Error() string { return e.Format() }

// Format renders the header, offending source line, and a caret under the
// failing column.
func (e *SyntaxError) Format() string {
	var sb strings.Builder

	if e.File != "" {
		sb.WriteString(fmt.Sprintf("Error in %s:%d:%d\n", e.File, e.Pos.Line, e.Pos.Column))
	} else {
		sb.WriteString(fmt.Sprintf("Error at line %d:%d\n", e.Pos.Line, e.Pos.Column))
	}

	line := e.sourceLine(e.Pos.Line)
	if line != "" {
		prefix := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(prefix)+e.Pos.Column-1))
		sb.WriteString("^\n")
	}

	sb.WriteString(e.Message)
	return sb.String()
}

func (e *SyntaxError) sourceLine(lineNum int) string {
	if e.Source == "" {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

// FormatAll renders a batch of syntax errors the way the REPL reports a
// file that failed to parse with multiple problems.
func FormatAll(errs []*SyntaxError) string {
	if len(errs) == 0 {
		return ""
	}
	if len(errs) == 1 {
		return errs[0].Format()
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("parsing failed with %d error(s):\n\n", len(errs)))
	for i, e := range errs {
		sb.WriteString(fmt.Sprintf("[%d/%d] ", i+1, len(errs)))
		sb.WriteString(e.Format())
		if i < len(errs)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}
