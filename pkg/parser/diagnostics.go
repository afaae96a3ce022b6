package parser

import (
	"fmt"

	"arcscript/interpreter-go/pkg/lexer"
)

// SourceLocation captures a source span for parser diagnostics.
type SourceLocation struct {
	Line      int
	Column    int
	EndLine   int
	EndColumn int
}

// ParseError includes a message plus a best-effort source location.
type ParseError struct {
	Message  string
	Location SourceLocation
}

func (e *ParseError) Error() string {
	return e.Message
}

func locationForToken(tok lexer.Token) SourceLocation {
	return SourceLocation{
		Line:      tok.Line,
		Column:    tok.Column,
		EndLine:   tok.EndLine,
		EndColumn: tok.EndColumn,
	}
}

func errorAtToken(tok lexer.Token, format string, args ...any) *ParseError {
	return &ParseError{
		Message:  fmt.Sprintf(format, args...),
		Location: locationForToken(tok),
	}
}

func lexicalParseError(lexErr *lexer.Error) *ParseError {
	return &ParseError{
		Message: lexErr.Message,
		Location: SourceLocation{
			Line:      lexErr.Line,
			Column:    lexErr.Column,
			EndLine:   lexErr.Line,
			EndColumn: lexErr.Column + 1,
		},
	}
}
