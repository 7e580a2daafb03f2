package parser

import (
	"errors"
	"fmt"

	"github.com/zakarialaoui10/lfi3a/pkg/lexer"
)

// ParseError reports the first unmet expectation. Parsing stops there and no
// partial program is returned.
type ParseError struct {
	Message string
	Token   lexer.Token
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s (line %d, column %d)", e.Message, e.Token.Pos.Line, e.Token.Pos.Column)
}

// Incomplete reports whether the parser ran out of input, as opposed to
// meeting a token it could not use.
func (e *ParseError) Incomplete() bool {
	return e.Token.Kind == lexer.End
}

// IsIncomplete reports whether err is a ParseError raised at end of input.
func IsIncomplete(err error) bool {
	var parseErr *ParseError
	return errors.As(err, &parseErr) && parseErr.Incomplete()
}

func expectationError(message string, tok lexer.Token) *ParseError {
	return &ParseError{
		Message: fmt.Sprintf("%s at token: %s", message, tok.Text),
		Token:   tok,
	}
}

func unexpectedTokenError(tok lexer.Token) *ParseError {
	return &ParseError{
		Message: fmt.Sprintf("Unexpected token: %s", tok.Text),
		Token:   tok,
	}
}
