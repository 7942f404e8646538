package parser

import (
	"fmt"

	"github.com/benbjohnson/css3/token"
)

// Error represents a syntax error.
type Error struct {
	Message string
	Pos     token.Pos
}

// Error returns the formatted string error message with its location.
func (e *Error) Error() string {
	return e.Message + " at " + e.Pos.String()
}

// unexpected returns an error for a token that the current production
// does not accept. EOF is reported as a premature end of input.
func unexpected(tok token.Token) *Error {
	if tok.Kind == token.EOF {
		return &Error{Message: "unexpected EOF", Pos: tok.Pos}
	}
	return &Error{Message: "unexpected " + tok.Describe(), Pos: tok.Pos}
}

// expected returns an error for a token that is not the one required.
func expected(what string, tok token.Token) *Error {
	return &Error{Message: fmt.Sprintf("expected %s, got %s", what, tok.Describe()), Pos: tok.Pos}
}
