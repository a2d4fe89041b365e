package selector

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrSyntax      = errors.New("invalid syntax")
	ErrEmpty       = errors.New("selector is empty")
	ErrArgument    = errors.New("invalid argument")
	ErrUnsupported = errors.New("not supported")
	ErrDisposed    = errors.New("reader is closed")
)

// SyntaxError is returned for any lexical or grammar error found in a
// selector. Pos is the 1-based position of the offending character or token
// when known, zero otherwise.
type SyntaxError struct {
	Expr  string
	Cause string
	Pos   int
}

func syntaxError(cause string, pos int) error {
	return &SyntaxError{
		Cause: cause,
		Pos:   pos,
	}
}

func unexpectedToken(tok Token, expected ...string) error {
	var cause string
	switch len(expected) {
	case 0:
		cause = fmt.Sprintf("unexpected %s", tok)
	case 1:
		cause = fmt.Sprintf("unexpected %s, expected %s", tok, expected[0])
	default:
		var (
			last = expected[len(expected)-1]
			rest = strings.Join(expected[:len(expected)-1], ", ")
		)
		cause = fmt.Sprintf("unexpected %s, expected %s or %s", tok, rest, last)
	}
	return syntaxError(cause, tok.Pos)
}

func (e *SyntaxError) Error() string {
	var msg string
	if e.Pos > 0 {
		msg = fmt.Sprintf("%s at position %d", e.Cause, e.Pos)
	} else {
		msg = e.Cause
	}
	if e.Expr != "" {
		msg = fmt.Sprintf("%s: %s", e.Expr, msg)
	}
	return msg
}

func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}

func withExpr(err error, expr string) error {
	var se *SyntaxError
	if errors.As(err, &se) && se.Expr == "" {
		se.Expr = expr
	}
	return err
}
