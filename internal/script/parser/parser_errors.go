package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pacer/ethereal/internal/script/lexer"
)

// Errors returned by the parser. Every *ParseError wraps exactly one of them,
// so callers can branch with errors.Is.
var (
	ErrExpectedToken            = errors.New("expected token")
	ErrExpectedLiteralOrComma   = errors.New("expected literal or ','")
	ErrUnterminatedArgumentList = errors.New("unterminated argument list")
	ErrArity                    = errors.New("wrong number of loop arguments")
	ErrBlockParse               = errors.New("invalid loop body")
	ErrUnterminatedBlock        = errors.New("unterminated block")
	ErrUnexpectedToken          = errors.New("unexpected token")
	ErrLoopControl              = errors.New("loop control statement outside of a loop")
	ErrMaxDepth                 = errors.New("maximum nesting depth reached")
)

type ParseError struct {
	Err   error
	Range lexer.Range
	Token *lexer.Token
}

func (p ParseError) GetError() string {
	return p.Err.Error()
}

func (p ParseError) GetRange() lexer.Range {
	return p.Range
}

func (p ParseError) Error() string {
	return p.Err.Error()
}

func (p ParseError) Unwrap() error {
	return p.Err
}

// Line returns the 1-based line where the error starts.
func (p ParseError) Line() int {
	return p.Range.Start.Line + 1
}

// Column returns the 1-based column where the error starts.
func (p ParseError) Column() int {
	return p.Range.Start.Character + 1
}

func NewParseError(token *lexer.Token, err error) *ParseError {
	if token == nil {
		panic("token cannot be nil while creating parse error")
	}

	e := &ParseError{
		Err:   err,
		Range: token.Range,
		Token: token,
	}

	return e
}

// ArityError reports a loop whose argument count breaks the rule of its kind.
type ArityError struct {
	Loop LoopKind
	Got  int
}

func (e *ArityError) Error() string {
	expected := "a valid number of"
	if rule, ok := loopArity[e.Loop]; ok {
		expected = rule.expected
	}

	return fmt.Sprintf(
		"expected %s arguments in loop '%s', but found: %d",
		expected,
		e.Loop,
		e.Got,
	)
}

func (e *ArityError) Is(target error) bool {
	return target == ErrArity
}

// syntaxError pairs a user facing message with the sentinel errors it matches.
type syntaxError struct {
	msg    string
	causes []error
}

func (e *syntaxError) Error() string {
	return e.msg
}

func (e *syntaxError) Unwrap() []error {
	return e.causes
}

func newSyntaxError(kind error, format string, args ...any) error {
	return &syntaxError{
		msg:    fmt.Sprintf(format, args...),
		causes: []error{kind},
	}
}

// wrapSyntaxError builds an error matching both 'kind' and every error in 'cause'.
func wrapSyntaxError(kind, cause error, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if cause != nil {
		msg += ": " + strings.TrimSpace(cause.Error())
	}

	return &syntaxError{
		msg:    msg,
		causes: []error{kind, cause},
	}
}
