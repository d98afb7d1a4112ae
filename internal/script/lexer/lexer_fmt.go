package lexer

import (
	"fmt"
	"strings"
)

func (e LexerError) String() string {
	return fmt.Sprintf(
		`{ "Err": "%s", "Range": %s, "Token": %s }`,
		e.Err.Error(),
		e.Range,
		e.Token,
	)
}

func (p Position) String() string {
	return fmt.Sprintf("{ \"Line\": %d, \"Character\": %d }", p.Line, p.Character)
}

func (r Range) String() string {
	return fmt.Sprintf("{ \"Start\": %s, \"End\": %s }", r.Start, r.End)
}

func (t Token) String() string {
	return fmt.Sprintf(
		"{ \"ID\": \"%s\", \"Detail\": \"%s\", \"Range\": %s, \"Value\": %q }",
		t.ID,
		t.Detail,
		t.Range,
		t.Value,
	)
}

func (k Kind) String() string {
	switch k {
	case Number:
		return "Number"
	case StringLit:
		return "StringLit"
	case Identifier:
		return "Identifier"
	case Keyword:
		return "Keyword"
	case Operator:
		return "Operator"
	case Separator:
		return "Separator"
	case NotFound:
		return "NotFound"
	}

	return fmt.Sprintf("Kind(%d)", int(k))
}

func (d Detail) String() string {
	switch d {
	case DetailNone:
		return "None"
	case ParenOpen:
		return "ParenOpen"
	case ParenClose:
		return "ParenClose"
	case BraceOpen:
		return "BraceOpen"
	case BraceClose:
		return "BraceClose"
	case BracketOpen:
		return "BracketOpen"
	case BracketClose:
		return "BracketClose"
	case Comma:
		return "Comma"
	case Semicolon:
		return "Semicolon"
	case Colon:
		return "Colon"
	case Dot:
		return "Dot"
	}

	return fmt.Sprintf("Detail(%d)", int(d))
}

// Describe renders a token the way diagnostics quote it.
// A <nil> token stands for the end of the stream.
func Describe(t *Token) string {
	if t == nil {
		return "<EOF>"
	}

	if t.ID == StringLit {
		return `'"` + string(t.Value) + `"'`
	}

	return "'" + string(t.Value) + "'"
}

// PrettyFormatter converts an array of Stringer elements to a formatted string.
func PrettyFormatter[T fmt.Stringer](arr []T) string {
	if len(arr) == 0 {
		return "[]"
	}

	str := "["
	var sb strings.Builder
	for _, el := range arr {
		sb.WriteString(fmt.Sprintf("%s,", el))
	}
	str += sb.String()

	str = str[:len(str)-1]
	str += "]"

	return str
}

func Print(tokens ...Token) {
	str := PrettyFormatter(tokens)
	fmt.Println(str)
}
