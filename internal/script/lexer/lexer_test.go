package lexer

import (
	"testing"

	"github.com/pacer/ethereal/internal/script/testutil"
)

func TestTokenize_EmptyInput(t *testing.T) {
	stream, errs := Tokenize([]byte(""))

	if stream == nil {
		t.Fatal("Expected non-nil stream for empty input")
	}

	if !stream.IsEmpty() {
		t.Errorf("Expected 0 tokens for empty input, got %d", stream.Len())
	}

	if len(errs) != 0 {
		t.Errorf("Expected 0 errors for empty input, got %d", len(errs))
	}
}

func TestTokenize_WhitespaceAndCommentsOnly(t *testing.T) {
	stream, errs := Tokenize([]byte("  \n\t# just a comment\n   # another\n"))

	testutil.AssertNoErrors(t, errs)

	if !stream.IsEmpty() {
		t.Errorf("Expected no tokens, got %d: %s", stream.Len(), PrettyFormatter(stream.Tokens))
	}
}

func TestTokenize_LoopHeader(t *testing.T) {
	stream, errs := Tokenize([]byte(`for( "i", 0, 10, 1 ) { print( i ) }`))

	testutil.AssertNoErrors(t, errs)

	expected := []struct {
		id     Kind
		detail Detail
		value  string
	}{
		{Keyword, DetailNone, "for"},
		{Separator, ParenOpen, "("},
		{StringLit, DetailNone, "i"},
		{Separator, Comma, ","},
		{Number, DetailNone, "0"},
		{Separator, Comma, ","},
		{Number, DetailNone, "10"},
		{Separator, Comma, ","},
		{Number, DetailNone, "1"},
		{Separator, ParenClose, ")"},
		{Separator, BraceOpen, "{"},
		{Identifier, DetailNone, "print"},
		{Separator, ParenOpen, "("},
		{Identifier, DetailNone, "i"},
		{Separator, ParenClose, ")"},
		{Separator, BraceClose, "}"},
	}

	if stream.Len() != len(expected) {
		t.Fatalf("Expected %d tokens, got %d: %s", len(expected), stream.Len(), PrettyFormatter(stream.Tokens))
	}

	for i, want := range expected {
		got := stream.Tokens[i]
		if got.ID != want.id || got.Detail != want.detail || got.Text() != want.value {
			t.Errorf("token %d: expected (%s, %s, %q), got (%s, %s, %q)",
				i, want.id, want.detail, want.value, got.ID, got.Detail, got.Text())
		}
	}
}

func TestTokenize_Keywords(t *testing.T) {
	tests := []struct {
		source string
		id     Kind
	}{
		{"for", Keyword},
		{"foreach", Keyword},
		{"foreach_var", Keyword},
		{"break", Keyword},
		{"continue", Keyword},
		{"format", Identifier},
		{"foreach_variable", Identifier},
		{"_for", Identifier},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			stream, errs := Tokenize([]byte(tt.source))
			testutil.AssertNoErrors(t, errs)

			if stream.Len() != 1 {
				t.Fatalf("Expected 1 token, got %d", stream.Len())
			}

			if stream.Tokens[0].ID != tt.id {
				t.Errorf("Expected %s, got %s", tt.id, stream.Tokens[0].ID)
			}
		})
	}
}

func TestTokenize_Numbers(t *testing.T) {
	stream, errs := Tokenize([]byte("42 3.14 .5"))
	testutil.AssertNoErrors(t, errs)

	want := []string{"42", "3.14", ".5"}
	if stream.Len() != len(want) {
		t.Fatalf("Expected %d tokens, got %d", len(want), stream.Len())
	}

	for i, text := range want {
		if stream.Tokens[i].ID != Number {
			t.Errorf("token %d: expected Number, got %s", i, stream.Tokens[i].ID)
		}
		if stream.Tokens[i].Text() != text {
			t.Errorf("token %d: expected %q, got %q", i, text, stream.Tokens[i].Text())
		}
	}
}

func TestTokenize_StringKeepsEscapes(t *testing.T) {
	stream, errs := Tokenize([]byte(`"a \"quoted\" word"`))
	testutil.AssertNoErrors(t, errs)

	if stream.Len() != 1 {
		t.Fatalf("Expected 1 token, got %d", stream.Len())
	}

	if got := stream.Tokens[0].Text(); got != `a \"quoted\" word` {
		t.Errorf("Expected raw string content, got %q", got)
	}
}

func TestTokenize_Operators(t *testing.T) {
	stream, errs := Tokenize([]byte("a == b != c <= d && e = f"))
	testutil.AssertNoErrors(t, errs)

	var operators []string
	for _, tok := range stream.Tokens {
		if tok.ID == Operator {
			operators = append(operators, tok.Text())
		}
	}

	want := []string{"==", "!=", "<=", "&&", "="}
	if len(operators) != len(want) {
		t.Fatalf("Expected operators %v, got %v", want, operators)
	}

	for i := range want {
		if operators[i] != want[i] {
			t.Errorf("operator %d: expected %q, got %q", i, want[i], operators[i])
		}
	}
}

func TestTokenize_Positions(t *testing.T) {
	source := "for(\n  \"a\", 1 )\n# comment\n{ }"
	stream, errs := Tokenize([]byte(source))
	testutil.AssertNoErrors(t, errs)

	expected := []struct {
		value string
		line  int
		col   int
	}{
		{"for", 1, 1},
		{"(", 1, 4},
		{"a", 2, 3},
		{",", 2, 6},
		{"1", 2, 8},
		{")", 2, 10},
		{"{", 4, 1},
		{"}", 4, 3},
	}

	if stream.Len() != len(expected) {
		t.Fatalf("Expected %d tokens, got %d", len(expected), stream.Len())
	}

	for i, want := range expected {
		tok := stream.Tokens[i]
		if tok.Text() != want.value {
			t.Errorf("token %d: expected %q, got %q", i, want.value, tok.Text())
		}
		if tok.Line() != want.line || tok.Column() != want.col {
			t.Errorf("token %q: expected %d:%d, got %d:%d",
				want.value, want.line, want.col, tok.Line(), tok.Column())
		}
	}

	// string token range covers the quotes
	str := stream.Tokens[2]
	if str.Range.End.Character-str.Range.Start.Character != 3 {
		t.Errorf("Expected string range width 3, got %s", str.Range)
	}
}

func TestTokenize_UnrecognizedCharacter(t *testing.T) {
	stream, errs := Tokenize([]byte(`for( "a" @ )`))

	testutil.AssertErrorCount(t, errs, 1)
	testutil.AssertErrorContains(t, errs, "not recognized")

	found := false
	for _, tok := range stream.Tokens {
		if tok.ID == NotFound && tok.Text() == "@" {
			found = true
		}
	}

	if !found {
		t.Errorf("Expected a NotFound token for '@', got %s", PrettyFormatter(stream.Tokens))
	}

	// tokenizing goes on after the bad character
	last := stream.Tokens[stream.Len()-1]
	if !last.Is(Separator, ParenClose) {
		t.Errorf("Expected last token to be ')', got %s", last)
	}
}

func TestTokenize_UnterminatedString(t *testing.T) {
	stream, errs := Tokenize([]byte("foreach( \"abc\n)"))

	testutil.AssertErrorCount(t, errs, 1)
	testutil.AssertErrorContains(t, errs, "unterminated string")

	last := stream.Tokens[stream.Len()-1]
	if !last.Is(Separator, ParenClose) {
		t.Errorf("Expected tokenizing to resume on the next line, got %s", last)
	}
}

func TestDescribe(t *testing.T) {
	if got := Describe(nil); got != "<EOF>" {
		t.Errorf("Expected <EOF>, got %s", got)
	}

	tok := NewToken(StringLit, DetailNone, Range{}, []byte("a"))
	if got := Describe(tok); got != `'"a"'` {
		t.Errorf("Expected quoted string, got %s", got)
	}

	tok = NewToken(Identifier, DetailNone, Range{}, []byte("x"))
	if got := Describe(tok); got != "'x'" {
		t.Errorf("Expected 'x', got %s", got)
	}
}

func TestStreamToken_String(t *testing.T) {
	stream, _ := Tokenize([]byte(`foreach( "e", "v" )`))

	if got := stream.String(); got != `foreach ( "e" , "v" )` {
		t.Errorf("Unexpected stream rendering: %q", got)
	}
}
