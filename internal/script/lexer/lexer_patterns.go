package lexer

import (
	"log"
	"regexp"
)

// compiledPattern holds a pre-compiled regex pattern and its associated token information.
type compiledPattern struct {
	Regex *regexp.Regexp
	ID    Kind
}

// compiledPatterns holds all pre-compiled regex patterns used during tokenization.
// Every pattern is anchored at the start of the remaining input.
var compiledPatterns struct {
	whitespace         *regexp.Regexp
	comment            *regexp.Regexp
	unterminatedString *regexp.Regexp
	tokenPatterns      []compiledPattern
}

func init() {
	compiledPatterns.whitespace = regexp.MustCompile(`\A\s+`)
	compiledPatterns.comment = regexp.MustCompile(`\A#[^\n]*`)
	compiledPatterns.unterminatedString = regexp.MustCompile(`\A"[^"\n]*`)

	// order matters: numbers before the '.' separator, two-character operators
	// before their one-character prefix
	compiledPatterns.tokenPatterns = []compiledPattern{
		{
			Regex: regexp.MustCompile(`\A"(?:[^"\n\\]|\\.)*"`),
			ID:    StringLit,
		},
		{
			Regex: regexp.MustCompile(`\A(?:\d*[.]\d+|\d+)`),
			ID:    Number,
		},
		{
			Regex: regexp.MustCompile(`\A[[:alpha:]_]\w*`),
			ID:    Identifier,
		},
		{
			Regex: regexp.MustCompile(`\A(?:==|!=|<=|>=|&&|\|\||<<|>>|[-+*/%=<>!&|^~])`),
			ID:    Operator,
		},
		{
			Regex: regexp.MustCompile(`\A[(){}\[\],;:.]`),
			ID:    Separator,
		},
	}
}

type tokenizer struct {
	Tokens    []Token
	Errs      []Error
	LastToken *Token
}

func (t *tokenizer) appendToken(id Kind, detail Detail, pos Range, val []byte) {
	to := Token{
		ID:     id,
		Detail: detail,
		Range:  pos,
		Value:  val,
	}

	t.Tokens = append(t.Tokens, to)
	t.LastToken = &t.Tokens[len(t.Tokens)-1]
}

func (t *tokenizer) appendError(err error, token *Token) {
	if err == nil {
		log.Printf(
			"source tokenizer expected an error but got <nil> while appending error\n",
		)
		panic("source tokenizer expected an error but got <nil> while appending error")
	}

	lexErr := &LexerError{
		Err:   err,
		Token: CloneToken(token),
		Range: token.Range,
	}

	t.Errs = append(t.Errs, lexErr)
}

func createTokenizer() *tokenizer {
	return &tokenizer{
		Tokens: nil,
		Errs:   nil,
	}
}

// classify refines a raw pattern match into its final kind and detail.
func classify(id Kind, text []byte) (Kind, Detail) {
	switch id {
	case Identifier:
		if IsKeyword(string(text)) {
			return Keyword, DetailNone
		}
	case Separator:
		return Separator, separatorDetails[text[0]]
	}

	return id, DetailNone
}

func trimSuperflousCharacter(text []byte, id Kind) []byte {
	switch id {
	case StringLit:
		lower := 1
		upper := len(text) - 1
		text = text[lower:upper]
	}

	return text
}
