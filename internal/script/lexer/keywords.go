package lexer

// Script keywords used by both lexer and parser.
const (
	KeywordFor        = "for"
	KeywordForeach    = "foreach"
	KeywordForeachVar = "foreach_var"
	KeywordBreak      = "break"
	KeywordContinue   = "continue"
)

var keywords = map[string]bool{
	KeywordFor:        true,
	KeywordForeach:    true,
	KeywordForeachVar: true,
	KeywordBreak:      true,
	KeywordContinue:   true,
}

// IsKeyword reports whether word is a reserved word of the language.
func IsKeyword(word string) bool {
	return keywords[word]
}
