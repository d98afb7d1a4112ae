package lexer

// ----------
// Lexer Kind
// ----------

const (
	Number Kind = iota
	StringLit
	Identifier
	Keyword
	Operator
	Separator
	NotFound
)

// ------------
// Lexer Detail
// ------------

const (
	DetailNone Detail = iota
	ParenOpen
	ParenClose
	BraceOpen
	BraceClose
	BracketOpen
	BracketClose
	Comma
	Semicolon
	Colon
	Dot
)

// separatorDetails maps every single-character separator to its detail.
var separatorDetails = map[byte]Detail{
	'(': ParenOpen,
	')': ParenClose,
	'{': BraceOpen,
	'}': BraceClose,
	'[': BracketOpen,
	']': BracketClose,
	',': Comma,
	';': Semicolon,
	':': Colon,
	'.': Dot,
}
