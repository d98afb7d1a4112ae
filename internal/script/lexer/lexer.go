package lexer

// ----------------------
// Lexer Types definition
// ----------------------

// Position is a 0-based location inside a source file.
type Position struct {
	Line      int
	Character int
}

// Range is a span of source text. 'End' is exclusive.
type Range struct {
	Start Position
	End   Position
}

// Offset returns a new Position with the character offset by delta.
func (p Position) Offset(delta int) Position {
	return Position{
		Line:      p.Line,
		Character: p.Character + delta,
	}
}

// Kind is the category of a token.
type Kind int

// Detail refines a Kind. Only separators carry a detail other than DetailNone.
type Detail int

// StreamToken is the ordered token sequence of a single source file.
// It carries no end-of-file token: the end of the slice is the end of the stream.
type StreamToken struct {
	Tokens []Token
}

func (s StreamToken) IsEmpty() bool {
	return len(s.Tokens) == 0
}

func (s StreamToken) Len() int {
	return len(s.Tokens)
}

func (s StreamToken) String() string {
	if len(s.Tokens) == 0 {
		return ""
	}

	str := ""
	for _, tok := range s.Tokens {
		piece := string(tok.Value)
		if tok.ID == StringLit {
			piece = `"` + piece + `"`
		}

		str = str + " " + piece
	}

	return str[1:]
}

type Token struct {
	ID     Kind
	Detail Detail
	Range  Range
	Value  []byte
}

func NewToken(id Kind, detail Detail, reach Range, val []byte) *Token {
	fresh := &Token{
		ID:     id,
		Detail: detail,
		Range:  reach,
		Value:  val,
	}

	return fresh
}

func CloneToken(old *Token) *Token {
	if old == nil {
		return nil
	}

	fresh := &Token{
		ID:     old.ID,
		Detail: old.Detail,
		Range:  old.Range,
		Value:  append([]byte(nil), old.Value...),
	}

	return fresh
}

// Is reports whether the token has the given kind and detail.
func (t Token) Is(id Kind, detail Detail) bool {
	return t.ID == id && t.Detail == detail
}

// IsLiteral reports whether the token is a string or a number literal.
func (t Token) IsLiteral() bool {
	return t.ID == StringLit || t.ID == Number
}

func (t Token) Text() string {
	return string(t.Value)
}

// Line returns the 1-based line of the token, as shown to users.
func (t Token) Line() int {
	return t.Range.Start.Line + 1
}

// Column returns the 1-based column of the token, as shown to users.
func (t Token) Column() int {
	return t.Range.Start.Character + 1
}

type LexerError struct {
	Err   error
	Range Range
	Token *Token
}

func (l LexerError) GetError() string {
	return l.Err.Error()
}

func (l LexerError) GetRange() Range {
	return l.Range
}

func (l LexerError) Error() string {
	return l.Err.Error()
}

func (l LexerError) Unwrap() error {
	return l.Err
}

// Error is the common shape of every error produced by the lexer and the parser.
type Error interface {
	GetError() string
	GetRange() Range
	String() string
}

// Tokenize the source code provided by 'content'.
// Whitespace and '#' comments are dropped. Characters that match no pattern
// become 'NotFound' tokens and are reported, but tokenizing goes on so that the
// parser still sees the rest of the file.
func Tokenize(content []byte) (*StreamToken, []Error) {
	if len(content) == 0 {
		return &StreamToken{}, nil
	}

	return tokenizeSource(content)
}
