package parser

import (
	"github.com/pacer/ethereal/internal/script/lexer"
)

// Parser is a recursive descent parser over a single token stream.
//
// The cursor (indexCurrentToken) is shared by every parse routine: each one
// starts where the previous stopped and leaves it right after the last token
// it consumed. When a routine fails, the cursor is left on the token that
// caused the failure, or at the end of the stream.
// A Parser must not be used from several goroutines at once.
type Parser struct {
	stream            *lexer.StreamToken
	indexCurrentToken int
	sizeStream        int

	sink DiagnosticSink
	errs []lexer.Error

	maxRecursionDepth     int
	currentRecursionDepth int
	loopDepth             int
}

// Option configures a Parser.
type Option func(*Parser)

// WithSink sets the sink receiving every syntax error.
func WithSink(sink DiagnosticSink) Option {
	return func(p *Parser) {
		if sink == nil {
			sink = discardSink{}
		}
		p.sink = sink
	}
}

// WithMaxDepth limits how deep blocks may nest. Values below 1 are ignored.
func WithMaxDepth(depth int) Option {
	return func(p *Parser) {
		if depth > 0 {
			p.maxRecursionDepth = depth
		}
	}
}

func NewParser(streamOfToken *lexer.StreamToken, opts ...Option) *Parser {
	p := &Parser{
		sink:              discardSink{},
		maxRecursionDepth: defaultMaxRecursionDepth,
	}

	for _, opt := range opts {
		opt(p)
	}

	p.Reset(streamOfToken)

	return p
}

// Reset points the parser at the start of a new stream. Options are kept,
// collected errors are dropped.
func (p *Parser) Reset(streamOfToken *lexer.StreamToken) {
	if streamOfToken == nil {
		streamOfToken = &lexer.StreamToken{}
	}

	p.stream = streamOfToken
	p.sizeStream = streamOfToken.Len()
	p.indexCurrentToken = 0
	p.errs = nil

	if p.sink == nil {
		p.sink = discardSink{}
	}

	if p.maxRecursionDepth <= 0 {
		p.maxRecursionDepth = defaultMaxRecursionDepth
	}

	p.currentRecursionDepth = 0
	p.loopDepth = 0
}

// Cursor returns the index of the next unconsumed token.
func (p *Parser) Cursor() int {
	return p.indexCurrentToken
}

// Seek moves the cursor, clamped to the bounds of the stream.
func (p *Parser) Seek(index int) {
	if index < 0 {
		index = 0
	}

	if index > p.sizeStream {
		index = p.sizeStream
	}

	p.indexCurrentToken = index
}

// AtEnd reports whether every token has been consumed.
func (p *Parser) AtEnd() bool {
	return p.indexCurrentToken >= p.sizeStream
}

// Errors returns the syntax errors found so far, in order.
func (p *Parser) Errors() []lexer.Error {
	return p.errs
}

// Parse tokens into AST and return syntax errors found during the process.
// Returned parse tree is never <nil>.
func Parse(stream *lexer.StreamToken, opts ...Option) (*ProgramNode, []lexer.Error) {
	parser := NewParser(stream, opts...)
	root := parser.ParseProgram()

	return root, parser.Errors()
}

// ParseProgram parses statements until the end of the stream.
// A failing statement does not stop the parse: the cursor is moved to the
// next statement boundary and parsing resumes from there.
func (p *Parser) ParseProgram() *ProgramNode {
	program := NewProgramNode()

	for !p.AtEnd() {
		token := p.peek()

		if token.Is(lexer.Separator, lexer.BraceClose) {
			err := NewParseError(
				token,
				newSyntaxError(ErrUnexpectedToken, "unexpected '}' without matching '{'"),
			)
			p.fail(err)
			p.nextToken()
			continue
		}

		start := p.indexCurrentToken

		statement, err := p.ParseStatement()
		if err != nil {
			p.synchronize(start)
			continue
		}

		if statement != nil {
			appendStatementToProgram(program, statement)
		}
	}

	return program
}

// synchronize skips to just past the next ';' or to the next keyword.
// It always moves past 'start' so that a failing statement is never retried.
func (p *Parser) synchronize(start int) {
	if p.indexCurrentToken <= start {
		p.Seek(start + 1)
	}

	for !p.AtEnd() {
		token := p.peek()

		if token.Is(lexer.Separator, lexer.Semicolon) {
			p.nextToken()
			return
		}

		if token.ID == lexer.Keyword {
			return
		}

		p.nextToken()
	}
}

func appendStatementToProgram(program *ProgramNode, statement AstNode) {
	if statement == nil {
		panic("cannot add empty statement to 'program'")
	}

	if len(program.Statements) == 0 {
		program.rng.Start = statement.Range().Start
	}

	program.Statements = append(program.Statements, statement)
	program.rng.End = statement.Range().End
}
