package parser

import (
	"github.com/pacer/ethereal/internal/script/lexer"
)

func (p Parser) peek() *lexer.Token {
	index := p.indexCurrentToken

	if index >= p.sizeStream {
		return nil
	}

	return &p.stream.Tokens[index]
}

// lastToken returns the final token of the stream, or <nil> for an empty stream.
func (p Parser) lastToken() *lexer.Token {
	if p.sizeStream == 0 {
		return nil
	}

	return &p.stream.Tokens[p.sizeStream-1]
}

// offendingToken is the token an error at the cursor points to:
// the current token, or the last one when the stream is exhausted.
func (p Parser) offendingToken() *lexer.Token {
	if token := p.peek(); token != nil {
		return token
	}

	return p.lastToken()
}

func (p *Parser) nextToken() {
	p.indexCurrentToken++
}

func (p Parser) accept(kind lexer.Kind) bool {
	token := p.peek()

	return token != nil && token.ID == kind
}

func (p Parser) acceptDetail(kind lexer.Kind, detail lexer.Detail) bool {
	token := p.peek()

	return token != nil && token.Is(kind, detail)
}

func (p *Parser) expect(kind lexer.Kind, detail lexer.Detail) bool {
	if p.acceptDetail(kind, detail) {
		p.nextToken()

		return true
	}

	return false
}

func (p *Parser) incRecursionDepth() {
	p.currentRecursionDepth++
}

func (p *Parser) decRecursionDepth() {
	p.currentRecursionDepth--
}

func (p Parser) isRecursionMaxDepth() bool {
	return p.currentRecursionDepth > p.maxRecursionDepth
}

// fail is the single exit for syntax errors: the error is recorded, handed to
// the diagnostic sink, and returned so that callers can 'return nil, p.fail(err)'.
func (p *Parser) fail(err *ParseError) *ParseError {
	if err == nil {
		panic("parser cannot fail with a <nil> error")
	}

	p.errs = append(p.errs, err)
	p.sink.Report(err.GetError(), err.Line(), err.Column())

	return err
}
