package parser

import (
	"github.com/pacer/ethereal/internal/script/lexer"
)

// parseBlock parses '{ statement... }' with the cursor on '{'.
// On success the cursor is right after the matching '}'.
func (p *Parser) parseBlock() (*BlockStatementNode, *ParseError) {
	openBrace := p.peek()
	if openBrace == nil || !openBrace.Is(lexer.Separator, lexer.BraceOpen) {
		panic("block parser called without the cursor on '{'")
	}

	// 1. Escape infinite recursion
	p.incRecursionDepth()
	defer p.decRecursionDepth()

	if p.isRecursionMaxDepth() {
		err := NewParseError(
			openBrace,
			newSyntaxError(
				ErrMaxDepth,
				"blocks nested deeper than %d levels",
				p.maxRecursionDepth,
			),
		)
		return nil, p.fail(err)
	}

	p.nextToken() // skip '{'

	block := NewBlockStatementNode(openBrace.Range)

	for {
		token := p.peek()

		if token == nil {
			err := NewParseError(
				openBrace,
				newSyntaxError(
					ErrUnterminatedBlock,
					"missing '}' to close the block, found <EOF>",
				),
			)
			return nil, p.fail(err)
		}

		if p.expect(lexer.Separator, lexer.BraceClose) {
			block.rng.End = token.Range.End
			return block, nil
		}

		statement, err := p.ParseStatement()
		if err != nil {
			return nil, err
		}

		if statement != nil {
			block.Statements = append(block.Statements, statement)
		}
	}
}
