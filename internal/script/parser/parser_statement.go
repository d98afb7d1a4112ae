package parser

import (
	"github.com/pacer/ethereal/internal/script/lexer"
)

// ParseStatement parses a statement from tokens.
// A lone ';' is an empty statement: it is consumed and (nil, nil) is returned.
func (p *Parser) ParseStatement() (AstNode, *ParseError) {
	token := p.peek()
	if token == nil {
		err := NewParseError(
			p.offendingToken(),
			newSyntaxError(ErrUnexpectedToken, "expected a statement but found <EOF>"),
		)
		return nil, p.fail(err)
	}

	switch {
	case p.accept(lexer.Keyword):
		if handler, ok := keywordHandlers[token.Text()]; ok {
			return handler(p, token)
		}

	case token.Is(lexer.Separator, lexer.Semicolon):
		p.nextToken()
		return nil, nil

	case token.Is(lexer.Separator, lexer.BraceOpen):
		block, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		return block, nil

	case p.accept(lexer.Identifier):
		call, err := p.parseFunctionCall()
		if err != nil {
			return nil, err
		}
		return call, nil
	}

	err := NewParseError(
		token,
		newSyntaxError(
			ErrUnexpectedToken,
			"expected a statement but found %s",
			lexer.Describe(token),
		),
	)
	return nil, p.fail(err)
}

// parseFunctionCall parses 'name ( arg, ... )'. Arguments are identifiers or
// literals, with the same comma leniency as loop arguments.
func (p *Parser) parseFunctionCall() (*FunctionCallNode, *ParseError) {
	nameToken := p.peek()
	p.nextToken() // skip function name

	if !p.acceptDetail(lexer.Separator, lexer.ParenOpen) {
		err := NewParseError(
			p.offendingToken(),
			newSyntaxError(
				ErrExpectedToken,
				"expected '(' after '%s' but found %s",
				nameToken.Text(),
				lexer.Describe(p.peek()),
			),
		)
		return nil, p.fail(err)
	}

	openParen := p.peek()
	p.nextToken() // skip '('

	argTokens, closeParen, err := p.parseArgumentList(
		openParen,
		isCallArgument,
		ErrExpectedLiteralOrComma,
		"identifier, string or number literal",
	)
	if err != nil {
		return nil, err
	}

	p.nextToken() // skip ')'

	call := NewFunctionCallNode(nameToken, argTokens)
	call.rng.End = closeParen.Range.End

	return call, nil
}

func isCallArgument(token lexer.Token) bool {
	return token.IsLiteral() || token.ID == lexer.Identifier
}
