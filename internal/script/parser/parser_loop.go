package parser

import (
	"github.com/pacer/ethereal/internal/script/lexer"
)

// ParseLoop parses 'keyword ( arg, ... ) { body }' with the cursor on the keyword.
//
// Arguments must be string or number literals; commas only separate them and
// are never checked for placement. The argument count is validated against
// the rule of 'loop'. The body is optional: when the token after ')' is not
// '{' the loop has no body and the cursor stays right after ')'.
//
// On success the cursor is past the last consumed token. No node is returned
// alongside an error.
func (p *Parser) ParseLoop(loop LoopKind) (*LoopStatementNode, *ParseError) {
	keywordToken := p.peek()
	if keywordToken == nil {
		panic("loop parser called with the cursor past the end of the stream")
	}

	p.nextToken() // skip loop keyword

	if !p.acceptDetail(lexer.Separator, lexer.ParenOpen) {
		err := NewParseError(
			p.offendingToken(),
			newSyntaxError(
				ErrExpectedToken,
				"expected '(' but found %s",
				lexer.Describe(p.peek()),
			),
		)
		return nil, p.fail(err)
	}

	openParen := p.peek()
	p.nextToken() // skip '('

	argTokens, closeParen, err := p.parseArgumentList(
		openParen,
		lexer.Token.IsLiteral,
		ErrExpectedLiteralOrComma,
		"string or number literal",
	)
	if err != nil {
		return nil, err
	}

	if !loop.AcceptsArgumentCount(len(argTokens)) {
		err := NewParseError(keywordToken, &ArityError{Loop: loop, Got: len(argTokens)})
		err.Range.End = closeParen.Range.End
		return nil, p.fail(err)
	}

	p.nextToken() // skip ')'

	loopNode := newLoopStatementNode(loop, keywordToken, argTokens)
	loopNode.rng.End = closeParen.Range.End

	if !p.acceptDetail(lexer.Separator, lexer.BraceOpen) {
		return loopNode, nil
	}

	openBrace := p.peek()

	p.loopDepth++
	block, err := p.parseBlock()
	p.loopDepth--

	if err != nil {
		blockErr := NewParseError(
			openBrace,
			wrapSyntaxError(
				ErrBlockParse,
				err,
				"error encountered while parsing the body of loop '%s'",
				loop,
			),
		)
		return nil, p.fail(blockErr)
	}

	loopNode.block = block
	loopNode.rng.End = block.Range().End

	return loopNode, nil
}

// parseArgumentList consumes arguments up to the closing ')', which is left
// under the cursor and returned. 'isArgument' selects the tokens kept as
// arguments; commas are skipped wherever they appear.
func (p *Parser) parseArgumentList(
	openParen *lexer.Token,
	isArgument func(lexer.Token) bool,
	errKind error,
	expected string,
) ([]*lexer.Token, *lexer.Token, *ParseError) {
	var arguments []*lexer.Token

	for {
		token := p.peek()

		switch {
		case token == nil:
			err := NewParseError(
				openParen,
				newSyntaxError(
					ErrUnterminatedArgumentList,
					"missing ')' to close the argument list, found <EOF>",
				),
			)
			return nil, nil, p.fail(err)

		case token.Is(lexer.Separator, lexer.ParenClose):
			return arguments, token, nil

		case isArgument(*token):
			arguments = append(arguments, token)
			p.nextToken()

		case token.Is(lexer.Separator, lexer.Comma):
			p.nextToken()

		default:
			err := NewParseError(
				token,
				newSyntaxError(
					errKind,
					"expected %s or ',' but found %s",
					expected,
					lexer.Describe(token),
				),
			)
			return nil, nil, p.fail(err)
		}
	}
}

// loopKindOf maps a loop keyword to its kind.
var loopKindOf = map[string]LoopKind{
	lexer.KeywordFor:        LoopFor,
	lexer.KeywordForeach:    LoopForeach,
	lexer.KeywordForeachVar: LoopForeachVar,
}
