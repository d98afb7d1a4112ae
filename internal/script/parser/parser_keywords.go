package parser

import (
	"github.com/pacer/ethereal/internal/script/lexer"
)

// keywordHandler is a function that parses a specific keyword.
type keywordHandler func(p *Parser, keywordToken *lexer.Token) (AstNode, *ParseError)

// keywordHandlers maps keyword strings to their parse handlers.
// Initialized in init() to avoid initialization cycle.
var keywordHandlers map[string]keywordHandler

func init() {
	keywordHandlers = map[string]keywordHandler{
		lexer.KeywordFor:        (*Parser).parseLoopKeyword,
		lexer.KeywordForeach:    (*Parser).parseLoopKeyword,
		lexer.KeywordForeachVar: (*Parser).parseLoopKeyword,
		lexer.KeywordBreak:      (*Parser).parseBreakKeyword,
		lexer.KeywordContinue:   (*Parser).parseContinueKeyword,
	}
}

// parseLoopKeyword handles the "for", "foreach" and "foreach_var" keywords.
func (p *Parser) parseLoopKeyword(keywordToken *lexer.Token) (AstNode, *ParseError) {
	loop, ok := loopKindOf[keywordToken.Text()]
	if !ok {
		panic("keyword '" + keywordToken.Text() + "' is not a loop keyword")
	}

	loopNode, err := p.ParseLoop(loop)
	if err != nil {
		return nil, err
	}

	return loopNode, nil
}

// parseBreakKeyword handles the "break" keyword.
func (p *Parser) parseBreakKeyword(keywordToken *lexer.Token) (AstNode, *ParseError) {
	return p.parseLoopControl(KindBreak, keywordToken)
}

// parseContinueKeyword handles the "continue" keyword.
func (p *Parser) parseContinueKeyword(keywordToken *lexer.Token) (AstNode, *ParseError) {
	return p.parseLoopControl(KindContinue, keywordToken)
}

// parseLoopControl handles "break" and "continue", which are only valid
// somewhere inside a loop body.
func (p *Parser) parseLoopControl(kind Kind, keywordToken *lexer.Token) (AstNode, *ParseError) {
	if p.loopDepth == 0 {
		err := NewParseError(
			keywordToken,
			newSyntaxError(
				ErrLoopControl,
				"'%s' used outside of a loop body",
				keywordToken.Text(),
			),
		)
		return nil, p.fail(err)
	}

	command := NewSpecialCommandNode(kind, keywordToken)

	p.nextToken() // skip token

	return command, nil
}
