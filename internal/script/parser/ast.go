package parser

import (
	"slices"

	"github.com/pacer/ethereal/internal/script/lexer"
)

// AstNode is implemented by every node of the parse tree.
type AstNode interface {
	Kind() Kind
	Range() lexer.Range
	String() string
}

// ProgramNode is the root of a parsed file.
type ProgramNode struct {
	kind       Kind
	rng        lexer.Range
	Statements []AstNode
}

func NewProgramNode() *ProgramNode {
	return &ProgramNode{kind: KindProgram}
}

func (p ProgramNode) Kind() Kind         { return p.kind }
func (p ProgramNode) Range() lexer.Range { return p.rng }

// BlockStatementNode is a brace delimited list of statements.
type BlockStatementNode struct {
	kind       Kind
	rng        lexer.Range
	Statements []AstNode
}

func NewBlockStatementNode(reach lexer.Range) *BlockStatementNode {
	return &BlockStatementNode{
		kind: KindBlock,
		rng:  reach,
	}
}

func (b BlockStatementNode) Kind() Kind         { return b.kind }
func (b BlockStatementNode) Range() lexer.Range { return b.rng }

// LoopStatementNode is a 'for', 'foreach' or 'foreach_var' statement.
//
// Nodes are only built by a successful parse and are read through accessors,
// so the arguments always satisfy the arity rule of the loop kind. The body is
// <nil> for a loop without one; when set, the loop is the only node
// referencing it.
type LoopStatementNode struct {
	kind         Kind
	rng          lexer.Range
	loopKind     LoopKind
	keywordToken *lexer.Token
	args         []string
	argTokens    []*lexer.Token
	block        *BlockStatementNode
}

// newLoopStatementNode builds a loop whose arguments are the raw text of 'argTokens'.
func newLoopStatementNode(
	loop LoopKind,
	keywordToken *lexer.Token,
	argTokens []*lexer.Token,
) *LoopStatementNode {
	args := make([]string, 0, len(argTokens))
	for _, token := range argTokens {
		args = append(args, token.Text())
	}

	return &LoopStatementNode{
		kind:         KindLoop,
		rng:          keywordToken.Range,
		loopKind:     loop,
		keywordToken: keywordToken,
		args:         args,
		argTokens:    argTokens,
	}
}

func (l LoopStatementNode) Kind() Kind         { return l.kind }
func (l LoopStatementNode) Range() lexer.Range { return l.rng }

// Type returns the loop flavour.
func (l LoopStatementNode) Type() LoopKind { return l.loopKind }

// Keyword returns the token of the loop keyword.
func (l LoopStatementNode) Keyword() *lexer.Token { return l.keywordToken }

// Arguments returns a copy of the loop arguments in source order.
func (l LoopStatementNode) Arguments() []string { return slices.Clone(l.args) }

// ArgumentTokens returns a copy of the tokens the arguments were read from.
func (l LoopStatementNode) ArgumentTokens() []*lexer.Token { return slices.Clone(l.argTokens) }

// Body returns the loop body, or <nil> when the loop has none.
func (l LoopStatementNode) Body() *BlockStatementNode { return l.block }

// HasBody reports whether the loop was followed by a block.
func (l LoopStatementNode) HasBody() bool { return l.block != nil }

// FunctionCallNode is a call statement such as 'print( "x", i )'.
type FunctionCallNode struct {
	kind Kind
	rng  lexer.Range
	Name *lexer.Token
	Args []*lexer.Token
}

func NewFunctionCallNode(name *lexer.Token, args []*lexer.Token) *FunctionCallNode {
	return &FunctionCallNode{
		kind: KindFunctionCall,
		rng:  name.Range,
		Name: name,
		Args: args,
	}
}

func (f FunctionCallNode) Kind() Kind         { return f.kind }
func (f FunctionCallNode) Range() lexer.Range { return f.rng }

// SpecialCommandNode holds 'break' and 'continue'.
type SpecialCommandNode struct {
	kind  Kind
	rng   lexer.Range
	Value *lexer.Token
}

func NewSpecialCommandNode(kind Kind, value *lexer.Token) *SpecialCommandNode {
	return &SpecialCommandNode{
		kind:  kind,
		rng:   value.Range,
		Value: value,
	}
}

func (s SpecialCommandNode) Kind() Kind         { return s.kind }
func (s SpecialCommandNode) Range() lexer.Range { return s.rng }

// Walk calls 'visit' for 'node' and every node below it, depth first.
// Returning false from 'visit' skips the children of that node.
func Walk(node AstNode, visit func(AstNode) bool) {
	if node == nil || !visit(node) {
		return
	}

	switch n := node.(type) {
	case *ProgramNode:
		for _, statement := range n.Statements {
			Walk(statement, visit)
		}
	case *BlockStatementNode:
		for _, statement := range n.Statements {
			Walk(statement, visit)
		}
	case *LoopStatementNode:
		if n.block != nil {
			Walk(n.block, visit)
		}
	}
}
