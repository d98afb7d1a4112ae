package parser

// -----------
// Parser Kind
// -----------

// Parser configuration constants
const (
	// defaultMaxRecursionDepth limits block nesting to prevent stack overflow.
	defaultMaxRecursionDepth = 64

	// DefaultMaxDepth is the block nesting limit used when WithMaxDepth is not given.
	DefaultMaxDepth = defaultMaxRecursionDepth
)

// Kind identifies the concrete type of an AST node.
type Kind int

const (
	KindProgram Kind = iota
	KindBlock
	KindLoop
	KindFunctionCall
	KindBreak
	KindContinue
)

// LoopKind is the flavour of a loop statement. It never changes once a node is built.
type LoopKind int

const (
	LoopFor LoopKind = iota
	LoopForeach
	LoopForeachVar
)

// arityRule describes how many arguments a loop kind accepts.
// A negative max means "no upper bound".
type arityRule struct {
	min        int
	max        int
	allowEmpty bool
	expected   string
}

var loopArity = map[LoopKind]arityRule{
	LoopFor:        {min: 3, max: 4, allowEmpty: true, expected: "0 or 3 to 4"},
	LoopForeach:    {min: 2, max: -1, expected: "at least 2"},
	LoopForeachVar: {min: 2, max: 3, expected: "2 to 3"},
}

func (r arityRule) accepts(count int) bool {
	if count == 0 && r.allowEmpty {
		return true
	}

	if count < r.min {
		return false
	}

	return r.max < 0 || count <= r.max
}

// AcceptsArgumentCount reports whether a loop of this kind may hold 'count' arguments.
func (k LoopKind) AcceptsArgumentCount(count int) bool {
	rule, ok := loopArity[k]
	if !ok {
		return false
	}

	return rule.accepts(count)
}
