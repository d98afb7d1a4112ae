package parser

import (
	"fmt"
	"strings"

	"github.com/pacer/ethereal/internal/script/lexer"
)

func (e ParseError) String() string {
	to := "\"\""
	err := "\"\""

	if e.Err != nil {
		err = e.Err.Error()
		err = strings.ReplaceAll(err, "\"", "'")
	}
	if e.Token != nil {
		to = fmt.Sprint(*e.Token)
	}

	return fmt.Sprintf(`{"Err": "%s", "Range": %s, "Token": %s}`, err, e.Range, to)
}

func (p ProgramNode) String() string {
	str := PrettyAstNodeFormater(p.Statements)

	return fmt.Sprintf(`{"Kind": %s, "Range": %s, "Statements": %s}`, p.kind, p.rng, str)
}

func (b BlockStatementNode) String() string {
	str := PrettyAstNodeFormater(b.Statements)

	return fmt.Sprintf(`{"Kind": %s, "Range": %s, "Statements": %s}`, b.kind, b.rng, str)
}

func (l LoopStatementNode) String() string {
	block := "null"
	if l.block != nil {
		block = l.block.String()
	}

	args := make([]string, 0, len(l.args))
	for _, arg := range l.args {
		args = append(args, fmt.Sprintf("%q", arg))
	}

	return fmt.Sprintf(
		`{"Kind": %s, "Range": %s, "Loop": "%s", "Args": [%s], "Block": %s}`,
		l.kind,
		l.rng,
		l.loopKind,
		strings.Join(args, ", "),
		block,
	)
}

func (f FunctionCallNode) String() string {
	name := `""`
	if f.Name != nil {
		name = fmt.Sprintf("%q", f.Name.Value)
	}

	return fmt.Sprintf(
		`{"Kind": %s, "Range": %s, "Name": %s, "Args": %s}`,
		f.kind,
		f.rng,
		name,
		lexer.PrettyFormatter(f.Args),
	)
}

func (s SpecialCommandNode) String() string {
	return fmt.Sprintf(
		`{"Kind": %s, "Range": %s, "Value": %s}`,
		s.kind,
		s.rng,
		s.Value,
	)
}

func PrettyAstNodeFormater(nodes []AstNode) string {
	if len(nodes) == 0 {
		return "[]"
	}

	var sb strings.Builder
	for _, node := range nodes {
		fmt.Fprintf(&sb, "%s, ", node)
	}
	str := sb.String()

	return "[" + str[:len(str)-2] + "]"
}

func Print(nodes ...AstNode) {
	str := PrettyAstNodeFormater(nodes)
	fmt.Println(str)
}

func (k Kind) String() string {
	val := "NOT FOUND!!!!!!!"

	switch k {
	case KindProgram:
		val = "KindProgram"
	case KindBlock:
		val = "KindBlock"
	case KindLoop:
		val = "KindLoop"
	case KindFunctionCall:
		val = "KindFunctionCall"
	case KindBreak:
		val = "KindBreak"
	case KindContinue:
		val = "KindContinue"
	}

	return fmt.Sprintf(`"%s"`, val)
}

func (k LoopKind) String() string {
	switch k {
	case LoopFor:
		return lexer.KeywordFor
	case LoopForeach:
		return lexer.KeywordForeach
	case LoopForeachVar:
		return lexer.KeywordForeachVar
	}

	return fmt.Sprintf("LoopKind(%d)", int(k))
}
