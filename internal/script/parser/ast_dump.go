package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/pacer/ethereal/internal/script/lexer"
)

const (
	branchNext = "├─ "
	branchLast = "└─ "
	indentNext = "│  "
	indentLast = "   "
)

// treeItem prints itself given the prefix of its own line ('first') and the
// prefix its children must start from ('rest').
type treeItem func(first, rest string)

type treeDumper struct {
	w   io.Writer
	err error
}

// Dump writes an indented tree view of 'node' to 'w'.
// The output only depends on the node, so dumping twice gives the same text.
func Dump(w io.Writer, node AstNode) error {
	d := &treeDumper{w: w}
	d.node(node)("", "")

	return d.err
}

// DumpString is Dump into a string.
func DumpString(node AstNode) string {
	var sb strings.Builder
	_ = Dump(&sb, node)

	return sb.String()
}

func (d *treeDumper) printf(format string, args ...any) {
	if d.err != nil {
		return
	}

	_, d.err = fmt.Fprintf(d.w, format, args...)
}

func (d *treeDumper) children(rest string, items []treeItem) {
	for i, item := range items {
		if i == len(items)-1 {
			item(rest+branchLast, rest+indentLast)
		} else {
			item(rest+branchNext, rest+indentNext)
		}
	}
}

func (d *treeDumper) leaf(text string) treeItem {
	return func(first, _ string) {
		d.printf("%s%s\n", first, text)
	}
}

// list prints 'label:' followed by one child per entry, or 'label: <none>'.
func (d *treeDumper) list(label string, entries []string) treeItem {
	return func(first, rest string) {
		if len(entries) == 0 {
			d.printf("%s%s: <none>\n", first, label)
			return
		}

		d.printf("%s%s:\n", first, label)

		items := make([]treeItem, 0, len(entries))
		for _, entry := range entries {
			items = append(items, d.leaf(entry))
		}
		d.children(rest, items)
	}
}

func (d *treeDumper) statements(header string, statements []AstNode) treeItem {
	return func(first, rest string) {
		d.printf("%s%s\n", first, header)

		items := make([]treeItem, 0, len(statements))
		for _, statement := range statements {
			items = append(items, d.node(statement))
		}
		d.children(rest, items)
	}
}

func (d *treeDumper) node(node AstNode) treeItem {
	switch n := node.(type) {
	case nil:
		return d.leaf("<nil>")

	case *ProgramNode:
		return d.statements("Program:", n.Statements)

	case *BlockStatementNode:
		if len(n.Statements) == 0 {
			return d.leaf("Block: <empty>")
		}
		return d.statements("Block:", n.Statements)

	case *LoopStatementNode:
		return func(first, rest string) {
			d.printf("%sLoop:\n", first)

			args := make([]string, 0, len(n.args))
			for _, arg := range n.args {
				args = append(args, `"`+arg+`"`)
			}

			body := d.leaf("block: <none>")
			if n.block != nil {
				body = func(first, rest string) {
					d.printf("%sblock:\n", first)
					d.children(rest, []treeItem{d.node(n.block)})
				}
			}

			d.children(rest, []treeItem{
				d.leaf("type: " + n.loopKind.String()),
				d.list("args", args),
				body,
			})
		}

	case *FunctionCallNode:
		return func(first, rest string) {
			d.printf("%sCall: %s\n", first, n.Name.Value)

			args := make([]string, 0, len(n.Args))
			for _, arg := range n.Args {
				if arg.ID == lexer.StringLit {
					args = append(args, `"`+arg.Text()+`"`)
				} else {
					args = append(args, arg.Text())
				}
			}

			d.children(rest, []treeItem{d.list("args", args)})
		}

	case *SpecialCommandNode:
		return d.leaf(n.Value.Text())
	}

	return d.leaf(fmt.Sprintf("<unknown node %s>", node.Kind()))
}
