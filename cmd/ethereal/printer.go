package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pacer/ethereal/internal/script"
	"github.com/pacer/ethereal/internal/script/parser"
)

const (
	colorRed   = "\x1b[31;1m"
	colorBold  = "\x1b[1m"
	colorReset = "\x1b[0m"
)

// printer writes parse trees to 'out' and diagnostics to 'errOut'.
type printer struct {
	out    io.Writer
	errOut io.Writer
	color  bool
	json   bool
	quiet  bool
}

func newPrinter(out, errOut io.Writer, noColor, json, quiet bool) *printer {
	return &printer{
		out:    out,
		errOut: errOut,
		color:  !noColor && writesToTerminal(errOut),
		json:   json,
		quiet:  quiet,
	}
}

func writesToTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isTerminal(file.Fd())
}

// diagnostics prints one 'file:line:col: error: message' line per error.
func (p *printer) diagnostics(fileName string, errs []script.Error) {
	for _, err := range errs {
		rng := err.GetRange()
		location := fmt.Sprintf("%s:%d:%d:", fileName, rng.Start.Line+1, rng.Start.Character+1)
		label := "error:"

		if p.color {
			location = colorBold + location + colorReset
			label = colorRed + label + colorReset
		}

		fmt.Fprintf(p.errOut, "%s %s %s\n", location, label, err.GetError())
	}
}

func (p *printer) tree(fileName string, root *parser.ProgramNode, withHeader bool) error {
	if p.quiet {
		return nil
	}

	if withHeader {
		if _, err := fmt.Fprintf(p.out, "== %s ==\n", fileName); err != nil {
			return err
		}
	}

	if p.json {
		_, err := fmt.Fprintln(p.out, root.String())
		return err
	}

	return script.Dump(p.out, root)
}

// results prints every parsed file and reports whether any of them had errors.
func (p *printer) results(results []script.FileParseResult) (bool, error) {
	failed := false

	for _, result := range results {
		p.diagnostics(result.FileName, result.Errs)

		if len(result.Errs) > 0 {
			failed = true
		}

		if err := p.tree(result.FileName, result.Root, len(results) > 1); err != nil {
			return failed, err
		}
	}

	return failed, nil
}
