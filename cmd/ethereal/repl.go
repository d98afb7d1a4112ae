package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/pacer/ethereal/internal/script"
	"github.com/pacer/ethereal/internal/script/lexer"
	"github.com/pacer/ethereal/internal/script/parser"
)

const (
	promptMain = "ethereal> "
	promptCont = "      ... "
)

// lineReader is the part of *liner.State used to read input.
type lineReader interface {
	Prompt(prompt string) (string, error)
}

func runRepl(historyPath string, out *printer, opts []parser.Option) int {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(historyPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	defer func() {
		f, err := os.Create(historyPath)
		if err != nil {
			slog.Warn("unable to save history", slog.String("file", historyPath), slog.String("error", err.Error()))
			return
		}
		_, _ = ln.WriteHistory(f)
		_ = f.Close()
	}()

	fmt.Fprintf(out.out, "%s %s -- type :quit to exit\n", programName, version)

	for {
		source, ok := readStatement(ln, promptMain, promptCont)
		if !ok {
			fmt.Fprintln(out.out)
			return 0
		}

		trimmed := strings.TrimSpace(source)
		if trimmed == "" {
			continue
		}

		if trimmed == ":quit" || trimmed == ":q" {
			return 0
		}

		result := parseSource("<stdin>", []byte(source), opts)
		if _, err := out.results([]script.FileParseResult{result}); err != nil {
			slog.Error("unable to print result", slog.String("error", err.Error()))
		}

		ln.AppendHistory(strings.ReplaceAll(source, "\n", " "))
	}
}

// readStatement reads lines until parentheses and braces balance.
// It returns false once the input is exhausted. An aborted prompt (Ctrl-C)
// discards what was typed so far.
func readStatement(ln lineReader, prompt, cont string) (string, bool) {
	var b strings.Builder

	for {
		current := prompt
		if b.Len() > 0 {
			current = cont
		}

		line, err := ln.Prompt(current)
		if errors.Is(err, io.EOF) {
			if b.Len() > 0 {
				return b.String(), true
			}
			return "", false
		}

		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}

		if err != nil {
			slog.Warn("unable to read input", slog.String("error", err.Error()))
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		if !needsMoreInput(b.String()) {
			return b.String(), true
		}
	}
}

// needsMoreInput reports whether 'source' opens more '(' or '{' than it closes.
func needsMoreInput(source string) bool {
	stream, _ := lexer.Tokenize([]byte(source))
	if stream.IsEmpty() {
		return false
	}

	depth := 0
	for _, token := range stream.Tokens {
		if token.ID != lexer.Separator {
			continue
		}

		switch token.Detail {
		case lexer.ParenOpen, lexer.BraceOpen:
			depth++
		case lexer.ParenClose, lexer.BraceClose:
			depth--
		}
	}

	return depth > 0
}
