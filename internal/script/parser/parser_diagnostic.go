package parser

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pacer/ethereal/internal/script/lexer"
)

// DiagnosticSink receives every syntax error the parser finds.
// Line and column are 1-based. Presentation is left to the sink.
type DiagnosticSink interface {
	Report(message string, line, column int)
}

// DiagnosticSinkFunc adapts a plain function to DiagnosticSink.
type DiagnosticSinkFunc func(message string, line, column int)

func (f DiagnosticSinkFunc) Report(message string, line, column int) {
	f(message, line, column)
}

type Diagnostic struct {
	Message string
	Line    int
	Column  int
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%d:%d: %s", d.Line, d.Column, d.Message)
}

// DiagnosticList is a sink that keeps every report in order.
type DiagnosticList struct {
	Diagnostics []Diagnostic
}

func (l *DiagnosticList) Report(message string, line, column int) {
	l.Diagnostics = append(l.Diagnostics, Diagnostic{
		Message: message,
		Line:    line,
		Column:  column,
	})
}

func (l *DiagnosticList) Len() int {
	return len(l.Diagnostics)
}

// logSink forwards diagnostics to a structured logger.
type logSink struct {
	logger *slog.Logger
	level  slog.Level
}

// NewLogSink returns a sink writing one 'syntax error' record per diagnostic
// at 'level'. A <nil> logger means slog.Default().
func NewLogSink(logger *slog.Logger, level slog.Level) DiagnosticSink {
	if logger == nil {
		logger = slog.Default()
	}

	return logSink{logger: logger, level: level}
}

func (s logSink) Report(message string, line, column int) {
	s.logger.LogAttrs(context.Background(), s.level, "syntax error",
		slog.String("message", message),
		slog.Int("line", line),
		slog.Int("column", column),
	)
}

type discardSink struct{}

func (discardSink) Report(string, int, int) {}

// ReportError hands any lexer or parser error to 'sink'.
func ReportError(sink DiagnosticSink, err lexer.Error) {
	if sink == nil || err == nil {
		return
	}

	rng := err.GetRange()
	sink.Report(err.GetError(), rng.Start.Line+1, rng.Start.Character+1)
}
