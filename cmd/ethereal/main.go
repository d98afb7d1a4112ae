// Command ethereal parses Ethereal scripts, prints their loop structure and
// reports syntax errors.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/pacer/ethereal/internal/script"
	"github.com/pacer/ethereal/internal/script/parser"
)

// version is overridden with -ldflags "-X main.version=..." at release.
var version = "dev"

const programName = "ethereal"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run is main without the process exit: 0 when every file parsed cleanly,
// 1 when a syntax error was found or a file could not be read, 2 on bad usage.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg := loadConfig()

	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: %s [flags] [file.%s | dir]...\n", programName, script.FileExtension)
		fs.PrintDefaults()
	}

	versionFlag := fs.Bool("version", false, "print the version")
	jsonFlag := fs.Bool("json", false, "print parse trees as JSON instead of a tree view")
	quietFlag := fs.Bool("quiet", false, "only print diagnostics")
	watchFlag := fs.Bool("watch", false, "parse again whenever a file changes")
	replFlag := fs.Bool("repl", false, "start an interactive prompt")
	maxDepthFlag := fs.Int("max-depth", cfg.MaxDepth, "maximum block nesting depth")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if *versionFlag {
		fmt.Fprintf(stdout, "%s -- version %s\n", programName, version)
		return 0
	}

	configureLogging(stderr, cfg.LogLevel)

	if *maxDepthFlag > 0 {
		cfg.MaxDepth = *maxDepthFlag
	}

	opts := []parser.Option{parser.WithMaxDepth(cfg.MaxDepth)}
	out := newPrinter(stdout, stderr, cfg.NoColor, *jsonFlag, *quietFlag)

	if *replFlag {
		return runRepl(cfg.HistoryPath, out, opts)
	}

	paths := fs.Args()
	if len(paths) == 0 {
		if *watchFlag {
			fmt.Fprintln(stderr, "-watch needs at least one file or directory")
			return 2
		}

		return parseStdin(stdin, out, opts)
	}

	status := parsePaths(paths, out, opts)

	if !*watchFlag {
		return status
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := watchPaths(ctx, paths, cfg.WatchDebounce, func() {
		parsePaths(paths, out, opts)
	})
	if err != nil {
		slog.Error("watch stopped", slog.String("error", err.Error()))
		return 1
	}

	return 0
}

// parsePaths parses every file argument, and every script file found under
// directory arguments.
func parsePaths(paths []string, out *printer, opts []parser.Option) int {
	files, err := collectFiles(paths)
	if err != nil {
		fmt.Fprintf(out.errOut, "%s: %s\n", programName, err)
		return 1
	}

	slog.Debug("parsing files", slog.Int("count", len(files)))

	failed, err := out.results(script.ParseFilesInWorkspace(files, opts...))
	if err != nil {
		slog.Error("unable to print results", slog.String("error", err.Error()))
		return 1
	}

	if failed {
		return 1
	}

	return 0
}

func parseStdin(stdin io.Reader, out *printer, opts []parser.Option) int {
	source, err := io.ReadAll(stdin)
	if err != nil {
		fmt.Fprintf(out.errOut, "%s: %s\n", programName, err)
		return 1
	}

	failed, err := out.results([]script.FileParseResult{parseSource("<stdin>", source, opts)})
	if err != nil || failed {
		return 1
	}

	return 0
}

func parseSource(fileName string, source []byte, opts []parser.Option) script.FileParseResult {
	sink := parser.NewLogSink(slog.Default().With(slog.String("file", fileName)), slog.LevelDebug)
	root, errs := script.ParseSingleFile(source, sink, opts...)

	return script.FileParseResult{FileName: fileName, Root: root, Errs: errs}
}

// collectFiles reads the file arguments and the script files under directory arguments.
func collectFiles(paths []string) (map[string][]byte, error) {
	files := make(map[string][]byte)

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}

		if info.IsDir() {
			found, err := script.OpenProjectFiles(path, []string{script.FileExtension})
			if err != nil {
				return nil, err
			}

			for name, content := range found {
				files[name] = content
			}
			continue
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}

		files[path] = content
	}

	return files, nil
}

// configureLogging sets up structured logging on 'w'.
func configureLogging(w io.Writer, level slog.Level) {
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}
