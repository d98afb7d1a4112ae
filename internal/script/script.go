// Package script ties the lexer and the parser together for whole files and
// project directories.
package script

import (
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync"

	"github.com/pacer/ethereal/internal/script/lexer"
	"github.com/pacer/ethereal/internal/script/parser"
)

// FileExtension is the extension of script source files, without the dot.
const FileExtension = "et"

// MaxProjectFileDepth bounds how deep OpenProjectFiles descends into sub-directories.
const MaxProjectFileDepth = 5

type Error = lexer.Error

// FileParseResult pairs the parse tree of a file with its errors.
type FileParseResult struct {
	FileName string
	Root     *parser.ProgramNode
	Errs     []Error
}

// OpenProjectFiles recursively reads files from 'rootDir' whose extension is one of
// 'withFileExtensions'. There is a depth limit for the recursion (MaxProjectFileDepth).
// Only a failure to read 'rootDir' itself is returned; unreadable entries below it are logged and skipped.
func OpenProjectFiles(rootDir string, withFileExtensions []string) (map[string][]byte, error) {
	if _, err := os.ReadDir(rootDir); err != nil {
		return nil, fmt.Errorf("error while reading directory content: %w", err)
	}

	return openProjectFilesSafely(rootDir, withFileExtensions, 0, MaxProjectFileDepth), nil
}

func openProjectFilesSafely(
	rootDir string,
	withFileExtensions []string,
	currentDepth, maxDepth int,
) map[string][]byte {
	if currentDepth > maxDepth {
		return nil
	}

	list, err := os.ReadDir(rootDir)
	if err != nil {
		slog.Warn("unable to read directory", slog.String("dir", rootDir), slog.String("error", err.Error()))
		return nil
	}

	fileNamesToContent := make(map[string][]byte)

	for _, entry := range list {
		fileName := filepath.Join(rootDir, entry.Name())

		if entry.IsDir() {
			subFiles := openProjectFilesSafely(
				fileName,
				withFileExtensions,
				currentDepth+1,
				maxDepth,
			)

			maps.Copy(fileNamesToContent, subFiles)
			continue
		}

		if !HasFileExtension(fileName, withFileExtensions) {
			continue
		}

		fileContent, err := readFile(fileName)
		if err != nil {
			slog.Warn("unable to open file", slog.String("file", fileName), slog.String("error", err.Error()))
			continue
		}

		fileNamesToContent[fileName] = fileContent
	}

	return fileNamesToContent
}

func readFile(fileName string) ([]byte, error) {
	//nolint:gosec // fileName comes from a directory listing of the caller's root
	file, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return io.ReadAll(file)
}

// ParseSingleFile tokenizes and parses 'source'.
// Every lexer and parser error is handed to 'sink' (which may be <nil>), lexer
// errors first, and the same errors are returned sorted by position.
// A parser error sitting on a character the lexer rejected is dropped: the
// lexer error already describes it.
// Returned parse tree is never <nil>, even when empty.
func ParseSingleFile(
	source []byte,
	sink parser.DiagnosticSink,
	opts ...parser.Option,
) (*parser.ProgramNode, []Error) {
	streamsOfToken, tokenErrs := lexer.Tokenize(source)

	for _, err := range tokenErrs {
		parser.ReportError(sink, err)
	}

	// the parser reports through 'sink' only after duplicates are dropped
	opts = slices.Concat(opts, []parser.Option{parser.WithSink(nil)})

	parseTree, parseErrs := parser.Parse(streamsOfToken, opts...)
	if parseTree == nil {
		panic("root parse tree should never be <nil>, even when empty. source = " + string(source))
	}

	errs := make([]Error, 0, len(tokenErrs)+len(parseErrs))
	errs = append(errs, tokenErrs...)

	for _, err := range parseErrs {
		if isOnRejectedCharacter(err) {
			continue
		}

		parser.ReportError(sink, err)
		errs = append(errs, err)
	}

	sortErrors(errs)

	return parseTree, errs
}

func isOnRejectedCharacter(err Error) bool {
	parseErr, ok := err.(*parser.ParseError)
	return ok && parseErr.Token != nil && parseErr.Token.ID == lexer.NotFound
}

// ParseFilesInWorkspace parses every file of 'workspaceFiles' using parallel goroutines.
// Results are sorted by file name. Sinks are not shared between goroutines:
// callers print diagnostics from the returned errors.
func ParseFilesInWorkspace(workspaceFiles map[string][]byte, opts ...parser.Option) []FileParseResult {
	if len(workspaceFiles) == 0 {
		return nil
	}

	numWorkers := min(runtime.GOMAXPROCS(0), len(workspaceFiles))

	results := make(chan FileParseResult, len(workspaceFiles))

	// Use a semaphore to limit concurrency
	sem := make(chan struct{}, numWorkers)

	var wg sync.WaitGroup
	for fileName, content := range workspaceFiles {
		wg.Add(1)
		go func(fileName string, content []byte) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			root, errs := ParseSingleFile(content, nil, opts...)
			results <- FileParseResult{FileName: fileName, Root: root, Errs: errs}
		}(fileName, content)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	parsed := make([]FileParseResult, 0, len(workspaceFiles))
	for result := range results {
		parsed = append(parsed, result)
	}

	if len(parsed) != len(workspaceFiles) {
		panic("number of parsed files do not match the amount present in the workspace")
	}

	slices.SortFunc(parsed, func(a, b FileParseResult) int {
		return strings.Compare(a.FileName, b.FileName)
	})

	return parsed
}

func sortErrors(errs []Error) {
	slices.SortStableFunc(errs, func(a, b Error) int {
		x, y := a.GetRange().Start, b.GetRange().Start
		if x.Line != y.Line {
			return x.Line - y.Line
		}
		return x.Character - y.Character
	})
}

// HasFileExtension reports whether 'fileName' ends with one of 'extensions' (given without the dot).
func HasFileExtension(fileName string, extensions []string) bool {
	for _, ext := range extensions {
		if strings.HasSuffix(fileName, "."+ext) {
			return true
		}
	}

	return false
}

// Dump writes the tree view of 'node' to 'w'.
func Dump(w io.Writer, node parser.AstNode) error {
	return parser.Dump(w, node)
}

// Print outputs AST nodes as JSON to stdout (use jq for pretty formatting).
func Print(node ...parser.AstNode) {
	str := parser.PrettyAstNodeFormater(node)
	fmt.Println(str)
}
