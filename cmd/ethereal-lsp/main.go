// Command ethereal-lsp is a Language Server Protocol server reporting the
// syntax errors of Ethereal scripts and folding their blocks.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/pacer/ethereal/cmd/ethereal-lsp/lsp"
	"github.com/pacer/ethereal/internal/script"
	"github.com/pacer/ethereal/internal/script/lexer"
	"github.com/pacer/ethereal/internal/script/parser"
)

// version is set by goreleaser at build time.
var version = "dev"

const (
	serverName = "Ethereal LSP"
	appName    = "ethereal-lsp"
)

// requestCounter tracks the number of each request type.
type requestCounter struct {
	Initialize   int
	Initialized  int
	Shutdown     int
	TextDocument struct {
		DidClose  int
		DidOpen   int
		DidChange int
	}
	FoldingRange int
	Other        int
}

// server holds the documents opened by the editor.
// Requests are handled on the reading goroutine, diagnostics on a second one.
type server struct {
	out  *lsp.Sender
	opts []parser.Option

	mu        sync.Mutex
	rootURI   string
	documents map[string][]byte
	pending   map[string][]byte
	closed    []string

	changed chan struct{}

	counter    requestCounter
	isExiting  bool
	exitStatus int
}

func newServer(output io.Writer, opts ...parser.Option) *server {
	return &server{
		out:        lsp.NewSender(output),
		opts:       opts,
		documents:  make(map[string][]byte),
		pending:    make(map[string][]byte),
		changed:    make(chan struct{}, 1),
		exitStatus: 1,
	}
}

func main() {
	versionFlag := flag.Bool("version", false, "print the LSP version")
	maxDepth := flag.Int("max-depth", parser.DefaultMaxDepth, "maximum block nesting depth")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("%s -- version %s\n", serverName, version)
		os.Exit(0)
	}

	configureLogging()

	s := newServer(os.Stdout, parser.WithMaxDepth(*maxDepth))

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.runDiagnostics()
	}()

	slog.Info("starting lsp server",
		slog.String("server_name", serverName),
		slog.String("server_version", version),
	)

	err := s.serve(os.Stdin)

	close(s.changed)
	<-done

	slog.Info("shutting down lsp server", slog.Any("request_counter", s.counter))

	if err != nil {
		slog.Error("error while reading from the client", slog.String("error", err.Error()))
		os.Exit(1)
	}

	os.Exit(s.exitStatus)
}

// serve handles messages from 'input' until 'exit' or the end of the input.
func (s *server) serve(input io.Reader) error {
	scanner := lsp.ReceiveInput(input)

	for scanner.Scan() {
		if s.handle(scanner.Bytes()) {
			return nil
		}
	}

	return scanner.Err()
}

// handle processes one message and reports whether the server must exit.
func (s *server) handle(data []byte) bool {
	var request lsp.RequestMessage[json.RawMessage]
	if err := json.Unmarshal(data, &request); err != nil {
		slog.Warn("unable to decode message", slog.String("error", err.Error()))
		return false
	}

	if s.isExiting {
		if request.Method == lsp.MethodExit {
			s.exitStatus = 0
			return true
		}

		s.send(lsp.ProcessIllegalRequestAfterShutdown(request.Id))
		return false
	}

	slog.Debug("request "+request.Method, slog.Int("id", int(request.Id)))

	switch request.Method {
	case lsp.MethodInitialize:
		s.counter.Initialize++
		response, rootURI, err := lsp.ProcessInitializeRequest(data, serverName, version)
		if err != nil {
			slog.Error(err.Error())
			return false
		}

		s.mu.Lock()
		s.rootURI = rootURI
		s.mu.Unlock()

		slog.Info("workspace opened", slog.String("root_uri", rootURI))

		s.send(response)

	case lsp.MethodInitialized:
		s.counter.Initialized++
		lsp.ProcessInitializedNotification(data)

	case lsp.MethodShutdown:
		s.counter.Shutdown++
		s.isExiting = true
		s.send(lsp.ProcessShutdownRequest(request.Id))

	case lsp.MethodExit:
		// exit without shutdown
		return true

	case lsp.MethodDidOpen:
		s.counter.TextDocument.DidOpen++
		uri, content, err := lsp.ProcessDidOpenTextDocumentNotification(data)
		s.updateDocument(uri, content, err)

	case lsp.MethodDidChange:
		s.counter.TextDocument.DidChange++
		uri, content, err := lsp.ProcessDidChangeTextDocumentNotification(data)
		s.updateDocument(uri, content, err)

	case lsp.MethodDidClose:
		s.counter.TextDocument.DidClose++
		uri, err := lsp.ProcessDidCloseTextDocumentNotification(data)
		if err != nil {
			slog.Warn(err.Error())
			return false
		}
		s.closeDocument(uri)

	case lsp.MethodFoldingRange:
		s.counter.FoldingRange++
		response, err := lsp.ProcessFoldingRangeRequest(data, s.parseDocument)
		if err != nil {
			slog.Warn(err.Error())
			return false
		}
		s.send(response)

	default:
		s.counter.Other++
		// notifications carry no id and get no answer
		if hasID(data) {
			s.send(lsp.ProcessUnknownRequest(request.Id, request.Method))
		}
	}

	return false
}

func (s *server) send(response []byte) {
	if err := s.out.Send(response); err != nil {
		slog.Error(err.Error())
	}
}

func (s *server) updateDocument(uri string, content []byte, err error) {
	if err != nil {
		slog.Warn(err.Error())
		return
	}

	if uri == "" {
		return
	}

	if !script.HasFileExtension(uri, []string{script.FileExtension}) {
		slog.Warn("skipped file", slog.String("file_uri", uri))
		return
	}

	s.mu.Lock()
	s.documents[uri] = content
	s.pending[uri] = content
	s.closed = slices.DeleteFunc(s.closed, func(closed string) bool { return closed == uri })
	s.mu.Unlock()

	s.notifyChange()
}

func (s *server) closeDocument(uri string) {
	s.mu.Lock()
	_, known := s.documents[uri]
	delete(s.documents, uri)
	delete(s.pending, uri)
	if known {
		s.closed = append(s.closed, uri)
	}
	s.mu.Unlock()

	if known {
		s.notifyChange()
	}
}

// notifyChange wakes the diagnostics goroutine. Changes arriving while it is
// busy are merged into its next round.
func (s *server) notifyChange() {
	select {
	case s.changed <- struct{}{}:
	default:
	}
}

// parseDocument returns the parse tree of an open document, or <nil>.
func (s *server) parseDocument(uri string) *parser.ProgramNode {
	s.mu.Lock()
	content, ok := s.documents[uri]
	s.mu.Unlock()

	if !ok {
		slog.Warn("file not found on server", slog.String("file_uri", uri))
		return nil
	}

	root, _ := script.ParseSingleFile(content, nil, s.opts...)
	return root
}

func (s *server) runDiagnostics() {
	for range s.changed {
		s.publishPending()
	}
}

// publishPending sends fresh diagnostics for every changed document, and
// empty ones for closed documents.
func (s *server) publishPending() {
	s.mu.Lock()
	pending := s.pending
	closed := s.closed
	s.pending = make(map[string][]byte)
	s.closed = nil
	s.mu.Unlock()

	uris := make([]string, 0, len(pending))
	for uri := range pending {
		uris = append(uris, uri)
	}
	slices.Sort(uris)

	for _, uri := range uris {
		sink := parser.NewLogSink(slog.Default().With(slog.String("file_uri", uri)), slog.LevelDebug)
		_, errs := script.ParseSingleFile(pending[uri], sink, s.opts...)
		s.publish(uri, errs)
	}

	for _, uri := range closed {
		s.publish(uri, nil)
	}
}

func (s *server) publish(uri string, errs []lexer.Error) {
	notification, err := lsp.DiagnosticsNotification(uri, errs)
	if err != nil {
		slog.Error(err.Error())
		return
	}

	slog.Info("publishing diagnostics", slog.String("file_uri", uri), slog.Int("count", len(errs)))
	s.send(notification)
}

func hasID(data []byte) bool {
	var probe struct {
		Id *json.RawMessage `json:"id"`
	}

	return json.Unmarshal(data, &probe) == nil && probe.Id != nil
}

// createLogFile creates or opens the log file.
func createLogFile() *os.File {
	userCachePath, err := os.UserCacheDir()
	if err != nil {
		return os.Stderr
	}

	appCachePath := filepath.Join(userCachePath, appName)
	logFilePath := filepath.Join(appCachePath, appName+".log")

	_ = os.Mkdir(appCachePath, lsp.DirPermissions)

	flags := os.O_APPEND | os.O_CREATE | os.O_WRONLY

	fileInfo, err := os.Stat(logFilePath)
	if err == nil && fileInfo.Size() >= lsp.MaxLogFileSize {
		flags = os.O_TRUNC | os.O_WRONLY
	}

	//nolint:gosec // safe log file path
	file, err := os.OpenFile(logFilePath, flags, lsp.FilePermissions)
	if err != nil {
		return os.Stderr
	}

	return file
}

// configureLogging sets up structured logging. Stdout carries the protocol,
// so logs never go there.
func configureLogging() {
	logger := slog.New(slog.NewJSONHandler(createLogFile(), nil))
	slog.SetDefault(logger)
}
