package lsp

// LSP protocol constants.
const (
	// JSONRPCVersion is the JSON-RPC protocol version.
	JSONRPCVersion = "2.0"

	// SeverityError indicates an error diagnostic per LSP spec.
	SeverityError   = 1
	SeverityWarning = 2
	SeverityInfo    = 3
	SeverityHint    = 4

	// TextDocumentSyncFull indicates full document sync mode.
	TextDocumentSyncFull = 1

	// ErrorInvalidRequest is the JSON-RPC error code for invalid requests.
	ErrorInvalidRequest = -32600

	// ErrorMethodNotFound is the JSON-RPC error code for unsupported requests.
	ErrorMethodNotFound = -32601

	// DiagnosticSource names this server in diagnostics shown by editors.
	DiagnosticSource = "ethereal"
)

// LSP method names.
const (
	MethodInitialize         = "initialize"
	MethodInitialized        = "initialized"
	MethodShutdown           = "shutdown"
	MethodExit               = "exit"
	MethodDidOpen            = "textDocument/didOpen"
	MethodDidChange          = "textDocument/didChange"
	MethodDidClose           = "textDocument/didClose"
	MethodFoldingRange       = "textDocument/foldingRange"
	MethodPublishDiagnostics = "textDocument/publishDiagnostics"
)

// LSP header constants.
const (
	ContentLengthHeader = "Content-Length"
	HeaderDelimiter     = "\r\n\r\n"
	LineDelimiter       = "\r\n"
)

// File and logging constants.
const (
	DirPermissions  = 0750
	FilePermissions = 0600
	MaxLogFileSize  = 5_000_000 // 5MB
)
