// Package lsp implements the LSP messages and handlers of the Ethereal language server.
package lsp

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/pacer/ethereal/internal/script"
	"github.com/pacer/ethereal/internal/script/parser"
)

// ProcessInitializeRequest handles the initialize request.
func ProcessInitializeRequest(
	data []byte,
	lspName, lspVersion string,
) (response []byte, root string, err error) {
	req := RequestMessage[InitializeParams]{}

	if err := json.Unmarshal(data, &req); err != nil {
		return nil, "", fmt.Errorf("error while unmarshalling data during 'initialize' phase: %w", err)
	}

	res := ResponseMessage[InitializeResult]{
		JsonRpc: JSONRPCVersion,
		Id:      req.Id,
		Result: InitializeResult{
			Capabilities: ServerCapabilities{
				TextDocumentSync:     TextDocumentSyncFull,
				FoldingRangeProvider: true,
			},
		},
	}

	res.Result.ServerInfo.Name = lspName
	res.Result.ServerInfo.Version = lspVersion

	response, err = json.Marshal(res)
	if err != nil {
		return nil, "", fmt.Errorf("error while marshalling data during 'initialize' phase: %w", err)
	}

	return response, req.Params.RootUri, nil
}

// ProcessInitializedNotification handles the initialized notification.
func ProcessInitializedNotification(data []byte) {
	slog.Info("received 'initialized' notification", slog.String("data", string(data)))
}

// ProcessShutdownRequest handles the shutdown request.
func ProcessShutdownRequest(requestId ID) []byte {
	return marshalResponse(ResponseMessage[any]{
		JsonRpc: JSONRPCVersion,
		Id:      requestId,
	})
}

// ProcessIllegalRequestAfterShutdown returns an error for requests after shutdown.
func ProcessIllegalRequestAfterShutdown(requestId ID) []byte {
	return marshalResponse(ResponseMessage[any]{
		JsonRpc: JSONRPCVersion,
		Id:      requestId,
		Error: &ResponseError{
			Code:    ErrorInvalidRequest,
			Message: "illegal request while server shutting down",
		},
	})
}

// ProcessUnknownRequest answers requests this server does not implement.
func ProcessUnknownRequest(requestId ID, method string) []byte {
	return marshalResponse(ResponseMessage[any]{
		JsonRpc: JSONRPCVersion,
		Id:      requestId,
		Error: &ResponseError{
			Code:    ErrorMethodNotFound,
			Message: "method not supported: " + method,
		},
	})
}

func marshalResponse(response ResponseMessage[any]) []byte {
	responseText, err := json.Marshal(response)
	if err != nil {
		// a ResponseMessage[any] without result always marshals
		panic("error while marshalling response: " + err.Error())
	}

	return responseText
}

type DidOpenTextDocumentParams struct {
	TextDocument TextDocumentItem `json:"textDocument"`
}

// ProcessDidOpenTextDocumentNotification returns the uri and content of the opened document.
func ProcessDidOpenTextDocumentNotification(data []byte) (fileURI string, fileContent []byte, err error) {
	var request RequestMessage[DidOpenTextDocumentParams]

	if err := json.Unmarshal(data, &request); err != nil {
		return "", nil, fmt.Errorf("error while unmarshalling 'textDocument/didOpen': %w", err)
	}

	document := request.Params.TextDocument

	return document.Uri, []byte(document.Text), nil
}

type TextDocumentContentChangeEvent struct {
	Range       *Range `json:"range,omitempty"`
	RangeLength uint   `json:"rangeLength,omitempty"`
	Text        string `json:"text"`
}

type DidChangeTextDocumentParams struct {
	TextDocument   TextDocumentItem                 `json:"textDocument"`
	ContentChanges []TextDocumentContentChangeEvent `json:"contentChanges"`
}

// ProcessDidChangeTextDocumentNotification returns the new content of a document.
// The server asks for full sync, so the last change holds the whole text.
// An empty uri is returned when the notification carries no change.
func ProcessDidChangeTextDocumentNotification(data []byte) (fileURI string, fileContent []byte, err error) {
	var request RequestMessage[DidChangeTextDocumentParams]

	if err := json.Unmarshal(data, &request); err != nil {
		return "", nil, fmt.Errorf("error while unmarshalling 'textDocument/didChange': %w", err)
	}

	changes := request.Params.ContentChanges
	if len(changes) == 0 {
		slog.Warn("'contentChanges' field is empty")
		return "", nil, nil
	}

	last := changes[len(changes)-1]
	if last.Range != nil {
		return "", nil, fmt.Errorf("incremental change received for %s, only full sync is supported", request.Params.TextDocument.Uri)
	}

	return request.Params.TextDocument.Uri, []byte(last.Text), nil
}

type DidCloseTextDocumentParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
}

// ProcessDidCloseTextDocumentNotification returns the uri of the closed document.
func ProcessDidCloseTextDocumentNotification(data []byte) (string, error) {
	var request RequestMessage[DidCloseTextDocumentParams]

	if err := json.Unmarshal(data, &request); err != nil {
		return "", fmt.Errorf("error while unmarshalling 'textDocument/didClose': %w", err)
	}

	return request.Params.TextDocument.Uri, nil
}

// DiagnosticsNotification builds the publishDiagnostics notification for 'uri'.
// An empty 'errs' clears the diagnostics shown by the editor.
func DiagnosticsNotification(uri string, errs []script.Error) ([]byte, error) {
	notification := NotificationMessage[PublishDiagnosticsParams]{
		JsonRpc: JSONRPCVersion,
		Method:  MethodPublishDiagnostics,
		Params: PublishDiagnosticsParams{
			Uri:         uri,
			Diagnostics: make([]Diagnostic, 0, len(errs)),
		},
	}

	for _, err := range errs {
		if err == nil {
			continue
		}

		notification.Params.Diagnostics = append(notification.Params.Diagnostics, Diagnostic{
			Message:  err.GetError(),
			Range:    ConvertParserRangeToLspRange(err.GetRange()),
			Severity: SeverityError,
			Source:   DiagnosticSource,
		})
	}

	data, err := json.Marshal(notification)
	if err != nil {
		return nil, fmt.Errorf("unable to marshal diagnostics for %s: %w", uri, err)
	}

	return data, nil
}

type FoldingRangeParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
}

type FoldingRangeResult struct {
	StartLine      uint             `json:"startLine"`
	StartCharacter uint             `json:"startCharacter"`
	EndLine        uint             `json:"endLine"`
	EndCharacter   uint             `json:"endCharacter"`
	Kind           FoldingRangeKind `json:"kind"`
}

type FoldingRangeKind string

const (
	FoldingRangeRegion FoldingRangeKind = "region"
)

// ProcessFoldingRangeRequest answers textDocument/foldingRange with one range per
// block spanning several lines. 'lookup' returns the parse tree of a document,
// or <nil> when the document is unknown.
func ProcessFoldingRangeRequest(
	data []byte,
	lookup func(uri string) *parser.ProgramNode,
) ([]byte, error) {
	var req RequestMessage[FoldingRangeParams]

	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("error unmarshalling folding range request: %w", err)
	}

	res := ResponseMessage[[]FoldingRangeResult]{
		JsonRpc: JSONRPCVersion,
		Id:      req.Id,
		Result:  FoldingRanges(lookup(req.Params.TextDocument.Uri)),
	}

	responseData, err := json.Marshal(res)
	if err != nil {
		return nil, fmt.Errorf("error marshalling folding range response: %w", err)
	}

	return responseData, nil
}

// FoldingRanges lists the blocks of 'root' that span several lines, outermost first.
// The closing '}' line stays visible once folded.
func FoldingRanges(root *parser.ProgramNode) []FoldingRangeResult {
	folds := []FoldingRangeResult{}
	if root == nil {
		return folds
	}

	parser.Walk(root, func(node parser.AstNode) bool {
		if node.Kind() != parser.KindBlock {
			return true
		}

		reach := ConvertParserRangeToLspRange(node.Range())
		if reach.Start.Line == reach.End.Line {
			return true
		}

		folds = append(folds, FoldingRangeResult{
			StartLine:      reach.Start.Line,
			StartCharacter: reach.Start.Character,
			EndLine:        reach.End.Line - 1,
			EndCharacter:   0,
			Kind:           FoldingRangeRegion,
		})

		return true
	})

	return folds
}
