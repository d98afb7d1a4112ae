package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/pacer/ethereal/cmd/ethereal-lsp/lsp"
)

// readMessages decodes every framed message written by the server.
func readMessages(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var messages []map[string]any

	scanner := lsp.ReceiveInput(buf)
	for scanner.Scan() {
		var message map[string]any
		if err := json.Unmarshal(scanner.Bytes(), &message); err != nil {
			t.Fatalf("Invalid message %q: %s", scanner.Text(), err)
		}
		messages = append(messages, message)
	}

	if err := scanner.Err(); err != nil {
		t.Fatalf("Unexpected error: %s", err)
	}

	return messages
}

func didOpen(uri, text string) []byte {
	data, _ := json.Marshal(map[string]any{
		"jsonrpc": "2.0",
		"method":  lsp.MethodDidOpen,
		"params": map[string]any{
			"textDocument": map[string]any{"uri": uri, "languageId": "ethereal", "version": 1, "text": text},
		},
	})
	return data
}

func diagnosticsOf(t *testing.T, message map[string]any) []any {
	t.Helper()

	if message["method"] != lsp.MethodPublishDiagnostics {
		t.Fatalf("Expected a diagnostics notification, got %v", message)
	}

	params := message["params"].(map[string]any)
	return params["diagnostics"].([]any)
}

func TestServer_Lifecycle(t *testing.T) {
	var out bytes.Buffer
	s := newServer(&out)

	input := string(lsp.Encode([]byte(`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"rootUri":"file:///work"}}`))) +
		string(lsp.Encode([]byte(`{"jsonrpc":"2.0","method":"initialized","params":{}}`))) +
		string(lsp.Encode([]byte(`{"jsonrpc":"2.0","id":2,"method":"shutdown"}`))) +
		string(lsp.Encode([]byte(`{"jsonrpc":"2.0","id":3,"method":"textDocument/foldingRange","params":{}}`))) +
		string(lsp.Encode([]byte(`{"jsonrpc":"2.0","method":"exit"}`))) +
		string(lsp.Encode([]byte(`{"jsonrpc":"2.0","id":4,"method":"never read"}`)))

	if err := s.serve(strings.NewReader(input)); err != nil {
		t.Fatalf("Unexpected error: %s", err)
	}

	if s.exitStatus != 0 {
		t.Errorf("Expected exit status 0 after shutdown, got %d", s.exitStatus)
	}

	messages := readMessages(t, &out)
	if len(messages) != 3 {
		t.Fatalf("Expected 3 responses, got %d: %v", len(messages), messages)
	}

	if messages[0]["id"] != float64(1) || messages[0]["result"] == nil {
		t.Errorf("Unexpected initialize response %v", messages[0])
	}

	if messages[1]["id"] != float64(2) || messages[1]["result"] != nil {
		t.Errorf("Unexpected shutdown response %v", messages[1])
	}

	if messages[2]["error"] == nil {
		t.Errorf("Expected requests after shutdown to be rejected, got %v", messages[2])
	}

	if s.counter.Initialize != 1 || s.counter.Initialized != 1 || s.counter.Shutdown != 1 {
		t.Errorf("Unexpected request counter %+v", s.counter)
	}
}

func TestServer_ExitWithoutShutdown(t *testing.T) {
	s := newServer(&bytes.Buffer{})

	if !s.handle([]byte(`{"jsonrpc":"2.0","method":"exit"}`)) {
		t.Fatal("Expected exit to stop the server")
	}

	if s.exitStatus != 1 {
		t.Errorf("Expected exit status 1 without shutdown, got %d", s.exitStatus)
	}
}

func TestServer_PublishesDiagnostics(t *testing.T) {
	var out bytes.Buffer
	s := newServer(&out)

	s.handle(didOpen("file:///work/bad.et", "foreach_var(\"a\")"))
	s.handle(didOpen("file:///work/good.et", "for() {}"))
	s.handle(didOpen("file:///work/notes.txt", "for("))

	s.publishPending()

	messages := readMessages(t, &out)
	if len(messages) != 2 {
		t.Fatalf("Expected 2 notifications, got %d: %v", len(messages), messages)
	}

	bad := diagnosticsOf(t, messages[0])
	if len(bad) != 1 {
		t.Fatalf("Expected 1 diagnostic for bad.et, got %v", bad)
	}

	message := bad[0].(map[string]any)["message"].(string)
	if !strings.Contains(message, "expected 2 to 3 arguments in loop 'foreach_var'") {
		t.Errorf("Unexpected diagnostic message %q", message)
	}

	if good := diagnosticsOf(t, messages[1]); len(good) != 0 {
		t.Errorf("Expected no diagnostics for good.et, got %v", good)
	}
}

func TestServer_ChangeAndClose(t *testing.T) {
	var out bytes.Buffer
	s := newServer(&out)

	uri := "file:///work/a.et"
	s.handle(didOpen(uri, "break"))
	s.publishPending()

	change, _ := json.Marshal(map[string]any{
		"jsonrpc": "2.0",
		"method":  lsp.MethodDidChange,
		"params": map[string]any{
			"textDocument":   map[string]any{"uri": uri, "version": 2},
			"contentChanges": []any{map[string]any{"text": "for() { break }"}},
		},
	})
	s.handle(change)
	s.publishPending()

	s.handle([]byte(`{"jsonrpc":"2.0","method":"textDocument/didClose","params":{"textDocument":{"uri":"file:///work/a.et"}}}`))
	s.publishPending()

	messages := readMessages(t, &out)
	if len(messages) != 3 {
		t.Fatalf("Expected 3 notifications, got %d", len(messages))
	}

	counts := []int{1, 0, 0}
	for i, want := range counts {
		if got := len(diagnosticsOf(t, messages[i])); got != want {
			t.Errorf("Notification %d: expected %d diagnostics, got %d", i, want, got)
		}
	}

	if _, ok := s.documents[uri]; ok {
		t.Error("Expected the document to be dropped on close")
	}
}

func TestServer_FoldingRange(t *testing.T) {
	var out bytes.Buffer
	s := newServer(&out)

	s.handle(didOpen("file:///work/a.et", "for() {\n\tbreak\n}\n"))
	s.handle([]byte(`{"jsonrpc":"2.0","id":5,"method":"textDocument/foldingRange","params":{"textDocument":{"uri":"file:///work/a.et"}}}`))

	messages := readMessages(t, &out)
	if len(messages) != 1 {
		t.Fatalf("Expected 1 response, got %d", len(messages))
	}

	folds := messages[0]["result"].([]any)
	if len(folds) != 1 {
		t.Fatalf("Expected 1 fold, got %v", folds)
	}

	fold := folds[0].(map[string]any)
	if fold["startLine"] != float64(0) || fold["endLine"] != float64(1) {
		t.Errorf("Unexpected fold %v", fold)
	}
}

func TestServer_UnknownRequest(t *testing.T) {
	var out bytes.Buffer
	s := newServer(&out)

	s.handle([]byte(`{"jsonrpc":"2.0","id":8,"method":"textDocument/hover","params":{}}`))
	s.handle([]byte(`{"jsonrpc":"2.0","method":"$/cancelRequest","params":{"id":8}}`))

	messages := readMessages(t, &out)
	if len(messages) != 1 {
		t.Fatalf("Expected only the request to be answered, got %v", messages)
	}

	if messages[0]["error"] == nil {
		t.Errorf("Expected a method not found error, got %v", messages[0])
	}

	if s.counter.Other != 2 {
		t.Errorf("Expected 2 unknown messages, got %d", s.counter.Other)
	}
}
