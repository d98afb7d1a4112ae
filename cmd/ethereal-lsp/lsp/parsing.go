package lsp

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"sync"
)

var (
	ErrMissingContentLength = errors.New("missing '" + ContentLengthHeader + "' header")
	ErrInvalidContentLength = errors.New("invalid '" + ContentLengthHeader + "' header")
)

// maxMessageSize bounds a single message, headers included.
const maxMessageSize = 64 << 20

// ReceiveInput creates a scanner that yields the JSON payload of each LSP message of 'input'.
func ReceiveInput(input io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(input)
	scanner.Buffer(make([]byte, 0, 64*1024), maxMessageSize)
	scanner.Split(decode)
	return scanner
}

// Encode wraps data with Content-Length header per LSP specification.
func Encode(dataContent []byte) []byte {
	header := ContentLengthHeader + ": " + strconv.Itoa(len(dataContent)) + HeaderDelimiter

	message := make([]byte, 0, len(header)+len(dataContent))
	message = append(message, header...)
	message = append(message, dataContent...)

	return message
}

// Sender writes framed messages to the client. It is safe for concurrent use:
// responses and diagnostics are sent from different goroutines.
type Sender struct {
	mu sync.Mutex
	w  io.Writer
}

func NewSender(w io.Writer) *Sender {
	return &Sender{w: w}
}

// Send encodes 'payload' and writes it as a single message.
func (s *Sender) Send(payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.w.Write(Encode(payload)); err != nil {
		return fmt.Errorf("error while writing to output: %w", err)
	}

	return nil
}

// decode is a bufio.SplitFunc that parses LSP messages.
func decode(data []byte, atEOF bool) (advance int, token []byte, err error) {
	headerEnd := bytes.Index(data, []byte(HeaderDelimiter))
	if headerEnd == -1 {
		if atEOF && len(bytes.TrimSpace(data)) > 0 {
			return 0, nil, io.ErrUnexpectedEOF
		}
		return 0, nil, nil
	}

	contentLength, err := parseContentLength(data[:headerEnd])
	if err != nil {
		return 0, nil, err
	}

	bodyStart := headerEnd + len(HeaderDelimiter)
	bodyEnd := bodyStart + contentLength

	if len(data) < bodyEnd {
		if atEOF {
			return 0, nil, io.ErrUnexpectedEOF
		}
		return 0, nil, nil
	}

	return bodyEnd, data[bodyStart:bodyEnd], nil
}

// parseContentLength reads the Content-Length value from a header block.
// Other headers, such as Content-Type, are ignored.
func parseContentLength(header []byte) (int, error) {
	for _, line := range bytes.Split(header, []byte(LineDelimiter)) {
		name, value, found := bytes.Cut(line, []byte(":"))
		if !found || !bytes.EqualFold(bytes.TrimSpace(name), []byte(ContentLengthHeader)) {
			continue
		}

		length, err := strconv.Atoi(string(bytes.TrimSpace(value)))
		if err != nil || length < 0 {
			return -1, fmt.Errorf("%w: %q", ErrInvalidContentLength, value)
		}

		return length, nil
	}

	return -1, ErrMissingContentLength
}
