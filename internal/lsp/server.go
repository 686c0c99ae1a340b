package lsp

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"

	"github.com/Emmmmllll/Slang/internal/ast"
	"github.com/Emmmmllll/Slang/internal/diag"
	"github.com/Emmmmllll/Slang/internal/parser"
	"github.com/Emmmmllll/Slang/internal/source"
)

// Server is a language server that reports lexical diagnostics and
// describes the token under the cursor.
type Server struct {
	// Documents tracks open files by URI
	Documents map[string]*Document
	mu        sync.RWMutex

	in       io.Reader
	out      io.Writer
	interner *source.Interner
	rootPath string
	shutdown bool
}

// Document represents an open document.
type Document struct {
	URI     string
	Content string
	Version int
	File    *source.File
	Stream  *ast.TokenStream // nil when the text has structural errors
	Errors  []diag.Diagnostic
}

// NewServer creates a server speaking JSON-RPC over in and out.
func NewServer(in io.Reader, out io.Writer) *Server {
	return &Server{
		Documents: make(map[string]*Document),
		in:        in,
		out:       out,
		interner:  source.NewInterner(),
	}
}

// Run serves requests until the input is exhausted, an exit notification
// arrives or ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	reader := bufio.NewReader(s.in)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		contentLength, err := readHeaders(reader)
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		if contentLength < 0 {
			log.Printf("Missing Content-Length header")
			continue
		}

		body := make([]byte, contentLength)
		if _, err := io.ReadFull(reader, body); err != nil {
			return fmt.Errorf("failed to read message body: %w", err)
		}

		var msg jsonrpcMessage
		if err := json.Unmarshal(body, &msg); err != nil {
			log.Printf("Failed to parse JSON-RPC message: %v", err)
			continue
		}

		if msg.Method == "exit" {
			return nil
		}

		response := s.handleMessage(ctx, &msg)
		if response != nil {
			if err := s.send(response); err != nil {
				log.Printf("Failed to send response: %v", err)
			}
		}
	}
}

// readHeaders consumes one header block and returns its Content-Length,
// or -1 if the block had none.
func readHeaders(reader *bufio.Reader) (int, error) {
	contentLength := -1
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			if err == io.EOF && line == "" {
				return 0, io.EOF
			}
			return 0, fmt.Errorf("failed to read header: %w", err)
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			return contentLength, nil
		}
		var n int
		if _, err := fmt.Sscanf(line, "Content-Length: %d", &n); err == nil {
			contentLength = n
		}
	}
}

// jsonrpcMessage represents a JSON-RPC 2.0 message.
type jsonrpcMessage struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id,omitempty"`
	Method  string          `json:"method,omitempty"`
	Params  json.RawMessage `json:"params,omitempty"`
	Result  interface{}     `json:"result,omitempty"`
	Error   *jsonrpcError   `json:"error,omitempty"`
}

type jsonrpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// handleMessage processes a JSON-RPC message and returns a response.
func (s *Server) handleMessage(ctx context.Context, msg *jsonrpcMessage) *jsonrpcMessage {
	if s.shutdown && msg.ID != nil {
		return errorResponse(msg, -32600, "Server is shutting down")
	}

	switch msg.Method {
	case "initialize":
		return s.handleInitialize(msg)
	case "initialized":
		return nil
	case "textDocument/didOpen":
		s.handleDidOpen(msg)
		return nil
	case "textDocument/didChange":
		s.handleDidChange(msg)
		return nil
	case "textDocument/didClose":
		s.handleDidClose(msg)
		return nil
	case "textDocument/hover":
		return s.handleHover(msg)
	case "shutdown":
		return s.handleShutdown(msg)
	default:
		if msg.ID != nil {
			return errorResponse(msg, -32601, fmt.Sprintf("Method not found: %s", msg.Method))
		}
		return nil
	}
}

func errorResponse(msg *jsonrpcMessage, code int, message string) *jsonrpcMessage {
	return &jsonrpcMessage{
		JSONRPC: "2.0",
		ID:      msg.ID,
		Error:   &jsonrpcError{Code: code, Message: message},
	}
}

// send writes one framed JSON-RPC message.
func (s *Server) send(msg *jsonrpcMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}

	header := fmt.Sprintf("Content-Length: %d\r\n\r\n", len(data))
	if _, err := io.WriteString(s.out, header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if _, err := s.out.Write(data); err != nil {
		return fmt.Errorf("failed to write body: %w", err)
	}
	return nil
}

// InitializeParams represents the initialize request parameters.
type InitializeParams struct {
	ProcessID    int                    `json:"processId,omitempty"`
	RootPath     string                 `json:"rootPath,omitempty"`
	RootURI      string                 `json:"rootUri,omitempty"`
	Capabilities map[string]interface{} `json:"capabilities,omitempty"`
}

// InitializeResult represents the initialize response.
type InitializeResult struct {
	Capabilities ServerCapabilities `json:"capabilities"`
	ServerInfo   ServerInfo         `json:"serverInfo"`
}

type ServerCapabilities struct {
	TextDocumentSync int  `json:"textDocumentSync"`
	HoverProvider    bool `json:"hoverProvider"`
}

type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

func (s *Server) handleInitialize(msg *jsonrpcMessage) *jsonrpcMessage {
	var params InitializeParams
	if len(msg.Params) > 0 {
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return errorResponse(msg, -32602, fmt.Sprintf("Invalid params: %v", err))
		}
	}

	if params.RootURI != "" {
		s.rootPath = uriToPath(params.RootURI)
	} else if params.RootPath != "" {
		s.rootPath = params.RootPath
	}

	result := InitializeResult{
		Capabilities: ServerCapabilities{
			TextDocumentSync: 1, // full document sync
			HoverProvider:    true,
		},
		ServerInfo: ServerInfo{
			Name:    "slang-lsp",
			Version: "0.1.0",
		},
	}

	return &jsonrpcMessage{
		JSONRPC: "2.0",
		ID:      msg.ID,
		Result:  result,
	}
}

func (s *Server) handleShutdown(msg *jsonrpcMessage) *jsonrpcMessage {
	s.shutdown = true
	return &jsonrpcMessage{
		JSONRPC: "2.0",
		ID:      msg.ID,
		Result:  nil,
	}
}

// DidOpenTextDocumentParams represents didOpen notification parameters.
type DidOpenTextDocumentParams struct {
	TextDocument TextDocumentItem `json:"textDocument"`
}

type TextDocumentItem struct {
	URI        string `json:"uri"`
	LanguageID string `json:"languageId"`
	Version    int    `json:"version"`
	Text       string `json:"text"`
}

func (s *Server) handleDidOpen(msg *jsonrpcMessage) {
	var params DidOpenTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		log.Printf("Failed to parse didOpen params: %v", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc := &Document{
		URI:     params.TextDocument.URI,
		Content: params.TextDocument.Text,
		Version: params.TextDocument.Version,
	}
	s.updateDocument(doc)
	s.Documents[doc.URI] = doc
	s.publishDiagnostics(doc)
}

// DidChangeTextDocumentParams represents didChange notification parameters.
type DidChangeTextDocumentParams struct {
	TextDocument   VersionedTextDocumentIdentifier  `json:"textDocument"`
	ContentChanges []TextDocumentContentChangeEvent `json:"contentChanges"`
}

type VersionedTextDocumentIdentifier struct {
	URI     string `json:"uri"`
	Version int    `json:"version"`
}

type TextDocumentContentChangeEvent struct {
	Text string `json:"text"`
}

func (s *Server) handleDidChange(msg *jsonrpcMessage) {
	var params DidChangeTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		log.Printf("Failed to parse didChange params: %v", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.Documents[params.TextDocument.URI]
	if !ok || len(params.ContentChanges) == 0 {
		return
	}

	// Full sync: the last change carries the whole text.
	doc.Content = params.ContentChanges[len(params.ContentChanges)-1].Text
	doc.Version = params.TextDocument.Version
	s.updateDocument(doc)
	s.publishDiagnostics(doc)
}

func (s *Server) handleDidClose(msg *jsonrpcMessage) {
	var params struct {
		TextDocument TextDocumentIdentifier `json:"textDocument"`
	}
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		log.Printf("Failed to parse didClose params: %v", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.Documents, params.TextDocument.URI)
}

type TextDocumentIdentifier struct {
	URI string `json:"uri"`
}

// updateDocument reads the token trees of doc.
func (s *Server) updateDocument(doc *Document) {
	p := parser.New(doc.Content,
		parser.WithFilename(uriToPath(doc.URI)),
		parser.WithInterner(s.interner),
	)
	stream, _ := p.ParseTokenTrees()

	doc.File = p.File()
	doc.Stream = stream
	doc.Errors = p.Errors()
}

// publishDiagnostics sends the diagnostics of doc to the client.
func (s *Server) publishDiagnostics(doc *Document) {
	lspDiagnostics := make([]Diagnostic, 0, len(doc.Errors))
	for _, d := range doc.Errors {
		lspDiagnostics = append(lspDiagnostics, Diagnostic{
			Range:    spanRange(doc.File, d.Span.Start, d.Span.End),
			Severity: diagnosticSeverity(d.Severity),
			Message:  d.Message,
			Code:     string(d.Code),
			Source:   "slang",
		})
	}

	params, err := json.Marshal(PublishDiagnosticsParams{
		URI:         doc.URI,
		Version:     doc.Version,
		Diagnostics: lspDiagnostics,
	})
	if err != nil {
		log.Printf("Failed to marshal diagnostics: %v", err)
		return
	}
	notification := &jsonrpcMessage{
		JSONRPC: "2.0",
		Method:  "textDocument/publishDiagnostics",
		Params:  params,
	}
	if err := s.send(notification); err != nil {
		log.Printf("Failed to publish diagnostics: %v", err)
	}
}

// PublishDiagnosticsParams is the payload of textDocument/publishDiagnostics.
type PublishDiagnosticsParams struct {
	URI         string       `json:"uri"`
	Version     int          `json:"version,omitempty"`
	Diagnostics []Diagnostic `json:"diagnostics"`
}

// Diagnostic represents an LSP diagnostic.
type Diagnostic struct {
	Range    Range  `json:"range"`
	Severity int    `json:"severity"`
	Message  string `json:"message"`
	Code     string `json:"code,omitempty"`
	Source   string `json:"source,omitempty"`
}

type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// spanRange converts byte positions in file to a zero-based LSP range.
func spanRange(file *source.File, start, end int) Range {
	return Range{
		Start: toPosition(file, source.PosFromInt(start)),
		End:   toPosition(file, source.PosFromInt(end)),
	}
}

func toPosition(file *source.File, p source.Pos) Position {
	line, col := file.LineCol(p)
	return Position{Line: line - 1, Character: col - 1}
}

func diagnosticSeverity(sev diag.Severity) int {
	switch sev {
	case diag.SeverityError:
		return 1 // Error
	case diag.SeverityWarning:
		return 2 // Warning
	case diag.SeverityNote:
		return 3 // Information
	default:
		return 1
	}
}

// uriToPath converts a file:// URI to a file path.
func uriToPath(uri string) string {
	if path, ok := strings.CutPrefix(uri, "file://"); ok {
		// Windows paths arrive as /C:/...
		if len(path) > 2 && path[0] == '/' && path[2] == ':' {
			path = path[1:]
		}
		return path
	}
	return uri
}
