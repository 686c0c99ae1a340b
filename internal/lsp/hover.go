package lsp

import (
	"encoding/json"
	"fmt"

	"github.com/Emmmmllll/Slang/internal/ast"
	"github.com/Emmmmllll/Slang/internal/source"
)

// TextDocumentPositionParams names a position inside a document.
type TextDocumentPositionParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
	Position     Position               `json:"position"`
}

// HoverParams represents hover request parameters.
type HoverParams struct {
	TextDocumentPositionParams
}

// Hover represents hover information.
type Hover struct {
	Contents MarkupContent `json:"contents"`
	Range    *Range        `json:"range,omitempty"`
}

type MarkupContent struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

func (s *Server) handleHover(msg *jsonrpcMessage) *jsonrpcMessage {
	var params HoverParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return errorResponse(msg, -32602, fmt.Sprintf("Invalid params: %v", err))
	}

	s.mu.RLock()
	doc, ok := s.Documents[params.TextDocument.URI]
	var hover *Hover
	if ok && doc.Stream != nil {
		hover = s.getHover(doc, params.Position)
	}
	s.mu.RUnlock()

	return &jsonrpcMessage{
		JSONRPC: "2.0",
		ID:      msg.ID,
		Result:  hover,
	}
}

func (s *Server) getHover(doc *Document, pos Position) *Hover {
	p := source.PosFromInt(positionToOffset(doc.Content, pos))

	tok, spacing, ok := tokenAt(doc.Stream, p)
	if !ok {
		return nil
	}

	content := fmt.Sprintf("```slang\n%s\n```\nspacing: %s", ast.Describe(tok, s.interner), spacing)
	r := spanRange(doc.File, tok.Span.Lo.Int(), tok.Span.Hi.Int())
	return &Hover{
		Contents: MarkupContent{
			Kind:  "markdown",
			Value: content,
		},
		Range: &r,
	}
}

// tokenAt finds the token covering p, delimiters included, along with the
// spacing recorded after it.
func tokenAt(ts *ast.TokenStream, p source.Pos) (ast.Token, ast.Spacing, bool) {
	var (
		found   ast.Token
		spacing ast.Spacing
		ok      bool
	)
	ast.Walk(ts, func(tt ast.TokenTree) bool {
		if ok || !tt.Span().Contains(p) {
			return false
		}
		switch tt := tt.(type) {
		case *ast.Leaf:
			found, spacing, ok = tt.Token, tt.Spacing, true
		case *ast.Group:
			if tt.DelimSpan.Open.Contains(p) {
				found, spacing, ok = tt.OpenToken(), tt.Spacing.Open, true
				return false
			}
			if tt.DelimSpan.Close.Contains(p) {
				found, spacing, ok = tt.CloseToken(), tt.Spacing.Close, true
				return false
			}
			return true
		}
		return false
	})
	return found, spacing, ok
}

// positionToOffset converts a zero-based line and rune column to a byte
// offset into content. Positions past the end map to len(content).
func positionToOffset(content string, pos Position) int {
	line := 0
	col := 0

	for i, r := range content {
		if line == pos.Line && col == pos.Character {
			return i
		}
		if r == '\n' {
			if line == pos.Line {
				return i
			}
			line++
			col = 0
		} else {
			col++
		}
	}

	return len(content)
}
