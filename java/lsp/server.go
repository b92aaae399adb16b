// Package lsp exposes the parser over the Language Server Protocol.
// The server keeps the latest text of every open document, reparses on
// each change, and publishes the parser's diagnostics.
package lsp

import (
	"bytes"
	"net/url"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dhamidi/javaparse/java/parser"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"
)

const lsName = "javaparse"

type Server struct {
	handler protocol.Handler
	server  *server.Server
	version string

	mu        sync.Mutex
	documents map[string][]byte
}

func NewServer(version string) *Server {
	s := &Server{
		version:   version,
		documents: make(map[string][]byte),
	}

	s.handler = protocol.Handler{
		Initialize:            s.initialize,
		Initialized:           s.initialized,
		Shutdown:              s.shutdown,
		SetTrace:              s.setTrace,
		TextDocumentDidOpen:   s.textDocumentDidOpen,
		TextDocumentDidChange: s.textDocumentDidChange,
		TextDocumentDidClose:  s.textDocumentDidClose,
		TextDocumentDidSave:   s.textDocumentDidSave,
	}

	s.server = server.NewServer(&s.handler, lsName, false)

	return s
}

func (s *Server) RunStdio() error {
	return s.server.RunStdio()
}

func (s *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := s.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &s.version,
		},
	}, nil
}

func (s *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (s *Server) shutdown(ctx *glsp.Context) error {
	return nil
}

func (s *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (s *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.updateDocument(ctx, params.TextDocument.URI, []byte(params.TextDocument.Text))
	return nil
}

func (s *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	change := params.ContentChanges[len(params.ContentChanges)-1]
	if whole, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
		s.updateDocument(ctx, params.TextDocument.URI, []byte(whole.Text))
	}
	return nil
}

func (s *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if params.Text != nil {
		s.updateDocument(ctx, params.TextDocument.URI, []byte(*params.Text))
	}
	return nil
}

func (s *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.mu.Lock()
	delete(s.documents, params.TextDocument.URI)
	s.mu.Unlock()

	// Clear stale diagnostics for the closed document.
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

func (s *Server) updateDocument(ctx *glsp.Context, uri string, content []byte) {
	s.mu.Lock()
	s.documents[uri] = content
	s.mu.Unlock()

	s.publishDiagnostics(ctx, uri, content)
}

func (s *Server) publishDiagnostics(ctx *glsp.Context, uri string, content []byte) {
	file := uri
	if path, err := uriToPath(uri); err == nil {
		file = path
	}

	p := parser.ParseCompilationUnit(bytes.NewReader(content), parser.WithFile(file))
	p.Finish()

	diagnostics := make([]protocol.Diagnostic, 0, len(p.Diagnostics()))
	source := lsName
	for _, d := range p.Diagnostics() {
		severity := protocol.DiagnosticSeverityError
		if d.Severity == parser.SeverityWarning {
			severity = protocol.DiagnosticSeverityWarning
		}
		message := d.Message
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range:    toProtocolRange(d.Span),
			Severity: &severity,
			Source:   &source,
			Message:  message,
		})
	}

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func toProtocolRange(span parser.Span) protocol.Range {
	return protocol.Range{
		Start: protocol.Position{
			Line:      uint32(max(span.Start.Line-1, 0)),
			Character: uint32(max(span.Start.Column-1, 0)),
		},
		End: protocol.Position{
			Line:      uint32(max(span.End.Line-1, 0)),
			Character: uint32(max(span.End.Column-1, 0)),
		},
	}
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
