// Package lsp implements a language server for .sus files over stdio.
//
// Every open document is compiled as the root of its own project on open,
// change and save. The server publishes the document's full diagnostic set
// after each compile and answers completion, hover and definition requests
// from the latest result.
package lsp

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"susc/internal/version"
)

var (
	// ErrExit is returned by Run after "exit" followed a "shutdown".
	ErrExit = errors.New("lsp exit")
	// ErrExitWithoutShutdown is returned by Run for an "exit" the client
	// sent without shutting down first.
	ErrExitWithoutShutdown = errors.New("lsp exit without shutdown")
)

// ServerOptions configures the compiles the server runs.
type ServerOptions struct {
	// StdlibDir replaces the bundled standard library; a project's sus.toml
	// may set it too.
	StdlibDir string
	// MaxDiagnostics caps diagnostics per file; 0 means 100.
	MaxDiagnostics int
	// Settings override the defaults of every project.
	Settings map[string]string
	// Log receives server messages; nil means stderr.
	Log io.Writer
}

// Server speaks JSON-RPC over a pair of streams.
type Server struct {
	opts ServerOptions
	in   *bufio.Reader
	log  io.Writer

	outMu sync.Mutex
	out   *bufio.Writer

	mu           sync.Mutex
	ctx          context.Context
	docs         map[string]*document
	shuttingDown bool
}

// NewServer returns a server reading requests from in and writing to out.
func NewServer(in io.Reader, out io.Writer, opts ServerOptions) *Server {
	if opts.MaxDiagnostics <= 0 {
		opts.MaxDiagnostics = 100
	}
	if opts.Log == nil {
		opts.Log = os.Stderr
	}
	return &Server{
		opts: opts,
		in:   bufio.NewReader(in),
		out:  bufio.NewWriter(out),
		log:  opts.Log,
		ctx:  context.Background(),
		docs: map[string]*document{},
	}
}

// handler runs one method. The result is sent back for requests and
// dropped for notifications. An *rpcError is answered to the client instead
// of ending the session.
type handler func(s *Server, params json.RawMessage) (any, error)

var methods = map[string]handler{
	"initialize":              onRequest((*Server).initialize),
	"shutdown":                onRequest((*Server).shutdown),
	"textDocument/didOpen":    onNotify((*Server).didOpen),
	"textDocument/didChange":  onNotify((*Server).didChange),
	"textDocument/didSave":    onNotify((*Server).didSave),
	"textDocument/didClose":   onNotify((*Server).didClose),
	"textDocument/completion": onRequest((*Server).completion),
	"textDocument/hover":      onRequest((*Server).hover),
	"textDocument/definition": onRequest((*Server).definition),
}

func decode[P any](raw json.RawMessage) (P, error) {
	var p P
	if len(raw) == 0 || string(raw) == "null" {
		return p, nil
	}
	if err := json.Unmarshal(raw, &p); err != nil {
		return p, &rpcError{Code: codeInvalidParams, Message: "invalid params: " + err.Error()}
	}
	return p, nil
}

func onRequest[P any](fn func(*Server, P) (any, error)) handler {
	return func(s *Server, raw json.RawMessage) (any, error) {
		p, err := decode[P](raw)
		if err != nil {
			return nil, err
		}
		return fn(s, p)
	}
}

func onNotify[P any](fn func(*Server, P) error) handler {
	return func(s *Server, raw json.RawMessage) (any, error) {
		p, err := decode[P](raw)
		if err != nil {
			return nil, err
		}
		return nil, fn(s, p)
	}
}

// Run serves until the client exits, the input ends or ctx is done. The end
// of input returns nil.
func (s *Server) Run(ctx context.Context) error {
	s.mu.Lock()
	s.ctx = ctx
	s.mu.Unlock()
	for ctx.Err() == nil {
		payload, err := readMessage(s.in)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		var msg envelope
		if err := json.Unmarshal(payload, &msg); err != nil {
			s.logf("bad message: %v", err)
			continue
		}
		if err := s.dispatch(&msg); err != nil {
			return err
		}
	}
	return ctx.Err()
}

func (s *Server) dispatch(msg *envelope) error {
	isRequest := len(msg.ID) > 0
	switch msg.Method {
	case "":
		// a response to something we never asked
		return nil
	case "exit":
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.shuttingDown {
			return ErrExit
		}
		return ErrExitWithoutShutdown
	}

	h, ok := methods[msg.Method]
	if !ok {
		if isRequest {
			return s.replyError(msg.ID, &rpcError{Code: codeMethodNotFound, Message: "method not found: " + msg.Method})
		}
		return nil
	}
	result, err := h(s, msg.Params)
	var rerr *rpcError
	switch {
	case errors.As(err, &rerr):
		if isRequest {
			return s.replyError(msg.ID, rerr)
		}
		s.logf("%s: %v", msg.Method, rerr)
		return nil
	case err != nil:
		return err
	case isRequest:
		return s.reply(msg.ID, result)
	}
	return nil
}

func (s *Server) initialize(initParams) (any, error) {
	return initResult{
		Capabilities: serverCapabilities{
			TextDocumentSync: syncOptions{
				OpenClose: true,
				Change:    syncIncremental,
				Save:      saveOptions{IncludeText: true},
			},
			HoverProvider:      true,
			DefinitionProvider: true,
			CompletionProvider: &completionOptions{
				TriggerCharacters: []string{":", "[", "{", ",", " ", "/"},
			},
		},
		ServerInfo: serverInfo{Name: "susc", Version: version.Version},
	}, nil
}

// shutdown forgets every document and clears what was published for it.
func (s *Server) shutdown(struct{}) (any, error) {
	s.mu.Lock()
	s.shuttingDown = true
	open := s.docs
	s.docs = map[string]*document{}
	s.mu.Unlock()
	for uri := range open {
		if err := s.publish(uri, nil, nil); err != nil {
			s.logf("clear %s: %v", uri, err)
		}
	}
	return nil, nil
}

func (s *Server) didOpen(p openParams) error {
	return s.update(p.TextDocument.URI, p.TextDocument.Version, p.TextDocument.Text)
}

func (s *Server) didChange(p changeParams) error {
	var text string
	if doc := s.document(p.TextDocument.URI); doc != nil {
		text = doc.text
	}
	return s.update(p.TextDocument.URI, p.TextDocument.Version, applyChanges(text, p.ContentChanges))
}

// didSave recompiles even an unchanged buffer, since included files may
// have changed on disk.
func (s *Server) didSave(p saveParams) error {
	doc := s.document(p.TextDocument.URI)
	if doc == nil {
		return nil
	}
	text := doc.text
	if p.Text != nil {
		text = *p.Text
	}
	return s.update(doc.uri, doc.version, text)
}

func (s *Server) didClose(p closeParams) error {
	uri := canonicalURI(p.TextDocument.URI)
	s.mu.Lock()
	_, open := s.docs[uri]
	delete(s.docs, uri)
	s.mu.Unlock()
	if !open {
		return nil
	}
	return s.publish(uri, nil, nil)
}

// update recompiles a document and publishes its diagnostics. A result for
// an older version than the stored one is dropped.
func (s *Server) update(rawURI string, version int, text string) error {
	uri := canonicalURI(rawURI)
	if uri == "" {
		return nil
	}
	s.mu.Lock()
	ctx := s.ctx
	s.mu.Unlock()

	doc := s.analyze(ctx, uri, version, text)

	s.mu.Lock()
	if prev := s.docs[uri]; prev != nil && prev.version > version {
		s.mu.Unlock()
		return nil
	}
	s.docs[uri] = doc
	s.mu.Unlock()
	return s.publish(uri, &version, publishable(doc))
}

// document returns the latest compile of uri, or nil.
func (s *Server) document(uri string) *document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.docs[canonicalURI(uri)]
}

func (s *Server) reply(id json.RawMessage, result any) error {
	return s.send(response{JSONRPC: "2.0", ID: id, Result: result})
}

func (s *Server) replyError(id json.RawMessage, e *rpcError) error {
	return s.send(errorResponse{JSONRPC: "2.0", ID: id, Error: e})
}

func (s *Server) publish(uri string, version *int, list []wireDiagnostic) error {
	if list == nil {
		list = []wireDiagnostic{}
	}
	return s.send(notification{
		JSONRPC: "2.0",
		Method:  "textDocument/publishDiagnostics",
		Params:  publishParams{URI: uri, Version: version, Diagnostics: list},
	})
}

func (s *Server) send(msg any) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	s.outMu.Lock()
	defer s.outMu.Unlock()
	if err := writeMessage(s.out, payload); err != nil {
		return err
	}
	return s.out.Flush()
}

func (s *Server) logf(format string, args ...any) {
	fmt.Fprintf(s.log, "lsp: "+format+"\n", args...) //nolint:errcheck
}
