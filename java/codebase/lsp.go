package codebase

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/lojidoc/format"
	"github.com/dhamidi/lojidoc/java/parser"
	"github.com/dhamidi/lojidoc/lint"
)

const lsName = "lojidoc"

// LSPServer publishes documentation lint findings for open .java
// documents.
type LSPServer struct {
	codebase *Codebase
	handler  protocol.Handler
	server   *server.Server
	version  string
	opts     []parser.Option
}

// NewLSPServer creates a server whose parser always runs lint checks in
// addition to opts.
func NewLSPServer(version string, opts ...parser.Option) *LSPServer {
	ls := &LSPServer{
		version: version,
		opts:    append([]parser.Option{parser.WithLint()}, opts...),
	}

	ls.handler = protocol.Handler{
		Initialize:            ls.initialize,
		Initialized:           ls.initialized,
		Shutdown:              ls.shutdown,
		SetTrace:              ls.setTrace,
		TextDocumentDidOpen:   ls.textDocumentDidOpen,
		TextDocumentDidChange: ls.textDocumentDidChange,
		TextDocumentDidClose:  ls.textDocumentDidClose,
		TextDocumentDidSave:   ls.textDocumentDidSave,
		TextDocumentHover:     ls.textDocumentHover,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *LSPServer) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *LSPServer) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	rootDir := getRootDir()
	if params.RootPath != nil && *params.RootPath != "" {
		rootDir = *params.RootPath
	} else if params.RootURI != nil && *params.RootURI != "" {
		if path, err := uriToPath(*params.RootURI); err == nil {
			rootDir = path
		}
	}

	ls.codebase = New(rootDir, ls.opts...)

	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    intPtr(int(protocol.TextDocumentSyncKindFull)),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *LSPServer) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	if err := ls.codebase.ScanAll(context.Background()); err != nil {
		log.Warningf("scan %s: %s", ls.codebase.RootDir(), err)
	}
	log.Infof("serving %s: %d declarations", ls.codebase.RootDir(), ls.codebase.Project().Len())
	return nil
}

func (ls *LSPServer) shutdown(ctx *glsp.Context) error {
	return nil
}

func (ls *LSPServer) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *LSPServer) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	ls.update(ctx, params.TextDocument.URI, []byte(params.TextDocument.Text))
	return nil
}

func (ls *LSPServer) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) > 0 {
		change := params.ContentChanges[len(params.ContentChanges)-1]
		if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			ls.update(ctx, params.TextDocument.URI, []byte(textChange.Text))
		}
	}
	return nil
}

func (ls *LSPServer) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	path, ok := javaPath(params.TextDocument.URI)
	if !ok {
		return nil
	}
	ls.codebase.RemoveFile(path)
	publish(ctx, params.TextDocument.URI, nil)
	return nil
}

func (ls *LSPServer) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if params.Text != nil {
		ls.update(ctx, params.TextDocument.URI, []byte(*params.Text))
		return nil
	}
	path, ok := javaPath(params.TextDocument.URI)
	if !ok {
		return nil
	}
	if err := ls.codebase.ScanFile(path); err != nil {
		log.Warningf("scan %s: %s", path, err)
		return nil
	}
	publish(ctx, params.TextDocument.URI, ls.codebase.Diagnostics(path))
	return nil
}

// textDocumentHover shows the rendered documentation of the type named
// under the cursor.
func (ls *LSPServer) textDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	path, ok := javaPath(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	file := ls.codebase.GetFile(path)
	if file == nil {
		return nil, nil
	}
	word := wordAt(file.Content, int(params.Position.Line)+1, int(params.Position.Character))
	if word == "" {
		return nil, nil
	}
	decl := ls.codebase.FindDeclaration(word)
	if decl == nil {
		return nil, nil
	}
	doc, err := format.Markdown(decl, format.MarkdownOptions{IncludeSignatures: true})
	if err != nil {
		return nil, err
	}
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: string(doc),
		},
	}, nil
}

// wordAt returns the identifier or qualified name around col on the given
// one-based line.
func wordAt(content []byte, line, col int) string {
	lines := strings.Split(string(content), "\n")
	if line <= 0 || line > len(lines) {
		return ""
	}
	text := lines[line-1]
	if col < 0 || col > len(text) {
		return ""
	}
	start, end := col, col
	for start > 0 && isNameByte(text[start-1]) {
		start--
	}
	for end < len(text) && isNameByte(text[end]) {
		end++
	}
	return strings.Trim(text[start:end], ".")
}

func isNameByte(b byte) bool {
	return b == '_' || b == '$' || b == '.' ||
		('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z') || ('0' <= b && b <= '9')
}

// update reparses a document and publishes its diagnostics. Unchanged
// content is not reparsed but still republished.
func (ls *LSPServer) update(ctx *glsp.Context, uri protocol.DocumentUri, content []byte) {
	path, ok := javaPath(uri)
	if !ok {
		return
	}
	ls.codebase.UpdateFile(path, content)
	publish(ctx, uri, ls.codebase.Diagnostics(path))
}

func publish(ctx *glsp.Context, uri protocol.DocumentUri, diags []parser.Diagnostic) {
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: lint.ToProtocol(diags),
	})
}

func javaPath(uri protocol.DocumentUri) (string, bool) {
	path, err := uriToPath(uri)
	if err != nil || filepath.Ext(path) != ".java" {
		return "", false
	}
	return path, true
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

func intPtr(i int) *protocol.TextDocumentSyncKind {
	v := protocol.TextDocumentSyncKind(i)
	return &v
}

func getRootDir() string {
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	return dir
}
