// Package lsp serves document outlines and folding ranges for markdown
// files over the Language Server Protocol.
package lsp

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"
)

const lsName = "mdblocks"

const pollInterval = time.Second

var log = commonlog.GetLogger("mdblocks.lsp")

type Server struct {
	workspace *Workspace
	watcher   *Watcher
	handler   protocol.Handler
	server    *server.Server
	version   string
}

func NewServer(version string) *Server {
	ls := &Server{
		version:   version,
		workspace: NewWorkspace(getRootDir()),
	}

	ls.handler = protocol.Handler{
		Initialize:                 ls.initialize,
		Initialized:                ls.initialized,
		Shutdown:                   ls.shutdown,
		SetTrace:                   ls.setTrace,
		TextDocumentDidOpen:        ls.textDocumentDidOpen,
		TextDocumentDidChange:      ls.textDocumentDidChange,
		TextDocumentDidClose:       ls.textDocumentDidClose,
		TextDocumentDidSave:        ls.textDocumentDidSave,
		TextDocumentDocumentSymbol: ls.textDocumentDocumentSymbol,
		TextDocumentFoldingRange:   ls.textDocumentFoldingRange,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *Server) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	rootDir := ls.workspace.RootDir()
	if params.RootPath != nil && *params.RootPath != "" {
		rootDir = *params.RootPath
	} else if params.RootURI != nil && *params.RootURI != "" {
		if path, err := uriToPath(*params.RootURI); err == nil {
			rootDir = path
		}
	}
	ls.workspace = NewWorkspace(rootDir)
	log.Info("initialize", "root", rootDir)

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

func (ls *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	if err := ls.workspace.ScanAll(); err != nil {
		log.Error("scan", "root", ls.workspace.RootDir(), "error", err)
	}
	if ls.watcher == nil {
		ls.watcher = NewWatcher(ls.workspace, pollInterval)
		ls.watcher.Start()
	}
	return nil
}

func (ls *Server) shutdown(ctx *glsp.Context) error {
	protocol.SetTraceValue(protocol.TraceValueOff)
	if ls.watcher != nil {
		ls.watcher.Stop()
		ls.watcher = nil
	}
	return nil
}

func (ls *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	ls.workspace.SetOpen(path, true)
	info := ls.workspace.UpdateFile(path, []byte(params.TextDocument.Text))
	ls.publishDiagnostics(ctx, params.TextDocument.URI, info)
	return nil
}

func (ls *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if len(params.ContentChanges) > 0 {
		change := params.ContentChanges[len(params.ContentChanges)-1]
		if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			info := ls.workspace.UpdateFile(path, []byte(textChange.Text))
			ls.publishDiagnostics(ctx, params.TextDocument.URI, info)
		}
	}
	return nil
}

func (ls *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	ls.workspace.SetOpen(path, false)
	// Fall back to the saved file; unsaved buffers disappear.
	if err := ls.workspace.ScanFile(path); err != nil {
		ls.workspace.RemoveFile(path)
	}
	return nil
}

func (ls *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if params.Text != nil {
		ls.workspace.UpdateFile(path, []byte(*params.Text))
	} else {
		ls.workspace.ScanFile(path)
	}
	return nil
}

func (ls *Server) textDocumentDocumentSymbol(ctx *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	info := ls.file(params.TextDocument.URI)
	if info == nil {
		return nil, nil
	}
	return documentSymbols(Outline(info.Doc, info.Lines())), nil
}

func (ls *Server) textDocumentFoldingRange(ctx *glsp.Context, params *protocol.FoldingRangeParams) ([]protocol.FoldingRange, error) {
	info := ls.file(params.TextDocument.URI)
	if info == nil {
		return nil, nil
	}
	return foldingRanges(Folds(info.Doc, info.Lines())), nil
}

func (ls *Server) file(uri protocol.DocumentUri) *FileInfo {
	path, err := uriToPath(uri)
	if err != nil {
		return nil
	}
	return ls.workspace.GetFile(path)
}

// publishDiagnostics reports undecodable front matter on the opening line.
func (ls *Server) publishDiagnostics(ctx *glsp.Context, uri protocol.DocumentUri, info *FileInfo) {
	if ctx == nil || ctx.Notify == nil {
		return
	}
	diagnostics := []protocol.Diagnostic{}
	if info.ParseErr != nil {
		severity := protocol.DiagnosticSeverityWarning
		source := lsName
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range:    lineRange(1, 1),
			Severity: &severity,
			Source:   &source,
			Message:  info.ParseErr.Error(),
		})
	}
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func documentSymbols(symbols []*Symbol) []protocol.DocumentSymbol {
	out := make([]protocol.DocumentSymbol, len(symbols))
	for i, s := range symbols {
		detail := s.Detail
		out[i] = protocol.DocumentSymbol{
			Name:           s.Name,
			Detail:         &detail,
			Kind:           protocolKind(s.Kind),
			Range:          lineRange(s.Start, s.End),
			SelectionRange: lineRange(s.Start, s.Start),
		}
		if len(s.Children) > 0 {
			out[i].Children = documentSymbols(s.Children)
		}
	}
	return out
}

func protocolKind(kind SymbolKind) protocol.SymbolKind {
	switch kind {
	case SymbolCode:
		return protocol.SymbolKindObject
	case SymbolTable:
		return protocol.SymbolKindArray
	default:
		return protocol.SymbolKindString
	}
}

func foldingRanges(folds []Fold) []protocol.FoldingRange {
	kind := string(protocol.FoldingRangeKindRegion)
	out := make([]protocol.FoldingRange, len(folds))
	for i, f := range folds {
		out[i] = protocol.FoldingRange{
			StartLine: protocol.UInteger(f.Start - 1),
			EndLine:   protocol.UInteger(f.End - 1),
			Kind:      &kind,
		}
	}
	return out
}

// lineRange covers whole lines start through end (1-based), ending at the
// start of the following line.
func lineRange(start, end int) protocol.Range {
	return protocol.Range{
		Start: protocol.Position{Line: protocol.UInteger(max(start-1, 0))},
		End:   protocol.Position{Line: protocol.UInteger(max(end, 0))},
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
