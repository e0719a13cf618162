package lsp

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dhamidi/mdblocks/markdown"
)

// Workspace keeps the parsed form of every markdown file the server knows.
type Workspace struct {
	mu      sync.RWMutex
	rootDir string
	files   map[string]*FileInfo
	// open holds paths whose content is owned by the editor.
	open map[string]bool
}

type FileInfo struct {
	Path    string
	Content []byte
	Doc     *markdown.Document
	// ParseErr is set when the front matter could not be decoded. Doc then
	// holds the blocks parsed without front matter.
	ParseErr error
}

// Lines is the number of lines in the file, not counting the empty line
// after a final newline.
func (f *FileInfo) Lines() int {
	return LineCount(string(f.Content))
}

func LineCount(s string) int {
	if s == "" {
		return 0
	}
	return strings.Count(strings.TrimSuffix(s, "\n"), "\n") + 1
}

func NewWorkspace(rootDir string) *Workspace {
	return &Workspace{
		rootDir: rootDir,
		files:   make(map[string]*FileInfo),
		open:    make(map[string]bool),
	}
}

func (w *Workspace) RootDir() string {
	return w.rootDir
}

func isMarkdown(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

// ScanAll parses every markdown file below the root directory.
func (w *Workspace) ScanAll() error {
	return walkMarkdown(w.rootDir, func(path string, info os.FileInfo) {
		w.ScanFile(path)
	})
}

// walkMarkdown calls fn for every markdown file below root, skipping
// hidden directories.
func walkMarkdown(root string, fn func(path string, info os.FileInfo)) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if path != root && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if isMarkdown(path) {
			fn(path, info)
		}
		return nil
	})
}

func (w *Workspace) ScanFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	w.UpdateFile(path, content)
	return nil
}

// UpdateFile parses content and stores it under path.
func (w *Workspace) UpdateFile(path string, content []byte) *FileInfo {
	info := parseFile(path, content)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.files[path] = info
	return info
}

func parseFile(path string, content []byte) *FileInfo {
	info := &FileInfo{Path: path, Content: content}
	source := string(content)

	doc, err := markdown.Parse(source, markdown.WithPositions(), markdown.WithInline(), markdown.WithFrontMatter())
	if err != nil {
		// doc holds the source parsed without front matter.
		log.Warning("front matter", "path", path, "error", err)
		info.ParseErr = err
	}
	info.Doc = doc
	return info
}

// SetOpen records whether the editor has path open. The watcher leaves
// open files alone.
func (w *Workspace) SetOpen(path string, open bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if open {
		w.open[path] = true
	} else {
		delete(w.open, path)
	}
}

func (w *Workspace) IsOpen(path string) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.open[path]
}

func (w *Workspace) RemoveFile(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.files, path)
}

func (w *Workspace) GetFile(path string) *FileInfo {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.files[path]
}
