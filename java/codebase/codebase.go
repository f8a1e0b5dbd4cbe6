// Package codebase keeps parsed declarations for a set of open or watched
// source files and serves their lint diagnostics.
package codebase

import (
	"context"
	"os"
	"sync"

	"github.com/tliron/commonlog"
	"github.com/viant/afs"

	"github.com/dhamidi/lojidoc/fingerprint"
	"github.com/dhamidi/lojidoc/generator"
	"github.com/dhamidi/lojidoc/java"
	"github.com/dhamidi/lojidoc/java/parser"
)

var log = commonlog.GetLogger("lojidoc.codebase")

type Codebase struct {
	mu      sync.RWMutex
	rootDir string
	opts    []parser.Option
	files   map[string]*FileInfo
}

type FileInfo struct {
	Path        string
	Content     []byte
	Hash        uint64
	Declaration java.Declaration
	Diagnostics []parser.Diagnostic
}

// New creates a codebase rooted at rootDir. opts are passed to the parser
// for every file.
func New(rootDir string, opts ...parser.Option) *Codebase {
	return &Codebase{
		rootDir: rootDir,
		opts:    opts,
		files:   make(map[string]*FileInfo),
	}
}

func (c *Codebase) RootDir() string {
	return c.rootDir
}

// ScanAll parses every source below the root directory.
func (c *Codebase) ScanAll(ctx context.Context) error {
	files, err := generator.Discover(ctx, afs.New(), c.rootDir, nil)
	if err != nil {
		return err
	}
	for _, path := range files {
		if err := c.ScanFile(path); err != nil {
			log.Warningf("scan %s: %s", path, err)
		}
	}
	return nil
}

func (c *Codebase) ScanFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	c.UpdateFile(path, content)
	return nil
}

// UpdateFile parses content as the new version of path. It reports false
// without parsing when the content is unchanged.
func (c *Codebase) UpdateFile(path string, content []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.updateFileLocked(path, content)
}

func (c *Codebase) updateFileLocked(path string, content []byte) bool {
	hash := fingerprint.Sum(content)
	if f, ok := c.files[path]; ok && f.Hash == hash {
		return false
	}

	opts := append([]parser.Option{parser.WithFile(path)}, c.opts...)
	decl, diags := parser.Parse(content, opts...)
	c.files[path] = &FileInfo{
		Path:        path,
		Content:     content,
		Hash:        hash,
		Declaration: decl,
		Diagnostics: diags,
	}
	log.Debugf("parsed %s: %d diagnostics", path, len(diags))
	return true
}

func (c *Codebase) RemoveFile(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.files, path)
}

func (c *Codebase) GetFile(path string) *FileInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.files[path]
}

func (c *Codebase) Diagnostics(path string) []parser.Diagnostic {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if f := c.files[path]; f != nil {
		return f.Diagnostics
	}
	return nil
}

// Project collects the declarations of all known files.
func (c *Codebase) Project() *java.Project {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p := java.NewProject()
	for _, f := range c.files {
		if !java.IsEmpty(f.Declaration) {
			p.Add(f.Declaration)
		}
	}
	return p
}

// FindDeclaration returns the declaration with the given simple or
// qualified name.
func (c *Codebase) FindDeclaration(name string) java.Declaration {
	for _, d := range c.Project().All() {
		h := d.Info()
		if h.Name == name || h.QualifiedName() == name {
			return d
		}
	}
	return nil
}
