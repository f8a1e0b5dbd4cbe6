package generator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"

	"github.com/dhamidi/lojidoc/fingerprint"
	"github.com/dhamidi/lojidoc/format"
	"github.com/dhamidi/lojidoc/java"
	"github.com/dhamidi/lojidoc/java/parser"
	"github.com/dhamidi/lojidoc/lint"
)

// ErrNoSources is returned when the input holds no .java files.
var ErrNoSources = errors.New("no java sources found")

// DefaultBookDir is where the mdBook is written when Options.BookDir is
// empty.
const DefaultBookDir = "markdown-book"

type Options struct {
	// Input is a directory or a single .java file.
	Input       string
	Destination string
	// Context is the repository URL used for source links.
	Context string
	// Book is the title of the mdBook to write. Empty disables book mode.
	Book    string
	BookDir string
	// BuildBook runs mdbook on the written book.
	BuildBook bool
	// Clean deletes the destination before writing.
	Clean       bool
	MultiThread bool
	ChunkSize   int
	// Workers bounds the number of concurrent chunks. Zero runs one
	// goroutine per chunk.
	Workers    int
	Exclude    []string
	Lint       bool
	OrphanDocs parser.OrphanPolicy
	Markdown   format.MarkdownOptions
	// DryRun parses and renders without writing anything.
	DryRun bool

	FS afs.Service
}

// FileError records a source file that could not be read.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

type Result struct {
	Project *java.Project
	Report  *lint.Report
	// Written lists the pages whose content changed.
	Written []string
	// Unchanged counts pages that already had the rendered content.
	Unchanged int
	Errors    []*FileError

	pages []page
}

type page struct {
	decl    java.Declaration
	content []byte
}

// chunkResult is owned by exactly one worker.
type chunkResult struct {
	project *java.Project
	report  *lint.Report
	pages   []page
	errors  []*FileError
}

// Run discovers, parses and renders every source below opts.Input.
func Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.FS == nil {
		opts.FS = afs.New()
	}
	files, err := Discover(ctx, opts.FS, opts.Input, opts.Exclude)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%s: %w", opts.Input, ErrNoSources)
	}

	result, err := process(ctx, files, opts)
	if err != nil {
		return nil, err
	}
	if opts.DryRun {
		return result, nil
	}

	if opts.Clean {
		if err := clean(ctx, opts.FS, opts.Destination); err != nil {
			return nil, err
		}
	}
	if err := writePages(ctx, opts, result); err != nil {
		return nil, err
	}
	return result, nil
}

// Lint parses every source below opts.Input with lint checks enabled and
// writes nothing.
func Lint(ctx context.Context, opts Options) (*Result, error) {
	opts.Lint = true
	opts.DryRun = true
	return Run(ctx, opts)
}

// process parses and renders files. In multi-thread mode every chunk is
// handled by its own worker, which fills the result slot with the chunk's
// index.
func process(ctx context.Context, files []string, opts Options) (*Result, error) {
	chunks := [][]string{files}
	workers := 1
	if opts.MultiThread {
		chunks = Chunks(files, opts.ChunkSize)
		workers = opts.Workers
	}

	results := make([]chunkResult, len(chunks))
	err := forEachChunk(ctx, chunks, workers, func(ctx context.Context, i int, chunk []string) error {
		log.Debugf("worker %d: %d files", i, len(chunk))
		results[i] = processChunk(ctx, chunk, opts)
		return ctx.Err()
	})
	if err != nil {
		return nil, err
	}

	result := &Result{Project: java.NewProject(), Report: lint.NewReport()}
	var pages []page
	for _, r := range results {
		for _, d := range r.project.All() {
			result.Project.Add(d)
		}
		result.Report.Merge(r.report)
		result.Errors = append(result.Errors, r.errors...)
		pages = append(pages, r.pages...)
	}
	result.pages = pages
	return result, nil
}

func processChunk(ctx context.Context, chunk []string, opts Options) chunkResult {
	r := chunkResult{project: java.NewProject(), report: lint.NewReport()}
	parseOpts := []parser.Option{parser.WithOrphanDocs(opts.OrphanDocs)}
	if opts.Lint {
		parseOpts = append(parseOpts, parser.WithLint())
	}

	for _, path := range chunk {
		if ctx.Err() != nil {
			return r
		}
		content, err := opts.FS.DownloadWithURL(ctx, path)
		if err != nil {
			log.Errorf("read %s: %s", path, err)
			r.errors = append(r.errors, &FileError{Path: path, Err: err})
			continue
		}
		if !utf8.Valid(content) {
			log.Warningf("%s is not valid UTF-8, replacing invalid bytes", path)
			content = bytes.ToValidUTF8(content, []byte(string(utf8.RuneError)))
		}

		decl, diags := parser.Parse(content, append(parseOpts, parser.WithFile(path))...)
		r.report.Add(path, diags)
		if java.IsEmpty(decl) {
			log.Infof("%s: no declaration found, skipping", path)
			continue
		}
		if opts.Context != "" {
			decl.Info().Source = java.ParseURLString(ResolveContext(path, opts.Context))
		}
		r.project.Add(decl)

		md, err := format.Markdown(decl, opts.Markdown)
		if err != nil {
			r.errors = append(r.errors, &FileError{Path: path, Err: err})
			continue
		}
		r.pages = append(r.pages, page{decl: decl, content: md})
	}
	return r
}

func clean(ctx context.Context, fs afs.Service, dest string) error {
	exists, err := fs.Exists(ctx, dest)
	if err != nil || !exists {
		return nil
	}
	log.Infof("removing %s", dest)
	if err := fs.Delete(ctx, dest); err != nil {
		return fmt.Errorf("clean %s: %w", dest, err)
	}
	return nil
}

// pageNames picks the file name of every page. Simple names shared by
// declarations from different packages are qualified with the package.
func pageNames(pages []page) []string {
	counts := map[string]int{}
	for _, p := range pages {
		counts[format.FileName(p.decl)]++
	}
	names := make([]string, len(pages))
	for i, p := range pages {
		name := format.FileName(p.decl)
		if counts[name] > 1 {
			name = p.decl.Info().QualifiedName() + ".md"
		}
		names[i] = name
	}
	return names
}

func writePages(ctx context.Context, opts Options, result *Result) error {
	names := pageNames(result.pages)
	var chapters []format.Chapter
	for i, p := range result.pages {
		target := url.Join(opts.Destination, names[i])
		changed, err := writeIfChanged(ctx, opts.FS, target, p.content)
		if err != nil {
			return err
		}
		if changed {
			result.Written = append(result.Written, target)
			log.Infof("%s was created", names[i])
		} else {
			result.Unchanged++
		}
		chapters = append(chapters, format.Chapter{
			Decl:    p.decl,
			Name:    strings.TrimSuffix(names[i], ".md"),
			File:    names[i],
			Content: p.content,
		})
	}

	if opts.Book == "" {
		return nil
	}
	bookDir := opts.BookDir
	if bookDir == "" {
		bookDir = DefaultBookDir
	}
	if err := format.WriteBook(ctx, opts.FS, bookDir, opts.Book, chapters); err != nil {
		return err
	}
	if !opts.BuildBook {
		return nil
	}
	if err := format.BuildBook(ctx, bookDir); err != nil {
		if errors.Is(err, format.ErrNoMdbook) {
			log.Warningf("book written to %s but not built: %s", bookDir, err)
			return nil
		}
		return err
	}
	return nil
}

// writeIfChanged uploads content unless the target already holds the same
// bytes. It reports whether anything was written.
func writeIfChanged(ctx context.Context, fs afs.Service, target string, content []byte) (bool, error) {
	if exists, _ := fs.Exists(ctx, target); exists {
		if old, err := fs.DownloadWithURL(ctx, target); err == nil && fingerprint.Sum(old) == fingerprint.Sum(content) {
			return false, nil
		}
	}
	if err := fs.Upload(ctx, target, file.DefaultFileOsMode, bytes.NewReader(content)); err != nil {
		return false, fmt.Errorf("write %s: %w", target, err)
	}
	return true, nil
}
