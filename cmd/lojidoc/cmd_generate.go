package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/dhamidi/lojidoc/config"
	"github.com/dhamidi/lojidoc/format"
	"github.com/dhamidi/lojidoc/generator"
	"github.com/dhamidi/lojidoc/java/codebase"
	"github.com/dhamidi/lojidoc/java/parser"
)

// generateFlags holds the flags shared by generate, book and lint. Values
// from .lojidoc.yaml apply unless the flag was given.
type generateFlags struct {
	configPath  string
	destination string
	context     string
	book        string
	bookDir     string
	ignore      string
	exclude     []string
	orphanDocs  string
	chunkSize   int
	workers     int
	signatures  bool
	multiThread bool
	lint        bool
	clean       bool
}

func (f *generateFlags) register(flags *pflag.FlagSet) {
	flags.StringVar(&f.configPath, "config", "", "config file (default: nearest "+config.FileName+")")
	flags.StringVarP(&f.destination, "dest", "d", "", "destination directory for markdown")
	flags.StringVarP(&f.context, "context", "c", "", "repository URL used for source links")
	flags.StringVar(&f.bookDir, "book-dir", generator.DefaultBookDir, "directory the mdBook is written to")
	flags.StringVar(&f.ignore, "ignore", "", "omit members and methods with this access level")
	flags.StringSliceVar(&f.exclude, "exclude", nil, "gitignore-style patterns of sources to skip")
	flags.StringVar(&f.orphanDocs, "orphan-docs", "", "doc comments not followed by a declaration: discard, report or merge")
	flags.IntVar(&f.chunkSize, "chunk-size", 0, "files per worker in multi-thread mode")
	flags.IntVar(&f.workers, "workers", 0, "maximum concurrent workers (0: one per chunk)")
	flags.BoolVarP(&f.signatures, "signatures", "s", false, "include declaration signatures")
	flags.BoolVarP(&f.multiThread, "multi-thread", "m", false, "parse files concurrently in chunks")
	flags.BoolVarP(&f.lint, "lint", "l", false, "report missing documentation")
	flags.BoolVar(&f.clean, "clean", false, "delete the destination before writing")
}

func (f *generateFlags) load(flags *pflag.FlagSet, input string) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if f.configPath != "" {
		cfg, err = config.LoadFromPath(f.configPath)
	} else {
		dir := input
		if info, statErr := os.Stat(input); statErr == nil && !info.IsDir() {
			dir = filepath.Dir(input)
		}
		cfg, err = config.Load(dir)
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if flags.Changed("dest") {
		cfg.Destination = f.destination
	}
	if flags.Changed("context") {
		cfg.Context = f.context
	}
	if flags.Changed("book") {
		cfg.Book = f.book
	}
	if flags.Changed("ignore") {
		cfg.Ignore = f.ignore
	}
	if flags.Changed("exclude") {
		cfg.Exclude = f.exclude
	}
	if flags.Changed("orphan-docs") {
		cfg.OrphanDocs = f.orphanDocs
	}
	if flags.Changed("chunk-size") {
		cfg.ChunkSize = f.chunkSize
	}
	if flags.Changed("workers") {
		cfg.Workers = f.workers
	}
	if flags.Changed("signatures") {
		cfg.Signatures = f.signatures
	}
	if flags.Changed("multi-thread") {
		cfg.MultiThread = f.multiThread
	}
	if flags.Changed("lint") {
		cfg.Lint = f.lint
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (f *generateFlags) options(cfg *config.Config, input string) (generator.Options, error) {
	policy, err := parser.ParseOrphanPolicy(cfg.OrphanDocs)
	if err != nil {
		return generator.Options{}, err
	}
	return generator.Options{
		Input:       input,
		Destination: cfg.Destination,
		Context:     cfg.Context,
		Book:        cfg.Book,
		BookDir:     f.bookDir,
		Clean:       f.clean,
		MultiThread: cfg.MultiThread,
		ChunkSize:   cfg.ChunkSize,
		Workers:     cfg.Workers,
		Exclude:     cfg.Exclude,
		Lint:        cfg.Lint,
		OrphanDocs:  policy,
		Markdown: format.MarkdownOptions{
			IncludeSignatures: cfg.Signatures,
			Ignore:            cfg.IgnoredAccess(),
		},
	}, nil
}

func inputArg(args []string) string {
	if len(args) == 0 {
		return "."
	}
	return args[0]
}

func newGenerateCmd() *cobra.Command {
	var flags generateFlags
	var watch bool

	cmd := &cobra.Command{
		Use:   "generate [dir]",
		Short: "Write one markdown page per Java type",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := inputArg(args)
			cfg, err := flags.load(cmd.Flags(), input)
			if err != nil {
				return err
			}
			opts, err := flags.options(cfg, input)
			if err != nil {
				return err
			}
			if err := generate(cmd.Context(), opts); err != nil {
				return err
			}
			if !watch {
				return nil
			}
			return watchAndGenerate(cmd.Context(), opts)
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().StringVarP(&flags.book, "book", "b", "", "also write an mdBook with this title")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "regenerate when sources change")

	return cmd
}

func generate(ctx context.Context, opts generator.Options) error {
	start := time.Now()
	result, err := generator.Run(ctx, opts)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}
	for _, fe := range result.Errors {
		fmt.Fprintf(os.Stderr, "error: %s\n", fe)
	}
	if opts.Lint {
		if err := result.Report.WriteText(os.Stdout); err != nil {
			return err
		}
	}
	fmt.Printf("Documentation finished in %s. Generated %d markdown files, %d unchanged.\n",
		time.Since(start).Round(time.Millisecond), len(result.Written), result.Unchanged)
	if len(result.Errors) > 0 {
		return fmt.Errorf("generate: %d files could not be read", len(result.Errors))
	}
	return nil
}

func watchAndGenerate(ctx context.Context, opts generator.Options) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := opts.Input
	if info, err := os.Stat(root); err == nil && !info.IsDir() {
		root = filepath.Dir(root)
	}
	watcher := codebase.NewFileWatcher(codebase.New(root), time.Second)
	watcher.OnChange = func(changed []string) {
		fmt.Printf("%d files changed, regenerating\n", len(changed))
		opts.Clean = false
		if err := generate(ctx, opts); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}
	watcher.Start()
	defer watcher.Stop()

	fmt.Printf("Watching %s for changes\n", root)
	<-ctx.Done()
	return nil
}
