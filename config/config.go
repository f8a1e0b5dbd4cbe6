// Package config loads the optional .lojidoc.yaml project file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/dhamidi/lojidoc/java"
	"github.com/dhamidi/lojidoc/java/parser"
)

// FileName is the name of the configuration file.
const FileName = ".lojidoc.yaml"

// DefaultChunkSize is the number of files handed to one worker in
// multi-thread mode.
const DefaultChunkSize = 4

// Config holds the generator settings. Command-line flags override it.
type Config struct {
	// Destination is the directory markdown is written to.
	Destination string `yaml:"destination"`
	// Context is the repository URL source links are built from, e.g.
	// "https://github.com/user/repo/blob/main".
	Context string `yaml:"context"`
	// Book is the title of the mdBook to generate. Empty disables book mode.
	Book        string   `yaml:"book"`
	Ignore      string   `yaml:"ignore"`
	Signatures  bool     `yaml:"signatures"`
	MultiThread bool     `yaml:"multi_thread"`
	ChunkSize   int      `yaml:"chunk_size"`
	Workers     int      `yaml:"workers"`
	Exclude     []string `yaml:"exclude"`
	OrphanDocs  string   `yaml:"orphan_docs"`
	Lint        bool     `yaml:"lint"`
}

// ErrConfigNotFound is returned when no config file can be found
var ErrConfigNotFound = errors.New("config file not found")

// ErrInvalidConfig is returned when config validation fails
var ErrInvalidConfig = errors.New("invalid configuration")

func DefaultConfig() *Config {
	return &Config{
		Destination: "generated",
		ChunkSize:   DefaultChunkSize,
		OrphanDocs:  parser.OrphanDiscard.String(),
	}
}

// Load reads the config file found by walking up from workDir, falling back
// to defaults when there is none.
func Load(workDir string) (*Config, error) {
	configDir, err := FindConfigDir(workDir)
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFromPath(filepath.Join(configDir, FileName))
}

// LoadFromPath reads config from a specific path.
// Merges loaded config with defaults and validates the result.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	loaded := &Config{}
	if err := yaml.Unmarshal(data, loaded); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	merged := Merge(loaded, DefaultConfig())
	if err := Validate(merged); err != nil {
		return nil, err
	}
	return merged, nil
}

// FindConfigDir returns the nearest directory at or above startDir that
// holds a config file.
func FindConfigDir(startDir string) (string, error) {
	absDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	currentDir := absDir
	for {
		info, err := os.Stat(filepath.Join(currentDir, FileName))
		if err == nil && !info.IsDir() {
			return currentDir, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", ErrConfigNotFound
		}
		currentDir = parentDir
	}
}

// Merge fills the zero-valued fields of loaded from defaults. Boolean fields
// are taken from loaded as is.
func Merge(loaded, defaults *Config) *Config {
	result := *loaded
	if result.Destination == "" {
		result.Destination = defaults.Destination
	}
	if result.Context == "" {
		result.Context = defaults.Context
	}
	if result.Book == "" {
		result.Book = defaults.Book
	}
	if result.Ignore == "" {
		result.Ignore = defaults.Ignore
	}
	if result.ChunkSize == 0 {
		result.ChunkSize = defaults.ChunkSize
	}
	if result.Workers == 0 {
		result.Workers = defaults.Workers
	}
	if len(result.Exclude) == 0 {
		result.Exclude = defaults.Exclude
	}
	if result.OrphanDocs == "" {
		result.OrphanDocs = defaults.OrphanDocs
	}
	return &result
}

// Validate checks that config values are valid.
func Validate(cfg *Config) error {
	if cfg.Ignore != "" {
		if _, ok := java.ParseAccess(cfg.Ignore); !ok {
			return fmt.Errorf("%w: ignore must be one of public, protected, private, package-private, got %q",
				ErrInvalidConfig, cfg.Ignore)
		}
	}
	if cfg.ChunkSize <= 0 {
		return fmt.Errorf("%w: chunk_size must be positive, got %d",
			ErrInvalidConfig, cfg.ChunkSize)
	}
	if cfg.Workers < 0 {
		return fmt.Errorf("%w: workers must be non-negative, got %d",
			ErrInvalidConfig, cfg.Workers)
	}
	if _, err := parser.ParseOrphanPolicy(cfg.OrphanDocs); err != nil {
		return fmt.Errorf("%w: orphan_docs: %v", ErrInvalidConfig, err)
	}
	return nil
}

// IgnoredAccess returns the access levels whose members are omitted from the
// rendered pages.
func (c *Config) IgnoredAccess() []java.Access {
	if c.Ignore == "" {
		return nil
	}
	a, ok := java.ParseAccess(c.Ignore)
	if !ok {
		return nil
	}
	return []java.Access{a}
}
