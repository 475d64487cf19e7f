// Package config loads taskbatch settings from ~/.taskbatch/config.yaml
// (or $TASKBATCH_HOME/config.yaml), layered over built-in defaults and
// followed by environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/rshade/taskbatch/internal/actions"
	"github.com/rshade/taskbatch/internal/logging"
	"github.com/rshade/taskbatch/internal/pagination"
)

// Environment variables that override the config file.
const (
	EnvHome      = "TASKBATCH_HOME"
	EnvLogLevel  = "TASKBATCH_LOG_LEVEL"
	EnvLogFormat = "TASKBATCH_LOG_FORMAT"
	EnvPageSize  = "TASKBATCH_PAGE_SIZE"
	EnvFeed      = "TASKBATCH_FEED"
)

// Output formats for list and show commands.
const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

// configFileName is the name of the config file inside the config directory.
const configFileName = "config.yaml"

// Config errors.
var (
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrConfigExists  = errors.New("config file already exists")
)

// Config is the complete taskbatch configuration.
type Config struct {
	Output   OutputConfig   `yaml:"output"   json:"output"`
	Logging  LoggingConfig  `yaml:"logging"  json:"logging"`
	Catalog  CatalogConfig  `yaml:"catalog"  json:"catalog"`
	Feed     FeedConfig     `yaml:"feed"     json:"feed"`
	Dispatch DispatchConfig `yaml:"dispatch" json:"dispatch"`
}

// OutputConfig controls how commands print results.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" json:"default_format"`
}

// LoggingConfig controls the application logger.
type LoggingConfig struct {
	Level  string `yaml:"level"          json:"level"`
	Format string `yaml:"format"         json:"format"`
	File   string `yaml:"file,omitempty" json:"file,omitempty"`
}

// CatalogConfig controls the batch list.
type CatalogConfig struct {
	PageSize    int    `yaml:"page_size"              json:"page_size"`
	DefaultSort string `yaml:"default_sort,omitempty" json:"default_sort,omitempty"`
}

// FeedConfig says where batch data comes from. An empty path selects the
// built-in sample data.
type FeedConfig struct {
	Path string `yaml:"path,omitempty" json:"path,omitempty"`
}

// DispatchConfig controls the collaborators bulk actions are handed to.
type DispatchConfig struct {
	ExportDir         string `yaml:"export_dir"         json:"export_dir"`
	NotifyChunkSize   int    `yaml:"notify_chunk_size"  json:"notify_chunk_size"`
	NotifyConcurrency int    `yaml:"notify_concurrency" json:"notify_concurrency"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Output: OutputConfig{DefaultFormat: OutputTable},
		Logging: LoggingConfig{
			Level:  "info",
			Format: logging.FormatConsole,
		},
		Catalog: CatalogConfig{PageSize: pagination.DefaultPageSize},
		Dispatch: DispatchConfig{
			ExportDir:         "exports",
			NotifyChunkSize:   actions.DefaultChunkSize,
			NotifyConcurrency: 4,
		},
	}
}

// New returns the effective configuration. A config file that cannot be
// read or parsed is ignored, and so are environment overrides that leave
// the result invalid; use Load to see the error.
func New() *Config {
	cfg, err := Load()
	if err == nil {
		return cfg
	}
	cfg = Default()
	cfg.applyEnv()
	if cfg.Validate() != nil {
		return Default()
	}
	return cfg
}

// Load reads the config file, if any, over the defaults, applies
// environment overrides and validates the result.
func Load() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom is Load with an explicit config file path. A missing file is
// not an error.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()
	if _, statErr := os.Stat(path); statErr == nil {
		if err := ShallowMergeYAML(cfg, path); err != nil {
			return nil, err
		}
	} else if !errors.Is(statErr, os.ErrNotExist) {
		return nil, fmt.Errorf("checking config file: %w", statErr)
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// applyEnv overrides settings from the environment. Unparseable values
// are left for Validate to report.
func (c *Config) applyEnv() {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv(EnvPageSize); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Catalog.PageSize = n
		} else {
			c.Catalog.PageSize = -1
		}
	}
	if v := os.Getenv(EnvFeed); v != "" {
		c.Feed.Path = v
	}
}

// Validate checks every section.
func (c *Config) Validate() error {
	if !slices.Contains([]string{OutputTable, OutputJSON, OutputYAML}, c.Output.DefaultFormat) {
		return fmt.Errorf("%w: output.default_format %q", ErrInvalidConfig, c.Output.DefaultFormat)
	}
	if !slices.Contains([]string{logging.FormatConsole, logging.FormatJSON}, c.Logging.Format) {
		return fmt.Errorf("%w: logging.format %q", ErrInvalidConfig, c.Logging.Format)
	}
	if c.Catalog.PageSize < pagination.MinPageSize || c.Catalog.PageSize > pagination.MaxPageSize {
		return fmt.Errorf("%w: catalog.page_size %d (must be %d-%d)", ErrInvalidConfig,
			c.Catalog.PageSize, pagination.MinPageSize, pagination.MaxPageSize)
	}
	if c.Catalog.DefaultSort != "" {
		field, _, err := pagination.ParseSort(c.Catalog.DefaultSort)
		if err != nil {
			return fmt.Errorf("%w: catalog.default_sort: %w", ErrInvalidConfig, err)
		}
		if !pagination.NewBatchSorter().IsValidField(field) {
			return fmt.Errorf("%w: catalog.default_sort: %w: %q", ErrInvalidConfig, pagination.ErrInvalidSortField, field)
		}
	}
	if c.Dispatch.NotifyChunkSize < actions.MinChunkSize || c.Dispatch.NotifyChunkSize > actions.MaxChunkSize {
		return fmt.Errorf("%w: dispatch.notify_chunk_size %d", ErrInvalidConfig, c.Dispatch.NotifyChunkSize)
	}
	if c.Dispatch.NotifyConcurrency < 1 {
		return fmt.Errorf("%w: dispatch.notify_concurrency %d", ErrInvalidConfig, c.Dispatch.NotifyConcurrency)
	}
	return nil
}

// Save writes the configuration to path. An existing file is only
// replaced when overwrite is set.
func (c *Config) Save(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrConfigExists, path)
		}
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err = os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config file %s: %w", path, err)
	}
	return nil
}
