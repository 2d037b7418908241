// Package cli implements the yaml2erd command-line interface.
//
// # Commands
//
//   - render: draw an ER diagram from a YAML schema
//   - inspect: summarize the tables, relations and groups of a schema
//   - config: print the resolved diagram configuration
//   - import: generate a schema from a live MySQL, PostgreSQL or SQLite database
//   - cache: manage the rendered-diagram cache
//   - completion: generate shell completion scripts
//
// # Logging
//
// All commands log through a charmbracelet/log logger on stderr. The root
// command's --verbose (-v) flag lowers the level to debug.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/yaml2erd/pkg/buildinfo"
	"github.com/matzehuels/yaml2erd/pkg/cache"
	"github.com/matzehuels/yaml2erd/pkg/pipeline"
)

const (
	// appName is the application name used for directories and display.
	appName = "yaml2erd"

	// envRedisURL selects a shared Redis cache instead of the local file cache.
	envRedisURL = "YAML2ERD_REDIS_URL"

	// envCachePrefix scopes keys in a shared Redis cache.
	envCachePrefix = "YAML2ERD_CACHE_PREFIX"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a logger writing to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "yaml2erd draws ER diagrams from YAML schema files",
		Long:         `yaml2erd reads a YAML description of database tables, columns and relations and renders it as an entity-relationship diagram with Graphviz.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.importCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// cacheOpts selects the cache backend of a run.
type cacheOpts struct {
	disabled bool   // --no-cache
	url      string // --cache-url; empty falls back to YAML2ERD_REDIS_URL
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, opts cacheOpts) *pipeline.Runner {
	ch, keyer := c.newCache(ctx, opts)
	return pipeline.NewRunner(ch, keyer, c.Logger)
}

// newCache picks the cache backend: none when disabled, Redis when a URL is
// given, otherwise files under the user cache directory. A cache that cannot
// be set up degrades to no caching.
func (c *CLI) newCache(ctx context.Context, opts cacheOpts) (cache.Cache, cache.Keyer) {
	if opts.disabled {
		return cache.NewNullCache(), nil
	}

	url := opts.url
	if url == "" {
		url = os.Getenv(envRedisURL)
	}
	if url != "" {
		rc, err := cache.NewRedisCache(ctx, url, appName+":")
		if err != nil {
			c.Logger.Warn("redis cache unavailable, caching disabled", "err", err)
			return cache.NewNullCache(), nil
		}
		var keyer cache.Keyer
		if prefix := os.Getenv(envCachePrefix); prefix != "" {
			keyer = cache.NewScopedKeyer(nil, prefix)
		}
		c.Logger.Debug("using redis cache")
		return rc, keyer
	}

	dir, err := cacheDir()
	if err != nil {
		c.Logger.Warn("no cache directory, caching disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Warn("file cache unavailable, caching disabled", "dir", dir, "err", err)
		return cache.NewNullCache(), nil
	}
	c.Logger.Debug("using file cache", "dir", dir)
	return fc, nil
}

// cacheDir returns the cache directory using XDG standard (~/.cache/yaml2erd/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// writeOutput writes data to path, creating parent directories.
func writeOutput(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}
