package pipeline

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/yaml2erd/pkg/cache"
	"github.com/matzehuels/yaml2erd/pkg/config"
	"github.com/matzehuels/yaml2erd/pkg/document"
	"github.com/matzehuels/yaml2erd/pkg/erd"
	"github.com/matzehuels/yaml2erd/pkg/errors"
	"github.com/matzehuels/yaml2erd/pkg/idmap"
	"github.com/matzehuels/yaml2erd/pkg/observability"
	"github.com/matzehuels/yaml2erd/pkg/render"
	"github.com/matzehuels/yaml2erd/pkg/schema"
)

const artifactKeyType = "artifact"

// Runner executes the pipeline with caching. It holds no per-run state, so
// one Runner may serve concurrent runs with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil keyer means [cache.DefaultKeyer], a nil
// cache disables caching and a nil logger means log.Default().
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs parse → build → render.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	d, stats, err := r.build(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Diagram:    *d,
		Format:     opts.Format,
		OutputPath: opts.OutputPath,
		Stats:      stats,
	}

	renderStart := time.Now()
	artifact, hit, err := r.RenderWithCacheInfo(ctx, d, opts)
	if err != nil {
		return nil, err
	}
	result.Artifact = artifact
	result.CacheHit = hit
	result.Stats.RenderTime = time.Since(renderStart)

	opts.Logger.Info("rendered diagram",
		"format", opts.Format,
		"bytes", len(artifact),
		"cached", hit,
		"duration", result.Stats.RenderTime)
	return result, nil
}

// Build runs the parse and build stages only.
func (r *Runner) Build(ctx context.Context, opts Options) (*Diagram, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	d, _, err := r.build(ctx, opts)
	return d, err
}

func (r *Runner) build(ctx context.Context, opts Options) (*Diagram, Stats, error) {
	var stats Stats
	hooks := observability.Pipeline()

	parseStart := time.Now()
	hooks.OnParseStart(ctx, opts.SchemaPath)
	doc, user, d, err := r.parse(opts)
	stats.ParseTime = time.Since(parseStart)
	tables := 0
	if doc != nil {
		tables = len(doc.Tables)
	}
	hooks.OnParseComplete(ctx, opts.SchemaPath, tables, stats.ParseTime, err)
	if err != nil {
		return nil, stats, err
	}
	stats.TableCount = len(doc.Tables)
	stats.GroupCount = len(doc.Groups)

	opts.Logger.Info("parsed schema",
		"tables", stats.TableCount,
		"groups", stats.GroupCount,
		"duration", stats.ParseTime)

	buildStart := time.Now()
	hooks.OnBuildStart(ctx, stats.TableCount)
	d.Document = doc
	d.Config = config.Resolve(user)
	d.IDs = idmap.New()
	d.Spec, err = erd.Build(doc, d.IDs, d.Config, erd.WithHeader(opts.header()))
	stats.BuildTime = time.Since(buildStart)
	if err != nil {
		hooks.OnBuildComplete(ctx, 0, 0, stats.BuildTime, err)
		return nil, stats, err
	}
	d.DOT = render.ToDOT(d.Spec)
	stats.EdgeCount = len(d.Spec.Edges)
	hooks.OnBuildComplete(ctx, len(d.Spec.Nodes), stats.EdgeCount, stats.BuildTime, nil)

	for _, target := range d.Spec.Undeclared {
		opts.Logger.Warn("relation target is not a table in the schema", "target", target)
	}
	opts.Logger.Debug("built graph",
		"nodes", len(d.Spec.Nodes),
		"edges", stats.EdgeCount,
		"layout", d.Config.Layout(),
		"duration", stats.BuildTime)
	return d, stats, nil
}

func (r *Runner) parse(opts Options) (*schema.Document, *document.Value, *Diagram, error) {
	schemaData, err := readInput(opts.SchemaPath, "schema", errors.ErrCodeInvalidInput)
	if err != nil {
		return nil, nil, nil, err
	}
	doc, err := schema.ParseBytes(schemaData)
	if err != nil {
		return nil, nil, nil, err
	}

	d := &Diagram{SchemaHash: cache.Hash(schemaData)}
	if opts.ConfigPath == "" {
		return doc, nil, d, nil
	}

	configData, err := readInput(opts.ConfigPath, "config", errors.ErrCodeInvalidConfig)
	if err != nil {
		return nil, nil, nil, err
	}
	user, err := config.Parse(opts.ConfigPath, configData)
	if err != nil {
		return nil, nil, nil, err
	}
	d.ConfigHash = cache.Hash(configData)
	return doc, user, d, nil
}

// RenderWithCacheInfo renders a built diagram, reading and writing the cache.
// Cache failures are logged and never fail the render.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, d *Diagram, opts Options) ([]byte, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	layout := d.Config.Layout()
	header := opts.header()
	key := r.Keyer.ArtifactKey(d.SchemaHash, cache.ArtifactKeyOpts{
		ConfigHash: d.ConfigHash,
		Format:     string(opts.Format),
		Layout:     layout,
		Header:     strings.Join(header[:], "|"),
	})
	cacheHooks := observability.Cache()

	if !opts.Refresh {
		data, hit, err := r.Cache.Get(ctx, key)
		switch {
		case err != nil:
			opts.Logger.Warn("cache read failed", "err", err)
		case hit:
			cacheHooks.OnCacheHit(ctx, artifactKeyType)
			return data, true, nil
		default:
			cacheHooks.OnCacheMiss(ctx, artifactKeyType)
		}
	}

	hooks := observability.Pipeline()
	start := time.Now()
	hooks.OnRenderStart(ctx, string(opts.Format))
	data, err := render.Render(ctx, d.DOT, opts.Format, render.Options{Layout: layout})
	hooks.OnRenderComplete(ctx, string(opts.Format), len(data), time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	if err := r.Cache.Set(ctx, key, data, TTLArtifact); err != nil {
		opts.Logger.Warn("cache write failed", "err", err)
	} else {
		cacheHooks.OnCacheSet(ctx, artifactKeyType, len(data))
	}
	return data, false, nil
}

// ResolveConfig loads an optional configuration file and resolves it
// against the defaults.
func (r *Runner) ResolveConfig(path string) (*config.Resolved, error) {
	user, err := config.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return config.Resolve(user), nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func readInput(path, what string, readCode errors.Code) ([]byte, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "%s file %s", what, path)
	}
	if err != nil {
		return nil, errors.Wrap(readCode, err, "read %s file %s", what, path)
	}
	return data, nil
}
