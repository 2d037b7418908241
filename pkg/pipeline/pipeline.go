// Package pipeline runs the schema → diagram pipeline shared by every CLI
// command.
//
// # Architecture
//
// A run has three stages:
//
//  1. Parse: read the schema file and the optional user configuration
//  2. Build: resolve the configuration and turn the schema into a graph
//  3. Render: emit DOT and lay it out with Graphviz in the requested format
//
// Rendered artifacts are cached by the content of the schema and
// configuration files plus the render options, so re-running on unchanged
// inputs skips Graphviz entirely.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    SchemaPath: "db/schema.yaml",
//	    ConfigPath: "db/erd.yaml",
//	    Format:     render.FormatSVG,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile(result.OutputPath, result.Artifact, 0o644)
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/yaml2erd/pkg/config"
	"github.com/matzehuels/yaml2erd/pkg/erd"
	"github.com/matzehuels/yaml2erd/pkg/errors"
	"github.com/matzehuels/yaml2erd/pkg/idmap"
	"github.com/matzehuels/yaml2erd/pkg/render"
	"github.com/matzehuels/yaml2erd/pkg/schema"
)

// TTLArtifact is how long a rendered diagram stays cached.
const TTLArtifact = 7 * 24 * time.Hour

// Header names accepted by Options.Header.
const (
	HeaderJapanese = "ja"
	HeaderEnglish  = "en"
)

// DefaultHeader is the column header language of entity labels.
const DefaultHeader = HeaderJapanese

var headers = map[string]erd.Header{
	HeaderJapanese: erd.DefaultHeader,
	HeaderEnglish:  erd.EnglishHeader,
}

// Options contains all configuration for one pipeline run.
type Options struct {
	// SchemaPath is the YAML schema to draw. Required.
	SchemaPath string

	// ConfigPath is an optional YAML or TOML diagram configuration.
	ConfigPath string

	// OutputPath is where the diagram is saved. Empty means
	// erd/<schema name>.<format>.
	OutputPath string

	// Format is the output format. Empty means the OutputPath extension,
	// falling back to png.
	Format render.Format

	// Header selects the column header language: "ja" (default) or "en".
	Header string

	// Refresh skips cache reads; the fresh result is still stored.
	Refresh bool

	Logger *log.Logger

	validated bool
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.SchemaPath == "" {
		return errors.New(errors.ErrCodeInvalidInput, "schema path is required")
	}

	if o.Format == "" {
		o.Format = render.FormatFromPath(o.OutputPath)
	}
	f, err := render.ParseFormat(string(o.Format))
	if err != nil {
		return err
	}
	o.Format = f

	if o.OutputPath != "" {
		if err := errors.ValidateOutputPath(o.OutputPath); err != nil {
			return err
		}
	}
	o.OutputPath = render.OutputPath(o.SchemaPath, o.OutputPath, o.Format)

	if o.Header == "" {
		o.Header = DefaultHeader
	}
	if _, ok := headers[o.Header]; !ok {
		return errors.New(errors.ErrCodeInvalidInput, "unknown header language %q (want ja or en)", o.Header)
	}

	o.validated = true
	return nil
}

func (o *Options) header() erd.Header {
	if h, ok := headers[o.Header]; ok {
		return h
	}
	return erd.DefaultHeader
}

// Diagram is the outcome of the parse and build stages.
type Diagram struct {
	Document *schema.Document
	Config   *config.Resolved
	IDs      *idmap.Map
	Spec     *erd.GraphSpec
	DOT      string

	// SchemaHash and ConfigHash are content hashes of the input files.
	SchemaHash string
	ConfigHash string
}

// Result contains the outputs of a full pipeline run.
type Result struct {
	Diagram

	// Artifact is the rendered diagram in Format.
	Artifact   []byte
	Format     render.Format
	OutputPath string

	Stats Stats

	// CacheHit reports whether Artifact came from the cache.
	CacheHit bool
}

// Stats contains pipeline execution statistics.
type Stats struct {
	TableCount int
	EdgeCount  int
	GroupCount int
	ParseTime  time.Duration
	BuildTime  time.Duration
	RenderTime time.Duration
}
