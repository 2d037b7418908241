package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/yaml2erd/pkg/pipeline"
	"github.com/matzehuels/yaml2erd/pkg/render"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	config  string // diagram configuration file (YAML or TOML)
	output  string // output file; empty means erd/<schema name>.<format>
	format  string // png (default), svg, jpg, dot, pdf
	header  string // column header language: ja (default) or en
	refresh bool   // skip cache reads
	cache   cacheOpts
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [schema.yaml]",
		Short: "Draw an ER diagram from a YAML schema",
		Long: `Draw an ER diagram from a YAML schema.

The diagram is saved to erd/<schema name>.png unless --output is given.
The output format follows --format, then the output file extension.`,
		Example: `  yaml2erd render schema.yaml
  yaml2erd render schema.yaml -c erd.toml -o docs/erd.svg
  yaml2erd render schema.yaml -f dot --no-cache`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "diagram configuration file (YAML or TOML)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: erd/<schema>.<format>)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: "+formatNames())
	cmd.Flags().StringVar(&opts.header, "header", pipeline.DefaultHeader, "column header language: ja, en")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached diagrams and render again")
	cmd.Flags().BoolVar(&opts.cache.disabled, "no-cache", false, "disable the diagram cache")
	cmd.Flags().StringVar(&opts.cache.url, "cache-url", "", "redis URL of a shared diagram cache (env "+envRedisURL+")")

	return cmd
}

// runRender renders one schema and writes the diagram.
func (c *CLI) runRender(ctx context.Context, schemaPath string, opts renderOpts) error {
	runner := c.newRunner(ctx, opts.cache)
	defer runner.Close()

	prog := newProgress(c.Logger)
	result, err := runner.Execute(ctx, pipeline.Options{
		SchemaPath: schemaPath,
		ConfigPath: opts.config,
		OutputPath: opts.output,
		Format:     render.Format(opts.format),
		Header:     opts.header,
		Refresh:    opts.refresh,
		Logger:     c.Logger,
	})
	if err != nil {
		return err
	}

	if err := writeOutput(result.OutputPath, result.Artifact); err != nil {
		return err
	}
	prog.done("Rendered " + schemaPath)

	printSuccess("Rendered %s diagram", result.Format)
	printFile(result.OutputPath)
	printStats(result.Stats.TableCount, result.Stats.EdgeCount, result.Stats.GroupCount, result.CacheHit)
	return nil
}

func formatNames() string {
	names := make([]string, len(render.Formats))
	for i, f := range render.Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}
