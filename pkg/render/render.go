package render

import (
	"bytes"
	"context"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/yaml2erd/pkg/errors"
)

// DefaultLayout is the engine used when the configuration names none.
const DefaultLayout = "fdp"

// Options configures [Render].
type Options struct {
	// Layout is the Graphviz layout engine. Empty means [DefaultLayout].
	Layout string
}

func (o Options) layout() string {
	if o.Layout == "" {
		return DefaultLayout
	}
	return o.Layout
}

// Render lays out DOT text and encodes it in the requested format.
func Render(ctx context.Context, dot string, format Format, opts Options) ([]byte, error) {
	if err := ValidateLayout(opts.layout()); err != nil {
		return nil, err
	}

	switch format {
	case FormatDOT:
		return []byte(dot), nil
	case FormatSVG:
		return renderGraphviz(ctx, dot, graphviz.SVG, opts)
	case FormatPNG:
		return renderGraphviz(ctx, dot, graphviz.PNG, opts)
	case FormatJPG:
		return renderGraphviz(ctx, dot, graphviz.JPG, opts)
	case FormatPDF:
		svg, err := renderGraphviz(ctx, dot, graphviz.SVG, opts)
		if err != nil {
			return nil, err
		}
		return ToPDF(ctx, svg)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown output format %q", format)
	}
}

func renderGraphviz(ctx context.Context, dot string, format graphviz.Format, opts Options) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "init graphviz")
	}
	defer gv.Close()
	gv.SetLayout(graphviz.Layout(opts.layout()))

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "render %s", format)
	}
	return buf.Bytes(), nil
}
