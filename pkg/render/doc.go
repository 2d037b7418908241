// Package render turns an ER diagram graph into Graphviz DOT text and renders
// it to image formats.
//
// # Overview
//
// Rendering happens in two steps:
//
//	dot := render.ToDOT(spec)
//	png, err := render.Render(ctx, dot, render.FormatPNG, render.Options{Layout: "fdp"})
//
// [ToDOT] is pure and deterministic: the same graph always yields the same
// text, which makes it the natural cache key input and debugging artifact.
// [Render] runs Graphviz in-process through go-graphviz for SVG, PNG and JPG.
// PDF output converts the SVG with the external rsvg-convert tool, and the
// DOT format returns the text unchanged.
//
// # Output Paths
//
// [FormatFromPath] picks a format from a file extension and [OutputPath]
// derives the default destination erd/<schema name>.<format> when no path is
// given.
package render
