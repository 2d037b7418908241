// Package pkg provides the libraries behind yaml2erd, which draws
// entity-relationship diagrams from YAML schema files.
//
// # Overview
//
// A schema lists tables with their columns, relations and an optional group.
// yaml2erd turns each table into an HTML-labelled Graphviz node, each
// has_one/has_many relation into an edge and each group into a cluster.
//
// # Architecture
//
// The data flow:
//
//	schema.yaml            erd.toml / erd.yaml (optional)
//	     ↓                        ↓
//	[schema] package        [config] package (defaults + overrides + fixed)
//	     ↘                      ↙
//	        [erd] package (GraphSpec, labels, [idmap] identifiers)
//	             ↓
//	        [render] package (DOT → Graphviz → png/svg/jpg/pdf)
//
// [pipeline] runs these stages with an artifact [cache] in front of the
// render step. [introspect] goes the other way and writes a schema from a
// live database.
//
// # Quick Start
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    SchemaPath: "schema.yaml",
//	    Format:     render.FormatSVG,
//	})
//	if err != nil {
//	    return err
//	}
//	os.WriteFile(result.OutputPath, result.Artifact, 0o644)
//
// # Main Packages
//
// [document] - Order-preserving YAML tree shared by schemas and configuration.
//
// [schema] - Schema parsing: tables in document order, flattened columns,
// relations and the group registry.
//
// [config] - Graphviz attribute configuration. User overrides only replace
// existing leaves; arrowheads and overlap settings are fixed.
//
// [erd] - Diagram building: nodes, edges, subgraphs and entity labels.
//
// [render] - DOT emission, Graphviz rendering and output formats.
//
// [pipeline] - parse → build → render with caching, used by the CLI.
//
// [cache] - File, Redis and no-op artifact caches.
//
// [introspect] - MySQL, PostgreSQL and SQLite catalog readers.
//
// [observability] - Hooks for pipeline, cache and introspection events.
//
// [errors] - Coded errors shared by every package.
package pkg
