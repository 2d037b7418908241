// Package config resolves the diagram configuration of a run.
//
// The configuration tree has a fixed shape with four sections: global_conf
// (graph attributes), entity_conf (node attributes), group_conf (cluster
// attributes) and arrow_map (edge attributes per relation kind). It is built
// from three layers:
//
//  1. compiled-in customizable defaults ([Defaults]);
//  2. an optional user document, merged with [MergeKeepStruct] so that only
//     leaves already present in the defaults can change;
//  3. compiled-in fixed overrides ([Fixed]), merged last with [DeepMerge].
//
// Unknown keys in the user document never reach Graphviz, and attributes
// that carry meaning (arrowheads per relation kind) cannot be altered.
//
//	user, err := config.LoadFile("erd.conf.yml")
//	conf := config.Resolve(user)
//	conf.Arrow(schema.HasMany) // arrowsize, penwidth, len, arrowhead=crow, ...
package config
