// Package erd builds entity-relationship graph specifications.
//
// [Build] walks the tables of a parsed schema in declaration order and
// produces a [GraphSpec]:
//
//   - one [Node] per table, labelled with an HTML-like table listing the
//     table's columns (see [Label]);
//   - one [Edge] per has_one or has_many relation, styled by relation kind.
//     belongs_to is the inverse side of those and draws nothing;
//   - one [Subgraph] per group, containing the group's tables.
//
// Tables are referenced through identifiers from [idmap.Map] so that edge
// identifiers ("1_2") stay unambiguous whatever the table names contain.
//
//	ids := idmap.New()
//	spec, err := erd.Build(doc, ids, config.Resolve(nil))
//
// The resulting spec is rendered by the render package.
//
// [idmap.Map]: github.com/matzehuels/yaml2erd/pkg/idmap.Map
package erd
