package config

import (
	"github.com/matzehuels/yaml2erd/pkg/document"
	"github.com/matzehuels/yaml2erd/pkg/schema"
)

// Top-level sections of the configuration tree.
const (
	KeyGlobal = "global_conf"
	KeyEntity = "entity_conf"
	KeyGroup  = "group_conf"
	KeyArrows = "arrow_map"
)

// customizableConf holds the defaults users may override key by key.
const customizableConf = `
global_conf:
  layout: fdp
  splines: ortho
  K: 5
entity_conf:
  shape: Mrecord
  fontname: Noto Sans CJK JP Black
  fontsize: 20
group_conf:
  shape: Mrecord
  fontname: Noto Sans CJK JP Black
  fontsize: 40
arrow_map:
  has_many: {arrowsize: 3, penwidth: 4, len: 10}
  has_one: {arrowsize: 3, penwidth: 4, len: 10}
`

// fixedConf is applied after user overrides. Arrowheads encode relation
// cardinality and overlap removal keeps labels readable, so neither may change.
const fixedConf = `
global_conf:
  overlap: false
  sep: "+1"
arrow_map:
  has_many: {arrowhead: crow, arrowtail: tee, dir: both}
  has_one: {arrowhead: tee, arrowtail: tee, dir: both}
`

// Defaults returns a fresh copy of the customizable default tree.
func Defaults() *document.Value {
	return document.MustParse(customizableConf)
}

// Fixed returns a fresh copy of the non-customizable tree.
func Fixed() *document.Value {
	return document.MustParse(fixedConf)
}

// Resolved is the final configuration of one run.
type Resolved struct {
	Global Attrs
	Entity Attrs
	Group  Attrs
	Arrows map[schema.RelationKind]Attrs

	// Tree is the merged tree the attributes were read from.
	Tree *document.Value
}

// Arrow returns the edge attributes for a relation kind.
func (r *Resolved) Arrow(kind schema.RelationKind) Attrs {
	return r.Arrows[kind]
}

// Layout returns the Graphviz layout engine named by global_conf.layout.
func (r *Resolved) Layout() string {
	v, _ := r.Global.Get("layout")
	return v
}

// Resolve merges a user tree (which may be nil) into the defaults and then
// applies the fixed overrides. Neither input is modified.
func Resolve(user *document.Value) *Resolved {
	tree := DeepMerge(MergeKeepStruct(Defaults(), user), Fixed())

	r := &Resolved{
		Global: attrsOf(tree, KeyGlobal),
		Entity: attrsOf(tree, KeyEntity),
		Group:  attrsOf(tree, KeyGroup),
		Arrows: make(map[schema.RelationKind]Attrs),
		Tree:   tree,
	}
	for _, kind := range []schema.RelationKind{schema.HasOne, schema.HasMany} {
		r.Arrows[kind] = attrsOf(tree, KeyArrows, string(kind))
	}
	return r
}

// MergeKeepStruct returns a copy of base with the leaves of input applied
// wherever input follows base's shape:
//
//   - keys missing from base are dropped;
//   - a mapping in input is merged into the mapping at the same key in base,
//     and dropped when base holds a leaf there (too deep);
//   - a leaf in input replaces a leaf in base, and is dropped when base holds
//     a mapping there (too shallow).
func MergeKeepStruct(base, input *document.Value) *document.Value {
	out := base.Clone()
	if !out.IsMapping() || !input.IsMapping() {
		return out
	}
	for _, e := range input.Entries {
		cur, ok := out.Get(e.Key)
		if !ok {
			continue
		}
		switch {
		case e.Value.IsMapping():
			if !cur.IsMapping() {
				continue
			}
			out.Set(e.Key, MergeKeepStruct(cur, e.Value))
		case cur.IsMapping():
			continue
		default:
			out.Set(e.Key, e.Value.Clone())
		}
	}
	return out
}

// DeepMerge returns a copy of base with every key of over applied on top.
// Nested mappings are merged recursively; anything else in over wins.
func DeepMerge(base, over *document.Value) *document.Value {
	if !over.IsMapping() {
		if over == nil {
			return base.Clone()
		}
		return over.Clone()
	}
	if !base.IsMapping() {
		return over.Clone()
	}
	out := base.Clone()
	for _, e := range over.Entries {
		cur, ok := out.Get(e.Key)
		if ok && cur.IsMapping() && e.Value.IsMapping() {
			out.Set(e.Key, DeepMerge(cur, e.Value))
			continue
		}
		out.Set(e.Key, e.Value.Clone())
	}
	return out
}

func attrsOf(tree *document.Value, path ...string) Attrs {
	v, ok := tree.Lookup(path...)
	if !ok || !v.IsMapping() {
		return nil
	}
	attrs := make(Attrs, 0, v.Len())
	for _, e := range v.Entries {
		if !e.Value.IsScalar() {
			continue
		}
		attrs = append(attrs, Attr{Key: e.Key, Value: e.Value.Text})
	}
	return attrs
}
