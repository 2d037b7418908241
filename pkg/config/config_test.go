package config

import (
	"testing"

	"github.com/matzehuels/yaml2erd/pkg/document"
	"github.com/matzehuels/yaml2erd/pkg/schema"
)

func mustYAML(t *testing.T, src string) *document.Value {
	t.Helper()
	v, err := ParseYAML([]byte(src))
	if err != nil {
		t.Fatalf("ParseYAML() error: %v", err)
	}
	return v
}

func TestResolve_NoUserConfig(t *testing.T) {
	r := Resolve(nil)

	if got, _ := r.Entity.Get("shape"); got != "Mrecord" {
		t.Errorf("entity shape = %q, want Mrecord", got)
	}
	if got := r.Layout(); got != "fdp" {
		t.Errorf("Layout() = %q, want fdp", got)
	}
	if got, _ := r.Global.Get("overlap"); got != "false" {
		t.Errorf("global overlap = %q, want false", got)
	}
	if got, _ := r.Global.Get("sep"); got != "+1" {
		t.Errorf("global sep = %q, want +1", got)
	}
	if got, _ := r.Arrow(schema.HasMany).Get("arrowhead"); got != "crow" {
		t.Errorf("has_many arrowhead = %q, want crow", got)
	}
	if got, _ := r.Arrow(schema.HasOne).Get("arrowhead"); got != "tee" {
		t.Errorf("has_one arrowhead = %q, want tee", got)
	}
	if r.Arrow(schema.BelongsTo) != nil {
		t.Error("belongs_to should have no arrow style")
	}
}

func TestResolve_EntityOverride(t *testing.T) {
	user := mustYAML(t, `entity_conf: {fontsize: 99, unknown_key: "x"}`)
	r := Resolve(user)

	if got, _ := r.Entity.Get("fontsize"); got != "99" {
		t.Errorf("fontsize = %q, want 99", got)
	}
	if got, _ := r.Entity.Get("shape"); got != "Mrecord" {
		t.Errorf("shape = %q, want Mrecord", got)
	}
	if got, _ := r.Entity.Get("fontname"); got != "Noto Sans CJK JP Black" {
		t.Errorf("fontname = %q, want default", got)
	}
	if _, ok := r.Entity.Get("unknown_key"); ok {
		t.Error("unknown_key should be dropped")
	}
	want := []string{"shape", "fontname", "fontsize"}
	for i, attr := range r.Entity {
		if attr.Key != want[i] {
			t.Errorf("Entity[%d] = %q, want %q (default order)", i, attr.Key, want[i])
		}
	}
}

func TestResolve_FixedWins(t *testing.T) {
	user := mustYAML(t, `
global_conf: {overlap: true, sep: "+20", splines: curved}
arrow_map:
  has_many: {arrowhead: normal, penwidth: 1}
  has_one: {dir: forward}
`)
	r := Resolve(user)

	checks := []struct {
		attrs Attrs
		key   string
		want  string
	}{
		{r.Global, "overlap", "false"},
		{r.Global, "sep", "+1"},
		{r.Global, "splines", "curved"},
		{r.Arrow(schema.HasMany), "arrowhead", "crow"},
		{r.Arrow(schema.HasMany), "penwidth", "1"},
		{r.Arrow(schema.HasOne), "dir", "both"},
	}
	for _, c := range checks {
		if got, _ := c.attrs.Get(c.key); got != c.want {
			t.Errorf("%s = %q, want %q", c.key, got, c.want)
		}
	}
}

func TestResolve_DoesNotAliasDefaults(t *testing.T) {
	Resolve(mustYAML(t, `entity_conf: {fontsize: 1}`))
	r := Resolve(nil)
	if got, _ := r.Entity.Get("fontsize"); got != "20" {
		t.Errorf("second resolution sees earlier override: fontsize = %q", got)
	}
}

func TestMergeKeepStruct_ShapeMismatch(t *testing.T) {
	tests := []struct {
		name string
		user string
	}{
		{"leaf over mapping", `entity_conf: big`},
		{"mapping over leaf", `entity_conf: {fontsize: {value: 3}}`},
		{"sequence over mapping", `arrow_map: [has_one]`},
		{"unknown section", `edge_conf: {color: red}`},
		{"deep unknown", `arrow_map: {belongs_to: {color: red}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			merged := MergeKeepStruct(Defaults(), mustYAML(t, tt.user))
			if !document.Equal(merged, Defaults()) {
				out, _ := document.Encode(merged)
				t.Errorf("shape-mismatched override changed the tree:\n%s", out)
			}
		})
	}
}

func TestMergeKeepStruct_NeverAddsKeys(t *testing.T) {
	user := mustYAML(t, `
global_conf: {rankdir: LR, layout: dot}
entity_conf: {color: red}
group_conf: {style: filled}
arrow_map: {has_one: {color: blue, len: 4}, has_many: {}}
extra: 1
`)
	merged := MergeKeepStruct(Defaults(), user)
	assertSameShape(t, Defaults(), merged, "")

	if got, _ := merged.Lookup(KeyGlobal, "layout"); got.Str() != "dot" {
		t.Errorf("layout = %q, want dot", got.Str())
	}
	if got, _ := merged.Lookup(KeyArrows, "has_one", "len"); got.Str() != "4" {
		t.Errorf("has_one len = %q, want 4", got.Str())
	}
}

func assertSameShape(t *testing.T, want, got *document.Value, path string) {
	t.Helper()
	if want.IsMapping() != got.IsMapping() {
		t.Fatalf("%s: shape changed", path)
	}
	if !want.IsMapping() {
		return
	}
	if len(want.Entries) != len(got.Entries) {
		t.Fatalf("%s: keys %v, want %v", path, got.Keys(), want.Keys())
	}
	for i, e := range want.Entries {
		if got.Entries[i].Key != e.Key {
			t.Fatalf("%s: key %d = %q, want %q", path, i, got.Entries[i].Key, e.Key)
		}
		assertSameShape(t, e.Value, got.Entries[i].Value, path+"."+e.Key)
	}
}

func TestMergeKeepStruct_Idempotent(t *testing.T) {
	users := []string{
		`entity_conf: {fontsize: 99, unknown_key: "x"}`,
		`global_conf: {K: 2}
arrow_map: {has_many: {penwidth: 9}}`,
		`group_conf: flat`,
		`{}`,
	}
	for _, src := range users {
		u := mustYAML(t, src)
		once := MergeKeepStruct(Defaults(), u)
		twice := MergeKeepStruct(once, u)
		if !document.Equal(once, twice) {
			t.Errorf("MergeKeepStruct not idempotent for %q", src)
		}
	}
}

func TestMergeKeepStruct_DoesNotMutateInputs(t *testing.T) {
	base := Defaults()
	user := mustYAML(t, `entity_conf: {fontsize: 99}`)
	MergeKeepStruct(base, user)
	if got, _ := base.Lookup(KeyEntity, "fontsize"); got.Str() != "20" {
		t.Errorf("base mutated: fontsize = %q", got.Str())
	}
}

func TestDeepMerge(t *testing.T) {
	base := mustYAML(t, `a: {b: 1, c: 2}
d: 3`)
	over := mustYAML(t, `a: {c: 20, e: 5}
d: {nested: true}
f: 6`)
	got := DeepMerge(base, over)
	want := mustYAML(t, `a: {b: 1, c: 20, e: 5}
d: {nested: true}
f: 6`)
	if !document.Equal(got, want) {
		out, _ := document.Encode(got)
		t.Errorf("DeepMerge() =\n%s", out)
	}
	if DeepMerge(base, nil) == base {
		t.Error("DeepMerge(base, nil) should return a copy")
	}
}

func TestAttrsWith(t *testing.T) {
	a := Attrs{{"shape", "box"}, {"color", "red"}}
	b := a.With("color", "blue").With("label", "x")

	if got, _ := a.Get("color"); got != "red" {
		t.Errorf("With() mutated receiver: color = %q", got)
	}
	if len(b) != 3 || b[1].Value != "blue" || b[2].Key != "label" {
		t.Errorf("With() = %v", b)
	}
	if m := b.Map(); m["label"] != "x" || len(m) != 3 {
		t.Errorf("Map() = %v", m)
	}
}
