package document

import (
	"strings"
	"testing"
)

func TestParse_PreservesMappingOrder(t *testing.T) {
	v, err := Parse([]byte("zeta: 1\nalpha: 2\nmid: 3\n"))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	got := strings.Join(v.Keys(), ",")
	if got != "zeta,alpha,mid" {
		t.Errorf("Keys() = %q, want %q", got, "zeta,alpha,mid")
	}
}

func TestParse_Kinds(t *testing.T) {
	v, err := Parse([]byte(`
map: {a: 1}
seq: [1, 2]
str: hello
nothing: ~
`))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	tests := []struct {
		key  string
		want Kind
	}{
		{"map", KindMapping},
		{"seq", KindSequence},
		{"str", KindScalar},
		{"nothing", KindNull},
	}
	for _, tt := range tests {
		child, ok := v.Get(tt.key)
		if !ok {
			t.Fatalf("Get(%q) missing", tt.key)
		}
		if child.kind() != tt.want {
			t.Errorf("Get(%q).Kind = %s, want %s", tt.key, child.kind(), tt.want)
		}
	}
}

func TestParse_Empty(t *testing.T) {
	v, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse(nil) error: %v", err)
	}
	if !v.IsNull() {
		t.Errorf("Parse(nil) kind = %s, want null", v.Kind)
	}
}

func TestParse_Invalid(t *testing.T) {
	if _, err := Parse([]byte("a: [1, 2")); err == nil {
		t.Error("Parse() expected error for unterminated flow sequence")
	}
}

func TestParse_DuplicateKey(t *testing.T) {
	if _, err := Parse([]byte("a: 1\na: 2\n")); err == nil {
		t.Error("Parse() expected error for duplicate key")
	}
}

func TestParse_AliasAndMerge(t *testing.T) {
	v, err := Parse([]byte(`
base: &base
  type: integer
  options: {not_null: true}
id:
  <<: *base
  type: bigint
`))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	id, _ := v.Get("id")
	if got := id.StrAt("type"); got != "bigint" {
		t.Errorf("explicit key should win over merge: type = %q", got)
	}
	notNull, ok := id.Lookup("options", "not_null")
	if !ok || !notNull.Truthy() {
		t.Error("merged options.not_null should be truthy")
	}
}

func TestNilValueAccessors(t *testing.T) {
	var v *Value
	if !v.IsNull() || v.Len() != 0 || v.Str() != "" || !v.IsBlank() || v.Truthy() {
		t.Error("nil *Value should behave like null")
	}
	if _, ok := v.Get("x"); ok {
		t.Error("Get on nil should report false")
	}
}

func TestTruthy(t *testing.T) {
	tests := []struct {
		name string
		v    *Value
		want bool
	}{
		{"bool true", Bool(true), true},
		{"bool false", Bool(false), false},
		{"quoted no", String("no"), true},
		{"quoted false", String("false"), true},
		{"plain OFF", &Value{Kind: KindScalar, Tag: TagString, Text: "OFF", Plain: true}, false},
		{"string yes", String("yes"), true},
		{"blank", String("  "), false},
		{"zero", Int(0), true},
		{"null", Null(), false},
		{"mapping", Mapping(Entry{"a", Bool(true)}), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Truthy(); got != tt.want {
				t.Errorf("Truthy() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTruthy_QuotingInSource(t *testing.T) {
	v, err := Parse([]byte(`
bool_false: false
plain_no: no
plain_off: Off
quoted_false: "false"
quoted_no: 'no'
plain_yes: yes
`))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	want := map[string]bool{
		"bool_false":   false,
		"plain_no":     false,
		"plain_off":    false,
		"quoted_false": true,
		"quoted_no":    true,
		"plain_yes":    true,
	}
	for key, w := range want {
		child, _ := v.Get(key)
		if got := child.Truthy(); got != w {
			t.Errorf("%s: Truthy() = %v, want %v", key, got, w)
		}
	}
	if c, _ := v.Get("quoted_no"); !c.Clone().Truthy() {
		t.Error("Clone() should keep the quoting of a scalar")
	}
}

func TestParse_ExcessiveAliasing(t *testing.T) {
	src := `
a: &a ["x", "x", "x", "x", "x", "x", "x", "x", "x", "x"]
b: &b [*a, *a, *a, *a, *a, *a, *a, *a, *a, *a]
c: &c [*b, *b, *b, *b, *b, *b, *b, *b, *b, *b]
d: &d [*c, *c, *c, *c, *c, *c, *c, *c, *c, *c]
e: &e [*d, *d, *d, *d, *d, *d, *d, *d, *d, *d]
f: &f [*e, *e, *e, *e, *e, *e, *e, *e, *e, *e]
g: &g [*f, *f, *f, *f, *f, *f, *f, *f, *f, *f]
models: {}
`
	_, err := Parse([]byte(src))
	if err == nil {
		t.Fatal("Parse() expected error for exponential alias expansion")
	}
	if !strings.Contains(err.Error(), "excessive aliasing") {
		t.Errorf("Parse() error = %v, want excessive aliasing", err)
	}
}

func TestParse_ModestAliasReuse(t *testing.T) {
	src := "id: &id {type: integer, options: {primary_key: true}}\n"
	for i := 0; i < 50; i++ {
		src += "t" + strings.Repeat("x", i) + ": *id\n"
	}
	v, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if v.Len() != 51 {
		t.Errorf("Len() = %d, want 51", v.Len())
	}
}

func TestCloneIsDeep(t *testing.T) {
	orig := Mapping(Entry{"inner", Mapping(Entry{"k", String("v")})})
	cp := orig.Clone()
	inner, _ := cp.Get("inner")
	inner.Set("k", String("changed"))

	if got, _ := orig.Lookup("inner", "k"); got.Str() != "v" {
		t.Errorf("Clone() shares state: original now %q", got.Str())
	}
	if !Equal(orig, orig.Clone()) {
		t.Error("Equal(orig, Clone()) = false")
	}
}

func TestSet(t *testing.T) {
	m := Mapping(Entry{"a", Int(1)})
	m.Set("a", Int(2))
	m.Set("b", Int(3))
	if m.Len() != 2 || m.StrAt("a") != "2" || m.StrAt("b") != "3" {
		t.Errorf("Set() produced %+v", m.Entries)
	}
}

func TestFromAny_SortsKeys(t *testing.T) {
	v, err := FromAny(map[string]any{
		"b": int64(1),
		"a": map[string]any{"z": true, "y": 1.5},
		"c": []any{"x", nil},
	})
	if err != nil {
		t.Fatalf("FromAny() error: %v", err)
	}
	if got := strings.Join(v.Keys(), ","); got != "a,b,c" {
		t.Errorf("Keys() = %q, want a,b,c", got)
	}
	if got, _ := v.Lookup("a", "y"); got.Str() != "1.5" {
		t.Errorf("float text = %q, want 1.5", got.Str())
	}
	c, _ := v.Get("c")
	if !c.IsSequence() || !c.Items[1].IsNull() {
		t.Errorf("sequence conversion wrong: %+v", c)
	}
}

func TestFromAny_Unsupported(t *testing.T) {
	if _, err := FromAny(struct{}{}); err == nil {
		t.Error("FromAny(struct{}) expected error")
	}
}

func TestEncodeRoundTripKeepsOrder(t *testing.T) {
	src := "models:\n  users:\n    group: core\n  posts:\n    group: blog\n"
	v, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	out, err := Encode(v)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	if string(out) != src {
		t.Errorf("Encode() =\n%s\nwant\n%s", out, src)
	}
}
