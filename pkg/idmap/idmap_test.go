package idmap

import (
	"fmt"
	"testing"
)

func TestEncode_Memoized(t *testing.T) {
	m := New()
	first := m.Encode("users")
	second := m.Encode("users")
	if first != second {
		t.Errorf("Encode() not idempotent: %q then %q", first, second)
	}
	if first != "1" {
		t.Errorf("first identifier = %q, want %q", first, "1")
	}
}

func TestEncode_FirstSeenOrder(t *testing.T) {
	m := New()
	calls := []string{"posts", "users", "posts", "tags", "users", "posts"}
	want := []string{"1", "2", "1", "3", "2", "1"}

	for i, name := range calls {
		if got := m.Encode(name); got != want[i] {
			t.Errorf("call %d Encode(%q) = %q, want %q", i, name, got, want[i])
		}
	}
	if m.Len() != 3 {
		t.Errorf("Len() = %d, want 3", m.Len())
	}
	names := m.Names()
	if fmt.Sprint(names) != "[posts users tags]" {
		t.Errorf("Names() = %v", names)
	}
}

func TestEncode_DistinctNamesDistinctIDs(t *testing.T) {
	m := New()
	seen := make(map[string]string)
	for i := 0; i < 500; i++ {
		name := fmt.Sprintf("table_%d", i%250)
		id := m.Encode(name)
		if prev, ok := seen[id]; ok && prev != name {
			t.Fatalf("identifier %q assigned to both %q and %q", id, prev, name)
		}
		seen[id] = name
	}
	if m.Len() != 250 {
		t.Errorf("Len() = %d, want 250", m.Len())
	}
}

func TestEncode_UnsafeNames(t *testing.T) {
	m := New()
	a := m.Encode("a_b")
	b := m.Encode("a")
	c := m.Encode("b")
	if a+"_"+c == b+"_"+c {
		t.Error("identifiers collide once joined with a separator")
	}
}

func TestDecode(t *testing.T) {
	m := New()
	m.Encode("users")
	m.Encode("posts")

	tests := []struct {
		id     string
		want   string
		wantOK bool
	}{
		{"1", "users", true},
		{"2", "posts", true},
		{"3", "", false},
		{"0", "", false},
		{"01", "", false},
		{"x", "", false},
	}
	for _, tt := range tests {
		got, ok := m.Decode(tt.id)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("Decode(%q) = %q, %v; want %q, %v", tt.id, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestNamesIsCopy(t *testing.T) {
	m := New()
	m.Encode("users")
	names := m.Names()
	names[0] = "mutated"
	if got, _ := m.Decode("1"); got != "users" {
		t.Errorf("Names() exposes internal state: Decode(1) = %q", got)
	}
}
