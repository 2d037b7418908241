package config_test

import (
	"fmt"

	"github.com/matzehuels/yaml2erd/pkg/config"
	"github.com/matzehuels/yaml2erd/pkg/schema"
)

func ExampleResolve() {
	user, _ := config.ParseYAML([]byte(`
entity_conf:
  fontsize: 99
  unknown_key: x
arrow_map:
  has_many: {arrowhead: dot}
`))
	r := config.Resolve(user)

	fontsize, _ := r.Entity.Get("fontsize")
	shape, _ := r.Entity.Get("shape")
	_, unknown := r.Entity.Get("unknown_key")
	arrowhead, _ := r.Arrow(schema.HasMany).Get("arrowhead")

	fmt.Println("fontsize:", fontsize)
	fmt.Println("shape:", shape)
	fmt.Println("unknown_key kept:", unknown)
	fmt.Println("has_many arrowhead:", arrowhead)
	// Output:
	// fontsize: 99
	// shape: Mrecord
	// unknown_key kept: false
	// has_many arrowhead: crow
}
