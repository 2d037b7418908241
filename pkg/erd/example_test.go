package erd_test

import (
	"fmt"

	"github.com/matzehuels/yaml2erd/pkg/config"
	"github.com/matzehuels/yaml2erd/pkg/erd"
	"github.com/matzehuels/yaml2erd/pkg/idmap"
	"github.com/matzehuels/yaml2erd/pkg/schema"
)

func ExampleBuild() {
	doc, _ := schema.ParseBytes([]byte(`
models:
  users:
    group: accounts
    columns: {id: {type: integer}}
    relations:
      - has_many: posts
  posts:
    columns: {id: {type: integer}}
    relations:
      - belongs_to: users
`))

	spec, _ := erd.Build(doc, idmap.New(), config.Resolve(nil))

	for _, n := range spec.Nodes {
		fmt.Printf("node %s: %s\n", n.ID, n.Table)
	}
	// belongs_to is the other side of has_many and draws nothing
	for _, e := range spec.Edges {
		fmt.Printf("edge %s: %s -> %s (%s)\n", e.ID, e.From, e.To, e.Kind)
	}
	for _, sg := range spec.Subgraphs {
		fmt.Printf("%s: %s %v\n", sg.ID, sg.Group, sg.Members)
	}
	// Output:
	// node 1: users
	// node 2: posts
	// edge 1_2: 1 -> 2 (has_many)
	// cluster_0: accounts [1]
}
