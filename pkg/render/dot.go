package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/yaml2erd/pkg/config"
	"github.com/matzehuels/yaml2erd/pkg/erd"
)

// ToDOT converts a diagram graph to Graphviz DOT format. Nodes, edges and
// clusters are written in the order the graph lists them.
func ToDOT(spec *erd.GraphSpec) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	if len(spec.Global) > 0 {
		fmt.Fprintf(&buf, "  graph [%s];\n", fmtAttrs(spec.Global))
	}
	if len(spec.NodeDefaults) > 0 {
		fmt.Fprintf(&buf, "  node [%s];\n", fmtAttrs(spec.NodeDefaults))
	}

	buf.WriteString("\n")
	for _, n := range spec.Nodes {
		attrs := append([]string{"label=<" + n.Label + ">"}, fmtAttrList(n.Attrs)...)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	if len(spec.Edges) > 0 {
		buf.WriteString("\n")
	}
	for _, e := range spec.Edges {
		attrs := append([]string{fmt.Sprintf("id=%q", e.ID)}, fmtAttrList(e.Attrs)...)
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.From, e.To, strings.Join(attrs, ", "))
	}

	for _, sg := range spec.Subgraphs {
		buf.WriteString("\n")
		fmt.Fprintf(&buf, "  subgraph %q {\n", sg.ID)
		if len(sg.Attrs) > 0 {
			fmt.Fprintf(&buf, "    graph [%s];\n", fmtAttrs(sg.Attrs))
		}
		if len(sg.NodeDefaults) > 0 {
			fmt.Fprintf(&buf, "    node [%s];\n", fmtAttrs(sg.NodeDefaults))
		}
		for _, id := range sg.Members {
			fmt.Fprintf(&buf, "    %q;\n", id)
		}
		buf.WriteString("  }\n")
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtAttrs(attrs config.Attrs) string {
	return strings.Join(fmtAttrList(attrs), ", ")
}

func fmtAttrList(attrs config.Attrs) []string {
	out := make([]string, len(attrs))
	for i, a := range attrs {
		out[i] = fmt.Sprintf("%s=%q", a.Key, a.Value)
	}
	return out
}
