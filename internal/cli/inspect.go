package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/yaml2erd/pkg/pipeline"
	"github.com/matzehuels/yaml2erd/pkg/schema"
)

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "inspect [schema.yaml]",
		Short: "Summarize the tables, relations and groups of a schema",
		Long: `Summarize a schema without rendering it.

Every table is listed with the node identifier it receives in the diagram,
its column count, its drawn relations and its group.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd.Context(), args[0], configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "diagram configuration file (YAML or TOML)")

	return cmd
}

func (c *CLI) runInspect(ctx context.Context, schemaPath, configPath string) error {
	runner := pipeline.NewRunner(nil, nil, c.Logger)
	d, err := runner.Build(ctx, pipeline.Options{
		SchemaPath: schemaPath,
		ConfigPath: configPath,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(stdout, StyleTitle.Render(schemaPath))
	fmt.Fprintln(stdout, tablesTable(d))

	printKeyValue("Tables", strconv.Itoa(len(d.Document.Tables)))
	printKeyValue("Relations", strconv.Itoa(len(d.Spec.Edges)))
	printKeyValue("Layout", d.Config.Layout())
	for _, g := range d.Document.Groups {
		label := g.Name
		if color, ok := d.Document.GroupColor(g.Name); ok && color != "" {
			label += " (" + color + ")"
		}
		printKeyValue("Group", label+": "+strings.Join(g.Members, ", "))
	}
	for _, name := range d.Spec.Undeclared {
		printWarning("%s is a relation target but not a table", name)
	}
	return nil
}

// tablesTable renders one row per table in schema order.
func tablesTable(d *pipeline.Diagram) *table.Table {
	rows := make([][]string, 0, len(d.Document.Tables))
	for _, name := range d.Document.Tables {
		m, _ := d.Document.Model(name)
		id := ""
		if n, ok := d.Spec.Node(name); ok {
			id = n.ID
		}
		rows = append(rows, []string{
			id,
			name,
			strconv.Itoa(len(m.ParsedColumns)),
			relationsCell(m.Relations),
			m.Group,
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleTableBorder).
		Headers("ID", "TABLE", "COLUMNS", "RELATIONS", "GROUP").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleTableHeader
			}
			return styleTableCell
		})
}

// relationsCell lists drawn relations one per line, e.g. "has_many posts".
func relationsCell(rels []schema.Relation) string {
	var lines []string
	for _, r := range rels {
		if !r.Kind.Drawn() {
			continue
		}
		lines = append(lines, string(r.Kind)+" "+r.Target)
	}
	return strings.Join(lines, "\n")
}
