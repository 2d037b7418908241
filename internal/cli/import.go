package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/yaml2erd/pkg/document"
	"github.com/matzehuels/yaml2erd/pkg/errors"
	"github.com/matzehuels/yaml2erd/pkg/introspect"
)

// importOpts holds the command-line flags for the import command.
type importOpts struct {
	driver string // mysql, postgres or sqlite
	dsn    string // driver-specific data source name
	schema string // database (MySQL) or schema (PostgreSQL) to read
	output string // schema file to write; empty means stdout
}

// importCommand creates the import command.
func (c *CLI) importCommand() *cobra.Command {
	var opts importOpts

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Generate a YAML schema from a live database",
		Long: `Read tables, columns and foreign keys from a database and write them as a
yaml2erd schema. Each foreign key A.x -> B.y adds belongs_to B on A and
has_many A on B.`,
		Example: `  yaml2erd import --driver postgres --dsn "postgres://localhost/shop?sslmode=disable" -o shop.yaml
  yaml2erd import --driver mysql --dsn "user:pass@tcp(localhost:3306)/shop"
  yaml2erd import --driver sqlite --dsn shop.db -o shop.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runImport(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.driver, "driver", "", "database driver: "+dialectNames())
	cmd.Flags().StringVar(&opts.dsn, "dsn", "", "data source name")
	cmd.Flags().StringVar(&opts.schema, "schema", "", "database or schema to read (default: current)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "schema file to write (default: stdout)")
	_ = cmd.MarkFlagRequired("driver")
	_ = cmd.MarkFlagRequired("dsn")

	return cmd
}

func (c *CLI) runImport(ctx context.Context, opts importOpts) error {
	dialect, err := introspect.ParseDialect(opts.driver)
	if err != nil {
		return err
	}
	if opts.output != "" {
		if err := errors.ValidateOutputPath(opts.output); err != nil {
			return err
		}
	}

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Reading %s catalog...", dialect))
	spinner.Start()

	db, err := introspect.Open(ctx, dialect, opts.dsn)
	if err != nil {
		spinner.StopWithError("Could not connect to " + string(dialect))
		return err
	}
	defer db.Close()

	catalog, err := introspect.Introspect(ctx, db, dialect, introspect.Options{Schema: opts.schema})
	if err != nil {
		spinner.StopWithError("Could not read the catalog")
		return err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Read %d tables", len(catalog.Tables)))

	out, err := document.Encode(catalog.Document())
	if err != nil {
		return err
	}

	if opts.output == "" {
		_, err = fmt.Fprint(stdout, string(out))
		return err
	}
	if err := writeOutput(opts.output, out); err != nil {
		return err
	}

	printSuccess("Imported %d tables, %d foreign keys", len(catalog.Tables), len(catalog.ForeignKeys))
	printFile(opts.output)
	if len(catalog.Tables) == 0 {
		printWarning("No tables found")
		return nil
	}
	printNewline()
	printNextStep("Render it", "yaml2erd render "+opts.output)
	return nil
}

func dialectNames() string {
	names := make([]string, len(introspect.Dialects))
	for i, d := range introspect.Dialects {
		names[i] = string(d)
	}
	return strings.Join(names, ", ")
}
