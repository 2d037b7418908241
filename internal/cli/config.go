package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/yaml2erd/pkg/document"
	"github.com/matzehuels/yaml2erd/pkg/pipeline"
)

// configCommand creates the config command, which prints the configuration
// a render would use.
func (c *CLI) configCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the resolved diagram configuration",
		Long: `Print the diagram configuration as YAML after user overrides and fixed
settings are applied. Without --config the compiled-in defaults are shown.`,
		Example: `  yaml2erd config
  yaml2erd config -c erd.toml > resolved.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := pipeline.NewRunner(nil, nil, c.Logger)
			resolved, err := runner.ResolveConfig(configPath)
			if err != nil {
				return err
			}
			out, err := document.Encode(resolved.Tree)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(stdout, string(out))
			return err
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "diagram configuration file (YAML or TOML)")

	return cmd
}
