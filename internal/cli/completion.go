package cli

import (
	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for yaml2erd.

To load completions:

Bash:
  $ source <(yaml2erd completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ yaml2erd completion bash > /etc/bash_completion.d/yaml2erd
  # macOS:
  $ yaml2erd completion bash > $(brew --prefix)/etc/bash_completion.d/yaml2erd

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ yaml2erd completion zsh > "${fpath[1]}/_yaml2erd"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ yaml2erd completion fish | source

  # To load completions for each session, execute once:
  $ yaml2erd completion fish > ~/.config/fish/completions/yaml2erd.fish

PowerShell:
  PS> yaml2erd completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> yaml2erd completion powershell > yaml2erd.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(stdout)
			}
			return nil
		},
	}

	return cmd
}
