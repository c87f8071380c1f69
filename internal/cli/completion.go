package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for docreel.

To load completions:

Bash:
  $ source <(docreel completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ docreel completion bash > /etc/bash_completion.d/docreel
  # macOS:
  $ docreel completion bash > $(brew --prefix)/etc/bash_completion.d/docreel

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ docreel completion zsh > "${fpath[1]}/_docreel"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ docreel completion fish | source

  # To load completions for each session, execute once:
  $ docreel completion fish > ~/.config/fish/completions/docreel.fish

PowerShell:
  PS> docreel completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> docreel completion powershell > docreel.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}

	return cmd
}
