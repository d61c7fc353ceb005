package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tableplan/pkg/config"
	"github.com/matzehuels/tableplan/pkg/store"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for tableplan.

Bash:
  $ source <(tableplan completion bash)

Zsh:
  $ tableplan completion zsh > "${fpath[1]}/_tableplan"

Fish:
  $ tableplan completion fish > ~/.config/fish/completions/tableplan.fish

PowerShell:
  PS> tableplan completion powershell | Out-String | Invoke-Expression

Venue arguments complete from the local layout directory when the file
backend is configured.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(os.Stdout, true)
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
}

// completeVenues completes the first positional argument with the venues
// stored locally. Remote backends are not queried while the user types.
func (c *CLI) completeVenues(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	// PersistentPreRunE does not run for completion requests.
	if err := c.loadConfig(); err != nil || c.Config.Store.Backend != config.BackendFile {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	dir := c.Config.Store.Dir
	if dir == "" {
		d, err := config.DataDir()
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		dir = d
	}
	fs, err := store.NewFileStore(dir, c.Logger)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	venues, err := fs.Venues()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var out []string
	for _, v := range venues {
		if strings.HasPrefix(v, strings.ToLower(toComplete)) {
			out = append(out, v)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
