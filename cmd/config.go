package cmd

import "github.com/spf13/cobra"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage gitjrnl configuration file values.",
	Long: `Create, edit, and display the gitjrnl configuration file.

The configuration stores application-wide values:
- github.api_url / github.user_agent / github.token
- fetch.page_size / fetch.default_branch
- save.debounce_ms
- export.format`,
	Example: `
  # Create default config in $HOME/.gitjrnl.yaml
  gitjrnl config create

  # Show active config and source file
  gitjrnl config show

  # Open active config in editor (creates example if missing)
  gitjrnl config edit
`,
}

func init() {
	rootCmd.AddCommand(configCmd)
}
