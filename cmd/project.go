package cmd

import "github.com/spf13/cobra"

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage gitjrnl project files.",
	Long: `Create and inspect gitjrnl project files.

A project file binds one GitHub repository to a journal: repository URL,
branch, the author identity to track, an optional start date, and the list
of per-commit overrides and manual entries.`,
	Example: `
  # Create a project file
  gitjrnl project create ./widgets.gitj --repo https://github.com/acme/widgets --identity alice
`,
}

func init() {
	rootCmd.AddCommand(projectCmd)
}
