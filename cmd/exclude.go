package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"gitjrnl/config"
)

var excludeFile string

var excludeCmd = &cobra.Command{
	Use:   "exclude <sha>",
	Short: "Exclude a commit from the journal.",
	Long: `Mark a commit as excluded in the project file.

Excluding the same commit twice is a no-op. An exclusion also wins over any
patch override recorded for the same commit.`,
	Example: `
  # Hide a commit from the journal
  gitjrnl exclude abc123 --file ./widgets.gitj
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}
		saver, err := openSaver(excludeFile, cfg)
		if err != nil {
			return err
		}

		if err := saver.Project().Exclude(args[0]); err != nil {
			return err
		}
		if err := saver.SaveNow(); err != nil {
			return err
		}

		fmt.Printf("Commit %s excluded in %s\n", args[0], excludeFile)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(excludeCmd)

	excludeCmd.Flags().StringVarP(&excludeFile, "file", "F", "", "Path to the project file (.gitj)")
	_ = excludeCmd.MarkFlagRequired("file")
}
