package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"gitjrnl/config"
)

var removeFile string

var removeCmd = &cobra.Command{
	Use:   "remove <override-id>",
	Short: "Remove an override or manual entry.",
	Long: `Delete an entry from the project file by its id.

Removing a patch restores the commit's values parsed from its message.`,
	Example: `
  # Drop an entry
  gitjrnl remove 4f7c... --file ./widgets.gitj
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}
		saver, err := openSaver(removeFile, cfg)
		if err != nil {
			return err
		}

		if err := saver.Project().RemoveOverride(args[0]); err != nil {
			return err
		}
		if err := saver.SaveNow(); err != nil {
			return err
		}

		fmt.Printf("Entry %s removed from %s\n", args[0], removeFile)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(removeCmd)

	removeCmd.Flags().StringVarP(&removeFile, "file", "F", "", "Path to the project file (.gitj)")
	_ = removeCmd.MarkFlagRequired("file")
}
