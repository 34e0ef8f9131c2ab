package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"gitjrnl/config"
	"gitjrnl/project"
)

var (
	editFile        string
	editURL         string
	editName        string
	editDescription string
	editDate        string
	editDuration    float64
	editStatus      string
	editAuthor      string
)

var editCmd = &cobra.Command{
	Use:   "edit <override-id>",
	Short: "Edit an existing override or manual entry.",
	Long: `Update an entry in the project file by its id.

The id and entry type never change; omitted optional fields keep their
current values.`,
	Example: `
  # Change the recorded duration
  gitjrnl edit 4f7c... --file ./widgets.gitj --name "Planning session" --date 2025-02-03 --duration 90
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}
		saver, err := openSaver(editFile, cfg)
		if err != nil {
			return err
		}

		payload := project.OverridePayload{
			URL:         editURL,
			Name:        editName,
			Description: editDescription,
			Date:        editDate,
			Duration:    editDuration,
			Status:      editStatus,
			Author:      editAuthor,
		}

		updated, err := saver.Project().EditOverride(args[0], payload)
		if err != nil {
			return err
		}
		if err := saver.SaveNow(); err != nil {
			return err
		}

		fmt.Printf("Entry %s updated in %s\n", updated.ID, editFile)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(editCmd)

	editCmd.Flags().StringVarP(&editFile, "file", "F", "", "Path to the project file (.gitj)")
	editCmd.Flags().StringVar(&editURL, "url", "", "Link shown for the entry")
	editCmd.Flags().StringVar(&editName, "name", "", "Entry title")
	editCmd.Flags().StringVar(&editDescription, "description", "", "Longer description")
	editCmd.Flags().StringVar(&editDate, "date", "", "Entry date (YYYY-MM-DD or RFC 3339)")
	editCmd.Flags().Float64Var(&editDuration, "duration", 0, "Duration in minutes")
	editCmd.Flags().StringVar(&editStatus, "status", "", "Status label")
	editCmd.Flags().StringVar(&editAuthor, "author", "", "Author")

	_ = editCmd.MarkFlagRequired("file")
	_ = editCmd.MarkFlagRequired("name")
	_ = editCmd.MarkFlagRequired("date")
}
