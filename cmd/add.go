package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"gitjrnl/config"
	"gitjrnl/project"
)

var (
	addFile        string
	addSHA         string
	addURL         string
	addName        string
	addDescription string
	addDate        string
	addDuration    float64
	addStatus      string
	addAuthor      string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an override or a manual journal entry.",
	Long: `Add an entry to the project file.

With --sha the entry patches the named commit: its fields replace the values
parsed from the commit message. Without --sha the entry is a standalone manual
entry that appears in the journal like a commit-backed one.`,
	Example: `
  # Patch a commit's duration and status
  gitjrnl add --file ./widgets.gitj --sha abc123 --name "Fix cursor" --date 2025-02-03 --duration 45 --status Done

  # Record work with no commit behind it
  gitjrnl add --file ./widgets.gitj --name "Planning session" --date 2025-02-03 --duration 60
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}
		saver, err := openSaver(addFile, cfg)
		if err != nil {
			return err
		}

		payload := project.OverridePayload{
			SHA:         addSHA,
			URL:         addURL,
			Name:        addName,
			Description: addDescription,
			Date:        addDate,
			Duration:    addDuration,
			Status:      addStatus,
			Author:      addAuthor,
		}

		p := saver.Project()
		var created project.Override
		if addSHA != "" {
			created, err = p.AddCommitPatch(payload)
		} else {
			created, err = p.AddCommitless(payload)
		}
		if err != nil {
			return err
		}
		if err := saver.SaveNow(); err != nil {
			return err
		}

		fmt.Printf("Entry %s added to %s\n", created.ID, addFile)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringVarP(&addFile, "file", "F", "", "Path to the project file (.gitj)")
	addCmd.Flags().StringVar(&addSHA, "sha", "", "Commit to patch (omit for a manual entry)")
	addCmd.Flags().StringVar(&addURL, "url", "", "Link shown for the entry")
	addCmd.Flags().StringVar(&addName, "name", "", "Entry title")
	addCmd.Flags().StringVar(&addDescription, "description", "", "Longer description")
	addCmd.Flags().StringVar(&addDate, "date", "", "Entry date (YYYY-MM-DD or RFC 3339)")
	addCmd.Flags().Float64Var(&addDuration, "duration", 0, "Duration in minutes")
	addCmd.Flags().StringVar(&addStatus, "status", "", "Status label (default: Done)")
	addCmd.Flags().StringVar(&addAuthor, "author", "", "Author (default: project identity)")

	_ = addCmd.MarkFlagRequired("file")
	_ = addCmd.MarkFlagRequired("name")
	_ = addCmd.MarkFlagRequired("date")
}
