package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"gitjrnl/config"
	"gitjrnl/internal/timeutil"
	"gitjrnl/journal"
	"gitjrnl/project"
)

var showFile string

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the aggregated journal for a project.",
	Long: `Fetch commits, apply overrides and manual entries, and print the journal
grouped by day with per-day and grand totals.`,
	Example: `
  # Print the journal
  gitjrnl show --file ./widgets.gitj
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}
		if err := requireJournalPath(showFile); err != nil {
			return err
		}
		p, err := project.Load(showFile)
		if err != nil {
			return err
		}

		client, err := newGitHubClient(cfg)
		if err != nil {
			return err
		}

		days, total, err := journal.Build(cmd.Context(), client, p)
		if err != nil {
			return err
		}

		fmt.Printf("Journal for %s\n", p.ProjectName)
		for _, day := range days {
			fmt.Printf("\n%s (%s)\n", day.Label, timeutil.FormatMinutes(day.Total.Minutes))
			for _, entry := range day.Entries {
				sha := entry.SHA
				if sha == "" {
					sha = "-------"
				} else if len(sha) > 7 {
					sha = sha[:7]
				}
				status := entry.Status
				if status == "" {
					status = "-"
				}
				fmt.Printf("  %s  %-6s  %-10s  %s\n", sha, timeutil.FormatMinutes(entry.Duration), status, entry.Name)
			}
		}
		fmt.Printf("\nTotal: %s (%d entries over %d days)\n", timeutil.FormatMinutes(total.Minutes), countEntries(days), len(days))
		return nil
	},
}

func countEntries(days []journal.DayGroup) int {
	n := 0
	for _, day := range days {
		n += len(day.Entries)
	}
	return n
}

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().StringVarP(&showFile, "file", "F", "", "Path to the project file (.gitj)")
	_ = showCmd.MarkFlagRequired("file")
}
