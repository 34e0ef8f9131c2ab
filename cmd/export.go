package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"gitjrnl/config"
	"gitjrnl/journal"
	"gitjrnl/output"
	"gitjrnl/project"
)

var (
	exportFile   string
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the aggregated journal to CSV, Excel, or SQLite",
	Long: `Build the journal for a project and write it to a report file.

Output format can be selected explicitly via --format or inferred from the
--output extension; when neither decides, export.format from the config applies.`,
	Example: `
  # Export to CSV
  gitjrnl export --file ./widgets.gitj --output ./journal.csv

  # Export to Excel
  gitjrnl export --file ./widgets.gitj --output ./journal.xlsx

  # Export to a SQLite report database
  gitjrnl export --file ./widgets.gitj --output ./journal.db

  # Force a format independent of extension
  gitjrnl export --file ./widgets.gitj --format sqlite --output ./journal.out
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}
		if err := requireJournalPath(exportFile); err != nil {
			return err
		}
		p, err := project.Load(exportFile)
		if err != nil {
			return err
		}

		format := exportFormat
		if strings.TrimSpace(format) == "" {
			format = detectExportFormat(exportOutput, cfg.Export.Format)
		}
		writer, err := output.WriterForFormat(format)
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

		if err := writer.Write(exportOutput, days, total); err != nil {
			return err
		}

		fmt.Printf("Export completed. Days: %d, Minutes: %d, Format: %s, File: %s\n", len(days), total.Minutes, format, exportOutput)
		return nil
	},
}

func detectExportFormat(path, fallback string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch ext {
	case "csv":
		return "csv"
	case "xlsx", "xlsm", "xls":
		return "excel"
	case "db", "sqlite", "sqlite3":
		return "sqlite"
	}
	if strings.TrimSpace(fallback) != "" {
		return fallback
	}
	return "csv"
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportFile, "file", "F", "", "Path to the project file (.gitj)")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "Output format: csv|excel|sqlite (optional, inferred from output extension)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file path")

	_ = exportCmd.MarkFlagRequired("file")
	_ = exportCmd.MarkFlagRequired("output")
}
