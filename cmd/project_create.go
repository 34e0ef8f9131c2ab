package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"gitjrnl/config"
	"gitjrnl/github"
	"gitjrnl/project"
)

var (
	createRepoURL        string
	createProjectName    string
	createBranch         string
	createIdentity       string
	createStartDate      string
	createValidateBranch bool
)

var projectCreateCmd = &cobra.Command{
	Use:   "create <file.gitj>",
	Short: "Create a new project file.",
	Long: `Create a new project file with an empty override list.

The file must use the .gitj extension. With --validate-branch the branch is
checked against the repository's branch list before the file is written.`,
	Example: `
  # Minimal project bound to a repository
  gitjrnl project create ./widgets.gitj --repo https://github.com/acme/widgets --identity alice

  # Pin a branch and a journal start date, verifying the branch exists
  gitjrnl project create ./widgets.gitj --repo https://github.com/acme/widgets --identity alice --branch develop --start-date 2025-01-01 --validate-branch
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		if err := requireJournalPath(path); err != nil {
			return err
		}
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("project file %s already exists", path)
		}

		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		p := project.CreateEmpty()
		p.RepositoryURL = strings.TrimSpace(createRepoURL)
		p.Identity = strings.TrimSpace(createIdentity)
		if createBranch != "" {
			p.Branch = createBranch
		} else if cfg.Fetch.DefaultBranch != "" {
			p.Branch = cfg.Fetch.DefaultBranch
		}
		if createProjectName != "" {
			p.ProjectName = createProjectName
		} else {
			p.ProjectName = strings.TrimSuffix(filepath.Base(path), project.FileExtension)
		}
		if createStartDate != "" {
			start := createStartDate
			p.JournalStartDate = &start
		}

		if createValidateBranch {
			if err := validateBranchExists(cmd, cfg, p); err != nil {
				return err
			}
		}

		if err := project.Save(path, p); err != nil {
			return err
		}

		fmt.Printf("Project file created at: %s\n", path)
		return nil
	},
}

func validateBranchExists(cmd *cobra.Command, cfg *config.Config, p *project.Project) error {
	if p.RepositoryURL == "" {
		return fmt.Errorf("--validate-branch requires --repo")
	}
	owner, repo, err := github.ParseRepoURL(p.RepositoryURL)
	if err != nil {
		return fmt.Errorf("resolve repository: %w", err)
	}

	client, err := newGitHubClient(cfg)
	if err != nil {
		return err
	}
	branches, err := client.ListBranches(cmd.Context(), owner, repo)
	if err != nil {
		return fmt.Errorf("list branches for %s/%s: %w", owner, repo, err)
	}

	for _, branch := range branches {
		if branch == p.Branch {
			return nil
		}
	}
	return fmt.Errorf("branch %q not found in %s/%s (available: %s)", p.Branch, owner, repo, strings.Join(branches, ", "))
}

func init() {
	projectCmd.AddCommand(projectCreateCmd)

	projectCreateCmd.Flags().StringVar(&createRepoURL, "repo", "", "GitHub repository URL")
	projectCreateCmd.Flags().StringVar(&createProjectName, "name", "", "Project display name (default: file name)")
	projectCreateCmd.Flags().StringVar(&createBranch, "branch", "", "Branch to read commits from (default: fetch.default_branch)")
	projectCreateCmd.Flags().StringVar(&createIdentity, "identity", "", "Author login or name whose commits belong to this journal")
	projectCreateCmd.Flags().StringVar(&createStartDate, "start-date", "", "Only include commits on or after this date (YYYY-MM-DD)")
	projectCreateCmd.Flags().BoolVar(&createValidateBranch, "validate-branch", false, "Verify the branch exists before writing the file")
}
