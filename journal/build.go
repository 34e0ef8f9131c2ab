package journal

import (
	"context"
	"fmt"
	"strings"

	"gitjrnl/github"
	"gitjrnl/project"
)

// Build is the single read path the presentation layer needs: fetch the
// branch's commits, groom them, and aggregate against the project's
// overrides. A project with no repository reference still yields a journal
// of its commitless overrides.
func Build(ctx context.Context, client github.Client, p *project.Project) ([]DayGroup, Totals, error) {
	entries := []Entry{}

	if strings.TrimSpace(p.RepositoryURL) != "" {
		owner, repo, err := github.ParseRepoURL(p.RepositoryURL)
		if err != nil {
			return nil, Totals{}, fmt.Errorf("resolve repository: %w", err)
		}

		raw, err := client.ListCommits(ctx, github.CommitQuery{
			Owner:  owner,
			Repo:   repo,
			Branch: p.Branch,
			Since:  p.StartDate(),
		})
		if err != nil {
			return nil, Totals{}, fmt.Errorf("fetch commits: %w", err)
		}
		entries = GroomAll(raw)
	}

	groups, totals := Aggregate(entries, p)
	return groups, totals, nil
}
