package cmd

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"gitjrnl/config"
	"gitjrnl/github"
	"gitjrnl/project"
)

func requireJournalPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("project file path is required")
	}
	if filepath.Ext(path) != project.FileExtension {
		return fmt.Errorf("project file %s must use the %s extension", path, project.FileExtension)
	}
	return nil
}

func openSaver(path string, cfg *config.Config) (*project.Saver, error) {
	if err := requireJournalPath(path); err != nil {
		return nil, err
	}
	p, err := project.Load(path)
	if err != nil {
		return nil, err
	}
	debounce := time.Duration(cfg.Save.DebounceMS) * time.Millisecond
	return project.NewSaver(path, p, debounce), nil
}

func newGitHubClient(cfg *config.Config) (github.Client, error) {
	return github.NewClient(github.ClientConfig{
		BaseURL:     cfg.GitHub.APIURL,
		TokenSource: github.StaticTokenSource(cfg.GitHub.Token),
		UserAgent:   cfg.GitHub.UserAgent,
		PageSize:    cfg.Fetch.PageSize,
	})
}
