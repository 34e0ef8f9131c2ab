package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

const (
	defaultBaseURL  = "https://api.github.com"
	defaultPageSize = 100
)

// Client defines the commit-list operations the journal needs.
type Client interface {
	ListBranches(ctx context.Context, owner, repo string) ([]string, error)
	ListCommits(ctx context.Context, query CommitQuery) ([]RawCommit, error)
}

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type ClientConfig struct {
	BaseURL     string
	TokenSource oauth2.TokenSource
	UserAgent   string
	PageSize    int
	HTTPClient  httpDoer
}

type HTTPClient struct {
	baseURL     string
	tokenSource oauth2.TokenSource
	userAgent   string
	pageSize    int
	httpClient  httpDoer
}

func NewClient(cfg ClientConfig) (*HTTPClient, error) {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")

	parsedBase, err := url.Parse(baseURL)
	if err != nil || parsedBase.Scheme == "" || parsedBase.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q", cfg.BaseURL)
	}

	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	doer := cfg.HTTPClient
	if doer == nil {
		doer = &http.Client{Timeout: 30 * time.Second}
	}

	return &HTTPClient{
		baseURL:     baseURL,
		tokenSource: cfg.TokenSource,
		userAgent:   strings.TrimSpace(cfg.UserAgent),
		pageSize:    pageSize,
		httpClient:  doer,
	}, nil
}

// StaticTokenSource wraps a personal access token for ClientConfig.TokenSource.
// An empty token means anonymous access (lower rate limits).
func StaticTokenSource(token string) oauth2.TokenSource {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}
	return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
}

// RawCommit is one item from the commit-list endpoint. Commits are fetched
// fresh each run and never persisted.
type RawCommit struct {
	SHA     string       `json:"sha"`
	Commit  CommitDetail `json:"commit"`
	Author  *AccountRef  `json:"author"`
	HTMLURL string       `json:"html_url"`
}

type CommitDetail struct {
	Message string       `json:"message"`
	Author  CommitAuthor `json:"author"`
}

type CommitAuthor struct {
	Name string    `json:"name"`
	Date time.Time `json:"date"`
}

type AccountRef struct {
	Login string `json:"login"`
}

// AuthorHandle returns the account login when the commit is linked to one,
// falling back to the git author name.
func (c RawCommit) AuthorHandle() string {
	if c.Author != nil && c.Author.Login != "" {
		return c.Author.Login
	}
	if c.Commit.Author.Name != "" {
		return c.Commit.Author.Name
	}
	return "?"
}

type CommitQuery struct {
	Owner  string
	Repo   string
	Branch string
	Since  *time.Time
}

type branchRef struct {
	Name string `json:"name"`
}

func (c *HTTPClient) ListBranches(ctx context.Context, owner, repo string) ([]string, error) {
	endpoint := fmt.Sprintf("/repos/%s/%s/branches?per_page=%d", url.PathEscape(owner), url.PathEscape(repo), c.pageSize)

	var refs []branchRef
	if err := c.getJSON(ctx, endpoint, &refs); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(refs))
	for _, ref := range refs {
		names = append(names, ref.Name)
	}
	return names, nil
}

// ListCommits pages through the commit list for a branch until a short page
// signals the end. A failed page aborts the whole fetch; no partial result is
// returned and no retry is attempted.
func (c *HTTPClient) ListCommits(ctx context.Context, query CommitQuery) ([]RawCommit, error) {
	if strings.TrimSpace(query.Owner) == "" || strings.TrimSpace(query.Repo) == "" {
		return nil, errors.New("owner and repo are required")
	}
	branch := strings.TrimSpace(query.Branch)
	if branch == "" {
		branch = "main"
	}

	all := make([]RawCommit, 0, c.pageSize)
	for page := 1; ; page++ {
		params := url.Values{}
		params.Set("sha", branch)
		params.Set("per_page", strconv.Itoa(c.pageSize))
		params.Set("page", strconv.Itoa(page))
		if query.Since != nil {
			params.Set("since", query.Since.UTC().Format(time.RFC3339))
		}

		endpoint := fmt.Sprintf(
			"/repos/%s/%s/commits?%s",
			url.PathEscape(query.Owner),
			url.PathEscape(query.Repo),
			params.Encode(),
		)

		var batch []RawCommit
		if err := c.getJSON(ctx, endpoint, &batch); err != nil {
			return nil, err
		}

		all = append(all, batch...)
		if len(batch) < c.pageSize {
			return all, nil
		}
	}
}

func (c *HTTPClient) getJSON(ctx context.Context, endpointPath string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpointPath, nil)
	if err != nil {
		return fmt.Errorf("create request GET %s: %w", endpointPath, err)
	}

	req.Header.Set("Accept", "application/vnd.github+json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if c.tokenSource != nil {
		token, err := c.tokenSource.Token()
		if err != nil {
			return fmt.Errorf("resolve credential: %w", err)
		}
		token.SetAuthHeader(req)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request GET %s failed: %w", endpointPath, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return classifyStatus(resp.StatusCode, upstreamReason(resp))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response GET %s: %w", endpointPath, err)
	}
	return nil
}

type apiMessage struct {
	Message string `json:"message"`
}

func upstreamReason(resp *http.Response) string {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var msg apiMessage
	if err := json.Unmarshal(body, &msg); err == nil && msg.Message != "" {
		return msg.Message
	}
	return strings.TrimSpace(string(body))
}

var repoURLPattern = regexp.MustCompile(`(?i)github\.com[/:]([^/]+)/([^/#?]+)`)

// ParseRepoURL extracts the owner and repository name from an HTTPS or SSH
// GitHub URL. A trailing ".git" is stripped.
func ParseRepoURL(repoURL string) (owner, repo string, err error) {
	match := repoURLPattern.FindStringSubmatch(strings.TrimSpace(repoURL))
	if match == nil {
		return "", "", fmt.Errorf("cannot extract owner/repo from %q", repoURL)
	}
	return match[1], strings.TrimSuffix(match[2], ".git"), nil
}
