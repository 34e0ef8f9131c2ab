package web

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"gitjrnl/github"
	"gitjrnl/project"
)

type fakeClient struct {
	commits  []github.RawCommit
	branches []string
	err      error
}

func (f fakeClient) ListBranches(ctx context.Context, owner, repo string) ([]string, error) {
	return f.branches, f.err
}

func (f fakeClient) ListCommits(ctx context.Context, query github.CommitQuery) ([]github.RawCommit, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.commits, nil
}

func newTestServer(t *testing.T, client github.Client) (*httptest.Server, *project.Saver) {
	t.Helper()

	p := project.CreateEmpty()
	p.ProjectName = "widgets"
	p.RepositoryURL = "https://github.com/acme/widgets"
	p.Identity = "alice"

	path := filepath.Join(t.TempDir(), "widgets"+project.FileExtension)
	saver := project.NewSaver(path, p, 10*time.Millisecond)

	ts := httptest.NewServer(NewServer(saver, client))
	t.Cleanup(ts.Close)
	return ts, saver
}

func commitFixture(sha, message, author string, date time.Time) github.RawCommit {
	return github.RawCommit{
		SHA: sha,
		Commit: github.CommitDetail{
			Message: message,
			Author:  github.CommitAuthor{Name: author, Date: date},
		},
		Author:  &github.AccountRef{Login: author},
		HTMLURL: "https://github.com/acme/widgets/commit/" + sha,
	}
}

func TestServer_JournalGroupsCommitsByDay(t *testing.T) {
	t.Parallel()

	day := time.Date(2025, 2, 3, 10, 0, 0, 0, time.UTC)
	client := fakeClient{commits: []github.RawCommit{
		commitFixture("aaa111", "Fix cursor\n[45][Done]", "alice", day),
		commitFixture("bbb222", "Tune retries\n[30]", "alice", day.Add(time.Hour)),
	}}

	ts, _ := newTestServer(t, client)

	resp, err := http.Get(ts.URL + "/api/journal")
	if err != nil {
		t.Fatalf("request journal: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body journalResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode journal: %v", err)
	}
	if body.ProjectName != "widgets" {
		t.Fatalf("unexpected project name %q", body.ProjectName)
	}
	if len(body.Days) != 1 {
		t.Fatalf("expected 1 day group, got %d", len(body.Days))
	}
	if len(body.Days[0].Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(body.Days[0].Entries))
	}
	if body.Total.Minutes != 75 {
		t.Fatalf("expected total 75, got %d", body.Total.Minutes)
	}
}

func TestServer_JournalMapsUpstreamFailureToBadGateway(t *testing.T) {
	t.Parallel()

	client := fakeClient{err: &github.APIError{StatusCode: http.StatusUnauthorized, Reason: "Bad credentials"}}
	ts, _ := newTestServer(t, client)

	resp, err := http.Get(ts.URL + "/api/journal")
	if err != nil {
		t.Fatalf("request journal: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", resp.StatusCode)
	}
}

func TestServer_ExcludePersistsThroughSaver(t *testing.T) {
	t.Parallel()

	ts, saver := newTestServer(t, fakeClient{})

	resp, err := http.Post(ts.URL+"/api/exclude", "application/json", bytes.NewBufferString(`{"sha":"abc123"}`))
	if err != nil {
		t.Fatalf("post exclude: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}

	if err := saver.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	loaded, err := project.Load(saver.Path())
	if err != nil {
		t.Fatalf("load saved file: %v", err)
	}
	if len(loaded.Overrides) != 1 || !loaded.Overrides[0].Excluded {
		t.Fatalf("exclusion not persisted: %+v", loaded.Overrides)
	}
}

func TestServer_OverrideLifecycle(t *testing.T) {
	t.Parallel()

	ts, saver := newTestServer(t, fakeClient{})

	createBody := `{"name":"Planning session","date":"2025-02-03","durationMinutes":60}`
	resp, err := http.Post(ts.URL+"/api/override", "application/json", bytes.NewBufferString(createBody))
	if err != nil {
		t.Fatalf("post override: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	var created project.Override
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode created override: %v", err)
	}
	resp.Body.Close()
	if created.ID == "" || created.Type != project.TypeCommitless {
		t.Fatalf("unexpected created override: %+v", created)
	}

	patchBody := bytes.NewBufferString(`{"name":"Planning session","date":"2025-02-03","durationMinutes":90}`)
	req, _ := http.NewRequest(http.MethodPatch, ts.URL+"/api/override/"+created.ID, patchBody)
	req.Header.Set("Content-Type", "application/json")
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("patch override: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var updated project.Override
	if err := json.NewDecoder(resp.Body).Decode(&updated); err != nil {
		t.Fatalf("decode updated override: %v", err)
	}
	resp.Body.Close()
	if updated.Duration != 90 {
		t.Fatalf("expected duration 90, got %d", updated.Duration)
	}
	if updated.Author != "alice" {
		t.Fatalf("author omitted from patch must be kept, got %q", updated.Author)
	}

	req, _ = http.NewRequest(http.MethodDelete, ts.URL+"/api/override/"+created.ID, nil)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("delete override: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}

	if err := saver.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	loaded, err := project.Load(saver.Path())
	if err != nil {
		t.Fatalf("load saved file: %v", err)
	}
	if len(loaded.Overrides) != 0 {
		t.Fatalf("expected empty override list, got %+v", loaded.Overrides)
	}
}

func TestServer_OverrideValidationAndNotFound(t *testing.T) {
	t.Parallel()

	ts, _ := newTestServer(t, fakeClient{})

	// Missing required date.
	resp, err := http.Post(ts.URL+"/api/override", "application/json", bytes.NewBufferString(`{"name":"x"}`))
	if err != nil {
		t.Fatalf("post override: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}

	req, _ := http.NewRequest(http.MethodDelete, ts.URL+"/api/override/missing", nil)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("delete override: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}
