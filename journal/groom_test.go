package journal

import (
	"testing"
	"time"

	"gitjrnl/github"
)

func rawCommit(sha, message string) github.RawCommit {
	return github.RawCommit{
		SHA: sha,
		Commit: github.CommitDetail{
			Message: message,
			Author: github.CommitAuthor{
				Name: "Alice A.",
				Date: time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC),
			},
		},
		Author:  &github.AccountRef{Login: "alice"},
		HTMLURL: "https://github.com/octo/journal/commit/" + sha,
	}
}

func TestGroom(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name            string
		message         string
		wantName        string
		wantDescription string
		wantDuration    int
		wantStatus      string
	}{
		{
			name:            "minutes and status",
			message:         "Fix bug\n[30][Done]\nlonger text",
			wantName:        "Fix bug",
			wantDescription: "longer text",
			wantDuration:    30,
			wantStatus:      "Done",
		},
		{
			name:         "hours and minutes fold",
			message:      "Implement feature\n[2][15]",
			wantName:     "Implement feature",
			wantDuration: 135,
		},
		{
			name:         "combined token folds both groups",
			message:      "Review\n[1h30]",
			wantName:     "Review",
			wantDuration: 90,
		},
		{
			name:     "no second line",
			message:  "Quick fix",
			wantName: "Quick fix",
		},
		{
			name:       "last non-numeric token wins",
			message:    "Refactor\n[WIP][45][Done]",
			wantName:   "Refactor",
			wantStatus: "Done",
			// 45 folded before Done is seen; status does not reset duration.
			wantDuration: 45,
		},
		{
			name:         "three digit groups ignored",
			message:      "Tag release\n[1.2.3]",
			wantName:     "Tag release",
			wantDuration: 0,
		},
		{
			name:            "blank lines dropped before parsing",
			message:         "Title\n\n[20]\n\ndetails here",
			wantName:        "Title",
			wantDuration:    20,
			wantDescription: "details here",
		},
		{
			name:            "multi line description rejoined",
			message:         "Title\n[10]\nline one\nline two",
			wantName:        "Title",
			wantDuration:    10,
			wantDescription: "line one\nline two",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			entry := Groom(rawCommit("abc123", tc.message))

			if entry.Name != tc.wantName {
				t.Fatalf("name = %q, want %q", entry.Name, tc.wantName)
			}
			if entry.Description != tc.wantDescription {
				t.Fatalf("description = %q, want %q", entry.Description, tc.wantDescription)
			}
			if entry.Duration != tc.wantDuration {
				t.Fatalf("duration = %d, want %d", entry.Duration, tc.wantDuration)
			}
			if entry.Status != tc.wantStatus {
				t.Fatalf("status = %q, want %q", entry.Status, tc.wantStatus)
			}
		})
	}
}

func TestGroom_CarriesCommitIdentity(t *testing.T) {
	t.Parallel()

	entry := Groom(rawCommit("abc123", "Fix bug\n[30]"))

	if entry.SHA != "abc123" {
		t.Fatalf("sha = %q", entry.SHA)
	}
	if entry.Author != "alice" {
		t.Fatalf("author = %q, want login", entry.Author)
	}
	if entry.URL != "https://github.com/octo/journal/commit/abc123" {
		t.Fatalf("url = %q", entry.URL)
	}
	if !entry.Date.Equal(time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)) {
		t.Fatalf("date = %v", entry.Date)
	}
}
