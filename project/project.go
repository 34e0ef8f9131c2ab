package project

import (
	"strings"
	"time"
)

// FileExtension is the dedicated suffix for project files.
const FileExtension = ".gitj"

// Project is the persisted unit: a repository reference, the branch to
// journal, the author identity used to filter commits, an optional start
// date, and the ordered override list. There is a single in-memory instance
// per process; the aggregation pipeline only reads it.
type Project struct {
	RepositoryURL    string     `json:"repositoryUrl"`
	ProjectName      string     `json:"projectName"`
	Branch           string     `json:"branch"`
	Identity         string     `json:"identity"`
	JournalStartDate *string    `json:"journalStartDate"`
	Overrides        []Override `json:"overrides"`
}

// CreateEmpty returns a project with every required field present and
// defaulted.
func CreateEmpty() *Project {
	return &Project{
		Branch:    "main",
		Overrides: []Override{},
	}
}

// StartDate parses journalStartDate into a time value, or nil when the
// project has none (or it does not parse).
func (p *Project) StartDate() *time.Time {
	if p.JournalStartDate == nil {
		return nil
	}
	parsed, err := ParseDate(*p.JournalStartDate)
	if err != nil {
		return nil
	}
	return &parsed
}

// Override kinds. A pure exclusion carries no type tag; it exists only to
// suppress the commit with its sha.
const (
	TypeCommitPatch = "commitpatch"
	TypeCommitless  = "commitless"
)

// Override is one user-authored correction layered on top of fetched commit
// data. The three variants share one list; constructors in overrides.go
// enforce each variant's required fields.
type Override struct {
	ID          string `json:"id,omitempty"`
	Type        string `json:"type,omitempty"`
	SHA         string `json:"sha,omitempty"`
	URL         string `json:"url,omitempty"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Date        string `json:"date,omitempty"`
	Duration    int    `json:"durationMinutes,omitempty"`
	Status      string `json:"status,omitempty"`
	Author      string `json:"author,omitempty"`
	Excluded    bool   `json:"excluded,omitempty"`
}

func (o Override) IsPatch() bool {
	return o.Type == TypeCommitPatch
}

func (o Override) IsCommitless() bool {
	return o.Type == TypeCommitless
}

// NormalizeSHA is the identity key for sha-keyed overrides.
func NormalizeSHA(sha string) string {
	return strings.ToLower(strings.TrimSpace(sha))
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseDate accepts the date forms override payloads arrive in: a full
// RFC 3339 timestamp, a local datetime, or a bare calendar day.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	var lastErr error
	for _, layout := range dateLayouts {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			return parsed, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
