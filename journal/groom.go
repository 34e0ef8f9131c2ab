package journal

import (
	"regexp"
	"strconv"
	"strings"

	"gitjrnl/github"
)

var (
	bracketTokens = regexp.MustCompile(`\[(.*?)\]`)
	digitGroups   = regexp.MustCompile(`\d+`)
)

// Groom parses a raw commit into a structured entry. The first non-empty
// message line is the title; the second line may carry bracketed metadata
// tokens; the rest is the description.
//
// Token grammar, kept as permissive as the journal convention it encodes:
// a token without digits sets the status (last one wins); a token with fewer
// than three digit groups folds each group into the duration as
// d = d*60 + n, which makes "[2][15]" two hours fifteen minutes and "[45]"
// forty-five minutes. Tokens with three or more digit groups are ignored.
//
// Grooming never drops an entry; a zero duration just means "no tracked
// work" and the aggregator filters on it.
func Groom(commit github.RawCommit) Entry {
	message := commit.Commit.Message

	lines := make([]string, 0, 4)
	for _, line := range strings.Split(message, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}

	duration := 0
	status := ""
	if len(lines) > 1 {
		for _, match := range bracketTokens.FindAllStringSubmatch(lines[1], -1) {
			token := match[1]
			nums := digitGroups.FindAllString(token, -1)
			switch {
			case nums == nil:
				status = token
			case len(nums) < 3:
				for _, num := range nums {
					n, _ := strconv.Atoi(num)
					duration = duration*60 + n
				}
			}
		}
	}

	title := ""
	if len(lines) > 0 {
		title = lines[0]
	} else {
		title, _, _ = strings.Cut(message, "\n")
	}

	description := ""
	if len(lines) > 2 {
		description = strings.Join(lines[2:], "\n")
	}

	return Entry{
		SHA:         commit.SHA,
		Name:        title,
		Description: description,
		Date:        commit.Commit.Author.Date,
		Duration:    duration,
		Status:      status,
		Author:      commit.AuthorHandle(),
		URL:         commit.HTMLURL,
	}
}

// GroomAll maps a fetched commit list into groomed entries.
func GroomAll(commits []github.RawCommit) []Entry {
	entries := make([]Entry, 0, len(commits))
	for _, commit := range commits {
		entries = append(entries, Groom(commit))
	}
	return entries
}
