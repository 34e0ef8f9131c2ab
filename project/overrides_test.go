package project

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func validPayload() OverridePayload {
	return OverridePayload{
		Name:     "offsite meeting",
		Date:     "2025-01-11",
		Duration: 120,
		Author:   "alice",
	}
}

func TestExclude_Idempotent(t *testing.T) {
	t.Parallel()

	p := CreateEmpty()

	if err := p.Exclude("ABC123"); err != nil {
		t.Fatalf("exclude: %v", err)
	}
	if err := p.Exclude("abc123"); err != nil {
		t.Fatalf("second exclude: %v", err)
	}
	if err := p.Exclude(" abc123 "); err != nil {
		t.Fatalf("third exclude: %v", err)
	}

	if len(p.Overrides) != 1 {
		t.Fatalf("overrides length must grow by at most one per sha, got %d", len(p.Overrides))
	}
	if !p.Overrides[0].Excluded {
		t.Fatal("override must carry the excluded flag")
	}
}

func TestExclude_FlagsExistingPatchOverride(t *testing.T) {
	t.Parallel()

	p := CreateEmpty()
	p.Identity = "alice"
	payload := validPayload()
	payload.SHA = "abc123"
	if _, err := p.AddCommitPatch(payload); err != nil {
		t.Fatalf("add patch: %v", err)
	}

	if err := p.Exclude("ABC123"); err != nil {
		t.Fatalf("exclude: %v", err)
	}

	if len(p.Overrides) != 1 {
		t.Fatalf("exclude must reuse the existing override, got %d overrides", len(p.Overrides))
	}
	if !p.Overrides[0].Excluded {
		t.Fatal("existing patch override must be flagged excluded")
	}
}

func TestExclude_RejectsEmptySHA(t *testing.T) {
	t.Parallel()

	p := CreateEmpty()
	var validation *ValidationError
	if err := p.Exclude("  "); !errors.As(err, &validation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(p.Overrides) != 0 {
		t.Fatal("rejected exclude must not mutate the list")
	}
}

func TestAddCommitPatch(t *testing.T) {
	t.Parallel()

	p := CreateEmpty()
	payload := validPayload()
	payload.SHA = "abc123"
	payload.URL = "https://github.com/octo/journal/commit/abc123"
	payload.Status = "" // defaulted

	override, err := p.AddCommitPatch(payload)
	if err != nil {
		t.Fatalf("add patch: %v", err)
	}

	if override.ID == "" {
		t.Fatal("patch override must get a generated id")
	}
	if !override.IsPatch() {
		t.Fatalf("unexpected type %q", override.Type)
	}
	if override.Status != "Done" {
		t.Fatalf("status must default to Done, got %q", override.Status)
	}
	if override.Date != "2025-01-11T00:00:00Z" {
		t.Fatalf("date must be normalized to RFC 3339 UTC, got %q", override.Date)
	}
	if len(p.Overrides) != 1 {
		t.Fatalf("override not appended: %d", len(p.Overrides))
	}

	second, err := p.AddCommitPatch(payload)
	if err != nil {
		t.Fatalf("second add patch: %v", err)
	}
	if second.ID == override.ID {
		t.Fatal("generated ids must be unique")
	}
}

func TestAddCommitPatch_RequiresSHA(t *testing.T) {
	t.Parallel()

	p := CreateEmpty()
	var validation *ValidationError
	if _, err := p.AddCommitPatch(validPayload()); !errors.As(err, &validation) {
		t.Fatalf("expected validation error for missing sha, got %v", err)
	}
	if len(p.Overrides) != 0 {
		t.Fatal("rejected add must not mutate the list")
	}
}

func TestAddCommitless_AuthorDefaultsToIdentity(t *testing.T) {
	t.Parallel()

	p := CreateEmpty()
	p.Identity = "alice"
	payload := validPayload()
	payload.Author = ""

	override, err := p.AddCommitless(payload)
	if err != nil {
		t.Fatalf("add commitless: %v", err)
	}
	if !override.IsCommitless() {
		t.Fatalf("unexpected type %q", override.Type)
	}
	if override.Author != "alice" {
		t.Fatalf("author must default to the project identity, got %q", override.Author)
	}
	if override.SHA != "" {
		t.Fatalf("commitless override must carry no sha, got %q", override.SHA)
	}
}

func TestPayloadValidationGate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		mutate  func(*OverridePayload)
		field   string
	}{
		{"missing name", func(p *OverridePayload) { p.Name = "" }, "name"},
		{"missing date", func(p *OverridePayload) { p.Date = "" }, "date"},
		{"invalid date", func(p *OverridePayload) { p.Date = "soon" }, "date"},
		{"nan duration", func(p *OverridePayload) { p.Duration = math.NaN() }, "duration"},
		{"infinite duration", func(p *OverridePayload) { p.Duration = math.Inf(1) }, "duration"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			p := CreateEmpty()
			payload := validPayload()
			tc.mutate(&payload)

			_, err := p.AddCommitless(payload)
			var validation *ValidationError
			if !errors.As(err, &validation) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if validation.Field != tc.field {
				t.Fatalf("expected field %q, got %q", tc.field, validation.Field)
			}
			if len(p.Overrides) != 0 {
				t.Fatal("rejected payload must not reach the list")
			}
		})
	}
}

func TestEditOverride(t *testing.T) {
	t.Parallel()

	p := CreateEmpty()
	p.Identity = "alice"
	created, err := p.AddCommitless(validPayload())
	if err != nil {
		t.Fatalf("add commitless: %v", err)
	}

	edited, err := p.EditOverride(created.ID, OverridePayload{
		Name:     "renamed",
		Date:     "2025-02-01",
		Duration: 45,
		Status:   "WIP",
		Author:   "alice",
	})
	if err != nil {
		t.Fatalf("edit override: %v", err)
	}

	if edited.Name != "renamed" || edited.Duration != 45 || edited.Status != "WIP" {
		t.Fatalf("fields not merged: %+v", edited)
	}
	if edited.ID != created.ID || edited.Type != TypeCommitless {
		t.Fatalf("identity fields must be preserved: %+v", edited)
	}
	if p.Overrides[0].Name != "renamed" {
		t.Fatal("edit must mutate the stored override")
	}
}

func TestEditOverride_OmittedFieldsKeepCurrentValues(t *testing.T) {
	t.Parallel()

	p := CreateEmpty()
	p.Identity = "alice"
	created, err := p.AddCommitless(OverridePayload{
		Name:     "offsite meeting",
		Date:     "2025-01-11",
		Duration: 120,
		Status:   "Done",
		Author:   "alice",
	})
	if err != nil {
		t.Fatalf("add commitless: %v", err)
	}

	// Only the required fields; everything else stays as recorded.
	edited, err := p.EditOverride(created.ID, OverridePayload{
		Name: "offsite (renamed)",
		Date: "2025-01-11",
	})
	if err != nil {
		t.Fatalf("edit override: %v", err)
	}

	if edited.Name != "offsite (renamed)" {
		t.Fatalf("name not applied: %+v", edited)
	}
	if edited.Duration != 120 {
		t.Fatalf("omitted duration was wiped: got %d, want 120", edited.Duration)
	}
	if edited.Status != "Done" {
		t.Fatalf("omitted status was wiped: got %q, want %q", edited.Status, "Done")
	}
	if edited.Author != "alice" {
		t.Fatalf("omitted author was wiped: got %q, want %q", edited.Author, "alice")
	}
}

func TestEditOverride_NotFoundLeavesListUnchanged(t *testing.T) {
	t.Parallel()

	p := CreateEmpty()
	p.Identity = "alice"
	if _, err := p.AddCommitless(validPayload()); err != nil {
		t.Fatalf("add commitless: %v", err)
	}
	before := make([]Override, len(p.Overrides))
	copy(before, p.Overrides)

	_, err := p.EditOverride("no-such-id", validPayload())
	if !errors.Is(err, ErrOverrideNotFound) {
		t.Fatalf("expected ErrOverrideNotFound, got %v", err)
	}
	if !reflect.DeepEqual(before, p.Overrides) {
		t.Fatal("failed edit must leave overrides unchanged")
	}
}

func TestRemoveOverride(t *testing.T) {
	t.Parallel()

	p := CreateEmpty()
	p.Identity = "alice"
	created, err := p.AddCommitless(validPayload())
	if err != nil {
		t.Fatalf("add commitless: %v", err)
	}

	if err := p.RemoveOverride(created.ID); err != nil {
		t.Fatalf("remove override: %v", err)
	}
	if len(p.Overrides) != 0 {
		t.Fatalf("override not removed: %+v", p.Overrides)
	}

	if err := p.RemoveOverride(created.ID); !errors.Is(err, ErrOverrideNotFound) {
		t.Fatalf("expected ErrOverrideNotFound, got %v", err)
	}
}
