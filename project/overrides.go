package project

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// ErrOverrideNotFound signals an edit or delete against an unknown id.
var ErrOverrideNotFound = errors.New("override not found")

// ValidationError rejects an override payload before any state change.
type ValidationError struct {
	Field  string
	Detail string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid override payload: field %q %s", e.Field, e.Detail)
}

// OverridePayload is the incoming shape for patch/commitless creation and
// edits. Duration is minutes.
type OverridePayload struct {
	SHA         string  `validate:"-"`
	URL         string  `validate:"-"`
	Name        string  `validate:"required"`
	Description string  `validate:"-"`
	Date        string  `validate:"required"`
	Duration    float64 `validate:"-"`
	Status      string  `validate:"-"`
	Author      string  `validate:"-"`
}

var payloadValidator = validator.New()

// validatePayload is the shared gate: name required, date must parse, and
// duration must be a finite number of minutes.
func validatePayload(payload OverridePayload) (time.Time, error) {
	if err := payloadValidator.Struct(payload); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return time.Time{}, &ValidationError{Field: strings.ToLower(fieldErrs[0].Field()), Detail: "is required"}
		}
		return time.Time{}, &ValidationError{Field: "payload", Detail: err.Error()}
	}

	date, err := ParseDate(payload.Date)
	if err != nil {
		return time.Time{}, &ValidationError{Field: "date", Detail: "must be a valid date"}
	}

	if math.IsNaN(payload.Duration) || math.IsInf(payload.Duration, 0) {
		return time.Time{}, &ValidationError{Field: "duration", Detail: "must be a finite number of minutes"}
	}

	return date, nil
}

// Exclude suppresses the commit with the given sha. When an override for the
// sha already exists its excluded flag is set; otherwise a new exclusion
// override is appended. Calling it twice is a no-op beyond the flag.
func (p *Project) Exclude(sha string) error {
	key := NormalizeSHA(sha)
	if key == "" || key == "-" {
		return &ValidationError{Field: "sha", Detail: "is required"}
	}

	for i := range p.Overrides {
		if NormalizeSHA(p.Overrides[i].SHA) == key {
			p.Overrides[i].Excluded = true
			return nil
		}
	}

	p.Overrides = append(p.Overrides, Override{SHA: sha, Excluded: true})
	return nil
}

// AddCommitPatch appends an override that replaces the groomed entry with the
// same sha. Status defaults to "Done" when omitted.
func (p *Project) AddCommitPatch(payload OverridePayload) (Override, error) {
	if strings.TrimSpace(payload.SHA) == "" || strings.TrimSpace(payload.SHA) == "-" {
		return Override{}, &ValidationError{Field: "sha", Detail: "is required"}
	}
	date, err := validatePayload(payload)
	if err != nil {
		return Override{}, err
	}

	override := Override{
		ID:          uuid.NewString(),
		Type:        TypeCommitPatch,
		SHA:         payload.SHA,
		URL:         payload.URL,
		Name:        payload.Name,
		Description: payload.Description,
		Date:        date.UTC().Format(time.RFC3339),
		Duration:    int(payload.Duration),
		Status:      defaultString(payload.Status, "Done"),
		Author:      defaultString(payload.Author, "?"),
	}
	p.Overrides = append(p.Overrides, override)
	return override, nil
}

// AddCommitless appends an entry with no backing commit. Its author defaults
// to the project identity.
func (p *Project) AddCommitless(payload OverridePayload) (Override, error) {
	date, err := validatePayload(payload)
	if err != nil {
		return Override{}, err
	}

	override := Override{
		ID:          uuid.NewString(),
		Type:        TypeCommitless,
		Name:        payload.Name,
		Description: payload.Description,
		Date:        date.UTC().Format(time.RFC3339),
		Duration:    int(payload.Duration),
		Status:      payload.Status,
		Author:      defaultString(payload.Author, p.Identity),
	}
	p.Overrides = append(p.Overrides, override)
	return override, nil
}

// EditOverride merges the payload fields into the override with the given id.
// Name and date are always applied (the validation gate requires them);
// omitted optional fields keep their current values, so an edit touching only
// the name never wipes tracked duration, status, or author. Validation and
// lookup both happen before any mutation, so a rejected edit leaves the list
// untouched.
func (p *Project) EditOverride(id string, payload OverridePayload) (Override, error) {
	date, err := validatePayload(payload)
	if err != nil {
		return Override{}, err
	}

	for i := range p.Overrides {
		if p.Overrides[i].ID != id || id == "" {
			continue
		}
		override := &p.Overrides[i]
		override.Name = payload.Name
		override.Date = date.UTC().Format(time.RFC3339)
		if strings.TrimSpace(payload.URL) != "" {
			override.URL = payload.URL
		}
		if strings.TrimSpace(payload.Description) != "" {
			override.Description = payload.Description
		}
		if payload.Duration != 0 {
			override.Duration = int(payload.Duration)
		}
		if strings.TrimSpace(payload.Status) != "" {
			override.Status = payload.Status
		}
		if strings.TrimSpace(payload.Author) != "" {
			override.Author = payload.Author
		}
		return *override, nil
	}
	return Override{}, fmt.Errorf("edit override %q: %w", id, ErrOverrideNotFound)
}

// RemoveOverride deletes the override with the given id.
func (p *Project) RemoveOverride(id string) error {
	if id == "" || id == "-" {
		return &ValidationError{Field: "id", Detail: "is required"}
	}
	for i := range p.Overrides {
		if p.Overrides[i].ID == id {
			p.Overrides = append(p.Overrides[:i], p.Overrides[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("remove override %q: %w", id, ErrOverrideNotFound)
}

func defaultString(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
