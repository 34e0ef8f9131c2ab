package project

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrCorrupt marks a project file that is empty or not valid JSON.
var ErrCorrupt = errors.New("project file is empty or corrupted")

// StructuralError marks a parsable project document that violates the
// required shape (missing field, wrong type).
type StructuralError struct {
	Field  string
	Detail string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("invalid project: field %q %s", e.Field, e.Detail)
}

var requiredFields = []string{"repositoryUrl", "projectName", "branch", "identity", "overrides"}

// Load reads and validates a project file. An empty file fails with
// ErrCorrupt; a structurally invalid document fails with *StructuralError.
// A partial project is never returned.
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read project file: %w", err)
	}
	return decodeProject(data)
}

// Save validates and atomically persists the project: write to a temporary
// file, verify it is non-empty and re-parses cleanly, then rename it over the
// target. The existing target is never touched until the rename, so a crash
// mid-write cannot leave a truncated file behind.
func Save(path string, p *Project) error {
	if err := Validate(p); err != nil {
		return err
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize project: %w", err)
	}

	// The temp file lives next to the target so the final rename stays on
	// one filesystem.
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp project file: %w", err)
	}
	tmpPath := tmp.Name()

	if err := writeAndVerify(tmp, data); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("atomic save of %s failed: %w", path, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("atomic save of %s failed: %w", path, err)
	}
	return nil
}

func writeAndVerify(tmp *os.File, data []byte) error {
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	info, err := os.Stat(tmp.Name())
	if err != nil {
		return fmt.Errorf("stat temp file: %w", err)
	}
	if info.Size() == 0 {
		return errors.New("temp file is empty after write")
	}

	written, err := os.ReadFile(tmp.Name())
	if err != nil {
		return fmt.Errorf("re-read temp file: %w", err)
	}
	if _, err := decodeProject(written); err != nil {
		return fmt.Errorf("verify temp file: %w", err)
	}
	return nil
}

// Validate applies the same structural checks Load performs: all required
// fields present, overrides a list, journalStartDate null or a parsable date.
func Validate(p *Project) error {
	if p == nil {
		return &StructuralError{Field: "project", Detail: "is nil"}
	}
	if p.Overrides == nil {
		return &StructuralError{Field: "overrides", Detail: "must be a list"}
	}
	if p.JournalStartDate != nil {
		if _, err := ParseDate(*p.JournalStartDate); err != nil {
			return &StructuralError{Field: "journalStartDate", Detail: "must be null or an ISO date string"}
		}
	}
	return nil
}

func decodeProject(data []byte) (*Project, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrCorrupt
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	// All required fields must exist, even if empty.
	for _, field := range requiredFields {
		if _, ok := raw[field]; !ok {
			return nil, &StructuralError{Field: field, Detail: "is missing"}
		}
	}

	var p Project
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, &StructuralError{Field: "project", Detail: fmt.Sprintf("does not match expected shape: %v", err)}
	}
	if p.Overrides == nil {
		return nil, &StructuralError{Field: "overrides", Detail: "must be a list"}
	}
	if err := Validate(&p); err != nil {
		return nil, err
	}
	return &p, nil
}
