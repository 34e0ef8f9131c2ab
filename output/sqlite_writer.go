package output

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"gitjrnl/journal"
)

// SQLiteWriter exports a journal into a standalone report database. Each
// Write replaces the previous report so the database always mirrors the
// latest aggregation.
type SQLiteWriter struct{}

func (w *SQLiteWriter) Write(path string, days []journal.DayGroup, total journal.Totals) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open sqlite report: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("ping sqlite report: %w", err)
	}
	if err := ensureReportSchema(db); err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	for _, stmt := range []string{`DELETE FROM entries;`, `DELETE FROM days;`} {
		if _, err := tx.Exec(stmt); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("clear previous report: %w", err)
		}
	}

	insertDay, err := tx.Prepare(`INSERT INTO days (day_key, label, total_minutes) VALUES (?, ?, ?);`)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("prepare day insert: %w", err)
	}
	defer insertDay.Close()

	insertEntry, err := tx.Prepare(`
INSERT INTO entries (
	day_key,
	sha,
	name,
	description,
	entry_date,
	duration_minutes,
	status,
	author,
	url,
	override_id
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("prepare entry insert: %w", err)
	}
	defer insertEntry.Close()

	for _, day := range days {
		if _, err := insertDay.Exec(day.DayKey, day.Label, day.Total.Minutes); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert day %s: %w", day.DayKey, err)
		}
		for _, entry := range day.Entries {
			if _, err := insertEntry.Exec(
				day.DayKey,
				entry.SHA,
				entry.Name,
				entry.Description,
				entry.Date.UTC().Format(time.RFC3339),
				entry.Duration,
				entry.Status,
				entry.Author,
				entry.URL,
				entry.OverrideID,
			); err != nil {
				_ = tx.Rollback()
				return fmt.Errorf("insert entry %s: %w", entry.SHA, err)
			}
		}
	}

	if _, err := tx.Exec(
		`INSERT INTO days (day_key, label, total_minutes) VALUES ('total', 'Total', ?)
		 ON CONFLICT(day_key) DO UPDATE SET total_minutes = excluded.total_minutes;`,
		total.Minutes,
	); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("insert grand total: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

func ensureReportSchema(db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS days (
	day_key TEXT PRIMARY KEY,
	label TEXT NOT NULL,
	total_minutes INTEGER NOT NULL CHECK(total_minutes >= 0)
);
CREATE TABLE IF NOT EXISTS entries (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	day_key TEXT NOT NULL REFERENCES days(day_key),
	sha TEXT NOT NULL DEFAULT '',
	name TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	entry_date TEXT NOT NULL,
	duration_minutes INTEGER NOT NULL CHECK(duration_minutes >= 0),
	status TEXT NOT NULL DEFAULT '',
	author TEXT NOT NULL DEFAULT '',
	url TEXT NOT NULL DEFAULT '',
	override_id TEXT NOT NULL DEFAULT ''
);
`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("create report schema: %w", err)
	}
	return nil
}
