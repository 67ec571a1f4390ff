package repository

import (
	"fmt"
	"time"
)

// parseTime parses an RFC3339 column, naming the column in the error.
func parseTime(column, s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing %s: %w", column, err)
	}
	return t, nil
}

// formatTime formats t for SQLite storage, keeping its offset.
func formatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}

// nowUTC returns the current UTC time formatted as RFC3339.
func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}
