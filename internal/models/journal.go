package models

import "time"

// JournalEntry is a single day's journal record. Entries are keyed by their
// calendar day; at most one entry exists per day.
type JournalEntry struct {
	Date      string    `json:"date"` // YYYY-MM-DD format
	Yesterday string    `json:"yesterday"`
	Today     string    `json:"today"`
	CreatedAt time.Time `json:"created_at"`
}
