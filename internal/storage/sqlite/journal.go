package sqlite

import (
	"github.com/nwhitfield/daybook/internal/models"
)

// SaveEntry upserts a journal entry by its calendar day. Saving over an
// existing day replaces the texts but keeps the original creation time.
func (s *Store) SaveEntry(entry models.JournalEntry) error {
	return upsertEntry(s.db, entry)
}

func upsertEntry(e execer, entry models.JournalEntry) error {
	_, err := e.Exec(`
		INSERT INTO entries (date, yesterday, today, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			yesterday = excluded.yesterday,
			today = excluded.today`,
		entry.Date, entry.Yesterday, entry.Today, formatTime(entry.CreatedAt))
	return err
}

func (s *Store) GetEntry(date string) (models.JournalEntry, error) {
	row := s.db.QueryRow(`
		SELECT date, yesterday, today, created_at
		FROM entries WHERE date = ?`, date)

	var e models.JournalEntry
	var createdAt string
	if err := row.Scan(&e.Date, &e.Yesterday, &e.Today, &createdAt); err != nil {
		return models.JournalEntry{}, err
	}
	e.CreatedAt = parseTime(createdAt)
	return e, nil
}

func (s *Store) GetAllEntries() ([]models.JournalEntry, error) {
	rows, err := s.db.Query(`
		SELECT date, yesterday, today, created_at
		FROM entries ORDER BY date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.JournalEntry
	for rows.Next() {
		var e models.JournalEntry
		var createdAt string
		if err := rows.Scan(&e.Date, &e.Yesterday, &e.Today, &createdAt); err != nil {
			return nil, err
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *Store) DeleteEntry(date string) error {
	_, err := s.db.Exec("DELETE FROM entries WHERE date = ?", date)
	return err
}
