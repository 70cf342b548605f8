package sqlite

import (
	"github.com/nwhitfield/daybook/internal/models"
)

func (s *Store) AddPage(page models.Page) error {
	return s.UpdatePage(page)
}

func (s *Store) UpdatePage(page models.Page) error {
	return upsertPage(s.db, page)
}

func upsertPage(e execer, page models.Page) error {
	_, err := e.Exec(`
		INSERT INTO pages (id, title, content, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			content = excluded.content,
			updated_at = excluded.updated_at`,
		page.ID, page.Title, page.Content, formatTime(page.CreatedAt), formatTime(page.UpdatedAt))
	return err
}

func (s *Store) GetPage(id string) (models.Page, error) {
	row := s.db.QueryRow(`
		SELECT id, title, content, created_at, updated_at
		FROM pages WHERE id = ?`, id)

	var p models.Page
	var createdAt, updatedAt string
	if err := row.Scan(&p.ID, &p.Title, &p.Content, &createdAt, &updatedAt); err != nil {
		return models.Page{}, err
	}
	p.CreatedAt = parseTime(createdAt)
	p.UpdatedAt = parseTime(updatedAt)
	return p, nil
}

func (s *Store) GetAllPages() ([]models.Page, error) {
	rows, err := s.db.Query(`
		SELECT id, title, content, created_at, updated_at
		FROM pages ORDER BY updated_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []models.Page
	for rows.Next() {
		var p models.Page
		var createdAt, updatedAt string
		if err := rows.Scan(&p.ID, &p.Title, &p.Content, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		p.CreatedAt = parseTime(createdAt)
		p.UpdatedAt = parseTime(updatedAt)
		pages = append(pages, p)
	}
	return pages, rows.Err()
}

func (s *Store) DeletePage(id string) error {
	_, err := s.db.Exec("DELETE FROM pages WHERE id = ?", id)
	return err
}
