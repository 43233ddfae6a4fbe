package database

import (
	"database/sql"
	"fmt"
	"notekeeper/models"
	"strings"
	"time"
)

// ==================== NOTE OPERATIONS ====================

// CreateNote inserts a note and links its resolved category set in one
// transaction. Either the note commits fully linked or nothing is
// persisted, including categories that would have been created along the
// way.
func (r *Repository) CreateNote(userID, title, content string, refs []models.CategoryRef) (*models.Note, error) {
	now := time.Now().UTC()
	note := &models.Note{
		UserID:    userID,
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := r.execTx(func(tx *sql.Tx) error {
		res, err := tx.Exec(`
			INSERT INTO notes (user_id, title, content, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?)
		`, note.UserID, note.Title, note.Content, note.CreatedAt, note.UpdatedAt)
		if err != nil {
			return err
		}

		note.ID, err = res.LastInsertId()
		if err != nil {
			return err
		}

		categories, err := resolveCategories(tx, refs)
		if err != nil {
			return err
		}
		if err := replaceCategories(tx, note.ID, categories); err != nil {
			return err
		}

		note.Categories = categories
		return nil
	})
	if err != nil {
		return nil, err
	}

	return note, nil
}

// GetNote retrieves a note visible under scope. Absent and not-owned are
// indistinguishable: both return nil.
func (r *Repository) GetNote(noteID int64, scope Scope) (*models.Note, error) {
	pred, args := scope.predicate()

	var note models.Note
	err := r.db.QueryRow(fmt.Sprintf(`
		SELECT id, user_id, title, content, created_at, updated_at
		FROM notes
		WHERE id = ? AND %s
	`, pred), append([]interface{}{noteID}, args...)...).Scan(
		&note.ID, &note.UserID, &note.Title, &note.Content,
		&note.CreatedAt, &note.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	note.Categories, err = loadCategories(r.db, note.ID)
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// ListNotes returns all notes visible under scope, most recently updated
// first, with category sets populated.
func (r *Repository) ListNotes(scope Scope) ([]models.Note, error) {
	pred, args := scope.predicate()

	rows, err := r.db.Query(fmt.Sprintf(`
		SELECT id, user_id, title, content, created_at, updated_at
		FROM notes
		WHERE %s
		ORDER BY updated_at DESC, id DESC
	`, pred), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []models.Note
	for rows.Next() {
		var note models.Note
		if err := rows.Scan(
			&note.ID, &note.UserID, &note.Title, &note.Content,
			&note.CreatedAt, &note.UpdatedAt,
		); err != nil {
			return nil, err
		}
		note.Categories = []models.Category{}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachCategories(notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// UpdateNote applies a partial update under scope and refreshes
// updated_at. A nil field leaves the stored value untouched; a non-nil
// CategoryRefs replaces the whole category set, empty list included.
// Returns nil when no visible note matches.
func (r *Repository) UpdateNote(noteID int64, scope Scope, upd models.UpdateNoteRequest) (*models.Note, error) {
	pred, args := scope.predicate()

	var note models.Note
	err := r.execTx(func(tx *sql.Tx) error {
		err := tx.QueryRow(fmt.Sprintf(`
			SELECT id, user_id, title, content, created_at, updated_at
			FROM notes
			WHERE id = ? AND %s
		`, pred), append([]interface{}{noteID}, args...)...).Scan(
			&note.ID, &note.UserID, &note.Title, &note.Content,
			&note.CreatedAt, &note.UpdatedAt,
		)
		if err == sql.ErrNoRows {
			note.ID = 0
			return nil
		}
		if err != nil {
			return err
		}

		if upd.Title != nil {
			note.Title = *upd.Title
		}
		if upd.Content != nil {
			note.Content = *upd.Content
		}
		note.UpdatedAt = time.Now().UTC()

		if _, err := tx.Exec(`
			UPDATE notes SET title = ?, content = ?, updated_at = ? WHERE id = ?
		`, note.Title, note.Content, note.UpdatedAt, note.ID); err != nil {
			return err
		}

		if upd.CategoryRefs != nil {
			categories, err := resolveCategories(tx, *upd.CategoryRefs)
			if err != nil {
				return err
			}
			if err := replaceCategories(tx, note.ID, categories); err != nil {
				return err
			}
			note.Categories = categories
			return nil
		}

		note.Categories, err = loadCategories(tx, note.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if note.ID == 0 {
		return nil, nil
	}
	return &note, nil
}

// DeleteNote removes a note visible under scope. The boolean reports
// whether a row was deleted.
func (r *Repository) DeleteNote(noteID int64, scope Scope) (bool, error) {
	pred, args := scope.predicate()

	res, err := r.db.Exec(fmt.Sprintf(`
		DELETE FROM notes WHERE id = ? AND %s
	`, pred), append([]interface{}{noteID}, args...)...)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// ReplaceCategories atomically swaps a note's category set for the given
// one. Applying the same set twice leaves the link table unchanged.
func (r *Repository) ReplaceCategories(noteID int64, categories []models.Category) error {
	return r.execTx(func(tx *sql.Tx) error {
		return replaceCategories(tx, noteID, categories)
	})
}

// replaceCategories implements full-replace semantics: links absent from
// the new set are removed, missing ones are added, surviving ones are
// left alone.
func replaceCategories(q querier, noteID int64, categories []models.Category) error {
	if len(categories) == 0 {
		_, err := q.Exec(`DELETE FROM note_categories WHERE note_id = ?`, noteID)
		return err
	}

	placeholders := make([]string, len(categories))
	args := []interface{}{noteID}
	for i, cat := range categories {
		placeholders[i] = "?"
		args = append(args, cat.ID)
	}

	_, err := q.Exec(fmt.Sprintf(`
		DELETE FROM note_categories
		WHERE note_id = ? AND category_id NOT IN (%s)
	`, strings.Join(placeholders, ",")), args...)
	if err != nil {
		return err
	}

	for _, cat := range categories {
		if _, err := q.Exec(`
			INSERT OR IGNORE INTO note_categories (note_id, category_id) VALUES (?, ?)
		`, noteID, cat.ID); err != nil {
			return err
		}
	}
	return nil
}

func loadCategories(q querier, noteID int64) ([]models.Category, error) {
	rows, err := q.Query(`
		SELECT c.id, c.name
		FROM categories c
		JOIN note_categories nc ON nc.category_id = c.id
		WHERE nc.note_id = ?
		ORDER BY c.name ASC
	`, noteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var cat models.Category
		if err := rows.Scan(&cat.ID, &cat.Name); err != nil {
			return nil, err
		}
		categories = append(categories, cat)
	}
	return categories, rows.Err()
}

// attachCategories populates category sets for a batch of notes with a
// single join query.
func (r *Repository) attachCategories(notes []models.Note) error {
	if len(notes) == 0 {
		return nil
	}

	placeholders := make([]string, len(notes))
	args := make([]interface{}, len(notes))
	index := make(map[int64]*models.Note, len(notes))
	for i := range notes {
		placeholders[i] = "?"
		args[i] = notes[i].ID
		index[notes[i].ID] = &notes[i]
	}

	rows, err := r.db.Query(fmt.Sprintf(`
		SELECT nc.note_id, c.id, c.name
		FROM categories c
		JOIN note_categories nc ON nc.category_id = c.id
		WHERE nc.note_id IN (%s)
		ORDER BY c.name ASC
	`, strings.Join(placeholders, ",")), args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var noteID int64
		var cat models.Category
		if err := rows.Scan(&noteID, &cat.ID, &cat.Name); err != nil {
			return err
		}
		if note, ok := index[noteID]; ok {
			note.Categories = append(note.Categories, cat)
		}
	}
	return rows.Err()
}
