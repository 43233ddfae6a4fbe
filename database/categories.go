package database

import (
	"database/sql"
	"fmt"
	"notekeeper/models"
)

// ==================== CATEGORIES ====================

// CategoryNotFoundError reports a category reference by id that matched no
// row. It aborts the whole resolution, so no partial association survives.
type CategoryNotFoundError struct {
	ID int64
}

func (e *CategoryNotFoundError) Error() string {
	return fmt.Sprintf("category %d does not exist", e.ID)
}

func (r *Repository) GetCategoryByID(id int64) (*models.Category, error) {
	return findCategoryByID(r.db, id)
}

func (r *Repository) GetCategoryByName(name string) (*models.Category, error) {
	return findCategoryByName(r.db, name)
}

// GetOrCreateCategory resolves a normalized name to its canonical row,
// creating it on first reference. Two callers racing on the same new name
// both succeed and end up with the same row: the insert is attempted
// against the unique-name constraint, and a conflict means re-reading the
// winner instead of failing.
func (r *Repository) GetOrCreateCategory(name string) (*models.Category, error) {
	var cat *models.Category
	err := r.execTx(func(tx *sql.Tx) error {
		var err error
		cat, err = getOrCreateCategory(tx, name)
		return err
	})
	return cat, err
}

func (r *Repository) ListCategories() ([]models.Category, error) {
	rows, err := r.db.Query(`SELECT id, name FROM categories ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var cat models.Category
		if err := rows.Scan(&cat.ID, &cat.Name); err != nil {
			return nil, err
		}
		categories = append(categories, cat)
	}
	return categories, rows.Err()
}

func findCategoryByID(q querier, id int64) (*models.Category, error) {
	var cat models.Category
	err := q.QueryRow(`SELECT id, name FROM categories WHERE id = ?`, id).Scan(&cat.ID, &cat.Name)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

func findCategoryByName(q querier, name string) (*models.Category, error) {
	var cat models.Category
	err := q.QueryRow(`SELECT id, name FROM categories WHERE name = ?`, name).Scan(&cat.ID, &cat.Name)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

func getOrCreateCategory(q querier, name string) (*models.Category, error) {
	existing, err := findCategoryByName(q, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	res, err := q.Exec(`INSERT INTO categories (name) VALUES (?)`, name)
	if err != nil {
		if isUniqueViolation(err) {
			// Lost the creation race; the winner's row is canonical
			winner, ferr := findCategoryByName(q, name)
			if ferr != nil {
				return nil, ferr
			}
			if winner == nil {
				return nil, fmt.Errorf("category %q vanished after unique conflict", name)
			}
			return winner, nil
		}
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &models.Category{ID: id, Name: name}, nil
}

// resolveCategories turns a reference list into concrete category rows
// inside tx. Id references must exist; name references (already
// normalized by the caller) are resolved-or-created. The result is
// deduplicated by category id, so a category reached once by id and once
// by an equivalent name collapses to a single entry.
func resolveCategories(tx *sql.Tx, refs []models.CategoryRef) ([]models.Category, error) {
	resolved := make([]models.Category, 0, len(refs))
	seen := make(map[int64]bool, len(refs))

	for _, ref := range refs {
		var cat *models.Category
		var err error

		if ref.ID != nil {
			cat, err = findCategoryByID(tx, *ref.ID)
			if err != nil {
				return nil, err
			}
			if cat == nil {
				return nil, &CategoryNotFoundError{ID: *ref.ID}
			}
		} else {
			cat, err = getOrCreateCategory(tx, ref.Name)
			if err != nil {
				return nil, err
			}
		}

		if !seen[cat.ID] {
			seen[cat.ID] = true
			resolved = append(resolved, *cat)
		}
	}

	return resolved, nil
}
