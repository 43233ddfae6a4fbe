package services

import (
	"notekeeper/models"
	"strings"
)

// CategoryService handles business logic for the shared category namespace
type CategoryService struct {
	repo CategoryRepository
}

// NewCategoryService creates a new category service
func NewCategoryService(repo CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

// List retrieves all categories
func (cs *CategoryService) List() ([]models.Category, error) {
	return cs.repo.ListCategories()
}

// Create resolves a name to its canonical category, creating it on first
// use. Resubmitting an equivalent spelling returns the existing row.
func (cs *CategoryService) Create(name string) (*models.Category, error) {
	normalized := NormalizeCategoryName(name)
	if normalized == "" {
		return nil, ErrInvalidCategoryName
	}
	return cs.repo.GetOrCreateCategory(normalized)
}

// NormalizeCategoryName canonicalizes a client-supplied category name:
// lower-case, leading/trailing whitespace trimmed, internal whitespace
// runs collapsed to a single space. " Work " and "WORK" name the same
// category.
func NormalizeCategoryName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

// normalizeRefs canonicalizes every name reference in place and rejects
// names that normalize to nothing. Id references pass through; their
// existence is checked transactionally by the store.
func normalizeRefs(refs []models.CategoryRef) ([]models.CategoryRef, error) {
	normalized := make([]models.CategoryRef, 0, len(refs))
	for _, ref := range refs {
		if ref.ID != nil {
			normalized = append(normalized, ref)
			continue
		}
		name := NormalizeCategoryName(ref.Name)
		if name == "" {
			return nil, ErrInvalidCategoryName
		}
		normalized = append(normalized, models.RefByName(name))
	}
	return normalized, nil
}
