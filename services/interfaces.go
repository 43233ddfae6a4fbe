package services

import (
	"notekeeper/database"
	"notekeeper/models"
)

// NoteRepository defines the interface for note data access
type NoteRepository interface {
	CreateNote(userID, title, content string, refs []models.CategoryRef) (*models.Note, error)
	GetNote(noteID int64, scope database.Scope) (*models.Note, error)
	ListNotes(scope database.Scope) ([]models.Note, error)
	UpdateNote(noteID int64, scope database.Scope, upd models.UpdateNoteRequest) (*models.Note, error)
	DeleteNote(noteID int64, scope database.Scope) (bool, error)
	ReplaceCategories(noteID int64, categories []models.Category) error
}

// CategoryRepository defines the interface for category data access
type CategoryRepository interface {
	GetCategoryByID(id int64) (*models.Category, error)
	GetOrCreateCategory(name string) (*models.Category, error)
	ListCategories() ([]models.Category, error)
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	CreateUser(user *models.User) error
	GetUser(userID string) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	TouchLastLogin(userID string) error
}
