package services

import (
	"notekeeper/database"
	"notekeeper/models"
	"strings"
)

// NoteService handles business logic for notes. Every operation is scoped
// to the acting user; a note that exists but belongs to someone else is
// reported as ErrNoteNotFound, never as a distinct authorization failure.
type NoteService struct {
	repo NoteRepository
}

// NewNoteService creates a new note service
func NewNoteService(repo NoteRepository) *NoteService {
	return &NoteService{repo: repo}
}

// Create creates a note owned by userID and associates its resolved
// category set in one atomic step.
func (ns *NoteService) Create(userID string, req models.CreateNoteRequest) (*models.Note, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrEmptyTitle
	}

	refs, err := normalizeRefs(req.CategoryRefs)
	if err != nil {
		return nil, err
	}
	return ns.repo.CreateNote(userID, title, req.Content, refs)
}

// Get retrieves a note owned by userID
func (ns *NoteService) Get(noteID int64, userID string) (*models.Note, error) {
	note, err := ns.repo.GetNote(noteID, database.OwnedBy(userID))
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, ErrNoteNotFound
	}
	return note, nil
}

// List retrieves all notes owned by userID, most recently updated first
func (ns *NoteService) List(userID string) ([]models.Note, error) {
	return ns.repo.ListNotes(database.OwnedBy(userID))
}

// ListAll retrieves every note regardless of owner. Callers must gate
// this behind an explicit admin check; it is never the default path.
func (ns *NoteService) ListAll() ([]models.Note, error) {
	return ns.repo.ListNotes(database.AdminScope())
}

// Update applies a partial update to a note owned by userID. Supplying
// category_refs replaces the whole association set (an empty list clears
// it); omitting the field leaves associations untouched.
func (ns *NoteService) Update(noteID int64, userID string, req models.UpdateNoteRequest) (*models.Note, error) {
	if req.Title != nil {
		trimmed := strings.TrimSpace(*req.Title)
		if trimmed == "" {
			return nil, ErrEmptyTitle
		}
		req.Title = &trimmed
	}
	if req.CategoryRefs != nil {
		refs, err := normalizeRefs(*req.CategoryRefs)
		if err != nil {
			return nil, err
		}
		req.CategoryRefs = &refs
	}

	note, err := ns.repo.UpdateNote(noteID, database.OwnedBy(userID), req)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, ErrNoteNotFound
	}
	return note, nil
}

// Delete removes a note owned by userID
func (ns *NoteService) Delete(noteID int64, userID string) error {
	deleted, err := ns.repo.DeleteNote(noteID, database.OwnedBy(userID))
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNoteNotFound
	}
	return nil
}
