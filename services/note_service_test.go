package services

import (
	"errors"
	"notekeeper/database"
	"notekeeper/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// ==================== MOCKS ====================

// MockNoteRepository is a mock implementation of NoteRepository interface
type MockNoteRepository struct {
	mock.Mock
}

// Ensure MockNoteRepository implements NoteRepository interface
var _ NoteRepository = (*MockNoteRepository)(nil)

func (m *MockNoteRepository) CreateNote(userID, title, content string, refs []models.CategoryRef) (*models.Note, error) {
	args := m.Called(userID, title, content, refs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Note), args.Error(1)
}

func (m *MockNoteRepository) GetNote(noteID int64, scope database.Scope) (*models.Note, error) {
	args := m.Called(noteID, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Note), args.Error(1)
}

func (m *MockNoteRepository) ListNotes(scope database.Scope) ([]models.Note, error) {
	args := m.Called(scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Note), args.Error(1)
}

func (m *MockNoteRepository) UpdateNote(noteID int64, scope database.Scope, upd models.UpdateNoteRequest) (*models.Note, error) {
	args := m.Called(noteID, scope, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Note), args.Error(1)
}

func (m *MockNoteRepository) DeleteNote(noteID int64, scope database.Scope) (bool, error) {
	args := m.Called(noteID, scope)
	return args.Bool(0), args.Error(1)
}

func (m *MockNoteRepository) ReplaceCategories(noteID int64, categories []models.Category) error {
	args := m.Called(noteID, categories)
	return args.Error(0)
}

// ==================== TESTS ====================

func TestNoteService_Create(t *testing.T) {
	tests := []struct {
		name          string
		req           models.CreateNoteRequest
		mockSetup     func(*MockNoteRepository)
		expectedError error
	}{
		{
			name: "Success - trims title and normalizes name refs",
			req: models.CreateNoteRequest{
				Title:   "  My Note  ",
				Content: "body",
				CategoryRefs: []models.CategoryRef{
					models.RefByName("  Test   Category "),
				},
			},
			mockSetup: func(repo *MockNoteRepository) {
				repo.On("CreateNote", "user123", "My Note", "body", []models.CategoryRef{
					models.RefByName("test category"),
				}).Return(&models.Note{ID: 1, UserID: "user123", Title: "My Note"}, nil)
			},
		},
		{
			name:          "Failure - empty title",
			req:           models.CreateNoteRequest{Title: "   "},
			mockSetup:     func(repo *MockNoteRepository) {},
			expectedError: ErrEmptyTitle,
		},
		{
			name: "Failure - name normalizes to nothing",
			req: models.CreateNoteRequest{
				Title:        "Note",
				CategoryRefs: []models.CategoryRef{models.RefByName("   ")},
			},
			mockSetup:     func(repo *MockNoteRepository) {},
			expectedError: ErrInvalidCategoryName,
		},
		{
			name: "Failure - repo error passes through",
			req:  models.CreateNoteRequest{Title: "Note"},
			mockSetup: func(repo *MockNoteRepository) {
				repo.On("CreateNote", "user123", "Note", "", []models.CategoryRef{}).
					Return(nil, errors.New("disk full"))
			},
			expectedError: errors.New("disk full"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockNoteRepository)
			tt.mockSetup(repo)

			service := NewNoteService(repo)
			note, err := service.Create("user123", tt.req)

			if tt.expectedError != nil {
				require.Error(t, err)
				assert.Equal(t, tt.expectedError.Error(), err.Error())
				assert.Nil(t, note)
			} else {
				require.NoError(t, err)
				require.NotNil(t, note)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestNoteService_Get(t *testing.T) {
	t.Run("maps absent note to ErrNoteNotFound", func(t *testing.T) {
		repo := new(MockNoteRepository)
		repo.On("GetNote", int64(42), database.OwnedBy("user123")).Return(nil, nil)

		service := NewNoteService(repo)
		note, err := service.Get(42, "user123")

		assert.ErrorIs(t, err, ErrNoteNotFound)
		assert.Nil(t, note)
		repo.AssertExpectations(t)
	})

	t.Run("returns owned note", func(t *testing.T) {
		repo := new(MockNoteRepository)
		expected := &models.Note{ID: 42, UserID: "user123", Title: "mine"}
		repo.On("GetNote", int64(42), database.OwnedBy("user123")).Return(expected, nil)

		service := NewNoteService(repo)
		note, err := service.Get(42, "user123")

		require.NoError(t, err)
		assert.Equal(t, expected, note)
	})
}

func TestNoteService_Update(t *testing.T) {
	t.Run("normalizes supplied refs before delegating", func(t *testing.T) {
		repo := new(MockNoteRepository)
		refs := []models.CategoryRef{models.RefByName(" WORK  stuff ")}
		normalized := []models.CategoryRef{models.RefByName("work stuff")}

		repo.On("UpdateNote", int64(7), database.OwnedBy("user123"),
			models.UpdateNoteRequest{CategoryRefs: &normalized}).
			Return(&models.Note{ID: 7}, nil)

		service := NewNoteService(repo)
		_, err := service.Update(7, "user123", models.UpdateNoteRequest{CategoryRefs: &refs})

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("whitespace-only title rejected", func(t *testing.T) {
		repo := new(MockNoteRepository)
		service := NewNoteService(repo)

		title := "   "
		_, err := service.Update(7, "user123", models.UpdateNoteRequest{Title: &title})
		assert.ErrorIs(t, err, ErrEmptyTitle)
	})

	t.Run("absent note maps to ErrNoteNotFound", func(t *testing.T) {
		repo := new(MockNoteRepository)
		repo.On("UpdateNote", int64(7), database.OwnedBy("user123"), models.UpdateNoteRequest{}).
			Return(nil, nil)

		service := NewNoteService(repo)
		_, err := service.Update(7, "user123", models.UpdateNoteRequest{})
		assert.ErrorIs(t, err, ErrNoteNotFound)
	})
}

func TestNoteService_Delete(t *testing.T) {
	t.Run("maps missing row to ErrNoteNotFound", func(t *testing.T) {
		repo := new(MockNoteRepository)
		repo.On("DeleteNote", int64(9), database.OwnedBy("user123")).Return(false, nil)

		service := NewNoteService(repo)
		err := service.Delete(9, "user123")
		assert.ErrorIs(t, err, ErrNoteNotFound)
	})

	t.Run("success", func(t *testing.T) {
		repo := new(MockNoteRepository)
		repo.On("DeleteNote", int64(9), database.OwnedBy("user123")).Return(true, nil)

		service := NewNoteService(repo)
		assert.NoError(t, service.Delete(9, "user123"))
	})
}

func TestNoteService_ListAll(t *testing.T) {
	repo := new(MockNoteRepository)
	repo.On("ListNotes", database.AdminScope()).Return([]models.Note{{ID: 1}, {ID: 2}}, nil)

	service := NewNoteService(repo)
	notes, err := service.ListAll()

	require.NoError(t, err)
	assert.Len(t, notes, 2)
	repo.AssertExpectations(t)
}
