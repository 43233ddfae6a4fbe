package app

import (
	"log/slog"
	"notekeeper/services"
	"notekeeper/validator"
)

// App holds all application dependencies
// This struct is the central point for dependency injection
type App struct {
	Notes      *services.NoteService
	Categories *services.CategoryService
	Auth       *services.AuthService
	Validator  *validator.Validator
	Logger     *slog.Logger
}

// New creates a new App instance with all dependencies
func New(notes *services.NoteService, categories *services.CategoryService, auth *services.AuthService, logger *slog.Logger) *App {
	return &App{
		Notes:      notes,
		Categories: categories,
		Auth:       auth,
		Validator:  validator.New(),
		Logger:     logger,
	}
}
