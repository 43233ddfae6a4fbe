package services

import "errors"

// Common service-level errors
var (
	// Auth errors
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrUnauthorized       = errors.New("unauthorized access")

	// Note errors
	ErrNoteNotFound = errors.New("note not found")
	ErrEmptyTitle   = errors.New("title must not be empty")

	// Category errors
	ErrInvalidCategoryName = errors.New("category name must not be empty")
)
