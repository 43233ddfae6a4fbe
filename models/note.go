package models

import (
	"encoding/json"
	"fmt"
	"time"
)

type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
	LastLoginAt  time.Time `json:"last_login_at"`
}

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Note struct {
	ID         int64      `json:"id"`
	UserID     string     `json:"user_id"`
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	Categories []Category `json:"-"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// MarshalJSON renders the category set as canonical names; internal
// category ids never appear in note responses.
func (n Note) MarshalJSON() ([]byte, error) {
	names := make([]string, 0, len(n.Categories))
	for _, c := range n.Categories {
		names = append(names, c.Name)
	}

	type alias Note
	return json.Marshal(struct {
		alias
		Categories []string `json:"categories"`
	}{alias(n), names})
}

// CategoryRef is a client-supplied category reference: either the numeric
// id of an existing category or a free-form name to resolve-or-create.
// The variant is fixed at decode time so nothing downstream inspects JSON
// types.
type CategoryRef struct {
	ID   *int64
	Name string
}

func RefByID(id int64) CategoryRef      { return CategoryRef{ID: &id} }
func RefByName(name string) CategoryRef { return CategoryRef{Name: name} }

func (r *CategoryRef) UnmarshalJSON(data []byte) error {
	var id int64
	if err := json.Unmarshal(data, &id); err == nil {
		r.ID = &id
		r.Name = ""
		return nil
	}

	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		r.ID = nil
		r.Name = name
		return nil
	}

	return fmt.Errorf("category reference must be an integer id or a string name, got %s", data)
}

func (r CategoryRef) MarshalJSON() ([]byte, error) {
	if r.ID != nil {
		return json.Marshal(*r.ID)
	}
	return json.Marshal(r.Name)
}

type CreateNoteRequest struct {
	Title        string        `json:"title" validate:"required,max=100"`
	Content      string        `json:"content"`
	CategoryRefs []CategoryRef `json:"category_refs"`
}

// UpdateNoteRequest carries partial updates. Nil pointers mean "leave the
// field untouched". A nil CategoryRefs is distinct from an empty list,
// which clears all associations.
type UpdateNoteRequest struct {
	Title        *string        `json:"title" validate:"omitempty,max=100"`
	Content      *string        `json:"content"`
	CategoryRefs *[]CategoryRef `json:"category_refs"`
}

type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,max=64"`
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=32,alphanum"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}
