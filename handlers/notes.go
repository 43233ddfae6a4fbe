package handlers

import (
	"notekeeper/app"
	"notekeeper/middleware"
	"notekeeper/models"

	"github.com/gofiber/fiber/v2"
)

// ListNotes returns the acting user's notes, most recently updated first
func ListNotes(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := middleware.GetUserID(c)

		notes, err := a.Notes.List(userID)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch notes", err)
		}
		if notes == nil {
			notes = []models.Note{}
		}

		return success(c, fiber.Map{"notes": notes})
	}
}

// CreateNote creates a note with an optional category reference list.
// References may mix numeric ids and free-form names; the response
// carries the resolved canonical names.
func CreateNote(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.CreateNoteRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if err := a.Validator.Validate(req); err != nil {
			return serviceError(c, err)
		}

		note, err := a.Notes.Create(middleware.GetUserID(c), req)
		if err != nil {
			return serviceError(c, err)
		}

		return created(c, fiber.Map{"note": note})
	}
}

// GetNote retrieves a single note owned by the acting user
func GetNote(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		noteID, err := c.ParamsInt("id")
		if err != nil {
			return badRequest(c, "Invalid note id")
		}

		note, err := a.Notes.Get(int64(noteID), middleware.GetUserID(c))
		if err != nil {
			return serviceError(c, err)
		}

		return success(c, fiber.Map{"note": note})
	}
}

// UpdateNote applies a partial update. Omitting category_refs leaves the
// category set untouched; an explicit empty list clears it.
func UpdateNote(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		noteID, err := c.ParamsInt("id")
		if err != nil {
			return badRequest(c, "Invalid note id")
		}

		var req models.UpdateNoteRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if err := a.Validator.Validate(req); err != nil {
			return serviceError(c, err)
		}

		note, err := a.Notes.Update(int64(noteID), middleware.GetUserID(c), req)
		if err != nil {
			return serviceError(c, err)
		}

		return success(c, fiber.Map{"note": note})
	}
}

// DeleteNote removes a note owned by the acting user
func DeleteNote(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		noteID, err := c.ParamsInt("id")
		if err != nil {
			return badRequest(c, "Invalid note id")
		}

		if err := a.Notes.Delete(int64(noteID), middleware.GetUserID(c)); err != nil {
			return serviceError(c, err)
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}

// AdminListNotes lists every note regardless of owner. Routed behind
// AdminRequired.
func AdminListNotes(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		notes, err := a.Notes.ListAll()
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch notes", err)
		}
		if notes == nil {
			notes = []models.Note{}
		}

		return success(c, fiber.Map{"notes": notes})
	}
}
