package handlers

import (
	"notekeeper/app"
	"notekeeper/models"

	"github.com/gofiber/fiber/v2"
)

// ListCategories returns the shared category namespace
func ListCategories(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		categories, err := a.Categories.List()
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch categories", err)
		}
		if categories == nil {
			categories = []models.Category{}
		}

		return success(c, fiber.Map{"categories": categories})
	}
}

// CreateCategory resolves a name to its canonical category, creating it
// on first use. Resubmitting an equivalent spelling returns the existing
// row rather than a conflict.
func CreateCategory(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.CreateCategoryRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if err := a.Validator.Validate(req); err != nil {
			return serviceError(c, err)
		}

		category, err := a.Categories.Create(req.Name)
		if err != nil {
			return serviceError(c, err)
		}

		return created(c, fiber.Map{"category": category})
	}
}
