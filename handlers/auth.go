package handlers

import (
	"notekeeper/app"
	"notekeeper/middleware"
	"notekeeper/models"

	"github.com/gofiber/fiber/v2"
)

// Register creates a new user account
func Register(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.RegisterRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if err := a.Validator.Validate(req); err != nil {
			return serviceError(c, err)
		}

		user, err := a.Auth.Register(req.Username, req.Password)
		if err != nil {
			return serviceError(c, err)
		}

		return created(c, fiber.Map{"user": user})
	}
}

// Login verifies credentials and returns a bearer token
func Login(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.LoginRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if err := a.Validator.Validate(req); err != nil {
			return serviceError(c, err)
		}

		token, user, err := a.Auth.Login(req.Username, req.Password)
		if err != nil {
			return serviceError(c, err)
		}

		return success(c, fiber.Map{"token": token, "user": user})
	}
}

// Me returns the authenticated user
func Me(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := middleware.GetUser(c)
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing authorization"})
		}
		return success(c, fiber.Map{"user": user})
	}
}
