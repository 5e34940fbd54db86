package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kinfolium/kinfolium/internal/db/models"
)

// CurrentUser returns the authenticated user the auth middleware placed
// in the request locals. The zero user (ID 0) means unauthenticated.
func CurrentUser(c *fiber.Ctx) models.User {
	if u, ok := c.Locals("CurrentUser").(models.User); ok {
		return u
	}

	return models.User{}
}
