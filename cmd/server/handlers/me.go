package handlers

import "github.com/gofiber/fiber/v2"

// Me returns the verified identity claims of the bearer.
func Me(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)
	userEmail := c.Locals("userEmail").(string)
	userRole := c.Locals("userRole").(string)
	return c.JSON(fiber.Map{
		"uid":   userID,
		"email": userEmail,
		"role":  userRole,
	})
}
