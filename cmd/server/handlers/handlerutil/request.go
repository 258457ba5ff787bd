package handlerutil

import (
	"shifa-clinic/cmd/server/handlers/httperr"
	"shifa-clinic/internal/logger"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// GetUserRole extracts the verified role claim the JWT middleware stored in
// the request context. Requests that got past the middleware without a role
// claim are rejected.
func GetUserRole(c *fiber.Ctx) (string, error) {
	role, ok := c.Locals("userRole").(string)
	if !ok || role == "" {
		logger.L().Error("user role not found in context", "handler", "getUserRole", "path", c.Path())
		return "", httperr.Fail(httperr.ErrForbidden)
	}
	return role, nil
}

// ParseAndValidateBody parses request body and validates it
func ParseAndValidateBody(c *fiber.Ctx, req any, validator *validator.Validate, handlerName string) error {
	if err := c.BodyParser(req); err != nil {
		logger.L().Warn("failed to parse request body", "handler", handlerName, "error", err)
		return httperr.Fail(httperr.ErrBadRequest)
	}

	if err := validator.Struct(req); err != nil {
		logger.L().Warn("request validation failed", "handler", handlerName, "error", err)
		return httperr.InvalidInput(err)
	}

	return nil
}
