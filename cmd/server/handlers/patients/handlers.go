package patients

import (
	"context"

	"shifa-clinic/cmd/server/handlers/handlerutil"
	"shifa-clinic/cmd/server/handlers/httperr"
	"shifa-clinic/internal/logger"
	"shifa-clinic/internal/services/auth"

	"github.com/gofiber/fiber/v2"
)

// Service defines the interface for the patients service
type Service interface {
	List(ctx context.Context) ([]*auth.User, error)
}

// Handlers contains the patients HTTP handlers
type Handlers struct {
	service Service
}

// NewHandlers creates new patients handlers
func NewHandlers(service Service) *Handlers {
	return &Handlers{
		service: service,
	}
}

// List returns every registered patient, newest registration first.
// Only a bearer whose verified role claim is "doctor" may call it; this role
// comparison is the sole permission check past the JWT middleware.
func (h *Handlers) List(c *fiber.Ctx) error {
	role, err := handlerutil.GetUserRole(c)
	if err != nil {
		return err
	}

	if role != auth.RoleDoctor {
		logger.L().Info("patient listing denied", "handler", "List", "role", role)
		return httperr.Fail(httperr.ErrForbidden)
	}

	users, err := h.service.List(c.Context())
	if err != nil {
		logger.L().Error("patients service failed", "handler", "List", "error", err)
		return httperr.Fail(httperr.ErrInternal)
	}

	return c.JSON(users)
}
