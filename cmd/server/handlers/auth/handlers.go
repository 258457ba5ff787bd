package auth

import (
	"context"
	"errors"

	"shifa-clinic/cmd/server/handlers/handlerutil"
	"shifa-clinic/cmd/server/handlers/httperr"
	"shifa-clinic/internal/logger"
	"shifa-clinic/internal/services/auth"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Service defines the interface for the auth service
type Service interface {
	Register(ctx context.Context, req auth.RegisterRequest) (*auth.AuthResponse, error)
	Login(ctx context.Context, req auth.LoginRequest) (*auth.AuthResponse, error)
}

// Handlers contains the auth HTTP handlers
type Handlers struct {
	service   Service
	validator *validator.Validate
}

// NewHandlers creates new auth handlers
func NewHandlers(service Service, validator *validator.Validate) *Handlers {
	return &Handlers{
		service:   service,
		validator: validator,
	}
}

// Register handles doctor/patient registration
func (h *Handlers) Register(c *fiber.Ctx) error {
	var req auth.RegisterRequest
	if err := handlerutil.ParseAndValidateBody(c, &req, h.validator, "Register"); err != nil {
		return err
	}

	resp, err := h.service.Register(c.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidRole), errors.Is(err, auth.ErrDuplicateEmail):
			logger.L().Info("registration rejected", "handler", "Register", "email", req.Email, "error", err)
			return httperr.Fail(httperr.E{
				Status:  400,
				Message: err.Error(),
			})
		default:
			logger.L().Error("register service failed", "handler", "Register", "email", req.Email, "error", err)
			return httperr.Fail(httperr.ErrInternal)
		}
	}

	return c.Status(201).JSON(resp)
}

// Login handles user authentication
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req auth.LoginRequest
	if err := handlerutil.ParseAndValidateBody(c, &req, h.validator, "Login"); err != nil {
		return err
	}

	resp, err := h.service.Login(c.Context(), req)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			logger.L().Info("login rejected", "handler", "Login", "error", err)
			return httperr.Fail(httperr.E{
				Status:  401,
				Message: err.Error(),
			})
		}
		logger.L().Error("login service failed", "handler", "Login", "error", err)
		return httperr.Fail(httperr.ErrInternal)
	}

	return c.JSON(resp)
}
