package middlewares

import (
	"errors"

	"shifa-clinic/cmd/server/handlers/httperr"
	"shifa-clinic/internal/config"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// JWT returns a configured Fiber middleware that:
//
//   - validates the Bearer token signature and expiry using cfg.JWTSecret
//   - makes sure the token carries "user_id", "email" and "role" claims
//   - stores those values in ctx.Locals("userID") / ctx.Locals("userEmail") /
//     ctx.Locals("userRole") so downstream handlers can trust them.
//
// A request with no Authorization header at all gets 401; a request carrying
// a token that fails verification (bad signature, expired, missing claims)
// gets 403.
func JWT(cfg config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		SuccessHandler: func(c *fiber.Ctx) error {
			// Token already verified at this point.
			token := c.Locals("user").(*jwt.Token)
			claims, _ := token.Claims.(jwt.MapClaims)

			userID, ok := claims["user_id"].(string)
			if !ok || userID == "" {
				return httperr.Fail(httperr.ErrForbidden)
			}

			userEmail, ok := claims["email"].(string)
			if !ok || userEmail == "" {
				return httperr.Fail(httperr.ErrForbidden)
			}

			userRole, ok := claims["role"].(string)
			if !ok || userRole == "" {
				return httperr.Fail(httperr.ErrForbidden)
			}

			c.Locals("userID", userID)
			c.Locals("userEmail", userEmail)
			c.Locals("userRole", userRole)
			return c.Next()
		},

		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// No token at all versus a token that failed verification.
			if errors.Is(err, jwtware.ErrJWTMissingOrMalformed) {
				return httperr.Fail(httperr.ErrUnauthorized)
			}
			return httperr.Fail(httperr.ErrForbidden)
		},
	})
}
