// Package middleware provides HTTP middleware for the data service API.
package middleware

import (
	"github.com/gofiber/fiber/v2"

	"jiaa/data-service/internal/logging"
	"jiaa/data-service/internal/security"
)

// RequireAuth validates the Bearer token and stores the caller's identity in
// request locals (user_id, user_email, user_role). A nil verifier disables
// auth; that is only acceptable outside production and the caller is
// responsible for refusing to start without a secret there.
func RequireAuth(verifier *security.TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if verifier == nil {
			c.Locals("user_id", "dev-user")
			return c.Next()
		}

		token := security.ExtractBearer(c.Get("Authorization"))
		if token == "" {
			// WebSocket clients cannot set headers; accept a query token.
			token = c.Query("token")
		}
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false, "error": "missing or invalid authorization",
			})
		}

		claims, err := verifier.Verify(token)
		if err != nil {
			logging.WithComponent("auth").WithError(err).Debug("token rejected")
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"success": false, "error": "invalid or expired token",
			})
		}

		c.Locals("user_id", claims.UserID)
		c.Locals("user_email", claims.Email)
		c.Locals("user_role", claims.Role)
		return c.Next()
	}
}
