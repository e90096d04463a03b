package middleware

import (
	"crypto/subtle"

	"github.com/bilgisen/ytfeed/internal/logger"
	"github.com/gofiber/fiber/v2"
)

// AdminHeader carries the admin key.
const AdminHeader = "X-API-Key"

// AdminOnly rejects requests whose X-API-Key does not match adminKey:
// 401 when the header is missing, 403 when it is wrong.
func AdminOnly(adminKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		apiKey := c.Get(AdminHeader)
		if apiKey == "" {
			logger.Get().Warn().
				Str("method", c.Method()).
				Str("path", c.Path()).
				Str("ip", c.IP()).
				Msg("Admin access attempt without API key")

			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "API key is required",
			})
		}

		if subtle.ConstantTimeCompare([]byte(apiKey), []byte(adminKey)) != 1 {
			logger.Get().Warn().
				Str("method", c.Method()).
				Str("path", c.Path()).
				Str("ip", c.IP()).
				Msg("Unauthorized admin access attempt")

			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Admin access required",
			})
		}

		return c.Next()
	}
}
