package middlewares

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/utils"
)

const LocalsRequestID = "request_id"

// RequestID echoes an incoming X-Request-ID or mints one.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(fiber.HeaderXRequestID)
		if rid == "" {
			rid = utils.UUID()
		}
		c.Set(fiber.HeaderXRequestID, rid)
		c.Locals(LocalsRequestID, rid)
		return c.Next()
	}
}
