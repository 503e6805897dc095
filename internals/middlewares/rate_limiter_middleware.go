package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	helper "admissions_backend/internals/helpers"
)

func limitByIP(max int, window time.Duration, message string) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return helper.JsonError(c, fiber.StatusTooManyRequests, message)
		},
	})
}

// Global limiter: every endpoint
func GlobalRateLimiter() fiber.Handler {
	return limitByIP(100, time.Minute, "Too many requests. Please try again later.")
}

// Login is stricter
func LoginRateLimiter() fiber.Handler {
	return limitByIP(5, time.Minute, "Too many login attempts. Please wait a moment.")
}

// Submissions carry uploads; keep them rarer still.
func SubmissionRateLimiter() fiber.Handler {
	return limitByIP(10, 10*time.Minute, "Too many applications from this address. Please try again later.")
}
