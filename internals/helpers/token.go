// helpers/token.go
package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// SessionCookie carries the admin session token for browser clients.
const SessionCookie = "admin_session"

// GetSessionToken returns the admin session token from:
// 1) Authorization header "Bearer <token>"
// 2) cookie "admin_session"
func GetSessionToken(c *fiber.Ctx) string {
	const p = "bearer "
	auth := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if len(auth) > len(p) && strings.EqualFold(auth[:len(p)], p) {
		return strings.TrimSpace(auth[len(p):])
	}
	return strings.TrimSpace(c.Cookies(SessionCookie))
}
