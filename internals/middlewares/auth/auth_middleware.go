// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"admissions_backend/internals/features/admins/auth/service"
	helper "admissions_backend/internals/helpers"
	"admissions_backend/internals/helpers/apperr"
)

const LocalsAdmin = "admin"

// SessionGate resolves a session token to an admin.
type SessionGate interface {
	RequireSession(ctx context.Context, token string) (*service.AdminIdentity, error)
}

// RequireAdminSession blocks the route unless the request carries a valid admin
// session (Bearer header or admin_session cookie).
func RequireAdminSession(gate SessionGate) fiber.Handler {
	return func(c *fiber.Ctx) error {
		who, err := gate.RequireSession(c.UserContext(), helper.GetSessionToken(c))
		if err != nil {
			return err
		}
		c.Locals(LocalsAdmin, who)
		return c.Next()
	}
}

// AdminFrom returns the identity set by RequireAdminSession.
func AdminFrom(c *fiber.Ctx) (*service.AdminIdentity, error) {
	who, ok := c.Locals(LocalsAdmin).(*service.AdminIdentity)
	if !ok || who == nil {
		return nil, apperr.ErrUnauthenticated
	}
	return who, nil
}
