// file: internals/features/admins/auth/route/auth_route.go
package route

import (
	"github.com/gofiber/fiber/v2"

	"admissions_backend/internals/features/admins/auth/controller"
	"admissions_backend/internals/middlewares"
)

// AuthRoutes mounts login/logout under /admin/session.
func AuthRoutes(r fiber.Router, ctrl *controller.AuthController, requireAdmin fiber.Handler) {
	session := r.Group("/admin/session")

	session.Post("/", middlewares.LoginRateLimiter(), ctrl.Login)
	session.Delete("/", ctrl.Logout)
	session.Get("/", requireAdmin, ctrl.Me)
}
