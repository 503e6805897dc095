package details

import (
	"github.com/gofiber/fiber/v2"

	"admissions_backend/internals/features/admins/auth/controller"
	authRoute "admissions_backend/internals/features/admins/auth/route"
	"admissions_backend/internals/features/admins/auth/service"
)

func AuthRoutes(app fiber.Router, sessions *service.SessionService, secureCookie bool, requireAdmin fiber.Handler) {
	authRoute.AuthRoutes(app, controller.NewAuthController(sessions, secureCookie), requireAdmin)
}
