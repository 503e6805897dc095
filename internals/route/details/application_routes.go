package details

import (
	"github.com/gofiber/fiber/v2"

	"admissions_backend/internals/features/applications/controller"
	appRoute "admissions_backend/internals/features/applications/route"
	"admissions_backend/internals/features/applications/service"
)

func ApplicationRoutes(app fiber.Router, lc *service.LifecycleService, requireAdmin fiber.Handler) {
	appRoute.ApplicationRoutes(app,
		controller.NewApplicationController(lc),
		controller.NewAdminApplicationController(lc),
		requireAdmin,
	)
}
