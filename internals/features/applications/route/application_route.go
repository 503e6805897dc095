// file: internals/features/applications/route/application_route.go
package route

import (
	"github.com/gofiber/fiber/v2"

	"admissions_backend/internals/features/applications/controller"
	"admissions_backend/internals/middlewares"
)

func ApplicationRoutes(
	r fiber.Router,
	public *controller.ApplicationController,
	admin *controller.AdminApplicationController,
	requireAdmin fiber.Handler,
) {
	// 🔓 Public
	r.Get("/courses", public.Courses)

	apps := r.Group("/applications")
	apps.Post("/", middlewares.SubmissionRateLimiter(), public.Submit)
	apps.Post("/status", public.CheckStatus)
	apps.Get("/:code", public.Status)
	apps.Get("/:code/letter", public.Letter)

	// 🔐 Admin
	adm := r.Group("/admin/applications", requireAdmin)
	adm.Get("/", admin.List)
	adm.Get("/:id", admin.Detail)
	adm.Post("/:id/review", admin.Review)
	adm.Get("/:id/documents/:kind", admin.Document)

	api := r.Group("/api/applications", requireAdmin)
	api.Get("/", admin.APIList)
	api.Get("/:id", admin.APIDetail)
}
