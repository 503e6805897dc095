// file: internals/route/index.go
package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	authService "admissions_backend/internals/features/admins/auth/service"
	appService "admissions_backend/internals/features/applications/service"
	authMw "admissions_backend/internals/middlewares/auth"
	routeDetails "admissions_backend/internals/route/details"
)

var startTime time.Time

type Deps struct {
	DB           *gorm.DB
	Lifecycle    *appService.LifecycleService
	Sessions     *authService.SessionService
	SecureCookie bool
	Env          string
	Log          logrus.FieldLogger
}

func SetupRoutes(app *fiber.App, d Deps) {
	startTime = time.Now()
	requireAdmin := authMw.RequireAdminSession(d.Sessions)

	d.Log.Info("setting up base routes...")
	BaseRoutes(app, d.DB, d.Env)

	d.Log.Info("mounting admin session routes...")
	routeDetails.AuthRoutes(app, d.Sessions, d.SecureCookie, requireAdmin)

	d.Log.Info("mounting application routes...")
	routeDetails.ApplicationRoutes(app, d.Lifecycle, requireAdmin)
}
