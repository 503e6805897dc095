// file: internals/features/applications/controller/admin_application_controller.go
package controller

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"admissions_backend/internals/features/applications/dto"
	"admissions_backend/internals/features/applications/model"
	"admissions_backend/internals/features/applications/repository"
	"admissions_backend/internals/features/applications/service"
	helper "admissions_backend/internals/helpers"
	authMw "admissions_backend/internals/middlewares/auth"
)

// AdminApplicationController serves the staff endpoints. Every route is mounted
// behind RequireAdminSession.
type AdminApplicationController struct {
	Lifecycle *service.LifecycleService
}

func NewAdminApplicationController(lc *service.LifecycleService) *AdminApplicationController {
	return &AdminApplicationController{Lifecycle: lc}
}

// GET /admin/applications?status=&page=&per_page=
func (ctl *AdminApplicationController) List(c *fiber.Ctx) error {
	var q dto.ListApplicationsQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid query")
	}
	if fields := helper.ValidateStruct(q); fields != nil {
		return helper.JsonValidationError(c, fields)
	}
	paging := helper.ResolvePaging(c, 20, 100)

	rows, total, err := ctl.Lifecycle.List(c.UserContext(), repository.ListQuery{
		Status: model.ApplicationStatus(q.Status),
		Offset: paging.Offset,
		Limit:  paging.Limit,
	})
	if err != nil {
		return err
	}
	stats, err := ctl.Lifecycle.Stats(c.UserContext())
	if err != nil {
		return err
	}
	return helper.JsonList(c, "ok",
		dto.NewApplicationDetails(rows),
		helper.BuildPagination(total, paging, len(rows)),
		fiber.Map{"stats": stats},
	)
}

// GET /admin/applications/:id
func (ctl *AdminApplicationController) Detail(c *fiber.Ctx) error {
	rec, err := ctl.Lifecycle.Resolve(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "ok", dto.NewApplicationDetail(rec))
}

// POST /admin/applications/:id/review
func (ctl *AdminApplicationController) Review(c *fiber.Ctx) error {
	who, err := authMw.AdminFrom(c)
	if err != nil {
		return err
	}
	var req dto.ReviewApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	rec, err := ctl.Lifecycle.Review(c.UserContext(), c.Params("id"), req, who.Username)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c,
		fmt.Sprintf("Application %s has been %s.", rec.ApplicationCode, rec.ApplicationStatus),
		dto.NewApplicationDetail(rec))
}

// GET /admin/applications/:id/documents/:kind
func (ctl *AdminApplicationController) Document(c *fiber.Ctx) error {
	doc, err := ctl.Lifecycle.Document(c.UserContext(), c.Params("id"), c.Params("kind"))
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, doc.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", doc.Filename))
	return c.SendStream(doc.Body)
}

// GET /api/applications
func (ctl *AdminApplicationController) APIList(c *fiber.Ctx) error {
	rows, err := ctl.Lifecycle.ListAll(c.UserContext())
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "ok", dto.NewAPIApplicationItems(rows))
}

// GET /api/applications/:id
func (ctl *AdminApplicationController) APIDetail(c *fiber.Ctx) error {
	rec, err := ctl.Lifecycle.Resolve(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "ok", dto.NewAPIApplicationDetail(rec))
}
