// file: internals/features/applications/controller/application_controller.go
package controller

import (
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"admissions_backend/internals/constants"
	"admissions_backend/internals/features/applications/dto"
	"admissions_backend/internals/features/applications/service"
	helper "admissions_backend/internals/helpers"
)

// ApplicationController serves the applicant-facing endpoints.
type ApplicationController struct {
	Lifecycle *service.LifecycleService
}

func NewApplicationController(lc *service.LifecycleService) *ApplicationController {
	return &ApplicationController{Lifecycle: lc}
}

// GET /courses
func (ctl *ApplicationController) Courses(c *fiber.Ctx) error {
	return helper.JsonOK(c, "ok", constants.Courses)
}

// POST /applications (multipart/form-data)
func (ctl *ApplicationController) Submit(c *fiber.Ctx) error {
	var form dto.SubmitApplicationRequest
	if err := c.BodyParser(&form); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid form data")
	}

	cert, closeCert, err := openAttachment(c, "degree_certificate")
	if err != nil {
		return err
	}
	defer closeCert()
	idProof, closeID, err := openAttachment(c, "id_proof")
	if err != nil {
		return err
	}
	defer closeID()

	rec, err := ctl.Lifecycle.Submit(c.UserContext(), service.SubmitInput{
		Form:        form,
		Certificate: cert,
		IDProof:     idProof,
	})
	if err != nil {
		return err
	}
	return helper.JsonCreated(c,
		"Application submitted successfully! Your application ID is "+rec.ApplicationCode,
		dto.SubmitApplicationResponse{
			ApplicationID: rec.ApplicationCode,
			Status:        rec.ApplicationStatus,
			SubmittedAt:   rec.ApplicationSubmittedAt,
		})
}

// openAttachment returns nil (not an error) when the field is absent; the
// lifecycle reports missing files together with the other field errors.
func openAttachment(c *fiber.Ctx, field string) (*service.Attachment, func(), error) {
	noop := func() {}
	fh, err := c.FormFile(field)
	if err != nil || fh == nil {
		return nil, noop, nil
	}
	f, err := fh.Open()
	if err != nil {
		return nil, noop, fiber.NewError(fiber.StatusBadRequest, "Could not read uploaded file")
	}
	return &service.Attachment{Filename: fh.Filename, Size: fh.Size, Body: f}, closer(f), nil
}

func closer(f multipart.File) func() {
	return func() { _ = f.Close() }
}

// GET /applications/:code
func (ctl *ApplicationController) Status(c *fiber.Ctx) error {
	rec, err := ctl.Lifecycle.Lookup(c.UserContext(), c.Params("code"))
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "ok", dto.NewApplicationSummary(rec))
}

// POST /applications/status
func (ctl *ApplicationController) CheckStatus(c *fiber.Ctx) error {
	var req dto.CheckStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if fields := helper.ValidateStruct(req); fields != nil {
		return helper.JsonValidationError(c, fields)
	}
	rec, err := ctl.Lifecycle.Lookup(c.UserContext(), req.ApplicationID)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "ok", dto.NewApplicationSummary(rec))
}

// GET /applications/:code/letter
func (ctl *ApplicationController) Letter(c *fiber.Ctx) error {
	body, filename, err := ctl.Lifecycle.Letter(c.UserContext(), c.Params("code"))
	if err != nil {
		return err
	}
	c.Attachment(filename)
	c.Set(fiber.HeaderContentType, constants.ContentTypePDF)
	return c.SendStream(body)
}
