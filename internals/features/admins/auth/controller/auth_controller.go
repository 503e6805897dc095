package controller

import (
	"github.com/gofiber/fiber/v2"

	"admissions_backend/internals/features/admins/auth/dto"
	"admissions_backend/internals/features/admins/auth/service"
	helper "admissions_backend/internals/helpers"
	authMw "admissions_backend/internals/middlewares/auth"
)

type AuthController struct {
	Sessions     *service.SessionService
	SecureCookie bool
}

func NewAuthController(sessions *service.SessionService, secureCookie bool) *AuthController {
	return &AuthController{Sessions: sessions, SecureCookie: secureCookie}
}

// POST /admin/session
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if fields := helper.ValidateStruct(req); fields != nil {
		return helper.JsonValidationError(c, fields)
	}

	sess, err := ac.Sessions.Authenticate(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     helper.SessionCookie,
		Value:    sess.Token,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HTTPOnly: true,
		Secure:   ac.SecureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return helper.JsonOK(c, "Logged in successfully", sess)
}

// DELETE /admin/session
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	if err := ac.Sessions.Revoke(c.UserContext(), helper.GetSessionToken(c)); err != nil {
		return err
	}
	c.ClearCookie(helper.SessionCookie)
	return helper.JsonOK(c, "You have been logged out", nil)
}

// GET /admin/session
func (ac *AuthController) Me(c *fiber.Ctx) error {
	who, err := authMw.AdminFrom(c)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "ok", who)
}
