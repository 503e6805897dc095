package auth

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"admissions_backend/internals/features/admins/auth/service"
	helper "admissions_backend/internals/helpers"
	"admissions_backend/internals/helpers/apperr"
)

type gateStub struct{ token string }

func (g gateStub) RequireSession(_ context.Context, token string) (*service.AdminIdentity, error) {
	if token == "" || token != g.token {
		return nil, apperr.ErrUnauthenticated
	}
	return &service.AdminIdentity{ID: 1, Username: "admin"}, nil
}

func newApp() *fiber.App {
	log, _ := test.NewNullLogger()
	app := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler(log)})
	app.Get("/secret", RequireAdminSession(gateStub{token: "good"}), func(c *fiber.Ctx) error {
		who, err := AdminFrom(c)
		if err != nil {
			return err
		}
		return c.SendString(who.Username)
	})
	return app
}

func TestRequireAdminSession(t *testing.T) {
	app := newApp()
	cases := []struct {
		name   string
		header string
		cookie string
		want   int
	}{
		{"no token", "", "", fiber.StatusUnauthorized},
		{"bad bearer", "Bearer nope", "", fiber.StatusUnauthorized},
		{"bearer", "Bearer good", "", fiber.StatusOK},
		{"lowercase scheme", "bearer good", "", fiber.StatusOK},
		{"cookie", "", "good", fiber.StatusOK},
	}
	for _, tc := range cases {
		req := httptest.NewRequest("GET", "/secret", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		if tc.cookie != "" {
			req.Header.Set("Cookie", helper.SessionCookie+"="+tc.cookie)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, tc.want, resp.StatusCode, tc.name)
	}
}
