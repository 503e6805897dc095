package helper

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"admissions_backend/internals/helpers/apperr"
)

func asAppError(err error) *apperr.Error {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return ae
	}
	return apperr.Wrap(apperr.KindInternal, "internal server error", err)
}

// ErrorHandler is the fiber.Config ErrorHandler: *fiber.Error (413 body limit, 404
// unknown route, 429 limiter) and *apperr.Error both end up in the standard shape.
func ErrorHandler(log logrus.FieldLogger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return JsonError(c, fe.Code, fe.Message)
		}
		if apperr.KindOf(err) != apperr.KindInternal {
			return JsonAppError(c, err)
		}
		log.WithError(err).WithField("path", c.Path()).Error("unhandled error")
		return JsonError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
