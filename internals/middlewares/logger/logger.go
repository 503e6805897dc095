package logger

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/sirupsen/logrus"
)

// LoggerMiddleware writes one access line per request through the app logger.
func LoggerMiddleware(log *logrus.Logger) fiber.Handler {
	return logger.New(logger.Config{
		Output:     log.WriterLevel(logrus.InfoLevel),
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "UTC",
		Format:     "[${time}] ${locals:request_id} ${ip} - ${method} ${path} - ${status} - ${latency}\n",
	})
}
