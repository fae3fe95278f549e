package web

import (
	"errors"
	"time"

	"go-ipconf/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RequestLogger logs every request once it has been handled, at a level
// chosen by the response status class.
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		var fe *fiber.Error
		switch {
		case errors.As(err, &fe):
			status = fe.Code
		case err != nil:
			status = fiber.StatusInternalServerError
		}
		fields := []zap.Field{
			zap.Int("status_code", status),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("client_ip", c.IP()),
			zap.String("cost", time.Since(start).String()),
		}
		if err != nil {
			fields = append(fields, zap.Error(err))
		}

		switch {
		case status >= 500:
			logger.Logger.Error("HTTP request", fields...)
		case status >= 400:
			logger.Logger.Warn("HTTP request", fields...)
		default:
			logger.Logger.Info("HTTP request", fields...)
		}
		return err
	}
}
