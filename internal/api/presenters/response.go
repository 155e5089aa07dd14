package presenters

import (
	"errors"

	"Expiry-Food-Track/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// SuccessResponse writes data as the whole JSON body.
func SuccessResponse(c *fiber.Ctx, data any, statusCode int) error {
	return c.Status(statusCode).JSON(data)
}

// ErrorResponse writes {"message": message}. err is only logged, never sent.
func ErrorResponse(c *fiber.Ctx, statusCode int, message string, err error) error {
	event := log.Debug()
	if statusCode >= fiber.StatusInternalServerError {
		event = log.Error().Stack()
	}
	event.Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Int("status", statusCode).
		Msg(message)

	return c.Status(statusCode).JSON(domain.MessageResponse{Message: message})
}

// ErrorHandler is the app-wide fallback for errors returned by handlers and
// middleware, including recovered panics.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := domain.MessageFailedProcessRequest

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		if code < fiber.StatusInternalServerError {
			message = fe.Message
		}
	}
	return ErrorResponse(c, code, message, err)
}
