package middleware

import (
	"errors"
	"net/url"
	"strings"

	"Expiry-Food-Track/domain"
	"Expiry-Food-Track/internal/api/presenters"
	"Expiry-Food-Track/internal/utils"
	"Expiry-Food-Track/pkg/access"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

type (
	Middleware interface {
		CORSMiddleware() fiber.Handler
		AuthMiddleware(authorizer access.Authorizer, ownerParam string) fiber.Handler
	}

	middleware struct{}
)

func NewMiddleware() Middleware {
	return &middleware{}
}

func (m *middleware) CORSMiddleware() fiber.Handler {
	origins := strings.TrimSpace(utils.GetConfig("CORS_ORIGINS"))
	if origins == "" {
		origins = "*"
	}
	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     "GET,POST,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: origins != "*",
	})
}

// AuthMiddleware asks authorizer whether the caller may act on the resource
// owned by the value of the ownerParam route parameter.
func (m *middleware) AuthMiddleware(authorizer access.Authorizer, ownerParam string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		owner, err := url.PathUnescape(c.Params(ownerParam))
		if err != nil {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedProcessRequest, err)
		}
		err = authorizer.Authorize(c, owner)
		switch {
		case err == nil:
			return c.Next()
		case errors.Is(err, domain.ErrUserNotAllowed):
			return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MesaageUserNotAllowed, err)
		case errors.Is(err, domain.ErrTokenNotFound):
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedGetToken, err)
		default:
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedTokenInvalid, err)
		}
	}
}
