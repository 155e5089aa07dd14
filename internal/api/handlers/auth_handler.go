package handlers

import (
	"time"

	"Expiry-Food-Track/domain"
	"Expiry-Food-Track/internal/api/presenters"
	"Expiry-Food-Track/pkg/jwt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	AuthHandler interface {
		IssueToken(c *fiber.Ctx) error
		Logout(c *fiber.Ctx) error
	}

	authHandler struct {
		jwtService   jwt.JWTService
		validator    *validator.Validate
		secureCookie bool
	}
)

// NewAuthHandler builds the session handlers. With secureCookie the cookie is
// Secure and SameSite=None so a separately hosted client can send it.
func NewAuthHandler(jwtService jwt.JWTService, validator *validator.Validate, secureCookie bool) AuthHandler {
	return &authHandler{
		jwtService:   jwtService,
		validator:    validator,
		secureCookie: secureCookie,
	}
}

func (h *authHandler) IssueToken(c *fiber.Ctx) error {
	req := new(domain.IssueTokenRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedValidateRequest, err)
	}

	token, err := h.jwtService.GenerateTokenUser(req.Email)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedLogin, err)
	}

	c.Cookie(h.cookie(token, time.Now().Add(jwt.TokenLifetime)))
	return presenters.SuccessResponse(c, fiber.Map{"success": true}, fiber.StatusOK)
}

func (h *authHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(h.cookie("", time.Unix(0, 0)))
	return presenters.SuccessResponse(c, domain.MessageResponse{Message: domain.MessageSuccessLogout}, fiber.StatusOK)
}

func (h *authHandler) cookie(value string, expires time.Time) *fiber.Cookie {
	sameSite := fiber.CookieSameSiteLaxMode
	if h.secureCookie {
		sameSite = fiber.CookieSameSiteNoneMode
	}
	return &fiber.Cookie{
		Name:     jwt.CookieName,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HTTPOnly: true,
		Secure:   h.secureCookie,
		SameSite: sameSite,
	}
}
