// Package access decides whether a request may act on a resource owned by
// a given user. Which routes consult it is a deployment choice.
package access

import (
	"strings"

	"Expiry-Food-Track/domain"
	"Expiry-Food-Track/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Authorizer interface {
	// Authorize returns nil when the request may act on a resource owned by owner.
	Authorize(c *fiber.Ctx, owner string) error
}

type allowAll struct{}

// AllowAll permits every request.
func AllowAll() Authorizer { return allowAll{} }

func (allowAll) Authorize(*fiber.Ctx, string) error { return nil }

type tokenOwner struct {
	jwtService jwt.JWTService
}

// TokenOwner permits a request whose session token names the owner. The
// token is read from the session cookie, then from a Bearer header.
func TokenOwner(jwtService jwt.JWTService) Authorizer {
	return &tokenOwner{jwtService: jwtService}
}

func (a *tokenOwner) Authorize(c *fiber.Ctx, owner string) error {
	email, err := a.jwtService.GetEmailByToken(TokenFromRequest(c))
	if err != nil {
		return err
	}
	if !strings.EqualFold(email, owner) {
		return domain.ErrUserNotAllowed
	}
	c.Locals("user_email", email)
	return nil
}

func TokenFromRequest(c *fiber.Ctx) string {
	if token := c.Cookies(jwt.CookieName); token != "" {
		return token
	}
	header := c.Get(fiber.HeaderAuthorization)
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}
