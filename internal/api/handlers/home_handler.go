package handlers

import (
	"bytes"
	"embed"
	"html/template"

	"Expiry-Food-Track/domain"
	"Expiry-Food-Track/internal/api/presenters"

	"github.com/gofiber/fiber/v2"
)

//go:embed templates/home.html
var templateFS embed.FS

var homeTemplate = template.Must(template.ParseFS(templateFS, "templates/home.html"))

type (
	HomeHandler interface {
		Home(c *fiber.Ctx) error
	}

	homeHandler struct {
		clientURL string
	}
)

func NewHomeHandler(clientURL string) HomeHandler {
	return &homeHandler{clientURL: clientURL}
}

func (h *homeHandler) Home(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := homeTemplate.Execute(&buf, struct{ ClientURL string }{h.clientURL}); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedProcessRequest, err)
	}
	c.Type("html", "utf-8")
	return c.Status(fiber.StatusOK).Send(buf.Bytes())
}
