package handlers

import (
	"context"
	"time"

	"Expiry-Food-Track/internal/utils"

	"github.com/gofiber/fiber/v2"
)

const defaultStoreTimeout = 10 * time.Second

// storeContext bounds a single store call made on behalf of the request.
func storeContext(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.UserContext(), utils.GetConfigDuration("DB_TIMEOUT", defaultStoreTimeout))
}
