package handlers

import (
	"Expiry-Food-Track/domain"
	"Expiry-Food-Track/internal/api/presenters"
	"Expiry-Food-Track/pkg/food"

	"github.com/gofiber/fiber/v2"
)

type (
	AdminHandler interface {
		FixExpiryDates(c *fiber.Ctx) error
	}

	adminHandler struct {
		foodService food.FoodService
	}
)

func NewAdminHandler(foodService food.FoodService) AdminHandler {
	return &adminHandler{foodService: foodService}
}

// FixExpiryDates runs one repair pass over the whole collection. The pass is
// not bounded by the per-call store timeout.
func (h *adminHandler) FixExpiryDates(c *fiber.Ctx) error {
	report, err := h.foodService.RepairExpiryDates(c.UserContext())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedFixExpiryDates, err)
	}
	return presenters.SuccessResponse(c, domain.FixExpiryDatesResponse{
		Message: report.Message(),
		Fixed:   report.Fixed,
		Skipped: report.Skipped,
	}, fiber.StatusOK)
}
