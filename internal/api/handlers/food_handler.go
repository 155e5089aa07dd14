package handlers

import (
	"errors"
	"net/url"

	"Expiry-Food-Track/domain"
	"Expiry-Food-Track/entities"
	"Expiry-Food-Track/internal/api/presenters"
	"Expiry-Food-Track/pkg/food"

	"github.com/gofiber/fiber/v2"
)

type (
	FoodHandler interface {
		GetAllFoods(c *fiber.Ctx) error
		GetExpiringSoonFoods(c *fiber.Ctx) error
		GetRecentFoods(c *fiber.Ctx) error
		GetExpiredFoods(c *fiber.Ctx) error
		GetFoodDetails(c *fiber.Ctx) error
		GetMyFoods(c *fiber.Ctx) error
		AddFood(c *fiber.Ctx) error
		UpdateFood(c *fiber.Ctx) error
		DeleteFood(c *fiber.Ctx) error
		AddNote(c *fiber.Ctx) error
	}

	foodHandler struct {
		foodService food.FoodService
	}
)

func NewFoodHandler(foodService food.FoodService) FoodHandler {
	return &foodHandler{foodService: foodService}
}

func (h *foodHandler) GetAllFoods(c *fiber.Ctx) error {
	ctx, cancel := storeContext(c)
	defer cancel()

	foods, err := h.foodService.GetAllFoods(ctx)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetFoodItems, err)
	}
	return presenters.SuccessResponse(c, foods, fiber.StatusOK)
}

func (h *foodHandler) GetExpiringSoonFoods(c *fiber.Ctx) error {
	ctx, cancel := storeContext(c)
	defer cancel()

	foods, err := h.foodService.GetExpiringSoonFoods(ctx)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetFoodItems, err)
	}
	return presenters.SuccessResponse(c, foods, fiber.StatusOK)
}

func (h *foodHandler) GetRecentFoods(c *fiber.Ctx) error {
	ctx, cancel := storeContext(c)
	defer cancel()

	foods, err := h.foodService.GetRecentFoods(ctx)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetRecentFoods, err)
	}
	return presenters.SuccessResponse(c, foods, fiber.StatusOK)
}

func (h *foodHandler) GetExpiredFoods(c *fiber.Ctx) error {
	ctx, cancel := storeContext(c)
	defer cancel()

	foods, err := h.foodService.GetExpiredFoods(ctx)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetFoodItems, err)
	}
	return presenters.SuccessResponse(c, foods, fiber.StatusOK)
}

// GetFoodDetails answers 200 with a null body when the id is unknown.
func (h *foodHandler) GetFoodDetails(c *fiber.Ctx) error {
	ctx, cancel := storeContext(c)
	defer cancel()

	item, err := h.foodService.GetFoodByID(ctx, c.Params("id"))
	if err != nil {
		return foodError(c, domain.MessageFailedGetFoodItems, err)
	}
	if item == nil {
		return c.Status(fiber.StatusOK).Type("json").SendString("null")
	}
	return presenters.SuccessResponse(c, item, fiber.StatusOK)
}

func (h *foodHandler) GetMyFoods(c *fiber.Ctx) error {
	email, err := url.PathUnescape(c.Params("email"))
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedValidateRequest, err)
	}

	ctx, cancel := storeContext(c)
	defer cancel()

	foods, err := h.foodService.GetFoodsByOwner(ctx, email)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetFoodItems, err)
	}
	return presenters.SuccessResponse(c, foods, fiber.StatusOK)
}

func (h *foodHandler) AddFood(c *fiber.Ctx) error {
	req := new(entities.Food)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	ctx, cancel := storeContext(c)
	defer cancel()

	res, err := h.foodService.AddFood(ctx, req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedAddFoodItem, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated)
}

func (h *foodHandler) UpdateFood(c *fiber.Ctx) error {
	req := new(domain.UpdateFoodItemRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	ctx, cancel := storeContext(c)
	defer cancel()

	res, err := h.foodService.UpdateFood(ctx, c.Params("id"), *req)
	if err != nil {
		return foodError(c, domain.MessageFailedUpdateFoodItem, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK)
}

func (h *foodHandler) DeleteFood(c *fiber.Ctx) error {
	ctx, cancel := storeContext(c)
	defer cancel()

	res, err := h.foodService.DeleteFood(ctx, c.Params("id"))
	if err != nil {
		return foodError(c, domain.MessageFailedDeleteFoodItem, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK)
}

// AddNote answers 403 with success=false when nothing was modified, which
// includes an unknown id.
func (h *foodHandler) AddNote(c *fiber.Ctx) error {
	req := new(domain.AddNoteRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	ctx, cancel := storeContext(c)
	defer cancel()

	added, err := h.foodService.AddNote(ctx, c.Params("id"), *req)
	if err != nil {
		return foodError(c, domain.MessageFailedAddNote, err)
	}
	if !added {
		return presenters.SuccessResponse(c, domain.AddNoteResponse{
			Success: false,
			Message: domain.MessageFailedNoteNotAllowed,
		}, fiber.StatusForbidden)
	}
	return presenters.SuccessResponse(c, domain.AddNoteResponse{
		Success: true,
		Message: domain.MessageSuccessAddNote,
	}, fiber.StatusOK)
}

func foodError(c *fiber.Ctx, message string, err error) error {
	if errors.Is(err, domain.ErrInvalidFoodID) {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedInvalidFoodID, err)
	}
	return presenters.ErrorResponse(c, fiber.StatusInternalServerError, message, err)
}
