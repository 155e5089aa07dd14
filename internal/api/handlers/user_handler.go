package handlers

import (
	"Expiry-Food-Track/domain"
	"Expiry-Food-Track/entities"
	"Expiry-Food-Track/internal/api/presenters"
	"Expiry-Food-Track/pkg/user"

	"github.com/gofiber/fiber/v2"
)

type (
	UserHandler interface {
		GetUsers(c *fiber.Ctx) error
		CreateUser(c *fiber.Ctx) error
	}

	userHandler struct {
		userService user.UserService
	}
)

func NewUserHandler(userService user.UserService) UserHandler {
	return &userHandler{userService: userService}
}

func (h *userHandler) GetUsers(c *fiber.Ctx) error {
	ctx, cancel := storeContext(c)
	defer cancel()

	users, err := h.userService.GetUsers(ctx)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetUsers, err)
	}
	return presenters.SuccessResponse(c, users, fiber.StatusOK)
}

func (h *userHandler) CreateUser(c *fiber.Ctx) error {
	profile := entities.User{}
	if err := c.BodyParser(&profile); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	ctx, cancel := storeContext(c)
	defer cancel()

	res, err := h.userService.CreateUser(ctx, profile)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedCreateUser, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK)
}
