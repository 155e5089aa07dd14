package routes

import (
	"Expiry-Food-Track/internal/api/handlers"
	"Expiry-Food-Track/internal/middleware"
	"Expiry-Food-Track/pkg/access"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App          *fiber.App
	HomeHandler  handlers.HomeHandler
	AuthHandler  handlers.AuthHandler
	FoodHandler  handlers.FoodHandler
	UserHandler  handlers.UserHandler
	AdminHandler handlers.AdminHandler
	Middleware   middleware.Middleware
	Authorizer   access.Authorizer
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.GuestRoute()
	c.AuthRoute()
	c.FoodItems()
	c.User()
	c.Admin()
}

func (c *Config) GuestRoute() {
	c.App.Get("/", c.HomeHandler.Home)
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}

func (c *Config) AuthRoute() {
	c.App.Post("/jwt", c.AuthHandler.IssueToken)
	c.App.Post("/logout", c.AuthHandler.Logout)
}

func (c *Config) FoodItems() {
	authorizer := c.Authorizer
	if authorizer == nil {
		authorizer = access.AllowAll()
	}

	// Fixed paths go before /foods/:id so they are not read as ids.
	c.App.Get("/foods", c.FoodHandler.GetAllFoods)
	c.App.Get("/foods/expiring-soon", c.FoodHandler.GetExpiringSoonFoods)
	c.App.Get("/foods/recent", c.FoodHandler.GetRecentFoods)
	c.App.Get("/foods/expired", c.FoodHandler.GetExpiredFoods)

	c.App.Get("/foods/:id", c.FoodHandler.GetFoodDetails)
	c.App.Patch("/foods/:id", c.FoodHandler.UpdateFood)
	c.App.Delete("/foods/:id", c.FoodHandler.DeleteFood)
	c.App.Post("/foods/:id/notes", c.FoodHandler.AddNote)

	c.App.Post("/add-food", c.FoodHandler.AddFood)
	c.App.Get("/my-foods/:email", c.Middleware.AuthMiddleware(authorizer, "email"), c.FoodHandler.GetMyFoods)
}

func (c *Config) User() {
	c.App.Get("/user", c.UserHandler.GetUsers)
	c.App.Post("/users", c.UserHandler.CreateUser)
}

func (c *Config) Admin() {
	c.App.Get("/admin/fix-expiry-dates", c.AdminHandler.FixExpiryDates)
}
