package config

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"Expiry-Food-Track/internal/api/handlers"
	"Expiry-Food-Track/internal/api/presenters"
	"Expiry-Food-Track/internal/api/routes"
	"Expiry-Food-Track/internal/middleware"
	"Expiry-Food-Track/internal/utils"
	"Expiry-Food-Track/pkg/access"
	"Expiry-Food-Track/pkg/food"
	"Expiry-Food-Track/pkg/jwt"
	"Expiry-Food-Track/pkg/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
)

func NewApp(db *mongo.Database) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		AppName:      "Expiry Food Track",
		ErrorHandler: presenters.ErrorHandler,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up recovery, request ids, access logging and limiter
	app.Use(recover.New(recover.Config{EnableStackTrace: true}))
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))

	accessLog, err := accessLogOutput(utils.GetConfig("LOG_FILE"))
	if err != nil {
		return nil, err
	}
	app.Use(logger.New(logger.Config{
		Format:     "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "UTC",
		Output:     accessLog,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        utils.GetConfigInt("RATE_LIMIT", 50),
		Expiration: 1 * time.Second,
	}))

	// Repository
	foodRepository := food.NewFoodRepository(db)
	userRepository := user.NewUserRepository(db)

	// Service
	jwtService := jwt.NewJWTService(utils.GetConfig("JWT_SECRET"))
	foodService := food.NewFoodService(foodRepository, time.Now)
	userService := user.NewUserService(userRepository)

	authorizer := access.AllowAll()
	if utils.GetConfigBool("AUTH_ENFORCE") {
		authorizer = access.TokenOwner(jwtService)
	}

	// Handler
	homeHandler := handlers.NewHomeHandler(utils.GetConfig("CLIENT_URL"))
	authHandler := handlers.NewAuthHandler(jwtService, validator, utils.GetConfigBool("COOKIE_SECURE"))
	foodHandler := handlers.NewFoodHandler(foodService)
	userHandler := handlers.NewUserHandler(userService)
	adminHandler := handlers.NewAdminHandler(foodService)

	// routes
	routesConfig := routes.Config{
		App:          app,
		HomeHandler:  homeHandler,
		AuthHandler:  authHandler,
		FoodHandler:  foodHandler,
		UserHandler:  userHandler,
		AdminHandler: adminHandler,
		Middleware:   middlewares,
		Authorizer:   authorizer,
	}
	routesConfig.Setup()
	return app, nil
}

// accessLogOutput appends to path when set, otherwise writes to stdout.
func accessLogOutput(path string) (io.Writer, error) {
	if path == "" {
		return os.Stdout, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return nil, errors.Wrap(err, "create log directory")
	}
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o666)
	if err != nil {
		return nil, errors.Wrap(err, "open access log")
	}
	return file, nil
}
