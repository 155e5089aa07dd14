package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"Expiry-Food-Track/cmd/config"
	migration "Expiry-Food-Track/cmd/database/migrate"
	"Expiry-Food-Track/internal/logger"
	"Expiry-Food-Track/internal/utils"

	"github.com/rs/zerolog/log"
)

const shutdownTimeout = 10 * time.Second

func main() {
	utils.LoadConfig()
	logger.New("expiry-food-track", utils.GetConfig("LOG_LEVEL"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, db, err := config.ConnectDB(ctx)
	if err != nil {
		log.Fatal().Stack().Err(err).Msg("database connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			log.Error().Err(err).Msg("disconnect mongodb")
		}
	}()

	if err := migration.Migrate(ctx, db); err != nil {
		log.Fatal().Stack().Err(err).Msg("database migration failed")
	}

	app, err := config.NewApp(db)
	if err != nil {
		log.Fatal().Stack().Err(err).Msg("build app")
	}

	go func() {
		<-ctx.Done()
		log.Info().Msg("shutting down")
		if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			log.Error().Err(err).Msg("shutdown")
		}
	}()

	port := utils.GetConfig("PORT")
	log.Info().Str("port", port).Msg("listening")
	if err := app.Listen(":" + port); err != nil {
		log.Error().Err(err).Msg("server stopped")
	}
}
