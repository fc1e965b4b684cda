package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alimikegami/storefront-service/config"
	"github.com/alimikegami/storefront-service/internal/app"
	"github.com/alimikegami/storefront-service/internal/infrastructure/database/mongodb"
	"github.com/rs/zerolog/log"
)

func main() {
	config, err := config.CreateNewConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	db, err := mongodb.GetDBInstance(context.Background(), config.MongoDBConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to the database")
	}

	server := app.App{
		DB:     db,
		Config: config,
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit

		if err := server.StopServer(); err != nil {
			log.Error().Err(err).Msg("Failed to stop server cleanly")
		}
	}()

	server.Start()
}
