package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"studentrecords/api"
	"studentrecords/logger"
	"studentrecords/telemetry"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Fatal().Err(err).Msg("Error loading .env file")
		}
	}
	log.Logger = logger.Get()

	shutdownTracer, err := telemetry.InitTracer("studentrecords-api")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize tracer")
	}

	srv := api.RunServer()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Graceful API server shutdown failed")
	}
	if err := shutdownTracer(ctx); err != nil {
		log.Warn().Err(err).Msg("Failed to shut down tracer")
	}
}
