package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"studentrecords/api"
	"studentrecords/common"
	"studentrecords/telemetry"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
)

func serverBaseURL() string {
	return fmt.Sprintf("http://%s:%d", common.GetServerHost(), common.GetServerPort())
}

func checkServerStatus() bool {
	client := http.Client{Timeout: time.Second}
	resp, err := client.Get(serverBaseURL() + "/healthz")
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// waitForServer polls the health endpoint until it responds or times out
func waitForServer(timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if checkServerStatus() {
			return true
		}
		time.Sleep(100 * time.Millisecond)
	}
	return false
}

func NewServeCommand() *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "Run the student records API server",
		Action: handleServeCommand,
	}
}

func handleServeCommand(ctx context.Context, _ *cli.Command) error {
	shutdownTracer, err := telemetry.InitTracer("studentrecords-api")
	if err != nil {
		return fmt.Errorf("failed to initialize tracer: %w", err)
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			log.Warn().Err(err).Msg("Failed to shut down tracer")
		}
	}()

	srv := api.RunServer()

	if waitForServer(5 * time.Second) {
		fmt.Printf("Student records API v%s listening on %s\n", version, serverBaseURL())
	} else {
		log.Error().Msg("Server did not become ready in time")
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
		log.Info().Msg("Shutdown signal received...")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful API server shutdown failed: %w", err)
	}
	log.Info().Msg("Shut down gracefully")
	return nil
}
