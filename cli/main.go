package main

import (
	"context"
	"fmt"
	"os"

	"studentrecords/logger"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
)

// set with -ldflags "-X main.version=..."
var version = "dev"

func newRootCommand() *cli.Command {
	return &cli.Command{
		Name:    "sr",
		Usage:   "Student records server and reporting tools",
		Version: version,
		Commands: []*cli.Command{
			NewServeCommand(),
			NewMigrateCommand(),
			NewSummarizeCommand(),
		},
	}
}

func main() {
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			fmt.Fprintln(os.Stderr, "Warning: failed to load .env file:", err)
		}
	}
	log.Logger = logger.Get()

	if err := newRootCommand().Run(context.Background(), os.Args); err != nil {
		log.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}
