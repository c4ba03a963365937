package main

import (
	"context"
	"fmt"

	"studentrecords/common"
	"studentrecords/srv/sqlite"

	"github.com/urfave/cli/v3"
)

func NewMigrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Create or upgrade the records database schema",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "db",
				Usage: "Path to the sqlite database (defaults to SR_DB_PATH or the data home)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dbPath := cmd.String("db")
			if dbPath == "" {
				var err error
				dbPath, err = common.GetDatabasePath()
				if err != nil {
					return err
				}
			}

			// opening the storage applies pending migrations
			storage, err := sqlite.OpenStorage(dbPath)
			if err != nil {
				return fmt.Errorf("failed to migrate %s: %w", dbPath, err)
			}
			defer storage.Close()

			fmt.Fprintf(cmd.Root().Writer, "Database is up to date: %s\n", dbPath)
			return nil
		},
	}
}
