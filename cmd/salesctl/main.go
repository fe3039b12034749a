package main

import (
	"context"
	"log"
	"os"

	"github.com/fekuna/omnipos-sales-service/config"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
)

func main() {
	_ = godotenv.Load()
	cfg := config.LoadEnv()

	app := &cli.Command{
		Name:  "salesctl",
		Usage: "Operate the sales database: schema, bulk loads and index checks",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
				Value: false,
			},
			&cli.StringFlag{
				Name:    "database-url",
				Usage:   "Postgres connection URL",
				Value:   cfg.Postgres.URL,
				Sources: cli.EnvVars("POSTGRES_URL"),
			},
		},
		Commands: []*cli.Command{
			migrateCommand(cfg),
			loadCommand(cfg),
			checkIndexCommand(cfg),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
