package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fekuna/omnipos-sales-service/config"
	"github.com/fekuna/omnipos-sales-service/internal/loader"
	salesRepoPkg "github.com/fekuna/omnipos-sales-service/internal/sales/repository"
	"github.com/fekuna/omnipos-sales-service/pkg/broker"
	"github.com/fekuna/omnipos-sales-service/pkg/database/migration"
	"github.com/fekuna/omnipos-sales-service/pkg/database/postgres"
	"github.com/fekuna/omnipos-sales-service/pkg/logger"
	"github.com/jmoiron/sqlx"
	"github.com/urfave/cli/v3"
)

const searchIndexName = "idx_customer_search"

func newLogger(c *cli.Command) logger.ZapLogger {
	level := "info"
	if c.Bool("debug") {
		level = "debug"
	}
	return logger.NewZapLogger(&logger.ZapLoggerConfig{
		IsDevelopment:     true,
		Encoding:          "console",
		Level:             level,
		DisableStacktrace: true,
	})
}

func connect(ctx context.Context, c *cli.Command, cfg *config.Config) (*sqlx.DB, error) {
	db, err := postgres.NewPostgresWithRetry(ctx, &postgres.Config{
		URL:             c.String("database-url"),
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    2,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
	}, cfg.Postgres.ConnectRetries, nil)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	return db, nil
}

func migrateCommand(cfg *config.Config) *cli.Command {
	run := func(up bool) cli.ActionFunc {
		return func(ctx context.Context, c *cli.Command) error {
			log := newLogger(c)
			defer log.Sync()

			db, err := connect(ctx, c, cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			m, err := migration.New(db.DB, c.String("path"), log)
			if err != nil {
				return err
			}
			if up {
				return m.Up()
			}
			return m.Down()
		}
	}

	pathFlag := func() cli.Flag {
		return &cli.StringFlag{
			Name:  "path",
			Usage: "Directory holding the SQL migrations",
			Value: cfg.Postgres.MigrationsPath,
		}
	}

	return &cli.Command{
		Name:  "migrate",
		Usage: "Apply or roll back the sales schema",
		Commands: []*cli.Command{
			{
				Name:   "up",
				Usage:  "Apply all pending migrations",
				Flags:  []cli.Flag{pathFlag()},
				Action: run(true),
			},
			{
				Name:   "down",
				Usage:  "Roll back all migrations",
				Flags:  []cli.Flag{pathFlag()},
				Action: run(false),
			},
		},
	}
}

func loadCommand(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "load",
		Usage:     "Bulk load a sales CSV export",
		ArgsUsage: "<file.csv>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "truncate",
				Usage: "Empty the sales table before loading",
			},
			&cli.IntFlag{
				Name:  "batch-size",
				Usage: "Rows per INSERT statement",
				Value: cfg.Loader.BatchSize,
			},
			&cli.BoolFlag{
				Name:  "publish",
				Usage: "Publish a SalesLoaded event so running servers refresh their filter options",
				Value: cfg.Kafka.Enabled,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			path := c.Args().First()
			if path == "" {
				return fmt.Errorf("missing CSV file argument")
			}
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("opening %s: %w", path, err)
			}
			defer f.Close()

			log := newLogger(c)
			defer log.Sync()

			db, err := connect(ctx, c, cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			var publisher loader.Publisher
			if c.Bool("publish") {
				producer := broker.NewProducer(&broker.Config{
					Brokers: cfg.Kafka.Brokers,
					Topic:   cfg.Kafka.Topic,
				})
				defer producer.Close()
				publisher = producer
			}

			res, err := loader.New(db, publisher, log, c.Int("batch-size")).
				Load(ctx, f, filepath.Base(path), c.Bool("truncate"))
			if err != nil {
				return err
			}

			var count int64
			if err := db.GetContext(ctx, &count, "SELECT COUNT(*) FROM sales"); err != nil {
				return fmt.Errorf("verifying load: %w", err)
			}
			fmt.Fprintf(c.Root().Writer, "Read %d records, inserted %d. %d records in database.\n",
				res.Read, res.Inserted, count)
			return nil
		},
	}
}

func checkIndexCommand(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "check-index",
		Usage: "Report whether the full-text search index exists",
		Action: func(ctx context.Context, c *cli.Command) error {
			db, err := connect(ctx, c, cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			names, err := salesRepoPkg.NewPGRepository(db, nil).IndexNames(ctx)
			if err != nil {
				return err
			}
			reportIndexes(c.Root().Writer, names)
			return nil
		},
	}
}

func reportIndexes(w io.Writer, names []string) bool {
	found := false
	for _, n := range names {
		if n == searchIndexName {
			found = true
		}
	}

	if found {
		fmt.Fprintf(w, "*** GIN INDEX EXISTS ***\n%s is present; customer search uses it.\n", searchIndexName)
	} else {
		fmt.Fprintf(w, "*** GIN INDEX MISSING ***\nRun `salesctl migrate up` to create %s.\n", searchIndexName)
	}

	fmt.Fprintln(w, "\nAll indexes on sales table:")
	for _, n := range names {
		fmt.Fprintf(w, "  - %s\n", n)
	}
	return found
}
