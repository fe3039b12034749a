package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

type Config struct {
	URL             string // takes precedence over the discrete fields when set
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

func (c *Config) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// NewPostgres opens a pooled connection and verifies it with a ping.
func NewPostgres(cfg *Config) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	return db, nil
}

// NewPostgresWithRetry retries NewPostgres up to retries more times, waiting
// 2s, 4s, 6s... between attempts. onRetry, if set, is told about each wait.
func NewPostgresWithRetry(ctx context.Context, cfg *Config, retries int, onRetry func(attempt int, delay time.Duration, err error)) (*sqlx.DB, error) {
	return retry(ctx, retries, 2*time.Second, func() (*sqlx.DB, error) { return NewPostgres(cfg) }, onRetry)
}

func retry(ctx context.Context, retries int, step time.Duration, connect func() (*sqlx.DB, error), onRetry func(int, time.Duration, error)) (*sqlx.DB, error) {
	for attempt := 1; ; attempt++ {
		db, err := connect()
		if err == nil {
			return db, nil
		}
		if attempt > retries {
			return nil, fmt.Errorf("all %d connection attempts failed: %w", attempt, err)
		}

		delay := time.Duration(attempt) * step
		if onRetry != nil {
			onRetry(attempt, delay, err)
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}
}
