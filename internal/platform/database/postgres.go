package database

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/srgjo27/royale_boxoffice/internal/config"
)

const maxConnectAttempts = 10

func DSN(cfg config.Database) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.DBName)
}

// NewPostgresDB waits for the database to accept connections, retrying with
// a constant two second interval.
func NewPostgresDB(ctx context.Context, cfg config.Database) (*sqlx.DB, error) {
	attempt := 0

	connect := func() (*sqlx.DB, error) {
		attempt++
		logrus.WithField("attempt", fmt.Sprintf("%d/%d", attempt, maxConnectAttempts)).Info("Connecting to database")

		db, err := sqlx.Open("postgres", DSN(cfg))
		if err != nil {
			return nil, backoff.Permanent(err)
		}

		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, err
		}

		return db, nil
	}

	b := backoff.WithContext(backoff.WithMaxRetries(backoff.NewConstantBackOff(2*time.Second), maxConnectAttempts-1), ctx)

	db, err := backoff.RetryNotifyWithData(connect, b, func(err error, _ time.Duration) {
		logrus.WithError(err).Warn("Database not ready yet. Waiting 2 seconds...")
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	logrus.Info("Database connected successfully!")

	return db, nil
}
