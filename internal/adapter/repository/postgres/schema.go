package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const schema = `
CREATE TABLE IF NOT EXISTS performances (
	perf_id          BIGSERIAL PRIMARY KEY,
	show_title       TEXT NOT NULL,
	show_description TEXT NOT NULL DEFAULT '',
	show_genre       TEXT NOT NULL DEFAULT '',
	primary_language TEXT NOT NULL DEFAULT '',
	perf_date        TIMESTAMPTZ NOT NULL,
	ticket_price     NUMERIC(10, 2) NOT NULL CHECK (ticket_price >= 0),
	seats_circle     INT NOT NULL CHECK (seats_circle BETWEEN 0 AND 80),
	seats_stall      INT NOT NULL CHECK (seats_stall BETWEEN 0 AND 120)
);

CREATE INDEX IF NOT EXISTS performances_perf_date_idx ON performances (perf_date);

CREATE TABLE IF NOT EXISTS customers (
	customer_id  BIGSERIAL PRIMARY KEY,
	first_name   TEXT NOT NULL,
	last_name    TEXT NOT NULL,
	house_number TEXT NOT NULL,
	street_name  TEXT NOT NULL,
	postal_code  TEXT NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS bookings (
	booking_id   UUID PRIMARY KEY,
	customer_id  BIGINT NOT NULL REFERENCES customers (customer_id),
	total_amount NUMERIC(12, 2) NOT NULL,
	committed_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS booking_items (
	booking_id       UUID NOT NULL REFERENCES bookings (booking_id),
	perf_id          BIGINT NOT NULL REFERENCES performances (perf_id),
	full_price_count INT NOT NULL,
	concession_count INT NOT NULL,
	seats_circle     INT NOT NULL,
	seats_stall      INT NOT NULL,
	cost             NUMERIC(12, 2) NOT NULL,
	PRIMARY KEY (booking_id, perf_id)
);
`

func InitializeDatabaseSchema(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to initialize database schema: %w", err)
	}

	return nil
}
