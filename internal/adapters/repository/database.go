package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	_ "github.com/jackc/pgx/v5/stdlib"
)

const (
	DriverPgx = "pgx"
	DriverPq  = "postgres"
)

const schema = `
CREATE TABLE IF NOT EXISTS habit_logs (
	user_id    TEXT        NOT NULL,
	habit_id   TEXT        NOT NULL,
	date       DATE        NOT NULL,
	name       TEXT,
	completed  BOOLEAN,
	topic      TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	PRIMARY KEY (user_id, habit_id, date)
);

CREATE INDEX IF NOT EXISTS idx_habit_logs_user_date ON habit_logs (user_id, date);

CREATE TABLE IF NOT EXISTS goals (
	id          TEXT        NOT NULL,
	user_id     TEXT        NOT NULL,
	title       TEXT        NOT NULL,
	description TEXT        NOT NULL DEFAULT '',
	progress    INTEGER     NOT NULL DEFAULT 0,
	target      INTEGER     NOT NULL DEFAULT 100,
	icon        TEXT        NOT NULL DEFAULT '',
	color       TEXT        NOT NULL DEFAULT '',
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	PRIMARY KEY (user_id, id),
	CHECK (target > 0),
	CHECK (progress >= 0 AND progress <= target)
);

CREATE TABLE IF NOT EXISTS mission_settings (
	user_id    TEXT        PRIMARY KEY,
	total_days INTEGER     NOT NULL CHECK (total_days > 0),
	start_date DATE        NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

// Connect opens a pool with either the pgx or the lib/pq driver.
func Connect(ctx context.Context, driver, dsn string) (*sqlx.DB, error) {
	if driver == "" {
		driver = DriverPgx
	}
	if driver != DriverPgx && driver != DriverPq {
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := sqlx.ConnectContext(ctx, driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

func Migrate(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

const (
	codeUniqueViolation = "23505"
	codeCheckViolation  = "23514"
)

// pgErrorCode extracts the SQLSTATE from either driver's error type.
func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}
