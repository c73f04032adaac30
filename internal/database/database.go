package database

import (
	"context"
	"fmt"
	"time"

	"church-calendar/config"

	"github.com/jackc/pgx/v5/pgxpool"
)

func InitDatabase(config *config.DatabaseConfig) (*pgxpool.Pool, error) {

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s timezone=%s",
		config.Host,
		config.Port,
		config.User,
		config.Password,
		config.DBName,
		config.SSLMode,
		"UTC",
	)

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}

	poolConfig.MaxConns = 25
	poolConfig.MinConns = 5
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = time.Minute * 30

	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		return nil, err
	}

	err = pool.Ping(context.Background())
	if err != nil {
		return nil, err
	}

	return pool, nil
}

// EnsureSchema creates the events table when it does not exist yet. There
// is intentionally no uniqueness constraint on external_id; the reconciler
// enforces one-row-per-external-id by lookup before insert.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS events (
			id SERIAL PRIMARY KEY,
			external_id TEXT,
			event_status TEXT,
			ministry TEXT,
			organizer TEXT,
			publish_trigger TEXT,
			registration TEXT,
			title TEXT NOT NULL,
			start_date DATE NOT NULL,
			start_time TIME NOT NULL,
			end_date DATE,
			end_time TIME,
			location TEXT,
			description TEXT,
			image_url TEXT,
			image_data BYTEA
		)
	`)
	return err
}
