package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"

	"github.com/seva-sangam/donation-services/internal/events"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// DonationsDB wraps the SQL connection together with the event notifier and
// logger used by the store methods.
type DonationsDB struct {
	DB     *sql.DB
	Events events.Notifier
	Log    *zerolog.Logger
}

// NewDonationsDB opens the database connection and verifies it with a ping.
// The connection string, notifier and logger are injected by the caller; there
// is no process-global client.
func NewDonationsDB(source string, notifier events.Notifier, log *zerolog.Logger) (*DonationsDB, error) {
	if source == "" {
		log.Error().Msg("database source is not set")
		return nil, fmt.Errorf("database source is not set")
	}

	db, err := sql.Open("postgres", source)
	if err != nil {
		log.Error().Err(err).Msg("failed to open database connection")
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		log.Error().Err(err).Msg("database connection failed during ping")
		return nil, err
	}

	return &DonationsDB{
		DB:     db,
		Events: notifier,
		Log:    log,
	}, nil
}

func (db *DonationsDB) Close() error {
	if err := db.DB.Close(); err != nil {
		return err
	}
	db.Log.Info().Msg("database connection closed")

	db.Events.Close()
	db.Log.Info().Msg("event publisher closed")

	return nil
}

// Migrate runs the embedded goose migrations up to the latest version.
func (db *DonationsDB) Migrate() error {
	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("error setting goose dialect: %w", err)
	}

	if err := goose.Up(db.DB, "migrations"); err != nil {
		return fmt.Errorf("error running migrations: %w", err)
	}

	db.Log.Info().Msg("migrations applied")
	return nil
}
