package cmd

import (
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/seva-sangam/donation-services/db"
	"github.com/seva-sangam/donation-services/internal/appconfig"
	"github.com/seva-sangam/donation-services/internal/events"
)

var migrateCmd = &cobra.Command{
	Use:   "init-db-migrate",
	Short: "Initialize tables and run database migrations",
	Long:  `This job ensures tables exist and then runs goose migrations.`,
	Run: func(cmd *cobra.Command, args []string) {
		// Set the log level
		setLogging(logLevel)

		if err := godotenv.Load(); err != nil {
			log.Debug().Msg("no .env file found")
		}

		// Load the config file
		var err error
		appCfg, err = appconfig.LoadConfig(configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load config")
		}

		// Migrations never publish events
		donationsDB, err = db.NewDonationsDB(appCfg.Database.Source, events.NoopNotifier{}, &log.Logger)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer donationsDB.Close()

		// Run the migrations
		log.Info().Msgf("Running migrations...")
		if err := donationsDB.Migrate(); err != nil {
			log.Fatal().Err(err).Msg("Failed to run migrations")
		}

		log.Info().Msg("Migrations complete")
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
