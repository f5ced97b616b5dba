/*
Copyright © 2024 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/seva-sangam/donation-services/db"
	"github.com/seva-sangam/donation-services/internal/appconfig"
	"github.com/seva-sangam/donation-services/internal/events"
)

var (
	logLevel   string
	configPath string
	host       string
	port       int

	appCfg      *appconfig.Config
	donationsDB *db.DonationsDB
)

var rootCmd = &cobra.Command{
	Use:   "donation-services",
	Short: "Donation Services",
	Long:  `Donation Services is the backend for tracking mandal donation collections, donators and payments.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn",
		"sets the log level")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml",
		"path to the config file")
}

// commonSetUp loads the environment and config, sets up logging and connects
// to the database. Commands that need all three call this first.
func commonSetUp() {
	setLogging(logLevel)

	// A missing .env file is fine in deployed environments
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found")
	}

	var err error
	appCfg, err = appconfig.LoadConfig(configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	notifier := newNotifier()

	donationsDB, err = db.NewDonationsDB(appCfg.Database.Source, notifier, &log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
}

// newNotifier returns the Pulsar publisher when one is configured, otherwise
// a no-op so the service runs without a broker.
func newNotifier() events.Notifier {
	if appCfg.Pulsar.URL == "" {
		log.Info().Msg("no pulsar url configured, events disabled")
		return events.NoopNotifier{}
	}
	publisher, err := events.NewEventPublisher(appCfg.Pulsar.URL, appCfg.Pulsar.TopicProducer)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize event publisher")
	}
	return publisher
}

func setLogging(level string) {
	zerolog.TimestampFunc = func() time.Time {
		return time.Now().UTC()
	}

	switch strings.ToLower(level) {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case "fatal":
		zerolog.SetGlobalLevel(zerolog.FatalLevel)
	case "panic":
		zerolog.SetGlobalLevel(zerolog.PanicLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}
}
