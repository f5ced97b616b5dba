package cmd

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/seva-sangam/donation-services/internal/events"
)

// consumeCmd tails the donation event topic and writes an audit log line per
// event. It exists so operators can watch collections in real time without
// database access.
var consumeCmd = &cobra.Command{
	Use:   "consume",
	Short: "Run the Pulsar consumer to log donation events",
	Run: func(cmd *cobra.Command, args []string) {

		// Load the config, initialize the database and set up logging
		commonSetUp()
		defer donationsDB.Close()

		consumer, err := events.NewEventConsumer(appCfg.Pulsar.URL, appCfg.Pulsar.TopicConsumer, appCfg.Pulsar.Subscription)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize event consumer")
		}
		defer consumer.Close()

		log.Info().Msg("Waiting for donation events...")
		for {
			msg, err := consumer.ReceiveMessage(context.Background())
			if err != nil {
				log.Error().Err(err).Msg("Error receiving message")
				continue
			}

			var event events.DonationEvent
			if err := json.Unmarshal(msg.Payload(), &event); err != nil {
				log.Error().Err(err).Msg("Error unmarshaling event")
				consumer.Ack(msg)
				continue
			}

			entry := log.Info().
				Str("action", event.Action).
				Str("donator_id", event.DonatorID.String()).
				Str("user_id", event.UserID.String()).
				Int64("amount", event.Amount).
				Int64("paid_amount", event.PaidAmount).
				Int64("timestamp", event.Timestamp)
			if event.MandalID != nil {
				entry = entry.Str("mandal_id", event.MandalID.String())
			}
			entry.Msg("donation event")

			consumer.Ack(msg)
		}
	},
}

func init() {
	rootCmd.AddCommand(consumeCmd)
}
