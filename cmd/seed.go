package cmd

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/seva-sangam/donation-services/models"
)

// seedCmd bootstraps the first admin account so a fresh deployment can log in
// and create mandals. Credentials come from ADMIN_EMAIL and ADMIN_PASSWORD.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the initial admin user if it does not exist",
	Run: func(cmd *cobra.Command, args []string) {

		// Load the config, initialize the database and set up logging
		commonSetUp()
		defer donationsDB.Close()

		email := os.Getenv("ADMIN_EMAIL")
		password := os.Getenv("ADMIN_PASSWORD")
		if email == "" || password == "" {
			log.Fatal().Msg("ADMIN_EMAIL and ADMIN_PASSWORD must be set")
		}

		existing, err := donationsDB.GetUserByEmail(email)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to look up admin user")
		}
		if existing != nil {
			log.Info().Str("email", email).Msg("admin user already exists")
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to hash admin password")
		}

		user, err := donationsDB.CreateUser(&models.User{
			Name:         "Administrator",
			Email:        email,
			PasswordHash: string(hash),
			Role:         models.RoleAdmin,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create admin user")
		}

		log.Info().Str("user_id", user.ID.String()).Msg("admin user created")
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
