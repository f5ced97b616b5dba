package cmd

import (
	"fmt"
	"net/http"
	"path"

	gorillahandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/seva-sangam/donation-services/api/handlers"
	"github.com/seva-sangam/donation-services/api/middleware"
	"github.com/seva-sangam/donation-services/api/services"
	docs "github.com/seva-sangam/donation-services/docs"
	"github.com/seva-sangam/donation-services/internal/authn"
)

// @title Donation Services API
// @version v1
// @description This is the API for tracking mandal donation collections.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server for handling API requests",
	Run: func(cmd *cobra.Command, args []string) {

		// Load the config, initialize the database and set up logging
		commonSetUp()
		defer donationsDB.Close()

		verifier := authn.NewVerifier(appCfg.Auth.JWTSecret, appCfg.Auth.TokenTTLOrDefault())

		service := &services.Service{
			Config:   appCfg,
			Store:    donationsDB,
			Verifier: verifier,
		}

		// Create routes
		r := mux.NewRouter()

		api := r.PathPrefix(appCfg.BasePath).Subrouter()
		api.Use(middleware.WithLogger)

		// Auth routes take no token
		api.HandleFunc("/auth/register", handlers.Register(service)).Methods(http.MethodPost)
		api.HandleFunc("/auth/login", handlers.Login(service)).Methods(http.MethodPost)

		// Read routes work without a token for older clients; a valid token
		// narrows the view to the caller's mandals
		public := api.NewRoute().Subrouter()
		public.Use(middleware.OptionalJWTMiddleware(verifier))
		public.HandleFunc("/donators", handlers.ListDonators(service)).Methods(http.MethodGet)
		public.HandleFunc("/donators/summary", handlers.DonationSummary(service)).Methods(http.MethodGet)
		public.HandleFunc("/donators/{donator-id}", handlers.GetDonator(service)).Methods(http.MethodGet)
		public.HandleFunc("/report/pdf", handlers.DonorReport(service)).Methods(http.MethodGet)

		// The rest require a valid token
		protected := api.NewRoute().Subrouter()
		protected.Use(middleware.JWTMiddleware(verifier))
		protected.HandleFunc("/donators", handlers.CreateDonator(service)).Methods(http.MethodPost)
		protected.HandleFunc("/donators/{donator-id}", handlers.UpdateDonator(service)).Methods(http.MethodPut)
		protected.HandleFunc("/donators/{donator-id}/donation", handlers.UpdateDonation(service)).Methods(http.MethodPatch)
		protected.HandleFunc("/donators/book/{book-number}", handlers.BookDonations(service)).Methods(http.MethodGet)
		protected.HandleFunc("/donators/summary/book/{book-number}", handlers.BookSummary(service)).Methods(http.MethodGet)

		// Mandal routes
		protected.HandleFunc("/mandals", handlers.CreateMandal(service)).Methods(http.MethodPost)
		protected.HandleFunc("/mandals/join", handlers.JoinMandal(service)).Methods(http.MethodPost)
		protected.HandleFunc("/mandals/my-mandals", handlers.MyMandals(service)).Methods(http.MethodGet)
		protected.HandleFunc("/mandals/leave/{mandal-id}", handlers.LeaveMandal(service)).Methods(http.MethodDelete)

		// Health check for the ingress
		r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("Donation services API is running"))
		}).Methods(http.MethodGet)

		// Docs
		docs.SwaggerInfo.Host = appCfg.Host
		docs.SwaggerInfo.BasePath = appCfg.BasePath
		r.PathPrefix(appCfg.DocsPath).Handler(httpSwagger.Handler(
			httpSwagger.URL(path.Join(appCfg.DocsPath, "/doc.json")),
			httpSwagger.DeepLinking(true),
			httpSwagger.DocExpansion("none"),
			httpSwagger.DomID("swagger-ui"),
		)).Methods(http.MethodGet)

		cors := gorillahandlers.CORS(
			gorillahandlers.AllowedOrigins(appCfg.CORS.AllowedOrigins),
			gorillahandlers.AllowedMethods([]string{
				http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete,
			}),
			gorillahandlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
		)

		log.Info().Msg(fmt.Sprintf("Server started at %s:%d", host, port))

		if err := http.ListenAndServe(fmt.Sprintf("%s:%d", host, port),
			cors(r)); err != nil {

			log.Error().Err(err).Msg("could not start server")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&host, "host", "0.0.0.0", "host to run the server on")
	serveCmd.Flags().IntVar(&port, "port", 8080, "port to run the server on")
}
