// main.go
package main

import (
	"context"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"go-foodbridge/controllers"
	"go-foodbridge/routes"
	"go-foodbridge/store"
	"go-foodbridge/utils"
)

func main() {
	// Load environment variables from .env file (if present)
	_ = godotenv.Load()

	logger := utils.NewLogger(os.Getenv("APP_ENV"))

	// Set the JWT secret key
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		utils.JwtKey = []byte(secret)
	}

	// Initialize EmailService
	emailService := utils.NewEmailService(logger)

	// Connect to MongoDB
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}
	client, err := store.ConnectDB(mongoURI)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Error().Err(err).Msg("failed to disconnect from MongoDB")
		}
	}()

	users := store.NewMongoUserStore(client)
	donations := store.NewMongoDonationStore(client)
	contacts := store.NewMongoContactStore(client)

	// Initialize controllers
	userController := controllers.NewUserController(users, logger)
	donationController := controllers.NewDonationController(donations, users, emailService, logger)
	contactController := controllers.NewContactController(contacts, logger)

	// Set up the router
	router := mux.NewRouter()
	routes.RegisterRoutes(router, userController, donationController, contactController)

	// Start the server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	logger.Info().Str("port", port).Msg("server is running")
	if err := http.ListenAndServe(":"+port, router); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
