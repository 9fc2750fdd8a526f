// routes/routes.go
package routes

import (
	"go-foodbridge/controllers"
	"go-foodbridge/middleware"

	"github.com/gorilla/mux"
)

// RegisterRoutes sets up all the routes for the application
func RegisterRoutes(router *mux.Router, userController *controllers.UserController, donationController *controllers.DonationController, contactController *controllers.ContactController) {
	// Public routes
	router.HandleFunc("/register", userController.Register).Methods("POST")
	router.HandleFunc("/login", userController.Login).Methods("POST")
	router.HandleFunc("/api/stats", donationController.GetStats).Methods("GET")

	// Protected routes
	protected := router.PathPrefix("/api").Subrouter()
	protected.Use(middleware.AuthMiddleware)
	protected.HandleFunc("/donations", donationController.CreateDonation).Methods("POST")
	protected.HandleFunc("/donations", donationController.ListDonations).Methods("GET")
	protected.HandleFunc("/donations/{id}/claim", donationController.ClaimDonation).Methods("POST")
	protected.HandleFunc("/ngos", userController.ListNGOs).Methods("GET")
	protected.HandleFunc("/contact", contactController.Submit).Methods("POST")

	// Admin routes
	admin := router.PathPrefix("/api/contact").Subrouter()
	admin.Use(middleware.AuthMiddleware)
	admin.Use(middleware.AdminMiddleware)
	admin.HandleFunc("/{id}/respond", contactController.MarkResponded).Methods("PUT")
}
