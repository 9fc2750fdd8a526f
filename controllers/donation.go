// controllers/donation.go
package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"go-foodbridge/middleware"
	"go-foodbridge/models"
	"go-foodbridge/store"
	"go-foodbridge/utils"
)

// Notifier abstracts the notification channels used for donation events.
// Delivery is best effort: both methods report success as a boolean and
// never fail the calling request.
type Notifier interface {
	SendEmail(toEmail, subject, body string) bool
	SendSMS(toPhone, message string) bool
}

// DonationController handles the donation lifecycle and notification fanout
type DonationController struct {
	Donations store.DonationStore
	Users     store.UserStore
	Notifier  Notifier
	Logger    zerolog.Logger
}

// NewDonationController creates a new DonationController
func NewDonationController(donations store.DonationStore, users store.UserStore, notifier Notifier, logger zerolog.Logger) *DonationController {
	return &DonationController{
		Donations: donations,
		Users:     users,
		Notifier:  notifier,
		Logger:    logger,
	}
}

type donationRequest struct {
	FoodItem   string    `json:"foodItem"`
	Quantity   int       `json:"quantity"`
	Location   string    `json:"location"`
	Area       string    `json:"area"`
	ExpiryTime time.Time `json:"expiryTime"`
	Notes      string    `json:"notes"`
}

// CreateDonation stores a new donation and notifies every NGO declared in
// the donation's area before responding.
func (dc *DonationController) CreateDonation(w http.ResponseWriter, r *http.Request) {
	claims, ok := r.Context().Value(middleware.UserContextKey).(*utils.Claims)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if claims.Type != models.UserTypeDonor && claims.Type != models.UserTypeNGO {
		writeError(w, http.StatusForbidden, "Only donors and NGOs can create donations")
		return
	}

	var req donationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if req.FoodItem == "" || req.Area == "" {
		writeError(w, http.StatusBadRequest, "Food item and area are required")
		return
	}
	if req.Quantity <= 0 {
		writeError(w, http.StatusBadRequest, "Quantity must be positive")
		return
	}

	donorID, err := primitive.ObjectIDFromHex(claims.ID)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	donation := models.Donation{
		FoodItem:   req.FoodItem,
		Quantity:   req.Quantity,
		Location:   req.Location,
		Area:       req.Area,
		ExpiryTime: req.ExpiryTime,
		Notes:      req.Notes,
		DonorID:    donorID,
		DonorName:  claims.Username,
		DonorType:  claims.Type,
		Claimed:    false,
		ClaimedBy:  nil,
		ClaimedAt:  nil,
		CreatedAt:  time.Now().UTC(),
	}

	donation, err = dc.Donations.Insert(ctx, donation)
	if err != nil {
		dc.Logger.Error().Err(err).Msg("failed to create donation")
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	dc.notifyAreaNGOs(ctx, donation)

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success":  true,
		"donation": donation,
	})
}

// notifyAreaNGOs sends one email per NGO whose area matches the donation's,
// compared case-insensitively. Failures are logged and never propagate to
// the donation response; zero matches is not an error.
func (dc *DonationController) notifyAreaNGOs(ctx context.Context, donation models.Donation) {
	ngos, err := dc.Users.FindNGOsByArea(ctx, donation.Area)
	if err != nil {
		dc.Logger.Error().Err(err).Str("area", donation.Area).Msg("failed to look up NGOs for notification")
		return
	}

	subject := "New Food Donation Available"
	body := fmt.Sprintf(
		"New food donation available in %s\n\nFood Item: %s\nQuantity: %d\nLocation: %s\nBest Before: %s\n\nPlease log in to the platform to claim this donation.\n",
		donation.Area,
		donation.FoodItem,
		donation.Quantity,
		donation.Location,
		donation.ExpiryTime.Format(time.RFC1123),
	)

	for _, ngo := range ngos {
		if !dc.Notifier.SendEmail(ngo.Email, subject, body) {
			dc.Logger.Warn().Str("recipient", ngo.Email).Str("donation_id", donation.ID.Hex()).Msg("donation notification not delivered")
		}
	}
}

// ClaimDonation transitions an unclaimed donation to claimed and notifies
// the donor. Claimed is terminal.
func (dc *DonationController) ClaimDonation(w http.ResponseWriter, r *http.Request) {
	claims, ok := r.Context().Value(middleware.UserContextKey).(*utils.Claims)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if claims.Type != models.UserTypeNGO {
		writeError(w, http.StatusForbidden, "Only NGOs can claim donations")
		return
	}

	id := mux.Vars(r)["id"]

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	donation, err := dc.Donations.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Donation not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	if donation.DonorID.Hex() == claims.ID {
		writeError(w, http.StatusBadRequest, "Cannot claim your own donation")
		return
	}
	if donation.Claimed {
		writeError(w, http.StatusBadRequest, "Donation already claimed")
		return
	}

	donation, err = dc.Donations.Claim(ctx, id, claims.Username, time.Now().UTC())
	if errors.Is(err, store.ErrAlreadyClaimed) {
		// Lost the race against a concurrent claimant.
		writeError(w, http.StatusBadRequest, "Donation already claimed")
		return
	}
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Donation not found")
		return
	}
	if err != nil {
		dc.Logger.Error().Err(err).Str("donation_id", id).Msg("failed to claim donation")
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	dc.notifyDonorClaimed(ctx, donation, claims)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"donation": donation,
	})
}

// notifyDonorClaimed emails the donor that their donation was claimed, plus
// an SMS when a phone number is on record. A donor that no longer exists is
// silently skipped.
func (dc *DonationController) notifyDonorClaimed(ctx context.Context, donation models.Donation, claimant *utils.Claims) {
	donor, err := dc.Users.FindByID(ctx, donation.DonorID.Hex())
	if errors.Is(err, store.ErrNotFound) {
		return
	}
	if err != nil {
		dc.Logger.Error().Err(err).Str("donor_id", donation.DonorID.Hex()).Msg("failed to look up donor for notification")
		return
	}

	subject := "Your Donation Has Been Claimed"
	body := fmt.Sprintf(
		"Your donation has been claimed!\n\nDonation Details:\n- Food Item: %s\n- Quantity: %d\n\nClaimed by: %s (%s)\nTime: %s\n\nThank you for your contribution!\n",
		donation.FoodItem,
		donation.Quantity,
		claimant.Username,
		claimant.Organization,
		time.Now().Format(time.RFC1123),
	)
	if !dc.Notifier.SendEmail(donor.Email, subject, body) {
		dc.Logger.Warn().Str("recipient", donor.Email).Str("donation_id", donation.ID.Hex()).Msg("claim notification not delivered")
	}

	if donor.Phone != "" {
		message := fmt.Sprintf(
			"Your donation of %s has been claimed by %s. Thank you for your contribution!",
			donation.FoodItem,
			claimant.Organization,
		)
		dc.Notifier.SendSMS(donor.Phone, message)
	}
}

// ListDonations returns donations filtered by the caller's role: NGOs see
// unclaimed donations in their own area, donors see their own donations,
// admins see everything.
func (dc *DonationController) ListDonations(w http.ResponseWriter, r *http.Request) {
	claims, ok := r.Context().Value(middleware.UserContextKey).(*utils.Claims)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	var donations []models.Donation
	var err error
	switch claims.Type {
	case models.UserTypeNGO:
		donations, err = dc.Donations.ListUnclaimedByArea(ctx, claims.Area)
	case models.UserTypeDonor:
		donations, err = dc.Donations.ListByDonor(ctx, claims.ID)
	default:
		donations, err = dc.Donations.List(ctx)
	}
	if err != nil {
		dc.Logger.Error().Err(err).Msg("failed to list donations")
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if donations == nil {
		donations = []models.Donation{}
	}
	writeJSON(w, http.StatusOK, donations)
}

// GetStats returns platform-wide counters
func (dc *DonationController) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	totalDonors, err := dc.Users.CountByType(ctx, models.UserTypeDonor)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}
	totalNGOs, err := dc.Users.CountByType(ctx, models.UserTypeNGO)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}
	totalDonations, err := dc.Donations.Count(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}
	activeDonations, err := dc.Donations.CountUnclaimed(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"totalDonors":     totalDonors,
		"totalNGOs":       totalNGOs,
		"totalDonations":  totalDonations,
		"activeDonations": activeDonations,
	})
}
