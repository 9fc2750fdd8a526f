package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"go-foodbridge/models"
	"go-foodbridge/store"
)

// ContactController handles contact-form submissions
type ContactController struct {
	Contacts store.ContactStore
	Logger   zerolog.Logger
}

// NewContactController creates a new ContactController
func NewContactController(contacts store.ContactStore, logger zerolog.Logger) *ContactController {
	return &ContactController{Contacts: contacts, Logger: logger}
}

// Submit stores a contact message
func (cc *ContactController) Submit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Subject string `json:"subject"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, "Message is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	contact := models.Contact{
		Name:      req.Name,
		Email:     req.Email,
		Subject:   req.Subject,
		Message:   req.Message,
		Responded: false,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := cc.Contacts.Insert(ctx, contact); err != nil {
		cc.Logger.Error().Err(err).Msg("failed to store contact message")
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "Message sent successfully",
	})
}

// MarkResponded flags a contact message as handled (admin only)
func (cc *ContactController) MarkResponded(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	contact, err := cc.Contacts.MarkResponded(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Contact message not found")
		return
	}
	if err != nil {
		cc.Logger.Error().Err(err).Str("contact_id", id).Msg("failed to update contact message")
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"contact": contact,
	})
}
