package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"go-foodbridge/models"
	"go-foodbridge/store"
	"go-foodbridge/utils"
)

// UserController handles registration, login and the NGO directory
type UserController struct {
	Users  store.UserStore
	Logger zerolog.Logger
}

// NewUserController creates a new UserController
func NewUserController(users store.UserStore, logger zerolog.Logger) *UserController {
	return &UserController{Users: users, Logger: logger}
}

type registerRequest struct {
	Username     string `json:"username"`
	Password     string `json:"password"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	UserType     string `json:"userType"`
	Organization string `json:"organization"`
	Area         string `json:"area"`
}

// Register handles user registration
func (uc *UserController) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if req.Username == "" || req.Password == "" || req.Email == "" {
		writeError(w, http.StatusBadRequest, "Username, password and email are required")
		return
	}
	if req.UserType != models.UserTypeDonor && req.UserType != models.UserTypeNGO {
		writeError(w, http.StatusBadRequest, "User type must be donor or ngo")
		return
	}
	if req.UserType == models.UserTypeNGO && req.Area == "" {
		writeError(w, http.StatusBadRequest, "NGOs must declare an area")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	// Check if username already exists
	_, err := uc.Users.FindByUsername(ctx, req.Username)
	if err == nil {
		writeError(w, http.StatusBadRequest, "Username already exists")
		return
	}
	if !errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	// Hash the password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error hashing password")
		return
	}

	user := models.User{
		Username:  req.Username,
		Password:  string(hashedPassword),
		Email:     req.Email,
		Phone:     req.Phone,
		Type:      req.UserType,
		CreatedAt: time.Now().UTC(),
	}
	if req.UserType == models.UserTypeNGO {
		user.Organization = req.Organization
		user.Area = req.Area
	}

	if _, err := uc.Users.Insert(ctx, user); err != nil {
		uc.Logger.Error().Err(err).Str("username", req.Username).Msg("failed to create user")
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "Registration successful! Please login.",
	})
}

// Login handles user authentication
func (uc *UserController) Login(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	user, err := uc.Users.FindByUsername(ctx, creds.Username)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	// Compare the hashed password
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(creds.Password)); err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := utils.GenerateJWT(user)
	if err != nil {
		uc.Logger.Error().Err(err).Str("username", user.Username).Msg("failed to generate token")
		writeError(w, http.StatusInternalServerError, "Error generating token")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"token":    token,
		"userType": user.Type,
		"message":  "Login successful",
	})
}

// ListNGOs returns the NGO directory. Passwords never serialize.
func (uc *UserController) ListNGOs(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	ngos, err := uc.Users.ListNGOs(ctx)
	if err != nil {
		uc.Logger.Error().Err(err).Msg("failed to list NGOs")
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if ngos == nil {
		ngos = []models.User{}
	}
	writeJSON(w, http.StatusOK, ngos)
}
