package utils

import (
	"time"

	"github.com/dgrijalva/jwt-go"

	"go-foodbridge/models"
)

// JWT Secret Key
var JwtKey = []byte("your_secret_key") // This will be loaded from .env

// Claims represents the JWT claims: the authenticated principal the
// donation lifecycle operates on.
type Claims struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Type         string `json:"type"`
	Organization string `json:"organization,omitempty"`
	Area         string `json:"area,omitempty"`
	jwt.StandardClaims
}

// GenerateJWT generates a JWT token for a user
func GenerateJWT(user models.User) (string, error) {
	expirationTime := time.Now().Add(24 * time.Hour)
	claims := &Claims{
		ID:           user.ID.Hex(),
		Username:     user.Username,
		Type:         user.Type,
		Organization: user.Organization,
		Area:         user.Area,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: expirationTime.Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(JwtKey)
	if err != nil {
		return "", err
	}
	return tokenString, nil
}
