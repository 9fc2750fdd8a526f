package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User types recognized by the platform
const (
	UserTypeDonor = "donor"
	UserTypeNGO   = "ngo"
	UserTypeAdmin = "admin"
)

// User represents a registered donor, NGO or admin
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Username     string             `bson:"username" json:"username"`
	Password     string             `bson:"password,omitempty" json:"-"`
	Email        string             `bson:"email" json:"email"`
	Phone        string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Type         string             `bson:"type" json:"type"` // "donor", "ngo" or "admin"
	Organization string             `bson:"organization,omitempty" json:"organization,omitempty"` // NGO only
	Area         string             `bson:"area,omitempty" json:"area,omitempty"`                 // NGO only
	CreatedAt    time.Time          `bson:"created_at" json:"createdAt"`
}
