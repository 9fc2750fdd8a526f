package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Donation represents a posted food donation. ClaimedBy and ClaimedAt are
// nil exactly while Claimed is false; a claimed donation never becomes
// unclaimed again.
type Donation struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	FoodItem   string             `bson:"food_item" json:"foodItem"`
	Quantity   int                `bson:"quantity" json:"quantity"`
	Location   string             `bson:"location" json:"location"`
	Area       string             `bson:"area" json:"area"`
	ExpiryTime time.Time          `bson:"expiry_time,omitempty" json:"expiryTime,omitempty"`
	Notes      string             `bson:"notes,omitempty" json:"notes,omitempty"`
	DonorID    primitive.ObjectID `bson:"donor_id" json:"donorId"`
	DonorName  string             `bson:"donor_name" json:"donorName"`
	DonorType  string             `bson:"donor_type" json:"donorType"`
	Claimed    bool               `bson:"claimed" json:"claimed"`
	ClaimedBy  *string            `bson:"claimed_by" json:"claimedBy"`
	ClaimedAt  *time.Time         `bson:"claimed_at" json:"claimedAt"`
	CreatedAt  time.Time          `bson:"created_at" json:"createdAt"`
}
