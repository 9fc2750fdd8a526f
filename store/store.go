package store

import (
	"context"
	"errors"
	"time"

	"go-foodbridge/models"
)

// Sentinel errors shared by all store implementations.
var (
	ErrNotFound       = errors.New("record not found")
	ErrAlreadyClaimed = errors.New("donation already claimed")
)

// UserStore persists users. Lookups by id take the hex string form used in
// tokens and URLs; an unparseable id behaves like an unknown one.
type UserStore interface {
	Insert(ctx context.Context, user models.User) (models.User, error)
	FindByID(ctx context.Context, id string) (models.User, error)
	FindByUsername(ctx context.Context, username string) (models.User, error)
	FindNGOsByArea(ctx context.Context, area string) ([]models.User, error)
	ListNGOs(ctx context.Context) ([]models.User, error)
	CountByType(ctx context.Context, userType string) (int64, error)
}

// DonationStore persists donations.
type DonationStore interface {
	Insert(ctx context.Context, donation models.Donation) (models.Donation, error)
	FindByID(ctx context.Context, id string) (models.Donation, error)
	List(ctx context.Context) ([]models.Donation, error)
	ListByDonor(ctx context.Context, donorID string) ([]models.Donation, error)
	ListUnclaimedByArea(ctx context.Context, area string) ([]models.Donation, error)
	// Claim atomically transitions an unclaimed donation to claimed and
	// returns the updated record. It returns ErrNotFound for an unknown id
	// and ErrAlreadyClaimed when another claimant got there first.
	Claim(ctx context.Context, id, claimedBy string, at time.Time) (models.Donation, error)
	Count(ctx context.Context) (int64, error)
	CountUnclaimed(ctx context.Context) (int64, error)
}

// ContactStore persists contact-form submissions.
type ContactStore interface {
	Insert(ctx context.Context, contact models.Contact) (models.Contact, error)
	MarkResponded(ctx context.Context, id string) (models.Contact, error)
}
