package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"go-foodbridge/middleware"
	"go-foodbridge/models"
	"go-foodbridge/store"
	"go-foodbridge/utils"
)

type fakeUserStore struct {
	users []models.User
}

func (f *fakeUserStore) Insert(_ context.Context, user models.User) (models.User, error) {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	f.users = append(f.users, user)
	return user, nil
}

func (f *fakeUserStore) FindByID(_ context.Context, id string) (models.User, error) {
	for _, u := range f.users {
		if u.ID.Hex() == id {
			return u, nil
		}
	}
	return models.User{}, store.ErrNotFound
}

func (f *fakeUserStore) FindByUsername(_ context.Context, username string) (models.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return models.User{}, store.ErrNotFound
}

func (f *fakeUserStore) FindNGOsByArea(_ context.Context, area string) ([]models.User, error) {
	var ngos []models.User
	for _, u := range f.users {
		if u.Type == models.UserTypeNGO && strings.EqualFold(u.Area, area) {
			ngos = append(ngos, u)
		}
	}
	return ngos, nil
}

func (f *fakeUserStore) ListNGOs(_ context.Context) ([]models.User, error) {
	var ngos []models.User
	for _, u := range f.users {
		if u.Type == models.UserTypeNGO {
			ngos = append(ngos, u)
		}
	}
	return ngos, nil
}

func (f *fakeUserStore) CountByType(_ context.Context, userType string) (int64, error) {
	var count int64
	for _, u := range f.users {
		if u.Type == userType {
			count++
		}
	}
	return count, nil
}

type fakeDonationStore struct {
	donations []models.Donation
}

func (f *fakeDonationStore) Insert(_ context.Context, donation models.Donation) (models.Donation, error) {
	if donation.ID.IsZero() {
		donation.ID = primitive.NewObjectID()
	}
	f.donations = append(f.donations, donation)
	return donation, nil
}

func (f *fakeDonationStore) FindByID(_ context.Context, id string) (models.Donation, error) {
	for _, d := range f.donations {
		if d.ID.Hex() == id {
			return d, nil
		}
	}
	return models.Donation{}, store.ErrNotFound
}

func (f *fakeDonationStore) List(_ context.Context) ([]models.Donation, error) {
	return append([]models.Donation(nil), f.donations...), nil
}

func (f *fakeDonationStore) ListByDonor(_ context.Context, donorID string) ([]models.Donation, error) {
	var out []models.Donation
	for _, d := range f.donations {
		if d.DonorID.Hex() == donorID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeDonationStore) ListUnclaimedByArea(_ context.Context, area string) ([]models.Donation, error) {
	var out []models.Donation
	for _, d := range f.donations {
		if !d.Claimed && strings.EqualFold(d.Area, area) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeDonationStore) Claim(_ context.Context, id, claimedBy string, at time.Time) (models.Donation, error) {
	for i, d := range f.donations {
		if d.ID.Hex() != id {
			continue
		}
		if d.Claimed {
			return models.Donation{}, store.ErrAlreadyClaimed
		}
		d.Claimed = true
		d.ClaimedBy = &claimedBy
		d.ClaimedAt = &at
		f.donations[i] = d
		return d, nil
	}
	return models.Donation{}, store.ErrNotFound
}

func (f *fakeDonationStore) Count(_ context.Context) (int64, error) {
	return int64(len(f.donations)), nil
}

func (f *fakeDonationStore) CountUnclaimed(_ context.Context) (int64, error) {
	var count int64
	for _, d := range f.donations {
		if !d.Claimed {
			count++
		}
	}
	return count, nil
}

type sentEmail struct {
	to      string
	subject string
	body    string
}

type sentSMS struct {
	to      string
	message string
}

type fakeNotifier struct {
	failEmail bool
	emails    []sentEmail
	sms       []sentSMS
}

func (f *fakeNotifier) SendEmail(toEmail, subject, body string) bool {
	f.emails = append(f.emails, sentEmail{to: toEmail, subject: subject, body: body})
	return !f.failEmail
}

func (f *fakeNotifier) SendSMS(toPhone, message string) bool {
	f.sms = append(f.sms, sentSMS{to: toPhone, message: message})
	return true
}

func jsonRequest(method, target string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	return httptest.NewRequest(method, target, &buf)
}

func withClaims(r *http.Request, claims *utils.Claims) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), middleware.UserContextKey, claims))
}
