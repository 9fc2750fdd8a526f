package store

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"go-foodbridge/models"
)

const databaseName = "foodbridge"

// ConnectDB establishes the MongoDB connection shared by the Mongo-backed stores
func ConnectDB(uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	return client, nil
}

// areaFilter matches an area string ignoring case, the same comparison the
// platform uses everywhere areas are involved.
func areaFilter(area string) bson.M {
	return bson.M{"$regex": primitive.Regex{
		Pattern: "^" + regexp.QuoteMeta(area) + "$",
		Options: "i",
	}}
}

// MongoUserStore implements UserStore on a MongoDB collection
type MongoUserStore struct {
	collection *mongo.Collection
}

// NewMongoUserStore creates a MongoUserStore backed by the users collection
func NewMongoUserStore(client *mongo.Client) *MongoUserStore {
	return &MongoUserStore{collection: client.Database(databaseName).Collection("users")}
}

func (s *MongoUserStore) Insert(ctx context.Context, user models.User) (models.User, error) {
	result, err := s.collection.InsertOne(ctx, user)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to insert user: %w", err)
	}
	user.ID = result.InsertedID.(primitive.ObjectID)
	return user, nil
}

func (s *MongoUserStore) FindByID(ctx context.Context, id string) (models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.User{}, ErrNotFound
	}
	var user models.User
	err = s.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

func (s *MongoUserStore) FindByUsername(ctx context.Context, username string) (models.User, error) {
	var user models.User
	err := s.collection.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

func (s *MongoUserStore) FindNGOsByArea(ctx context.Context, area string) ([]models.User, error) {
	filter := bson.M{"type": models.UserTypeNGO, "area": areaFilter(area)}
	return s.findUsers(ctx, filter)
}

func (s *MongoUserStore) ListNGOs(ctx context.Context) ([]models.User, error) {
	return s.findUsers(ctx, bson.M{"type": models.UserTypeNGO})
}

func (s *MongoUserStore) findUsers(ctx context.Context, filter bson.M) ([]models.User, error) {
	cursor, err := s.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []models.User
	for cursor.Next(ctx) {
		var user models.User
		if err := cursor.Decode(&user); err != nil {
			return nil, fmt.Errorf("failed to decode user: %w", err)
		}
		users = append(users, user)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to read users: %w", err)
	}
	return users, nil
}

func (s *MongoUserStore) CountByType(ctx context.Context, userType string) (int64, error) {
	count, err := s.collection.CountDocuments(ctx, bson.M{"type": userType})
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

// MongoDonationStore implements DonationStore on a MongoDB collection
type MongoDonationStore struct {
	collection *mongo.Collection
}

// NewMongoDonationStore creates a MongoDonationStore backed by the donations collection
func NewMongoDonationStore(client *mongo.Client) *MongoDonationStore {
	return &MongoDonationStore{collection: client.Database(databaseName).Collection("donations")}
}

func (s *MongoDonationStore) Insert(ctx context.Context, donation models.Donation) (models.Donation, error) {
	result, err := s.collection.InsertOne(ctx, donation)
	if err != nil {
		return models.Donation{}, fmt.Errorf("failed to insert donation: %w", err)
	}
	donation.ID = result.InsertedID.(primitive.ObjectID)
	return donation, nil
}

func (s *MongoDonationStore) FindByID(ctx context.Context, id string) (models.Donation, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Donation{}, ErrNotFound
	}
	var donation models.Donation
	err = s.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&donation)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Donation{}, ErrNotFound
	}
	if err != nil {
		return models.Donation{}, fmt.Errorf("failed to find donation: %w", err)
	}
	return donation, nil
}

func (s *MongoDonationStore) List(ctx context.Context) ([]models.Donation, error) {
	return s.findDonations(ctx, bson.M{})
}

func (s *MongoDonationStore) ListByDonor(ctx context.Context, donorID string) ([]models.Donation, error) {
	oid, err := primitive.ObjectIDFromHex(donorID)
	if err != nil {
		return nil, ErrNotFound
	}
	return s.findDonations(ctx, bson.M{"donor_id": oid})
}

func (s *MongoDonationStore) ListUnclaimedByArea(ctx context.Context, area string) ([]models.Donation, error) {
	return s.findDonations(ctx, bson.M{"claimed": false, "area": areaFilter(area)})
}

func (s *MongoDonationStore) findDonations(ctx context.Context, filter bson.M) ([]models.Donation, error) {
	cursor, err := s.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query donations: %w", err)
	}
	defer cursor.Close(ctx)

	var donations []models.Donation
	for cursor.Next(ctx) {
		var donation models.Donation
		if err := cursor.Decode(&donation); err != nil {
			return nil, fmt.Errorf("failed to decode donation: %w", err)
		}
		donations = append(donations, donation)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to read donations: %w", err)
	}
	return donations, nil
}

// Claim is a compare-and-set: the update only matches while claimed is
// still false, so concurrent claimants cannot both win.
func (s *MongoDonationStore) Claim(ctx context.Context, id, claimedBy string, at time.Time) (models.Donation, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Donation{}, ErrNotFound
	}

	update := bson.M{"$set": bson.M{
		"claimed":    true,
		"claimed_by": claimedBy,
		"claimed_at": at,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var donation models.Donation
	err = s.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid, "claimed": false}, update, opts).Decode(&donation)
	if errors.Is(err, mongo.ErrNoDocuments) {
		// Distinguish a missing donation from one that was claimed first.
		if ferr := s.collection.FindOne(ctx, bson.M{"_id": oid}).Err(); errors.Is(ferr, mongo.ErrNoDocuments) {
			return models.Donation{}, ErrNotFound
		} else if ferr != nil {
			return models.Donation{}, fmt.Errorf("failed to find donation: %w", ferr)
		}
		return models.Donation{}, ErrAlreadyClaimed
	}
	if err != nil {
		return models.Donation{}, fmt.Errorf("failed to claim donation: %w", err)
	}
	return donation, nil
}

func (s *MongoDonationStore) Count(ctx context.Context) (int64, error) {
	count, err := s.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count donations: %w", err)
	}
	return count, nil
}

func (s *MongoDonationStore) CountUnclaimed(ctx context.Context) (int64, error) {
	count, err := s.collection.CountDocuments(ctx, bson.M{"claimed": false})
	if err != nil {
		return 0, fmt.Errorf("failed to count donations: %w", err)
	}
	return count, nil
}

// MongoContactStore implements ContactStore on a MongoDB collection
type MongoContactStore struct {
	collection *mongo.Collection
}

// NewMongoContactStore creates a MongoContactStore backed by the contacts collection
func NewMongoContactStore(client *mongo.Client) *MongoContactStore {
	return &MongoContactStore{collection: client.Database(databaseName).Collection("contacts")}
}

func (s *MongoContactStore) Insert(ctx context.Context, contact models.Contact) (models.Contact, error) {
	result, err := s.collection.InsertOne(ctx, contact)
	if err != nil {
		return models.Contact{}, fmt.Errorf("failed to insert contact: %w", err)
	}
	contact.ID = result.InsertedID.(primitive.ObjectID)
	return contact, nil
}

func (s *MongoContactStore) MarkResponded(ctx context.Context, id string) (models.Contact, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Contact{}, ErrNotFound
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var contact models.Contact
	err = s.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"responded": true}}, opts).Decode(&contact)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Contact{}, ErrNotFound
	}
	if err != nil {
		return models.Contact{}, fmt.Errorf("failed to update contact: %w", err)
	}
	return contact, nil
}
