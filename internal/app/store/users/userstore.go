// internal/app/store/users/userstore.go

// Package userstore maps User documents in and out of the users
// collection. Embedded sub-records (mood entries, meditation history,
// assessment results, notifications) are written only through the atomic
// append operations in append.go.
package userstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mindhaven/mindhaven/internal/app/store/gateway"
	"github.com/mindhaven/mindhaven/internal/app/system/normalize"
	"github.com/mindhaven/mindhaven/internal/domain/models"
)

var (
	// ErrNotFound is returned when no user matches the lookup, including
	// lookups with a malformed id string.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicateEmail is returned when a create or update would reuse
	// an existing email.
	ErrDuplicateEmail = errors.New("a user with this email already exists")
	// ErrDuplicateNationalID is returned when a create or update would
	// reuse an existing national id.
	ErrDuplicateNationalID = errors.New("a user with this national id already exists")

	errNameRequired     = errors.New("name is required")
	errEmailRequired    = errors.New("email is required")
	errPasswordRequired = errors.New("password hash is required")
)

// IsValidation reports whether err describes bad input rather than a
// store failure, so handlers can map it to a 400 instead of a 500.
func IsValidation(err error) bool {
	return errors.Is(err, errNameRequired) ||
		errors.Is(err, errEmailRequired) ||
		errors.Is(err, errPasswordRequired) ||
		errors.Is(err, errFeelingRequired) ||
		errors.Is(err, errTitleRequired) ||
		errors.Is(err, ErrMoodLevelRange) ||
		errors.Is(err, ErrMeditationIDRequired)
}

type Store struct {
	c *mongo.Collection
}

func New(gw *gateway.Gateway) *Store {
	return &Store{c: gw.Collection(gateway.UsersCollection)}
}

// Create inserts a new user after normalizing and validating fields.
// The embedded arrays are initialized empty so later $push appends and
// $size projections never see a missing field on documents we created.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	u.ID = primitive.NewObjectID()
	u.Name = normalize.Name(u.Name)
	u.Email = normalize.Email(u.Email)
	if u.NationalID != nil {
		nid := normalize.NationalID(*u.NationalID)
		u.NationalID = &nid
	}

	switch {
	case u.Name == "":
		return models.User{}, errNameRequired
	case u.Email == "":
		return models.User{}, errEmailRequired
	case u.PasswordHash == "":
		return models.User{}, errPasswordRequired
	}

	if u.RegisteredAt.IsZero() {
		u.RegisteredAt = time.Now().UTC()
	}
	if u.MoodEntries == nil {
		u.MoodEntries = []models.MoodEntry{}
	}
	if u.MeditationHistory == nil {
		u.MeditationHistory = []models.MeditationSession{}
	}
	if u.AssessmentResults == nil {
		u.AssessmentResults = []models.AssessmentResult{}
	}
	if u.Notifications == nil {
		u.Notifications = []models.Notification{}
	}

	// Pre-checks give the caller a precise error; the unique indexes are
	// what actually guarantee it under concurrency.
	if _, err := s.GetByEmail(ctx, u.Email); err == nil {
		return models.User{}, ErrDuplicateEmail
	} else if !errors.Is(err, ErrNotFound) {
		return models.User{}, err
	}
	if u.NationalID != nil && *u.NationalID != "" {
		if _, err := s.GetByNationalID(ctx, *u.NationalID); err == nil {
			return models.User{}, ErrDuplicateNationalID
		} else if !errors.Is(err, ErrNotFound) {
			return models.User{}, err
		}
	}

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// GetByID loads a user by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// GetByHexID loads a user by its id hex string. A malformed hex string is
// reported as not-found rather than as a parse error, so callers holding
// untrusted ids (path params, token subjects) need no special case.
func (s *Store) GetByHexID(ctx context.Context, hex string) (*models.User, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return nil, ErrNotFound
	}
	return s.GetByID(ctx, id)
}

// GetByEmail looks up a user by case-insensitive email.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// GetByNationalID looks up a user by national id.
func (s *Store) GetByNationalID(ctx context.Context, nationalID string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"national_id": normalize.NationalID(nationalID)}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// List returns users newest-registered first, capped at limit.
func (s *Store) List(ctx context.Context, limit int64) ([]models.User, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "registered_at", Value: -1}}).
		SetLimit(limit)
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.User
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Summary is the projected subset of user fields used by listings.
type Summary struct {
	ID           primitive.ObjectID `bson:"_id" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	NationalID   *string            `bson:"national_id,omitempty" json:"national_id,omitempty"`
	RegisteredAt time.Time          `bson:"registered_at" json:"registered_at"`
}

// ListSummary returns the summary projection, newest-registered first.
func (s *Store) ListSummary(ctx context.Context, limit int64) ([]Summary, error) {
	opts := options.Find().
		SetProjection(bson.M{"name": 1, "email": 1, "national_id": 1, "registered_at": 1}).
		SetSort(bson.D{{Key: "registered_at", Value: -1}}).
		SetLimit(limit)
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []Summary
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ProfilePatch enumerates the fields a profile update may touch. Nil
// fields are left untouched. The id, email, password hash, and embedded
// arrays are deliberately absent: they change only through their own
// operations.
type ProfilePatch struct {
	Name       *string
	NationalID *string
	BirthDate  *time.Time
	BloodType  *string
	Allergies  *string
	AvatarURL  *string
	Settings   map[string]any
	Address    *models.Address
}

// UpdateProfile applies the non-nil fields of patch to the user.
func (s *Store) UpdateProfile(ctx context.Context, id primitive.ObjectID, patch ProfilePatch) error {
	set := bson.M{}
	if patch.Name != nil {
		set["name"] = normalize.Name(*patch.Name)
	}
	if patch.NationalID != nil {
		set["national_id"] = normalize.NationalID(*patch.NationalID)
	}
	if patch.BirthDate != nil {
		set["birth_date"] = *patch.BirthDate
	}
	if patch.BloodType != nil {
		set["blood_type"] = *patch.BloodType
	}
	if patch.Allergies != nil {
		set["allergies"] = *patch.Allergies
	}
	if patch.AvatarURL != nil {
		set["avatar_url"] = *patch.AvatarURL
	}
	if patch.Settings != nil {
		set["settings"] = patch.Settings
	}
	if patch.Address != nil {
		set["address"] = *patch.Address
	}
	if len(set) == 0 {
		return nil
	}

	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateNationalID
		}
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a user and everything embedded on the document.
// Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Count returns the total number of users.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}
