// internal/testutil/fixtures.go
package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mindhaven/mindhaven/internal/app/store/gateway"
	"github.com/mindhaven/mindhaven/internal/domain/models"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// NewGateway wraps a test database in the store gateway.
func NewGateway(db *mongo.Database) *gateway.Gateway {
	return gateway.New(db.Client(), db)
}

// Fixtures provides helper methods for creating test data. The helpers
// insert documents directly, bypassing store validation, so tests can set
// up exactly the state they need.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser inserts a minimal user with the given name and email.
func (f *Fixtures) CreateUser(ctx context.Context, name, email string) models.User {
	f.t.Helper()

	u := models.User{
		ID:                primitive.NewObjectID(),
		Name:              name,
		Email:             email,
		PasswordHash:      "$2a$10$fixture.hash.not.a.real.credential.value",
		RegisteredAt:      time.Now().UTC(),
		MoodEntries:       []models.MoodEntry{},
		MeditationHistory: []models.MeditationSession{},
		AssessmentResults: []models.AssessmentResult{},
		Notifications:     []models.Notification{},
	}
	if _, err := f.db.Collection(gateway.UsersCollection).InsertOne(ctx, u); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return u
}

// CreateMeditation inserts a meditation with the given title, duration,
// type, and category.
func (f *Fixtures) CreateMeditation(ctx context.Context, title string, minutes int, medType, category string) models.Meditation {
	f.t.Helper()

	m := models.Meditation{
		ID:              primitive.NewObjectID(),
		Title:           title,
		DurationMinutes: minutes,
		Type:            medType,
		Category:        category,
		CreatedAt:       time.Now().UTC(),
	}
	if _, err := f.db.Collection(gateway.MeditationsCollection).InsertOne(ctx, m); err != nil {
		f.t.Fatalf("failed to create test meditation: %v", err)
	}
	return m
}

// AppendHistory pushes a completed-meditation entry onto a user's
// meditation_history, completed at the given time.
func (f *Fixtures) AppendHistory(ctx context.Context, userID, meditationID primitive.ObjectID, completedAt time.Time) {
	f.t.Helper()

	session := models.MeditationSession{
		MeditationID: meditationID,
		CompletedAt:  completedAt,
	}
	_, err := f.db.Collection(gateway.UsersCollection).UpdateByID(ctx, userID,
		bson.M{"$push": bson.M{"meditation_history": session}})
	if err != nil {
		f.t.Fatalf("failed to append history fixture: %v", err)
	}
}

// AppendMood pushes a mood entry onto a user's mood_entries.
func (f *Fixtures) AppendMood(ctx context.Context, userID primitive.ObjectID, level int, feeling string, recordedAt time.Time) {
	f.t.Helper()

	entry := models.MoodEntry{
		Level:      level,
		Feeling:    feeling,
		RecordedAt: recordedAt,
	}
	_, err := f.db.Collection(gateway.UsersCollection).UpdateByID(ctx, userID,
		bson.M{"$push": bson.M{"mood_entries": entry}})
	if err != nil {
		f.t.Fatalf("failed to append mood fixture: %v", err)
	}
}
