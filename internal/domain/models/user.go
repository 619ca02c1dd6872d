// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is the root document for an account. A user's mood entries,
// meditation history, assessment results, and notifications are embedded
// on the document itself rather than split into their own collections:
// everything a user sees on their own dashboard lives in one read.
//
// The embedded arrays are append-only and ordered by insertion, so
// insertion order is chronological with the newest element last.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password_hash" json:"-"`

	NationalID *string    `bson:"national_id,omitempty" json:"national_id,omitempty"`
	BirthDate  *time.Time `bson:"birth_date,omitempty" json:"birth_date,omitempty"`
	BloodType  string     `bson:"blood_type,omitempty" json:"blood_type,omitempty"`
	Allergies  string     `bson:"allergies,omitempty" json:"allergies,omitempty"`
	AvatarURL  string     `bson:"avatar_url,omitempty" json:"avatar_url,omitempty"`

	// Free-form client preferences; the server stores them opaquely.
	Settings map[string]any `bson:"settings,omitempty" json:"settings,omitempty"`

	RegisteredAt time.Time `bson:"registered_at" json:"registered_at"`

	Address *Address `bson:"address,omitempty" json:"address,omitempty"`

	MoodEntries       []MoodEntry         `bson:"mood_entries" json:"mood_entries"`
	MeditationHistory []MeditationSession `bson:"meditation_history" json:"meditation_history"`
	AssessmentResults []AssessmentResult  `bson:"assessment_results" json:"assessment_results"`
	Notifications     []Notification      `bson:"notifications" json:"notifications"`
}

// Address is an optional embedded document; a user has at most one.
type Address struct {
	Country    string `bson:"country" json:"country"`
	State      string `bson:"state" json:"state"`
	City       string `bson:"city" json:"city"`
	Street     string `bson:"street" json:"street"`
	Number     string `bson:"number" json:"number"`
	Complement string `bson:"complement,omitempty" json:"complement,omitempty"`
	PostalCode string `bson:"postal_code,omitempty" json:"postal_code,omitempty"`
}

// MoodEntry records a single self-reported mood check-in.
// Level is always in [1,5]; writes outside that range are rejected
// before they reach the store.
type MoodEntry struct {
	Level      int       `bson:"level" json:"level"`
	Feeling    string    `bson:"feeling" json:"feeling"`
	Notes      string    `bson:"notes,omitempty" json:"notes,omitempty"`
	RecordedAt time.Time `bson:"recorded_at" json:"recorded_at"`
}

// MeditationSession records one completed meditation. MeditationID is a
// weak reference into the meditations collection: the referenced document
// may have been deleted since, and readers must tolerate that.
type MeditationSession struct {
	MeditationID  primitive.ObjectID `bson:"meditation_id" json:"meditation_id"`
	CompletedAt   time.Time          `bson:"completed_at" json:"completed_at"`
	ActualMinutes *int               `bson:"actual_minutes,omitempty" json:"actual_minutes,omitempty"`
}

// Assessment kinds. Kind is normalized into this set at write time;
// unrecognized input is stored as a lower-cased passthrough.
const (
	AssessmentAnxiety    = "anxiety"
	AssessmentDepression = "depression"
	AssessmentStress     = "stress"
	AssessmentBurnout    = "burnout"
)

// AssessmentResult is one completed self-assessment questionnaire.
type AssessmentResult struct {
	Kind       string         `bson:"kind" json:"kind"`
	Answers    map[string]any `bson:"answers,omitempty" json:"answers,omitempty"`
	Score      int            `bson:"score" json:"score"`
	ResultText string         `bson:"result_text,omitempty" json:"result_text,omitempty"`
	TakenAt    time.Time      `bson:"taken_at" json:"taken_at"`
}

// Notification is an in-app message delivered to the user.
type Notification struct {
	Title   string    `bson:"title" json:"title"`
	Message string    `bson:"message" json:"message"`
	SentAt  time.Time `bson:"sent_at" json:"sent_at"`
	Read    bool      `bson:"read" json:"read"`
}
