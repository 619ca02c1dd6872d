// internal/domain/models/meditation.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Meditation categories (difficulty levels). Category is validated on write.
const (
	CategoryBeginner     = "beginner"
	CategoryIntermediate = "intermediate"
	CategoryAdvanced     = "advanced"
)

// RecommendedTypes lists the meditation types the catalog normally uses.
// Type is a free string; these are suggestions for catalog entry, not a
// validation set.
var RecommendedTypes = []string{
	"breathing",
	"mindfulness",
	"body-scan",
	"visualization",
	"loving-kindness",
	"sleep",
}

// Meditation is a catalog entry shared by all users. Unlike a user's
// embedded history, meditations are normalized into their own collection
// so edits to a title or audio URL apply everywhere at once.
//
// Titles are not unique: inserting a duplicate title is allowed but the
// caller must confirm it first (see the meditations store).
type Meditation struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title           string             `bson:"title" json:"title"`
	Description     string             `bson:"description,omitempty" json:"description,omitempty"`
	DurationMinutes int                `bson:"duration_minutes" json:"duration_minutes"`
	AudioURL        string             `bson:"audio_url,omitempty" json:"audio_url,omitempty"`
	Type            string             `bson:"type" json:"type"`
	Category        string             `bson:"category" json:"category"`
	CoverImageURL   string             `bson:"cover_image_url,omitempty" json:"cover_image_url,omitempty"`

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt *time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// ValidCategory reports whether c is one of the fixed category values.
func ValidCategory(c string) bool {
	switch c {
	case CategoryBeginner, CategoryIntermediate, CategoryAdvanced:
		return true
	}
	return false
}
