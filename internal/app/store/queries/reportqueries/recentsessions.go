package reportqueries

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mindhaven/mindhaven/internal/app/store/gateway"
)

// RemovedMeditationTitle is rendered when a history entry references a
// meditation that was deleted from the catalog without cascading.
const RemovedMeditationTitle = "Removed meditation"

const recentSessionsLimit = 50

// RecentSessionRow is one completed meditation session joined with its
// catalog entry. Catalog fields are empty when the reference dangles.
type RecentSessionRow struct {
	UserName       string    `bson:"user_name" json:"user_name"`
	UserEmail      string    `bson:"user_email" json:"user_email"`
	Title          string    `bson:"title" json:"title"`
	Type           string    `bson:"type,omitempty" json:"type,omitempty"`
	Category       string    `bson:"category,omitempty" json:"category,omitempty"`
	PlannedMinutes int       `bson:"planned_minutes" json:"planned_minutes"`
	ActualMinutes  *int      `bson:"actual_minutes,omitempty" json:"actual_minutes,omitempty"`
	CompletedAt    time.Time `bson:"completed_at" json:"completed_at"`
}

// RecentSessions unwinds every user's meditation history, left-joins
// the catalog, and returns the most recent sessions first, capped at
// fifty rows. The join keeps sessions whose meditation was deleted;
// those rows get the RemovedMeditationTitle placeholder.
func RecentSessions(ctx context.Context, db *mongo.Database) ([]RecentSessionRow, error) {
	pipeline := []bson.M{
		{"$unwind": "$meditation_history"},
		{"$lookup": bson.M{
			"from":         gateway.MeditationsCollection,
			"localField":   "meditation_history.meditation_id",
			"foreignField": "_id",
			"as":           "meditation",
		}},
		{"$unwind": bson.M{
			"path":                       "$meditation",
			"preserveNullAndEmptyArrays": true,
		}},
		{"$project": bson.M{
			"_id":             0,
			"user_name":       "$name",
			"user_email":      "$email",
			"title":           bson.M{"$ifNull": bson.A{"$meditation.title", RemovedMeditationTitle}},
			"type":            "$meditation.type",
			"category":        "$meditation.category",
			"planned_minutes": bson.M{"$ifNull": bson.A{"$meditation.duration_minutes", 0}},
			"actual_minutes":  "$meditation_history.actual_minutes",
			"completed_at":    "$meditation_history.completed_at",
		}},
		{"$sort": bson.D{{Key: "completed_at", Value: -1}}},
		{"$limit": recentSessionsLimit},
	}

	cur, err := db.Collection(gateway.UsersCollection).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	rows := []RecentSessionRow{}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
