package reportqueries

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mindhaven/mindhaven/internal/app/store/gateway"
)

const activeUsersLimit = 10

// ActiveUserRow summarizes one user's engagement across the embedded
// activity arrays.
type ActiveUserRow struct {
	Name            string `bson:"name" json:"name"`
	Email           string `bson:"email" json:"email"`
	MeditationCount int64  `bson:"meditation_count" json:"meditation_count"`
	MoodEntryCount  int64  `bson:"mood_entry_count" json:"mood_entry_count"`
	AssessmentCount int64  `bson:"assessment_count" json:"assessment_count"`
}

// MostActiveUsers ranks users by completed meditation sessions,
// returning the top ten. Missing arrays count as zero rather than
// failing $size.
func MostActiveUsers(ctx context.Context, db *mongo.Database) ([]ActiveUserRow, error) {
	pipeline := []bson.M{
		{"$project": bson.M{
			"_id":              0,
			"name":             1,
			"email":            1,
			"meditation_count": bson.M{"$size": bson.M{"$ifNull": bson.A{"$meditation_history", bson.A{}}}},
			"mood_entry_count": bson.M{"$size": bson.M{"$ifNull": bson.A{"$mood_entries", bson.A{}}}},
			"assessment_count": bson.M{"$size": bson.M{"$ifNull": bson.A{"$assessment_results", bson.A{}}}},
		}},
		{"$sort": bson.D{{Key: "meditation_count", Value: -1}}},
		{"$limit": activeUsersLimit},
	}

	cur, err := db.Collection(gateway.UsersCollection).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	rows := []ActiveUserRow{}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
