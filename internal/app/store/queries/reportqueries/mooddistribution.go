package reportqueries

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mindhaven/mindhaven/internal/app/store/gateway"
)

// MoodDistributionRow is one (level, feeling) bucket across every
// user's mood entries.
type MoodDistributionRow struct {
	Level   int    `json:"level"`
	Feeling string `json:"feeling"`
	Count   int64  `json:"count"`
}

// MoodDistribution unwinds every user's mood entries and counts them
// per (level, feeling), ordered by level descending then count
// descending. Users without entries contribute nothing.
func MoodDistribution(ctx context.Context, db *mongo.Database) ([]MoodDistributionRow, error) {
	pipeline := []bson.M{
		{"$unwind": "$mood_entries"},
		{"$group": bson.M{
			"_id": bson.M{
				"level":   "$mood_entries.level",
				"feeling": "$mood_entries.feeling",
			},
			"count": bson.M{"$sum": 1},
		}},
		{"$sort": bson.D{
			{Key: "_id.level", Value: -1},
			{Key: "count", Value: -1},
		}},
	}

	cur, err := db.Collection(gateway.UsersCollection).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	rows := []MoodDistributionRow{}
	for cur.Next(ctx) {
		var row struct {
			ID struct {
				Level   int    `bson:"level"`
				Feeling string `bson:"feeling"`
			} `bson:"_id"`
			Count int64 `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		rows = append(rows, MoodDistributionRow{
			Level:   row.ID.Level,
			Feeling: row.ID.Feeling,
			Count:   row.Count,
		})
	}
	return rows, cur.Err()
}
